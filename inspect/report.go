// Package inspect summarizes the attributes of a manager: element types,
// sizes, and per-component statistics of numeric attributes.
package inspect

import (
	"fmt"
	"io"
	"math"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/meshattr/attribute"
	"github.com/arloliu/meshattr/section"
)

// Report describes every attribute of a manager.
type Report struct {
	NbItems    int               `json:"nb_items"`
	Attributes []AttributeReport `json:"attributes"`
	Snapshot   *SnapshotInfo     `json:"snapshot,omitempty"`
}

// AttributeReport describes one attribute. TypeName is empty when the
// element type is not registered.
type AttributeReport struct {
	Name        string           `json:"name"`
	TypeName    string           `json:"type_name,omitempty"`
	TypeID      string           `json:"type_id"`
	ElementSize int              `json:"element_size"`
	Size        int              `json:"size"`
	Constant    bool             `json:"constant"`
	Components  int              `json:"components,omitempty"`
	IntegerLike bool             `json:"integer_like,omitempty"`
	Stats       []ComponentStats `json:"stats,omitempty"`
}

// ComponentStats holds the statistics of one scalar component. NaN and
// infinite values are counted apart and left out of Min, Max and Mean, which
// are zero when no finite value exists.
type ComponentStats struct {
	Component string  `json:"component"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	NaNCount  int     `json:"nan_count,omitempty"`
	InfCount  int     `json:"inf_count,omitempty"`
}

// SnapshotInfo describes the snapshot a report was built from.
type SnapshotInfo struct {
	Path        string `json:"path,omitempty"`
	Version     uint8  `json:"version"`
	ByteOrder   string `json:"byte_order"`
	Compression string `json:"compression"`
	StoredBytes uint32 `json:"stored_bytes"`
	RawBytes    uint32 `json:"raw_bytes"`
	Checksum    string `json:"checksum"`
}

// NewSnapshotInfo describes a snapshot header read from path.
func NewSnapshotInfo(path string, h section.Header) *SnapshotInfo {
	return &SnapshotInfo{
		Path:        path,
		Version:     h.Version,
		ByteOrder:   h.ByteOrder.String(),
		Compression: h.Compression.String(),
		StoredBytes: h.BodyLength,
		RawBytes:    h.RawLength,
		Checksum:    fmt.Sprintf("%016x", h.Checksum),
	}
}

// Build inspects every attribute of m in name order.
func Build(m *attribute.Manager) Report {
	r := Report{
		NbItems:    m.NbItems(),
		Attributes: make([]AttributeReport, 0, m.NbAttributes()),
	}
	for _, name := range m.AttributeNames() {
		as := m.FindAttributeStore(name)
		if !as.HasStore() {
			r.Attributes = append(r.Attributes, AttributeReport{Name: name})
			continue
		}
		r.Attributes = append(r.Attributes, inspectAttribute(m, name, as))
	}

	return r
}

func inspectAttribute(m *attribute.Manager, name string, as *attribute.AttributeStore) AttributeReport {
	ar := AttributeReport{
		Name:        name,
		TypeID:      as.ElementTypeIDName(),
		ElementSize: as.ElementSize(),
		Size:        as.Size(),
		Constant:    as.IsConstant(),
	}
	ar.TypeName, _ = m.Registry().LookupTypeName(ar.TypeID)

	first := attribute.NewScalarAdapter(m, name)
	if !first.IsBound() {
		return ar
	}
	ar.Components = first.NbScalarElementsPerItem()
	ar.IntegerLike = first.IsIntegerLike()
	if first.Size() == 0 {
		return ar
	}

	ar.Stats = make([]ComponentStats, 0, ar.Components)
	for c := range ar.Components {
		component := name
		if ar.Components > 1 {
			component = attribute.FormatAttributeName(name, c)
		}
		ar.Stats = append(ar.Stats, componentStats(m, component))
	}

	return ar
}

func componentStats(m *attribute.Manager, component string) ComponentStats {
	s := attribute.NewScalarAdapter(m, component)
	stats := ComponentStats{
		Component: component,
		Min:       math.Inf(1),
		Max:       math.Inf(-1),
	}

	var (
		sum    float64
		finite int
	)
	for i := range s.Size() {
		v := s.At(i)
		switch {
		case math.IsNaN(v):
			stats.NaNCount++
			continue
		case math.IsInf(v, 0):
			stats.InfCount++
			continue
		}
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
		sum += v
		finite++
	}
	if finite == 0 {
		stats.Min, stats.Max = 0, 0
		return stats
	}
	stats.Mean = sum / float64(finite)

	return stats
}

// Attribute returns the report of the attribute name, or false.
func (r Report) Attribute(name string) (AttributeReport, bool) {
	for _, a := range r.Attributes {
		if a.Name == name {
			return a, true
		}
	}

	return AttributeReport{}, false
}

// JSON renders the report, indented when indent is true.
func (r Report) JSON(indent bool) ([]byte, error) {
	if indent {
		return gojson.MarshalIndent(r, "", "  ")
	}

	return gojson.Marshal(r)
}

// WriteJSON writes the indented report followed by a newline to w.
func (r Report) WriteJSON(w io.Writer) error {
	data, err := r.JSON(true)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
