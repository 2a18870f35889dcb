// Package collision detects repeated attribute names while a snapshot is
// decoded.
package collision

import (
	"fmt"

	"github.com/arloliu/meshattr/errs"
)

// Tracker records attribute names in the order they are seen and rejects
// empty or repeated names.
type Tracker struct {
	seen  map[string]struct{}
	names []string
}

// NewTracker creates a tracker expecting about n names.
func NewTracker(n int) *Tracker {
	return &Tracker{
		seen:  make(map[string]struct{}, n),
		names: make([]string, 0, n),
	}
}

// Track records name. It returns errs.ErrInvalidAttributeName for an empty
// name and errs.ErrDuplicateAttribute for a name tracked before.
func (t *Tracker) Track(name string) error {
	if name == "" {
		return errs.ErrInvalidAttributeName
	}
	if _, ok := t.seen[name]; ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateAttribute, name)
	}

	t.seen[name] = struct{}{}
	t.names = append(t.names, name)

	return nil
}

// Names returns the tracked names in tracking order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset forgets every name and keeps the allocated memory.
func (t *Tracker) Reset() {
	clear(t.seen)
	t.names = t.names[:0]
}
