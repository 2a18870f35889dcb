package attribute

// BoolAttribute is the handle of a boolean attribute. Values are stored as
// one byte per element (0 or 1) so that generic consumers can reach them
// through the raw byte view like any other attribute.
//
// Binding, unbinding and destruction are inherited from Attribute[uint8];
// Value, SetValue and Fill take and return bool.
type BoolAttribute struct {
	Attribute[uint8]
}

// NewBoolAttribute creates a boolean handle bound to name in m.
func NewBoolAttribute(m *Manager, name string) *BoolAttribute {
	b := &BoolAttribute{}
	b.Bind(m, name)

	return b
}

// IsBoolDefined reports whether m holds a boolean attribute under name.
func IsBoolDefined(m *Manager, name string) bool {
	return IsDefined[uint8](m, name)
}

// Value reports whether element i is set.
func (b *BoolAttribute) Value(i int) bool {
	return b.Attribute.Value(i) != 0
}

// SetValue sets element i to v.
func (b *BoolAttribute) SetValue(i int, v bool) {
	b.Attribute.SetValue(i, boolByte(v))
}

// SetConstantValue makes the attribute broadcast v.
func (b *BoolAttribute) SetConstantValue(v bool) {
	b.Attribute.SetConstantValue(boolByte(v))
}

// Fill sets every element to v.
func (b *BoolAttribute) Fill(v bool) {
	b.Attribute.Fill(boolByte(v))
}

// CopyValue copies element from of src into element to of b. src may be b
// itself or another boolean attribute; the stored byte is copied as is.
func (b *BoolAttribute) CopyValue(to int, src *BoolAttribute, from int) {
	b.Attribute.SetValue(to, src.Attribute.Value(from))
}

// Count returns the number of set elements.
func (b *BoolAttribute) Count() int {
	n := 0
	for _, v := range b.Values() {
		if v != 0 {
			n++
		}
	}

	return n
}

func boolByte(v bool) uint8 {
	if v {
		return 1
	}

	return 0
}
