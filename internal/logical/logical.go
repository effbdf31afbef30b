package logical

import (
	"github.com/tydi-hdl/tydi/internal/name"
	"github.com/tydi-hdl/tydi/internal/physical"
)

// Type is a sealed interface over the logical type variants. Only Null,
// Bits, Group, Union, and Stream implement it.
type Type interface {
	logicalType() // Sealed - only these types implement it
}

// Null carries no data.
type Null struct{}

func (Null) logicalType() {}

// Bits is a primitive element of a fixed positive width.
type Bits struct {
	width uint32
}

func (Bits) logicalType() {}

// NewBits constructs a Bits type. The width must be positive.
func NewBits(width uint32) (Bits, error) {
	if width == 0 {
		return Bits{}, newTypeError(ErrCodeZeroWidthBits, "Bits width must be positive")
	}
	return Bits{width: width}, nil
}

// Width returns the bit width.
func (b Bits) Width() uint32 {
	return b.width
}

// Field is a named member of a Group or Union.
type Field struct {
	Name name.Name
	Typ  Type
}

// Group concatenates its fields into a single element; field order matters
// for the wire layout.
type Group struct {
	fields []Field
}

func (Group) logicalType() {}

// NewGroup constructs a Group. It rejects empty contents and duplicate
// field names.
func NewGroup(fields ...Field) (Group, error) {
	if err := checkFields("Group", fields); err != nil {
		return Group{}, err
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	return Group{fields: out}, nil
}

// Fields returns the fields in declaration order.
func (g Group) Fields() []Field {
	out := make([]Field, len(g.fields))
	copy(out, g.fields)
	return out
}

// Union holds at most one living variant per transfer. With two or more
// variants it contributes a tag field of ceil(log2(k)) bits next to a data
// field of the maximum variant width.
type Union struct {
	variants []Field
}

func (Union) logicalType() {}

// NewUnion constructs a Union. It rejects empty contents and duplicate
// variant names.
func NewUnion(variants ...Field) (Union, error) {
	if err := checkFields("Union", variants); err != nil {
		return Union{}, err
	}
	out := make([]Field, len(variants))
	copy(out, variants)
	return Union{variants: out}, nil
}

// Variants returns the variants in declaration order.
func (u Union) Variants() []Field {
	out := make([]Field, len(u.variants))
	copy(out, u.variants)
	return out
}

// TagWidth returns the width of the union tag field: ceil(log2(k)) for k
// variants, or 0 for a single variant.
func (u Union) TagWidth() uint32 {
	if len(u.variants) < 2 {
		return 0
	}
	return physical.Log2Ceil(uint32(len(u.variants)))
}

func checkFields(kind string, fields []Field) error {
	if len(fields) == 0 {
		return newTypeError(ErrCodeEmptyFields, "%s must have at least one field", kind)
	}
	seen := make(map[name.Name]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Name]; ok {
			return newTypeError(ErrCodeDuplicateField, "%s has duplicate field %q", kind, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}
