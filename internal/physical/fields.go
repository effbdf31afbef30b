package physical

import (
	"fmt"

	"github.com/tydi-hdl/tydi/internal/name"
)

// Field is a single named bit field of a physical stream. An empty path
// denotes the anonymous root field of a type without record structure.
type Field struct {
	Name  name.PathName
	Width uint32
}

// Fields is an ordered path-name to bit-count map. Insertion order is the
// wire layout order and is preserved.
type Fields struct {
	fields []Field
}

// NewFields builds a field set, rejecting duplicate paths and zero widths.
func NewFields(fields []Field) (Fields, error) {
	var out Fields
	for _, f := range fields {
		if err := out.Insert(f.Name, f.Width); err != nil {
			return Fields{}, err
		}
	}
	return out, nil
}

// Insert appends a field. It rejects zero widths and duplicate paths.
func (f *Fields) Insert(path name.PathName, width uint32) error {
	if width == 0 {
		return &Error{Code: ErrCodeZeroWidth, Message: fmt.Sprintf("field %q cannot have width 0", path)}
	}
	for _, existing := range f.fields {
		if existing.Name.Equal(path) {
			return &Error{Code: ErrCodeDuplicateField, Message: fmt.Sprintf("duplicate field %q", path)}
		}
	}
	f.fields = append(f.fields, Field{Name: path, Width: width})
	return nil
}

// Iter returns the fields in wire layout order.
func (f Fields) Iter() []Field {
	out := make([]Field, len(f.fields))
	copy(out, f.fields)
	return out
}

// Len returns the number of fields.
func (f Fields) Len() int {
	return len(f.fields)
}

// Width returns the combined bit count of all fields.
func (f Fields) Width() uint32 {
	var sum uint32
	for _, field := range f.fields {
		sum += field.Width
	}
	return sum
}

// Equal reports order-sensitive equality of two field sets.
func (f Fields) Equal(other Fields) bool {
	if len(f.fields) != len(other.fields) {
		return false
	}
	for i := range f.fields {
		if f.fields[i].Width != other.fields[i].Width || !f.fields[i].Name.Equal(other.fields[i].Name) {
			return false
		}
	}
	return true
}
