package logical

import (
	"github.com/tydi-hdl/tydi/internal/name"
)

// Selection addresses part of a logical type: a record field by name, a
// single bit by index, or a bit slice by range.
type Selection interface {
	selection() // Sealed - only these types implement it
}

// ByName selects a Group field or Union variant.
type ByName struct {
	Name name.Name
}

func (ByName) selection() {}

// ByIndex selects a single bit of a Bits type.
type ByIndex struct {
	Index uint32
}

func (ByIndex) selection() {}

// ByRange selects a bit slice of a Bits type. Downto ranges run High..Low,
// to ranges run Low..High; both bounds are inclusive.
type ByRange struct {
	High   uint32
	Low    uint32
	Downto bool
}

func (ByRange) selection() {}

// GetField resolves a selection against a type. It returns an error when
// the selection is meaningless for the variant or out of range.
func GetField(t Type, sel Selection) (Type, error) {
	switch tv := t.(type) {
	case Group:
		return fieldByName(tv.fields, sel, "Group")
	case Union:
		return fieldByName(tv.variants, sel, "Union")
	case Bits:
		switch sv := sel.(type) {
		case ByIndex:
			if sv.Index >= tv.width {
				return nil, newTypeError(ErrCodeBadSelection, "bit %d out of range for Bits<%d>", sv.Index, tv.width)
			}
			return Bits{width: 1}, nil
		case ByRange:
			if sv.Low > sv.High {
				return nil, newTypeError(ErrCodeBadSelection, "range bounds %d..%d are inverted", sv.High, sv.Low)
			}
			if sv.High >= tv.width {
				return nil, newTypeError(ErrCodeBadSelection, "range bound %d out of range for Bits<%d>", sv.High, tv.width)
			}
			return Bits{width: sv.High - sv.Low + 1}, nil
		default:
			return nil, newTypeError(ErrCodeBadSelection, "Bits supports index and range selections only")
		}
	default:
		return nil, newTypeError(ErrCodeBadSelection, "type %s has no selectable fields", TypeString(t))
	}
}

func fieldByName(fields []Field, sel Selection, kind string) (Type, error) {
	n, ok := sel.(ByName)
	if !ok {
		return nil, newTypeError(ErrCodeBadSelection, "%s supports name selections only", kind)
	}
	for _, f := range fields {
		if f.Name == n.Name {
			return f.Typ, nil
		}
	}
	return nil, newTypeError(ErrCodeBadSelection, "%s has no field %q", kind, n.Name)
}
