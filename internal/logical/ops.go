package logical

// IsNull reports whether t produces no physical signals: Null is null,
// Bits never is, Group and Union are null iff every field is, and a Stream
// is null iff its payload is null, its user content is null or absent, and
// keep is off.
func IsNull(t Type) bool {
	switch v := t.(type) {
	case Null:
		return true
	case Bits:
		return false
	case Group:
		for _, f := range v.fields {
			if !IsNull(f.Typ) {
				return false
			}
		}
		return true
	case Union:
		for _, f := range v.variants {
			if !IsNull(f.Typ) {
				return false
			}
		}
		return true
	case Stream:
		if v.keep {
			return false
		}
		if v.user != nil && !IsNull(v.user) {
			return false
		}
		return IsNull(v.data)
	default:
		return false
	}
}

// IsElementOnly reports whether t contains no Stream node anywhere. Only
// element-only types may appear as stream user content.
func IsElementOnly(t Type) bool {
	switch v := t.(type) {
	case Null, Bits:
		return true
	case Group:
		for _, f := range v.fields {
			if !IsElementOnly(f.Typ) {
				return false
			}
		}
		return true
	case Union:
		for _, f := range v.variants {
			if !IsElementOnly(f.Typ) {
				return false
			}
		}
		return true
	case Stream:
		return false
	default:
		return false
	}
}

// Equal reports strict structural equality of two logical types. The
// composer uses this relation when checking connections.
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bits:
		bv, ok := b.(Bits)
		return ok && av.width == bv.width
	case Group:
		bv, ok := b.(Group)
		return ok && fieldsEqual(av.fields, bv.fields)
	case Union:
		bv, ok := b.(Union)
		return ok && fieldsEqual(av.variants, bv.variants)
	case Stream:
		bv, ok := b.(Stream)
		if !ok {
			return false
		}
		if av.throughput != bv.throughput ||
			av.dimensionality != bv.dimensionality ||
			av.synchronicity != bv.synchronicity ||
			av.direction != bv.direction ||
			av.keep != bv.keep ||
			!av.complexity.Eq(bv.complexity) {
			return false
		}
		if (av.user == nil) != (bv.user == nil) {
			return false
		}
		if av.user != nil && !Equal(av.user, bv.user) {
			return false
		}
		return Equal(av.data, bv.data)
	default:
		return false
	}
}

func fieldsEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !Equal(a[i].Typ, b[i].Typ) {
			return false
		}
	}
	return true
}

// Compatible reports whether a source of type src may drive a sink of type
// dst. The relation is structural equality made covariant, with one
// relaxation: a Stream source may carry a strictly lower complexity than
// the sink, since a more-guaranteeing source satisfies a less-demanding
// sink.
func Compatible(src, dst Type) bool {
	switch sv := src.(type) {
	case Null:
		_, ok := dst.(Null)
		return ok
	case Bits:
		dv, ok := dst.(Bits)
		return ok && sv.width == dv.width
	case Group:
		dv, ok := dst.(Group)
		return ok && fieldsCompatible(sv.fields, dv.fields)
	case Union:
		dv, ok := dst.(Union)
		return ok && fieldsCompatible(sv.variants, dv.variants)
	case Stream:
		dv, ok := dst.(Stream)
		if !ok {
			return false
		}
		if sv.throughput != dv.throughput ||
			sv.dimensionality != dv.dimensionality ||
			sv.synchronicity != dv.synchronicity ||
			sv.direction != dv.direction ||
			sv.keep != dv.keep {
			return false
		}
		if sv.complexity.Cmp(dv.complexity) > 0 {
			return false
		}
		if (sv.user == nil) != (dv.user == nil) {
			return false
		}
		if sv.user != nil && !Compatible(sv.user, dv.user) {
			return false
		}
		return Compatible(sv.data, dv.data)
	default:
		return false
	}
}

func fieldsCompatible(src, dst []Field) bool {
	if len(src) != len(dst) {
		return false
	}
	for i := range src {
		if src[i].Name != dst[i].Name || !Compatible(src[i].Typ, dst[i].Typ) {
			return false
		}
	}
	return true
}

// ReverseType flips the direction of a Stream; other variants are returned
// unchanged.
func ReverseType(t Type) Type {
	if s, ok := t.(Stream); ok {
		return s.Reversed()
	}
	return t
}
