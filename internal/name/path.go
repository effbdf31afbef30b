package name

import "strings"

// PathName is an ordered sequence of names addressing a nested field in a
// lowered logical type. The empty path addresses the root.
//
// PathName values are immutable; With and Prefixed return fresh slices.
type PathName []Name

// EmptyPath is the root path.
var EmptyPath = PathName{}

// NewPath builds a path from validated segments.
func NewPath(segments ...string) (PathName, error) {
	p := make(PathName, 0, len(segments))
	for _, s := range segments {
		n, err := New(s)
		if err != nil {
			return nil, err
		}
		p = append(p, n)
	}
	return p, nil
}

// IsEmpty reports whether p addresses the root.
func (p PathName) IsEmpty() bool {
	return len(p) == 0
}

// With returns a copy of p with n appended.
func (p PathName) With(n Name) PathName {
	out := make(PathName, len(p), len(p)+1)
	copy(out, p)
	return append(out, n)
}

// Prefixed returns a copy of p with n prepended.
func (p PathName) Prefixed(n Name) PathName {
	out := make(PathName, 0, len(p)+1)
	out = append(out, n)
	return append(out, p...)
}

// Equal reports segment-wise equality.
func (p PathName) Equal(other PathName) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the path with dots, or "" for the root path.
func (p PathName) String() string {
	return p.Join(".")
}

// Join renders the path segments separated by sep. Back-ends use "_" to
// build flat signal names.
func (p PathName) Join(sep string) string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = string(n)
	}
	return strings.Join(parts, sep)
}
