package physical

import (
	"strconv"
	"strings"
)

// Complexity is an interface complexity level.
//
// It specifies the guarantees a source makes about how elements are
// transferred, or equivalently the assumptions a sink can safely make.
// Levels are ordered lexicographically with right-padding by zeros, like
// version numbers: 3 = 3.0 = 3.0.0 < 3.1 < 4.
type Complexity struct {
	level []uint32
}

// NewComplexity constructs a complexity from its level list. The list must
// be non-empty.
func NewComplexity(level []uint32) (Complexity, error) {
	if len(level) == 0 {
		return Complexity{}, &Error{Code: ErrCodeEmptyComplexity, Message: "complexity level cannot be empty"}
	}
	out := make([]uint32, len(level))
	copy(out, level)
	return Complexity{level: out}, nil
}

// Major constructs a complexity with a single major level.
func Major(major uint32) Complexity {
	return Complexity{level: []uint32{major}}
}

// DefaultComplexity is the complexity assumed when a stream does not
// specify one.
func DefaultComplexity() Complexity {
	return Major(0)
}

// ParseComplexity parses a dot-separated level list such as "4" or "3.1".
func ParseComplexity(s string) (Complexity, error) {
	if s == "" {
		return Complexity{}, &Error{Code: ErrCodeEmptyComplexity, Message: "complexity level cannot be empty"}
	}
	parts := strings.Split(s, ".")
	level := make([]uint32, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return Complexity{}, &Error{
				Code:    ErrCodeBadComplexity,
				Message: "complexity level must be dot-separated non-negative integers, got " + strconv.Quote(s),
			}
		}
		level[i] = uint32(v)
	}
	return Complexity{level: level}, nil
}

// Level returns the level list. The zero value reports a single 0 level.
func (c Complexity) Level() []uint32 {
	if len(c.level) == 0 {
		return []uint32{0}
	}
	out := make([]uint32, len(c.level))
	copy(out, c.level)
	return out
}

// MajorLevel returns the leftmost level integer.
func (c Complexity) MajorLevel() uint32 {
	if len(c.level) == 0 {
		return 0
	}
	return c.level[0]
}

// Cmp compares two complexity levels lexicographically on their
// right-zero-padded equal-length forms. It returns -1, 0 or 1.
func (c Complexity) Cmp(other Complexity) int {
	n := len(c.level)
	if len(other.level) > n {
		n = len(other.level)
	}
	for i := 0; i < n; i++ {
		var a, b uint32
		if i < len(c.level) {
			a = c.level[i]
		}
		if i < len(other.level) {
			b = other.level[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Eq reports whether two levels compare equal after padding.
func (c Complexity) Eq(other Complexity) bool {
	return c.Cmp(other) == 0
}

// String renders the level list separated by periods.
func (c Complexity) String() string {
	level := c.Level()
	parts := make([]string, len(level))
	for i, l := range level {
		parts[i] = strconv.FormatUint(uint64(l), 10)
	}
	return strings.Join(parts, ".")
}
