package logical

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tydi-hdl/tydi/internal/physical"
)

// TypeString renders t in the surface syntax accepted by the parser.
// Stream options equal to their defaults are omitted, so the rendering is
// canonical: equal types render to equal strings.
func TypeString(t Type) string {
	switch v := t.(type) {
	case Null:
		return "Null"
	case Bits:
		return fmt.Sprintf("Bits<%d>", v.width)
	case Group:
		return fieldString("Group", v.fields)
	case Union:
		return fieldString("Union", v.variants)
	case Stream:
		var b strings.Builder
		b.WriteString("Stream<")
		b.WriteString(TypeString(v.data))
		if v.throughput != 1 {
			b.WriteString(", t=")
			b.WriteString(strconv.FormatFloat(v.throughput, 'g', -1, 64))
		}
		if v.dimensionality != 0 {
			fmt.Fprintf(&b, ", d=%d", v.dimensionality)
		}
		if v.synchronicity != Sync {
			fmt.Fprintf(&b, ", s=%s", v.synchronicity)
		}
		if !v.complexity.Eq(physical.DefaultComplexity()) {
			fmt.Fprintf(&b, ", c=%s", v.complexity)
		}
		if v.direction != physical.Forward {
			fmt.Fprintf(&b, ", r=%s", v.direction)
		}
		if v.user != nil {
			fmt.Fprintf(&b, ", u=%s", TypeString(v.user))
		}
		if v.keep {
			b.WriteString(", x=true")
		}
		b.WriteString(">")
		return b.String()
	default:
		return "?"
	}
}

func fieldString(kind string, fields []Field) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteString("<")
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(string(f.Name))
		b.WriteString(": ")
		b.WriteString(TypeString(f.Typ))
	}
	b.WriteString(">")
	return b.String()
}
