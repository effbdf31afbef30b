package logical

import (
	"github.com/tydi-hdl/tydi/internal/name"
	"github.com/tydi-hdl/tydi/internal/physical"
)

// pathStream is a logical Stream node addressed by the field path that
// leads to it from the type root.
type pathStream struct {
	path   name.PathName
	stream Stream
}

// splitResult separates a type into its element-only residue and the
// stream nodes peeled out of it.
type splitResult struct {
	signals Type
	streams []pathStream
}

// splitStreams recursively peels nested Stream nodes out of a type.
//
// For Group and Union nodes the element residue keeps the record shape
// (with peeled members reduced to Null) while child streams are rekeyed
// under the member's field name. A Stream node emits itself under the
// empty path when it carries element content, user content, or keep, then
// adjusts and re-emits its children:
//
//   - a Reverse parent flips each child's direction
//   - a Flatten or FlatDesync parent forces children to FlatDesync
//   - otherwise non-Flatten children absorb the parent's dimensionality
//   - child throughput is multiplied by the parent's
//
// Stream nodes never contribute element signals upward.
func splitStreams(t Type) splitResult {
	switch v := t.(type) {
	case Null, Bits:
		return splitResult{signals: t}
	case Group:
		fields := make([]Field, 0, len(v.fields))
		var streams []pathStream
		for _, f := range v.fields {
			inner := splitStreams(f.Typ)
			fields = append(fields, Field{Name: f.Name, Typ: inner.signals})
			streams = append(streams, prefixStreams(f.Name, inner.streams)...)
		}
		return splitResult{signals: Group{fields: fields}, streams: streams}
	case Union:
		variants := make([]Field, 0, len(v.variants))
		var streams []pathStream
		for _, f := range v.variants {
			inner := splitStreams(f.Typ)
			variants = append(variants, Field{Name: f.Name, Typ: inner.signals})
			streams = append(streams, prefixStreams(f.Name, inner.streams)...)
		}
		return splitResult{signals: Union{variants: variants}, streams: streams}
	case Stream:
		inner := splitStreams(v.data)

		var streams []pathStream
		self := v
		self.data = inner.signals
		// Null streams are dropped; keep or live user content forces emission.
		if !IsNull(self) {
			streams = append(streams, pathStream{path: name.EmptyPath, stream: self})
		}
		for _, child := range inner.streams {
			streams = append(streams, pathStream{path: child.path, stream: adjustChild(v, child.stream)})
		}
		return splitResult{signals: Null{}, streams: streams}
	default:
		return splitResult{signals: Null{}}
	}
}

// adjustChild applies the parent stream's transport parameters to a peeled
// child stream.
func adjustChild(parent, child Stream) Stream {
	c := child
	if parent.direction == physical.Reverse {
		c.direction = c.direction.Reversed()
	}
	switch parent.synchronicity {
	case Flatten, FlatDesync:
		c.synchronicity = FlatDesync
	default:
		if c.synchronicity != Flatten {
			c.dimensionality += parent.dimensionality
		}
	}
	c.throughput *= parent.throughput
	return c
}

func prefixStreams(prefix name.Name, streams []pathStream) []pathStream {
	if len(streams) == 0 {
		return nil
	}
	out := make([]pathStream, len(streams))
	for i, s := range streams {
		out[i] = pathStream{path: s.path.Prefixed(prefix), stream: s.stream}
	}
	return out
}
