package logical

import (
	"math"

	"github.com/tydi-hdl/tydi/internal/name"
	"github.com/tydi-hdl/tydi/internal/physical"
)

// LoweredStream is one physical stream produced by lowering, keyed by the
// field path that led to its Stream node.
type LoweredStream struct {
	Path   name.PathName
	Stream physical.Stream
}

// Synthesized is the result of lowering a logical type: the flattened
// element-only residue (empty for stream-rooted types) and the physical
// streams in emission order.
type Synthesized struct {
	signals physical.Fields
	streams []LoweredStream
}

// Signals returns the flattened element residue.
func (s Synthesized) Signals() physical.Fields {
	return s.signals
}

// Streams returns the lowered physical streams in emission order.
func (s Synthesized) Streams() []LoweredStream {
	out := make([]LoweredStream, len(s.streams))
	copy(out, s.streams)
	return out
}

// Stream looks up a lowered stream by path.
func (s Synthesized) Stream(path name.PathName) (physical.Stream, bool) {
	for _, ls := range s.streams {
		if ls.Path.Equal(path) {
			return ls.Stream, true
		}
	}
	return physical.Stream{}, false
}

// Len returns the number of lowered streams.
func (s Synthesized) Len() int {
	return len(s.streams)
}

// Synthesize lowers a logical type to its physical form.
//
// Lowering is deterministic: the emission order and the field paths follow
// the declaration order of the type tree, and repeated lowerings of equal
// types produce equal results.
func Synthesize(t Type) (Synthesized, error) {
	res := splitStreams(t)

	signals, err := FlattenFields(res.signals)
	if err != nil {
		return Synthesized{}, err
	}

	out := Synthesized{signals: signals}
	for _, ps := range res.streams {
		fields, err := FlattenFields(ps.stream.data)
		if err != nil {
			return Synthesized{}, err
		}
		var user physical.Fields
		if ps.stream.user != nil {
			user, err = FlattenFields(ps.stream.user)
			if err != nil {
				return Synthesized{}, err
			}
		}
		phys, err := physical.NewStream(
			fields,
			lanesFor(ps.stream.throughput),
			ps.stream.dimensionality,
			ps.stream.complexity,
			user,
			ps.stream.direction,
		)
		if err != nil {
			return Synthesized{}, err
		}
		out.streams = append(out.streams, LoweredStream{Path: ps.Path(), Stream: phys})
	}
	return out, nil
}

// Path returns a defensive copy of the stream path.
func (p pathStream) Path() name.PathName {
	out := make(name.PathName, len(p.path))
	copy(out, p.path)
	return out
}

// lanesFor returns the element lane count for a throughput: the ceiling,
// with a minimum of one lane. Fractional throughput below one keeps a
// single lane; the slack shows up as back-pressure, not fewer wires.
func lanesFor(throughput float64) uint32 {
	lanes := math.Ceil(throughput)
	if lanes < 1 {
		return 1
	}
	return uint32(lanes)
}

// FlattenFields flattens the element content of an element-only type into
// an ordered path-to-width field map. Group members flatten under their
// field name; a Union contributes a tag field (two or more variants) and a
// data field of the maximum variant width. Anonymous segments are elided:
// a bare Bits type flattens to a single field with an empty path.
func FlattenFields(t Type) (physical.Fields, error) {
	var fields physical.Fields
	if err := flattenInto(&fields, name.EmptyPath, t); err != nil {
		return physical.Fields{}, err
	}
	return fields, nil
}

func flattenInto(fields *physical.Fields, prefix name.PathName, t Type) error {
	switch v := t.(type) {
	case Null:
		return nil
	case Bits:
		return fields.Insert(prefix, v.width)
	case Group:
		for _, f := range v.fields {
			if err := flattenInto(fields, prefix.With(f.Name), f.Typ); err != nil {
				return err
			}
		}
		return nil
	case Union:
		if tag := v.TagWidth(); tag > 0 {
			if err := fields.Insert(prefix.With("tag"), tag); err != nil {
				return err
			}
		}
		var width uint32
		for _, f := range v.variants {
			w, err := flattenedWidth(f.Typ)
			if err != nil {
				return err
			}
			if w > width {
				width = w
			}
		}
		if width > 0 {
			return fields.Insert(prefix.With("data"), width)
		}
		return nil
	case Stream:
		// Stream nodes are peeled before flattening; a stream reaching
		// this point carries no element content for its parent.
		return nil
	default:
		return nil
	}
}

func flattenedWidth(t Type) (uint32, error) {
	inner, err := FlattenFields(t)
	if err != nil {
		return 0, err
	}
	return inner.Width(), nil
}
