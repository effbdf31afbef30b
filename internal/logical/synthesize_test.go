package logical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tydi-hdl/tydi/internal/name"
	"github.com/tydi-hdl/tydi/internal/physical"
)

func fieldWidths(f physical.Fields) map[string]uint32 {
	out := make(map[string]uint32, f.Len())
	for _, field := range f.Iter() {
		out[field.Name.String()] = field.Width
	}
	return out
}

func streamPaths(s Synthesized) []string {
	paths := make([]string, 0, s.Len())
	for _, ls := range s.Streams() {
		paths = append(paths, ls.Path.String())
	}
	return paths
}

func lowered(t *testing.T, s Synthesized, path string) physical.Stream {
	t.Helper()
	var p name.PathName
	if path != "" {
		var err error
		p, err = name.NewPath(splitPath(path)...)
		require.NoError(t, err)
	}
	phys, ok := s.Stream(p)
	require.True(t, ok, "no lowered stream at %q", path)
	return phys
}

func splitPath(path string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			out = append(out, path[start:i])
			start = i + 1
		}
	}
	return out
}

func TestSynthesizeScalarStream(t *testing.T) {
	syn, err := Synthesize(stream(t, bits(t, 1), WithDimensionality(1)))
	require.NoError(t, err)

	assert.Equal(t, 0, syn.Signals().Len())
	require.Equal(t, 1, syn.Len())

	phys := lowered(t, syn, "")
	assert.Equal(t, uint32(1), phys.ElementLanes())
	assert.Equal(t, uint32(1), phys.Dimensionality())
	assert.Equal(t, uint32(1), phys.DataBitCount())
	assert.Equal(t, map[string]uint32{"": 1}, fieldWidths(phys.ElementFields()))
	// Dimensional, but complexity 0 gives no last signal.
	assert.Equal(t, uint32(0), phys.LastBitCount())
}

func TestSynthesizeElementResidue(t *testing.T) {
	typ := group(t,
		Field{Name: "flag", Typ: bits(t, 1)},
		Field{Name: "words", Typ: stream(t, bits(t, 32))},
	)

	syn, err := Synthesize(typ)
	require.NoError(t, err)

	assert.Equal(t, map[string]uint32{"flag": 1}, fieldWidths(syn.Signals()))
	assert.Equal(t, []string{"words"}, streamPaths(syn))
	assert.Equal(t, uint32(32), lowered(t, syn, "words").DataBitCount())
}

func TestSynthesizeNestedDimensions(t *testing.T) {
	inner := stream(t, bits(t, 4), WithDimensionality(2))
	typ := stream(t,
		group(t,
			Field{Name: "x", Typ: bits(t, 8)},
			Field{Name: "cnt", Typ: inner},
		),
		WithDimensionality(1),
		WithThroughput(2),
	)

	syn, err := Synthesize(typ)
	require.NoError(t, err)
	assert.Equal(t, []string{"", "cnt"}, streamPaths(syn))

	parent := lowered(t, syn, "")
	assert.Equal(t, uint32(2), parent.ElementLanes())
	assert.Equal(t, uint32(1), parent.Dimensionality())
	assert.Equal(t, map[string]uint32{"x": 8}, fieldWidths(parent.ElementFields()))
	assert.Equal(t, uint32(16), parent.DataBitCount())

	child := lowered(t, syn, "cnt")
	assert.Equal(t, uint32(3), child.Dimensionality(), "child absorbs parent dimensions")
	assert.Equal(t, uint32(2), child.ElementLanes(), "throughput multiplies down")
}

func TestSynthesizeFlatten(t *testing.T) {
	t.Run("flatten child keeps its own dimensions", func(t *testing.T) {
		inner := stream(t, bits(t, 4), WithDimensionality(2), WithSynchronicity(Flatten))
		typ := stream(t,
			group(t, Field{Name: "v", Typ: inner}),
			WithDimensionality(3),
		)

		syn, err := Synthesize(typ)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), lowered(t, syn, "v").Dimensionality())
	})

	t.Run("flatten parent decouples sync children", func(t *testing.T) {
		inner := stream(t, bits(t, 4), WithDimensionality(2))
		typ := stream(t,
			group(t, Field{Name: "v", Typ: inner}),
			WithDimensionality(3),
			WithSynchronicity(Flatten),
		)

		syn, err := Synthesize(typ)
		require.NoError(t, err)
		assert.Equal(t, uint32(2), lowered(t, syn, "v").Dimensionality())
	})

	t.Run("desync child still absorbs parent dimensions", func(t *testing.T) {
		inner := stream(t, bits(t, 4), WithDimensionality(2), WithSynchronicity(Desync))
		typ := stream(t,
			group(t, Field{Name: "v", Typ: inner}),
			WithDimensionality(3),
		)

		syn, err := Synthesize(typ)
		require.NoError(t, err)
		assert.Equal(t, uint32(5), lowered(t, syn, "v").Dimensionality())
	})
}

func TestSynthesizeReverse(t *testing.T) {
	inner := stream(t, bits(t, 4))
	typ := stream(t,
		group(t,
			Field{Name: "req", Typ: bits(t, 8)},
			Field{Name: "resp", Typ: inner},
		),
		WithDirection(physical.Reverse),
	)

	syn, err := Synthesize(typ)
	require.NoError(t, err)

	assert.Equal(t, physical.Reverse, lowered(t, syn, "").Direction())
	assert.Equal(t, physical.Reverse, lowered(t, syn, "resp").Direction(), "reverse parent flips the child")

	doubled := stream(t,
		group(t,
			Field{Name: "req", Typ: bits(t, 8)},
			Field{Name: "resp", Typ: inner.Reversed()},
		),
		WithDirection(physical.Reverse),
	)
	syn, err = Synthesize(doubled)
	require.NoError(t, err)
	assert.Equal(t, physical.Forward, lowered(t, syn, "resp").Direction(), "two reversals cancel")
}

func TestSynthesizeNull(t *testing.T) {
	t.Run("null stream vanishes", func(t *testing.T) {
		syn, err := Synthesize(stream(t, Null{}))
		require.NoError(t, err)
		assert.Equal(t, 0, syn.Len())
		assert.Equal(t, 0, syn.Signals().Len())
	})

	t.Run("group of null streams vanishes", func(t *testing.T) {
		typ := group(t,
			Field{Name: "a", Typ: stream(t, Null{})},
			Field{Name: "b", Typ: stream(t, group(t, Field{Name: "n", Typ: Null{}}))},
		)
		syn, err := Synthesize(typ)
		require.NoError(t, err)
		assert.Equal(t, 0, syn.Len())
	})

	t.Run("keep forces an empty stream", func(t *testing.T) {
		syn, err := Synthesize(stream(t, Null{}, WithKeep(true)))
		require.NoError(t, err)
		require.Equal(t, 1, syn.Len())
		phys := lowered(t, syn, "")
		assert.Equal(t, uint32(0), phys.DataBitCount())
		assert.Equal(t, uint32(1), phys.ElementLanes())
	})

	t.Run("live user content forces the stream", func(t *testing.T) {
		syn, err := Synthesize(stream(t, Null{}, WithUser(bits(t, 3))))
		require.NoError(t, err)
		require.Equal(t, 1, syn.Len())
		phys := lowered(t, syn, "")
		assert.Equal(t, uint32(0), phys.DataBitCount())
		assert.Equal(t, uint32(3), phys.UserBitCount())
	})
}

func TestSynthesizeUnion(t *testing.T) {
	t.Run("two variants", func(t *testing.T) {
		typ := stream(t, union(t,
			Field{Name: "word", Typ: bits(t, 32)},
			Field{Name: "byte", Typ: bits(t, 8)},
		))

		syn, err := Synthesize(typ)
		require.NoError(t, err)

		phys := lowered(t, syn, "")
		assert.Equal(t, map[string]uint32{"tag": 1, "data": 32}, fieldWidths(phys.ElementFields()))
	})

	t.Run("three variants with a null", func(t *testing.T) {
		typ := stream(t, union(t,
			Field{Name: "word", Typ: bits(t, 32)},
			Field{Name: "half", Typ: bits(t, 16)},
			Field{Name: "none", Typ: Null{}},
		))

		syn, err := Synthesize(typ)
		require.NoError(t, err)

		phys := lowered(t, syn, "")
		assert.Equal(t, map[string]uint32{"tag": 2, "data": 32}, fieldWidths(phys.ElementFields()))
		assert.Equal(t, uint32(34), phys.DataBitCount())
	})
}

func TestSynthesizeLanes(t *testing.T) {
	tests := []struct {
		throughput float64
		lanes      uint32
	}{
		{0.25, 1},
		{1, 1},
		{1.5, 2},
		{2.5, 3},
		{4, 4},
	}
	for _, tt := range tests {
		syn, err := Synthesize(stream(t, bits(t, 8), WithThroughput(tt.throughput)))
		require.NoError(t, err)
		assert.Equal(t, tt.lanes, lowered(t, syn, "").ElementLanes(), "throughput=%v", tt.throughput)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	mk := func() Type {
		return stream(t, group(t,
			Field{Name: "a", Typ: bits(t, 8)},
			Field{Name: "b", Typ: stream(t, bits(t, 4), WithDimensionality(1))},
			Field{Name: "c", Typ: stream(t, bits(t, 2))},
		), WithDimensionality(2), WithComplexity(physical.Major(7)))
	}

	first, err := Synthesize(mk())
	require.NoError(t, err)
	second, err := Synthesize(mk())
	require.NoError(t, err)

	require.Equal(t, streamPaths(first), streamPaths(second))
	for i, ls := range first.Streams() {
		assert.True(t, ls.Stream.Equal(second.Streams()[i].Stream), "stream %q differs", ls.Path)
	}
}

func TestFlattenFields(t *testing.T) {
	typ := group(t,
		Field{Name: "hdr", Typ: group(t,
			Field{Name: "len", Typ: bits(t, 16)},
			Field{Name: "pad", Typ: Null{}},
		)},
		Field{Name: "body", Typ: bits(t, 8)},
	)

	fields, err := FlattenFields(typ)
	require.NoError(t, err)

	require.Equal(t, 2, fields.Len())
	iter := fields.Iter()
	assert.Equal(t, "hdr.len", iter[0].Name.String())
	assert.Equal(t, uint32(16), iter[0].Width)
	assert.Equal(t, "body", iter[1].Name.String())
	assert.Equal(t, uint32(8), iter[1].Width)
	assert.Equal(t, uint32(24), fields.Width())
}
