package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/logical"
	"github.com/tydi-hdl/tydi/internal/name"
	"github.com/tydi-hdl/tydi/internal/physical"
)

func mustType(t *testing.T, src string) logical.Type {
	t.Helper()
	typ, err := ParseType("test.tdf", src)
	require.NoError(t, err)
	return typ
}

func TestParseType(t *testing.T) {
	bit8, err := logical.NewBits(8)
	require.NoError(t, err)

	t.Run("null", func(t *testing.T) {
		assert.True(t, logical.Equal(logical.Null{}, mustType(t, "Null")))
	})

	t.Run("bits", func(t *testing.T) {
		assert.True(t, logical.Equal(bit8, mustType(t, "Bits<8>")))
	})

	t.Run("group", func(t *testing.T) {
		got := mustType(t, "Group<a: Bits<8>, b: Null>")
		g, ok := got.(logical.Group)
		require.True(t, ok)
		fields := g.Fields()
		require.Len(t, fields, 2)
		assert.Equal(t, name.MustNew("a"), fields[0].Name)
		assert.Equal(t, name.MustNew("b"), fields[1].Name)
	})

	t.Run("stream with options", func(t *testing.T) {
		got := mustType(t, "Stream<Bits<8>, t=2.5, d=2, s=Desync, c=4.1, r=Reverse, u=Bits<3>, x=true>")
		s, ok := got.(logical.Stream)
		require.True(t, ok)
		assert.Equal(t, 2.5, s.Throughput())
		assert.Equal(t, uint32(2), s.Dimensionality())
		assert.Equal(t, logical.Desync, s.Synchronicity())
		assert.True(t, s.Complexity().Eq(mustComplexity(t, 4, 1)))
		assert.Equal(t, physical.Reverse, s.Direction())
		u, hasUser := s.User()
		require.True(t, hasUser)
		b, ok := u.(logical.Bits)
		require.True(t, ok)
		assert.Equal(t, uint32(3), b.Width())
		assert.True(t, s.Keep())
	})

	t.Run("nested stream", func(t *testing.T) {
		got := mustType(t, "Stream<Group<x: Bits<8>, sub: Stream<Bits<4>, d=1>>, d=1>")
		_, ok := got.(logical.Stream)
		assert.True(t, ok)
	})

	t.Run("canonical rendering round-trips", func(t *testing.T) {
		sources := []string{
			"Null",
			"Bits<17>",
			"Group<a: Bits<8>, b: Null>",
			"Union<x: Bits<1>, y: Bits<2>>",
			"Stream<Bits<1>>",
			"Stream<Bits<4>, t=2.5, d=2, s=Desync, c=7, r=Reverse, u=Bits<3>, x=true>",
		}
		for _, src := range sources {
			typ := mustType(t, src)
			again := mustType(t, logical.TypeString(typ))
			assert.True(t, logical.Equal(typ, again), src)
		}
	})

	t.Run("errors carry position", func(t *testing.T) {
		tests := []struct {
			src  string
			line int
		}{
			{"Bits<0>", 1},
			{"Bogus<1>", 1},
			{"Stream<Bits<8>, z=1>", 1},
			{"Group<a: Bits<8>,\n a: Bits<8>>", 1},
			{"Stream<Bits<8>", 1},
		}
		for _, tt := range tests {
			_, err := ParseType("test.tdf", tt.src)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "source %q gave %v", tt.src, err)
			assert.Equal(t, "test.tdf", pe.File, tt.src)
			assert.GreaterOrEqual(t, pe.Line, tt.line, tt.src)
		}
	})
}

func mustComplexity(t *testing.T, levels ...uint32) physical.Complexity {
	t.Helper()
	c, err := physical.NewComplexity(levels)
	require.NoError(t, err)
	return c
}

func TestParseStreamlets(t *testing.T) {
	src := `
/// Splits frames into lines.
Streamlet splitter (
    /// Incoming frames.
    frames : in Stream<Bits<8>, d=2>,
    lines  : out Stream<Bits<8>, d=3>,
)

Streamlet merger (
    a : in Stream<Bits<8>>,
    b : in Stream<Bits<8>>,
    q : out Stream<Bits<8>>,
)
`
	streamlets, err := ParseStreamlets("lib.tdf", src)
	require.NoError(t, err)
	require.Len(t, streamlets, 2)

	splitter := streamlets[0]
	assert.Equal(t, name.MustNew("splitter"), splitter.Key())
	assert.Equal(t, "Splits frames into lines.", splitter.Doc())
	require.Len(t, splitter.Interfaces(), 2)

	frames, err := splitter.Interface(name.MustNew("frames"))
	require.NoError(t, err)
	assert.Equal(t, design.In, frames.Mode())
	assert.Equal(t, "Incoming frames.", frames.Doc())
	assert.Equal(t, "Stream<Bits<8>, d=2>", logical.TypeString(frames.Type()))

	merger := streamlets[1]
	assert.Len(t, merger.Inputs(), 2)
	assert.Len(t, merger.Outputs(), 1)
	assert.Empty(t, merger.Doc())
}

func TestParseStreamletErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"reserved interface key", "Streamlet x (clk : in Null)", 1},
		{"bad mode", "Streamlet x (a : inout Null)", 1},
		{"duplicate interface", "Streamlet x (\n a : in Null,\n a : in Null)", 1},
		{"missing paren", "Streamlet x (a : in Null", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStreamlets("lib.tdf", tt.src)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
			assert.GreaterOrEqual(t, pe.Line, tt.line)
		})
	}
}

func TestParseImpls(t *testing.T) {
	src := `
impl work::X {
    // instance declarations
    p1 : work::P1
    m  : MapStream(p1)
    r  : ReduceStream(p1)
    f  : FilterStream(sel.out)
    s  : Stub(work::P1)
    p1.out -> m.in
    a <=> b <=> c
}
`
	decls, err := ParseImpls("x.timpl", src)
	require.NoError(t, err)
	require.Len(t, decls, 1)

	decl := decls[0]
	assert.Equal(t, Ref{Lib: "work", Name: "X"}, decl.Target)
	require.Len(t, decl.Stmts, 7)

	assert.Equal(t, NodeDecl{Line: 4, Name: "p1", Target: Ref{Lib: "work", Name: "P1"}}, decl.Stmts[0])
	assert.Equal(t, MapDecl{Line: 5, Name: "m", Op: "p1"}, decl.Stmts[1])
	assert.Equal(t, ReduceDecl{Line: 6, Name: "r", Op: "p1"}, decl.Stmts[2])
	assert.Equal(t, FilterDecl{Line: 7, Name: "f", Pred: PortRef{Node: "sel", Iface: "out"}}, decl.Stmts[3])
	assert.Equal(t, StubDecl{Line: 8, Name: "s", Ref: Ref{Lib: "work", Name: "P1"}}, decl.Stmts[4])
	assert.Equal(t, EdgeDecl{
		Line: 9,
		Src:  PortRef{Node: "p1", Iface: "out"},
		Dst:  PortRef{Node: "m", Iface: "in"},
	}, decl.Stmts[5])
	assert.Equal(t, ChainDecl{Line: 10, Nodes: []string{"a", "b", "c"}}, decl.Stmts[6])
}

func TestParseImplErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing impl keyword", "implement work::X {}", `x.timpl:1: expected "impl"`},
		{"unknown pattern", "impl work::X {\n n : Frobnicate(a)\n}", "x.timpl:2: unknown pattern"},
		{"unterminated block", "impl work::X {\n a : work::B\n", "x.timpl:3: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseImpls("x.timpl", tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
