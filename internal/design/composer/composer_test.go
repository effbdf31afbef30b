package composer

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

var _ design.Implementation = (*Graph)(nil)

func byteStream(t *testing.T, width uint32, opts ...logical.StreamOption) logical.Stream {
	t.Helper()
	b, err := logical.NewBits(width)
	require.NoError(t, err)
	s, err := logical.NewStream(b, opts...)
	require.NoError(t, err)
	return s
}

func iface(t *testing.T, key string, mode design.Mode, typ logical.Type, opts ...design.InterfaceOption) design.Interface {
	t.Helper()
	i, err := design.NewInterface(key, mode, typ, opts...)
	require.NoError(t, err)
	return i
}

func workProject(t *testing.T) (*design.Project, *design.Library) {
	t.Helper()
	p, err := design.NewProject("demo")
	require.NoError(t, err)
	lib, err := p.AddLibrary("work")
	require.NoError(t, err)
	return p, lib
}

func addStreamlet(t *testing.T, lib *design.Library, key string, ifaces ...design.Interface) design.StreamletHandle {
	t.Helper()
	s, err := design.NewStreamlet(key, ifaces...)
	require.NoError(t, err)
	_, err = lib.AddStreamlet(s)
	require.NoError(t, err)
	return design.StreamletHandle{Lib: lib.Key(), Streamlet: name.MustNew(key)}
}

// pipeProject declares an owner X and three pass-through stages, all over
// Stream<Bits<8>>.
func pipeProject(t *testing.T) (*design.Project, design.StreamletHandle) {
	t.Helper()
	p, lib := workProject(t)
	byte8 := byteStream(t, 8)
	owner := addStreamlet(t, lib, "X",
		iface(t, "a", design.In, byte8),
		iface(t, "b", design.Out, byte8),
	)
	for _, key := range []string{"P1", "P2", "P3"} {
		addStreamlet(t, lib, key,
			iface(t, "in", design.In, byte8),
			iface(t, "out", design.Out, byte8),
		)
	}
	return p, owner
}

func requireComposerError(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	var ce *Error
	require.True(t, errors.As(err, &ce), "expected *composer.Error, got %v", err)
	assert.Equal(t, code, ce.Code)
}

func port(node, iface string) NodeIFHandle {
	return NodeIFHandle{Node: name.MustNew(node), Iface: name.MustNew(iface)}
}

func nodeIfaceType(t *testing.T, g *Graph, node, key string) logical.Type {
	t.Helper()
	n, err := g.Node(name.MustNew(node))
	require.NoError(t, err)
	i, err := n.Streamlet().Interface(name.MustNew(key))
	require.NoError(t, err)
	return i.Type()
}

func TestChainPipeline(t *testing.T) {
	p, owner := pipeProject(t)
	g, err := NewGraph(p, owner)
	require.NoError(t, err)

	for i, key := range []string{"p1", "p2", "p3"} {
		target := design.StreamletHandle{Lib: "work", Streamlet: name.MustNew([]string{"P1", "P2", "P3"}[i])}
		_, err := g.AddInstance(key, target)
		require.NoError(t, err)
	}

	require.NoError(t, g.Chain(name.MustNew("p1"), name.MustNew("p2"), name.MustNew("p3")))

	assert.Len(t, g.Nodes(), 4)
	require.Len(t, g.Edges(), 2)
	assert.Equal(t, Edge{Source: port("p1", "out"), Sink: port("p2", "in")}, g.Edges()[0])
	assert.Equal(t, Edge{Source: port("p2", "out"), Sink: port("p3", "in")}, g.Edges()[1])

	// The boundary node drives the pipeline: the external input a is an
	// output inside the graph.
	require.NoError(t, g.Connect(port("this", "a"), port("p1", "in")))
	require.NoError(t, g.Connect(port("p3", "out"), port("this", "b")))
	assert.Len(t, g.Edges(), 4)
}

func TestChainRequiresLiteralPorts(t *testing.T) {
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	addStreamlet(t, lib, "A", iface(t, "q", design.Out, byteStream(t, 8)))
	addStreamlet(t, lib, "B", iface(t, "in", design.In, byteStream(t, 8)))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddInstance("a", design.StreamletHandle{Lib: "work", Streamlet: "A"})
	require.NoError(t, err)
	_, err = g.AddInstance("b", design.StreamletHandle{Lib: "work", Streamlet: "B"})
	require.NoError(t, err)

	err = g.Chain(name.MustNew("a"), name.MustNew("b"))
	requireComposerError(t, err, ErrCodeNoChainPort)
}

func TestConnectChecks(t *testing.T) {
	newPipe := func(t *testing.T) *Graph {
		p, owner := pipeProject(t)
		g, err := NewGraph(p, owner)
		require.NoError(t, err)
		for i, key := range []string{"p1", "p2", "p3"} {
			target := design.StreamletHandle{Lib: "work", Streamlet: name.MustNew([]string{"P1", "P2", "P3"}[i])}
			_, err := g.AddInstance(key, target)
			require.NoError(t, err)
		}
		return g
	}

	t.Run("unknown node", func(t *testing.T) {
		g := newPipe(t)
		err := g.Connect(port("nope", "out"), port("p2", "in"))
		requireComposerError(t, err, ErrCodeNodeNotFound)
	})

	t.Run("unknown interface", func(t *testing.T) {
		g := newPipe(t)
		err := g.Connect(port("p1", "nope"), port("p2", "in"))
		requireComposerError(t, err, ErrCodeIfaceNotFound)
	})

	t.Run("two outputs rejected", func(t *testing.T) {
		g := newPipe(t)
		err := g.Connect(port("p1", "out"), port("p2", "out"))
		requireComposerError(t, err, ErrCodeNotAnInput)
	})

	t.Run("swapped endpoints of an accepted edge are rejected", func(t *testing.T) {
		g := newPipe(t)
		require.NoError(t, g.Connect(port("p1", "out"), port("p2", "in")))
		err := g.Connect(port("p2", "in"), port("p1", "out"))
		requireComposerError(t, err, ErrCodeNotAnOutput)
	})

	t.Run("single assignment per endpoint", func(t *testing.T) {
		g := newPipe(t)
		require.NoError(t, g.Connect(port("p1", "out"), port("p2", "in")))

		err := g.Connect(port("p1", "out"), port("p3", "in"))
		requireComposerError(t, err, ErrCodeAlreadyConnected)

		err = g.Connect(port("p3", "out"), port("p2", "in"))
		requireComposerError(t, err, ErrCodeAlreadyConnected)

		assert.Len(t, g.Edges(), 1)
	})
}

func TestConnectTypeMismatch(t *testing.T) {
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	addStreamlet(t, lib, "A", iface(t, "out", design.Out, byteStream(t, 8)))
	addStreamlet(t, lib, "B", iface(t, "in", design.In, byteStream(t, 16)))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddInstance("a", design.StreamletHandle{Lib: "work", Streamlet: "A"})
	require.NoError(t, err)
	_, err = g.AddInstance("b", design.StreamletHandle{Lib: "work", Streamlet: "B"})
	require.NoError(t, err)

	err = g.Connect(port("a", "out"), port("b", "in"))
	requireComposerError(t, err, ErrCodeTypeMismatch)
	assert.Empty(t, g.Edges())
}

func TestConnectRollsBackInference(t *testing.T) {
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	addStreamlet(t, lib, "A", iface(t, "p", design.Out, byteStream(t, 8)))
	// q infers its type from any peer, but is an output: the connect must
	// fail the mode check after inference already ran.
	addStreamlet(t, lib, "B",
		iface(t, "q", design.Out, byteStream(t, 16), design.WithInference(design.InferSamePeer)))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddInstance("a", design.StreamletHandle{Lib: "work", Streamlet: "A"})
	require.NoError(t, err)
	_, err = g.AddInstance("b", design.StreamletHandle{Lib: "work", Streamlet: "B"})
	require.NoError(t, err)

	err = g.Connect(port("a", "p"), port("b", "q"))
	requireComposerError(t, err, ErrCodeNotAnInput)

	// The staged inference mutation did not survive the failed connect.
	got := nodeIfaceType(t, g, "b", "q")
	assert.True(t, logical.Equal(byteStream(t, 16), got))
	assert.Empty(t, g.Edges())
}

func TestMapStream(t *testing.T) {
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	op := addStreamlet(t, lib, "Op",
		iface(t, "in", design.In, byteStream(t, 8)),
		iface(t, "out", design.Out, byteStream(t, 8)),
	)

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	n, err := g.AddMapStream("m", op)
	require.NoError(t, err)

	assert.Equal(t, NodePattern, n.Kind())
	assert.Equal(t, PatternMap, n.Pattern())
	assert.Equal(t, "gen::m_gen", n.Handle().String())

	want := byteStream(t, 8, logical.WithDimensionality(1))
	assert.True(t, logical.Equal(want, nodeIfaceType(t, g, "m", "in")))
	assert.True(t, logical.Equal(want, nodeIfaceType(t, g, "m", "out")))

	// The generated streamlet is registered in the gen library.
	genLib, err := p.Library(design.GenLibrary)
	require.NoError(t, err)
	_, err = genLib.Streamlet(name.MustNew("m_gen"))
	require.NoError(t, err)
}

func TestMapStreamRequiresStreamInput(t *testing.T) {
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	bits, err := logical.NewBits(8)
	require.NoError(t, err)
	op := addStreamlet(t, lib, "Op", iface(t, "in", design.In, bits))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddMapStream("m", op)
	requireComposerError(t, err, ErrCodeIfaceNotFound)
}

func TestReduceStream(t *testing.T) {
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	op := addStreamlet(t, lib, "Op",
		iface(t, "in", design.In, byteStream(t, 8, logical.WithDimensionality(2))))
	addStreamlet(t, lib, "Src",
		iface(t, "out", design.Out, byteStream(t, 8, logical.WithDimensionality(2))))
	addStreamlet(t, lib, "Snk",
		iface(t, "in", design.In, byteStream(t, 8, logical.WithDimensionality(1))))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddInstance("src", design.StreamletHandle{Lib: "work", Streamlet: "Src"})
	require.NoError(t, err)
	_, err = g.AddInstance("snk", design.StreamletHandle{Lib: "work", Streamlet: "Snk"})
	require.NoError(t, err)
	_, err = g.AddReduceStream("r", op)
	require.NoError(t, err)

	require.NoError(t, g.Connect(port("src", "out"), port("r", "in")))

	assert.True(t, logical.Equal(
		byteStream(t, 8, logical.WithDimensionality(2)),
		nodeIfaceType(t, g, "r", "in")))
	assert.True(t, logical.Equal(
		byteStream(t, 8, logical.WithDimensionality(1)),
		nodeIfaceType(t, g, "r", "out")))

	// The pattern node also works as the driving side of an edge.
	require.NoError(t, g.Connect(port("r", "out"), port("snk", "in")))
	assert.Len(t, g.Edges(), 2)
}

func TestReduceStreamRecomputesFromPeer(t *testing.T) {
	// The operand declares d=2 but the connected producer carries d=3: the
	// connect action must recompute out from the inferred input, not from
	// the factory-time default.
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	op := addStreamlet(t, lib, "Op",
		iface(t, "in", design.In, byteStream(t, 8, logical.WithDimensionality(2))))
	addStreamlet(t, lib, "Src",
		iface(t, "out", design.Out, byteStream(t, 8, logical.WithDimensionality(3))))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddInstance("src", design.StreamletHandle{Lib: "work", Streamlet: "Src"})
	require.NoError(t, err)
	_, err = g.AddReduceStream("r", op)
	require.NoError(t, err)

	require.NoError(t, g.Connect(port("src", "out"), port("r", "in")))
	assert.True(t, logical.Equal(
		byteStream(t, 8, logical.WithDimensionality(2)),
		nodeIfaceType(t, g, "r", "out")))
}

func TestReduceStreamRejectsScalarOperand(t *testing.T) {
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	op := addStreamlet(t, lib, "Op",
		iface(t, "in", design.In, byteStream(t, 8)))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddReduceStream("r", op)
	requireComposerError(t, err, ErrCodeTypeMismatch)
}

func TestReduceStreamRejectsScalarProducer(t *testing.T) {
	// The operand declares d=2, but the connected producer carries d=0:
	// there is no dimension left to fold, so the connect must fail and
	// leave the node untouched.
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	op := addStreamlet(t, lib, "Op",
		iface(t, "in", design.In, byteStream(t, 8, logical.WithDimensionality(2))))
	addStreamlet(t, lib, "Src",
		iface(t, "out", design.Out, byteStream(t, 8)))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddInstance("src", design.StreamletHandle{Lib: "work", Streamlet: "Src"})
	require.NoError(t, err)
	_, err = g.AddReduceStream("r", op)
	require.NoError(t, err)

	err = g.Connect(port("src", "out"), port("r", "in"))
	requireComposerError(t, err, ErrCodeTypeMismatch)

	assert.True(t, logical.Equal(
		byteStream(t, 8, logical.WithDimensionality(2)),
		nodeIfaceType(t, g, "r", "in")))
	assert.Empty(t, g.Edges())
}

func TestFilterStream(t *testing.T) {
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	addStreamlet(t, lib, "Sel",
		iface(t, "out", design.Out, byteStream(t, 1, logical.WithDimensionality(1))))
	addStreamlet(t, lib, "Src",
		iface(t, "out", design.Out, byteStream(t, 8, logical.WithDimensionality(1))))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddInstance("sel", design.StreamletHandle{Lib: "work", Streamlet: "Sel"})
	require.NoError(t, err)
	_, err = g.AddInstance("src", design.StreamletHandle{Lib: "work", Streamlet: "Src"})
	require.NoError(t, err)

	n, err := g.AddFilterStream("f", port("sel", "out"))
	require.NoError(t, err)
	assert.Equal(t, PatternFilter, n.Pattern())

	// The predicate edge was auto-emitted.
	require.Len(t, g.Edges(), 1)
	assert.Equal(t, Edge{Source: port("sel", "out"), Sink: port("f", "pred")}, g.Edges()[0])

	require.NoError(t, g.Connect(port("src", "out"), port("f", "in")))

	in := byteStream(t, 8, logical.WithDimensionality(1))
	assert.True(t, logical.Equal(in, nodeIfaceType(t, g, "f", "in")))
	assert.True(t, logical.Equal(in, nodeIfaceType(t, g, "f", "out")))

	pred, ok := nodeIfaceType(t, g, "f", "pred").(logical.Stream)
	require.True(t, ok)
	assert.Equal(t, uint32(1), pred.Dimensionality(), "predicate tracks the input dimensions")
	b, ok := pred.Data().(logical.Bits)
	require.True(t, ok)
	assert.Equal(t, uint32(1), b.Width())
}

func TestFilterStreamRejectsWidePredicate(t *testing.T) {
	// The pred sink infers from its peer, but only one-bit streams may
	// drive it.
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	addStreamlet(t, lib, "Sel", iface(t, "out", design.Out, byteStream(t, 8)))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddInstance("sel", design.StreamletHandle{Lib: "work", Streamlet: "Sel"})
	require.NoError(t, err)

	_, err = g.AddFilterStream("f", port("sel", "out"))
	requireComposerError(t, err, ErrCodeTypeMismatch)
	assert.Empty(t, g.Edges())
}

func TestFilterStreamPredicateMustTrackInput(t *testing.T) {
	// The predicate edge commits before in is typed. Once in carries a
	// d=1 stream, the committed d=0 predicate no longer matches, so the
	// in connect must fail instead of silently retyping the pred sink
	// away from its committed source.
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	addStreamlet(t, lib, "Sel", iface(t, "out", design.Out, byteStream(t, 1)))
	addStreamlet(t, lib, "Src",
		iface(t, "out", design.Out, byteStream(t, 8, logical.WithDimensionality(1))))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	_, err = g.AddInstance("sel", design.StreamletHandle{Lib: "work", Streamlet: "Sel"})
	require.NoError(t, err)
	_, err = g.AddInstance("src", design.StreamletHandle{Lib: "work", Streamlet: "Src"})
	require.NoError(t, err)

	_, err = g.AddFilterStream("f", port("sel", "out"))
	require.NoError(t, err)
	require.Len(t, g.Edges(), 1)

	err = g.Connect(port("src", "out"), port("f", "in"))
	requireComposerError(t, err, ErrCodeTypeMismatch)

	// The failed connect left both the pred type and the edge list alone.
	assert.True(t, logical.Equal(byteStream(t, 1), nodeIfaceType(t, g, "f", "pred")))
	assert.Len(t, g.Edges(), 1)
}

func TestPredicateStreamCarriesTransport(t *testing.T) {
	in := byteStream(t, 8,
		logical.WithThroughput(2),
		logical.WithDimensionality(1),
		logical.WithSynchronicity(logical.Desync),
		logical.WithDirection(physical.Reverse),
	)

	pred, err := predicateStream(in)
	require.NoError(t, err)

	assert.Equal(t, 2.0, pred.Throughput())
	assert.Equal(t, uint32(1), pred.Dimensionality())
	assert.Equal(t, logical.Desync, pred.Synchronicity())
	assert.Equal(t, physical.Reverse, pred.Direction())
}

func TestStubKinds(t *testing.T) {
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	addStreamlet(t, lib, "SrcOnly", iface(t, "out", design.Out, byteStream(t, 8)))
	addStreamlet(t, lib, "SinkOnly", iface(t, "in", design.In, byteStream(t, 8)))
	addStreamlet(t, lib, "Both",
		iface(t, "in", design.In, byteStream(t, 8)),
		iface(t, "out", design.Out, byteStream(t, 8)),
	)
	addStreamlet(t, lib, "Empty")

	g, err := NewGraph(p, owner)
	require.NoError(t, err)

	tests := []struct {
		node string
		ref  string
		want PatternKind
	}{
		{"s1", "SrcOnly", PatternStubSource},
		{"s2", "SinkOnly", PatternStubSink},
		{"s3", "Both", PatternStubPassthrough},
	}
	for _, tt := range tests {
		n, err := g.AddStub(tt.node, design.StreamletHandle{Lib: "work", Streamlet: name.MustNew(tt.ref)})
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, n.Pattern(), tt.ref)
	}

	_, err = g.AddStub("s4", design.StreamletHandle{Lib: "work", Streamlet: "Empty"})
	requireComposerError(t, err, ErrCodeIfaceNotFound)
}

func TestPerInstanceTypesStayLocal(t *testing.T) {
	// Two instances of the same library streamlet: inference on one must
	// not leak into the other or into the library definition.
	p, lib := workProject(t)
	owner := addStreamlet(t, lib, "X")
	addStreamlet(t, lib, "Sink",
		iface(t, "in", design.In, byteStream(t, 16), design.WithInference(design.InferSamePeer)))
	addStreamlet(t, lib, "Src", iface(t, "out", design.Out, byteStream(t, 8)))

	g, err := NewGraph(p, owner)
	require.NoError(t, err)
	for _, key := range []string{"k1", "k2"} {
		_, err := g.AddInstance(key, design.StreamletHandle{Lib: "work", Streamlet: "Sink"})
		require.NoError(t, err)
	}
	_, err = g.AddInstance("src", design.StreamletHandle{Lib: "work", Streamlet: "Src"})
	require.NoError(t, err)

	require.NoError(t, g.Connect(port("src", "out"), port("k1", "in")))

	assert.True(t, logical.Equal(byteStream(t, 8), nodeIfaceType(t, g, "k1", "in")))
	assert.True(t, logical.Equal(byteStream(t, 16), nodeIfaceType(t, g, "k2", "in")))

	libDef, err := p.Streamlet(design.StreamletHandle{Lib: "work", Streamlet: "Sink"})
	require.NoError(t, err)
	defIface, err := libDef.Interface(name.MustNew("in"))
	require.NoError(t, err)
	assert.True(t, logical.Equal(byteStream(t, 16), defIface.Type()))
}
