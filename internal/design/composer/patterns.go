package composer

import (
	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/logical"
	"github.com/tydi-hdl/tydi/internal/name"
	"github.com/tydi-hdl/tydi/internal/physical"
)

// PatternKind discriminates the generated pattern streamlets.
type PatternKind int

const (
	// PatternNone marks non-pattern nodes.
	PatternNone PatternKind = iota
	// PatternMap lifts an operation over one extra sequence dimension.
	PatternMap
	// PatternReduce folds the innermost sequence dimension away.
	PatternReduce
	// PatternFilter drops elements a predicate stream rejects.
	PatternFilter
	// PatternStubSource drives default values on every output.
	PatternStubSource
	// PatternStubSink consumes every input.
	PatternStubSink
	// PatternStubPassthrough copies inputs to outputs.
	PatternStubPassthrough
)

func (k PatternKind) String() string {
	switch k {
	case PatternMap:
		return "MapStream"
	case PatternReduce:
		return "ReduceStream"
	case PatternFilter:
		return "FilterStream"
	case PatternStubSource:
		return "Stub(Source)"
	case PatternStubSink:
		return "Stub(Sink)"
	case PatternStubPassthrough:
		return "Stub(Passthrough)"
	default:
		return "none"
	}
}

// genName derives the registered name of a generated streamlet.
func genName(caller string) (name.Name, error) {
	return name.New(caller + "_gen")
}

// NewMapStream registers a streamlet that applies op element-wise over one
// extra sequence dimension. Its in and out streams carry op's stream input
// element type with the dimensionality raised by one; complexity resets to
// the default, the remaining transport parameters are inherited.
func NewMapStream(p *design.Project, caller string, op design.StreamletHandle) (design.StreamletHandle, error) {
	opStreamlet, err := p.Streamlet(op)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	base, err := firstStreamInput(opStreamlet)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	lifted, err := base.Rebuilt(
		logical.WithDimensionality(base.Dimensionality()+1),
		logical.WithComplexity(physical.DefaultComplexity()),
	)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	return registerPattern(p, caller,
		portPair{in: lifted, out: lifted, inRule: design.InferIdentity})
}

// NewReduceStream registers a streamlet that folds the innermost sequence
// dimension of its input away. The in stream adopts whatever type it is
// connected to; a connect action then recomputes out with the
// dimensionality lowered by one. The operand's stream input must have at
// least one dimension to fold.
func NewReduceStream(p *design.Project, caller string, op design.StreamletHandle) (design.StreamletHandle, error) {
	opStreamlet, err := p.Streamlet(op)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	base, err := firstStreamInput(opStreamlet)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	if base.Dimensionality() == 0 {
		return design.StreamletHandle{}, newError(ErrCodeTypeMismatch,
			"reduce over %s needs a stream input with at least one dimension, got %s",
			op, logical.TypeString(base))
	}
	out, err := base.Rebuilt(logical.WithDimensionality(base.Dimensionality() - 1))
	if err != nil {
		return design.StreamletHandle{}, err
	}
	return registerPattern(p, caller,
		portPair{in: base, out: out, inRule: design.InferSamePeer})
}

// NewFilterStream registers a streamlet that forwards the elements of its
// input stream for which a one-bit predicate stream holds. The in stream
// adopts its peer's type on connection; out and pred are recomputed from
// it by a connect action.
func NewFilterStream(p *design.Project, caller string) (design.StreamletHandle, error) {
	empty, err := logical.NewStream(logical.Null{})
	if err != nil {
		return design.StreamletHandle{}, err
	}
	pred, err := predicateStream(empty)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	predIface, err := design.NewInterface("pred", design.In, pred,
		design.WithInference(design.InferSamePeer))
	if err != nil {
		return design.StreamletHandle{}, err
	}
	return registerPattern(p, caller,
		portPair{in: empty, out: empty, inRule: design.InferSamePeer},
		predIface)
}

// NewStub registers a trivial implementation shaped after a reference
// streamlet: a source when it only has outputs, a sink when it only has
// inputs, a passthrough when it has both.
func NewStub(p *design.Project, caller string, ref design.StreamletHandle) (design.StreamletHandle, PatternKind, error) {
	refStreamlet, err := p.Streamlet(ref)
	if err != nil {
		return design.StreamletHandle{}, PatternNone, err
	}
	inputs, outputs := refStreamlet.Inputs(), refStreamlet.Outputs()

	var kind PatternKind
	switch {
	case len(inputs) == 0 && len(outputs) == 0:
		return design.StreamletHandle{}, PatternNone,
			newError(ErrCodeIfaceNotFound, "stub reference %s has no interfaces", ref)
	case len(inputs) == 0:
		kind = PatternStubSource
	case len(outputs) == 0:
		kind = PatternStubSink
	default:
		kind = PatternStubPassthrough
	}

	gen, err := genName(caller)
	if err != nil {
		return design.StreamletHandle{}, PatternNone, err
	}
	s, err := design.NewStreamlet(string(gen), refStreamlet.Interfaces()...)
	if err != nil {
		return design.StreamletHandle{}, PatternNone, err
	}
	lib := p.EnsureGenLibrary()
	if _, err := lib.AddStreamlet(s); err != nil {
		return design.StreamletHandle{}, PatternNone, err
	}
	return design.StreamletHandle{Lib: design.GenLibrary, Streamlet: gen}, kind, nil
}

// AddMapStream creates a MapStream over op and instantiates it.
func (g *Graph) AddMapStream(key string, op design.StreamletHandle) (*Node, error) {
	k, err := name.New(key)
	if err != nil {
		return nil, err
	}
	handle, err := NewMapStream(g.project, key, op)
	if err != nil {
		return nil, err
	}
	return g.addPatternNode(k, handle, PatternMap)
}

// AddReduceStream creates a ReduceStream over op and instantiates it.
func (g *Graph) AddReduceStream(key string, op design.StreamletHandle) (*Node, error) {
	k, err := name.New(key)
	if err != nil {
		return nil, err
	}
	handle, err := NewReduceStream(g.project, key, op)
	if err != nil {
		return nil, err
	}
	return g.addPatternNode(k, handle, PatternReduce)
}

// AddFilterStream creates a FilterStream, instantiates it, and wires the
// caller-supplied predicate source to its pred sink.
func (g *Graph) AddFilterStream(key string, pred NodeIFHandle) (*Node, error) {
	k, err := name.New(key)
	if err != nil {
		return nil, err
	}
	handle, err := NewFilterStream(g.project, key)
	if err != nil {
		return nil, err
	}
	n, err := g.addPatternNode(k, handle, PatternFilter)
	if err != nil {
		return nil, err
	}
	if err := g.Connect(pred, NodeIFHandle{Node: k, Iface: "pred"}); err != nil {
		return nil, err
	}
	return n, nil
}

// AddStub creates a stub of the referenced streamlet and instantiates it.
func (g *Graph) AddStub(key string, ref design.StreamletHandle) (*Node, error) {
	k, err := name.New(key)
	if err != nil {
		return nil, err
	}
	handle, kind, err := NewStub(g.project, key, ref)
	if err != nil {
		return nil, err
	}
	return g.addPatternNode(k, handle, kind)
}

// portPair is the in/out stream pair shared by the stream patterns.
type portPair struct {
	in     logical.Stream
	out    logical.Stream
	inRule design.InferenceRule
}

func registerPattern(p *design.Project, caller string, ports portPair, extra ...design.Interface) (design.StreamletHandle, error) {
	gen, err := genName(caller)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	in, err := design.NewInterface("in", design.In, ports.in,
		design.WithInference(ports.inRule))
	if err != nil {
		return design.StreamletHandle{}, err
	}
	out, err := design.NewInterface("out", design.Out, ports.out)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	ifaces := append([]design.Interface{in, out}, extra...)
	s, err := design.NewStreamlet(string(gen), ifaces...)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	lib := p.EnsureGenLibrary()
	if _, err := lib.AddStreamlet(s); err != nil {
		return design.StreamletHandle{}, err
	}
	return design.StreamletHandle{Lib: design.GenLibrary, Streamlet: gen}, nil
}

// firstStreamInput returns the stream type of op's first stream-typed
// input.
func firstStreamInput(s *design.Streamlet) (logical.Stream, error) {
	for _, i := range s.Inputs() {
		if st, ok := i.Type().(logical.Stream); ok {
			return st, nil
		}
	}
	return logical.Stream{}, newError(ErrCodeIfaceNotFound,
		"streamlet %q has no stream-typed input", s.Key())
}

// predicateStream derives the one-bit predicate stream co-synchronous
// with a filtered input stream.
func predicateStream(in logical.Stream) (logical.Stream, error) {
	bit, err := logical.NewBits(1)
	if err != nil {
		return logical.Stream{}, err
	}
	return logical.NewStream(bit,
		logical.WithThroughput(in.Throughput()),
		logical.WithDimensionality(in.Dimensionality()),
		logical.WithSynchronicity(in.Synchronicity()),
		logical.WithComplexity(in.Complexity()),
		logical.WithDirection(in.Direction()),
	)
}
