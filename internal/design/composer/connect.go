package composer

import (
	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/logical"
	"github.com/tydi-hdl/tydi/internal/name"
)

// Connect wires a driving interface to a receiving one.
//
// The protocol is transactional. Both endpoints are resolved, their
// inference rules run against each other's current types, pattern nodes
// propagate types through their internal relationships, and only then are
// the re-read types checked: the source must be an output, the sink an
// input, neither endpoint may already be connected, and the final types
// must be structurally equal. All inference happens on staged clones of
// the endpoint streamlets; a failing check leaves the graph untouched.
func (g *Graph) Connect(src, sink NodeIFHandle) error {
	srcNode, err := g.Node(src.Node)
	if err != nil {
		return err
	}
	sinkNode, err := g.Node(sink.Node)
	if err != nil {
		return err
	}
	srcIface, err := resolveIface(srcNode, src.Iface)
	if err != nil {
		return err
	}
	sinkIface, err := resolveIface(sinkNode, sink.Iface)
	if err != nil {
		return err
	}

	// Stage. A self-edge shares one clone so both mutations land on it.
	srcStage := srcNode.streamlet.Clone()
	sinkStage := &srcStage
	if srcNode != sinkNode {
		clone := sinkNode.streamlet.Clone()
		sinkStage = &clone
	}

	// Infer against the peer's pre-inference type, on both sides.
	srcInferred := srcIface.Inferred(sinkIface.Type())
	sinkInferred := sinkIface.Inferred(srcIface.Type())
	if err := srcStage.SetInterfaceType(src.Iface, srcInferred.Type()); err != nil {
		return err
	}
	if err := sinkStage.SetInterfaceType(sink.Iface, sinkInferred.Type()); err != nil {
		return err
	}

	if err := g.connectAction(srcNode, &srcStage); err != nil {
		return err
	}
	if err := g.connectAction(sinkNode, sinkStage); err != nil {
		return err
	}

	// Re-read after the actions ran.
	finalSrc, err := srcStage.Interface(src.Iface)
	if err != nil {
		return err
	}
	finalSink, err := sinkStage.Interface(sink.Iface)
	if err != nil {
		return err
	}

	if finalSrc.Mode() != design.Out {
		return newError(ErrCodeNotAnOutput, "%s is not an output", src)
	}
	if finalSink.Mode() != design.In {
		return newError(ErrCodeNotAnInput, "%s is not an input", sink)
	}
	for _, endpoint := range []NodeIFHandle{src, sink} {
		if g.isConnected(endpoint) {
			return newError(ErrCodeAlreadyConnected, "%s is already connected", endpoint)
		}
	}
	if !logical.Equal(finalSrc.Type(), finalSink.Type()) {
		return newError(ErrCodeTypeMismatch, "%s has type %s but %s has type %s",
			src, logical.TypeString(finalSrc.Type()),
			sink, logical.TypeString(finalSink.Type()))
	}

	// Commit.
	srcNode.streamlet = srcStage
	if srcNode != sinkNode {
		sinkNode.streamlet = *sinkStage
	}
	g.edges = append(g.edges, Edge{Source: src, Sink: sink})
	return nil
}

// Chain applies the chain sugar a <=> b <=> c: each consecutive pair is
// connected from the left node's literal "out" interface to the right
// node's literal "in" interface.
func (g *Graph) Chain(keys ...name.Name) error {
	for i := 0; i+1 < len(keys); i++ {
		left, right := keys[i], keys[i+1]
		if err := g.requireChainPort(left, "out"); err != nil {
			return err
		}
		if err := g.requireChainPort(right, "in"); err != nil {
			return err
		}
		err := g.Connect(
			NodeIFHandle{Node: left, Iface: "out"},
			NodeIFHandle{Node: right, Iface: "in"},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) requireChainPort(node name.Name, port name.Name) error {
	n, err := g.Node(node)
	if err != nil {
		return err
	}
	if _, err := n.streamlet.Interface(port); err != nil {
		return newError(ErrCodeNoChainPort, "node %q has no %q interface for chaining", node, port)
	}
	return nil
}

func resolveIface(n *Node, key name.Name) (design.Interface, error) {
	i, err := n.streamlet.Interface(key)
	if err != nil {
		return design.Interface{}, newError(ErrCodeIfaceNotFound, "node %q has no interface %q", n.key, key)
	}
	return i, nil
}

// connectAction propagates types through a pattern node's internal
// relationships after endpoint inference ran. Plain instances and the
// boundary node have no action.
func (g *Graph) connectAction(n *Node, stage *design.Streamlet) error {
	if n.kind != NodePattern {
		return nil
	}
	switch n.pattern {
	case PatternReduce:
		in, err := stage.Interface("in")
		if err != nil {
			return err
		}
		s, ok := in.Type().(logical.Stream)
		if !ok || s.Dimensionality() == 0 {
			return newError(ErrCodeTypeMismatch,
				"reduce node %q needs a stream input with at least one dimension, got %s",
				n.key, logical.TypeString(in.Type()))
		}
		out, err := s.Rebuilt(logical.WithDimensionality(s.Dimensionality() - 1))
		if err != nil {
			return err
		}
		return stage.SetInterfaceType("out", out)
	case PatternFilter:
		return g.filterAction(n, stage)
	default:
		return nil
	}
}

// filterAction keeps a filter node's ports consistent. The predicate must
// stay a one-bit stream whatever its source; once in carries data, out
// mirrors it, and an already-committed predicate edge must match in's
// transport parameters or the connect fails.
func (g *Graph) filterAction(n *Node, stage *design.Streamlet) error {
	pred, err := stage.Interface("pred")
	if err != nil {
		return err
	}
	bit, err := logical.NewBits(1)
	if err != nil {
		return err
	}
	ps, ok := pred.Type().(logical.Stream)
	if !ok || !logical.Equal(ps.Data(), bit) {
		return newError(ErrCodeTypeMismatch,
			"filter node %q needs a one-bit predicate stream, got %s",
			n.key, logical.TypeString(pred.Type()))
	}

	in, err := stage.Interface("in")
	if err != nil {
		return err
	}
	s, ok := in.Type().(logical.Stream)
	if !ok || logical.IsNull(s.Data()) {
		// Not typed yet; the in edge has not been connected.
		return nil
	}
	if err := stage.SetInterfaceType("out", s); err != nil {
		return err
	}

	want, err := predicateStream(s)
	if err != nil {
		return err
	}
	if g.isConnected(NodeIFHandle{Node: n.key, Iface: "pred"}) {
		if !logical.Equal(want, ps) {
			return newError(ErrCodeTypeMismatch,
				"filter node %q needs predicate %s, but its predicate edge carries %s",
				n.key, logical.TypeString(want), logical.TypeString(ps))
		}
		return nil
	}
	return stage.SetInterfaceType("pred", want)
}
