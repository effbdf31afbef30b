package composer

import (
	"fmt"

	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/name"
)

// ThisKey is the node key of the graph's own boundary.
const ThisKey = name.Name(name.This)

// NodeKind discriminates the graph node variants.
type NodeKind int

const (
	// NodeThis is the boundary pseudo-node exposing the implemented
	// streamlet's interfaces, reversed.
	NodeThis NodeKind = iota
	// NodeInstance is an instantiated library streamlet.
	NodeInstance
	// NodePattern is an instantiated generated pattern streamlet.
	NodePattern
)

// Node is one vertex of a structural implementation graph. Each node owns
// a clone of its streamlet, so per-instance type inference stays local.
type Node struct {
	key       name.Name
	kind      NodeKind
	handle    design.StreamletHandle
	streamlet design.Streamlet
	pattern   PatternKind // meaningful only for NodePattern
}

// Key returns the node name.
func (n *Node) Key() name.Name {
	return n.key
}

// Kind returns the node variant.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Handle returns the handle of the streamlet this node instantiates.
func (n *Node) Handle() design.StreamletHandle {
	return n.handle
}

// Streamlet returns the node's streamlet view.
func (n *Node) Streamlet() *design.Streamlet {
	return &n.streamlet
}

// Pattern returns the pattern kind of a NodePattern node.
func (n *Node) Pattern() PatternKind {
	return n.pattern
}

// NodeIFHandle addresses one interface of one node.
type NodeIFHandle struct {
	Node  name.Name
	Iface name.Name
}

// String renders the handle in source syntax.
func (h NodeIFHandle) String() string {
	return fmt.Sprintf("%s.%s", h.Node, h.Iface)
}

// Edge is one committed connection from a driving interface to a
// receiving one.
type Edge struct {
	Source NodeIFHandle
	Sink   NodeIFHandle
}

// Graph is a structural implementation under construction. It implements
// design.Implementation and is attached to the implemented streamlet once
// assembly finishes.
type Graph struct {
	project *design.Project
	owner   design.StreamletHandle
	nodes   []*Node
	index   map[name.Name]*Node
	edges   []Edge
}

// NewGraph starts a structural implementation of the streamlet named by
// owner. The boundary node is created immediately with all interfaces
// reversed: an external input drives the inside of the graph.
func NewGraph(project *design.Project, owner design.StreamletHandle) (*Graph, error) {
	s, err := project.Streamlet(owner)
	if err != nil {
		return nil, err
	}
	g := &Graph{
		project: project,
		owner:   owner,
		index:   make(map[name.Name]*Node),
	}
	g.insert(&Node{
		key:       ThisKey,
		kind:      NodeThis,
		handle:    owner,
		streamlet: s.Reversed(),
	})
	return g, nil
}

// Owner implements design.Implementation.
func (g *Graph) Owner() design.StreamletHandle {
	return g.owner
}

// AddInstance instantiates a library streamlet as a graph node.
func (g *Graph) AddInstance(key string, handle design.StreamletHandle) (*Node, error) {
	k, err := name.New(key)
	if err != nil {
		return nil, err
	}
	if _, ok := g.index[k]; ok {
		return nil, &design.Error{Code: design.ErrCodeDuplicateKey, Message: fmt.Sprintf("node %q already declared", k)}
	}
	s, err := g.project.Streamlet(handle)
	if err != nil {
		return nil, err
	}
	n := &Node{
		key:       k,
		kind:      NodeInstance,
		handle:    handle,
		streamlet: s.Clone(),
	}
	g.insert(n)
	return n, nil
}

// Node looks up a node by key.
func (g *Graph) Node(key name.Name) (*Node, error) {
	n, ok := g.index[key]
	if !ok {
		return nil, newError(ErrCodeNodeNotFound, "no node %q in implementation of %s", key, g.owner)
	}
	return n, nil
}

// Nodes returns the nodes in declaration order, the boundary node first.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns the committed edges in connection order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// isConnected reports whether any committed edge uses the endpoint.
func (g *Graph) isConnected(h NodeIFHandle) bool {
	for _, e := range g.edges {
		if e.Source == h || e.Sink == h {
			return true
		}
	}
	return false
}

func (g *Graph) insert(n *Node) {
	g.nodes = append(g.nodes, n)
	g.index[n.key] = n
}

func (g *Graph) addPatternNode(key name.Name, handle design.StreamletHandle, kind PatternKind) (*Node, error) {
	if _, ok := g.index[key]; ok {
		return nil, &design.Error{Code: design.ErrCodeDuplicateKey, Message: fmt.Sprintf("node %q already declared", key)}
	}
	s, err := g.project.Streamlet(handle)
	if err != nil {
		return nil, err
	}
	n := &Node{
		key:       key,
		kind:      NodePattern,
		handle:    handle,
		streamlet: s.Clone(),
		pattern:   kind,
	}
	g.insert(n)
	return n, nil
}
