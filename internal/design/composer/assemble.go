package composer

import (
	"fmt"

	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/name"
	"github.com/tydi-hdl/tydi/internal/parser"
)

// Assemble builds the structural implementation described by one parsed
// impl block, attaches it to the implemented streamlet, and returns the
// graph. The first failing statement aborts the implementation; its error
// is prefixed with the file and statement line.
func Assemble(p *design.Project, file string, decl parser.ImplDecl) (*Graph, error) {
	owner, err := design.NewStreamletHandle(decl.Target.Lib, decl.Target.Name)
	if err != nil {
		return nil, posErr(file, decl.Line, err)
	}
	g, err := NewGraph(p, owner)
	if err != nil {
		return nil, posErr(file, decl.Line, err)
	}

	for _, stmt := range decl.Stmts {
		if err := g.apply(stmt); err != nil {
			return nil, posErr(file, stmt.Pos(), err)
		}
	}

	target, err := p.Streamlet(owner)
	if err != nil {
		return nil, posErr(file, decl.Line, err)
	}
	if err := target.AttachImplementation(g); err != nil {
		return nil, posErr(file, decl.Line, err)
	}
	return g, nil
}

func (g *Graph) apply(stmt parser.Stmt) error {
	switch s := stmt.(type) {
	case parser.NodeDecl:
		handle, err := design.NewStreamletHandle(s.Target.Lib, s.Target.Name)
		if err != nil {
			return err
		}
		_, err = g.AddInstance(s.Name, handle)
		return err
	case parser.MapDecl:
		op, err := g.opHandle(s.Op)
		if err != nil {
			return err
		}
		_, err = g.AddMapStream(s.Name, op)
		return err
	case parser.ReduceDecl:
		op, err := g.opHandle(s.Op)
		if err != nil {
			return err
		}
		_, err = g.AddReduceStream(s.Name, op)
		return err
	case parser.FilterDecl:
		pred, err := portHandle(s.Pred)
		if err != nil {
			return err
		}
		_, err = g.AddFilterStream(s.Name, pred)
		return err
	case parser.StubDecl:
		ref, err := design.NewStreamletHandle(s.Ref.Lib, s.Ref.Name)
		if err != nil {
			return err
		}
		_, err = g.AddStub(s.Name, ref)
		return err
	case parser.EdgeDecl:
		src, err := portHandle(s.Src)
		if err != nil {
			return err
		}
		dst, err := portHandle(s.Dst)
		if err != nil {
			return err
		}
		return g.Connect(src, dst)
	case parser.ChainDecl:
		keys := make([]name.Name, 0, len(s.Nodes))
		for _, n := range s.Nodes {
			k, err := name.New(n)
			if err != nil {
				return err
			}
			keys = append(keys, k)
		}
		return g.Chain(keys...)
	default:
		return fmt.Errorf("unhandled statement %T", stmt)
	}
}

// opHandle resolves a pattern operand: the named node's streamlet.
func (g *Graph) opHandle(node string) (design.StreamletHandle, error) {
	k, err := name.New(node)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	n, err := g.Node(k)
	if err != nil {
		return design.StreamletHandle{}, err
	}
	return n.Handle(), nil
}

func portHandle(ref parser.PortRef) (NodeIFHandle, error) {
	node, err := name.New(ref.Node)
	if err != nil {
		return NodeIFHandle{}, err
	}
	iface, err := name.New(ref.Iface)
	if err != nil {
		return NodeIFHandle{}, err
	}
	return NodeIFHandle{Node: node, Iface: iface}, nil
}

func posErr(file string, line int, err error) error {
	return fmt.Errorf("%s:%d: %w", file, line, err)
}
