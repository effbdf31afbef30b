package parser

// The structural implementation AST. The assembler in design/composer
// consumes it; the parser performs no name or type resolution.

// Ref addresses a streamlet as LIB::NAME.
type Ref struct {
	Lib  string
	Name string
}

// PortRef addresses one interface of one node as NODE.IFACE.
type PortRef struct {
	Node  string
	Iface string
}

// ImplDecl is one impl LIB::STREAMLET { ... } block.
type ImplDecl struct {
	Line   int
	Target Ref
	Stmts  []Stmt
}

// Stmt is one statement in an implementation body.
type Stmt interface {
	// Pos returns the 1-based source line of the statement.
	Pos() int
}

// NodeDecl instantiates a library streamlet: name : LIB::STREAMLET.
type NodeDecl struct {
	Line   int
	Name   string
	Target Ref
}

// MapDecl instantiates a MapStream pattern: name : MapStream(node).
type MapDecl struct {
	Line int
	Name string
	Op   string
}

// ReduceDecl instantiates a ReduceStream pattern: name : ReduceStream(node).
type ReduceDecl struct {
	Line int
	Name string
	Op   string
}

// FilterDecl instantiates a FilterStream pattern:
// name : FilterStream(node.iface).
type FilterDecl struct {
	Line int
	Name string
	Pred PortRef
}

// StubDecl instantiates a stub: name : Stub(LIB::STREAMLET).
type StubDecl struct {
	Line int
	Name string
	Ref  Ref
}

// EdgeDecl connects two ports: a.x -> b.y.
type EdgeDecl struct {
	Line int
	Src  PortRef
	Dst  PortRef
}

// ChainDecl is the chain sugar: a <=> b <=> c.
type ChainDecl struct {
	Line  int
	Nodes []string
}

func (d NodeDecl) Pos() int   { return d.Line }
func (d MapDecl) Pos() int    { return d.Line }
func (d ReduceDecl) Pos() int { return d.Line }
func (d FilterDecl) Pos() int { return d.Line }
func (d StubDecl) Pos() int   { return d.Line }
func (d EdgeDecl) Pos() int   { return d.Line }
func (d ChainDecl) Pos() int  { return d.Line }

// ParseImpls parses a structural implementation file into its AST.
func ParseImpls(file, src string) ([]ImplDecl, error) {
	c, err := newCursor(file, src)
	if err != nil {
		return nil, err
	}
	var out []ImplDecl
	for c.peek().kind != tEOF {
		decl, err := parseImpl(c)
		if err != nil {
			return nil, err
		}
		out = append(out, decl)
	}
	return out, nil
}

func parseImpl(c *cursor) (ImplDecl, error) {
	kw, err := c.expectKeyword("impl")
	if err != nil {
		return ImplDecl{}, err
	}
	target, err := parseRef(c)
	if err != nil {
		return ImplDecl{}, err
	}
	if _, err := c.expect(tLBrace); err != nil {
		return ImplDecl{}, err
	}
	decl := ImplDecl{Line: kw.line, Target: target}
	for c.peek().kind != tRBrace {
		stmt, err := parseStmt(c)
		if err != nil {
			return ImplDecl{}, err
		}
		decl.Stmts = append(decl.Stmts, stmt)
	}
	c.next() // consume '}'
	return decl, nil
}

func parseRef(c *cursor) (Ref, error) {
	lib, err := c.expect(tIdent)
	if err != nil {
		return Ref{}, err
	}
	if _, err := c.expect(tDoubleColon); err != nil {
		return Ref{}, err
	}
	streamlet, err := c.expect(tIdent)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Lib: lib.text, Name: streamlet.text}, nil
}

func parseStmt(c *cursor) (Stmt, error) {
	first, err := c.expect(tIdent)
	if err != nil {
		return nil, err
	}
	switch c.peek().kind {
	case tColon:
		c.next()
		return parseDecl(c, first)
	case tDot:
		c.next()
		return parseEdge(c, first)
	case tChain:
		return parseChain(c, first)
	default:
		return nil, c.errf(c.peek(), "expected ':', '.', or '<=>' after %q", first.text)
	}
}

// parseDecl handles name : LIB::STREAMLET and name : PATTERN(args).
func parseDecl(c *cursor, nameTok token) (Stmt, error) {
	head, err := c.expect(tIdent)
	if err != nil {
		return nil, err
	}
	if c.peek().kind == tDoubleColon {
		c.next()
		streamlet, err := c.expect(tIdent)
		if err != nil {
			return nil, err
		}
		return NodeDecl{
			Line:   nameTok.line,
			Name:   nameTok.text,
			Target: Ref{Lib: head.text, Name: streamlet.text},
		}, nil
	}

	if _, err := c.expect(tLParen); err != nil {
		return nil, err
	}
	var stmt Stmt
	switch head.text {
	case "MapStream", "ReduceStream":
		op, err := c.expect(tIdent)
		if err != nil {
			return nil, err
		}
		if head.text == "MapStream" {
			stmt = MapDecl{Line: nameTok.line, Name: nameTok.text, Op: op.text}
		} else {
			stmt = ReduceDecl{Line: nameTok.line, Name: nameTok.text, Op: op.text}
		}
	case "FilterStream":
		pred, err := parsePortRef(c)
		if err != nil {
			return nil, err
		}
		stmt = FilterDecl{Line: nameTok.line, Name: nameTok.text, Pred: pred}
	case "Stub":
		ref, err := parseRef(c)
		if err != nil {
			return nil, err
		}
		stmt = StubDecl{Line: nameTok.line, Name: nameTok.text, Ref: ref}
	default:
		return nil, c.errf(head, "unknown pattern %q", head.text)
	}
	if _, err := c.expect(tRParen); err != nil {
		return nil, err
	}
	return stmt, nil
}

func parsePortRef(c *cursor) (PortRef, error) {
	node, err := c.expect(tIdent)
	if err != nil {
		return PortRef{}, err
	}
	if _, err := c.expect(tDot); err != nil {
		return PortRef{}, err
	}
	iface, err := c.expect(tIdent)
	if err != nil {
		return PortRef{}, err
	}
	return PortRef{Node: node.text, Iface: iface.text}, nil
}

// parseEdge handles a.x -> b.y with the node name already consumed.
func parseEdge(c *cursor, nodeTok token) (Stmt, error) {
	iface, err := c.expect(tIdent)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(tArrow); err != nil {
		return nil, err
	}
	dst, err := parsePortRef(c)
	if err != nil {
		return nil, err
	}
	return EdgeDecl{
		Line: nodeTok.line,
		Src:  PortRef{Node: nodeTok.text, Iface: iface.text},
		Dst:  dst,
	}, nil
}

// parseChain handles a <=> b <=> c with the first node already consumed.
func parseChain(c *cursor, firstTok token) (Stmt, error) {
	nodes := []string{firstTok.text}
	for c.peek().kind == tChain {
		c.next()
		tok, err := c.expect(tIdent)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, tok.text)
	}
	return ChainDecl{Line: firstTok.line, Nodes: nodes}, nil
}
