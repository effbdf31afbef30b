package parser

type cursor struct {
	file string
	toks []token
	pos  int
}

func newCursor(file, src string) (*cursor, error) {
	toks, err := scan(file, src)
	if err != nil {
		return nil, err
	}
	return &cursor{file: file, toks: toks}, nil
}

func (c *cursor) peek() token {
	return c.toks[c.pos]
}

func (c *cursor) next() token {
	tok := c.toks[c.pos]
	if tok.kind != tEOF {
		c.pos++
	}
	return tok
}

func (c *cursor) expect(kind tokenKind) (token, error) {
	tok := c.next()
	if tok.kind != kind {
		return token{}, c.errf(tok, "expected %s, found %s", kind, describe(tok))
	}
	return tok, nil
}

// expectKeyword consumes an identifier with the exact given text.
func (c *cursor) expectKeyword(word string) (token, error) {
	tok := c.next()
	if tok.kind != tIdent || tok.text != word {
		return token{}, c.errf(tok, "expected %q, found %s", word, describe(tok))
	}
	return tok, nil
}

func (c *cursor) errf(at token, format string, args ...any) error {
	return newParseError(c.file, at.line, format, args...)
}

func describe(tok token) string {
	switch tok.kind {
	case tIdent, tNumber:
		return "\"" + tok.text + "\""
	default:
		return tok.kind.String()
	}
}
