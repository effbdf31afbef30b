package parser

import (
	"fmt"
	"strconv"

	"github.com/tydi-hdl/tydi/internal/logical"
	"github.com/tydi-hdl/tydi/internal/name"
	"github.com/tydi-hdl/tydi/internal/physical"
)

// ParseType parses a single logical type in source syntax.
func ParseType(file, src string) (logical.Type, error) {
	c, err := newCursor(file, src)
	if err != nil {
		return nil, err
	}
	t, err := parseType(c)
	if err != nil {
		return nil, err
	}
	if tok := c.peek(); tok.kind != tEOF {
		return nil, c.errf(tok, "unexpected %s after type", describe(tok))
	}
	return t, nil
}

func parseType(c *cursor) (logical.Type, error) {
	tok, err := c.expect(tIdent)
	if err != nil {
		return nil, err
	}
	switch tok.text {
	case "Null":
		return logical.Null{}, nil
	case "Bits":
		return parseBits(c, tok)
	case "Group":
		fields, err := parseFieldList(c)
		if err != nil {
			return nil, err
		}
		g, err := logical.NewGroup(fields...)
		if err != nil {
			return nil, c.errf(tok, "%v", err)
		}
		return g, nil
	case "Union":
		fields, err := parseFieldList(c)
		if err != nil {
			return nil, err
		}
		u, err := logical.NewUnion(fields...)
		if err != nil {
			return nil, c.errf(tok, "%v", err)
		}
		return u, nil
	case "Stream":
		return parseStream(c, tok)
	default:
		return nil, c.errf(tok, "unknown type %q", tok.text)
	}
}

func parseBits(c *cursor, at token) (logical.Type, error) {
	if _, err := c.expect(tLt); err != nil {
		return nil, err
	}
	width, err := parseUint(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(tGt); err != nil {
		return nil, err
	}
	b, err := logical.NewBits(width)
	if err != nil {
		return nil, c.errf(at, "%v", err)
	}
	return b, nil
}

func parseFieldList(c *cursor) ([]logical.Field, error) {
	if _, err := c.expect(tLt); err != nil {
		return nil, err
	}
	var fields []logical.Field
	for {
		nameTok, err := c.expect(tIdent)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(tColon); err != nil {
			return nil, err
		}
		typ, err := parseType(c)
		if err != nil {
			return nil, err
		}
		fields = append(fields, logical.Field{Name: name.Name(nameTok.text), Typ: typ})
		if c.peek().kind != tComma {
			break
		}
		c.next()
	}
	if _, err := c.expect(tGt); err != nil {
		return nil, err
	}
	return fields, nil
}

func parseStream(c *cursor, at token) (logical.Type, error) {
	if _, err := c.expect(tLt); err != nil {
		return nil, err
	}
	data, err := parseType(c)
	if err != nil {
		return nil, err
	}
	var opts []logical.StreamOption
	for c.peek().kind == tComma {
		c.next()
		keyTok, err := c.expect(tIdent)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(tEq); err != nil {
			return nil, err
		}
		opt, err := parseStreamOption(c, keyTok)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	if _, err := c.expect(tGt); err != nil {
		return nil, err
	}
	s, err := logical.NewStream(data, opts...)
	if err != nil {
		return nil, c.errf(at, "%v", err)
	}
	return s, nil
}

func parseStreamOption(c *cursor, key token) (logical.StreamOption, error) {
	switch key.text {
	case "t":
		v, err := parseReal(c)
		if err != nil {
			return nil, err
		}
		return logical.WithThroughput(v), nil
	case "d":
		v, err := parseUint(c)
		if err != nil {
			return nil, err
		}
		return logical.WithDimensionality(v), nil
	case "s":
		tok, err := c.expect(tIdent)
		if err != nil {
			return nil, err
		}
		sync, err := logical.ParseSynchronicity(tok.text)
		if err != nil {
			return nil, c.errf(tok, "%v", err)
		}
		return logical.WithSynchronicity(sync), nil
	case "c":
		v, err := parseComplexity(c)
		if err != nil {
			return nil, err
		}
		return logical.WithComplexity(v), nil
	case "r":
		tok, err := c.expect(tIdent)
		if err != nil {
			return nil, err
		}
		switch tok.text {
		case "Forward":
			return logical.WithDirection(physical.Forward), nil
		case "Reverse":
			return logical.WithDirection(physical.Reverse), nil
		default:
			return nil, c.errf(tok, "%q is not a direction", tok.text)
		}
	case "u":
		typ, err := parseType(c)
		if err != nil {
			return nil, err
		}
		return logical.WithUser(typ), nil
	case "x":
		tok, err := c.expect(tIdent)
		if err != nil {
			return nil, err
		}
		switch tok.text {
		case "true":
			return logical.WithKeep(true), nil
		case "false":
			return logical.WithKeep(false), nil
		default:
			return nil, c.errf(tok, "%q is not a boolean", tok.text)
		}
	default:
		return nil, c.errf(key, "unknown stream option %q", key.text)
	}
}

func parseUint(c *cursor) (uint32, error) {
	tok, err := c.expect(tNumber)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(tok.text, 10, 32)
	if err != nil {
		return 0, c.errf(tok, "number %q out of range", tok.text)
	}
	return uint32(v), nil
}

// parseReal reads INT or INT '.' INT.
func parseReal(c *cursor) (float64, error) {
	intTok, err := c.expect(tNumber)
	if err != nil {
		return 0, err
	}
	text := intTok.text
	if c.peek().kind == tDot {
		c.next()
		fracTok, err := c.expect(tNumber)
		if err != nil {
			return 0, err
		}
		text = fmt.Sprintf("%s.%s", intTok.text, fracTok.text)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, c.errf(intTok, "bad number %q", text)
	}
	return v, nil
}

// parseComplexity reads INT ('.' INT)*.
func parseComplexity(c *cursor) (physical.Complexity, error) {
	var levels []uint32
	v, err := parseUint(c)
	if err != nil {
		return physical.Complexity{}, err
	}
	levels = append(levels, v)
	for c.peek().kind == tDot {
		c.next()
		v, err := parseUint(c)
		if err != nil {
			return physical.Complexity{}, err
		}
		levels = append(levels, v)
	}
	cx, err := physical.NewComplexity(levels)
	if err != nil {
		return physical.Complexity{}, newParseError(c.file, c.peek().line, "%v", err)
	}
	return cx, nil
}
