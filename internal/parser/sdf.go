package parser

import (
	"github.com/tydi-hdl/tydi/internal/design"
)

// ParseStreamlets parses a streamlet definition file:
//
//	/// Frame splitter.
//	Streamlet splitter (
//	    in  : in  Stream<Bits<8>, d=1>,
//	    out : out Stream<Bits<8>, d=2>,
//	)
//
// Doc comments attach to the following streamlet or interface.
func ParseStreamlets(file, src string) ([]design.Streamlet, error) {
	c, err := newCursor(file, src)
	if err != nil {
		return nil, err
	}
	var out []design.Streamlet
	for c.peek().kind != tEOF {
		s, err := parseStreamlet(c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func parseStreamlet(c *cursor) (design.Streamlet, error) {
	kw, err := c.expectKeyword("Streamlet")
	if err != nil {
		return design.Streamlet{}, err
	}
	nameTok, err := c.expect(tIdent)
	if err != nil {
		return design.Streamlet{}, err
	}
	if _, err := c.expect(tLParen); err != nil {
		return design.Streamlet{}, err
	}

	var ifaces []design.Interface
	for c.peek().kind != tRParen {
		i, err := parseInterface(c)
		if err != nil {
			return design.Streamlet{}, err
		}
		ifaces = append(ifaces, i)
		if c.peek().kind == tComma {
			c.next()
			continue
		}
		break
	}
	if _, err := c.expect(tRParen); err != nil {
		return design.Streamlet{}, err
	}

	s, err := design.NewStreamlet(nameTok.text, ifaces...)
	if err != nil {
		return design.Streamlet{}, c.errf(nameTok, "%v", err)
	}
	s.SetDoc(kw.doc)
	return s, nil
}

func parseInterface(c *cursor) (design.Interface, error) {
	nameTok, err := c.expect(tIdent)
	if err != nil {
		return design.Interface{}, err
	}
	if _, err := c.expect(tColon); err != nil {
		return design.Interface{}, err
	}
	modeTok, err := c.expect(tIdent)
	if err != nil {
		return design.Interface{}, err
	}
	mode, err := design.ParseMode(modeTok.text)
	if err != nil {
		return design.Interface{}, c.errf(modeTok, "expected \"in\" or \"out\", found %q", modeTok.text)
	}
	typ, err := parseType(c)
	if err != nil {
		return design.Interface{}, err
	}
	i, err := design.NewInterface(nameTok.text, mode, typ, design.WithDoc(nameTok.doc))
	if err != nil {
		return design.Interface{}, c.errf(nameTok, "%v", err)
	}
	return i, nil
}
