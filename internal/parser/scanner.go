package parser

import (
	"strings"
)

type tokenKind int

const (
	tEOF tokenKind = iota
	tIdent
	tNumber // unsigned integer digits; reals are INT '.' INT
	tLt
	tGt
	tLParen
	tRParen
	tLBrace
	tRBrace
	tColon
	tDoubleColon
	tComma
	tDot
	tEq
	tArrow // ->
	tChain // <=>
)

func (k tokenKind) String() string {
	switch k {
	case tEOF:
		return "end of file"
	case tIdent:
		return "identifier"
	case tNumber:
		return "number"
	case tLt:
		return "'<'"
	case tGt:
		return "'>'"
	case tLParen:
		return "'('"
	case tRParen:
		return "')'"
	case tLBrace:
		return "'{'"
	case tRBrace:
		return "'}'"
	case tColon:
		return "':'"
	case tDoubleColon:
		return "'::'"
	case tComma:
		return "','"
	case tDot:
		return "'.'"
	case tEq:
		return "'='"
	case tArrow:
		return "'->'"
	case tChain:
		return "'<=>'"
	default:
		return "?"
	}
}

type token struct {
	kind tokenKind
	text string
	line int
	// doc holds the accumulated /// comment lines preceding this token.
	doc string
}

// scanner tokenizes a source text. Plain // comments are skipped; ///
// doc comments are collected and attached to the next token.
type scanner struct {
	file string
	src  string
	pos  int
	line int

	tokens []token
}

func scan(file, src string) ([]token, error) {
	s := &scanner{file: file, src: src, line: 1}
	var doc []string
	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			s.emit(token{kind: tEOF, line: s.line, doc: joinDoc(doc)})
			return s.tokens, nil
		}
		c := s.src[s.pos]
		switch {
		case c == '/' && s.peekAt(1) == '/':
			if s.peekAt(2) == '/' {
				doc = append(doc, s.docLine())
			} else {
				s.skipLine()
			}
		case isIdentStart(c):
			tok := token{kind: tIdent, line: s.line, doc: joinDoc(doc)}
			doc = nil
			start := s.pos
			for s.pos < len(s.src) && isIdentPart(s.src[s.pos]) {
				s.pos++
			}
			tok.text = s.src[start:s.pos]
			s.emit(tok)
		case c >= '0' && c <= '9':
			tok := token{kind: tNumber, line: s.line, doc: joinDoc(doc)}
			doc = nil
			start := s.pos
			for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
				s.pos++
			}
			tok.text = s.src[start:s.pos]
			s.emit(tok)
		default:
			tok, err := s.punct()
			if err != nil {
				return nil, err
			}
			tok.doc = joinDoc(doc)
			doc = nil
			s.emit(tok)
		}
	}
}

func (s *scanner) punct() (token, error) {
	line := s.line
	mk := func(kind tokenKind, width int) (token, error) {
		text := s.src[s.pos : s.pos+width]
		s.pos += width
		return token{kind: kind, text: text, line: line}, nil
	}
	switch c := s.src[s.pos]; c {
	case '<':
		if s.peekAt(1) == '=' && s.peekAt(2) == '>' {
			return mk(tChain, 3)
		}
		return mk(tLt, 1)
	case '>':
		return mk(tGt, 1)
	case '(':
		return mk(tLParen, 1)
	case ')':
		return mk(tRParen, 1)
	case '{':
		return mk(tLBrace, 1)
	case '}':
		return mk(tRBrace, 1)
	case ':':
		if s.peekAt(1) == ':' {
			return mk(tDoubleColon, 2)
		}
		return mk(tColon, 1)
	case ',':
		return mk(tComma, 1)
	case '.':
		return mk(tDot, 1)
	case '=':
		return mk(tEq, 1)
	case '-':
		if s.peekAt(1) == '>' {
			return mk(tArrow, 2)
		}
		return token{}, newParseError(s.file, line, "unexpected character %q", string(c))
	default:
		return token{}, newParseError(s.file, line, "unexpected character %q", string(c))
	}
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r':
			s.pos++
		case '\n':
			s.pos++
			s.line++
		default:
			return
		}
	}
}

// docLine consumes a /// comment and returns its trimmed text.
func (s *scanner) docLine() string {
	s.pos += 3
	start := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
	return strings.TrimSpace(s.src[start:s.pos])
}

func (s *scanner) skipLine() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) peekAt(offset int) byte {
	if s.pos+offset >= len(s.src) {
		return 0
	}
	return s.src[s.pos+offset]
}

func (s *scanner) emit(tok token) {
	s.tokens = append(s.tokens, tok)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func joinDoc(lines []string) string {
	return strings.Join(lines, "\n")
}
