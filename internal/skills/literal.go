package skills

import (
	"strconv"
	"strings"
)

// closers maps literal sequence openers to their closing bracket.
var closers = map[byte]byte{'[': ']', '(': ')', '{': '}'}

// decodeLiteralSequence decodes repr-style sequences such as
// "['Python', 'SQL']" or "('go', \"rust\",)". Elements must be quoted strings
// or bare numbers; anything else rejects the whole value.
func decodeLiteralSequence(text string) ([]string, bool) {
	s := strings.TrimSpace(text)
	if len(s) < 2 {
		return nil, false
	}
	closer, ok := closers[s[0]]
	if !ok || s[len(s)-1] != closer {
		return nil, false
	}

	p := &literalParser{src: s[1 : len(s)-1]}
	tokens := make([]string, 0)
	for {
		p.skipSpace()
		if p.done() {
			return tokens, true
		}
		token, ok := p.element()
		if !ok {
			return nil, false
		}
		tokens = append(tokens, token)

		p.skipSpace()
		if p.done() {
			return tokens, true
		}
		if p.src[p.pos] != ',' {
			return nil, false
		}
		p.pos++
	}
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) done() bool {
	return p.pos >= len(p.src)
}

func (p *literalParser) skipSpace() {
	for !p.done() && strings.ContainsRune(" \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *literalParser) element() (string, bool) {
	switch quote := p.src[p.pos]; quote {
	case '\'', '"':
		return p.quoted(quote)
	default:
		return p.number()
	}
}

// quoted reads a single- or double-quoted string with backslash escapes.
func (p *literalParser) quoted(quote byte) (string, bool) {
	p.pos++
	var sb strings.Builder
	for !p.done() {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			sb.WriteByte(unescape(p.src[p.pos+1]))
			p.pos += 2
		case c == quote:
			p.pos++
			return sb.String(), true
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", false
}

func (p *literalParser) number() (string, bool) {
	start := p.pos
	for !p.done() && p.src[p.pos] != ',' && !strings.ContainsRune(" \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
	raw := p.src[start:p.pos]
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return "", false
	}
	return raw, true
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}
