package tree

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"phenolint/pkg/pointer"
)

// ParseJSON decodes src as JSON into the canonical tree, recording a span
// for every pointer along the way. No third-party JSON library exposes
// byte-accurate positions for arbitrary values, so this is a small
// hand-written scanner rather than encoding/json: tracking both the start
// AND end byte of every node, not just decoded values, is exactly what
// generic unmarshalers don't expose.
func ParseJSON(src []byte) (Value, SpanMap, error) {
	p := &jsonParser{src: src, spans: make(SpanMap)}
	p.skipSpace()
	v, err := p.parseValue(pointer.Root())
	if err != nil {
		return Value{}, nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Value{}, nil, fmt.Errorf("unexpected trailing data at byte %d", p.pos)
	}
	return v, p.spans, nil
}

type jsonParser struct {
	src   []byte
	pos   int
	spans SpanMap
}

func (p *jsonParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

func (p *jsonParser) errf(format string, args ...any) error {
	return fmt.Errorf("json: byte %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *jsonParser) parseValue(at pointer.Pointer) (Value, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return Value{}, p.errf("unexpected end of input")
	}

	start := p.pos
	var v Value
	var err error

	switch c := p.src[p.pos]; {
	case c == '{':
		v, err = p.parseObject(at)
	case c == '[':
		v, err = p.parseArray(at)
	case c == '"':
		var s string
		s, err = p.parseString()
		v = String(s)
	case c == 't' || c == 'f':
		v, err = p.parseBool()
	case c == 'n':
		err = p.parseNull()
		v = Null()
	case c == '-' || (c >= '0' && c <= '9'):
		v, err = p.parseNumber()
	default:
		err = p.errf("unexpected character %q", c)
	}
	if err != nil {
		return Value{}, err
	}

	p.spans.Set(at, Span{Start: start, End: p.pos})
	return v, nil
}

func (p *jsonParser) parseObject(at pointer.Pointer) (Value, error) {
	m := NewMap()
	p.pos++ // consume '{'
	p.skipSpace()

	if p.pos < len(p.src) && p.src[p.pos] == '}' {
		p.pos++
		return MapValue(m), nil
	}

	for {
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '"' {
			return Value{}, p.errf("expected string key")
		}
		key, err := p.parseString()
		if err != nil {
			return Value{}, err
		}

		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return Value{}, p.errf("expected ':' after key %q", key)
		}
		p.pos++

		val, err := p.parseValue(at.Down(key))
		if err != nil {
			return Value{}, err
		}
		m.Set(key, val)

		p.skipSpace()
		if p.pos >= len(p.src) {
			return Value{}, p.errf("unterminated object")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return MapValue(m), nil
		default:
			return Value{}, p.errf("expected ',' or '}'")
		}
	}
}

func (p *jsonParser) parseArray(at pointer.Pointer) (Value, error) {
	var items []Value
	p.pos++ // consume '['
	p.skipSpace()

	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
		return Seq(items...), nil
	}

	idx := 0
	for {
		val, err := p.parseValue(at.DownIndex(idx))
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)
		idx++

		p.skipSpace()
		if p.pos >= len(p.src) {
			return Value{}, p.errf("unterminated array")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return Seq(items...), nil
		default:
			return Value{}, p.errf("expected ',' or ']'")
		}
	}
}

func (p *jsonParser) parseString() (string, error) {
	start := p.pos
	p.pos++ // consume opening quote
	var sb strings.Builder
	for {
		if p.pos >= len(p.src) {
			return "", p.errf("unterminated string starting at byte %d", start)
		}
		c := p.src[p.pos]
		switch {
		case c == '"':
			p.pos++
			return sb.String(), nil
		case c == '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return "", p.errf("unterminated escape")
			}
			esc := p.src[p.pos]
			switch esc {
			case '"', '\\', '/':
				sb.WriteByte(esc)
				p.pos++
			case 'n':
				sb.WriteByte('\n')
				p.pos++
			case 't':
				sb.WriteByte('\t')
				p.pos++
			case 'r':
				sb.WriteByte('\r')
				p.pos++
			case 'b':
				sb.WriteByte('\b')
				p.pos++
			case 'f':
				sb.WriteByte('\f')
				p.pos++
			case 'u':
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return "", err
				}
				sb.WriteRune(r)
			default:
				return "", p.errf("invalid escape \\%c", esc)
			}
		default:
			r, size := utf8.DecodeRune(p.src[p.pos:])
			sb.WriteRune(r)
			p.pos += size
		}
	}
}

func (p *jsonParser) parseUnicodeEscape() (rune, error) {
	p.pos++ // consume 'u'
	hi, err := p.parseHex4()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(rune(hi)) {
		if p.pos+1 < len(p.src) && p.src[p.pos] == '\\' && p.src[p.pos+1] == 'u' {
			p.pos += 2
			lo, err := p.parseHex4()
			if err != nil {
				return 0, err
			}
			return utf16.DecodeRune(rune(hi), rune(lo)), nil
		}
	}
	return rune(hi), nil
}

func (p *jsonParser) parseHex4() (uint16, error) {
	if p.pos+4 > len(p.src) {
		return 0, p.errf("truncated unicode escape")
	}
	v, err := strconv.ParseUint(string(p.src[p.pos:p.pos+4]), 16, 32)
	if err != nil {
		return 0, p.errf("invalid unicode escape: %w", err)
	}
	p.pos += 4
	return uint16(v), nil
}

func (p *jsonParser) parseBool() (Value, error) {
	if strings.HasPrefix(string(p.src[p.pos:]), "true") {
		p.pos += 4
		return Bool(true), nil
	}
	if strings.HasPrefix(string(p.src[p.pos:]), "false") {
		p.pos += 5
		return Bool(false), nil
	}
	return Value{}, p.errf("invalid literal")
}

func (p *jsonParser) parseNull() error {
	if strings.HasPrefix(string(p.src[p.pos:]), "null") {
		p.pos += 4
		return nil
	}
	return p.errf("invalid literal")
}

func (p *jsonParser) parseNumber() (Value, error) {
	start := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos < len(p.src) && p.src[p.pos] == '.' {
		p.pos++
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	if p.pos < len(p.src) && (p.src[p.pos] == 'e' || p.src[p.pos] == 'E') {
		p.pos++
		if p.pos < len(p.src) && (p.src[p.pos] == '+' || p.src[p.pos] == '-') {
			p.pos++
		}
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
	}
	n, err := strconv.ParseFloat(string(p.src[start:p.pos]), 64)
	if err != nil {
		return Value{}, p.errf("invalid number: %w", err)
	}
	return Number(n), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
