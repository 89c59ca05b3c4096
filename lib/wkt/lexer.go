package wkt

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenKeyword
	tokenNumber
	tokenOpen
	tokenClose
	tokenComma
)

type token struct {
	kind   tokenKind
	text   string
	number float64
	pos    int
	line   int
	column int
}

func (t token) describe() string {
	switch t.kind {
	case tokenEOF:
		return "end of input"
	case tokenNumber:
		return fmt.Sprintf("number %s", t.text)
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

type lexer struct {
	src    string
	pos    int
	line   int
	column int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, column: 1}
}

func (l *lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (l *lexer) next() (token, error) {
	l.skipWhitespace()
	tok := token{pos: l.pos, line: l.line, column: l.column}
	if l.pos >= len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}

	c := l.src[l.pos]
	switch {
	case c == '(':
		tok.kind, tok.text = tokenOpen, "("
		l.advance()
	case c == ')':
		tok.kind, tok.text = tokenClose, ")"
		l.advance()
	case c == ',':
		tok.kind, tok.text = tokenComma, ","
		l.advance()
	case isLetter(c):
		for l.pos < len(l.src) && isLetter(l.src[l.pos]) {
			l.advance()
		}
		tok.kind, tok.text = tokenKeyword, l.src[tok.pos:l.pos]
	case isDigit(c) || c == '-' || c == '+' || c == '.':
		if err := l.scanNumber(); err != nil {
			return tok, NewParseError(err.Error(), tok.line, tok.column)
		}

		tok.kind, tok.text = tokenNumber, l.src[tok.pos:l.pos]
		number, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return tok, NewParseError(fmt.Sprintf("invalid number %q", tok.text), tok.line, tok.column)
		}
		tok.number = number
	default:
		return tok, NewParseError(fmt.Sprintf("invalid character %q", c), tok.line, tok.column)
	}

	return tok, nil
}

// scanNumber consumes [sign] digits [. digits] [(e|E) [sign] digits]. The number must be followed by
// whitespace, a comma, a closing paren or the end of input.
func (l *lexer) scanNumber() error {
	if c := l.src[l.pos]; c == '-' || c == '+' {
		l.advance()
	}

	digits := l.scanDigits()
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.advance()
		digits += l.scanDigits()
	}

	if digits == 0 {
		return fmt.Errorf("malformed number")
	}

	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.advance()
		if l.pos < len(l.src) && (l.src[l.pos] == '-' || l.src[l.pos] == '+') {
			l.advance()
		}

		if l.scanDigits() == 0 {
			return fmt.Errorf("malformed number exponent")
		}
	}

	if l.pos < len(l.src) && !endsNumber(l.src[l.pos]) {
		return fmt.Errorf("malformed number")
	}

	return nil
}

func endsNumber(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ',', ')':
		return true
	default:
		return false
	}
}

func (l *lexer) scanDigits() int {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.advance()
	}
	return l.pos - start
}
