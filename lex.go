package tally

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/slices"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a number literal.
	tokenNum
	// tokenOp is an arithmetic operator.
	tokenOp
	// tokenPunct is a punctuation character: = ( ) ,
	tokenPunct
	// tokenKeyword is a reserved word, either let or const.
	tokenKeyword
	// tokenWord is a variable or function name.
	tokenWord
	// tokenBad is a single character the lexer does not recognize.
	tokenBad
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "none"
	case tokenEOF:
		return "end of input"
	case tokenNum:
		return "number"
	case tokenOp:
		return "operator"
	case tokenPunct:
		return "punctuation"
	case tokenKeyword:
		return "keyword"
	case tokenWord:
		return "word"
	case tokenBad:
		return "invalid"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the characters which are considered to be operators.
const Operators = "+-*/^"

// Punctuation contains the characters which structure statements.
const Punctuation = "=(),"

var keywords = []string{"let", "const"}

func isWordStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type lexer struct {
	buf *buffer
}

func lex(src string) *lexer {
	return &lexer{buf: newBuffer(src)}
}

// next scans the next token from the input. Once the input is exhausted,
// every call returns an EOF token. The lexer never fails; characters it does
// not recognize become single-character tokens of kind tokenBad.
func (l *lexer) next() lexToken {
	for {
		r, ok := l.buf.current()
		if !ok {
			return lexToken{kind: tokenEOF, pos: l.buf.col}
		}
		if !unicode.IsSpace(r) {
			break
		}
		l.buf.advance()
	}
	r, _ := l.buf.current()
	tok := lexToken{pos: l.buf.col}
	switch {
	case strings.ContainsRune(Operators, r):
		l.buf.advance()
		tok.text = string(r)
		tok.kind = tokenOp
	case strings.ContainsRune(Punctuation, r):
		l.buf.advance()
		tok.text = string(r)
		tok.kind = tokenPunct
	case unicode.IsDigit(r):
		tok.text = l.scanNum()
		tok.kind = tokenNum
	case isWordStart(r):
		tok.text = l.scanWord()
		if slices.Contains(keywords, tok.text) {
			tok.kind = tokenKeyword
		} else {
			tok.kind = tokenWord
		}
	default:
		l.buf.advance()
		tok.text = string(r)
		tok.kind = tokenBad
	}
	return tok
}

// scanNum scans a run of digits, optionally followed by one point and more
// digits. A trailing point with no digits after it is accepted, so "12." is a
// number token. There is no exponent notation.
func (l *lexer) scanNum() string {
	start := l.buf.off
	for {
		r, ok := l.buf.current()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		l.buf.advance()
	}
	if r, ok := l.buf.current(); ok && r == '.' {
		l.buf.advance()
		for {
			r, ok := l.buf.current()
			if !ok || !unicode.IsDigit(r) {
				break
			}
			l.buf.advance()
		}
	}
	return l.buf.src[start:l.buf.off]
}

func (l *lexer) scanWord() string {
	start := l.buf.off
	for {
		r, ok := l.buf.current()
		if !ok || !isWordRune(r) {
			break
		}
		l.buf.advance()
	}
	return l.buf.src[start:l.buf.off]
}

// cursor wraps a lexer with the single token of lookahead the parser needs.
type cursor struct {
	lex *lexer
	tok lexToken
}

func newCursor(src string) *cursor {
	return &cursor{lex: lex(src)}
}

// peek returns the next token without consuming it.
func (c *cursor) peek() lexToken {
	if c.tok.kind == tokenNone {
		c.tok = c.lex.next()
	}
	return c.tok
}

// advance consumes and returns the next token.
func (c *cursor) advance() lexToken {
	tok := c.peek()
	c.tok = c.lex.next()
	return tok
}
