package symbolic

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
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
	tokenEOF
	// tokenNum is a real or imaginary literal, including inf.
	tokenNum
	// tokenIdent is a parameter, function, or constant name.
	tokenIdent
	tokenOp
	tokenOpen
	tokenClose
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^×÷"

// OpenBrackets and CloseBrackets contain the runes which group expressions.
// An open bracket matches the close bracket at the same index.
const (
	OpenBrackets  = "([{"
	CloseBrackets = ")]}"
)

// classify gives the kind of token that begins with r, or tokenNone if r
// begins no token.
func classify(r rune) tokenKind {
	switch {
	case '0' <= r && r <= '9', r == '.', r == '∞':
		return tokenNum
	case r == '_', unicode.IsLetter(r):
		return tokenIdent
	case strings.ContainsRune(Operators, r):
		return tokenOp
	case strings.ContainsRune(OpenBrackets, r):
		return tokenOpen
	case strings.ContainsRune(CloseBrackets, r):
		return tokenClose
	}
	return tokenNone
}

// delimits reports whether r ends a literal or name in progress.
func delimits(r rune) bool {
	switch classify(r) {
	case tokenOp, tokenOpen, tokenClose:
		return true
	}
	return unicode.IsSpace(r)
}

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// rune is one more than the number of runes read.
	rune int
	// held is a token pushed back by the parser.
	held lexToken
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src, rune: 1}
}

// push makes tok the next token returned from next. Panics if a token is
// already held.
func (l *lexer) push(tok lexToken) {
	if l.held.kind != tokenNone {
		panic("symbolic: double push")
	}
	l.held = tok
}

// must takes the pushed token. Panics if there is none.
func (l *lexer) must() lexToken {
	if l.held.kind == tokenNone {
		panic("symbolic: no pushed token")
	}
	tok := l.held
	l.held = lexToken{}
	return tok
}

func (l *lexer) readRune() (rune, error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token. Any rune in stop that appears where a token could
// begin ends the input like EOF does. The first end of input gives an EOF
// token; after that, next returns io.EOF unless a token was pushed.
func (l *lexer) next(stop string) (lexToken, error) {
	if l.held.kind != tokenNone {
		return l.must(), nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	var r rune
	tok := lexToken{pos: l.rune}
	for {
		var err error
		tok.pos = l.rune
		r, err = l.readRune()
		if errors.Is(err, io.EOF) || err == nil && strings.ContainsRune(stop, r) {
			l.eof = true
			tok.kind = tokenEOF
			return tok, nil
		}
		if err != nil {
			return tok, err
		}
		if !unicode.IsSpace(r) {
			break
		}
	}

	kind := classify(r)
	switch {
	case kind == tokenNone:
		l.buf.WriteRune(r)
		return tok, l.error("")
	case r == '∞':
		l.buf.WriteRune(r)
	case kind == tokenNum:
		l.unreadRune()
		if err := l.scanNum(); err != nil {
			return tok, err
		}
	case kind == tokenIdent:
		l.unreadRune()
		if err := l.scanIdent(); err != nil {
			return tok, err
		}
		if s := l.buf.String(); s == "inf" || s == "Inf" {
			kind = tokenNum
		}
	default:
		l.buf.WriteRune(r)
	}
	tok.kind, tok.text = kind, l.buf.String()
	return tok, nil
}

// scanNum scans a decimal literal: digits with at most one point, then an
// optional signed exponent, then an optional imaginary suffix i or j.
func (l *lexer) scanNum() error {
	var mant, point, exp, expDigits, imag, afterE bool
	for {
		r, err := l.readRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		sign := r == '+' || r == '-'
		if delimits(r) && !(sign && afterE) {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		if imag {
			return l.error("number")
		}
		switch {
		case '0' <= r && r <= '9':
			if exp {
				expDigits = true
			} else {
				mant = true
			}
		case r == '.' && !point && !exp:
			point = true
		case (r == 'e' || r == 'E') && mant && !exp:
			exp = true
		case (r == 'i' || r == 'j') && !afterE:
			imag = true
		case sign:
			// Only reachable directly after the exponent marker.
		default:
			return l.error("number")
		}
		afterE = r == 'e' || r == 'E'
	}
	if !mant || exp && !expDigits {
		return l.error("number")
	}
	return nil
}

// scanIdent scans a name. The caller has already checked that the first rune
// can start one.
func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		case r == '_', r == '.', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

func (l *lexer) error(kind string) error {
	return &LexError{Text: l.buf.String(), Kind: kind, Col: l.rune}
}
