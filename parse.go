package symbolic

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Expr = num | name | const | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')' | '[' Expr ']' | '{' Expr '}'
// Call = funcname Expr | funcname '(' Expr ')' | funcname '^' Expr Call
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr | Expr Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr

// Parse parses an expression. Names other than functions and constants
// become parameters. The given options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	if !p.nofuncs {
		p.funcs = defaultfuncs
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	if tok := scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, -1)
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// defaultfuncs maps each name the parser recognizes as a function to its
// canonical name.
var defaultfuncs = func() map[string]string {
	m := make(map[string]string, len(functions)+len(funcAliases))
	for k := range functions {
		m[k] = k
	}
	for k, v := range funcAliases {
		m[k] = v
	}
	return m
}()

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*Node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent:
			// (parsed) x -> (parsed) * (x)
			// (parsed) x^(expr) -> (parsed) * (x^(expr))
			// a^(parsed) x -> (a^(parsed)) * (x)
			scan.push(tok)
			prec := termprec
			if !prec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = mul(n, rhs)
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == KindNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyAfter(scan.must())
			}
			n = binary(prec.op, n, rhs)
		case tokenOpen:
			// A multiplication by a bracketed term: 2 (expr) -> (2) * (expr).
			match := rightbracket(tok.text)
			prec := termprec
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, exprprec)
			if err != nil {
				return nil, err
			}
			end := scan.must()
			if end.kind != tokenClose || end.text != CloseBrackets[match:match+1] {
				return nil, itShouldNotHaveEndedThisWay(end, match)
			}
			if rhs == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = mul(n, rhs)
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("symbolic: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// any encountered token must be valid as the start of a subexpression, and
// whitespace normally lexed as EOF is ignored.
func parselhs(scan *lexer, p *parsectx, until operator) (*Node, error) {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return literal(tok)
	case tokenIdent:
		if fn, ok := p.funcs[tok.text]; ok {
			return parsecall(scan, p, until, fn, tok)
		}
		if _, ok := constants[tok.text]; ok && !p.nofuncs {
			return constant(tok.text), nil
		}
		return symbol(tok.text), nil
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == KindNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyAfter(scan.must())
		}
		if prec.op == KindNeg {
			return neg(rhs), nil
		}
		return rhs, nil
	case tokenOpen:
		match := rightbracket(tok.text)
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != CloseBrackets[match:match+1] {
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return rhs, nil
	case tokenClose:
		// Let the caller decide what an empty subexpression means.
		scan.push(tok)
		return nil, nil
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("symbolic: unknown token: " + tok.String())
	}
}

// parsecall parses the argument of a function whose name token has just been
// scanned.
func parsecall(scan *lexer, p *parsectx, until operator, fn string, name lexToken) (*Node, error) {
	// We respect whitespace here so that sin\nx doesn't string together
	// expressions.
	tok, err := scan.next(p.wseof)
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenOp:
		// Check for e.g. ^2 in cos^2 x, which is [cos(x)]^2.
		if prec := binop(tok.text); prec.op == KindPow {
			up, err := parseterm(scan, p, powprec)
			if err != nil {
				return nil, err
			}
			if up == nil {
				return nil, emptyAfter(scan.must())
			}
			c, err := parsecall(scan, p, until, fn, name)
			if err != nil {
				return nil, err
			}
			return pow(c, up), nil
		}
		// Other than exponentiations, finding an operator is the same as
		// finding a number or identifier: sin -x -> sin(-x).
		fallthrough
	case tokenNum, tokenIdent:
		scan.push(tok)
		if termprec.moreBinding(until) {
			until = termprec
		}
		arg, err := parseterm(scan, p, until)
		if err != nil {
			return nil, err
		}
		if arg == nil {
			return nil, &CallError{Col: name.pos, Func: name.text}
		}
		return call(fn, arg), nil
	case tokenOpen:
		match := rightbracket(tok.text)
		arg, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != CloseBrackets[match:match+1] {
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
		if arg == nil {
			return nil, &CallError{Col: name.pos, Func: name.text}
		}
		return call(fn, arg), nil
	case tokenClose, tokenEOF:
		return nil, &CallError{Col: name.pos, Func: name.text}
	default:
		panic("symbolic: unknown token: " + tok.String())
	}
}

// literal converts a number token to a node. Real literals keep their text so
// that arbitrary-precision evaluation can reparse them.
func literal(tok lexToken) (*Node, error) {
	s := tok.text
	im := strings.HasSuffix(s, "i") || strings.HasSuffix(s, "j")
	if im {
		s = s[:len(s)-1]
	}
	if s == "∞" {
		s = "inf"
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
	}
	if im {
		return num(complex(0, f)), nil
	}
	return &Node{kind: KindNum, name: tok.text, val: complex(f, 0)}, nil
}

// emptyAfter returns the error for an operator with no operand before the
// token end.
func emptyAfter(end lexToken) error {
	return &EmptyExpressionError{Col: end.pos, End: end.text}
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("symbolic: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket matching right. If right is no bracket,
// then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return OpenBrackets[right : right+1]
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket rune index that
// the expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok lexToken, match int) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	default:
		panic("symbolic: it really should not have ended this way: " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op Kind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of KindNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, KindAdd}
	case "-":
		return operator{1, false, KindSub}
	case "*", "×":
		return operator{5, false, KindMul}
	case "/", "÷":
		return operator{5, false, KindDiv}
	case "^":
		return operator{15, true, KindPow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of KindNone. Unary plus has op KindAdd.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, KindAdd}
	case "-":
		return operator{10, true, KindNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the default precedence for parsing terms. Its prec
	// should match that of multiplication.
	termprec = operator{5, true, KindMul}
	// powprec is the precedence of exponentiation.
	powprec = binop("^")
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{-128, true, KindNone}
)
