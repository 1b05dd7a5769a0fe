package symbolic

import (
	"errors"
	"strconv"
)

// ErrSyntax is matched by every error that Parse returns for malformed input.
var ErrSyntax = errors.New("symbolic: syntax error")

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError and matches ErrSyntax.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)

// syntaxMsg formats a syntax error message at a column.
func syntaxMsg(col int, msg string) string {
	return "symbolic: column " + strconv.Itoa(col) + ": " + msg
}

// LexError is an invalid token.
type LexError struct {
	// Text is the token scanned so far, including the offending rune.
	Text string
	// Kind is "number", or empty if the offending rune starts no token.
	Kind string
	// Col is the number of runes read up to and including the offending one.
	Col int
}

func (err *LexError) Error() string {
	if err.Kind == "" {
		return syntaxMsg(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return syntaxMsg(err.Col, "invalid "+err.Kind+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int      { return err.Col }
func (err *LexError) Unwrap() error { return ErrSyntax }

// OperatorError is an operator in a position where it cannot apply, like a
// binary-only operator with no left operand.
type OperatorError struct {
	Col      int
	Operator string
	// Unary is whether the operator appeared where an operand was expected.
	Unary bool
}

func (err *OperatorError) Error() string {
	if err.Unary {
		return syntaxMsg(err.Col, strconv.Quote(err.Operator)+" is not a unary operator")
	}
	return syntaxMsg(err.Col, "unexpected operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int      { return err.Col }
func (err *OperatorError) Unwrap() error { return ErrSyntax }

// BracketError is an unbalanced or mismatched bracket. Left is empty for a
// close bracket with no opener, and Right is empty for an opener left open.
type BracketError struct {
	Col         int
	Left, Right string
}

func (err *BracketError) Error() string {
	switch {
	case err.Left == "":
		return syntaxMsg(err.Col, "unopened "+strconv.Quote(err.Right))
	case err.Right == "":
		return syntaxMsg(err.Col, "unclosed "+strconv.Quote(err.Left))
	}
	return syntaxMsg(err.Col, strconv.Quote(err.Left)+" closed by "+strconv.Quote(err.Right))
}

func (err *BracketError) Pos() int      { return err.Col }
func (err *BracketError) Unwrap() error { return ErrSyntax }

// CallError is a function name with no argument.
type CallError struct {
	// Col is the position of the function name.
	Col  int
	Func string
}

func (err *CallError) Error() string {
	return syntaxMsg(err.Col, "missing argument to "+err.Func)
}

func (err *CallError) Pos() int      { return err.Col }
func (err *CallError) Unwrap() error { return ErrSyntax }

// EmptyExpressionError is an operand that is missing, including an input with
// nothing in it.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is that token, or empty at the end of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return syntaxMsg(err.Col, "no expression before "+strconv.Quote(err.End))
	case err.Col <= 1:
		return syntaxMsg(err.Col, "no expression")
	}
	return syntaxMsg(err.Col, "no expression at end of input")
}

func (err *EmptyExpressionError) Pos() int      { return err.Col }
func (err *EmptyExpressionError) Unwrap() error { return ErrSyntax }
