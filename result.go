package symbolic

import (
	"math"
	"strconv"
)

// Result is a value that is either a concrete complex number or a symbolic
// expression that still has free symbols. The zero Result is the number 0.
type Result struct {
	expr *Expr
	num  complex128
}

// settle evaluates the closed parts of a tree and wraps the outcome.
func settle(n *Node) Result {
	n = evalf(n)
	if n.kind == KindNum {
		return Result{num: n.val}
	}
	return Result{expr: &Expr{n: n}}
}

// IsNumeric reports whether r holds a number.
func (r Result) IsNumeric() bool {
	return r.expr == nil
}

// Numeric returns the number r holds. ok is false if r is symbolic.
func (r Result) Numeric() (v complex128, ok bool) {
	if r.expr != nil {
		return 0, false
	}
	return r.num, true
}

// Expr returns the expression r holds. ok is false if r is numeric.
func (r Result) Expr() (e *Expr, ok bool) {
	return r.expr, r.expr != nil
}

// Value returns the complex128 or *Expr that r holds.
func (r Result) Value() any {
	if r.expr != nil {
		return r.expr
	}
	return r.num
}

// String formats r as an expression or as a complex number.
func (r Result) String() string {
	if r.expr != nil {
		return r.expr.String()
	}
	return strconv.FormatComplex(r.num, 'g', -1, 128)
}

// Subs substitutes into r. A numeric r is returned unchanged.
func (r Result) Subs(variable Placeholder, value any) (Result, error) {
	if r.expr == nil {
		if _, err := parameterOf(variable); err != nil {
			return Result{}, err
		}
		return r, nil
	}
	return r.expr.Subs(variable, value)
}

// Xreplace substitutes simultaneously into r. A numeric r is returned
// unchanged.
func (r Result) Xreplace(m map[Placeholder]any) (Result, error) {
	if r.expr == nil {
		if _, err := bindings(m); err != nil {
			return Result{}, err
		}
		return r, nil
	}
	return r.expr.Xreplace(m)
}

// dispatch applies a binary operator across two operands of any kinds: first
// the left operand's method, then the right operand's reflected method, then
// numeric arithmetic.
func dispatch(k Kind, op string, a, b any) (Result, error) {
	if l := symbolicOperand(a); l != nil {
		if e, err := l.binop(k, b, false); err == nil {
			return Result{expr: e}, nil
		}
	}
	if r := symbolicOperand(b); r != nil {
		if e, err := r.binop(k, a, true); err == nil {
			return Result{expr: e}, nil
		}
	}
	x, xok := toComplex(a)
	y, yok := toComplex(b)
	if !xok || !yok {
		return Result{}, &OperandError{Op: op, Left: a, Right: b}
	}
	return Result{num: binary(k, num(x), num(y)).val}, nil
}

// symbolicOperand returns the Expr for x if x is a usable Symbolic value.
func symbolicOperand(x any) *Expr {
	s, ok := x.(Symbolic)
	if !ok {
		return nil
	}
	e := exprOf(s)
	if e == nil || e.n == nil {
		return nil
	}
	return e
}

// Add returns a + b where each operand is Symbolic or numeric. The result is
// symbolic if either operand is.
func Add(a, b any) (Result, error) { return dispatch(KindAdd, "+", a, b) }

// Sub returns a - b.
func Sub(a, b any) (Result, error) { return dispatch(KindSub, "-", a, b) }

// Mul returns a * b.
func Mul(a, b any) (Result, error) { return dispatch(KindMul, "*", a, b) }

// Div returns a / b.
func Div(a, b any) (Result, error) { return dispatch(KindDiv, "/", a, b) }

// Pow returns a ^ b.
func Pow(a, b any) (Result, error) { return dispatch(KindPow, "^", a, b) }

// Mod returns a % b. If either operand is Symbolic the result is NaN, as for
// Expr.Mod. Two real operands give the floored remainder, with the sign of b.
// Complex operands have no remainder.
func Mod(a, b any) (float64, error) {
	if e := symbolicOperand(a); e != nil {
		return e.Mod(b), nil
	}
	if e := symbolicOperand(b); e != nil {
		return e.RMod(a), nil
	}
	x, xok := toComplex(a)
	y, yok := toComplex(b)
	if !xok || !yok || imag(x) != 0 || imag(y) != 0 {
		return 0, &OperandError{Op: "%", Left: a, Right: b}
	}
	m := math.Mod(real(x), real(y))
	if m != 0 && math.Signbit(m) != math.Signbit(real(y)) {
		m += real(y)
	}
	return m, nil
}
