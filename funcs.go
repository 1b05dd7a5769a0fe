package symbolic

import (
	"math"
	"math/big"
	"math/cmplx"

	"github.com/zephyrtronium/bigfloat"
)

// function is a transform that may appear in a KindCall node.
type function struct {
	// complex evaluates the function on a complex argument.
	complex func(complex128) complex128
	// real evaluates the function to the precision of out on a real argument,
	// or is nil if there is no arbitrary-precision implementation. It panics
	// with big.ErrNaN outside its domain, as package big does.
	real func(out, in *big.Float) *big.Float
	// nonneg marks functions whose real domain excludes negative numbers.
	nonneg bool
}

// functions maps canonical function names, as they print, to their
// implementations.
var functions = map[string]*function{
	"sin":       {complex: cmplx.Sin},
	"cos":       {complex: cmplx.Cos},
	"tan":       {complex: cmplx.Tan},
	"asin":      {complex: cmplx.Asin},
	"acos":      {complex: cmplx.Acos},
	"atan":      {complex: cmplx.Atan},
	"exp":       {complex: cmplx.Exp, real: bigfloat.Exp},
	"log":       {complex: cmplx.Log, real: bigfloat.Log, nonneg: true},
	"sqrt":      {complex: cmplx.Sqrt, real: (*big.Float).Sqrt, nonneg: true},
	"conjugate": {complex: cmplx.Conj, real: (*big.Float).Set},
}

// funcAliases are the additional names the parser accepts for functions.
var funcAliases = map[string]string{
	"arcsin": "asin",
	"arccos": "acos",
	"arctan": "atan",
	"ln":     "log",
	"conj":   "conjugate",
}

func lookupFunc(name string) *function {
	f := functions[name]
	if f == nil {
		panic("symbolic: unknown function " + name)
	}
	return f
}

// constants maps named constants to their arbitrary-precision values.
var constants = map[string]struct {
	val  float64
	real func(out *big.Float) *big.Float
}{
	"pi": {math.Pi, bigfloat.Pi},
	"e": {math.E, func(out *big.Float) *big.Float {
		one := new(big.Float).SetPrec(out.Prec()).SetInt64(1)
		return bigfloat.Exp(out, one)
	}},
}

func constant(s string) *Node {
	c, ok := constants[s]
	if !ok {
		panic("symbolic: unknown constant " + s)
	}
	return &Node{kind: KindConst, name: s, val: complex(c.val, 0)}
}

// Pi returns an expression for the constant π. It stays symbolic until the
// expression containing it is substituted or evaluated.
func Pi() *Expr {
	return &Expr{n: constant("pi")}
}

// E returns an expression for Euler's number.
func E() *Expr {
	return &Expr{n: constant("e")}
}

func (e *Expr) apply(fn string) *Expr {
	return &Expr{n: call(fn, e.n)}
}

// Sin returns the symbolic sine of e.
func (e *Expr) Sin() *Expr { return e.apply("sin") }

// Cos returns the symbolic cosine of e.
func (e *Expr) Cos() *Expr { return e.apply("cos") }

// Tan returns the symbolic tangent of e.
func (e *Expr) Tan() *Expr { return e.apply("tan") }

// Arcsin returns the symbolic inverse sine of e.
func (e *Expr) Arcsin() *Expr { return e.apply("asin") }

// Arccos returns the symbolic inverse cosine of e.
func (e *Expr) Arccos() *Expr { return e.apply("acos") }

// Arctan returns the symbolic inverse tangent of e.
func (e *Expr) Arctan() *Expr { return e.apply("atan") }

// Exp returns the symbolic natural exponential of e.
func (e *Expr) Exp() *Expr { return e.apply("exp") }

// Log returns the symbolic natural logarithm of e, on the principal branch.
func (e *Expr) Log() *Expr { return e.apply("log") }

// Sqrt returns the symbolic principal square root of e.
func (e *Expr) Sqrt() *Expr { return e.apply("sqrt") }

// Conjugate returns the symbolic complex conjugate of e.
func (e *Expr) Conjugate() *Expr { return e.apply("conjugate") }
