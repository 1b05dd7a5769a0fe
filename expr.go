package symbolic

import (
	"math"
	"math/big"
	"sort"
)

// Expr is an immutable symbolic value: a tree over parameters, literals, and
// arithmetic, trigonometric, and exponential operations. Every method returns
// a new value and leaves its receiver and operands unchanged, so an Expr may
// be shared between goroutines without synchronization.
//
// Operands of the arithmetic methods may be any Symbolic value or a numeric
// scalar: any Go integer, float, or complex type, or a non-nil *big.Int,
// *big.Rat, or *big.Float.
type Expr struct {
	n *Node
}

// Symbolic is implemented by Expr and Parameter.
type Symbolic interface {
	// Expression returns the symbolic value as an Expr.
	Expression() *Expr
}

// Expression returns e itself.
func (e *Expr) Expression() *Expr {
	return e
}

// Tree returns the root of the expression's tree.
func (e *Expr) Tree() *Node {
	return e.n
}

// String returns the canonical infix text of the expression.
func (e *Expr) String() string {
	return e.n.String()
}

// Equal reports whether e and x have structurally identical trees.
func (e *Expr) Equal(x Symbolic) bool {
	o := exprOf(x)
	return o != nil && e.n.equal(o.n)
}

// FreeSymbols returns the sorted names of the parameters occurring in e.
func (e *Expr) FreeSymbols() []string {
	seen := make(map[string]bool)
	var walk func(*Node)
	walk = func(n *Node) {
		switch n.kind {
		case KindName:
			seen[n.name] = true
		case KindNum, KindConst:
		default:
			walk(n.left)
			if n.right != nil {
				walk(n.right)
			}
		}
	}
	walk(e.n)
	r := make([]string, 0, len(seen))
	for k := range seen {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Params returns the parameters occurring in e, sorted by name.
func (e *Expr) Params() []*Parameter {
	names := e.FreeSymbols()
	r := make([]*Parameter, len(names))
	for i, s := range names {
		r[i] = NewParameter(s)
	}
	return r
}

// IsNumeric reports whether e has no free symbols, so that substitution would
// produce a number.
func (e *Expr) IsNumeric() bool {
	return len(e.FreeSymbols()) == 0
}

// Parameter is a named free variable. It is an Expr whose tree is the single
// symbol with its name, so all arithmetic, transforms, and substitution are
// available on it.
//
// Substitution matches parameters by name, not by identity: two Parameters
// created with the same name are the same variable everywhere, including
// inside expressions built from the other. Use distinct names for logically
// distinct quantities.
type Parameter struct {
	*Expr
	name string
}

// NewParameter creates a parameter with the given name.
func NewParameter(name string) *Parameter {
	return &Parameter{Expr: &Expr{n: symbol(name)}, name: name}
}

// Name returns the name of the parameter.
func (p *Parameter) Name() string {
	return p.name
}

// exprOf returns the Expr for a Symbolic value, or nil if there is none.
func exprOf(x Symbolic) *Expr {
	switch x := x.(type) {
	case nil:
		return nil
	case *Expr:
		return x
	case *Parameter:
		if x == nil {
			return nil
		}
		return x.Expr
	}
	return x.Expression()
}

// operand converts an operand to a tree. The result is nil if x is neither
// Symbolic nor a numeric scalar.
func operand(x any) *Node {
	if _, ok := x.(Symbolic); ok {
		if e := symbolicOperand(x); e != nil {
			return e.n
		}
		return nil
	}
	if v, ok := toComplex(x); ok {
		return num(v)
	}
	return nil
}

// toComplex converts a numeric scalar to complex128.
func toComplex(x any) (complex128, bool) {
	switch x := x.(type) {
	case int:
		return complex(float64(x), 0), true
	case int8:
		return complex(float64(x), 0), true
	case int16:
		return complex(float64(x), 0), true
	case int32:
		return complex(float64(x), 0), true
	case int64:
		return complex(float64(x), 0), true
	case uint:
		return complex(float64(x), 0), true
	case uint8:
		return complex(float64(x), 0), true
	case uint16:
		return complex(float64(x), 0), true
	case uint32:
		return complex(float64(x), 0), true
	case uint64:
		return complex(float64(x), 0), true
	case uintptr:
		return complex(float64(x), 0), true
	case float32:
		return complex(float64(x), 0), true
	case float64:
		return complex(x, 0), true
	case complex64:
		return complex128(x), true
	case complex128:
		return x, true
	case *big.Int:
		if x == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return complex(f, 0), true
	case *big.Rat:
		if x == nil {
			return 0, false
		}
		f, _ := x.Float64()
		return complex(f, 0), true
	case *big.Float:
		if x == nil {
			return 0, false
		}
		f, _ := x.Float64()
		return complex(f, 0), true
	}
	return 0, false
}

// binop applies a binary operation with e on the left, or with e on the right
// if reflected. It declines with ErrNotImplemented for unsupported operands.
func (e *Expr) binop(k Kind, x any, reflected bool) (*Expr, error) {
	o := operand(x)
	if o == nil {
		return nil, ErrNotImplemented
	}
	if reflected {
		return &Expr{n: binary(k, o, e.n)}, nil
	}
	return &Expr{n: binary(k, e.n, o)}, nil
}

// Add returns e + x.
func (e *Expr) Add(x any) (*Expr, error) { return e.binop(KindAdd, x, false) }

// RAdd returns x + e.
func (e *Expr) RAdd(x any) (*Expr, error) { return e.binop(KindAdd, x, true) }

// Sub returns e - x.
func (e *Expr) Sub(x any) (*Expr, error) { return e.binop(KindSub, x, false) }

// RSub returns x - e.
func (e *Expr) RSub(x any) (*Expr, error) { return e.binop(KindSub, x, true) }

// Mul returns e * x.
func (e *Expr) Mul(x any) (*Expr, error) { return e.binop(KindMul, x, false) }

// RMul returns x * e.
func (e *Expr) RMul(x any) (*Expr, error) { return e.binop(KindMul, x, true) }

// Div returns e / x.
func (e *Expr) Div(x any) (*Expr, error) { return e.binop(KindDiv, x, false) }

// RDiv returns x / e.
func (e *Expr) RDiv(x any) (*Expr, error) { return e.binop(KindDiv, x, true) }

// Pow returns e ^ x.
func (e *Expr) Pow(x any) (*Expr, error) { return e.binop(KindPow, x, false) }

// RPow returns x ^ e.
func (e *Expr) RPow(x any) (*Expr, error) { return e.binop(KindPow, x, true) }

// Neg returns -e.
func (e *Expr) Neg() *Expr {
	return &Expr{n: neg(e.n)}
}

// Mod returns NaN for any operand. Measurement-angle checks in simulators
// compare angle % (π/2) against known values to detect Pauli measurements;
// NaN compares unequal to everything, so a symbolic angle is never treated as
// a special case.
func (e *Expr) Mod(x any) float64 {
	return math.NaN()
}

// RMod returns NaN for any operand, as Mod does.
func (e *Expr) RMod(x any) float64 {
	return math.NaN()
}
