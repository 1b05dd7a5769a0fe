package symbolic

import (
	"math"
	"math/cmplx"
)

// The constructors below are the only way nodes are built outside the
// parser's leaves. They fold operations on two literals, drop identities, and
// keep literals last in sums and first in products, so that equal algebra
// built in either operand order produces equal trees.

// num builds a literal. Signed zeros are cleared so that negated reals print
// without an imaginary part.
func num(v complex128) *Node {
	re, im := real(v), imag(v)
	if re == 0 {
		re = 0
	}
	if im == 0 {
		im = 0
	}
	return &Node{kind: KindNum, val: complex(re, im)}
}

func symbol(s string) *Node {
	return &Node{kind: KindName, name: s}
}

func call(fn string, arg *Node) *Node {
	return &Node{kind: KindCall, name: fn, left: arg}
}

// isNum reports whether n is a literal with value v.
func isNum(n *Node, v complex128) bool {
	return n.kind == KindNum && n.val == v
}

func neg(x *Node) *Node {
	switch x.kind {
	case KindNum:
		return num(-x.val)
	case KindNeg:
		return x.left
	}
	return &Node{kind: KindNeg, left: x}
}

func add(l, r *Node) *Node {
	switch {
	case l.kind == KindNum && r.kind == KindNum:
		return num(l.val + r.val)
	case isNum(l, 0):
		return r
	case isNum(r, 0):
		return l
	case l.kind == KindNum:
		l, r = r, l
	}
	if r.kind == KindNum && l.kind == KindAdd && l.right.kind == KindNum {
		// (x + a) + b -> x + (a+b)
		return add(l.left, num(l.right.val+r.val))
	}
	return &Node{kind: KindAdd, left: l, right: r}
}

func sub(l, r *Node) *Node {
	switch {
	case l.kind == KindNum && r.kind == KindNum:
		return num(l.val - r.val)
	case isNum(r, 0):
		return l
	case isNum(l, 0):
		return neg(r)
	}
	return &Node{kind: KindSub, left: l, right: r}
}

func mul(l, r *Node) *Node {
	switch {
	case l.kind == KindNum && r.kind == KindNum:
		return num(l.val * r.val)
	case isNum(l, 0), isNum(r, 0):
		return num(0)
	case isNum(l, 1):
		return r
	case isNum(r, 1):
		return l
	case isNum(l, -1):
		return neg(r)
	case isNum(r, -1):
		return neg(l)
	case r.kind == KindNum:
		l, r = r, l
	}
	if l.kind == KindNum && r.kind == KindMul && r.left.kind == KindNum {
		// a * (b * x) -> (a*b) * x
		return mul(num(l.val*r.left.val), r.right)
	}
	return &Node{kind: KindMul, left: l, right: r}
}

func div(l, r *Node) *Node {
	switch {
	case l.kind == KindNum && r.kind == KindNum:
		return num(l.val / r.val)
	case isNum(r, 1):
		return l
	}
	return &Node{kind: KindDiv, left: l, right: r}
}

func pow(l, r *Node) *Node {
	switch {
	case l.kind == KindNum && r.kind == KindNum:
		return num(powc(l.val, r.val))
	case isNum(r, 0):
		return num(1)
	case isNum(r, 1):
		return l
	}
	return &Node{kind: KindPow, left: l, right: r}
}

// binary builds the node for a binary kind through its folding constructor.
func binary(k Kind, l, r *Node) *Node {
	switch k {
	case KindAdd:
		return add(l, r)
	case KindSub:
		return sub(l, r)
	case KindMul:
		return mul(l, r)
	case KindDiv:
		return div(l, r)
	case KindPow:
		return pow(l, r)
	default:
		panic("symbolic: not a binary kind: " + k.String())
	}
}

// powc is complex exponentiation that stays exact on the real line wherever
// math.Pow is defined.
func powc(x, y complex128) complex128 {
	if imag(x) == 0 && imag(y) == 0 {
		b, e := real(x), real(y)
		if b >= 0 || e == math.Trunc(e) {
			return complex(math.Pow(b, e), 0)
		}
	}
	if y == 0 {
		return 1
	}
	return cmplx.Pow(x, y)
}

// evalf evaluates every closed subtree of n to a literal. If n has no free
// symbols, the result is a single KindNum node.
func evalf(n *Node) *Node {
	switch n.kind {
	case KindNum, KindName:
		return n
	case KindConst:
		return num(n.val)
	case KindCall:
		arg := evalf(n.left)
		if arg.kind == KindNum {
			return num(lookupFunc(n.name).complex(arg.val))
		}
		if arg == n.left {
			return n
		}
		return call(n.name, arg)
	case KindNeg:
		x := evalf(n.left)
		if x == n.left {
			return n
		}
		return neg(x)
	default:
		l, r := evalf(n.left), evalf(n.right)
		if l == n.left && r == n.right {
			return n
		}
		return binary(n.kind, l, r)
	}
}
