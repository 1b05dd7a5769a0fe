package symbolic

import (
	"math"
	"strconv"
	"strings"
)

// Node is a node in the expression tree underlying an Expr. Nodes are never
// modified after construction, so trees may share subtrees freely and may be
// read from any number of goroutines.
type Node struct {
	kind Kind

	// name is the symbol name for KindName, the function name for KindCall,
	// the constant name for KindConst, and the source text (if any) of a
	// real KindNum literal.
	name string
	// val is the value of KindNum and KindConst.
	val complex128

	left  *Node
	right *Node
}

// Kind identifies the operation a Node represents.
type Kind int8

const (
	KindNone Kind = iota

	KindNum   // complex literal
	KindName  // free symbol, substitutable
	KindConst // named constant, pi or e
	KindCall  // name is the function applied to left

	KindNeg // negate left
	KindAdd // left + right
	KindSub // left - right
	KindMul // left * right
	KindDiv // left / right
	KindPow // left ^ right
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind -trimprefix=Kind

// Kind returns the kind of the node.
func (n *Node) Kind() Kind {
	return n.kind
}

// Name returns the symbol, function, or constant name of the node. For
// literals it is the source text the literal was parsed from, if any.
func (n *Node) Name() string {
	return n.name
}

// Value returns the value of a literal or constant node.
func (n *Node) Value() complex128 {
	return n.val
}

// Left returns the first operand of the node, or nil for leaves.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the second operand of a binary node, or nil otherwise.
func (n *Node) Right() *Node {
	return n.right
}

// Operands returns the node's operands in order.
func (n *Node) Operands() []*Node {
	switch {
	case n.right != nil:
		return []*Node{n.left, n.right}
	case n.left != nil:
		return []*Node{n.left}
	default:
		return nil
	}
}

// equal reports whether two trees are structurally identical. Literal source
// text does not participate.
func (n *Node) equal(m *Node) bool {
	if n == m {
		return true
	}
	if n == nil || m == nil || n.kind != m.kind {
		return false
	}
	switch n.kind {
	case KindNum:
		return sameComplex(n.val, m.val)
	case KindName, KindConst:
		return n.name == m.name
	case KindCall:
		return n.name == m.name && n.left.equal(m.left)
	case KindNeg:
		return n.left.equal(m.left)
	default:
		return n.left.equal(m.left) && n.right.equal(m.right)
	}
}

// sameComplex compares complex values so that NaN parts match each other.
func sameComplex(a, b complex128) bool {
	same := func(x, y float64) bool {
		return x == y || math.IsNaN(x) && math.IsNaN(y)
	}
	return same(real(a), real(b)) && same(imag(a), imag(b))
}

// Printing precedences. Higher binds tighter.
const (
	precSum   = 1
	precTerm  = 2
	precUnary = 3
	precPow   = 4
	precAtom  = 5
)

// prec is the precedence at which the node prints.
func (n *Node) prec() int {
	switch n.kind {
	case KindAdd, KindSub:
		return precSum
	case KindMul, KindDiv:
		return precTerm
	case KindNeg:
		return precUnary
	case KindPow:
		return precPow
	case KindNum:
		switch {
		case real(n.val) != 0 && imag(n.val) != 0:
			return precSum
		case real(n.val) < 0, real(n.val) == 0 && imag(n.val) < 0:
			return precUnary
		}
		return precAtom
	default:
		return precAtom
	}
}

// String renders the tree as infix text that Parse reads back to an equal
// tree, provided every literal is finite.
func (n *Node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *Node) fmt(b *strings.Builder) {
	switch n.kind {
	case KindNone:
		b.WriteString("$invalid$")
	case KindNum:
		b.WriteString(formatNum(n.val))
	case KindName, KindConst:
		b.WriteString(n.name)
	case KindCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case KindNeg:
		b.WriteByte('-')
		n.left.fmtAt(b, precUnary)
	case KindAdd:
		n.left.fmtAt(b, precSum)
		b.WriteString(" + ")
		n.right.fmtAt(b, precSum+1)
	case KindSub:
		n.left.fmtAt(b, precSum)
		b.WriteString(" - ")
		n.right.fmtAt(b, precSum+1)
	case KindMul:
		n.left.fmtAt(b, precTerm)
		b.WriteByte('*')
		n.right.fmtAt(b, precTerm+1)
	case KindDiv:
		n.left.fmtAt(b, precTerm)
		b.WriteByte('/')
		n.right.fmtAt(b, precTerm+1)
	case KindPow:
		// Exponentiation is right-associative.
		n.left.fmtAt(b, precPow+1)
		b.WriteByte('^')
		n.right.fmtAt(b, precPow)
	default:
		panic("symbolic: invalid node kind " + n.kind.String())
	}
}

// fmtAt writes n, parenthesized if it binds more loosely than min.
func (n *Node) fmtAt(b *strings.Builder, min int) {
	if n.prec() >= min {
		n.fmt(b)
		return
	}
	b.WriteByte('(')
	n.fmt(b)
	b.WriteByte(')')
}

// formatNum formats a literal the way the lexer reads it back.
func formatNum(v complex128) string {
	re, im := real(v), imag(v)
	switch {
	case im == 0 && re == 0:
		return "0"
	case im == 0:
		return formatFloat(re)
	case re == 0:
		return formatFloat(im) + "i"
	}
	s := formatFloat(re)
	if !math.Signbit(im) {
		s += "+"
	} else {
		s += "-"
		im = -im
	}
	return s + formatFloat(im) + "i"
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
