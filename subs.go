package symbolic

import (
	"sort"
)

// Placeholder is a named free variable of any symbolic system. Only
// placeholders created by NewParameter can be substituted in an Expr; others
// produce a *VariableKindError.
type Placeholder interface {
	Name() string
}

// parameterOf checks that a placeholder is a *Parameter.
func parameterOf(v Placeholder) (*Parameter, error) {
	p, ok := v.(*Parameter)
	if !ok || p == nil {
		return nil, &VariableKindError{Variable: v}
	}
	return p, nil
}

// Subs replaces every occurrence of variable in e with value, a numeric
// scalar or Symbolic value. If the result has no free symbols, it is
// evaluated to a number; otherwise its closed subexpressions are evaluated
// and the result is symbolic.
func (e *Expr) Subs(variable Placeholder, value any) (Result, error) {
	p, err := parameterOf(variable)
	if err != nil {
		return Result{}, err
	}
	v := operand(value)
	if v == nil {
		return Result{}, &OperandError{Op: "subs", Left: variable, Right: value}
	}
	return settle(replace(e.n, map[string]*Node{p.name: v})), nil
}

// Xreplace replaces all parameters in m by their values simultaneously:
// values are not themselves substituted, even when they contain parameters
// that m also maps. The result is numeric or symbolic as for Subs.
func (e *Expr) Xreplace(m map[Placeholder]any) (Result, error) {
	b, err := bindings(m)
	if err != nil {
		return Result{}, err
	}
	return settle(replace(e.n, b)), nil
}

// bindings validates a substitution mapping and converts it to trees keyed by
// parameter name. Errors are reported in name order so that they do not
// depend on map iteration.
func bindings(m map[Placeholder]any) (map[string]*Node, error) {
	keys := make([]Placeholder, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return placeholderName(keys[i]) < placeholderName(keys[j])
	})
	r := make(map[string]*Node, len(m))
	for _, k := range keys {
		p, err := parameterOf(k)
		if err != nil {
			return nil, err
		}
		v := operand(m[k])
		if v == nil {
			return nil, &OperandError{Op: "xreplace", Left: k, Right: m[k]}
		}
		if old, ok := r[p.name]; ok && !old.equal(v) {
			return nil, &BindingError{Name: p.name}
		}
		r[p.name] = v
	}
	return r, nil
}

// placeholderName is the name of a placeholder, tolerating nil.
func placeholderName(v Placeholder) string {
	if v == nil {
		return ""
	}
	if p, ok := v.(*Parameter); ok && p == nil {
		return ""
	}
	return v.Name()
}

// replace substitutes trees for symbols in one pass over n. Subtrees without
// replacements are shared with n.
func replace(n *Node, m map[string]*Node) *Node {
	switch n.kind {
	case KindName:
		if v, ok := m[n.name]; ok {
			return v
		}
		return n
	case KindNum, KindConst:
		return n
	case KindCall:
		x := replace(n.left, m)
		if x == n.left {
			return n
		}
		return call(n.name, x)
	case KindNeg:
		x := replace(n.left, m)
		if x == n.left {
			return n
		}
		return neg(x)
	default:
		l, r := replace(n.left, m), replace(n.right, m)
		if l == n.left && r == n.right {
			return n
		}
		return binary(n.kind, l, r)
	}
}
