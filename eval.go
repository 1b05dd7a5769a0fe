package symbolic

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Context evaluates real-valued expressions to arbitrary precision. It is not
// safe to use a Context concurrently; Clone gives each goroutine its own.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	names map[string]*big.Float
	prec  uint
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  *big.Float
	}
	varsopt map[*Parameter]*big.Float
	precopt uint
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}
func (precopt) ctxOption() {}

// SetVar sets the value of a parameter in the context.
func SetVar(p *Parameter, val *big.Float) ContextOption {
	return varopt{p.name, val}
}

// SetVars sets the values of any number of parameters in the context.
func SetVars(vars map[*Parameter]*big.Float) ContextOption {
	return varsopt(vars)
}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: 64}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression and returns the result. If an error occurs,
// e.g. an unbound parameter, a function without an arbitrary-precision
// implementation, or an argument outside a function's domain, then the result
// is nil and ctx.Err returns the error.
func (ctx *Context) Eval(e Symbolic) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
		ctx.stack = ctx.stack[:0]
	default:
		panic("symbolic: Eval during Eval")
	}
	ctx.err = ctx.run(exprOf(e).n)
	if ctx.err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// run evaluates n, converting NaN panics from package big into errors.
func (ctx *Context) run(n *Node) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var nan big.ErrNaN
		if e, ok := r.(error); !ok || !errors.As(e, &nan) {
			panic(r)
		}
		err = &DomainError{Func: n.String(), Msg: nan.Error()}
	}()
	return n.eval(ctx)
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("symbolic: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("symbolic: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items")
	}
}

// Err returns the error that occurred while evaluating the last expression
// with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Set sets the value of a parameter. Returns ctx for chaining. Calling Set
// while the context is being used to evaluate an expression panics.
func (ctx *Context) Set(p *Parameter, value *big.Float) *Context {
	if len(ctx.stack) > 1 {
		panic("symbolic: Set on in-use context")
	}
	if ctx.names == nil {
		ctx.names = make(map[string]*big.Float)
	}
	ctx.names[p.name] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a parameter. If the parameter is not
// set in the context, then the result is nil.
func (ctx *Context) Lookup(p *Parameter) *big.Float {
	v := ctx.names[p.name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		names: make(map[string]*big.Float, len(ctx.names)),
		prec:  ctx.prec,
	}
	// Apply the last precision option first so that values are copied at the
	// precision the new context uses.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			n.prec = uint(p)
			break
		}
	}
	// Cached literals are only reusable if they have at least the new
	// precision.
	if n.prec <= ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = new(big.Float).SetPrec(n.prec).Set(v)
		}
	}
	for name, val := range ctx.names {
		if n.prec == ctx.prec {
			n.names[name] = val
		} else {
			n.names[name] = new(big.Float).SetPrec(n.prec).Set(val)
		}
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil, precopt:
		case varopt:
			n.names[opt.name] = new(big.Float).SetPrec(n.prec).Set(opt.val)
		case varsopt:
			for p, v := range opt {
				n.names[p.name] = new(big.Float).SetPrec(n.prec).Set(v)
			}
		default:
			panic("symbolic: unknown option type")
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	r := ctx.stack[len(ctx.stack)-1]
	r.SetPrec(ctx.prec)
	return r
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets the value of a literal node. Literals that came from source text
// are parsed from it so that they keep the context's precision.
func (ctx *Context) num(n *Node) (*big.Float, error) {
	if imag(n.val) != 0 {
		return nil, &DomainError{Func: n.String(), Msg: "complex literal"}
	}
	if math.IsNaN(real(n.val)) {
		return nil, &DomainError{Func: n.String(), Msg: "NaN literal"}
	}
	s := n.name
	if s == "" {
		return new(big.Float).SetPrec(ctx.prec).SetFloat64(real(n.val)), nil
	}
	if r := ctx.nums[s]; r != nil {
		return r, nil
	}
	if s == "∞" {
		s = "inf"
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 0)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		r = new(big.Float).SetInf(false)
	default:
		r = new(big.Float).SetPrec(ctx.prec).SetFloat64(real(n.val))
	}
	ctx.nums[n.name] = r
	return r, nil
}

// eval pushes the node's value to the context's stack.
func (n *Node) eval(ctx *Context) error {
	switch n.kind {
	case KindNum:
		v, err := ctx.num(n)
		if err != nil {
			return err
		}
		ctx.push().Set(v)
	case KindName:
		v := ctx.names[n.name]
		if v == nil {
			return &NameError{Name: n.name}
		}
		ctx.push().Set(v)
	case KindConst:
		constants[n.name].real(ctx.push())
	case KindCall:
		f := lookupFunc(n.name)
		if f.real == nil {
			return &FuncError{Func: n.name}
		}
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		in := ctx.pop()
		if f.nonneg && in.Sign() < 0 {
			return &DomainError{Func: n.name, Msg: "negative argument"}
		}
		// The popped value stays in the stack's backing array, so compute
		// into a fresh value.
		out := new(big.Float).SetPrec(ctx.prec)
		f.real(out, in)
		ctx.push().Set(out)
	case KindNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case KindAdd, KindSub, KindMul, KindDiv, KindPow:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		if err := n.right.eval(ctx); err != nil {
			return err
		}
		r := ctx.pop()
		l := ctx.top()
		switch n.kind {
		case KindAdd:
			l.Add(l, r)
		case KindSub:
			l.Sub(l, r)
		case KindMul:
			l.Mul(l, r)
		case KindDiv:
			// Guard against invalid divisions, 0/0 or inf/inf.
			if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
				return &DomainError{Func: "/", Msg: "indeterminate quotient"}
			}
			l.Quo(l, r)
		case KindPow:
			return powf(l, r)
		}
	default:
		panic("symbolic: invalid node kind " + n.kind.String())
	}
	return nil
}

// powf sets l to l^r. Negative bases are allowed with integer exponents.
func powf(l, r *big.Float) error {
	if !l.Signbit() {
		bigfloat.Pow(l, l, r)
		return nil
	}
	if !r.IsInt() {
		return &DomainError{Func: "^", Msg: "negative base with non-integer exponent"}
	}
	i, _ := r.Int(nil)
	odd := i.Bit(0) == 1
	l.Neg(l)
	bigfloat.Pow(l, l, r)
	if odd {
		l.Neg(l)
	}
	return nil
}

// Evaluate is a shortcut to evaluate an expression in a new context with the
// given options.
func Evaluate(e Symbolic, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	r := ctx.Eval(e)
	return r, ctx.Err()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	e, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	return Evaluate(e, opts...)
}

// NameError is an error from evaluating a parameter that is not set in the
// evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined parameter: " + strconv.Quote(err.Name)
}

// FuncError is an error from evaluating a function that has no
// arbitrary-precision implementation. Substitute a number instead to evaluate
// such expressions in complex128.
type FuncError struct {
	// Func is the name of the function.
	Func string
}

func (err *FuncError) Error() string {
	return "no arbitrary-precision implementation of " + err.Func
}

// DomainError is an error from an operation on arguments outside its domain.
// DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// Func identifies the operation or the subexpression that failed.
	Func string
	// Msg describes the failure.
	Msg string
}

func (err *DomainError) Error() string {
	return err.Func + " outside domain: " + err.Msg
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}
