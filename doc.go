// Package symbolic implements symbolic parameters for numeric simulation
// code: placeholder quantities that take part in complex arithmetic like
// ordinary scalars and receive their values later.
//
// A Parameter is a named free variable. Arithmetic, trigonometric, and
// exponential operations on parameters, numbers, and other expressions build
// immutable Expr values without evaluating anything. Substituting values for
// some or all parameters with Subs or Xreplace gives a Result, which holds a
// complex128 once no free parameters remain and an Expr otherwise.
//
//	alpha := symbolic.NewParameter("alpha")
//	e, _ := alpha.Mul(2)
//	e, _ = e.Add(1)
//	r, _ := e.Subs(alpha, 3)
//	v, _ := r.Numeric() // (7+0i)
//
// The package-level Add, Sub, Mul, Div, Pow, and Mod functions accept any mix
// of symbolic and numeric operands, trying the left operand's method, then
// the right operand's reflected method, as a host's operator dispatch would.
//
// Expressions can also be parsed from text, and real-valued expressions can
// be evaluated to arbitrary precision with a Context.
package symbolic
