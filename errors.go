package symbolic

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrNotImplemented is returned by the arithmetic methods of Expr when
	// they do not handle an operand's kind. It lets a dispatcher try the
	// reflected method of the other operand; the package-level operator
	// functions never return it.
	ErrNotImplemented = errors.New("symbolic: operand kind not implemented")

	// ErrUnsupportedOperand is matched by every *OperandError.
	ErrUnsupportedOperand = errors.New("symbolic: unsupported operand kind")

	// ErrIncompatibleVariable is matched by a *VariableKindError, which
	// results from substituting for a placeholder that is not a *Parameter.
	ErrIncompatibleVariable = errors.New("symbolic: incompatible variable kind")

	// ErrDuplicateBinding is matched by a *BindingError.
	ErrDuplicateBinding = errors.New("symbolic: conflicting bindings for one parameter")
)

// OperandError is an error from an operation that no operand handled.
type OperandError struct {
	// Op is the operation, e.g. "+" or "subs".
	Op string
	// Left and Right are the operands. Right is nil for unary operations.
	Left, Right any
}

func (err *OperandError) Error() string {
	if err.Right == nil {
		return fmt.Sprintf("symbolic: unsupported operand kind for %s: %T", err.Op, err.Left)
	}
	return fmt.Sprintf("symbolic: unsupported operand kinds for %s: %T and %T", err.Op, err.Left, err.Right)
}

func (err *OperandError) Unwrap() error {
	return ErrUnsupportedOperand
}

// VariableKindError is an error from substituting for a placeholder that
// belongs to another symbolic system. Substitution can only match parameters
// created by NewParameter.
type VariableKindError struct {
	// Variable is the placeholder that was given.
	Variable Placeholder
}

func (err *VariableKindError) Error() string {
	return fmt.Sprintf("symbolic: expressions can only be substituted with *symbolic.Parameter, not %T", err.Variable)
}

func (err *VariableKindError) Unwrap() error {
	return ErrIncompatibleVariable
}

// BindingError is an error from a batched substitution that binds two
// parameters with the same name to different values. Parameters match by
// name, so the substitution would be ambiguous.
type BindingError struct {
	// Name is the parameter name bound more than once.
	Name string
}

func (err *BindingError) Error() string {
	return "symbolic: conflicting values for parameter " + strconv.Quote(err.Name)
}

func (err *BindingError) Unwrap() error {
	return ErrDuplicateBinding
}
