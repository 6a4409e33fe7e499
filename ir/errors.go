package ir

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes construction, inference and generation errors.
type ErrorKind uint8

const (
	// ErrUnknownVariable indicates a reference to a name not bound in scope.
	ErrUnknownVariable ErrorKind = iota

	// ErrNotAnArray indicates indexing into a value that is not an array.
	ErrNotAnArray

	// ErrNotAVector indicates swizzling a value that is not a vector.
	ErrNotAVector

	// ErrUnknownFunction indicates a call of a function that is neither
	// built in nor declared.
	ErrUnknownFunction

	// ErrUnknownOperator indicates an operator outside the supported set
	// or one that does not apply to its operand types.
	ErrUnknownOperator

	// ErrInvalidSwizzleIndex indicates a component selector out of range
	// for the vector, or a constructor exceeding four components.
	ErrInvalidSwizzleIndex

	// ErrInvalidIntegerLiteral indicates a non-integral value used as an
	// integer literal.
	ErrInvalidIntegerLiteral

	// ErrTypeMismatch indicates operands whose types cannot be combined.
	ErrTypeMismatch

	// ErrInvalidStatement indicates an ill-formed or unrecognized statement.
	ErrInvalidStatement

	// ErrInvalidExpression indicates an ill-formed or unrecognized expression.
	ErrInvalidExpression

	// ErrUnsupportedVersion indicates a GLSL version without a code generator.
	ErrUnsupportedVersion
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownVariable:
		return "UnknownVariable"
	case ErrNotAnArray:
		return "NotAnArray"
	case ErrNotAVector:
		return "NotAVector"
	case ErrUnknownFunction:
		return "UnknownFunction"
	case ErrUnknownOperator:
		return "UnknownOperator"
	case ErrInvalidSwizzleIndex:
		return "InvalidSwizzleIndex"
	case ErrInvalidIntegerLiteral:
		return "InvalidIntegerLiteral"
	case ErrTypeMismatch:
		return "TypeMismatch"
	case ErrInvalidStatement:
		return "InvalidStatement"
	case ErrInvalidExpression:
		return "InvalidExpression"
	case ErrUnsupportedVersion:
		return "UnsupportedVersion"
	default:
		return "Unknown"
	}
}

// Error represents a shader construction or translation error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError creates a new error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// Errorf creates a new error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return NewError(kind, fmt.Sprintf(format, args...))
}

// IsKind reports whether err, or any error it wraps, is an *Error of the
// given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
