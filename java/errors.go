package java

import (
	"errors"
)

var (
	// ErrMissingDeclaringType is returned when a nested type is ingested
	// before the type that declares it.
	ErrMissingDeclaringType = errors.New("java: declaring type not found")

	// ErrParameterMismatch is returned when a method's generic signature and
	// its descriptor disagree on the number of parameters.
	ErrParameterMismatch = errors.New("java: signature and descriptor parameter counts differ")

	// ErrInterfaceMismatch is returned when a class signature lists a
	// different number of interfaces than the class file.
	ErrInterfaceMismatch = errors.New("java: signature and class file interface counts differ")

	// ErrArgumentCountMismatch is returned when a generic instance supplies
	// a different number of arguments than its definition declares.
	ErrArgumentCountMismatch = errors.New("java: generic argument count differs from declared parameters")

	// ErrUnsupportedInput is returned for constant pool items or element
	// values the object model cannot represent.
	ErrUnsupportedInput = errors.New("java: unsupported input")
)

// ResolutionError is returned when a reference matches no definition in
// its container, any other container of the resolver, or the primitives.
type ResolutionError struct {
	Reference TypeReference
}

func (e *ResolutionError) Error() string {
	return "failed to resolve " + e.Reference.FullName()
}
