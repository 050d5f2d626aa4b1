package java

import (
	"strings"
)

// TypeSpecification decorates an element type and forwards every
// projection to it. Wrappers such as ArrayType override what they change.
type TypeSpecification struct {
	element TypeReference
}

func (s *TypeSpecification) ElementType() TypeReference { return s.element }

func (s *TypeSpecification) Name() string        { return s.element.Name() }
func (s *TypeSpecification) Namespace() string   { return s.element.Namespace() }
func (s *TypeSpecification) GenericName() string { return s.element.GenericName() }
func (s *TypeSpecification) NestedName() string  { return s.element.NestedName() }
func (s *TypeSpecification) FullName() string    { return s.element.FullName() }
func (s *TypeSpecification) FullNameGenericsErased() string {
	return s.element.FullNameGenericsErased()
}
func (s *TypeSpecification) JniName() string     { return s.element.JniName() }
func (s *TypeSpecification) JniFullName() string { return s.element.JniFullName() }
func (s *TypeSpecification) JniFullNameGenericsErased() string {
	return s.element.JniFullNameGenericsErased()
}

func (s *TypeSpecification) DeclaringType() TypeReference { return s.element.DeclaringType() }
func (s *TypeSpecification) Container() *Container        { return s.element.Container() }
func (s *TypeSpecification) WildcardIndicator() string    { return s.element.WildcardIndicator() }
func (s *TypeSpecification) IsPrimitive() bool            { return s.element.IsPrimitive() }
func (s *TypeSpecification) IsArray() bool                { return s.element.IsArray() }
func (s *TypeSpecification) String() string               { return s.FullName() }

func (s *TypeSpecification) Resolve() (*TypeDefinition, error) { return s.element.Resolve() }

func (s *TypeSpecification) genericJniName() string { return s.element.genericJniName() }

func (s *TypeSpecification) descriptor(scope []*GenericParameter) string {
	return s.element.descriptor(scope)
}

// ArrayType is an array of Rank dimensions over an element type. Human
// forms gain a "[]" per dimension, JNI forms a leading "[" per dimension
// placed after any wildcard marker.
type ArrayType struct {
	TypeSpecification
	Rank int
}

func NewArrayType(element TypeReference, rank int) *ArrayType {
	return &ArrayType{TypeSpecification: TypeSpecification{element: element}, Rank: rank}
}

func (a *ArrayType) Name() string        { return a.element.Name() + arraySuffix(a.Rank) }
func (a *ArrayType) GenericName() string { return a.element.GenericName() + arraySuffix(a.Rank) }
func (a *ArrayType) NestedName() string  { return a.element.NestedName() + arraySuffix(a.Rank) }
func (a *ArrayType) FullName() string    { return a.element.FullName() + arraySuffix(a.Rank) }
func (a *ArrayType) FullNameGenericsErased() string {
	return a.element.FullNameGenericsErased() + arraySuffix(a.Rank)
}

func (a *ArrayType) JniFullName() string {
	return a.prefix() + strings.TrimLeft(a.element.JniFullName(), "+-")
}

func (a *ArrayType) JniFullNameGenericsErased() string {
	return a.prefix() + strings.TrimLeft(a.element.JniFullNameGenericsErased(), "+-")
}

func (a *ArrayType) IsPrimitive() bool { return false }
func (a *ArrayType) IsArray() bool     { return true }
func (a *ArrayType) String() string    { return a.FullName() }

func (a *ArrayType) descriptor(scope []*GenericParameter) string {
	return a.prefix() + strings.TrimLeft(a.element.descriptor(scope), "+-")
}

func (a *ArrayType) prefix() string {
	return a.WildcardIndicator() + strings.Repeat("[", a.Rank)
}
