package java

import (
	"strings"
)

// TypeDefinition is a class, interface, enum, annotation or primitive
// type ingested into a container. It is itself a TypeReference that
// resolves to itself.
type TypeDefinition struct {
	Reference

	Kind           ClassKind
	Visibility     Visibility
	IsStatic       bool
	IsAbstract     bool
	IsFinal        bool
	IsDeprecated   bool
	IsSynthetic    bool
	SourceFileName string

	BaseType              TypeReference
	ImplementedInterfaces []*ImplementedInterface
	GenericParameters     []*GenericParameter
	NestedTypes           []*TypeDefinition
	Fields                []*FieldDefinition
	Methods               []*MethodDefinition
	Attributes            []Attribute
}

// ImplementedInterface is one entry of a type's implements (or, for
// interfaces, extends) clause.
type ImplementedInterface struct {
	InterfaceType TypeReference
	DeclaringType *TypeDefinition
}

// NewTypeDefinition creates an empty definition. Nested definitions pass
// their enclosing definition as declaring and are attached to it.
func NewTypeDefinition(namespace, name string, container *Container, declaring *TypeDefinition) *TypeDefinition {
	td := &TypeDefinition{
		Reference: Reference{
			namespace: namespace,
			name:      name,
			container: container,
		},
		Kind:                  ClassKindClass,
		Visibility:            VisibilityPackage,
		ImplementedInterfaces: []*ImplementedInterface{},
		GenericParameters:     []*GenericParameter{},
		NestedTypes:           []*TypeDefinition{},
		Fields:                []*FieldDefinition{},
		Methods:               []*MethodDefinition{},
		Attributes:            []Attribute{},
	}
	if declaring != nil {
		td.namespace = ""
		td.declaring = declaring
		declaring.NestedTypes = append(declaring.NestedTypes, td)
	}
	return td
}

func newPrimitiveDefinition(code string) *TypeDefinition {
	td := NewTypeDefinition("", code, nil, nil)
	td.primitive = true
	td.Kind = ClassKindPrimitive
	td.Visibility = VisibilityPublic
	td.IsFinal = true
	return td
}

// GenericName renders the declared type parameters, e.g. "Map<K, V>".
func (t *TypeDefinition) GenericName() string {
	if len(t.GenericParameters) == 0 {
		return t.Name()
	}
	names := make([]string, len(t.GenericParameters))
	for i, gp := range t.GenericParameters {
		names[i] = gp.Name()
	}
	return t.Name() + "<" + strings.Join(names, ", ") + ">"
}

func (t *TypeDefinition) genericJniName() string {
	if len(t.GenericParameters) == 0 {
		return t.JniName()
	}
	var b strings.Builder
	b.WriteString(t.JniName())
	b.WriteByte('<')
	for _, gp := range t.GenericParameters {
		b.WriteString(gp.JniFullName())
	}
	b.WriteByte('>')
	return b.String()
}

func (t *TypeDefinition) FullName() string    { return fullName(t) }
func (t *TypeDefinition) JniFullName() string { return jniFullName(t) }
func (t *TypeDefinition) String() string      { return t.FullName() }

func (t *TypeDefinition) Resolve() (*TypeDefinition, error) { return t, nil }

// DeclaringDefinition returns the enclosing definition of a nested type.
func (t *TypeDefinition) DeclaringDefinition() *TypeDefinition {
	d, _ := t.declaring.(*TypeDefinition)
	return d
}

func (t *TypeDefinition) IsInterface() bool {
	return t.Kind == ClassKindInterface || t.Kind == ClassKindAnnotation
}

// GenericParametersInScope returns the type's own parameters followed by
// those of its enclosing types.
func (t *TypeDefinition) GenericParametersInScope() []*GenericParameter {
	var scope []*GenericParameter
	for d := t; d != nil; d = d.DeclaringDefinition() {
		scope = append(scope, d.GenericParameters...)
	}
	return scope
}

func (t *TypeDefinition) AddInterface(ref TypeReference) {
	t.ImplementedInterfaces = append(t.ImplementedInterfaces, &ImplementedInterface{InterfaceType: ref, DeclaringType: t})
}

func (t *TypeDefinition) AddMethod(m *MethodDefinition) {
	m.DeclaringType = t
	t.Methods = append(t.Methods, m)
}

func (t *TypeDefinition) AddField(f *FieldDefinition) {
	f.DeclaringType = t
	t.Fields = append(t.Fields, f)
}

// FindMethods returns the methods declared on t with the given name, in
// declaration order.
func (t *TypeDefinition) FindMethods(name string) []*MethodDefinition {
	var found []*MethodDefinition
	for _, m := range t.Methods {
		if m.Name == name {
			found = append(found, m)
		}
	}
	return found
}

func (t *TypeDefinition) FindField(name string) *FieldDefinition {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (t *TypeDefinition) FindNestedType(name string) *TypeDefinition {
	for _, n := range t.NestedTypes {
		if n.JniName() == name {
			return n
		}
	}
	return nil
}

// Implements reports whether t extends or implements iface, directly or
// through its base types and super-interfaces.
func (t *TypeDefinition) Implements(iface *TypeDefinition) (bool, error) {
	return t.implements(iface, map[*TypeDefinition]bool{})
}

func (t *TypeDefinition) implements(iface *TypeDefinition, seen map[*TypeDefinition]bool) (bool, error) {
	if seen[t] {
		return false, nil
	}
	seen[t] = true
	for _, ii := range t.ImplementedInterfaces {
		def, err := ii.InterfaceType.Resolve()
		if err != nil {
			return false, err
		}
		if def == iface {
			return true, nil
		}
		if ok, err := def.implements(iface, seen); ok || err != nil {
			return ok, err
		}
	}
	if t.BaseType == nil {
		return false, nil
	}
	base, err := t.BaseType.Resolve()
	if err != nil || base == nil {
		return false, err
	}
	return base.implements(iface, seen)
}
