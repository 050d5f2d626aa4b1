package java

import (
	"strings"
)

// GenericInstance is a generic type with its type arguments supplied, such
// as java.util.Map<K, java.lang.String>.
type GenericInstance struct {
	Reference
	arguments []TypeReference
}

func NewGenericInstance(namespace, name string, container *Container, declaring TypeReference, args []TypeReference) *GenericInstance {
	return &GenericInstance{
		Reference: Reference{
			namespace: namespace,
			name:      name,
			declaring: declaring,
			container: container,
		},
		arguments: args,
	}
}

func (g *GenericInstance) GenericArguments() []TypeReference { return g.arguments }

func (g *GenericInstance) GenericName() string {
	return g.Name() + "<" + joinFullNames(g.arguments) + ">"
}

func (g *GenericInstance) genericJniName() string {
	var b strings.Builder
	b.WriteString(g.JniName())
	b.WriteByte('<')
	for _, arg := range g.arguments {
		b.WriteString(arg.JniFullName())
	}
	b.WriteByte('>')
	return b.String()
}

func (g *GenericInstance) FullName() string    { return fullName(g) }
func (g *GenericInstance) JniFullName() string { return jniFullName(g) }
func (g *GenericInstance) String() string      { return g.FullName() }

func (g *GenericInstance) Resolve() (*TypeDefinition, error) {
	return resolveReference(g)
}

// GenericParameter is a type variable such as T. It is identified by name
// only and never resolves to a definition.
type GenericParameter struct {
	Reference
	ClassBound      TypeReference
	InterfaceBounds []TypeReference
}

func NewGenericParameter(name string, container *Container, declaring TypeReference) *GenericParameter {
	return &GenericParameter{
		Reference: Reference{
			name:      name,
			declaring: declaring,
			container: container,
		},
	}
}

// FullName renders a bounded wildcard over the parameter as in source:
// "? extends T" for "+TT;" and "? super T" for "-TT;".
func (p *GenericParameter) FullName() string {
	switch p.wildcard {
	case "-":
		return "? super " + p.Name()
	case "+":
		return "? extends " + p.Name()
	}
	return p.Name()
}

func (p *GenericParameter) Namespace() string              { return "" }
func (p *GenericParameter) NestedName() string             { return p.Name() }
func (p *GenericParameter) FullNameGenericsErased() string { return p.Name() }
func (p *GenericParameter) JniFullName() string            { return p.wildcard + "T" + p.Name() + ";" }
func (p *GenericParameter) String() string                 { return p.FullName() }

// JniFullNameGenericsErased is the erasure of the parameter: its class
// bound, else its first interface bound, else java.lang.Object.
func (p *GenericParameter) JniFullNameGenericsErased() string {
	return p.erasure(nil)
}

func (p *GenericParameter) Resolve() (*TypeDefinition, error) { return nil, nil }

// descriptor erases p using the bounds of the parameter with the same name
// in scope. References created from signatures carry no bounds of their
// own, so the declaration has to be looked up.
func (p *GenericParameter) descriptor(scope []*GenericParameter) string {
	for _, gp := range scope {
		if gp != p && gp.Name() == p.Name() {
			return gp.erasure(scope)
		}
	}
	return p.erasure(scope)
}

func (p *GenericParameter) erasure(scope []*GenericParameter) string {
	switch {
	case p.ClassBound != nil:
		return p.ClassBound.descriptor(scope)
	case len(p.InterfaceBounds) > 0:
		return p.InterfaceBounds[0].descriptor(scope)
	}
	return objectDescriptor
}

const objectDescriptor = "Ljava/lang/Object;"

// WildcardType is the unbounded "?" type argument, written "*" in
// signatures.
type WildcardType struct {
	Reference
}

func NewWildcardType(container *Container) *WildcardType {
	return &WildcardType{Reference: Reference{name: "*", container: container}}
}

func (w *WildcardType) Name() string                      { return "?" }
func (w *WildcardType) GenericName() string               { return "?" }
func (w *WildcardType) NestedName() string                { return "?" }
func (w *WildcardType) FullName() string                  { return "?" }
func (w *WildcardType) FullNameGenericsErased() string    { return "?" }
func (w *WildcardType) JniFullName() string               { return "*" }
func (w *WildcardType) JniFullNameGenericsErased() string { return objectDescriptor }
func (w *WildcardType) String() string                    { return "?" }

func (w *WildcardType) Resolve() (*TypeDefinition, error) { return nil, nil }

func (w *WildcardType) descriptor([]*GenericParameter) string { return objectDescriptor }
