package java

import (
	"strings"
)

type MethodDefinition struct {
	Name          string
	DeclaringType *TypeDefinition

	ReturnType        TypeReference
	ReturnNullability Nullability
	Parameters        []*ParameterDefinition
	GenericParameters []*GenericParameter
	CheckedExceptions []TypeReference

	Visibility     Visibility
	IsStatic       bool
	IsAbstract     bool
	IsFinal        bool
	IsNative       bool
	IsSynchronized bool
	IsBridge       bool
	IsSynthetic    bool
	IsVarargs      bool
	IsDeprecated   bool

	Attributes []Attribute
}

func NewMethodDefinition(name string, returnType TypeReference) *MethodDefinition {
	return &MethodDefinition{
		Name:              name,
		ReturnType:        returnType,
		ReturnNullability: NullabilityOblivious,
		Visibility:        VisibilityPackage,
		Parameters:        []*ParameterDefinition{},
		GenericParameters: []*GenericParameter{},
		CheckedExceptions: []TypeReference{},
		Attributes:        []Attribute{},
	}
}

// AddParameter appends a parameter and returns it.
func (m *MethodDefinition) AddParameter(name string, typ TypeReference) *ParameterDefinition {
	p := &ParameterDefinition{
		Name:          name,
		ParameterType: typ,
		Index:         len(m.Parameters),
		Method:        m,
		Nullability:   NullabilityOblivious,
	}
	m.Parameters = append(m.Parameters, p)
	return p
}

func (m *MethodDefinition) FullName() string { return m.Name }

func (m *MethodDefinition) GenericName() string {
	if len(m.GenericParameters) == 0 {
		return m.Name
	}
	names := make([]string, len(m.GenericParameters))
	for i, gp := range m.GenericParameters {
		names[i] = gp.Name()
	}
	return m.Name + "<" + strings.Join(names, ", ") + ">"
}

func (m *MethodDefinition) IsConstructor() bool { return m.Name == "<init>" }

// IsDefault reports whether m is a default method of an interface.
func (m *MethodDefinition) IsDefault() bool {
	return m.DeclaringType != nil && m.DeclaringType.IsInterface() && !m.IsAbstract && !m.IsStatic
}

// GenericParametersInScope returns the method's own type parameters
// followed by those of its declaring types, innermost first.
func (m *MethodDefinition) GenericParametersInScope() []*GenericParameter {
	scope := append([]*GenericParameter{}, m.GenericParameters...)
	if m.DeclaringType != nil {
		scope = append(scope, m.DeclaringType.GenericParametersInScope()...)
	}
	return scope
}

// Descriptor returns the erased JVM method descriptor. Constructors of
// inner classes take the enclosing instance as a leading parameter.
func (m *MethodDefinition) Descriptor() string {
	scope := m.GenericParametersInScope()
	var b strings.Builder
	b.WriteByte('(')
	if m.IsConstructor() && m.DeclaringType != nil && !m.DeclaringType.IsStatic {
		if outer := m.DeclaringType.DeclaringDefinition(); outer != nil {
			b.WriteString(outer.JniFullNameGenericsErased())
		}
	}
	for _, p := range m.Parameters {
		b.WriteString(p.ParameterType.descriptor(scope))
	}
	b.WriteByte(')')
	b.WriteString(m.ReturnType.descriptor(scope))
	return b.String()
}

// String renders the method as "int compareTo (T p0)".
func (m *MethodDefinition) String() string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.String()
	}
	return m.ReturnType.FullName() + " " + m.FullName() + " (" + strings.Join(params, ", ") + ")"
}

// FindBaseMethodOrDefault returns the nearest method in a superclass that
// m overrides, or nil. Static methods override nothing. Constructors are
// matched by name like any other method, so a constructor finds the
// superclass constructor with a compatible parameter list.
func (m *MethodDefinition) FindBaseMethodOrDefault() (*MethodDefinition, error) {
	if m.IsStatic || m.DeclaringType == nil {
		return nil, nil
	}
	base := m.DeclaringType.BaseType
	if base == nil {
		return nil, nil
	}
	mapping := NewGenericParameterMapping()
	if err := mapping.AddMappingFromTypeReference(base); err != nil {
		return nil, err
	}
	def, err := base.Resolve()
	if err != nil || def == nil {
		return nil, err
	}
	return m.findBaseMethod(def, mapping)
}

// findBaseMethod searches t and then its superclasses, extending mapping
// with each superclass reference on the way up.
func (m *MethodDefinition) findBaseMethod(t *TypeDefinition, mapping *GenericParameterMapping) (*MethodDefinition, error) {
	for t != nil {
		for _, candidate := range t.Methods {
			if candidate.Name != m.Name || len(candidate.Parameters) != len(m.Parameters) {
				continue
			}
			if parametersCompatible(m, candidate, mapping) {
				return candidate, nil
			}
		}
		if t.BaseType == nil {
			return nil, nil
		}
		if err := mapping.AddMappingFromTypeReference(t.BaseType); err != nil {
			return nil, err
		}
		next, err := t.BaseType.Resolve()
		if err != nil {
			return nil, err
		}
		t = next
	}
	return nil, nil
}

// FindDeclaredBaseMethodOrDefault follows base methods to the most distant
// ancestor declaring m, or returns nil when m overrides nothing.
func (m *MethodDefinition) FindDeclaredBaseMethodOrDefault() (*MethodDefinition, error) {
	var declared *MethodDefinition
	for cur := m; ; {
		base, err := cur.FindBaseMethodOrDefault()
		if err != nil {
			return nil, err
		}
		if base == nil {
			return declared, nil
		}
		declared, cur = base, base
	}
}

// IsCovariantReturn reports whether m's return type differs from base's
// under mapping, which is the case for overrides narrowing the return
// type. A nil mapping is treated as empty.
func (m *MethodDefinition) IsCovariantReturn(base *MethodDefinition, mapping *GenericParameterMapping) bool {
	if mapping == nil {
		mapping = NewGenericParameterMapping()
	}
	return !typesCompatible(m, m.ReturnType, base, base.ReturnType, mapping)
}

type ParameterDefinition struct {
	Name          string
	ParameterType TypeReference
	Index         int
	Method        *MethodDefinition
	Nullability   Nullability
	Attributes    []Attribute
}

func (p *ParameterDefinition) String() string {
	return p.ParameterType.FullName() + " " + p.Name
}
