package java

// FindImplementedInterfaceOrDefault returns the concrete method that
// implements method for t, where method is declared by the interface that
// iface refers to (or one of its super-interfaces) and t implements iface.
//
// t and its superclasses are searched first. Failing that, the other
// interfaces of t are searched for a default method satisfying method,
// which covers an interface C extending A with a default body for A's
// abstract method while t implements both. Bridge methods never count.
// The result is nil when nothing concrete implements method.
func (t *TypeDefinition) FindImplementedInterfaceOrDefault(iface TypeReference, method *MethodDefinition) (*MethodDefinition, error) {
	if method.IsStatic {
		return nil, nil
	}
	mapping := NewGenericParameterMapping()
	if err := mapping.AddMappingFromTypeReference(iface); err != nil {
		return nil, err
	}

	found, err := t.findImplementation(method, mapping)
	if found != nil || err != nil {
		return found, err
	}
	if method.DeclaringType == nil {
		return nil, nil
	}
	return t.findDefaultImplementation(method, mapping)
}

func (t *TypeDefinition) findImplementation(method *MethodDefinition, mapping *GenericParameterMapping) (*MethodDefinition, error) {
	for cur := t; cur != nil; {
		if m := cur.findConcrete(method, mapping); m != nil {
			return m, nil
		}
		if cur.BaseType == nil {
			return nil, nil
		}
		mapping = mapping.Clone()
		if err := mapping.AddMappingFromTypeReference(cur.BaseType); err != nil {
			return nil, err
		}
		next, err := cur.BaseType.Resolve()
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return nil, nil
}

func (t *TypeDefinition) findDefaultImplementation(method *MethodDefinition, mapping *GenericParameterMapping) (*MethodDefinition, error) {
	visited := map[*TypeDefinition]bool{}
	for cur := t; cur != nil; {
		for _, ii := range cur.ImplementedInterfaces {
			found, err := searchDefault(ii.InterfaceType, method, mapping.Clone(), visited)
			if found != nil || err != nil {
				return found, err
			}
		}
		if cur.BaseType == nil {
			return nil, nil
		}
		next, err := cur.BaseType.Resolve()
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return nil, nil
}

// searchDefault looks for a default method satisfying method in the
// interface ref and its super-interfaces, skipping interfaces that do not
// extend method's declaring interface.
func searchDefault(ref TypeReference, method *MethodDefinition, mapping *GenericParameterMapping, visited map[*TypeDefinition]bool) (*MethodDefinition, error) {
	def, err := ref.Resolve()
	if err != nil || def == nil {
		return nil, err
	}
	decl := method.DeclaringType
	if def == decl || visited[def] {
		return nil, nil
	}
	visited[def] = true

	ok, err := def.Implements(decl)
	if err != nil || !ok {
		return nil, err
	}
	if err := mapping.AddMappingFromTypeReference(ref); err != nil {
		return nil, err
	}
	if m := def.findConcrete(method, mapping); m != nil {
		return m, nil
	}
	for _, ii := range def.ImplementedInterfaces {
		found, err := searchDefault(ii.InterfaceType, method, mapping.Clone(), visited)
		if found != nil || err != nil {
			return found, err
		}
	}
	return nil, nil
}

// findConcrete returns the first non-abstract, non-bridge method of t
// compatible with method.
func (t *TypeDefinition) findConcrete(method *MethodDefinition, mapping *GenericParameterMapping) *MethodDefinition {
	for _, candidate := range t.Methods {
		if candidate.IsAbstract || candidate.IsBridge || candidate.IsStatic {
			continue
		}
		if candidate.Name != method.Name || len(candidate.Parameters) != len(method.Parameters) {
			continue
		}
		if parametersCompatible(candidate, method, mapping) {
			return candidate
		}
	}
	return nil
}

// FindImplementedDeclarationOrDefault returns the interface method m
// implements: the first method with a compatible signature found walking
// the interfaces of m's declaring type and their super-interfaces, or nil.
func (m *MethodDefinition) FindImplementedDeclarationOrDefault() (*MethodDefinition, error) {
	if m.IsStatic || m.IsConstructor() || m.DeclaringType == nil {
		return nil, nil
	}
	visited := map[*TypeDefinition]bool{}
	for _, ii := range m.DeclaringType.ImplementedInterfaces {
		found, err := m.findDeclaration(ii.InterfaceType, NewGenericParameterMapping(), visited)
		if found != nil || err != nil {
			return found, err
		}
	}
	return nil, nil
}

func (m *MethodDefinition) findDeclaration(ref TypeReference, mapping *GenericParameterMapping, visited map[*TypeDefinition]bool) (*MethodDefinition, error) {
	def, err := ref.Resolve()
	if err != nil || def == nil || visited[def] {
		return nil, err
	}
	visited[def] = true

	mapping = mapping.Clone()
	if err := mapping.AddMappingFromTypeReference(ref); err != nil {
		return nil, err
	}
	for _, candidate := range def.Methods {
		if candidate.IsStatic || candidate.IsBridge || candidate.Name != m.Name || len(candidate.Parameters) != len(m.Parameters) {
			continue
		}
		if parametersCompatible(m, candidate, mapping) {
			return candidate, nil
		}
	}
	for _, ii := range def.ImplementedInterfaces {
		found, err := m.findDeclaration(ii.InterfaceType, mapping, visited)
		if found != nil || err != nil {
			return found, err
		}
	}
	return nil, nil
}
