package java

import (
	"fmt"
	"maps"
	"strings"
)

// GenericParameterMapping substitutes type parameter names with the full
// names of the types bound to them along an inheritance chain.
//
// Lookups are transitive: with T->K and K->java.lang.Object, T maps to
// java.lang.Object. A mapping is never shared between branches of a
// search; use Clone before extending one.
type GenericParameterMapping struct {
	table map[string]string
}

func NewGenericParameterMapping() *GenericParameterMapping {
	return &GenericParameterMapping{table: make(map[string]string)}
}

// AddMapping maps name to target. Mapping a name onto itself is ignored.
func (m *GenericParameterMapping) AddMapping(name, target string) {
	if name == target {
		return
	}
	m.table[name] = target
}

// AddMappingFromTypeReference maps the type parameters declared by ref's
// definition onto ref's generic arguments, positionally. References that
// are not generic instances contribute nothing.
func (m *GenericParameterMapping) AddMappingFromTypeReference(ref TypeReference) error {
	gi, ok := ref.(*GenericInstance)
	if !ok {
		return nil
	}
	def, err := gi.Resolve()
	if err != nil {
		return err
	}
	if def == nil {
		return nil
	}
	if len(def.GenericParameters) != len(gi.arguments) {
		return fmt.Errorf("%w: %s declares %d, %s supplies %d", ErrArgumentCountMismatch,
			def.FullNameGenericsErased(), len(def.GenericParameters), gi.FullName(), len(gi.arguments))
	}
	for i, gp := range def.GenericParameters {
		m.AddMapping(gp.Name(), gi.arguments[i].FullName())
	}
	return nil
}

// Mapping follows the substitutions for name until a name is unmapped. A
// cycle stops at the last name before it repeats.
func (m *GenericParameterMapping) Mapping(name string) string {
	seen := map[string]bool{name: true}
	for {
		next, ok := m.table[name]
		if !ok || seen[next] {
			return name
		}
		seen[next] = true
		name = next
	}
}

// MappedReference rewrites ref under the mapping. A generic parameter
// mapped to a plain class name becomes the definition it names, looked up
// in ref's container and then its resolver. A mapped name carrying type
// arguments or array dimensions is rebuilt as the reference it spells, and
// anything else stays a renamed parameter. A generic instance is rebuilt
// with mapped arguments. Other references are returned unchanged.
func (m *GenericParameterMapping) MappedReference(ref TypeReference) TypeReference {
	switch r := ref.(type) {
	case *GenericParameter:
		mapped := m.Mapping(r.Name())
		if mapped == r.Name() {
			return r
		}
		if strings.ContainsAny(mapped, "<[?") {
			mappedRef := referenceFromFullName(mapped, r.Container())
			if r.wildcard != "" {
				return withWildcard(mappedRef, r.wildcard)
			}
			return mappedRef
		}
		if c := r.Container(); c != nil {
			if td := c.FindType(mapped); td != nil {
				return td
			}
			if td := c.Resolver().FindType(mapped); td != nil {
				return td
			}
		}
		return NewGenericParameter(mapped, r.Container(), r.DeclaringType())
	case *GenericInstance:
		args := make([]TypeReference, len(r.arguments))
		for i, arg := range r.arguments {
			args[i] = m.MappedReference(arg)
		}
		gi := NewGenericInstance(r.Namespace(), r.JniName(), r.Container(), r.DeclaringType(), args)
		gi.wildcard = r.wildcard
		return gi
	}
	return ref
}

// Clone returns an independent copy.
func (m *GenericParameterMapping) Clone() *GenericParameterMapping {
	return &GenericParameterMapping{table: maps.Clone(m.table)}
}

func (m *GenericParameterMapping) Len() int { return len(m.table) }

// mappedName is the full name ref would have with every generic parameter
// it mentions substituted.
func (m *GenericParameterMapping) mappedName(ref TypeReference) string {
	switch r := ref.(type) {
	case *GenericParameter:
		// Bounds are dropped, matching the FullName of plain references.
		if mapped := m.Mapping(r.Name()); mapped != r.Name() {
			return mapped
		}
		return m.Mapping(r.FullName())
	case *GenericInstance:
		args := make([]string, len(r.arguments))
		for i, arg := range r.arguments {
			args[i] = m.mappedName(arg)
		}
		return r.FullNameGenericsErased() + "<" + strings.Join(args, ", ") + ">"
	case *ArrayType:
		return m.mappedName(r.ElementType()) + arraySuffix(r.Rank)
	}
	return ref.FullName()
}

// referenceFromFullName parses a human-readable full name such as
// "java.util.Map<K, java.util.List<? extends V>>[]" back into a reference.
// Bare names without a package that do not resolve are taken to be
// generic parameters.
func referenceFromFullName(name string, container *Container) TypeReference {
	name = strings.TrimSpace(name)
	switch {
	case name == "?":
		return NewWildcardType(container)
	case strings.HasPrefix(name, "? extends "):
		return withWildcard(referenceFromFullName(strings.TrimPrefix(name, "? extends "), container), "+")
	case strings.HasPrefix(name, "? super "):
		return withWildcard(referenceFromFullName(strings.TrimPrefix(name, "? super "), container), "-")
	}

	rank := 0
	for strings.HasSuffix(name, "[]") {
		rank++
		name = strings.TrimSpace(strings.TrimSuffix(name, "[]"))
	}

	var ref TypeReference
	for i, segment := range splitTopLevel(name, '$') {
		head, args := segment, ""
		if open := strings.IndexByte(segment, '<'); open >= 0 && strings.HasSuffix(segment, ">") {
			head, args = segment[:open], segment[open+1:len(segment)-1]
		}
		namespace := ""
		if i == 0 {
			if dot := strings.LastIndexByte(head, '.'); dot >= 0 {
				namespace, head = head[:dot], head[dot+1:]
			}
		}
		if args != "" {
			parts := splitTopLevel(args, ',')
			arguments := make([]TypeReference, len(parts))
			for j, part := range parts {
				arguments[j] = referenceFromFullName(part, container)
			}
			ref = NewGenericInstance(namespace, head, container, ref, arguments)
			continue
		}
		if ref == nil && namespace == "" {
			ref = bareReference(head, container)
			continue
		}
		ref = NewReference(namespace, head, container, ref)
	}
	if rank > 0 {
		return NewArrayType(ref, rank)
	}
	return ref
}

func bareReference(name string, container *Container) TypeReference {
	for code, primitive := range primitiveNames {
		if primitive == name {
			return NewPrimitiveReference(code, container)
		}
	}
	if container != nil && (container.FindType(name) != nil || container.Resolver().FindType(name) != nil) {
		return NewReference("", name, container, nil)
	}
	return NewGenericParameter(name, container, nil)
}

func withWildcard(ref TypeReference, indicator string) TypeReference {
	switch r := ref.(type) {
	case *GenericParameter:
		r.wildcard = indicator
	case *GenericInstance:
		r.wildcard = indicator
	case *Reference:
		r.wildcard = indicator
	case *ArrayType:
		withWildcard(r.element, indicator)
	}
	return ref
}

// splitTopLevel splits s at sep outside of angle brackets.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}
