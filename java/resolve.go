package java

import (
	"slices"
	"sync"
)

// Resolver resolves references across a set of containers. Containers may
// be added while other goroutines resolve; a container must be fully
// populated before it is added.
type Resolver struct {
	mu         sync.RWMutex
	containers []*Container
}

func NewResolver() *Resolver {
	return &Resolver{}
}

// AddContainer registers c. Containers are searched in registration order
// after the container a reference belongs to.
func (r *Resolver) AddContainer(c *Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.containers {
		if existing == c {
			return
		}
	}
	r.containers = append(r.containers, c)
}

func (r *Resolver) Containers() []*Container {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.containers)
}

// Resolve returns the definition ref points at.
func (r *Resolver) Resolve(ref TypeReference) (*TypeDefinition, error) {
	return r.resolve(ref, ref.Container())
}

// FindType looks name up in every container in registration order.
func (r *Resolver) FindType(name string) *TypeDefinition {
	for _, c := range r.Containers() {
		if td := c.FindType(name); td != nil {
			return td
		}
	}
	return nil
}

func (r *Resolver) resolve(ref TypeReference, first *Container) (*TypeDefinition, error) {
	switch v := ref.(type) {
	case *TypeDefinition:
		return v, nil
	case *GenericParameter, *WildcardType:
		return nil, nil
	case *ArrayType:
		return r.resolve(v.ElementType(), first)
	}

	name := ref.FullNameGenericsErased()
	if ref.IsPrimitive() {
		if td := Primitive(name); td != nil {
			return td, nil
		}
	}
	if first != nil {
		if td, ok := first.index[name]; ok {
			return td, nil
		}
	}
	for _, c := range r.Containers() {
		if c == first {
			continue
		}
		if td, ok := c.index[name]; ok {
			return td, nil
		}
	}
	return nil, &ResolutionError{Reference: ref}
}

func resolveReference(ref TypeReference) (*TypeDefinition, error) {
	if c := ref.Container(); c != nil {
		return c.Resolve(ref)
	}
	if ref.IsPrimitive() {
		if td := Primitive(ref.FullName()); td != nil {
			return td, nil
		}
	}
	return nil, &ResolutionError{Reference: ref}
}

var (
	primitivesOnce sync.Once
	primitives     map[string]*TypeDefinition
)

// Primitive returns the shared definition of a primitive type by its
// source name ("int") or nil. The table is built once and never modified.
func Primitive(name string) *TypeDefinition {
	primitivesOnce.Do(func() {
		primitives = make(map[string]*TypeDefinition, len(primitiveNames))
		for code := range primitiveNames {
			td := newPrimitiveDefinition(code)
			primitives[td.Name()] = td
		}
	})
	return primitives[name]
}
