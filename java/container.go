package java

import (
	"strings"
)

// Container holds the types ingested from one binary unit, such as a jar
// or a class directory.
type Container struct {
	FileName string

	resolver *Resolver
	types    []*TypeDefinition
	index    map[string]*TypeDefinition
}

// NewContainer creates an empty container that resolves through resolver.
// A nil resolver gets a private one. The container is not registered with
// the resolver; call Resolver.AddContainer for that.
func NewContainer(fileName string, resolver *Resolver) *Container {
	if resolver == nil {
		resolver = NewResolver()
	}
	return &Container{
		FileName: fileName,
		resolver: resolver,
		types:    []*TypeDefinition{},
		index:    make(map[string]*TypeDefinition),
	}
}

func (c *Container) Resolver() *Resolver { return c.resolver }

// Types returns the top-level types in insertion order.
func (c *Container) Types() []*TypeDefinition { return c.types }

// Len is the number of indexed types, nested ones included.
func (c *Container) Len() int { return len(c.index) }

// AddType indexes td under its erased full name. Top-level types are also
// appended to Types; nested ones are reachable through their declaring
// type.
func (c *Container) AddType(td *TypeDefinition) {
	c.index[td.FullNameGenericsErased()] = td
	if td.DeclaringType() == nil {
		c.types = append(c.types, td)
	}
}

// AllTypes returns every type depth-first, each nested type following its
// declaring type.
func (c *Container) AllTypes() []*TypeDefinition {
	var all []*TypeDefinition
	var walk func(td *TypeDefinition)
	walk = func(td *TypeDefinition) {
		all = append(all, td)
		for _, n := range td.NestedTypes {
			walk(n)
		}
	}
	for _, td := range c.types {
		walk(td)
	}
	return all
}

// FindType looks up a type by name. Nested types may be written with "$"
// ("java.util.Map$Entry") or with dots only ("java.util.Map.Entry"); in the
// latter case the longest dotted prefix naming a known type is taken as the
// outer type and the rest is walked as nested names. Generic arguments and
// "/" separators are accepted and ignored.
func (c *Container) FindType(name string) *TypeDefinition {
	name = eraseGenerics(strings.ReplaceAll(name, "/", "."))
	if td, ok := c.index[name]; ok {
		return td
	}

	parts := strings.Split(name, ".")
	for i := len(parts) - 1; i > 0; i-- {
		outer, ok := c.index[strings.Join(parts[:i], ".")]
		if !ok {
			continue
		}
		if td := c.findNested(outer, parts[i:]); td != nil {
			return td
		}
	}
	return nil
}

func (c *Container) findNested(outer *TypeDefinition, names []string) *TypeDefinition {
	key := outer.FullNameGenericsErased()
	for _, n := range names {
		key += "$" + n
	}
	return c.index[key]
}

// Resolve resolves ref through the container's resolver, trying this
// container before the others.
func (c *Container) Resolve(ref TypeReference) (*TypeDefinition, error) {
	return c.resolver.resolve(ref, c)
}

func eraseGenerics(name string) string {
	if !strings.ContainsRune(name, '<') {
		return name
	}
	var b strings.Builder
	depth := 0
	for _, r := range name {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
