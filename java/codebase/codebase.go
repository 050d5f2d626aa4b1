// Package codebase keeps a classpath loaded into a resolver and answers the
// lookups an editor needs: symbols, member completions and declarations.
package codebase

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/javil/format"
	"github.com/dhamidi/javil/java"
	"github.com/dhamidi/javil/java/scanner"
)

var log = commonlog.GetLogger("javil.codebase")

// MaxSymbols caps the result of Symbols.
const MaxSymbols = 500

type Codebase struct {
	mu       sync.RWMutex
	paths    []string
	resolver *java.Resolver
	results  []*scanner.Result
}

func New(paths []string) *Codebase {
	return &Codebase{
		paths:    slices.Clone(paths),
		resolver: java.NewResolver(),
	}
}

func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.paths)
}

// SetPaths replaces the classpath. It takes effect on the next Load.
func (c *Codebase) SetPaths(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = slices.Clone(paths)
}

// Load reads every classpath entry into a fresh resolver and swaps it in
// once all entries are done. Entries that cannot be read are skipped and
// their errors joined into the returned error.
func (c *Codebase) Load(ctx context.Context) error {
	paths := c.Paths()
	resolver := java.NewResolver()

	var errs []error
	results := make([]*scanner.Result, 0, len(paths))
	for _, p := range paths {
		r, err := scanner.Load(ctx, p, resolver)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			log.Warningf("classpath entry %s: %s", p, err)
			errs = append(errs, err)
			continue
		}
		results = append(results, r)
	}

	c.mu.Lock()
	c.resolver = resolver
	c.results = results
	c.mu.Unlock()

	log.Infof("loaded %d classpath entries", len(results))
	return errors.Join(errs...)
}

func (c *Codebase) Resolver() *java.Resolver {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolver
}

func (c *Codebase) Results() []*scanner.Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.results)
}

func (c *Codebase) FindType(name string) *java.TypeDefinition {
	return c.Resolver().FindType(name)
}

// Types lists every visible type, nested ones included. A type shadowed by
// an earlier classpath entry is left out.
func (c *Codebase) Types() []*java.TypeDefinition {
	var types []*java.TypeDefinition
	seen := make(map[string]bool)
	for _, container := range c.Resolver().Containers() {
		for _, td := range container.AllTypes() {
			name := td.FullNameGenericsErased()
			if seen[name] {
				continue
			}
			seen[name] = true
			types = append(types, td)
		}
	}
	return types
}

type SymbolKind int

const (
	SymbolKindClass SymbolKind = iota
	SymbolKindInterface
	SymbolKindEnum
	SymbolKindMethod
	SymbolKindConstructor
	SymbolKindField
	SymbolKindConstant
)

type Symbol struct {
	Name       string
	Kind       SymbolKind
	Container  string
	Deprecated bool
	Type       *java.TypeDefinition
}

// Symbols returns types and members whose simple name contains query,
// ignoring case. Types come first, then members, each sorted by name.
func (c *Codebase) Symbols(query string) []Symbol {
	query = strings.ToLower(query)
	match := func(name string) bool {
		return strings.Contains(strings.ToLower(name), query)
	}

	var types, members []Symbol
	for _, td := range c.Types() {
		if match(td.Name()) {
			types = append(types, Symbol{
				Name:       td.Name(),
				Kind:       typeSymbolKind(td),
				Container:  containerName(td),
				Deprecated: td.IsDeprecated,
				Type:       td,
			})
		}
		for _, m := range td.Methods {
			if m.IsBridge || m.IsSynthetic || !match(m.Name) {
				continue
			}
			kind, name := SymbolKindMethod, m.Name
			if m.IsConstructor() {
				kind, name = SymbolKindConstructor, td.Name()
			}
			members = append(members, Symbol{Name: name, Kind: kind, Container: td.FullNameGenericsErased(), Deprecated: m.IsDeprecated, Type: td})
		}
		for _, f := range td.Fields {
			if f.IsSynthetic || !match(f.Name) {
				continue
			}
			kind := SymbolKindField
			if f.Value != nil || f.IsEnum {
				kind = SymbolKindConstant
			}
			members = append(members, Symbol{Name: f.Name, Kind: kind, Container: td.FullNameGenericsErased(), Deprecated: f.IsDeprecated, Type: td})
		}
	}

	bySymbol := func(a, b Symbol) int {
		return cmpOr(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Container, b.Container))
	}
	slices.SortStableFunc(types, bySymbol)
	slices.SortStableFunc(members, bySymbol)

	symbols := append(types, members...)
	if len(symbols) > MaxSymbols {
		symbols = symbols[:MaxSymbols]
	}
	return symbols
}

func typeSymbolKind(td *java.TypeDefinition) SymbolKind {
	switch td.Kind {
	case java.ClassKindInterface, java.ClassKindAnnotation:
		return SymbolKindInterface
	case java.ClassKindEnum:
		return SymbolKindEnum
	}
	return SymbolKindClass
}

func containerName(td *java.TypeDefinition) string {
	if outer := td.DeclaringDefinition(); outer != nil {
		return outer.FullNameGenericsErased()
	}
	return td.Namespace()
}

type CompletionKind int

const (
	CompletionKindMethod CompletionKind = iota
	CompletionKindField
	CompletionKindClass
	CompletionKindPackage
)

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
	Deprecated bool
}

// Complete completes a qualified expression such as "java.util.Li" or
// "java.util.List.". A qualifier naming a type yields its members and
// nested types; otherwise it is taken as a package and yields the types and
// subpackages in it.
func (c *Codebase) Complete(expr string) []CompletionItem {
	qualifier, partial := "", expr
	if i := strings.LastIndexByte(expr, '.'); i >= 0 {
		qualifier, partial = expr[:i], expr[i+1:]
	}

	var items []CompletionItem
	if td := c.FindType(qualifier); qualifier != "" && td != nil {
		items = c.Members(td)
		for _, nested := range td.NestedTypes {
			items = append(items, typeItem(nested))
		}
	} else {
		items = c.packageContents(qualifier)
	}

	return slices.DeleteFunc(items, func(item CompletionItem) bool {
		return !strings.HasPrefix(item.Label, partial)
	})
}

func (c *Codebase) packageContents(pkg string) []CompletionItem {
	var items []CompletionItem
	subpackages := make(map[string]bool)
	for _, td := range c.Types() {
		ns := td.Namespace()
		switch {
		case td.DeclaringDefinition() != nil:
		case ns == pkg:
			items = append(items, typeItem(td))
		case pkg == "" || strings.HasPrefix(ns, pkg+"."):
			rest := strings.TrimPrefix(strings.TrimPrefix(ns, pkg), ".")
			sub, _, _ := strings.Cut(rest, ".")
			if sub != "" && !subpackages[sub] {
				subpackages[sub] = true
				items = append(items, CompletionItem{Label: sub, Kind: CompletionKindPackage, Detail: "package", InsertText: sub})
			}
		}
	}
	slices.SortStableFunc(items, func(a, b CompletionItem) int { return cmp.Compare(a.Label, b.Label) })
	return items
}

func typeItem(td *java.TypeDefinition) CompletionItem {
	return CompletionItem{
		Label:      td.Name(),
		Kind:       CompletionKindClass,
		Detail:     format.Declaration(td),
		InsertText: td.Name(),
		Deprecated: td.IsDeprecated,
	}
}

// Members lists the public methods and fields of td and its supertypes.
// A method overridden lower in the hierarchy is listed once, from the most
// derived type.
func (c *Codebase) Members(td *java.TypeDefinition) []CompletionItem {
	var items []CompletionItem
	seenMethods := make(map[string]bool)
	seenFields := make(map[string]bool)
	visited := make(map[*java.TypeDefinition]bool)

	var walk func(t *java.TypeDefinition)
	walk = func(t *java.TypeDefinition) {
		if t == nil || visited[t] {
			return
		}
		visited[t] = true

		for _, m := range t.Methods {
			if m.Visibility != java.VisibilityPublic || m.IsBridge || m.IsSynthetic || m.IsConstructor() {
				continue
			}
			key := m.Name + m.Descriptor()
			if seenMethods[key] {
				continue
			}
			seenMethods[key] = true
			items = append(items, CompletionItem{
				Label:      m.Name,
				Kind:       CompletionKindMethod,
				Detail:     formatMethodSignature(m),
				InsertText: formatMethodInsert(m),
				Deprecated: m.IsDeprecated,
			})
		}
		for _, f := range t.Fields {
			if f.Visibility != java.VisibilityPublic || f.IsSynthetic || seenFields[f.Name] {
				continue
			}
			seenFields[f.Name] = true
			items = append(items, CompletionItem{
				Label:      f.Name,
				Kind:       CompletionKindField,
				Detail:     f.FieldType.FullName(),
				InsertText: f.Name,
				Deprecated: f.IsDeprecated,
			})
		}

		if t.BaseType != nil {
			base, err := t.BaseType.Resolve()
			if err != nil {
				log.Debugf("members of %s: %s", t.FullName(), err)
			}
			walk(base)
		}
		for _, ii := range t.ImplementedInterfaces {
			iface, err := ii.InterfaceType.Resolve()
			if err != nil {
				log.Debugf("members of %s: %s", t.FullName(), err)
			}
			walk(iface)
		}
	}
	walk(td)
	return items
}

func formatMethodSignature(m *java.MethodDefinition) string {
	var params []string
	for _, p := range m.Parameters {
		params = append(params, p.ParameterType.FullName()+" "+p.Name)
	}
	return m.ReturnType.FullName() + " " + m.Name + "(" + strings.Join(params, ", ") + ")"
}

// formatMethodInsert renders a snippet with one placeholder per parameter.
func formatMethodInsert(m *java.MethodDefinition) string {
	if len(m.Parameters) == 0 {
		return m.Name + "()"
	}
	var placeholders []string
	for i, p := range m.Parameters {
		name := p.Name
		if name == "" {
			name = p.ParameterType.Name()
		}
		placeholders = append(placeholders, "${"+strconv.Itoa(i+1)+":"+name+"}")
	}
	return m.Name + "(" + strings.Join(placeholders, ", ") + ")"
}

// Describe renders the declaration of the type name refers to, or of a
// member when name is "Type.member". It returns "" when nothing matches.
func (c *Codebase) Describe(name string) string {
	if td := c.FindType(name); td != nil {
		return format.Declaration(td)
	}
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	td := c.FindType(name[:i])
	if td == nil {
		return ""
	}
	member := name[i+1:]
	var lines []string
	if f := td.FindField(member); f != nil {
		lines = append(lines, format.FieldDeclaration(f))
	}
	for _, m := range td.FindMethods(member) {
		if !m.IsBridge && !m.IsSynthetic {
			lines = append(lines, format.MethodDeclaration(m))
		}
	}
	return strings.Join(lines, "\n")
}
