// Package java models compiled Java types as a navigable graph of type
// references and definitions, with generic-aware resolution of base methods
// and interface implementations across containers.
package java

// TypeReference is a reference to a type by name within a container.
//
// The set of implementations is closed: *Reference, *GenericInstance,
// *GenericParameter, *WildcardType, *ArrayType and *TypeDefinition. The
// name projections for all of them are computed by the shared functions in
// projection.go.
type TypeReference interface {
	// Name is the simple name, with primitives spelled as in source ("int").
	Name() string
	// Namespace is the dotted package name; nested references have none.
	Namespace() string
	// GenericName is Name with generic arguments rendered.
	GenericName() string
	// NestedName is the declaring chain joined with "$", without package.
	NestedName() string
	// FullName is the human form, e.g. "java.util.Map<K, V>$Entry".
	FullName() string
	FullNameGenericsErased() string
	// JniName is the raw name as it appears in a signature ("I" for int).
	JniName() string
	// JniFullName is the signature form, e.g. "Ljava/util/List<TT;>;".
	JniFullName() string
	JniFullNameGenericsErased() string

	DeclaringType() TypeReference
	Container() *Container
	// WildcardIndicator is the "+", "-" or "*" marker the reference was
	// written with, if any.
	WildcardIndicator() string
	IsPrimitive() bool
	IsArray() bool

	// Resolve returns the definition the reference points at. Generic
	// parameters and wildcards resolve to nil without an error.
	Resolve() (*TypeDefinition, error)
	String() string

	genericJniName() string
	descriptor(scope []*GenericParameter) string
}

var primitiveNames = map[string]string{
	"B": "byte",
	"C": "char",
	"D": "double",
	"F": "float",
	"I": "int",
	"J": "long",
	"S": "short",
	"V": "void",
	"Z": "boolean",
}

// Reference is a plain reference to a class, interface or primitive type.
type Reference struct {
	namespace string
	name      string
	declaring TypeReference
	container *Container
	wildcard  string
	primitive bool
}

// NewReference returns a reference to namespace.name. For nested types,
// namespace is empty and declaring is the enclosing reference.
func NewReference(namespace, name string, container *Container, declaring TypeReference) *Reference {
	return &Reference{
		namespace: namespace,
		name:      name,
		declaring: declaring,
		container: container,
	}
}

// NewPrimitiveReference returns a reference to the primitive with the
// given descriptor code, e.g. "I".
func NewPrimitiveReference(code string, container *Container) *Reference {
	return &Reference{name: code, container: container, primitive: true}
}

func (r *Reference) Name() string {
	if r.primitive {
		if name, ok := primitiveNames[r.name]; ok {
			return name
		}
	}
	return r.name
}

func (r *Reference) Namespace() string              { return r.namespace }
func (r *Reference) GenericName() string            { return r.Name() }
func (r *Reference) NestedName() string             { return nestedName(r) }
func (r *Reference) FullName() string               { return fullName(r) }
func (r *Reference) FullNameGenericsErased() string { return erasedFullName(r) }
func (r *Reference) JniName() string                { return r.name }
func (r *Reference) JniFullName() string            { return jniFullName(r) }
func (r *Reference) JniFullNameGenericsErased() string {
	return erasedJniFullName(r)
}

func (r *Reference) DeclaringType() TypeReference { return r.declaring }
func (r *Reference) Container() *Container        { return r.container }
func (r *Reference) WildcardIndicator() string    { return r.wildcard }
func (r *Reference) IsPrimitive() bool            { return r.primitive }
func (r *Reference) IsArray() bool                { return false }
func (r *Reference) String() string               { return r.FullName() }

func (r *Reference) Resolve() (*TypeDefinition, error) {
	return resolveReference(r)
}

func (r *Reference) genericJniName() string { return r.name }

func (r *Reference) descriptor([]*GenericParameter) string {
	return r.JniFullNameGenericsErased()
}
