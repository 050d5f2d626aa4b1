package java

type FieldDefinition struct {
	Name          string
	DeclaringType *TypeDefinition
	FieldType     TypeReference
	Nullability   Nullability

	// Value is the compile-time constant of a static final field: a bool,
	// rune, int32, int64, float32, float64 or string. It is nil otherwise.
	Value any

	Visibility   Visibility
	IsStatic     bool
	IsFinal      bool
	IsVolatile   bool
	IsTransient  bool
	IsSynthetic  bool
	IsEnum       bool
	IsDeprecated bool

	Attributes []Attribute
}

func NewFieldDefinition(name string, fieldType TypeReference) *FieldDefinition {
	return &FieldDefinition{
		Name:        name,
		FieldType:   fieldType,
		Nullability: NullabilityOblivious,
		Visibility:  VisibilityPackage,
		Attributes:  []Attribute{},
	}
}

func (f *FieldDefinition) FullName() string {
	if f.DeclaringType == nil {
		return f.Name
	}
	return f.DeclaringType.FullNameGenericsErased() + "." + f.Name
}

func (f *FieldDefinition) String() string {
	return f.FieldType.FullName() + " " + f.Name
}
