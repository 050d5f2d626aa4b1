package format

import (
	"github.com/dhamidi/javil/java"
)

// typeSummary is the document the JSON and YAML encoders write.
type typeSummary struct {
	Name              string             `json:"name" yaml:"name"`
	Package           string             `json:"package,omitempty" yaml:"package,omitempty"`
	DeclaringType     string             `json:"declaringType,omitempty" yaml:"declaringType,omitempty"`
	Kind              string             `json:"kind" yaml:"kind"`
	Visibility        string             `json:"visibility" yaml:"visibility"`
	Modifiers         []string           `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	JniName           string             `json:"jniName" yaml:"jniName"`
	SourceFile        string             `json:"sourceFile,omitempty" yaml:"sourceFile,omitempty"`
	GenericParameters []genericParameter `json:"genericParameters,omitempty" yaml:"genericParameters,omitempty"`
	BaseType          string             `json:"baseType,omitempty" yaml:"baseType,omitempty"`
	Interfaces        []string           `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Annotations       []string           `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Fields            []fieldSummary     `json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods           []methodSummary    `json:"methods,omitempty" yaml:"methods,omitempty"`
	NestedTypes       []typeSummary      `json:"nestedTypes,omitempty" yaml:"nestedTypes,omitempty"`
}

type genericParameter struct {
	Name   string   `json:"name" yaml:"name"`
	Bounds []string `json:"bounds,omitempty" yaml:"bounds,omitempty"`
}

type fieldSummary struct {
	Name        string   `json:"name" yaml:"name"`
	Type        string   `json:"type" yaml:"type"`
	Visibility  string   `json:"visibility" yaml:"visibility"`
	Modifiers   []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	NotNull     bool     `json:"notNull,omitempty" yaml:"notNull,omitempty"`
	Value       any      `json:"value,omitempty" yaml:"value,omitempty"`
	Annotations []string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

type methodSummary struct {
	Name              string             `json:"name" yaml:"name"`
	Descriptor        string             `json:"descriptor" yaml:"descriptor"`
	ReturnType        string             `json:"returnType" yaml:"returnType"`
	ReturnNotNull     bool               `json:"returnNotNull,omitempty" yaml:"returnNotNull,omitempty"`
	GenericParameters []genericParameter `json:"genericParameters,omitempty" yaml:"genericParameters,omitempty"`
	Parameters        []parameterSummary `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Throws            []string           `json:"throws,omitempty" yaml:"throws,omitempty"`
	Overrides         string             `json:"overrides,omitempty" yaml:"overrides,omitempty"`
	Implements        string             `json:"implements,omitempty" yaml:"implements,omitempty"`
	Visibility        string             `json:"visibility" yaml:"visibility"`
	Modifiers         []string           `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Annotations       []string           `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

type parameterSummary struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Type    string `json:"type" yaml:"type"`
	NotNull bool   `json:"notNull,omitempty" yaml:"notNull,omitempty"`
}

func summarize(td *java.TypeDefinition) typeSummary {
	s := typeSummary{
		Name:              td.FullName(),
		Package:           td.Namespace(),
		Kind:              string(td.Kind),
		Visibility:        string(td.Visibility),
		Modifiers:         typeModifiers(td),
		JniName:           td.JniFullNameGenericsErased(),
		SourceFile:        td.SourceFileName,
		GenericParameters: genericParameters(td.GenericParameters),
		Interfaces:        visibleInterfaces(td),
		Annotations:       annotationStrings(td.Attributes),
	}
	if outer := td.DeclaringDefinition(); outer != nil {
		s.DeclaringType = outer.FullName()
	}
	if base := visibleBaseType(td); base != nil {
		s.BaseType = base.FullName()
	}

	for _, f := range td.Fields {
		if f.IsSynthetic {
			continue
		}
		s.Fields = append(s.Fields, fieldSummary{
			Name:        f.Name,
			Type:        f.FieldType.FullName(),
			Visibility:  string(f.Visibility),
			Modifiers:   fieldModifiers(f),
			NotNull:     f.Nullability == java.NullabilityNotNull,
			Value:       f.Value,
			Annotations: annotationStrings(f.Attributes),
		})
	}

	for _, m := range td.Methods {
		if m.IsSynthetic {
			continue
		}
		ms := methodSummary{
			Name:              m.Name,
			Descriptor:        m.Descriptor(),
			ReturnType:        m.ReturnType.FullName(),
			ReturnNotNull:     m.ReturnNullability == java.NullabilityNotNull,
			GenericParameters: genericParameters(m.GenericParameters),
			Throws:            typeNames(m.CheckedExceptions),
			Visibility:        string(m.Visibility),
			Modifiers:         methodModifiers(m),
			Annotations:       annotationStrings(m.Attributes),
		}
		if len(ms.Throws) == 0 {
			ms.Throws = nil
		}
		// Supertypes missing from the classpath leave these empty.
		if base, err := m.FindBaseMethodOrDefault(); err == nil && base != nil {
			ms.Overrides = methodRef(base)
		}
		if decl, err := m.FindImplementedDeclarationOrDefault(); err == nil && decl != nil {
			ms.Implements = methodRef(decl)
		}
		for _, p := range m.Parameters {
			ms.Parameters = append(ms.Parameters, parameterSummary{
				Name:    p.Name,
				Type:    p.ParameterType.FullName(),
				NotNull: p.Nullability == java.NullabilityNotNull,
			})
		}
		s.Methods = append(s.Methods, ms)
	}

	for _, nested := range td.NestedTypes {
		s.NestedTypes = append(s.NestedTypes, summarize(nested))
	}
	return s
}

// methodRef names a method as Type.name(descriptor).
func methodRef(m *java.MethodDefinition) string {
	return m.DeclaringType.FullNameGenericsErased() + "." + m.Name + m.Descriptor()
}

func genericParameters(gps []*java.GenericParameter) []genericParameter {
	if len(gps) == 0 {
		return nil
	}
	result := make([]genericParameter, len(gps))
	for i, gp := range gps {
		result[i] = genericParameter{Name: gp.Name(), Bounds: typeParameterBounds(gp)}
	}
	return result
}

func annotationStrings(attrs []java.Attribute) []string {
	var result []string
	for _, a := range java.Annotations(attrs) {
		result = append(result, annotationString(a))
	}
	return result
}
