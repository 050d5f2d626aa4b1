package java

import (
	"fmt"

	"github.com/dhamidi/javil/classfile"
)

type Annotation struct {
	// Type is the field descriptor of the annotation type, e.g.
	// "Landroidx/annotation/NonNull;".
	Type     string
	Elements []AnnotationElement
}

// TypeName returns the dotted name of the annotation type.
func (a Annotation) TypeName() string {
	return descriptorToTypeName(a.Type)
}

type AnnotationElement struct {
	Name  string
	Value ElementValue
}

// ElementValue is one of ConstantElementValue, EnumElementValue,
// ClassElementValue, AnnotationElementValue or ArrayElementValue.
type ElementValue interface {
	elementValue()
}

// ConstantElementValue holds a primitive or string element. Tag is the
// element tag from the class file ('I', 'Z', 's' and so on).
type ConstantElementValue struct {
	Tag   byte
	Value ConstantItem
}

type EnumElementValue struct {
	Type  string
	Const string
}

// ClassElementValue is a class literal given as a return descriptor.
type ClassElementValue struct {
	Descriptor string
}

type AnnotationElementValue struct {
	Annotation Annotation
}

type ArrayElementValue struct {
	Values []ElementValue
}

func (ConstantElementValue) elementValue()   {}
func (EnumElementValue) elementValue()       {}
func (ClassElementValue) elementValue()      {}
func (AnnotationElementValue) elementValue() {}
func (ArrayElementValue) elementValue()      {}

func annotationsFromClassfile(anns []classfile.Annotation, cp classfile.ConstantPool) ([]Annotation, error) {
	result := make([]Annotation, len(anns))
	for i, a := range anns {
		ann, err := annotationFromClassfile(a, cp)
		if err != nil {
			return nil, err
		}
		result[i] = ann
	}
	return result, nil
}

func annotationFromClassfile(a classfile.Annotation, cp classfile.ConstantPool) (Annotation, error) {
	ann := Annotation{
		Type:     cp.GetUtf8(a.TypeIndex),
		Elements: make([]AnnotationElement, len(a.ElementValuePairs)),
	}
	for i, p := range a.ElementValuePairs {
		v, err := elementValueFromClassfile(p.Value, cp)
		if err != nil {
			return Annotation{}, fmt.Errorf("element %s of %s: %w", cp.GetUtf8(p.ElementNameIndex), ann.TypeName(), err)
		}
		ann.Elements[i] = AnnotationElement{Name: cp.GetUtf8(p.ElementNameIndex), Value: v}
	}
	return ann, nil
}

func elementValueFromClassfile(ev classfile.ElementValue, cp classfile.ConstantPool) (ElementValue, error) {
	switch v := ev.Value.(type) {
	case uint16:
		if ev.Tag == 'c' {
			return ClassElementValue{Descriptor: cp.GetUtf8(v)}, nil
		}
		item, err := constantFromPool(cp, v)
		if err != nil {
			return nil, err
		}
		return ConstantElementValue{Tag: ev.Tag, Value: item}, nil
	case classfile.EnumConstValue:
		return EnumElementValue{Type: cp.GetUtf8(v.TypeNameIndex), Const: cp.GetUtf8(v.ConstNameIndex)}, nil
	case classfile.Annotation:
		ann, err := annotationFromClassfile(v, cp)
		if err != nil {
			return nil, err
		}
		return AnnotationElementValue{Annotation: ann}, nil
	case classfile.ArrayValue:
		values := make([]ElementValue, len(v.Values))
		for i, elem := range v.Values {
			ev, err := elementValueFromClassfile(elem, cp)
			if err != nil {
				return nil, err
			}
			values[i] = ev
		}
		return ArrayElementValue{Values: values}, nil
	}
	return nil, fmt.Errorf("%w: element value tag %q", ErrUnsupportedInput, ev.Tag)
}

func descriptorToTypeName(desc string) string {
	if len(desc) > 1 && desc[0] == 'L' && desc[len(desc)-1] == ';' {
		return internalToSourceName(desc[1 : len(desc)-1])
	}
	return desc
}

// internalToSourceName turns "java/util/Map$Entry" into
// "java.util.Map$Entry".
func internalToSourceName(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c == '/' {
			b[i] = '.'
		}
	}
	return string(b)
}
