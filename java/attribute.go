package java

import (
	"fmt"

	"github.com/dhamidi/javil/classfile"
)

// Attribute is a class, field, method or code attribute with its constant
// pool references dereferenced.
type Attribute interface {
	AttributeName() string
}

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionHandler
	Attributes     []Attribute
}

// ExceptionHandler covers [StartPC, EndPC). CatchType is empty for
// finally blocks.
type ExceptionHandler struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType string
}

type ConstantValueAttribute struct {
	Value ConstantItem
}

type DeprecatedAttribute struct{}

// EnclosingMethodAttribute is set on local and anonymous classes. Method
// and Descriptor are empty when the class is not inside a method.
type EnclosingMethodAttribute struct {
	Class      string
	Method     string
	Descriptor string
}

type ExceptionsAttribute struct {
	Exceptions []string
}

type InnerClassesAttribute struct {
	Classes []InnerClass
}

type InnerClass struct {
	InnerClass string
	OuterClass string
	InnerName  string
	Flags      classfile.AccessFlags
}

type LocalVariableTableAttribute struct {
	Variables []LocalVariable
}

type LocalVariable struct {
	StartPC    uint16
	Length     uint16
	Name       string
	Descriptor string
	Index      uint16
}

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

type MethodParameter struct {
	Name  string
	Flags classfile.AccessFlags
}

// AnnotationsAttribute is RuntimeVisibleAnnotations or, when Visible is
// false, RuntimeInvisibleAnnotations.
type AnnotationsAttribute struct {
	Visible     bool
	Annotations []Annotation
}

type ParameterAnnotationsAttribute struct {
	Visible    bool
	Parameters [][]Annotation
}

type SignatureAttribute struct {
	Signature string
}

type SourceFileAttribute struct {
	FileName string
}

// StackMapTableAttribute is kept opaque.
type StackMapTableAttribute struct {
	Entries uint16
	Data    []byte
}

type UnknownAttribute struct {
	Name string
	Info []byte
}

func (*CodeAttribute) AttributeName() string               { return "Code" }
func (*ConstantValueAttribute) AttributeName() string      { return "ConstantValue" }
func (*DeprecatedAttribute) AttributeName() string         { return "Deprecated" }
func (*EnclosingMethodAttribute) AttributeName() string    { return "EnclosingMethod" }
func (*ExceptionsAttribute) AttributeName() string         { return "Exceptions" }
func (*InnerClassesAttribute) AttributeName() string       { return "InnerClasses" }
func (*LocalVariableTableAttribute) AttributeName() string { return "LocalVariableTable" }
func (*MethodParametersAttribute) AttributeName() string   { return "MethodParameters" }
func (*SignatureAttribute) AttributeName() string          { return "Signature" }
func (*SourceFileAttribute) AttributeName() string         { return "SourceFile" }
func (*StackMapTableAttribute) AttributeName() string      { return "StackMapTable" }
func (a *UnknownAttribute) AttributeName() string          { return a.Name }

func (a *AnnotationsAttribute) AttributeName() string {
	if a.Visible {
		return "RuntimeVisibleAnnotations"
	}
	return "RuntimeInvisibleAnnotations"
}

func (a *ParameterAnnotationsAttribute) AttributeName() string {
	if a.Visible {
		return "RuntimeVisibleParameterAnnotations"
	}
	return "RuntimeInvisibleParameterAnnotations"
}

// FindAttribute returns the first attribute of type T in attrs.
func FindAttribute[T Attribute](attrs []Attribute) (T, bool) {
	for _, a := range attrs {
		if v, ok := a.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Annotations collects the annotations of every visible and invisible
// annotations attribute.
func Annotations(attrs []Attribute) []Annotation {
	var anns []Annotation
	for _, a := range attrs {
		if aa, ok := a.(*AnnotationsAttribute); ok {
			anns = append(anns, aa.Annotations...)
		}
	}
	return anns
}

func isDeprecated(attrs []Attribute) bool {
	if _, ok := FindAttribute[*DeprecatedAttribute](attrs); ok {
		return true
	}
	for _, a := range Annotations(attrs) {
		if a.Type == "Ljava/lang/Deprecated;" {
			return true
		}
	}
	return false
}

func attributesFromClassfile(attrs []classfile.AttributeInfo, cp classfile.ConstantPool) ([]Attribute, error) {
	result := make([]Attribute, 0, len(attrs))
	for i := range attrs {
		a, err := attributeFromClassfile(&attrs[i], cp)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", attrs[i].Name(cp), err)
		}
		result = append(result, a)
	}
	return result, nil
}

func attributeFromClassfile(info *classfile.AttributeInfo, cp classfile.ConstantPool) (Attribute, error) {
	switch p := info.Parsed.(type) {
	case *classfile.CodeAttribute:
		code := &CodeAttribute{
			MaxStack:       p.MaxStack,
			MaxLocals:      p.MaxLocals,
			Code:           p.Code,
			ExceptionTable: make([]ExceptionHandler, len(p.ExceptionTable)),
		}
		for i, e := range p.ExceptionTable {
			code.ExceptionTable[i] = ExceptionHandler{
				StartPC:   e.StartPC,
				EndPC:     e.EndPC,
				HandlerPC: e.HandlerPC,
				CatchType: cp.GetClassName(e.CatchType),
			}
		}
		nested, err := attributesFromClassfile(p.Attributes, cp)
		if err != nil {
			return nil, err
		}
		code.Attributes = nested
		return code, nil
	case *classfile.ConstantValueAttribute:
		item, err := constantFromPool(cp, p.ConstantValueIndex)
		if err != nil {
			return nil, err
		}
		return &ConstantValueAttribute{Value: item}, nil
	case *classfile.DeprecatedAttribute:
		return &DeprecatedAttribute{}, nil
	case *classfile.EnclosingMethodAttribute:
		name, desc := cp.GetNameAndType(p.MethodIndex)
		return &EnclosingMethodAttribute{Class: cp.GetClassName(p.ClassIndex), Method: name, Descriptor: desc}, nil
	case *classfile.ExceptionsAttribute:
		ex := &ExceptionsAttribute{Exceptions: make([]string, len(p.ExceptionIndexTable))}
		for i, idx := range p.ExceptionIndexTable {
			ex.Exceptions[i] = cp.GetClassName(idx)
		}
		return ex, nil
	case *classfile.InnerClassesAttribute:
		ic := &InnerClassesAttribute{Classes: make([]InnerClass, len(p.Classes))}
		for i, c := range p.Classes {
			ic.Classes[i] = InnerClass{
				InnerClass: cp.GetClassName(c.InnerClassInfoIndex),
				OuterClass: cp.GetClassName(c.OuterClassInfoIndex),
				InnerName:  cp.GetUtf8(c.InnerNameIndex),
				Flags:      c.InnerClassAccessFlags,
			}
		}
		return ic, nil
	case *classfile.LocalVariableTableAttribute:
		lvt := &LocalVariableTableAttribute{Variables: make([]LocalVariable, len(p.LocalVariableTable))}
		for i, v := range p.LocalVariableTable {
			lvt.Variables[i] = LocalVariable{
				StartPC:    v.StartPC,
				Length:     v.Length,
				Name:       cp.GetUtf8(v.NameIndex),
				Descriptor: cp.GetUtf8(v.DescriptorIndex),
				Index:      v.Index,
			}
		}
		return lvt, nil
	case *classfile.MethodParametersAttribute:
		mp := &MethodParametersAttribute{Parameters: make([]MethodParameter, len(p.Parameters))}
		for i, param := range p.Parameters {
			mp.Parameters[i] = MethodParameter{Name: cp.GetUtf8(param.NameIndex), Flags: param.AccessFlags}
		}
		return mp, nil
	case *classfile.AnnotationsAttribute:
		anns, err := annotationsFromClassfile(p.Annotations, cp)
		if err != nil {
			return nil, err
		}
		return &AnnotationsAttribute{Visible: p.Visible, Annotations: anns}, nil
	case *classfile.ParameterAnnotationsAttribute:
		pa := &ParameterAnnotationsAttribute{Visible: p.Visible, Parameters: make([][]Annotation, len(p.ParameterAnnotations))}
		for i, anns := range p.ParameterAnnotations {
			converted, err := annotationsFromClassfile(anns, cp)
			if err != nil {
				return nil, err
			}
			pa.Parameters[i] = converted
		}
		return pa, nil
	case *classfile.SignatureAttribute:
		return &SignatureAttribute{Signature: cp.GetUtf8(p.SignatureIndex)}, nil
	case *classfile.SourceFileAttribute:
		return &SourceFileAttribute{FileName: cp.GetUtf8(p.SourceFileIndex)}, nil
	case *classfile.StackMapTableAttribute:
		return &StackMapTableAttribute{Entries: p.NumberOfEntries, Data: p.Data}, nil
	case nil:
		return &UnknownAttribute{Name: info.Name(cp), Info: info.Info}, nil
	}
	return nil, fmt.Errorf("%w: attribute record %T", ErrUnsupportedInput, info.Parsed)
}
