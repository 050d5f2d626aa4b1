package classfile

import (
	"bytes"
	"fmt"
)

// AttributeInfo is a raw attribute. Parsed holds the decoded record (one of
// the *XAttribute types below) for the attribute kinds this package knows,
// and is nil for everything else.
type AttributeInfo struct {
	NameIndex uint16
	Info      []byte
	Parsed    any
}

func (a *AttributeInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(a.NameIndex)
}

type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

type LocalVariableTableAttribute struct {
	LocalVariableTable []LocalVariableEntry
}

type LocalVariableEntry struct {
	StartPC         uint16
	Length          uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Index           uint16
}

type SourceFileAttribute struct {
	SourceFileIndex uint16
}

type ConstantValueAttribute struct {
	ConstantValueIndex uint16
}

type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags AccessFlags
}

type SignatureAttribute struct {
	SignatureIndex uint16
}

type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16
}

type DeprecatedAttribute struct{}

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

type MethodParameter struct {
	NameIndex   uint16
	AccessFlags AccessFlags
}

// StackMapTableAttribute keeps the frames undecoded.
type StackMapTableAttribute struct {
	NumberOfEntries uint16
	Data            []byte
}

type Annotation struct {
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

type ElementValuePair struct {
	ElementNameIndex uint16
	Value            ElementValue
}

// ElementValue is an annotation element. Value is a constant pool index
// (uint16) for constants and class literals, EnumConstValue, Annotation or
// ArrayValue.
type ElementValue struct {
	Tag   byte
	Value any
}

type EnumConstValue struct {
	TypeNameIndex  uint16
	ConstNameIndex uint16
}

type ArrayValue struct {
	Values []ElementValue
}

// AnnotationsAttribute is RuntimeVisibleAnnotations or
// RuntimeInvisibleAnnotations.
type AnnotationsAttribute struct {
	Visible     bool
	Annotations []Annotation
}

// ParameterAnnotationsAttribute is RuntimeVisibleParameterAnnotations or
// RuntimeInvisibleParameterAnnotations.
type ParameterAnnotationsAttribute struct {
	Visible              bool
	ParameterAnnotations [][]Annotation
}

func parsedAs[T any](a *AttributeInfo) *T {
	if a == nil {
		return nil
	}
	v, _ := a.Parsed.(*T)
	return v
}

func (a *AttributeInfo) AsCode() *CodeAttribute { return parsedAs[CodeAttribute](a) }
func (a *AttributeInfo) AsLocalVariableTable() *LocalVariableTableAttribute {
	return parsedAs[LocalVariableTableAttribute](a)
}
func (a *AttributeInfo) AsSourceFile() *SourceFileAttribute { return parsedAs[SourceFileAttribute](a) }
func (a *AttributeInfo) AsConstantValue() *ConstantValueAttribute {
	return parsedAs[ConstantValueAttribute](a)
}
func (a *AttributeInfo) AsExceptions() *ExceptionsAttribute { return parsedAs[ExceptionsAttribute](a) }
func (a *AttributeInfo) AsInnerClasses() *InnerClassesAttribute {
	return parsedAs[InnerClassesAttribute](a)
}
func (a *AttributeInfo) AsSignature() *SignatureAttribute { return parsedAs[SignatureAttribute](a) }
func (a *AttributeInfo) AsEnclosingMethod() *EnclosingMethodAttribute {
	return parsedAs[EnclosingMethodAttribute](a)
}
func (a *AttributeInfo) AsDeprecated() *DeprecatedAttribute { return parsedAs[DeprecatedAttribute](a) }
func (a *AttributeInfo) AsMethodParameters() *MethodParametersAttribute {
	return parsedAs[MethodParametersAttribute](a)
}
func (a *AttributeInfo) AsStackMapTable() *StackMapTableAttribute {
	return parsedAs[StackMapTableAttribute](a)
}
func (a *AttributeInfo) AsAnnotations() *AnnotationsAttribute {
	return parsedAs[AnnotationsAttribute](a)
}
func (a *AttributeInfo) AsParameterAnnotations() *ParameterAnnotationsAttribute {
	return parsedAs[ParameterAnnotationsAttribute](a)
}

func readAttributes(r *reader, cp ConstantPool) ([]AttributeInfo, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}
	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		nameIndex := r.readU2()
		length := r.readU4()
		info := r.readBytes(int(length))
		if r.err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, r.err)
		}
		parsed, err := decodeAttribute(cp.GetUtf8(nameIndex), info, cp)
		if err != nil {
			return nil, err
		}
		attrs[i] = AttributeInfo{NameIndex: nameIndex, Info: info, Parsed: parsed}
	}
	return attrs, nil
}

// decodeAttribute returns nil, nil for attribute kinds it does not know.
func decodeAttribute(name string, info []byte, cp ConstantPool) (any, error) {
	r := &reader{r: bytes.NewReader(info)}

	var parsed any
	switch name {
	case "Code":
		code, err := readCode(r, cp)
		if err != nil {
			return nil, fmt.Errorf("Code attribute: %w", err)
		}
		parsed = code
	case "SourceFile":
		parsed = &SourceFileAttribute{SourceFileIndex: r.readU2()}
	case "ConstantValue":
		parsed = &ConstantValueAttribute{ConstantValueIndex: r.readU2()}
	case "Signature":
		parsed = &SignatureAttribute{SignatureIndex: r.readU2()}
	case "Deprecated":
		parsed = &DeprecatedAttribute{}
	case "EnclosingMethod":
		parsed = &EnclosingMethodAttribute{ClassIndex: r.readU2(), MethodIndex: r.readU2()}
	case "Exceptions":
		ex := &ExceptionsAttribute{ExceptionIndexTable: make([]uint16, r.readU2())}
		for i := range ex.ExceptionIndexTable {
			ex.ExceptionIndexTable[i] = r.readU2()
		}
		parsed = ex
	case "InnerClasses":
		ic := &InnerClassesAttribute{Classes: make([]InnerClassEntry, r.readU2())}
		for i := range ic.Classes {
			ic.Classes[i] = InnerClassEntry{
				InnerClassInfoIndex:   r.readU2(),
				OuterClassInfoIndex:   r.readU2(),
				InnerNameIndex:        r.readU2(),
				InnerClassAccessFlags: AccessFlags(r.readU2()),
			}
		}
		parsed = ic
	case "LocalVariableTable":
		lvt := &LocalVariableTableAttribute{LocalVariableTable: make([]LocalVariableEntry, r.readU2())}
		for i := range lvt.LocalVariableTable {
			lvt.LocalVariableTable[i] = LocalVariableEntry{
				StartPC:         r.readU2(),
				Length:          r.readU2(),
				NameIndex:       r.readU2(),
				DescriptorIndex: r.readU2(),
				Index:           r.readU2(),
			}
		}
		parsed = lvt
	case "MethodParameters":
		mp := &MethodParametersAttribute{Parameters: make([]MethodParameter, r.readU1())}
		for i := range mp.Parameters {
			mp.Parameters[i] = MethodParameter{NameIndex: r.readU2(), AccessFlags: AccessFlags(r.readU2())}
		}
		parsed = mp
	case "StackMapTable":
		parsed = &StackMapTableAttribute{NumberOfEntries: r.readU2(), Data: info}
	case "RuntimeVisibleAnnotations", "RuntimeInvisibleAnnotations":
		parsed = &AnnotationsAttribute{
			Visible:     name == "RuntimeVisibleAnnotations",
			Annotations: readAnnotations(r),
		}
	case "RuntimeVisibleParameterAnnotations", "RuntimeInvisibleParameterAnnotations":
		pa := &ParameterAnnotationsAttribute{
			Visible:              name == "RuntimeVisibleParameterAnnotations",
			ParameterAnnotations: make([][]Annotation, r.readU1()),
		}
		for i := range pa.ParameterAnnotations {
			pa.ParameterAnnotations[i] = readAnnotations(r)
		}
		parsed = pa
	default:
		return nil, nil
	}

	if r.err != nil {
		return nil, fmt.Errorf("%s attribute: %w", name, r.err)
	}
	return parsed, nil
}

func readCode(r *reader, cp ConstantPool) (*CodeAttribute, error) {
	code := &CodeAttribute{
		MaxStack:  r.readU2(),
		MaxLocals: r.readU2(),
	}
	code.Code = r.readBytes(int(r.readU4()))

	code.ExceptionTable = make([]ExceptionTableEntry, r.readU2())
	for i := range code.ExceptionTable {
		code.ExceptionTable[i] = ExceptionTableEntry{
			StartPC:   r.readU2(),
			EndPC:     r.readU2(),
			HandlerPC: r.readU2(),
			CatchType: r.readU2(),
		}
	}
	if r.err != nil {
		return nil, r.err
	}

	attrs, err := readAttributes(r, cp)
	if err != nil {
		return nil, err
	}
	code.Attributes = attrs
	return code, nil
}

func readAnnotations(r *reader) []Annotation {
	anns := make([]Annotation, r.readU2())
	for i := range anns {
		anns[i] = readAnnotation(r)
	}
	return anns
}

func readAnnotation(r *reader) Annotation {
	ann := Annotation{TypeIndex: r.readU2()}
	ann.ElementValuePairs = make([]ElementValuePair, r.readU2())
	for i := range ann.ElementValuePairs {
		ann.ElementValuePairs[i] = ElementValuePair{
			ElementNameIndex: r.readU2(),
			Value:            readElementValue(r),
		}
	}
	return ann
}

func readElementValue(r *reader) ElementValue {
	ev := ElementValue{Tag: r.readU1()}
	if r.err != nil {
		return ev
	}

	switch ev.Tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		ev.Value = r.readU2()
	case 'e':
		ev.Value = EnumConstValue{TypeNameIndex: r.readU2(), ConstNameIndex: r.readU2()}
	case '@':
		ev.Value = readAnnotation(r)
	case '[':
		values := make([]ElementValue, r.readU2())
		for i := range values {
			values[i] = readElementValue(r)
		}
		ev.Value = ArrayValue{Values: values}
	default:
		r.fail(fmt.Errorf("unknown element value tag %q", ev.Tag))
	}
	return ev
}
