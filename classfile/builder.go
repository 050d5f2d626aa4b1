package classfile

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Builder assembles a class file in memory, interning constant pool
// entries as they are referenced. It produces fixtures for code that needs
// class files without running a Java compiler.
type Builder struct {
	cf   *ClassFile
	pool map[poolKey]uint16
}

type poolKey struct {
	tag   ConstantTag
	value string
}

// NewBuilder starts a class with the given internal names. superName may be
// empty for java/lang/Object and module-info.
func NewBuilder(name, superName string, flags AccessFlags) *Builder {
	b := &Builder{
		cf:   &ClassFile{MajorVersion: 52, AccessFlags: flags},
		pool: make(map[poolKey]uint16),
	}
	b.cf.ThisClass = b.Class(name)
	if superName != "" {
		b.cf.SuperClass = b.Class(superName)
	}
	return b
}

func (b *Builder) add(key poolKey, entry ConstantPoolEntry) uint16 {
	if idx, ok := b.pool[key]; ok {
		return idx
	}
	b.cf.ConstantPool = append(b.cf.ConstantPool, entry)
	idx := uint16(len(b.cf.ConstantPool))
	if entry.Tag().Wide() {
		b.cf.ConstantPool = append(b.cf.ConstantPool, nil)
	}
	b.pool[key] = idx
	return idx
}

func (b *Builder) Utf8(s string) uint16 {
	return b.add(poolKey{ConstantUtf8, s}, &ConstantUtf8Info{Value: s})
}

func (b *Builder) Class(name string) uint16 {
	if idx, ok := b.pool[poolKey{ConstantClass, name}]; ok {
		return idx
	}
	return b.add(poolKey{ConstantClass, name}, &ConstantClassInfo{NameIndex: b.Utf8(name)})
}

func (b *Builder) String(s string) uint16 {
	if idx, ok := b.pool[poolKey{ConstantString, s}]; ok {
		return idx
	}
	return b.add(poolKey{ConstantString, s}, &ConstantStringInfo{StringIndex: b.Utf8(s)})
}

func (b *Builder) Integer(v int32) uint16 {
	return b.add(poolKey{ConstantInteger, strconv.FormatInt(int64(v), 10)}, &ConstantIntegerInfo{Value: v})
}

func (b *Builder) Long(v int64) uint16 {
	return b.add(poolKey{ConstantLong, strconv.FormatInt(v, 10)}, &ConstantLongInfo{Value: v})
}

func (b *Builder) Float(v float32) uint16 {
	key := strconv.FormatUint(uint64(math.Float32bits(v)), 16)
	return b.add(poolKey{ConstantFloat, key}, &ConstantFloatInfo{Value: v})
}

func (b *Builder) Double(v float64) uint16 {
	key := strconv.FormatUint(math.Float64bits(v), 16)
	return b.add(poolKey{ConstantDouble, key}, &ConstantDoubleInfo{Value: v})
}

func (b *Builder) NameAndType(name, descriptor string) uint16 {
	key := poolKey{ConstantNameAndType, name + ":" + descriptor}
	if idx, ok := b.pool[key]; ok {
		return idx
	}
	return b.add(key, &ConstantNameAndTypeInfo{NameIndex: b.Utf8(name), DescriptorIndex: b.Utf8(descriptor)})
}

func (b *Builder) AddInterface(name string) {
	b.cf.Interfaces = append(b.cf.Interfaces, b.Class(name))
}

func (b *Builder) AddField(flags AccessFlags, name, descriptor string, attrs ...AttributeInfo) {
	b.cf.Fields = append(b.cf.Fields, FieldInfo{
		AccessFlags:     flags,
		NameIndex:       b.Utf8(name),
		DescriptorIndex: b.Utf8(descriptor),
		Attributes:      attrs,
	})
}

func (b *Builder) AddMethod(flags AccessFlags, name, descriptor string, attrs ...AttributeInfo) {
	b.cf.Methods = append(b.cf.Methods, MethodInfo{
		AccessFlags:     flags,
		NameIndex:       b.Utf8(name),
		DescriptorIndex: b.Utf8(descriptor),
		Attributes:      attrs,
	})
}

func (b *Builder) AddAttribute(attrs ...AttributeInfo) {
	b.cf.Attributes = append(b.cf.Attributes, attrs...)
}

// Build decodes every attribute and returns the class file.
func (b *Builder) Build() (*ClassFile, error) {
	cp := b.cf.ConstantPool
	if err := decodeAll(cp, b.cf.Attributes); err != nil {
		return nil, err
	}
	for i := range b.cf.Fields {
		if err := decodeAll(cp, b.cf.Fields[i].Attributes); err != nil {
			return nil, err
		}
	}
	for i := range b.cf.Methods {
		if err := decodeAll(cp, b.cf.Methods[i].Attributes); err != nil {
			return nil, err
		}
	}
	return b.cf, nil
}

// Bytes serializes the class file.
func (b *Builder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, b.cf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeAll(cp ConstantPool, attrs []AttributeInfo) error {
	for i := range attrs {
		parsed, err := decodeAttribute(cp.GetUtf8(attrs[i].NameIndex), attrs[i].Info, cp)
		if err != nil {
			return err
		}
		attrs[i].Parsed = parsed
	}
	return nil
}

func (b *Builder) attribute(name string, fill func(w *writer)) AttributeInfo {
	var buf bytes.Buffer
	w := &writer{w: &buf}
	fill(w)
	return AttributeInfo{NameIndex: b.Utf8(name), Info: buf.Bytes()}
}

func (b *Builder) RawAttribute(name string, info []byte) AttributeInfo {
	return AttributeInfo{NameIndex: b.Utf8(name), Info: info}
}

func (b *Builder) SignatureAttribute(sig string) AttributeInfo {
	return b.attribute("Signature", func(w *writer) { w.writeU2(b.Utf8(sig)) })
}

func (b *Builder) SourceFileAttribute(name string) AttributeInfo {
	return b.attribute("SourceFile", func(w *writer) { w.writeU2(b.Utf8(name)) })
}

func (b *Builder) ConstantValueAttribute(index uint16) AttributeInfo {
	return b.attribute("ConstantValue", func(w *writer) { w.writeU2(index) })
}

func (b *Builder) DeprecatedAttribute() AttributeInfo {
	return b.attribute("Deprecated", func(*writer) {})
}

func (b *Builder) ExceptionsAttribute(classes ...string) AttributeInfo {
	return b.attribute("Exceptions", func(w *writer) {
		w.writeU2(uint16(len(classes)))
		for _, c := range classes {
			w.writeU2(b.Class(c))
		}
	})
}

// EnclosingMethodAttribute references a method by name and descriptor;
// an empty name records a class initializer or field context.
func (b *Builder) EnclosingMethodAttribute(class, name, descriptor string) AttributeInfo {
	return b.attribute("EnclosingMethod", func(w *writer) {
		w.writeU2(b.Class(class))
		if name == "" {
			w.writeU2(0)
			return
		}
		w.writeU2(b.NameAndType(name, descriptor))
	})
}

// InnerClass describes one InnerClasses entry by name. Outer and Name are
// empty for local and anonymous classes.
type InnerClass struct {
	Inner string
	Outer string
	Name  string
	Flags AccessFlags
}

func (b *Builder) InnerClassesAttribute(classes ...InnerClass) AttributeInfo {
	return b.attribute("InnerClasses", func(w *writer) {
		w.writeU2(uint16(len(classes)))
		for _, c := range classes {
			w.writeU2(b.Class(c.Inner))
			w.writeU2(b.optionalClass(c.Outer))
			w.writeU2(b.optionalUtf8(c.Name))
			w.writeU2(uint16(c.Flags))
		}
	})
}

func (b *Builder) MethodParametersAttribute(names ...string) AttributeInfo {
	return b.attribute("MethodParameters", func(w *writer) {
		w.writeU1(uint8(len(names)))
		for _, n := range names {
			w.writeU2(b.optionalUtf8(n))
			w.writeU2(0)
		}
	})
}

// LocalVariable is one LocalVariableTable entry covering the whole method.
type LocalVariable struct {
	Name       string
	Descriptor string
	Index      uint16
}

func (b *Builder) LocalVariableTableAttribute(vars ...LocalVariable) AttributeInfo {
	return b.attribute("LocalVariableTable", func(w *writer) {
		w.writeU2(uint16(len(vars)))
		for _, v := range vars {
			w.writeU2(0)
			w.writeU2(1)
			w.writeU2(b.Utf8(v.Name))
			w.writeU2(b.Utf8(v.Descriptor))
			w.writeU2(v.Index)
		}
	})
}

func (b *Builder) CodeAttribute(maxStack, maxLocals uint16, code []byte, attrs ...AttributeInfo) AttributeInfo {
	return b.attribute("Code", func(w *writer) {
		w.writeU2(maxStack)
		w.writeU2(maxLocals)
		w.writeU4(uint32(len(code)))
		w.writeBytes(code)
		w.writeU2(0)
		writeAttributes(w, attrs)
	})
}

// AnnotationSpec describes an annotation to encode. Type is a field
// descriptor such as "Ljava/lang/Deprecated;".
type AnnotationSpec struct {
	Type     string
	Elements []ElementSpec
}

// ElementSpec is a named annotation element. Value may be a string, bool,
// int, int32, int64, float64, EnumSpec, ClassLiteral, AnnotationSpec or
// []any of those.
type ElementSpec struct {
	Name  string
	Value any
}

type EnumSpec struct {
	Type  string
	Const string
}

// ClassLiteral is a return descriptor such as "Ljava/lang/String;".
type ClassLiteral string

func (b *Builder) AnnotationsAttribute(visible bool, anns ...AnnotationSpec) AttributeInfo {
	name := "RuntimeInvisibleAnnotations"
	if visible {
		name = "RuntimeVisibleAnnotations"
	}
	return b.attribute(name, func(w *writer) {
		b.writeAnnotations(w, anns)
	})
}

func (b *Builder) ParameterAnnotationsAttribute(visible bool, params ...[]AnnotationSpec) AttributeInfo {
	name := "RuntimeInvisibleParameterAnnotations"
	if visible {
		name = "RuntimeVisibleParameterAnnotations"
	}
	return b.attribute(name, func(w *writer) {
		w.writeU1(uint8(len(params)))
		for _, anns := range params {
			b.writeAnnotations(w, anns)
		}
	})
}

func (b *Builder) writeAnnotations(w *writer, anns []AnnotationSpec) {
	w.writeU2(uint16(len(anns)))
	for _, a := range anns {
		b.writeAnnotation(w, a)
	}
}

func (b *Builder) writeAnnotation(w *writer, a AnnotationSpec) {
	w.writeU2(b.Utf8(a.Type))
	w.writeU2(uint16(len(a.Elements)))
	for _, e := range a.Elements {
		w.writeU2(b.Utf8(e.Name))
		b.writeElementValue(w, e.Value)
	}
}

func (b *Builder) writeElementValue(w *writer, v any) {
	switch v := v.(type) {
	case string:
		w.writeU1('s')
		w.writeU2(b.Utf8(v))
	case bool:
		w.writeU1('Z')
		if v {
			w.writeU2(b.Integer(1))
		} else {
			w.writeU2(b.Integer(0))
		}
	case int:
		w.writeU1('I')
		w.writeU2(b.Integer(int32(v)))
	case int32:
		w.writeU1('I')
		w.writeU2(b.Integer(v))
	case int64:
		w.writeU1('J')
		w.writeU2(b.Long(v))
	case float64:
		w.writeU1('D')
		w.writeU2(b.Double(v))
	case EnumSpec:
		w.writeU1('e')
		w.writeU2(b.Utf8(v.Type))
		w.writeU2(b.Utf8(v.Const))
	case ClassLiteral:
		w.writeU1('c')
		w.writeU2(b.Utf8(string(v)))
	case AnnotationSpec:
		w.writeU1('@')
		b.writeAnnotation(w, v)
	case []any:
		w.writeU1('[')
		w.writeU2(uint16(len(v)))
		for _, elem := range v {
			b.writeElementValue(w, elem)
		}
	default:
		if w.err == nil {
			w.err = fmt.Errorf("unsupported annotation element %T", v)
		}
	}
}

func (b *Builder) optionalClass(name string) uint16 {
	if name == "" {
		return 0
	}
	return b.Class(name)
}

func (b *Builder) optionalUtf8(s string) uint16 {
	if s == "" {
		return 0
	}
	return b.Utf8(s)
}
