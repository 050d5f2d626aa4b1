// Package classfile reads and writes the JVM class file format.
//
// Parsing is structural only: constant pool indexes are kept as indexes and
// attributes are decoded into typed records without interpreting
// signatures or bytecode.
package classfile

import (
	"strings"
)

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo
}

// ClassName returns the binary name in internal form, e.g. "java/util/Map$Entry".
func (cf *ClassFile) ClassName() string {
	return cf.ConstantPool.GetClassName(cf.ThisClass)
}

// PackageName returns the dotted package name, e.g. "java.util".
func (cf *ClassFile) PackageName() string {
	name := cf.ClassName()
	i := strings.LastIndexByte(name, '/')
	if i < 0 {
		return ""
	}
	return strings.ReplaceAll(name[:i], "/", ".")
}

// SimpleName returns the binary name without its package, e.g. "Map$Entry".
func (cf *ClassFile) SimpleName() string {
	name := cf.ClassName()
	return name[strings.LastIndexByte(name, '/')+1:]
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.ConstantPool.GetClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.ConstantPool.GetClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsModule() bool {
	return cf.AccessFlags.IsModule()
}

func (cf *ClassFile) GetAttribute(name string) *AttributeInfo {
	return findAttribute(cf.ConstantPool, cf.Attributes, name)
}

// Signature returns the generic class signature, or "" when the class has
// no Signature attribute.
func (cf *ClassFile) Signature() string {
	return signatureOf(cf.ConstantPool, cf.Attributes)
}

// OwnInnerClassEntry returns the InnerClasses entry describing this class
// itself. Nested classes carry their declared modifiers (static, private,
// protected) there rather than in AccessFlags.
func (cf *ClassFile) OwnInnerClassEntry() *InnerClassEntry {
	ic := cf.GetAttribute("InnerClasses").AsInnerClasses()
	if ic == nil {
		return nil
	}
	for i := range ic.Classes {
		if ic.Classes[i].InnerClassInfoIndex == cf.ThisClass {
			return &ic.Classes[i]
		}
	}
	return nil
}

func findAttribute(cp ConstantPool, attrs []AttributeInfo, name string) *AttributeInfo {
	for i := range attrs {
		if cp.GetUtf8(attrs[i].NameIndex) == name {
			return &attrs[i]
		}
	}
	return nil
}

func signatureOf(cp ConstantPool, attrs []AttributeInfo) string {
	sig := findAttribute(cp, attrs, "Signature").AsSignature()
	if sig == nil {
		return ""
	}
	return cp.GetUtf8(sig.SignatureIndex)
}
