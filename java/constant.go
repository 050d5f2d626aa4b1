package java

import (
	"fmt"

	"github.com/dhamidi/javil/classfile"
)

// ConstantItem is a constant pool entry with its indexes dereferenced.
type ConstantItem interface {
	ConstantKind() string
}

type Utf8Constant struct{ Value string }
type IntegerConstant struct{ Value int32 }
type FloatConstant struct{ Value float32 }
type LongConstant struct{ Value int64 }
type DoubleConstant struct{ Value float64 }
type StringConstant struct{ Value string }

// ClassConstant names a class in internal form ("java/lang/String") or an
// array descriptor.
type ClassConstant struct{ Name string }

type NameAndTypeConstant struct {
	Name       string
	Descriptor string
}

// MemberRefConstant is a field, method or interface method reference;
// Kind tells which.
type MemberRefConstant struct {
	Kind       string
	Class      string
	Name       string
	Descriptor string
}

type MethodHandleConstant struct {
	ReferenceKind classfile.MethodHandleKind
	Reference     *MemberRefConstant
}

type MethodTypeConstant struct{ Descriptor string }

// DynamicConstant is a dynamically computed constant or call site; Kind is
// "Dynamic" or "InvokeDynamic".
type DynamicConstant struct {
	Kind           string
	BootstrapIndex uint16
	Name           string
	Descriptor     string
}

type ModuleConstant struct{ Name string }
type PackageConstant struct{ Name string }

func (Utf8Constant) ConstantKind() string         { return "Utf8" }
func (IntegerConstant) ConstantKind() string      { return "Integer" }
func (FloatConstant) ConstantKind() string        { return "Float" }
func (LongConstant) ConstantKind() string         { return "Long" }
func (DoubleConstant) ConstantKind() string       { return "Double" }
func (StringConstant) ConstantKind() string       { return "String" }
func (ClassConstant) ConstantKind() string        { return "Class" }
func (NameAndTypeConstant) ConstantKind() string  { return "NameAndType" }
func (c MemberRefConstant) ConstantKind() string  { return c.Kind }
func (MethodHandleConstant) ConstantKind() string { return "MethodHandle" }
func (MethodTypeConstant) ConstantKind() string   { return "MethodType" }
func (c DynamicConstant) ConstantKind() string    { return c.Kind }
func (ModuleConstant) ConstantKind() string       { return "Module" }
func (PackageConstant) ConstantKind() string      { return "Package" }

// constantFromPool converts the entry at index. Empty slots and indexes
// out of range are rejected with ErrUnsupportedInput.
func constantFromPool(cp classfile.ConstantPool, index uint16) (ConstantItem, error) {
	switch e := cp.Entry(index).(type) {
	case *classfile.ConstantUtf8Info:
		return Utf8Constant{Value: e.Value}, nil
	case *classfile.ConstantIntegerInfo:
		return IntegerConstant{Value: e.Value}, nil
	case *classfile.ConstantFloatInfo:
		return FloatConstant{Value: e.Value}, nil
	case *classfile.ConstantLongInfo:
		return LongConstant{Value: e.Value}, nil
	case *classfile.ConstantDoubleInfo:
		return DoubleConstant{Value: e.Value}, nil
	case *classfile.ConstantStringInfo:
		return StringConstant{Value: cp.GetUtf8(e.StringIndex)}, nil
	case *classfile.ConstantClassInfo:
		return ClassConstant{Name: cp.GetUtf8(e.NameIndex)}, nil
	case *classfile.ConstantNameAndTypeInfo:
		return NameAndTypeConstant{Name: cp.GetUtf8(e.NameIndex), Descriptor: cp.GetUtf8(e.DescriptorIndex)}, nil
	case *classfile.ConstantFieldrefInfo:
		return memberRef(cp, "FieldRef", e.ClassIndex, e.NameAndTypeIndex), nil
	case *classfile.ConstantMethodrefInfo:
		return memberRef(cp, "MethodRef", e.ClassIndex, e.NameAndTypeIndex), nil
	case *classfile.ConstantInterfaceMethodrefInfo:
		return memberRef(cp, "InterfaceMethodRef", e.ClassIndex, e.NameAndTypeIndex), nil
	case *classfile.ConstantMethodHandleInfo:
		ref, err := constantFromPool(cp, e.ReferenceIndex)
		if err != nil {
			return nil, err
		}
		member, ok := ref.(MemberRefConstant)
		if !ok {
			return nil, fmt.Errorf("%w: method handle referencing %s", ErrUnsupportedInput, ref.ConstantKind())
		}
		return MethodHandleConstant{ReferenceKind: e.ReferenceKind, Reference: &member}, nil
	case *classfile.ConstantMethodTypeInfo:
		return MethodTypeConstant{Descriptor: cp.GetUtf8(e.DescriptorIndex)}, nil
	case *classfile.ConstantDynamicInfo:
		name, desc := cp.GetNameAndType(e.NameAndTypeIndex)
		return DynamicConstant{Kind: "Dynamic", BootstrapIndex: e.BootstrapMethodAttrIndex, Name: name, Descriptor: desc}, nil
	case *classfile.ConstantInvokeDynamicInfo:
		name, desc := cp.GetNameAndType(e.NameAndTypeIndex)
		return DynamicConstant{Kind: "InvokeDynamic", BootstrapIndex: e.BootstrapMethodAttrIndex, Name: name, Descriptor: desc}, nil
	case *classfile.ConstantModuleInfo:
		return ModuleConstant{Name: cp.GetUtf8(e.NameIndex)}, nil
	case *classfile.ConstantPackageInfo:
		return PackageConstant{Name: cp.GetUtf8(e.NameIndex)}, nil
	case nil:
		return nil, fmt.Errorf("%w: no constant at index %d", ErrUnsupportedInput, index)
	default:
		return nil, fmt.Errorf("%w: constant %T", ErrUnsupportedInput, e)
	}
}

func memberRef(cp classfile.ConstantPool, kind string, class, nameAndType uint16) MemberRefConstant {
	name, desc := cp.GetNameAndType(nameAndType)
	return MemberRefConstant{Kind: kind, Class: cp.GetClassName(class), Name: name, Descriptor: desc}
}

// constantValue turns a ConstantValue item into the Go value of a field of
// type descriptor: booleans and chars are stored as ints in the pool.
func constantValue(item ConstantItem, descriptor string) any {
	switch c := item.(type) {
	case IntegerConstant:
		switch descriptor {
		case "Z":
			return c.Value != 0
		case "C":
			return rune(c.Value)
		}
		return c.Value
	case LongConstant:
		return c.Value
	case FloatConstant:
		return c.Value
	case DoubleConstant:
		return c.Value
	case StringConstant:
		return c.Value
	}
	return nil
}
