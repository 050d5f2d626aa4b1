package classfile

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

type ConstantIntegerInfo struct {
	Value int32
}

type ConstantFloatInfo struct {
	Value float32
}

type ConstantLongInfo struct {
	Value int64
}

type ConstantDoubleInfo struct {
	Value float64
}

type ConstantClassInfo struct {
	NameIndex uint16
}

type ConstantStringInfo struct {
	StringIndex uint16
}

type ConstantFieldrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type ConstantMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type ConstantInterfaceMethodrefInfo struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

type ConstantNameAndTypeInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

type ConstantMethodHandleInfo struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

type ConstantMethodTypeInfo struct {
	DescriptorIndex uint16
}

type ConstantDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

type ConstantInvokeDynamicInfo struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

type ConstantModuleInfo struct {
	NameIndex uint16
}

type ConstantPackageInfo struct {
	NameIndex uint16
}

func (c *ConstantUtf8Info) Tag() ConstantTag               { return ConstantUtf8 }
func (c *ConstantIntegerInfo) Tag() ConstantTag            { return ConstantInteger }
func (c *ConstantFloatInfo) Tag() ConstantTag              { return ConstantFloat }
func (c *ConstantLongInfo) Tag() ConstantTag               { return ConstantLong }
func (c *ConstantDoubleInfo) Tag() ConstantTag             { return ConstantDouble }
func (c *ConstantClassInfo) Tag() ConstantTag              { return ConstantClass }
func (c *ConstantStringInfo) Tag() ConstantTag             { return ConstantString }
func (c *ConstantFieldrefInfo) Tag() ConstantTag           { return ConstantFieldref }
func (c *ConstantMethodrefInfo) Tag() ConstantTag          { return ConstantMethodref }
func (c *ConstantInterfaceMethodrefInfo) Tag() ConstantTag { return ConstantInterfaceMethodref }
func (c *ConstantNameAndTypeInfo) Tag() ConstantTag        { return ConstantNameAndType }
func (c *ConstantMethodHandleInfo) Tag() ConstantTag       { return ConstantMethodHandle }
func (c *ConstantMethodTypeInfo) Tag() ConstantTag         { return ConstantMethodType }
func (c *ConstantDynamicInfo) Tag() ConstantTag            { return ConstantDynamic }
func (c *ConstantInvokeDynamicInfo) Tag() ConstantTag      { return ConstantInvokeDynamic }
func (c *ConstantModuleInfo) Tag() ConstantTag             { return ConstantModule }
func (c *ConstantPackageInfo) Tag() ConstantTag            { return ConstantPackage }

// ConstantPool is indexed from 1 as in the class file; entry i lives at
// cp[i-1]. The slot following a Long or Double entry is nil.
type ConstantPool []ConstantPoolEntry

// Entry returns the entry at a 1-based index, or nil when the index is out
// of range or refers to an unusable slot.
func (cp ConstantPool) Entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) > len(cp) {
		return nil
	}
	return cp[index-1]
}

func entryAs[T ConstantPoolEntry](cp ConstantPool, index uint16) (T, bool) {
	e, ok := cp.Entry(index).(T)
	return e, ok
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if e, ok := entryAs[*ConstantUtf8Info](cp, index); ok {
		return e.Value
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if e, ok := entryAs[*ConstantClassInfo](cp, index); ok {
		return cp.GetUtf8(e.NameIndex)
	}
	return ""
}

func (cp ConstantPool) GetNameAndType(index uint16) (name, descriptor string) {
	if e, ok := entryAs[*ConstantNameAndTypeInfo](cp, index); ok {
		return cp.GetUtf8(e.NameIndex), cp.GetUtf8(e.DescriptorIndex)
	}
	return "", ""
}

func (cp ConstantPool) GetString(index uint16) string {
	if e, ok := entryAs[*ConstantStringInfo](cp, index); ok {
		return cp.GetUtf8(e.StringIndex)
	}
	return ""
}
