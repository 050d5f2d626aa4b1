package classfile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf16"
)

// ErrNotClassFile is returned when the input does not start with the class
// file magic number.
var ErrNotClassFile = errors.New("classfile: not a class file")

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("%w: magic 0x%X", ErrNotClassFile, magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}

	constantPoolCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read header: %w", r.err)
	}
	if constantPoolCount == 0 {
		return nil, fmt.Errorf("%w: empty constant pool", ErrNotClassFile)
	}

	cf.ConstantPool = make(ConstantPool, constantPoolCount-1)
	for i := uint16(1); i < constantPoolCount; i++ {
		entry, err := readConstantPoolEntry(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		cf.ConstantPool[i-1] = entry
		// The slot after a wide entry stays nil.
		if entry.Tag().Wide() {
			i++
		}
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()
	cf.Interfaces = make([]uint16, r.readU2())
	for i := range cf.Interfaces {
		cf.Interfaces[i] = r.readU2()
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}

	cf.Fields = make([]FieldInfo, r.readU2())
	for i := range cf.Fields {
		flags, name, desc, attrs, err := readMember(r, cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
		cf.Fields[i] = FieldInfo{AccessFlags: flags, NameIndex: name, DescriptorIndex: desc, Attributes: attrs}
	}

	cf.Methods = make([]MethodInfo, r.readU2())
	for i := range cf.Methods {
		flags, name, desc, attrs, err := readMember(r, cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
		cf.Methods[i] = MethodInfo{AccessFlags: flags, NameIndex: name, DescriptorIndex: desc, Attributes: attrs}
	}

	attrs, err := readAttributes(r, cf.ConstantPool)
	if err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", err)
	}
	cf.Attributes = attrs

	return cf, nil
}

func readMember(r *reader, cp ConstantPool) (flags AccessFlags, name, desc uint16, attrs []AttributeInfo, err error) {
	flags = AccessFlags(r.readU2())
	name = r.readU2()
	desc = r.readU2()
	attrs, err = readAttributes(r, cp)
	return
}

func readConstantPoolEntry(r *reader) (ConstantPoolEntry, error) {
	tag := ConstantTag(r.readU1())

	var entry ConstantPoolEntry
	switch tag {
	case ConstantUtf8:
		entry = &ConstantUtf8Info{Value: decodeModifiedUtf8(r.readBytes(int(r.readU2())))}
	case ConstantInteger:
		entry = &ConstantIntegerInfo{Value: int32(r.readU4())}
	case ConstantFloat:
		entry = &ConstantFloatInfo{Value: math.Float32frombits(r.readU4())}
	case ConstantLong:
		high, low := r.readU4(), r.readU4()
		entry = &ConstantLongInfo{Value: int64(uint64(high)<<32 | uint64(low))}
	case ConstantDouble:
		high, low := r.readU4(), r.readU4()
		entry = &ConstantDoubleInfo{Value: math.Float64frombits(uint64(high)<<32 | uint64(low))}
	case ConstantClass:
		entry = &ConstantClassInfo{NameIndex: r.readU2()}
	case ConstantString:
		entry = &ConstantStringInfo{StringIndex: r.readU2()}
	case ConstantFieldref:
		entry = &ConstantFieldrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantMethodref:
		entry = &ConstantMethodrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantInterfaceMethodref:
		entry = &ConstantInterfaceMethodrefInfo{ClassIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantNameAndType:
		entry = &ConstantNameAndTypeInfo{NameIndex: r.readU2(), DescriptorIndex: r.readU2()}
	case ConstantMethodHandle:
		entry = &ConstantMethodHandleInfo{ReferenceKind: MethodHandleKind(r.readU1()), ReferenceIndex: r.readU2()}
	case ConstantMethodType:
		entry = &ConstantMethodTypeInfo{DescriptorIndex: r.readU2()}
	case ConstantDynamic:
		entry = &ConstantDynamicInfo{BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantInvokeDynamic:
		entry = &ConstantInvokeDynamicInfo{BootstrapMethodAttrIndex: r.readU2(), NameAndTypeIndex: r.readU2()}
	case ConstantModule:
		entry = &ConstantModuleInfo{NameIndex: r.readU2()}
	case ConstantPackage:
		entry = &ConstantPackageInfo{NameIndex: r.readU2()}
	default:
		if r.err == nil {
			return nil, fmt.Errorf("unknown constant pool tag: %s", tag)
		}
	}

	if r.err != nil {
		return nil, r.err
	}
	return entry, nil
}

// decodeModifiedUtf8 decodes the JVM's modified UTF-8: NUL is encoded in two
// bytes and supplementary characters as surrogate pairs of three bytes each.
func decodeModifiedUtf8(b []byte) string {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			units = append(units, uint16(c))
			i++
		}
	}
	return string(utf16.Decode(units))
}
