package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf16"
)

type writer struct {
	w   io.Writer
	err error
}

func (w *writer) writeU1(v uint8) {
	w.writeBytes([]byte{v})
}

func (w *writer) writeU2(v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	w.writeBytes(buf[:])
}

func (w *writer) writeU4(v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	w.writeBytes(buf[:])
}

func (w *writer) writeBytes(b []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(b)
}

// Write serializes cf. Attributes are written from their raw Info bytes;
// Parsed is ignored.
func Write(out io.Writer, cf *ClassFile) error {
	w := &writer{w: out}

	w.writeU4(Magic)
	w.writeU2(cf.MinorVersion)
	w.writeU2(cf.MajorVersion)

	w.writeU2(uint16(len(cf.ConstantPool) + 1))
	for i, entry := range cf.ConstantPool {
		if entry == nil {
			continue
		}
		if err := writeConstantPoolEntry(w, entry); err != nil {
			return fmt.Errorf("failed to write constant pool entry %d: %w", i+1, err)
		}
	}

	w.writeU2(uint16(cf.AccessFlags))
	w.writeU2(cf.ThisClass)
	w.writeU2(cf.SuperClass)
	w.writeU2(uint16(len(cf.Interfaces)))
	for _, idx := range cf.Interfaces {
		w.writeU2(idx)
	}

	w.writeU2(uint16(len(cf.Fields)))
	for _, f := range cf.Fields {
		writeMember(w, f.AccessFlags, f.NameIndex, f.DescriptorIndex, f.Attributes)
	}
	w.writeU2(uint16(len(cf.Methods)))
	for _, m := range cf.Methods {
		writeMember(w, m.AccessFlags, m.NameIndex, m.DescriptorIndex, m.Attributes)
	}
	writeAttributes(w, cf.Attributes)

	return w.err
}

func writeMember(w *writer, flags AccessFlags, name, desc uint16, attrs []AttributeInfo) {
	w.writeU2(uint16(flags))
	w.writeU2(name)
	w.writeU2(desc)
	writeAttributes(w, attrs)
}

func writeAttributes(w *writer, attrs []AttributeInfo) {
	w.writeU2(uint16(len(attrs)))
	for _, a := range attrs {
		w.writeU2(a.NameIndex)
		w.writeU4(uint32(len(a.Info)))
		w.writeBytes(a.Info)
	}
}

func writeConstantPoolEntry(w *writer, entry ConstantPoolEntry) error {
	w.writeU1(uint8(entry.Tag()))

	switch e := entry.(type) {
	case *ConstantUtf8Info:
		b := encodeModifiedUtf8(e.Value)
		if len(b) > math.MaxUint16 {
			return fmt.Errorf("utf8 constant too long: %d bytes", len(b))
		}
		w.writeU2(uint16(len(b)))
		w.writeBytes(b)
	case *ConstantIntegerInfo:
		w.writeU4(uint32(e.Value))
	case *ConstantFloatInfo:
		w.writeU4(math.Float32bits(e.Value))
	case *ConstantLongInfo:
		w.writeU4(uint32(uint64(e.Value) >> 32))
		w.writeU4(uint32(e.Value))
	case *ConstantDoubleInfo:
		bits := math.Float64bits(e.Value)
		w.writeU4(uint32(bits >> 32))
		w.writeU4(uint32(bits))
	case *ConstantClassInfo:
		w.writeU2(e.NameIndex)
	case *ConstantStringInfo:
		w.writeU2(e.StringIndex)
	case *ConstantFieldrefInfo:
		w.writeU2(e.ClassIndex)
		w.writeU2(e.NameAndTypeIndex)
	case *ConstantMethodrefInfo:
		w.writeU2(e.ClassIndex)
		w.writeU2(e.NameAndTypeIndex)
	case *ConstantInterfaceMethodrefInfo:
		w.writeU2(e.ClassIndex)
		w.writeU2(e.NameAndTypeIndex)
	case *ConstantNameAndTypeInfo:
		w.writeU2(e.NameIndex)
		w.writeU2(e.DescriptorIndex)
	case *ConstantMethodHandleInfo:
		w.writeU1(uint8(e.ReferenceKind))
		w.writeU2(e.ReferenceIndex)
	case *ConstantMethodTypeInfo:
		w.writeU2(e.DescriptorIndex)
	case *ConstantDynamicInfo:
		w.writeU2(e.BootstrapMethodAttrIndex)
		w.writeU2(e.NameAndTypeIndex)
	case *ConstantInvokeDynamicInfo:
		w.writeU2(e.BootstrapMethodAttrIndex)
		w.writeU2(e.NameAndTypeIndex)
	case *ConstantModuleInfo:
		w.writeU2(e.NameIndex)
	case *ConstantPackageInfo:
		w.writeU2(e.NameIndex)
	default:
		return fmt.Errorf("unknown constant pool entry %T", entry)
	}
	return w.err
}

func encodeModifiedUtf8(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, u := range utf16.Encode([]rune(s)) {
		switch {
		case u != 0 && u < 0x80:
			out = append(out, byte(u))
		case u < 0x800:
			out = append(out, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
		default:
			out = append(out, 0xE0|byte(u>>12), 0x80|byte(u>>6&0x3F), 0x80|byte(u&0x3F))
		}
	}
	return out
}
