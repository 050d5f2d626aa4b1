package java

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/javil/classfile"
	"github.com/dhamidi/javil/signature"
)

// AddClassFileFromReader parses a class file and ingests it.
func (c *Container) AddClassFileFromReader(r io.Reader) (*TypeDefinition, error) {
	cf, err := classfile.Parse(r)
	if err != nil {
		return nil, err
	}
	return c.AddClassFile(cf)
}

// AddClassFile builds a TypeDefinition from cf and adds it to c.
//
// A nested class ("pkg/Outer$Inner") is attached to its declaring type,
// which must already be in c; feed class files ordered by nesting depth.
func (c *Container) AddClassFile(cf *classfile.ClassFile) (*TypeDefinition, error) {
	cp := cf.ConstantPool
	className := cf.ClassName()

	var td *TypeDefinition
	simple := cf.SimpleName()
	if i := strings.LastIndexByte(simple, '$'); i > 0 && i < len(simple)-1 {
		outerName := cf.PackageName() + "." + simple[:i]
		if cf.PackageName() == "" {
			outerName = simple[:i]
		}
		outer, ok := c.index[outerName]
		if !ok {
			return nil, fmt.Errorf("%w: %s for %s", ErrMissingDeclaringType, outerName, className)
		}
		td = NewTypeDefinition("", simple[i+1:], c, outer)
	} else {
		td = NewTypeDefinition(cf.PackageName(), simple, c, nil)
	}

	flags := cf.AccessFlags
	if own := cf.OwnInnerClassEntry(); own != nil {
		flags = own.InnerClassAccessFlags
		td.IsStatic = flags.IsStatic()
	}
	td.Kind = classKindFromAccessFlags(cf.AccessFlags, cf.SuperClassName())
	td.Visibility = visibilityFromAccessFlags(flags)
	td.IsAbstract = flags.IsAbstract()
	td.IsFinal = flags.IsFinal()
	td.IsSynthetic = cf.AccessFlags.IsSynthetic()

	attrs, err := attributesFromClassfile(cf.Attributes, cp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", className, err)
	}
	td.Attributes = attrs
	td.IsDeprecated = isDeprecated(attrs)
	if sf, ok := FindAttribute[*SourceFileAttribute](attrs); ok {
		td.SourceFileName = sf.FileName
	}

	if err := c.addSupertypes(td, cf); err != nil {
		return nil, fmt.Errorf("%s: %w", className, err)
	}

	for i := range cf.Fields {
		f, err := c.fieldFromClassfile(&cf.Fields[i], cp)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", className, cf.Fields[i].Name(cp), err)
		}
		td.AddField(f)
	}
	for i := range cf.Methods {
		mi := &cf.Methods[i]
		if mi.IsStaticInitializer(cp) {
			continue
		}
		m, err := c.methodFromClassfile(td, mi, cp)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", className, mi.Name(cp), err)
		}
		td.AddMethod(m)
	}

	c.AddType(td)
	return td, nil
}

func (c *Container) addSupertypes(td *TypeDefinition, cf *classfile.ClassFile) error {
	raw := cf.InterfaceNames()
	superclass := ""
	if name := cf.SuperClassName(); name != "" {
		superclass = "L" + name + ";"
	}
	interfaces := make([]string, len(raw))
	for i, name := range raw {
		interfaces[i] = "L" + name + ";"
	}

	if text := cf.Signature(); text != "" {
		sig, err := signature.ParseClassSignature(text)
		if err != nil {
			return err
		}
		gps, err := c.genericParameters(sig.TypeParameters, td)
		if err != nil {
			return err
		}
		td.GenericParameters = gps
		if sig.Superclass != "" {
			superclass = sig.Superclass
		}
		if len(sig.Interfaces) > 0 {
			if len(sig.Interfaces) != len(raw) {
				return fmt.Errorf("%w: signature lists %d, class file %d", ErrInterfaceMismatch, len(sig.Interfaces), len(raw))
			}
			interfaces = sig.Interfaces
		}
	}

	if superclass != "" {
		ref, err := CreateFromSignatureString(superclass, c)
		if err != nil {
			return err
		}
		td.BaseType = ref
	}
	for _, text := range interfaces {
		ref, err := CreateFromSignatureString(text, c)
		if err != nil {
			return err
		}
		td.AddInterface(ref)
	}
	return nil
}

func (c *Container) genericParameters(tps []signature.TypeParameter, declaring TypeReference) ([]*GenericParameter, error) {
	gps := make([]*GenericParameter, len(tps))
	for i, tp := range tps {
		gp := NewGenericParameter(tp.Name, c, declaring)
		if tp.ClassBound != "" {
			ref, err := CreateFromSignatureString(tp.ClassBound, c)
			if err != nil {
				return nil, err
			}
			gp.ClassBound = ref
		}
		for _, bound := range tp.InterfaceBounds {
			ref, err := CreateFromSignatureString(bound, c)
			if err != nil {
				return nil, err
			}
			gp.InterfaceBounds = append(gp.InterfaceBounds, ref)
		}
		gps[i] = gp
	}
	return gps, nil
}

func (c *Container) fieldFromClassfile(fi *classfile.FieldInfo, cp classfile.ConstantPool) (*FieldDefinition, error) {
	desc := fi.Descriptor(cp)
	text := fi.Signature(cp)
	if text == "" {
		text = desc
	}
	typ, err := CreateFromSignatureString(text, c)
	if err != nil {
		return nil, err
	}

	f := NewFieldDefinition(fi.Name(cp), typ)
	f.Visibility = visibilityFromAccessFlags(fi.AccessFlags)
	f.IsStatic = fi.AccessFlags.IsStatic()
	f.IsFinal = fi.AccessFlags.IsFinal()
	f.IsVolatile = fi.AccessFlags.IsVolatile()
	f.IsTransient = fi.AccessFlags.IsTransient()
	f.IsSynthetic = fi.AccessFlags.IsSynthetic()
	f.IsEnum = fi.AccessFlags.IsEnum()

	if f.Attributes, err = attributesFromClassfile(fi.Attributes, cp); err != nil {
		return nil, err
	}
	f.IsDeprecated = isDeprecated(f.Attributes)
	f.Nullability = nullabilityOf(Annotations(f.Attributes))
	if cv, ok := FindAttribute[*ConstantValueAttribute](f.Attributes); ok {
		f.Value = constantValue(cv.Value, desc)
	}
	return f, nil
}

func (c *Container) methodFromClassfile(td *TypeDefinition, mi *classfile.MethodInfo, cp classfile.ConstantPool) (*MethodDefinition, error) {
	name := mi.Name(cp)
	descParams, descReturn, err := signature.ParseMethodDescriptor(mi.Descriptor(cp))
	if err != nil {
		return nil, err
	}

	// javac leaves synthetic leading constructor parameters (the enclosing
	// instance, enum name and ordinal) out of generic signatures.
	synthetic := 0
	if name == "<init>" && !td.IsStatic && td.DeclaringDefinition() != nil && len(descParams) > 0 &&
		descParams[0] == td.DeclaringDefinition().JniFullNameGenericsErased() {
		synthetic = 1
	}

	params := descParams[synthetic:]
	ret := descReturn
	var throws []string
	var typeParams []signature.TypeParameter

	if text := mi.Signature(cp); text != "" {
		sig, err := signature.ParseMethodSignature(text)
		if err != nil {
			return nil, err
		}
		switch {
		case len(sig.Parameters) == len(params):
		case name == "<init>" && len(sig.Parameters) <= len(descParams):
			synthetic = len(descParams) - len(sig.Parameters)
		default:
			return nil, fmt.Errorf("%w: signature has %d, descriptor %d", ErrParameterMismatch, len(sig.Parameters), len(params))
		}
		params, ret, throws, typeParams = sig.Parameters, sig.Return, sig.Throws, sig.TypeParameters
	}

	retType, err := CreateFromSignatureString(ret, c)
	if err != nil {
		return nil, err
	}
	m := NewMethodDefinition(name, retType)
	m.DeclaringType = td
	if m.GenericParameters, err = c.genericParameters(typeParams, td); err != nil {
		return nil, err
	}

	flags := mi.AccessFlags
	m.Visibility = visibilityFromAccessFlags(flags)
	m.IsStatic = flags.IsStatic()
	m.IsAbstract = flags.IsAbstract()
	m.IsFinal = flags.IsFinal()
	m.IsNative = flags.IsNative()
	m.IsSynchronized = flags.IsSynchronized()
	m.IsBridge = flags.IsBridge()
	m.IsSynthetic = flags.IsSynthetic()
	m.IsVarargs = flags.IsVarargs()

	if m.Attributes, err = attributesFromClassfile(mi.Attributes, cp); err != nil {
		return nil, err
	}
	m.IsDeprecated = isDeprecated(m.Attributes)
	m.ReturnNullability = nullabilityOf(Annotations(m.Attributes))

	names := parameterNames(m, descParams)
	paramAnns := parameterAnnotations(m.Attributes, len(descParams))
	for i, text := range params {
		typ, err := CreateFromSignatureString(text, c)
		if err != nil {
			return nil, err
		}
		pname := names[synthetic+i]
		if pname == "" {
			pname = "p" + strconv.Itoa(i)
		}
		p := m.AddParameter(pname, typ)
		p.Nullability = nullabilityOf(paramAnns[synthetic+i])
	}

	if len(throws) == 0 {
		if ex, ok := FindAttribute[*ExceptionsAttribute](m.Attributes); ok {
			for _, name := range ex.Exceptions {
				throws = append(throws, "L"+name+";")
			}
		}
	}
	for _, text := range throws {
		ref, err := CreateFromSignatureString(text, c)
		if err != nil {
			return nil, err
		}
		m.CheckedExceptions = append(m.CheckedExceptions, ref)
	}
	return m, nil
}

// parameterNames returns a name per descriptor parameter, from the
// MethodParameters attribute, else from the local variable table. Unknown
// names are left empty.
func parameterNames(m *MethodDefinition, descParams []string) []string {
	names := make([]string, len(descParams))
	if mp, ok := FindAttribute[*MethodParametersAttribute](m.Attributes); ok && len(mp.Parameters) == len(descParams) {
		for i, p := range mp.Parameters {
			names[i] = p.Name
		}
		return names
	}

	code, ok := FindAttribute[*CodeAttribute](m.Attributes)
	if !ok {
		return names
	}
	lvt, ok := FindAttribute[*LocalVariableTableAttribute](code.Attributes)
	if !ok {
		return names
	}
	bySlot := make(map[uint16]string, len(lvt.Variables))
	for _, v := range lvt.Variables {
		if _, seen := bySlot[v.Index]; !seen {
			bySlot[v.Index] = v.Name
		}
	}
	slot := uint16(0)
	if !m.IsStatic {
		slot = 1
	}
	for i, p := range descParams {
		names[i] = bySlot[slot]
		slot++
		if p == "J" || p == "D" {
			slot++
		}
	}
	return names
}

// parameterAnnotations returns the annotations of each of n descriptor
// parameters. javac may omit synthetic leading parameters from the
// attribute, so its entries are aligned to the end.
func parameterAnnotations(attrs []Attribute, n int) [][]Annotation {
	result := make([][]Annotation, n)
	for _, a := range attrs {
		pa, ok := a.(*ParameterAnnotationsAttribute)
		if !ok {
			continue
		}
		offset := n - len(pa.Parameters)
		for i, anns := range pa.Parameters {
			if j := offset + i; j >= 0 && j < n {
				result[j] = append(result[j], anns...)
			}
		}
	}
	return result
}
