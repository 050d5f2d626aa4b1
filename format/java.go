package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/javil/java"
)

// JavaEncoder renders a type as a Java stub: declarations with empty bodies.
type JavaEncoder struct {
	w  io.Writer
	td *java.TypeDefinition
}

func NewJavaEncoder(w io.Writer) *JavaEncoder {
	return &JavaEncoder{w: w}
}

func (e *JavaEncoder) Encode(td *java.TypeDefinition) error {
	e.td = td
	return encode(e.w, e)
}

func (e *JavaEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	if pkg := e.td.Namespace(); pkg != "" {
		sb.WriteString("package ")
		sb.WriteString(pkg)
		sb.WriteString(";\n\n")
	}
	writeType(&sb, e.td, "")
	return []byte(sb.String()), nil
}

func writeType(sb *strings.Builder, td *java.TypeDefinition, indent string) {
	writeAnnotations(sb, java.Annotations(td.Attributes), indent)
	sb.WriteString(indent)
	sb.WriteString(Declaration(td))
	sb.WriteString(" {\n")

	inner := indent + "    "
	var constants, fields []*java.FieldDefinition
	for _, f := range td.Fields {
		switch {
		case f.IsSynthetic:
		case f.IsEnum && td.Kind == java.ClassKindEnum:
			constants = append(constants, f)
		default:
			fields = append(fields, f)
		}
	}

	for i, f := range constants {
		sb.WriteString(inner)
		sb.WriteString(f.Name)
		if i < len(constants)-1 {
			sb.WriteString(",\n")
		} else {
			sb.WriteString(";\n")
		}
	}
	if len(constants) > 0 {
		sb.WriteString("\n")
	}

	for _, f := range fields {
		writeAnnotations(sb, java.Annotations(f.Attributes), inner)
		sb.WriteString(inner)
		sb.WriteString(FieldDeclaration(f))
		sb.WriteString(";\n")
	}
	if len(fields) > 0 {
		sb.WriteString("\n")
	}

	first := true
	for _, m := range td.Methods {
		if m.IsSynthetic || m.IsBridge {
			continue
		}
		if !first {
			sb.WriteString("\n")
		}
		first = false
		writeAnnotations(sb, java.Annotations(m.Attributes), inner)
		sb.WriteString(inner)
		sb.WriteString(MethodDeclaration(m))
		if m.IsAbstract || m.IsNative {
			sb.WriteString(";\n")
		} else {
			sb.WriteString(" { }\n")
		}
	}

	for _, nested := range td.NestedTypes {
		if nested.IsSynthetic {
			continue
		}
		sb.WriteString("\n")
		writeType(sb, nested, inner)
	}

	sb.WriteString(indent)
	sb.WriteString("}\n")
}

// Declaration renders the head of a type declaration without annotations,
// e.g. "public final class String implements java.lang.Comparable<java.lang.String>".
func Declaration(td *java.TypeDefinition) string {
	var sb strings.Builder
	writeVisibility(&sb, td.Visibility)
	if td.IsStatic {
		sb.WriteString("static ")
	}
	if td.IsAbstract && !td.IsInterface() {
		sb.WriteString("abstract ")
	}
	if td.IsFinal && td.Kind == java.ClassKindClass {
		sb.WriteString("final ")
	}

	switch td.Kind {
	case java.ClassKindAnnotation:
		sb.WriteString("@interface ")
	case java.ClassKindEnum:
		sb.WriteString("enum ")
	case java.ClassKindRecord:
		sb.WriteString("record ")
	case java.ClassKindInterface:
		sb.WriteString("interface ")
	case java.ClassKindModule:
		sb.WriteString("module ")
	default:
		sb.WriteString("class ")
	}

	sb.WriteString(td.Name())
	writeTypeParameters(&sb, td.GenericParameters)

	if base := visibleBaseType(td); base != nil {
		sb.WriteString(" extends ")
		sb.WriteString(base.FullName())
	}
	if ifaces := visibleInterfaces(td); len(ifaces) > 0 {
		if td.IsInterface() {
			sb.WriteString(" extends ")
		} else {
			sb.WriteString(" implements ")
		}
		sb.WriteString(strings.Join(ifaces, ", "))
	}
	return sb.String()
}

// FieldDeclaration renders a field with its constant value, if any.
func FieldDeclaration(f *java.FieldDefinition) string {
	var sb strings.Builder
	writeVisibility(&sb, f.Visibility)
	if f.IsStatic {
		sb.WriteString("static ")
	}
	if f.IsFinal {
		sb.WriteString("final ")
	}
	if f.IsVolatile {
		sb.WriteString("volatile ")
	}
	if f.IsTransient {
		sb.WriteString("transient ")
	}
	sb.WriteString(f.FieldType.FullName())
	sb.WriteString(" ")
	sb.WriteString(f.Name)
	if f.Value != nil {
		sb.WriteString(" = ")
		sb.WriteString(constantLiteral(f.Value, f.FieldType.FullName()))
	}
	return sb.String()
}

// MethodDeclaration renders a method head, e.g.
// "public <T> T identity(T p0) throws java.io.IOException".
func MethodDeclaration(m *java.MethodDefinition) string {
	var sb strings.Builder
	inInterface := m.DeclaringType != nil && m.DeclaringType.IsInterface()

	if !inInterface || m.Visibility != java.VisibilityPublic {
		writeVisibility(&sb, m.Visibility)
	}
	if m.IsDefault() {
		sb.WriteString("default ")
	}
	if m.IsStatic {
		sb.WriteString("static ")
	}
	if m.IsFinal {
		sb.WriteString("final ")
	}
	if m.IsAbstract && !inInterface {
		sb.WriteString("abstract ")
	}
	if m.IsSynchronized {
		sb.WriteString("synchronized ")
	}
	if m.IsNative {
		sb.WriteString("native ")
	}
	if len(m.GenericParameters) > 0 {
		writeTypeParameters(&sb, m.GenericParameters)
		sb.WriteString(" ")
	}

	if m.IsConstructor() && m.DeclaringType != nil {
		sb.WriteString(m.DeclaringType.Name())
	} else {
		sb.WriteString(m.ReturnType.FullName())
		sb.WriteString(" ")
		sb.WriteString(m.Name)
	}

	sb.WriteString("(")
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		typ := p.ParameterType.FullName()
		if m.IsVarargs && i == len(m.Parameters)-1 && strings.HasSuffix(typ, "[]") {
			typ = strings.TrimSuffix(typ, "[]") + "..."
		}
		sb.WriteString(typ)
		if p.Name != "" {
			sb.WriteString(" ")
			sb.WriteString(p.Name)
		}
	}
	sb.WriteString(")")

	if len(m.CheckedExceptions) > 0 {
		sb.WriteString(" throws ")
		sb.WriteString(strings.Join(typeNames(m.CheckedExceptions), ", "))
	}
	return sb.String()
}

func writeVisibility(sb *strings.Builder, v java.Visibility) {
	if v != java.VisibilityPackage {
		sb.WriteString(string(v))
		sb.WriteString(" ")
	}
}

func writeTypeParameters(sb *strings.Builder, gps []*java.GenericParameter) {
	if len(gps) == 0 {
		return
	}
	sb.WriteString("<")
	for i, gp := range gps {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(gp.Name())
		if bounds := typeParameterBounds(gp); len(bounds) > 0 {
			sb.WriteString(" extends ")
			sb.WriteString(strings.Join(bounds, " & "))
		}
	}
	sb.WriteString(">")
}

// typeParameterBounds lists the declared bounds, leaving out a lone
// java.lang.Object.
func typeParameterBounds(gp *java.GenericParameter) []string {
	var bounds []string
	if gp.ClassBound != nil && (gp.ClassBound.FullName() != "java.lang.Object" || len(gp.InterfaceBounds) > 0) {
		bounds = append(bounds, gp.ClassBound.FullName())
	}
	return append(bounds, typeNames(gp.InterfaceBounds)...)
}

func writeAnnotations(sb *strings.Builder, anns []java.Annotation, indent string) {
	for _, a := range anns {
		sb.WriteString(indent)
		sb.WriteString(annotationString(a))
		sb.WriteString("\n")
	}
}

func annotationString(a java.Annotation) string {
	var sb strings.Builder
	sb.WriteString("@")
	sb.WriteString(a.TypeName())
	if len(a.Elements) > 0 {
		sb.WriteString("(")
		for i, el := range a.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			if len(a.Elements) > 1 || el.Name != "value" {
				sb.WriteString(el.Name)
				sb.WriteString(" = ")
			}
			sb.WriteString(elementValueString(el.Value))
		}
		sb.WriteString(")")
	}
	return sb.String()
}

func elementValueString(v java.ElementValue) string {
	switch v := v.(type) {
	case java.ConstantElementValue:
		return constantElementString(v)
	case java.EnumElementValue:
		return descriptorName(v.Type) + "." + v.Const
	case java.ClassElementValue:
		return descriptorName(v.Descriptor) + ".class"
	case java.AnnotationElementValue:
		return annotationString(v.Annotation)
	case java.ArrayElementValue:
		parts := make([]string, len(v.Values))
		for i, elem := range v.Values {
			parts[i] = elementValueString(elem)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "?"
}

func constantElementString(v java.ConstantElementValue) string {
	switch c := v.Value.(type) {
	case java.Utf8Constant:
		return strconv.Quote(c.Value)
	case java.StringConstant:
		return strconv.Quote(c.Value)
	case java.IntegerConstant:
		switch v.Tag {
		case 'Z':
			return strconv.FormatBool(c.Value != 0)
		case 'C':
			return strconv.QuoteRune(rune(c.Value))
		}
		return strconv.FormatInt(int64(c.Value), 10)
	case java.LongConstant:
		return strconv.FormatInt(c.Value, 10) + "L"
	case java.FloatConstant:
		return strconv.FormatFloat(float64(c.Value), 'g', -1, 32) + "f"
	case java.DoubleConstant:
		return strconv.FormatFloat(c.Value, 'g', -1, 64)
	}
	return "?"
}

// constantLiteral renders a field's constant value for a field of type typ.
func constantLiteral(v any, typ string) string {
	switch v := v.(type) {
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int32:
		if typ == "char" {
			return strconv.QuoteRune(v)
		}
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10) + "L"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "?"
}

var primitiveDescriptors = map[string]string{
	"B": "byte", "C": "char", "D": "double", "F": "float", "I": "int",
	"J": "long", "S": "short", "V": "void", "Z": "boolean",
}

// descriptorName turns a field descriptor such as "Ljava/lang/String;" or
// "[I" into its source spelling.
func descriptorName(desc string) string {
	rank := 0
	for strings.HasPrefix(desc, "[") {
		desc = desc[1:]
		rank++
	}
	name := desc
	if p, ok := primitiveDescriptors[desc]; ok {
		name = p
	} else if strings.HasPrefix(desc, "L") && strings.HasSuffix(desc, ";") {
		name = strings.ReplaceAll(desc[1:len(desc)-1], "/", ".")
	}
	return name + strings.Repeat("[]", rank)
}
