package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javil/java"
)

// LineEncoder writes one tab-separated line per type, supertype, field and
// method. Nested types follow their declaring type.
type LineEncoder struct {
	w  io.Writer
	td *java.TypeDefinition
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(td *java.TypeDefinition) error {
	e.td = td
	return encode(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	writeLines(&sb, e.td)
	return []byte(sb.String()), nil
}

func writeLines(sb *strings.Builder, td *java.TypeDefinition) {
	mods := append([]string{string(td.Visibility)}, typeModifiers(td)...)
	fmt.Fprintf(sb, "%s\t%s\t%s\n", td.Kind, td.FullName(), strings.Join(mods, ","))

	if base := visibleBaseType(td); base != nil {
		fmt.Fprintf(sb, "extends\t%s\n", base.FullName())
	}
	for _, iface := range visibleInterfaces(td) {
		fmt.Fprintf(sb, "implements\t%s\n", iface)
	}

	for _, f := range td.Fields {
		fmt.Fprintf(sb, "field\t%s\t%s\t%s\t%s\n",
			f.Name,
			f.FieldType.FullName(),
			f.Visibility,
			joinModifiers(fieldModifiers(f)),
		)
	}

	for _, m := range td.Methods {
		fmt.Fprintf(sb, "method\t%s\t%s\t%s\t%s\t%s\n",
			m.GenericName(),
			m.ReturnType.FullName(),
			parametersStr(m.Parameters),
			m.Visibility,
			joinModifiers(methodModifiers(m)),
		)
	}

	for _, nested := range td.NestedTypes {
		writeLines(sb, nested)
	}
}

func joinModifiers(mods []string) string {
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func parametersStr(params []*java.ParameterDefinition) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.ParameterType.FullName()
	}
	return strings.Join(parts, ",")
}
