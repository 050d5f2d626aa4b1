// Package format renders type definitions as text.
package format

import (
	"encoding"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javil/java"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(td *java.TypeDefinition) error
}

// Names lists the formats NewEncoder accepts.
var Names = []string{"line", "json", "yaml", "java"}

func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "line":
		return NewLineEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "yaml":
		return NewYAMLEncoder(w), nil
	case "java":
		return NewJavaEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s (expected %s)", name, strings.Join(Names, ", "))
}

// encode is the shared Encode body: remember td, marshal, write.
func encode(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}

func typeModifiers(td *java.TypeDefinition) []string {
	var mods []string
	if td.IsStatic {
		mods = append(mods, "static")
	}
	if td.IsFinal {
		mods = append(mods, "final")
	}
	if td.IsAbstract && !td.IsInterface() {
		mods = append(mods, "abstract")
	}
	if td.IsSynthetic {
		mods = append(mods, "synthetic")
	}
	if td.IsDeprecated {
		mods = append(mods, "deprecated")
	}
	return mods
}

func fieldModifiers(f *java.FieldDefinition) []string {
	var mods []string
	if f.IsStatic {
		mods = append(mods, "static")
	}
	if f.IsFinal {
		mods = append(mods, "final")
	}
	if f.IsVolatile {
		mods = append(mods, "volatile")
	}
	if f.IsTransient {
		mods = append(mods, "transient")
	}
	if f.IsSynthetic {
		mods = append(mods, "synthetic")
	}
	if f.IsEnum {
		mods = append(mods, "enum")
	}
	if f.IsDeprecated {
		mods = append(mods, "deprecated")
	}
	return mods
}

func methodModifiers(m *java.MethodDefinition) []string {
	var mods []string
	if m.IsStatic {
		mods = append(mods, "static")
	}
	if m.IsFinal {
		mods = append(mods, "final")
	}
	if m.IsAbstract {
		mods = append(mods, "abstract")
	}
	if m.IsSynchronized {
		mods = append(mods, "synchronized")
	}
	if m.IsNative {
		mods = append(mods, "native")
	}
	if m.IsBridge {
		mods = append(mods, "bridge")
	}
	if m.IsVarargs {
		mods = append(mods, "varargs")
	}
	if m.IsSynthetic {
		mods = append(mods, "synthetic")
	}
	if m.IsDefault() {
		mods = append(mods, "default")
	}
	if m.IsDeprecated {
		mods = append(mods, "deprecated")
	}
	return mods
}

// visibleBaseType returns the base type worth printing: nothing for
// interfaces and for the implicit bases of classes, enums and records.
func visibleBaseType(td *java.TypeDefinition) java.TypeReference {
	if td.BaseType == nil || td.IsInterface() {
		return nil
	}
	switch td.BaseType.FullNameGenericsErased() {
	case "java.lang.Object", "java.lang.Record", "java.lang.Enum":
		return nil
	}
	return td.BaseType
}

// visibleInterfaces drops the implicit Annotation super-interface of
// annotation types.
func visibleInterfaces(td *java.TypeDefinition) []string {
	var names []string
	for _, ii := range td.ImplementedInterfaces {
		name := ii.InterfaceType.FullName()
		if td.Kind == java.ClassKindAnnotation && name == "java.lang.annotation.Annotation" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func typeNames(refs []java.TypeReference) []string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.FullName()
	}
	return names
}
