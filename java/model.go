package java

import "github.com/dhamidi/javil/classfile"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
	ClassKindRecord     ClassKind = "record"
	ClassKindModule     ClassKind = "module"
	ClassKindPrimitive  ClassKind = "primitive"
)

func visibilityFromAccessFlags(flags classfile.AccessFlags) Visibility {
	if flags.IsPublic() {
		return VisibilityPublic
	}
	if flags.IsProtected() {
		return VisibilityProtected
	}
	if flags.IsPrivate() {
		return VisibilityPrivate
	}
	return VisibilityPackage
}

func classKindFromAccessFlags(flags classfile.AccessFlags, superName string) ClassKind {
	switch {
	case flags.Has(classfile.AccInterface | classfile.AccAnnotation):
		return ClassKindAnnotation
	case flags.IsModule():
		return ClassKindModule
	case flags.IsInterface():
		return ClassKindInterface
	case flags.IsEnum():
		return ClassKindEnum
	case superName == "java/lang/Record":
		return ClassKindRecord
	}
	return ClassKindClass
}

// Nullability records whether a field, return value or parameter is
// annotated as never null.
type Nullability string

const (
	NullabilityOblivious Nullability = "oblivious"
	NullabilityNotNull   Nullability = "notnull"
)

// notNullAnnotations are the annotation types understood as "never null".
var notNullAnnotations = map[string]bool{
	"android.annotation.NonNull":              true,
	"androidx.annotation.NonNull":             true,
	"androidx.annotation.RecentlyNonNull":     true,
	"javax.validation.constraints.NotNull":    true,
	"edu.umd.cs.findbugs.annotations.NonNull": true,
	"javax.annotation.Nonnull":                true,
	"org.jetbrains.annotations.NotNull":       true,
	"lombok.NonNull":                          true,
	"android.support.annotation.NonNull":      true,
	"org.eclipse.jdt.annotation.NonNull":      true,
}

func nullabilityOf(annotations ...[]Annotation) Nullability {
	for _, anns := range annotations {
		for _, a := range anns {
			if notNullAnnotations[a.TypeName()] {
				return NullabilityNotNull
			}
		}
	}
	return NullabilityOblivious
}
