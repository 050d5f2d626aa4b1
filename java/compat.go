package java

import (
	"strings"
)

// parametersCompatible reports whether derived can override or implement
// base: same parameter count and every position compatible under mapping.
func parametersCompatible(derived, base *MethodDefinition, mapping *GenericParameterMapping) bool {
	if len(derived.Parameters) != len(base.Parameters) {
		return false
	}
	for i := range derived.Parameters {
		if !typesCompatible(derived, derived.Parameters[i].ParameterType, base, base.Parameters[i].ParameterType, mapping) {
			return false
		}
	}
	return true
}

// typesCompatible compares a type used by derived with one used by base.
// The base side is rewritten through mapping first. When the text differs,
// a few raw-type spellings javac accepts as equivalent are tried, and
// finally both sides are compared by erasure.
func typesCompatible(derived *MethodDefinition, d TypeReference, base *MethodDefinition, b TypeReference, mapping *GenericParameterMapping) bool {
	p1 := d.FullName()
	p2 := mapping.mappedName(b)

	switch {
	case p1 == p2:
		return true
	case strings.ReplaceAll(p1, "**", "java.lang.Object, java.lang.Object") == p2:
		return true
	case strings.ReplaceAll(p1, "?", "java.lang.Object") == p2:
		return true
	case eraseClassWildcard(p1) == eraseClassWildcard(p2):
		return true
	}
	return d.descriptor(derived.GenericParametersInScope()) == b.descriptor(base.GenericParametersInScope())
}

func eraseClassWildcard(name string) string {
	return strings.ReplaceAll(name, "java.lang.Class<?>", "java.lang.Class")
}
