package java

import (
	"strings"
)

// The name projections below are shared by every TypeReference variant.
// Variants differ only in what they report for Name, GenericName and
// genericJniName; the composition rules for nesting live here.

func fullName(r TypeReference) string {
	switch {
	case r.IsPrimitive():
		return r.Name()
	case r.DeclaringType() != nil:
		return r.DeclaringType().FullName() + "$" + r.GenericName()
	case r.Namespace() == "":
		return r.Name()
	}
	return r.Namespace() + "." + r.GenericName()
}

func erasedFullName(r TypeReference) string {
	switch {
	case r.IsPrimitive():
		return r.Name()
	case r.DeclaringType() != nil:
		return r.DeclaringType().FullNameGenericsErased() + "$" + r.Name()
	case r.Namespace() == "":
		return r.Name()
	}
	return r.Namespace() + "." + r.Name()
}

func nestedName(r TypeReference) string {
	if d := r.DeclaringType(); d != nil {
		return d.NestedName() + "$" + r.Name()
	}
	return r.Name()
}

func jniFullName(r TypeReference) string {
	switch {
	case r.IsPrimitive() || isPlaceholder(r.JniName()):
		return r.JniName()
	case r.DeclaringType() != nil:
		return strings.TrimSuffix(r.DeclaringType().JniFullName(), ";") + "$" + r.genericJniName() + ";"
	case r.Namespace() == "":
		return r.WildcardIndicator() + "L" + r.genericJniName() + ";"
	}
	return r.WildcardIndicator() + "L" + internalName(r.Namespace()) + "/" + r.genericJniName() + ";"
}

func erasedJniFullName(r TypeReference) string {
	switch {
	case r.IsPrimitive() || isPlaceholder(r.JniName()):
		return r.JniName()
	case r.DeclaringType() != nil:
		return strings.TrimSuffix(r.DeclaringType().JniFullNameGenericsErased(), ";") + "$" + r.JniName() + ";"
	case r.Namespace() == "":
		return r.WildcardIndicator() + "L" + r.JniName() + ";"
	}
	return r.WildcardIndicator() + "L" + internalName(r.Namespace()) + "/" + r.JniName() + ";"
}

func isPlaceholder(name string) bool {
	return name == "*" || name == "**"
}

func internalName(dotted string) string {
	return strings.ReplaceAll(dotted, ".", "/")
}

func joinFullNames(refs []TypeReference) string {
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.FullName()
	}
	return strings.Join(names, ", ")
}

func arraySuffix(rank int) string {
	return strings.Repeat("[]", rank)
}
