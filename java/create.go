package java

import (
	"github.com/dhamidi/javil/signature"
)

// CreateFromSignature builds the reference described by sig. The leaf is
// built first, wrapped in an ArrayType when the segment has a rank, and
// then used as the declaring type of the next segment of a nested chain.
func CreateFromSignature(sig *signature.TypeSignature, container *Container, declaring TypeReference) TypeReference {
	namespace := sig.Namespace
	if declaring != nil {
		namespace = ""
	}
	wildcard := sig.WildcardBounds + sig.WildcardIndicator

	var ref TypeReference
	switch {
	case sig.HasGenericArguments():
		args := make([]TypeReference, len(sig.GenericArguments))
		for i, arg := range sig.GenericArguments {
			args[i] = CreateFromSignature(arg, container, nil)
		}
		gi := NewGenericInstance(namespace, sig.Name, container, declaring, args)
		gi.wildcard = wildcard
		ref = gi
	case sig.IsGenericParameter:
		gp := NewGenericParameter(sig.Name, container, declaring)
		gp.wildcard = wildcard
		ref = gp
	case sig.Name == "*":
		ref = NewWildcardType(container)
	default:
		r := NewReference(namespace, sig.Name, container, declaring)
		r.wildcard = wildcard
		r.primitive = sig.IsPrimitiveType
		ref = r
	}

	if sig.ArrayRank > 0 {
		ref = NewArrayType(ref, sig.ArrayRank)
	}
	if sig.NestedType != nil {
		return CreateFromSignature(sig.NestedType, container, ref)
	}
	return ref
}

// CreateFromSignatureString parses text and builds its reference.
func CreateFromSignatureString(text string, container *Container) (TypeReference, error) {
	sig, err := signature.Parse(text)
	if err != nil {
		return nil, err
	}
	return CreateFromSignature(sig, container, nil), nil
}

// CreateFromFullName builds a reference from a binary class name such as
// "java/util/Map$Entry" or "java.util.Map$Entry".
func CreateFromFullName(name string, container *Container) (TypeReference, error) {
	sig, err := signature.ParseFullName(name)
	if err != nil {
		return nil, err
	}
	return CreateFromSignature(sig, container, nil), nil
}
