// Package signature parses the compact type signatures stored in class
// files, such as "Ljava/util/Map<TK;TV;>;", into a TypeSignature tree
// that serializes back to exactly the text it was parsed from.
package signature

import (
	"strings"
)

// PrimitiveCodes lists the single-character descriptors of primitive types.
const PrimitiveCodes = "BCDFIJSVZ"

// TypeSignature is one parsed type occurrence.
//
// Namespace uses dots ("java.util"). A nested type chain is stored outermost
// first: the signature for "La/Outer$Inner;" has Name "Outer" and a
// NestedType with Name "Inner". The array rank of a nested chain always sits
// on the most nested member.
type TypeSignature struct {
	Namespace          string
	Name               string
	ArrayRank          int
	IsPrimitiveType    bool
	IsGenericParameter bool

	// WildcardBounds is "+" or "-" when the whole signature carries a
	// bound, as in "-[B".
	WildcardBounds string

	// WildcardIndicator is "*" when the signature was prefixed with an
	// unbounded wildcard marker, as in "*TC;".
	WildcardIndicator string

	GenericArguments []*TypeSignature
	NestedType       *TypeSignature
}

// HasGenericArguments reports whether the signature carries a <...> list.
func (s *TypeSignature) HasGenericArguments() bool {
	return len(s.GenericArguments) > 0
}

// MostNested returns the innermost member of the nested type chain.
func (s *TypeSignature) MostNested() *TypeSignature {
	n := s
	for n.NestedType != nil {
		n = n.NestedType
	}
	return n
}

// IsWildcard reports whether the signature is the bare "*" or "**"
// placeholder.
func (s *TypeSignature) IsWildcard() bool {
	return isWildcardName(s.Name)
}

func isWildcardName(name string) bool {
	return name == "*" || name == "**"
}

// String serializes the signature back into its textual form.
func (s *TypeSignature) String() string {
	var b strings.Builder
	s.write(&b)
	return b.String()
}

func (s *TypeSignature) write(b *strings.Builder) {
	b.WriteString(s.WildcardBounds)
	b.WriteString(strings.Repeat("[", s.MostNested().ArrayRank))

	if s.IsPrimitiveType || isWildcardName(s.Name) {
		b.WriteString(s.Name)
		return
	}

	b.WriteString(s.WildcardIndicator)
	if s.IsGenericParameter {
		b.WriteByte('T')
	} else {
		b.WriteByte('L')
	}
	if s.Namespace != "" {
		b.WriteString(strings.ReplaceAll(s.Namespace, ".", "/"))
		b.WriteByte('/')
	}
	s.writeSegment(b)
	for n := s.NestedType; n != nil; n = n.NestedType {
		b.WriteByte('$')
		n.writeSegment(b)
	}
	b.WriteByte(';')
}

func (s *TypeSignature) writeSegment(b *strings.Builder) {
	b.WriteString(s.Name)
	if !s.HasGenericArguments() {
		return
	}
	b.WriteByte('<')
	for _, arg := range s.GenericArguments {
		arg.write(b)
	}
	b.WriteByte('>')
}
