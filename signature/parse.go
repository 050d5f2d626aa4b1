package signature

import (
	"strings"
)

// Parse parses a single type signature.
//
// The result always satisfies Parse(text).String() == text; input that
// parses but serializes differently is rejected with ErrRoundTrip.
func Parse(text string) (*TypeSignature, error) {
	sig, err := parse(text)
	if err != nil {
		return nil, err
	}
	if got := sig.String(); got != text {
		return nil, &ParseError{
			Text:    text,
			Offset:  firstDifference(text, got),
			Message: "serializes as " + got,
			Err:     ErrRoundTrip,
		}
	}
	return sig, nil
}

// MustParse is like Parse but panics on error. It is meant for signature
// literals in code and tests.
func MustParse(text string) *TypeSignature {
	sig, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return sig
}

// ParseFullName parses a binary class name such as "java/util/Map$Entry" or
// "java.util.Map$Entry" as an object type signature.
func ParseFullName(name string) (*TypeSignature, error) {
	return Parse("L" + strings.ReplaceAll(name, ".", "/") + ";")
}

// ConsumeType returns the text of the first complete type at the start of
// text, without building a tree. Trailing input is ignored:
//
//	ConsumeType("[Landroid/os/MyClass$NestedClass;I") == "[Landroid/os/MyClass$NestedClass;"
//
// A leading "*" or "**" wildcard placeholder is returned on its own.
func ConsumeType(text string) string {
	return text[:consumeType(text)]
}

func consumeType(text string) int {
	n := len(text)
	i := 0
	if i < n && isBound(text[i]) {
		i++
	}
	if i < n && text[i] == '*' {
		i++
		if i < n && text[i] == '*' {
			i++
		}
		return i
	}
	for i < n && text[i] == '[' {
		i++
	}
	if i >= n {
		return i
	}
	if isPrimitive(text[i]) {
		return i + 1
	}
	if text[i] == 'L' || text[i] == 'T' {
		i++
	}
	depth := 0
	for ; i < n; i++ {
		switch text[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ';':
			if depth == 0 {
				return i + 1
			}
		}
	}
	return i
}

func isBound(c byte) bool {
	return c == '+' || c == '-'
}

func isPrimitive(c byte) bool {
	return strings.IndexByte(PrimitiveCodes, c) >= 0
}

func parse(text string) (*TypeSignature, error) {
	sig := &TypeSignature{}
	i := 0
	if i < len(text) && isBound(text[i]) {
		sig.WildcardBounds = text[:1]
		i++
	}

	rank := 0
	for i < len(text) && text[i] == '[' {
		rank++
		i++
	}

	rest := text[i:]
	switch {
	case rest == "":
		return nil, malformed(text, i, "missing type")
	case isWildcardName(rest):
		sig.Name = rest
		sig.ArrayRank = rank
		return sig, nil
	case isPrimitive(rest[0]):
		if len(rest) != 1 {
			return nil, malformed(text, i+1, "unexpected text after primitive type")
		}
		sig.Name = rest
		sig.IsPrimitiveType = true
		sig.ArrayRank = rank
		return sig, nil
	}

	if rest[0] == '*' {
		sig.WildcardIndicator = "*"
		i++
	}
	if i >= len(text) {
		return nil, malformed(text, i, "missing type after wildcard")
	}
	switch text[i] {
	case 'T':
		sig.IsGenericParameter = true
	case 'L':
	default:
		return nil, malformed(text, i, "expected 'L' or 'T', got %q", text[i])
	}
	i++

	if !strings.HasSuffix(text, ";") || len(text) <= i {
		return nil, malformed(text, len(text), "missing terminating ';'")
	}

	namespaces, segments, err := splitName(text, i, len(text)-1)
	if err != nil {
		return nil, err
	}
	sig.Namespace = strings.Join(namespaces, ".")
	if err := sig.parseSegment(segments[0]); err != nil {
		return nil, err
	}

	parent := sig
	for _, seg := range segments[1:] {
		nested := &TypeSignature{}
		if err := nested.parseSegment(seg); err != nil {
			return nil, err
		}
		parent.NestedType = nested
		parent = nested
	}

	// Array rank belongs to the innermost member of a nested chain.
	sig.MostNested().ArrayRank = rank
	return sig, nil
}

// splitName splits text[start:end] into namespace segments (separated by
// '/') and type segments (separated by '$'). Separators inside a <...>
// generic list do not count.
func splitName(text string, start, end int) (namespaces, segments []string, err error) {
	depth := 0
	from := start
	for j := start; j < end; j++ {
		switch text[j] {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, nil, malformed(text, j, "unbalanced '>'")
			}
		case ';':
			if depth == 0 {
				return nil, nil, malformed(text, j, "unexpected ';'")
			}
		case '/':
			if depth > 0 {
				continue
			}
			if len(segments) > 0 {
				return nil, nil, malformed(text, j, "package separator after nested type")
			}
			namespaces = append(namespaces, text[from:j])
			from = j + 1
		case '$':
			if depth == 0 {
				segments = append(segments, text[from:j])
				from = j + 1
			}
		}
	}
	if depth != 0 {
		return nil, nil, malformed(text, end, "unterminated generic argument list")
	}
	segments = append(segments, text[from:end])
	return namespaces, segments, nil
}

// parseSegment fills Name and GenericArguments from "Name" or
// "Name<args>".
func (s *TypeSignature) parseSegment(seg string) error {
	name, generics, found := strings.Cut(seg, "<")
	s.Name = name
	if !found {
		return nil
	}
	if !strings.HasSuffix(generics, ">") {
		return malformed(seg, len(seg), "generic argument list does not end with '>'")
	}
	list := generics[:len(generics)-1]
	if list == "" {
		return malformed(seg, len(name), "empty generic argument list")
	}
	for list != "" {
		n := consumeType(list)
		arg, err := parse(list[:n])
		if err != nil {
			return err
		}
		s.GenericArguments = append(s.GenericArguments, arg)
		list = list[n:]
	}
	return nil
}

func firstDifference(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
