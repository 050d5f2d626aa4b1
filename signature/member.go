package signature

import (
	"strings"
)

// TypeParameter is a formal type parameter such as "T:Ljava/lang/Number;".
// Bounds are kept as type signature text.
type TypeParameter struct {
	Name            string
	ClassBound      string
	InterfaceBounds []string
}

// ClassSignature is the content of a class's Signature attribute.
type ClassSignature struct {
	TypeParameters []TypeParameter
	Superclass     string
	Interfaces     []string
}

// MethodSignature is the content of a method's Signature attribute, or of a
// plain method descriptor.
type MethodSignature struct {
	TypeParameters []TypeParameter
	Parameters     []string
	Return         string
	Throws         []string
}

// ParseClassSignature splits a class signature such as
// "<T:Ljava/lang/Object;>Ljava/lang/Object;Ljava/lang/Comparable<TT;>;"
// into its type parameters, superclass and interfaces.
func ParseClassSignature(text string) (*ClassSignature, error) {
	tps, off, err := parseTypeParameters(text, 0)
	if err != nil {
		return nil, err
	}
	if off >= len(text) {
		return nil, malformed(text, off, "missing superclass")
	}
	sig := &ClassSignature{TypeParameters: tps}
	n := consumeType(text[off:])
	sig.Superclass = text[off : off+n]
	off += n
	for off < len(text) {
		n = consumeType(text[off:])
		sig.Interfaces = append(sig.Interfaces, text[off:off+n])
		off += n
	}
	return sig, nil
}

// ParseMethodSignature splits a method signature such as
// "<T:Ljava/lang/Object;>(TT;I)Ljava/util/List<TT;>;^Ljava/io/IOException;".
// Plain descriptors like "(ILjava/lang/String;)V" are accepted as well.
func ParseMethodSignature(text string) (*MethodSignature, error) {
	tps, off, err := parseTypeParameters(text, 0)
	if err != nil {
		return nil, err
	}
	if off >= len(text) || text[off] != '(' {
		return nil, malformed(text, off, "expected '('")
	}
	off++

	sig := &MethodSignature{TypeParameters: tps}
	for off < len(text) && text[off] != ')' {
		n := consumeType(text[off:])
		sig.Parameters = append(sig.Parameters, text[off:off+n])
		off += n
	}
	if off >= len(text) {
		return nil, malformed(text, off, "unterminated parameter list")
	}
	off++

	if off >= len(text) {
		return nil, malformed(text, off, "missing return type")
	}
	n := consumeType(text[off:])
	sig.Return = text[off : off+n]
	off += n

	for off < len(text) {
		if text[off] != '^' {
			return nil, malformed(text, off, "expected '^'")
		}
		off++
		n = consumeType(text[off:])
		if n == 0 {
			return nil, malformed(text, off, "missing thrown type")
		}
		sig.Throws = append(sig.Throws, text[off:off+n])
		off += n
	}
	return sig, nil
}

// ParseMethodDescriptor splits a raw method descriptor into parameter and
// return type descriptors.
func ParseMethodDescriptor(desc string) (params []string, ret string, err error) {
	sig, err := ParseMethodSignature(desc)
	if err != nil {
		return nil, "", err
	}
	if len(sig.TypeParameters) > 0 || len(sig.Throws) > 0 {
		return nil, "", malformed(desc, 0, "descriptor carries generic information")
	}
	return sig.Parameters, sig.Return, nil
}

func parseTypeParameters(text string, off int) ([]TypeParameter, int, error) {
	if !strings.HasPrefix(text[off:], "<") {
		return nil, off, nil
	}
	off++

	var tps []TypeParameter
	for off < len(text) && text[off] != '>' {
		colon := strings.IndexByte(text[off:], ':')
		if colon <= 0 {
			return nil, off, malformed(text, off, "type parameter without bound")
		}
		tp := TypeParameter{Name: text[off : off+colon]}
		off += colon + 1

		if off < len(text) && text[off] != ':' && text[off] != '>' {
			n := consumeType(text[off:])
			tp.ClassBound = text[off : off+n]
			off += n
		}
		for off < len(text) && text[off] == ':' {
			off++
			n := consumeType(text[off:])
			if n == 0 {
				return nil, off, malformed(text, off, "missing interface bound")
			}
			tp.InterfaceBounds = append(tp.InterfaceBounds, text[off:off+n])
			off += n
		}
		tps = append(tps, tp)
	}
	if off >= len(text) {
		return nil, off, malformed(text, off, "unterminated type parameter list")
	}
	return tps, off + 1, nil
}
