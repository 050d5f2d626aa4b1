package signature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassSignature(t *testing.T) {
	t.Run("type parameters with bounds", func(t *testing.T) {
		sig, err := ParseClassSignature("<K:Ljava/lang/Object;V::Ljava/lang/Comparable<TV;>;:Ljava/io/Serializable;>Ljava/util/AbstractMap<TK;TV;>;Ljava/util/Map<TK;TV;>;Ljava/lang/Cloneable;")
		require.NoError(t, err)

		require.Len(t, sig.TypeParameters, 2)
		assert.Equal(t, TypeParameter{Name: "K", ClassBound: "Ljava/lang/Object;"}, sig.TypeParameters[0])
		assert.Equal(t, "V", sig.TypeParameters[1].Name)
		assert.Empty(t, sig.TypeParameters[1].ClassBound)
		assert.Equal(t, []string{"Ljava/lang/Comparable<TV;>;", "Ljava/io/Serializable;"}, sig.TypeParameters[1].InterfaceBounds)

		assert.Equal(t, "Ljava/util/AbstractMap<TK;TV;>;", sig.Superclass)
		assert.Equal(t, []string{"Ljava/util/Map<TK;TV;>;", "Ljava/lang/Cloneable;"}, sig.Interfaces)
	})

	t.Run("no type parameters", func(t *testing.T) {
		sig, err := ParseClassSignature("Lcom/example/Base<Ljava/lang/Object;>;")
		require.NoError(t, err)
		assert.Empty(t, sig.TypeParameters)
		assert.Equal(t, "Lcom/example/Base<Ljava/lang/Object;>;", sig.Superclass)
		assert.Empty(t, sig.Interfaces)
	})

	t.Run("unterminated", func(t *testing.T) {
		_, err := ParseClassSignature("<T:Ljava/lang/Object;")
		assert.True(t, errors.Is(err, ErrMalformed))
	})
}

func TestParseMethodSignature(t *testing.T) {
	sig, err := ParseMethodSignature("<A:Ljava/lang/Object;>(TA;Ljava/util/List<-TA;>;[I)TA;^Ljava/io/IOException;^TE;")
	require.NoError(t, err)

	require.Len(t, sig.TypeParameters, 1)
	assert.Equal(t, "A", sig.TypeParameters[0].Name)
	assert.Equal(t, []string{"TA;", "Ljava/util/List<-TA;>;", "[I"}, sig.Parameters)
	assert.Equal(t, "TA;", sig.Return)
	assert.Equal(t, []string{"Ljava/io/IOException;", "TE;"}, sig.Throws)
}

func TestParseMethodDescriptor(t *testing.T) {
	tests := []struct {
		desc   string
		params []string
		ret    string
	}{
		{"()V", nil, "V"},
		{"(II)I", []string{"I", "I"}, "I"},
		{"(JD[[Ljava/lang/String;Ljava/util/Map$Entry;)Ljava/lang/Object;", []string{"J", "D", "[[Ljava/lang/String;", "Ljava/util/Map$Entry;"}, "Ljava/lang/Object;"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			params, ret, err := ParseMethodDescriptor(tt.desc)
			require.NoError(t, err)
			assert.Equal(t, tt.params, params)
			assert.Equal(t, tt.ret, ret)
		})
	}

	for _, bad := range []string{"", "II", "(I", "(I)", "()V^"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, _, err := ParseMethodDescriptor(bad)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}
