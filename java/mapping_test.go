package java

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericParameterMapping(t *testing.T) {
	t.Run("identity is ignored", func(t *testing.T) {
		m := NewGenericParameterMapping()
		m.AddMapping("T", "T")
		assert.Equal(t, 0, m.Len())
		assert.Equal(t, "T", m.Mapping("T"))
	})

	t.Run("unmapped names map to themselves", func(t *testing.T) {
		assert.Equal(t, "E", NewGenericParameterMapping().Mapping("E"))
	})

	t.Run("transitive", func(t *testing.T) {
		m := NewGenericParameterMapping()
		m.AddMapping("T", "K")
		m.AddMapping("K", "java.lang.Object")
		assert.Equal(t, "java.lang.Object", m.Mapping("T"))
		assert.Equal(t, "java.lang.Object", m.Mapping("K"))
	})

	t.Run("cycles terminate", func(t *testing.T) {
		m := NewGenericParameterMapping()
		m.AddMapping("A", "B")
		m.AddMapping("B", "A")
		assert.Equal(t, "B", m.Mapping("A"))
		assert.Equal(t, "A", m.Mapping("B"))
	})

	t.Run("clone is independent", func(t *testing.T) {
		m := NewGenericParameterMapping()
		m.AddMapping("T", "java.lang.String")
		c := m.Clone()
		c.AddMapping("U", "java.lang.Integer")
		c.AddMapping("T", "java.lang.Number")

		assert.Equal(t, 1, m.Len())
		assert.Equal(t, "java.lang.String", m.Mapping("T"))
		assert.Equal(t, "U", m.Mapping("U"))
		assert.Equal(t, "java.lang.Number", c.Mapping("T"))
	})
}

func TestAddMappingFromTypeReference(t *testing.T) {
	w := newWorld(t)

	create := func(t *testing.T, sig string) TypeReference {
		t.Helper()
		ref, err := CreateFromSignatureString(sig, w.examples)
		require.NoError(t, err)
		return ref
	}

	t.Run("positional arguments", func(t *testing.T) {
		m := NewGenericParameterMapping()
		require.NoError(t, m.AddMappingFromTypeReference(create(t, "Lcom/example/GenericNestedType<Ljava/lang/String;Ljava/util/List<TT;>;>;")))
		assert.Equal(t, "java.lang.String", m.Mapping("A"))
		assert.Equal(t, "java.util.List<T>", m.Mapping("B"))
	})

	t.Run("non-generic references add nothing", func(t *testing.T) {
		m := NewGenericParameterMapping()
		require.NoError(t, m.AddMappingFromTypeReference(create(t, "Lcom/example/BaseMethodBaseClass;")))
		require.NoError(t, m.AddMappingFromTypeReference(create(t, "TT;")))
		assert.Equal(t, 0, m.Len())
	})

	t.Run("argument count mismatch", func(t *testing.T) {
		m := NewGenericParameterMapping()
		err := m.AddMappingFromTypeReference(create(t, "Lcom/example/BaseMethodGenericBaseClass<Ljava/lang/String;Ljava/lang/Integer;>;"))
		assert.True(t, errors.Is(err, ErrArgumentCountMismatch), "got %v", err)
	})

	t.Run("unresolvable", func(t *testing.T) {
		m := NewGenericParameterMapping()
		err := m.AddMappingFromTypeReference(create(t, "Lcom/example/Missing<Ljava/lang/String;>;"))
		var rerr *ResolutionError
		require.True(t, errors.As(err, &rerr), "got %v", err)
		assert.Equal(t, "failed to resolve com.example.Missing<java.lang.String>", err.Error())
	})
}

func TestMappedReference(t *testing.T) {
	w := newWorld(t)
	param := func(t *testing.T, sig string) TypeReference {
		t.Helper()
		ref, err := CreateFromSignatureString(sig, w.examples)
		require.NoError(t, err)
		return ref
	}

	m := NewGenericParameterMapping()
	m.AddMapping("T", "java.lang.String")
	m.AddMapping("U", "V")

	t.Run("parameter mapped to a known type", func(t *testing.T) {
		got := m.MappedReference(param(t, "TT;"))
		assert.Same(t, w.typ(t, "java.lang.String"), got)
	})

	t.Run("parameter renamed", func(t *testing.T) {
		got := m.MappedReference(param(t, "TU;"))
		assert.IsType(t, &GenericParameter{}, got)
		assert.Equal(t, "V", got.Name())
	})

	t.Run("unmapped parameter is unchanged", func(t *testing.T) {
		ref := param(t, "TX;")
		assert.Same(t, ref, m.MappedReference(ref))
	})

	t.Run("generic instance arguments", func(t *testing.T) {
		got := m.MappedReference(param(t, "Ljava/util/Map<TT;Ljava/util/List<TU;>;>;"))
		assert.Equal(t, "java.util.Map<java.lang.String, java.util.List<V>>", got.FullName())
	})

	t.Run("wildcard kept", func(t *testing.T) {
		got := m.MappedReference(param(t, "+Ljava/util/List<TT;>;"))
		assert.Equal(t, "+", got.WildcardIndicator())
		assert.Equal(t, "+Ljava/util/List<Ljava/lang/String;>;", got.JniFullName())
	})

	t.Run("idempotent", func(t *testing.T) {
		once := m.MappedReference(param(t, "Ljava/util/Map<TT;TU;>;"))
		assert.Equal(t, once.FullName(), m.MappedReference(once).FullName())
	})

	t.Run("other references pass through", func(t *testing.T) {
		ref := param(t, "[I")
		assert.Same(t, ref, m.MappedReference(ref))
	})

	t.Run("parameter mapped to a generic instance", func(t *testing.T) {
		tests := []struct {
			mapped   string
			fullName string
			jni      string
		}{
			{"java.util.List<java.lang.String>", "java.util.List<java.lang.String>", "Ljava/util/List<Ljava/lang/String;>;"},
			{"java.util.Map<K, java.util.List<? extends V>>", "java.util.Map<K, java.util.List<? extends V>>", "Ljava/util/Map<TK;Ljava/util/List<+TV;>;>;"},
			{"java.util.List<?>", "java.util.List<?>", "Ljava/util/List<*>;"},
			{"java.lang.String[]", "java.lang.String[]", "[Ljava/lang/String;"},
			{"int[][]", "int[][]", "[[I"},
		}
		for _, tt := range tests {
			t.Run(tt.mapped, func(t *testing.T) {
				m := NewGenericParameterMapping()
				m.AddMapping("T", tt.mapped)
				got := m.MappedReference(param(t, "TT;"))
				assert.Equal(t, tt.fullName, got.FullName())
				assert.Equal(t, tt.jni, got.JniFullName())
			})
		}
	})

	t.Run("bounded parameter mapped to a generic instance", func(t *testing.T) {
		m := NewGenericParameterMapping()
		m.AddMapping("T", "java.util.List<java.lang.String>")
		got := m.MappedReference(param(t, "+TT;"))
		assert.Equal(t, "+", got.WildcardIndicator())
		assert.Equal(t, "+Ljava/util/List<Ljava/lang/String;>;", got.JniFullName())
	})

	t.Run("arguments bound through a generic base class", func(t *testing.T) {
		m := NewGenericParameterMapping()
		require.NoError(t, m.AddMappingFromTypeReference(param(t, "Lcom/example/BaseMethodGenericBaseClass<Ljava/util/List<Ljava/lang/String;>;>;")))
		require.Equal(t, "java.util.List<java.lang.String>", m.Mapping("T"))

		got := m.MappedReference(param(t, "Ljava/util/Map<TT;TT;>;"))
		assert.Equal(t, "java.util.Map<java.util.List<java.lang.String>, java.util.List<java.lang.String>>", got.FullName())
		assert.Equal(t, "Ljava/util/Map;", got.JniFullNameGenericsErased())
	})
}
