package java

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBaseMethodOrDefault(t *testing.T) {
	w := newWorld(t)

	tests := []struct {
		name       string
		typ        string
		method     string
		descPrefix string
		want       string
	}{
		{
			name:       "direct override",
			typ:        "com.example.BaseMethodDerivedClass",
			method:     "doThing",
			descPrefix: "(I)",
			want:       "void com.example.BaseMethodBaseClass.doThing (int p0)",
		},
		{
			name:       "nearest ancestor wins",
			typ:        "com.example.BaseMethodGrandchildClass",
			method:     "doThing",
			descPrefix: "(I)",
			want:       "void com.example.BaseMethodDerivedClass.doThing (int p0)",
		},
		{
			name:       "overload without a base",
			typ:        "com.example.BaseMethodGrandchildClass",
			method:     "doThing",
			descPrefix: "(Ljava/lang/String;)",
			want:       "<nil>",
		},
		{
			name:       "covariant return",
			typ:        "com.example.BaseMethodDerivedClass",
			method:     "getValue",
			descPrefix: "()Ljava/lang/String;",
			want:       "java.lang.Object com.example.BaseMethodBaseClass.getValue ()",
		},
		{
			name:       "object method",
			typ:        "com.example.BaseMethodBaseClass",
			method:     "getValue",
			descPrefix: "()",
			want:       "<nil>",
		},
		{
			name:       "static",
			typ:        "com.example.BaseMethodDerivedClass",
			method:     "helper",
			descPrefix: "()",
			want:       "<nil>",
		},
		{
			name:       "constructor",
			typ:        "com.example.BaseMethodDerivedClass",
			method:     "<init>",
			descPrefix: "()",
			want:       "void com.example.BaseMethodBaseClass.<init> ()",
		},
		{
			name:       "constructor without a superclass constructor",
			typ:        "com.example.BaseMethodBaseClass",
			method:     "<init>",
			descPrefix: "()",
			want:       "<nil>",
		},
		{
			name:       "generic parameter passed through",
			typ:        "com.example.BaseMethodGenericDerivedClass",
			method:     "doThing",
			descPrefix: "(",
			want:       "T com.example.BaseMethodGenericBaseClass<T>.doThing (T p0)",
		},
		{
			name:       "generic parameter bound to a concrete type",
			typ:        "com.example.BaseMethodGenericConcreteDerivedClass",
			method:     "doThing",
			descPrefix: "(",
			want:       "T com.example.BaseMethodGenericBaseClass<T>.doThing (T p0)",
		},
		{
			name:       "generic instance parameter",
			typ:        "com.example.BaseMethodGenericConcreteDerivedClass",
			method:     "doList",
			descPrefix: "(",
			want:       "void com.example.BaseMethodGenericBaseClass<T>.doList (java.util.List<T> p0)",
		},
		{
			name:       "mapping through an intermediate generic class",
			typ:        "com.example.BaseMethodGenericRederivedGrandchildClass",
			method:     "doThing",
			descPrefix: "(",
			want:       "T com.example.BaseMethodGenericBaseClass<T>.doThing (T p0)",
		},
		{
			name:       "transitive mapping to a concrete type",
			typ:        "com.example.BaseMethodGenericRederivedStringClass",
			method:     "doThing",
			descPrefix: "(Ljava/lang/String;)",
			want:       "T com.example.BaseMethodGenericBaseClass<T>.doThing (T p0)",
		},
		{
			name:       "unrelated overload through an intermediate generic class",
			typ:        "com.example.BaseMethodGenericRederivedStringClass",
			method:     "doThing",
			descPrefix: "(I)",
			want:       "<nil>",
		},
		{
			name:       "bounded wildcard arguments",
			typ:        "com.example.GenericDerivedNestedType",
			method:     "doThing2",
			descPrefix: "(",
			want:       "void com.example.GenericNestedType<A, B>.doThing2 (java.util.Map<? extends A, ? extends B> p0)",
		},
		{
			name:       "parameter and function arguments",
			typ:        "com.example.GenericDerivedNestedType",
			method:     "doThing3",
			descPrefix: "(",
			want:       "void com.example.GenericNestedType<A, B>.doThing3 (A p0, java.util.function.Function<? super A, ? extends B> p1)",
		},
		{
			name:       "raw class array against wildcard class array",
			typ:        "com.example.GenericDerivedNestedType",
			method:     "doThing4",
			descPrefix: "(",
			want:       "void com.example.GenericNestedType<A, B>.doThing4 (java.lang.Class<?>[] p0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := w.method(t, tt.typ, tt.method, tt.descPrefix)
			base, err := m.FindBaseMethodOrDefault()
			require.NoError(t, err)
			assert.Equal(t, tt.want, describe(base))
		})
	}
}

func TestFindDeclaredBaseMethodOrDefault(t *testing.T) {
	w := newWorld(t)

	m := w.method(t, "com.example.BaseMethodGrandchildClass", "doThing", "(I)")
	declared, err := m.FindDeclaredBaseMethodOrDefault()
	require.NoError(t, err)
	assert.Equal(t, "void com.example.BaseMethodBaseClass.doThing (int p0)", describe(declared))

	root := w.method(t, "com.example.BaseMethodBaseClass", "doThing", "(I)")
	declared, err = root.FindDeclaredBaseMethodOrDefault()
	require.NoError(t, err)
	assert.Nil(t, declared)
}

func TestIsCovariantReturn(t *testing.T) {
	w := newWorld(t)

	t.Run("narrowed return", func(t *testing.T) {
		m := w.method(t, "com.example.BaseMethodDerivedClass", "getValue", "()Ljava/lang/String;")
		base, err := m.FindBaseMethodOrDefault()
		require.NoError(t, err)
		require.NotNil(t, base)
		assert.True(t, m.IsCovariantReturn(base, nil))
	})

	t.Run("same return", func(t *testing.T) {
		m := w.method(t, "com.example.BaseMethodDerivedClass", "doThing", "(I)")
		base, err := m.FindBaseMethodOrDefault()
		require.NoError(t, err)
		require.NotNil(t, base)
		assert.False(t, m.IsCovariantReturn(base, nil))
	})

	t.Run("mapped generic return", func(t *testing.T) {
		m := w.method(t, "com.example.BaseMethodGenericConcreteDerivedClass", "doThing", "(")
		base, err := m.FindBaseMethodOrDefault()
		require.NoError(t, err)
		require.NotNil(t, base)

		mapping := NewGenericParameterMapping()
		require.NoError(t, mapping.AddMappingFromTypeReference(m.DeclaringType.BaseType))
		require.Equal(t, "java.lang.Object", mapping.Mapping("T"))
		assert.False(t, m.IsCovariantReturn(base, mapping))
	})

	t.Run("return mapped through an intermediate generic class", func(t *testing.T) {
		m := w.method(t, "com.example.BaseMethodGenericRederivedStringClass", "doThing", "(Ljava/lang/String;)")
		base, err := m.FindBaseMethodOrDefault()
		require.NoError(t, err)
		require.NotNil(t, base)

		mapping := NewGenericParameterMapping()
		require.NoError(t, mapping.AddMappingFromTypeReference(m.DeclaringType.BaseType))
		require.NoError(t, mapping.AddMappingFromTypeReference(w.typ(t, "com.example.BaseMethodGenericRederivedClass").BaseType))
		require.Equal(t, "java.lang.String", mapping.Mapping("T"))
		assert.False(t, m.IsCovariantReturn(base, mapping))
	})
}

func TestMethodDescriptor(t *testing.T) {
	w := newWorld(t)

	tests := []struct {
		typ, method, descPrefix string
		want                    string
	}{
		{"com.example.BaseMethodGenericBaseClass", "doThing", "(", "(Ljava/lang/Object;)Ljava/lang/Object;"},
		{"com.example.BaseMethodGenericBaseClass", "doList", "(", "(Ljava/util/List;)V"},
		{"com.example.GenericNestedType", "doThing2", "(", "(Ljava/util/Map;)V"},
		{"com.example.GenericNestedType", "doThing3", "(", "(Ljava/lang/Object;Ljava/util/function/Function;)V"},
		{"com.example.GenericNestedType", "doThing4", "(", "([Ljava/lang/Class;)V"},
		{"com.example.InterfaceTypeA", "add", "(", "(II)I"},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"."+tt.method, func(t *testing.T) {
			assert.Equal(t, tt.want, w.method(t, tt.typ, tt.method, tt.descPrefix).Descriptor())
		})
	}
}

func TestMethodNames(t *testing.T) {
	w := newWorld(t)

	compareTo := w.method(t, "java.lang.Comparable", "compareTo", "(")
	assert.Equal(t, "compareTo", compareTo.FullName())
	assert.Equal(t, "compareTo", compareTo.GenericName())
	assert.Equal(t, "int compareTo (T p0)", compareTo.String())
	assert.False(t, compareTo.IsDefault())

	add := w.method(t, "com.example.InterfaceC", "add", "(")
	assert.True(t, add.IsDefault())

	ctor := w.method(t, "com.example.BaseMethodBaseClass", "<init>", "(")
	assert.True(t, ctor.IsConstructor())
}
