package java

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projections struct {
	Name, NestedName, JniName, Namespace   string
	FullName, FullNameGenericsErased       string
	GenericName                            string
	JniFullName, JniFullNameGenericsErased string
}

func projectionsOf(r TypeReference) projections {
	return projections{
		Name:                      r.Name(),
		NestedName:                r.NestedName(),
		JniName:                   r.JniName(),
		Namespace:                 r.Namespace(),
		FullName:                  r.FullName(),
		FullNameGenericsErased:    r.FullNameGenericsErased(),
		GenericName:               r.GenericName(),
		JniFullName:               r.JniFullName(),
		JniFullNameGenericsErased: r.JniFullNameGenericsErased(),
	}
}

func mustCreate(t *testing.T, text string) TypeReference {
	t.Helper()
	ref, err := CreateFromSignatureString(text, nil)
	require.NoError(t, err, text)
	return ref
}

func TestReferenceProjections(t *testing.T) {
	tests := []struct {
		signature string
		want      projections
	}{
		{
			signature: "[Landroid/os/AsyncTask<TT;[ILjava/util/ArrayList<TK;>;>$NestedType<Z>;",
			want: projections{
				Name:                      "NestedType[]",
				NestedName:                "AsyncTask$NestedType[]",
				JniName:                   "NestedType",
				Namespace:                 "",
				FullName:                  "android.os.AsyncTask<T, int[], java.util.ArrayList<K>>$NestedType<boolean>[]",
				FullNameGenericsErased:    "android.os.AsyncTask$NestedType[]",
				GenericName:               "NestedType<boolean>[]",
				JniFullName:               "[Landroid/os/AsyncTask<TT;[ILjava/util/ArrayList<TK;>;>$NestedType<Z>;",
				JniFullNameGenericsErased: "[Landroid/os/AsyncTask$NestedType;",
			},
		},
		{
			signature: "Ljava/util/ArrayList<TT;>;",
			want: projections{
				Name:                      "ArrayList",
				NestedName:                "ArrayList",
				JniName:                   "ArrayList",
				Namespace:                 "java.util",
				FullName:                  "java.util.ArrayList<T>",
				FullNameGenericsErased:    "java.util.ArrayList",
				GenericName:               "ArrayList<T>",
				JniFullName:               "Ljava/util/ArrayList<TT;>;",
				JniFullNameGenericsErased: "Ljava/util/ArrayList;",
			},
		},
		{
			signature: "Ljava/util/Map$Entry;",
			want: projections{
				Name:                      "Entry",
				NestedName:                "Map$Entry",
				JniName:                   "Entry",
				Namespace:                 "",
				FullName:                  "java.util.Map$Entry",
				FullNameGenericsErased:    "java.util.Map$Entry",
				GenericName:               "Entry",
				JniFullName:               "Ljava/util/Map$Entry;",
				JniFullNameGenericsErased: "Ljava/util/Map$Entry;",
			},
		},
		{
			signature: "[[J",
			want: projections{
				Name:                      "long[][]",
				NestedName:                "long[][]",
				JniName:                   "J",
				Namespace:                 "",
				FullName:                  "long[][]",
				FullNameGenericsErased:    "long[][]",
				GenericName:               "long[][]",
				JniFullName:               "[[J",
				JniFullNameGenericsErased: "[[J",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.signature, func(t *testing.T) {
			assert.Equal(t, tt.want, projectionsOf(mustCreate(t, tt.signature)))
		})
	}
}

func TestGenericArgumentProjections(t *testing.T) {
	ref := mustCreate(t, "Ljava/util/ArrayList<TT;>;")
	gi, ok := ref.(*GenericInstance)
	require.True(t, ok, "got %T", ref)
	require.Len(t, gi.GenericArguments(), 1)

	arg := gi.GenericArguments()[0]
	assert.IsType(t, &GenericParameter{}, arg)
	assert.Equal(t, "TT;", arg.JniFullName())
	assert.Equal(t, "Ljava/lang/Object;", arg.JniFullNameGenericsErased())
	assert.Equal(t, "T", arg.FullName())
	assert.Equal(t, "", arg.Namespace())
}

func TestSignatureRoundTrip(t *testing.T) {
	signatures := []string{
		"I",
		"V",
		"[[Ljava/lang/String;",
		"Ljava/lang/Class<+[TT;>;",
		"Landroid/net/DnsResolver$Callback<-[B>;",
		"Ljava/util/Map<**>;",
		"Ljava/util/function/Function<-TT;+TU;>;",
		"Ljava/util/stream/Collector<TT;*Ljava/util/Map<TK;TU;>;>;",
		"Ljava/util/Map$Entry<TK;TV;>;",
		"Lcom/example/Outer<TT;>$Inner<TU;>$Deep;",
		"*TC;",
		"*Ljava/lang/Integer;",
		"+Landroid/app/appsearch/GenericDocument;",
		"-[B",
		"TT;",
		"*",
		"**",
		"LNoPackage;",
	}
	for _, sig := range signatures {
		t.Run(sig, func(t *testing.T) {
			assert.Equal(t, sig, mustCreate(t, sig).JniFullName())
		})
	}
}

func TestReferenceVariants(t *testing.T) {
	t.Run("primitive", func(t *testing.T) {
		ref := mustCreate(t, "Z")
		assert.True(t, ref.IsPrimitive())
		assert.False(t, ref.IsArray())
		assert.Equal(t, "boolean", ref.FullName())
		assert.Equal(t, "Z", ref.JniFullName())
	})

	t.Run("array of references", func(t *testing.T) {
		ref := mustCreate(t, "[Ljava/lang/String;")
		arr, ok := ref.(*ArrayType)
		require.True(t, ok)
		assert.True(t, ref.IsArray())
		assert.False(t, ref.IsPrimitive())
		assert.Equal(t, 1, arr.Rank)
		assert.Equal(t, "java.lang.String", arr.ElementType().FullName())
		assert.Equal(t, "java.lang.String[]", ref.FullName())
	})

	t.Run("bounded generic parameters", func(t *testing.T) {
		assert.Equal(t, "? extends T", mustCreate(t, "+TT;").FullName())
		assert.Equal(t, "? super T", mustCreate(t, "-TT;").FullName())
		assert.Equal(t, "java.util.List<? extends E>", mustCreate(t, "Ljava/util/List<+TE;>;").FullName())
	})

	t.Run("unbounded wildcard", func(t *testing.T) {
		ref := mustCreate(t, "Ljava/lang/Class<*>;")
		assert.Equal(t, "java.lang.Class<?>", ref.FullName())
		w := ref.(*GenericInstance).GenericArguments()[0]
		assert.IsType(t, &WildcardType{}, w)
		assert.Equal(t, "*", w.JniFullName())
		assert.Equal(t, "Ljava/lang/Object;", w.JniFullNameGenericsErased())
	})

	t.Run("raw placeholder", func(t *testing.T) {
		assert.Equal(t, "java.util.Map<**>", mustCreate(t, "Ljava/util/Map<**>;").FullName())
	})

	t.Run("wildcard indicator", func(t *testing.T) {
		ref := mustCreate(t, "*Ljava/lang/Integer;")
		assert.Equal(t, "*", ref.WildcardIndicator())
		assert.Equal(t, "java.lang.Integer", ref.FullName())
		assert.Equal(t, "*Ljava/lang/Integer;", ref.JniFullNameGenericsErased())
	})

	t.Run("declaring type chain", func(t *testing.T) {
		ref := mustCreate(t, "Ljava/util/Map$Entry<TK;TV;>;")
		require.NotNil(t, ref.DeclaringType())
		assert.Equal(t, "java.util.Map", ref.DeclaringType().FullName())
		assert.Equal(t, "java.util.Map$Entry<K, V>", ref.FullName())
		assert.Equal(t, "java.util.Map$Entry", ref.FullNameGenericsErased())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := CreateFromSignatureString("Ljava/util/List<TT;", nil)
		assert.Error(t, err)
	})
}

func TestCreateFromFullName(t *testing.T) {
	for _, name := range []string{"java/util/Map$Entry", "java.util.Map$Entry"} {
		t.Run(name, func(t *testing.T) {
			ref, err := CreateFromFullName(name, nil)
			require.NoError(t, err)
			assert.Equal(t, "java.util.Map$Entry", ref.FullName())
			assert.Equal(t, "Ljava/util/Map$Entry;", ref.JniFullName())
		})
	}
}
