package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSignature(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newSignatureCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSignatureCmd(t *testing.T) {
	out, err := runSignature(t, "Ljava/util/Map<TK;TV;>;")
	require.NoError(t, err)
	assert.Equal(t, "signature\tLjava/util/Map<TK;TV;>;\n"+
		"full\tjava.util.Map<K, V>\n"+
		"erased\tjava.util.Map\n"+
		"nested\tMap\n"+
		"jni\tLjava/util/Map<TK;TV;>;\n"+
		"jni-erased\tLjava/util/Map;\n", out)
}

func TestSignatureCmdMethod(t *testing.T) {
	out, err := runSignature(t, "--kind", "method", "<T:Ljava/lang/Object;>(TT;I)Ljava/util/List<TT;>;^Ljava/io/IOException;")
	require.NoError(t, err)
	assert.Equal(t, "type-param\tT\tjava.lang.Object\n"+
		"param 0\tT\n"+
		"param 1\tint\n"+
		"returns\tjava.util.List<T>\n"+
		"throws\tjava.io.IOException\n", out)
}

func TestSignatureCmdErrors(t *testing.T) {
	_, err := runSignature(t, "Ljava/util/Map<TK;")
	assert.Error(t, err)

	_, err = runSignature(t, "--kind", "field", "I")
	assert.ErrorContains(t, err, "unknown signature kind")
}
