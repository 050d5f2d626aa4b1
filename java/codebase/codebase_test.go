package codebase

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/javil/classfile"
)

func build(t *testing.T, b *classfile.Builder) []byte {
	t.Helper()
	data, err := b.Bytes()
	require.NoError(t, err)
	return data
}

func exampleJar(t *testing.T, dir string) string {
	t.Helper()
	public := classfile.AccPublic

	base := classfile.NewBuilder("com/example/Base", "java/lang/Object", public|classfile.AccSuper)
	base.AddField(public|classfile.AccStatic|classfile.AccFinal, "SIZE", "I", base.ConstantValueAttribute(base.Integer(3)))
	base.AddMethod(public, "spin", "()V")
	base.AddMethod(public, "base", "()V")

	spinner := classfile.NewBuilder("com/example/Spinner", "java/lang/Object", public|classfile.AccInterface|classfile.AccAbstract)
	spinner.AddMethod(public|classfile.AccAbstract, "spin", "()V")

	widget := classfile.NewBuilder("com/example/Widget", "com/example/Base", public|classfile.AccSuper)
	widget.AddInterface("com/example/Spinner")
	widget.AddField(public, "color", "Ljava/lang/String;")
	widget.AddMethod(public, "<init>", "()V")
	widget.AddMethod(public, "spin", "()V")
	widget.AddMethod(public, "twirl", "(I)V", widget.MethodParametersAttribute("speed"))
	widget.AddMethod(public, "old", "()V", widget.DeprecatedAttribute())
	widget.AddMethod(classfile.AccPrivate, "hidden", "()V")

	util := classfile.NewBuilder("com/example/util/Helpers", "java/lang/Object", public|classfile.AccSuper)

	jar := filepath.Join(dir, "example.jar")
	f, err := os.Create(jar)
	require.NoError(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	for name, b := range map[string]*classfile.Builder{
		"com/example/Base.class":         base,
		"com/example/Spinner.class":      spinner,
		"com/example/Widget.class":       widget,
		"com/example/util/Helpers.class": util,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(build(t, b))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return jar
}

func loaded(t *testing.T) *Codebase {
	t.Helper()
	c := New([]string{exampleJar(t, t.TempDir())})
	require.NoError(t, c.Load(context.Background()))
	return c
}

func labels(items []CompletionItem) []string {
	var result []string
	for _, item := range items {
		result = append(result, item.Label)
	}
	return result
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jar := exampleJar(t, dir)

	c := New([]string{filepath.Join(dir, "missing.jar"), jar})
	err := c.Load(context.Background())
	assert.Error(t, err, "unreadable entries are reported")

	require.Len(t, c.Results(), 1)
	assert.Equal(t, jar, c.Results()[0].Request.Path)
	require.NotNil(t, c.FindType("com.example.Widget"))
	assert.Len(t, c.Types(), 4)

	c.SetPaths(nil)
	require.NoError(t, c.Load(context.Background()))
	assert.Nil(t, c.FindType("com.example.Widget"))
}

func TestSymbols(t *testing.T) {
	c := loaded(t)

	symbols := c.Symbols("SPIN")
	require.Len(t, symbols, 4)

	assert.Equal(t, Symbol{Name: "Spinner", Kind: SymbolKindInterface, Container: "com.example", Type: c.FindType("com.example.Spinner")}, symbols[0])
	var containers []string
	for _, s := range symbols[1:] {
		assert.Equal(t, "spin", s.Name)
		assert.Equal(t, SymbolKindMethod, s.Kind)
		containers = append(containers, s.Container)
	}
	assert.Equal(t, []string{"com.example.Base", "com.example.Spinner", "com.example.Widget"}, containers)

	ctors := c.Symbols("init")
	require.Len(t, ctors, 1)
	assert.Equal(t, SymbolKindConstructor, ctors[0].Kind)
	assert.Equal(t, "Widget", ctors[0].Name)

	old := c.Symbols("old")
	require.Len(t, old, 1)
	assert.True(t, old[0].Deprecated)

	size := c.Symbols("SIZE")
	require.Len(t, size, 1)
	assert.Equal(t, SymbolKindConstant, size[0].Kind)
}

func TestMembers(t *testing.T) {
	c := loaded(t)

	items := c.Members(c.FindType("com.example.Widget"))
	assert.Equal(t, []string{"spin", "twirl", "old", "color", "base", "SIZE"}, labels(items))

	twirl := items[1]
	assert.Equal(t, CompletionKindMethod, twirl.Kind)
	assert.Equal(t, "void twirl(int speed)", twirl.Detail)
	assert.Equal(t, "twirl(${1:speed})", twirl.InsertText)
	assert.True(t, items[2].Deprecated)
	assert.Equal(t, "java.lang.String", items[3].Detail)
}

func TestComplete(t *testing.T) {
	c := loaded(t)

	tests := []struct {
		expr string
		want []string
	}{
		{"co", []string{"com"}},
		{"com.", []string{"example"}},
		{"com.example.", []string{"Base", "Spinner", "Widget", "util"}},
		{"com.example.W", []string{"Widget"}},
		{"com.example.Widget.", []string{"spin", "twirl", "old", "color", "base", "SIZE"}},
		{"com.example.Widget.tw", []string{"twirl"}},
		{"com.example.util.", []string{"Helpers"}},
		{"org.", nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, labels(c.Complete(tt.expr)))
		})
	}
}

func TestDescribe(t *testing.T) {
	c := loaded(t)

	assert.Equal(t, "public class Widget extends com.example.Base implements com.example.Spinner", c.Describe("com.example.Widget"))
	assert.Equal(t, "public void twirl(int speed)", c.Describe("com.example.Widget.twirl"))
	assert.Equal(t, "public static final int SIZE = 3", c.Describe("com.example.Base.SIZE"))
	assert.Empty(t, c.Describe("com.example.Widget.nothing"))
	assert.Empty(t, c.Describe("Widget"))
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	jar := exampleJar(t, dir)
	classes := filepath.Join(dir, "classes")
	require.NoError(t, os.MkdirAll(classes, 0o755))

	w := NewFileWatcher(New([]string{jar, classes}))
	assert.False(t, w.Changed(), "first poll only records")
	assert.False(t, w.Changed())

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(jar, later, later))
	assert.True(t, w.Changed())
	assert.False(t, w.Changed())

	require.NoError(t, os.WriteFile(filepath.Join(classes, "A.class"), nil, 0o644))
	assert.True(t, w.Changed())

	require.NoError(t, os.Remove(jar))
	assert.True(t, w.Changed())
}

func TestQualifiedNameAt(t *testing.T) {
	text := "import com.example.Widget;\nWidget w = java.util.List.of();\n"

	tests := []struct {
		line, char uint32
		want       string
	}{
		{0, 10, "com"},
		{0, 12, "com.example"},
		{0, 25, "com.example.Widget"},
		{0, 19, "com.example.Widget"},
		{1, 25, "java.util.List"},
		{1, 16, "java.util"},
		{1, 6, "Widget"},
	}
	for _, tt := range tests {
		pos := protocol.Position{Line: tt.line, Character: tt.char}
		start, end := qualifiedNameAt(text, pos)
		assert.Equal(t, tt.want, text[start:end], "%d:%d", tt.line, tt.char)
	}
}

func TestTypeURI(t *testing.T) {
	c := loaded(t)
	widget := c.FindType("com.example.Widget")
	jar := c.Paths()[0]

	assert.Equal(t, "jar:file://"+filepath.ToSlash(jar)+"!/com/example/Widget.class", typeURI(Symbol{Type: widget}))
}

func TestClasspathOption(t *testing.T) {
	assert.Equal(t, []string{"a.jar", "b"}, classpathOption(map[string]any{"classpath": []any{"a.jar", "", 3, "b"}}))
	assert.Nil(t, classpathOption(nil))
	assert.Nil(t, classpathOption(map[string]any{"classpath": "a.jar"}))
}
