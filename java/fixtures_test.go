package java

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javil/classfile"
)

const (
	accInterface = classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract
	accAbstract  = classfile.AccPublic | classfile.AccAbstract
)

// testClass describes a class file to build in memory.
type testClass struct {
	name       string
	super      string
	flags      classfile.AccessFlags
	signature  string
	interfaces []string
	inner      []classfile.InnerClass
	attrs      func(b *classfile.Builder) []classfile.AttributeInfo
	fields     []testMember
	methods    []testMember
}

type testMember struct {
	flags     classfile.AccessFlags
	name      string
	desc      string
	signature string
	attrs     func(b *classfile.Builder) []classfile.AttributeInfo
}

func (tc testClass) build(t *testing.T) *classfile.ClassFile {
	t.Helper()
	super := tc.super
	if super == "" && tc.name != "java/lang/Object" {
		super = "java/lang/Object"
	}
	flags := tc.flags
	if flags == 0 {
		flags = classfile.AccPublic | classfile.AccSuper
	}

	b := classfile.NewBuilder(tc.name, super, flags)
	for _, iface := range tc.interfaces {
		b.AddInterface(iface)
	}
	if tc.signature != "" {
		b.AddAttribute(b.SignatureAttribute(tc.signature))
	}
	if len(tc.inner) > 0 {
		b.AddAttribute(b.InnerClassesAttribute(tc.inner...))
	}
	if tc.attrs != nil {
		b.AddAttribute(tc.attrs(b)...)
	}
	for _, f := range tc.fields {
		b.AddField(f.flags, f.name, f.desc, f.attributes(b)...)
	}
	for _, m := range tc.methods {
		flags := m.flags
		if flags == 0 {
			flags = classfile.AccPublic
		}
		b.AddMethod(flags, m.name, m.desc, m.attributes(b)...)
	}

	cf, err := b.Build()
	require.NoError(t, err, tc.name)
	return cf
}

func (m testMember) attributes(b *classfile.Builder) []classfile.AttributeInfo {
	var attrs []classfile.AttributeInfo
	if m.signature != "" {
		attrs = append(attrs, b.SignatureAttribute(m.signature))
	}
	if m.attrs != nil {
		attrs = append(attrs, m.attrs(b)...)
	}
	return attrs
}

func abstractMethod(name, desc, sig string) testMember {
	return testMember{flags: classfile.AccPublic | classfile.AccAbstract, name: name, desc: desc, signature: sig}
}

func method(name, desc, sig string) testMember {
	return testMember{name: name, desc: desc, signature: sig}
}

func load(t *testing.T, c *Container, classes ...testClass) {
	t.Helper()
	for _, tc := range classes {
		_, err := c.AddClassFile(tc.build(t))
		require.NoError(t, err, tc.name)
	}
}

// runtimeClasses stands in for the parts of the JDK the examples use.
func runtimeClasses() []testClass {
	return []testClass{
		{name: "java/lang/Object", methods: []testMember{
			method("equals", "(Ljava/lang/Object;)Z", ""),
			method("hashCode", "()I", ""),
			method("toString", "()Ljava/lang/String;", ""),
		}},
		{
			name:       "java/lang/String",
			flags:      classfile.AccPublic | classfile.AccFinal | classfile.AccSuper,
			signature:  "Ljava/lang/Object;Ljava/lang/Comparable<Ljava/lang/String;>;",
			interfaces: []string{"java/lang/Comparable"},
			methods:    []testMember{method("compareTo", "(Ljava/lang/String;)I", "")},
		},
		{name: "java/lang/Number", flags: accAbstract},
		{name: "java/lang/Integer", super: "java/lang/Number", flags: classfile.AccPublic | classfile.AccFinal},
		{name: "java/lang/Exception"},
		{name: "java/io/IOException", super: "java/lang/Exception"},
		{name: "java/lang/Deprecated", flags: accInterface | classfile.AccAnnotation},
		{
			name:      "java/lang/Comparable",
			flags:     accInterface,
			signature: "<T:Ljava/lang/Object;>Ljava/lang/Object;",
			methods:   []testMember{abstractMethod("compareTo", "(Ljava/lang/Object;)I", "(TT;)I")},
		},
		{name: "java/lang/Class", flags: classfile.AccPublic | classfile.AccFinal, signature: "<T:Ljava/lang/Object;>Ljava/lang/Object;"},
		{name: "java/util/Map", flags: accInterface, signature: "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;"},
		{name: "java/util/List", flags: accInterface, signature: "<E:Ljava/lang/Object;>Ljava/lang/Object;"},
		{
			name:      "java/util/function/Function",
			flags:     accInterface,
			signature: "<T:Ljava/lang/Object;R:Ljava/lang/Object;>Ljava/lang/Object;",
			methods:   []testMember{abstractMethod("apply", "(Ljava/lang/Object;)Ljava/lang/Object;", "(TT;)TR;")},
		},
	}
}

// exampleClasses models:
//
//	class BaseMethodBaseClass { void doThing(int x); Object getValue(); static void helper(); }
//	class BaseMethodDerivedClass extends BaseMethodBaseClass { void doThing(int x); String getValue(); static void helper(); }
//	class BaseMethodGrandchildClass extends BaseMethodDerivedClass { void doThing(int x); void doThing(String s); }
//	class BaseMethodGenericBaseClass<T> { T doThing(T value); void doList(List<T> l); }
//	class BaseMethodGenericDerivedClass<T> extends BaseMethodGenericBaseClass<T> { T doThing(T value); }
//	class BaseMethodGenericConcreteDerivedClass extends BaseMethodGenericBaseClass<Object> { Object doThing(Object value); void doList(List<Object> l); }
//	class BaseMethodGenericRederivedClass<K> extends BaseMethodGenericBaseClass<K> {}
//	class BaseMethodGenericRederivedGrandchildClass extends BaseMethodGenericRederivedClass<Object> { Object doThing(Object value); }
//	class BaseMethodGenericRederivedStringClass extends BaseMethodGenericRederivedClass<String> { String doThing(String value); void doThing(int value); }
//	class GenericNestedType<A, B> { void doThing2(Map<? extends A, ? extends B>); void doThing3(A, Function<? super A, ? extends B>); void doThing4(Class<?>[]); }
//	class GenericDerivedNestedType extends GenericNestedType<String, Integer> { ...overrides of all three... }
//
//	interface InterfaceA { int add(int a, int b); int subtract(int a, int b); }
//	interface InterfaceC extends InterfaceA { default int add(int a, int b); }
//	interface InterfaceE extends InterfaceC {}
//	interface MyComparable<T> { int compareTo(T other); }
//	class InterfaceTypeA implements InterfaceA { add; subtract; }
//	class InterfaceTypeB extends InterfaceTypeA {}
//	abstract class InterfaceTypeC implements InterfaceA {}
//	abstract class InterfaceTypeD implements InterfaceA, InterfaceC {}
//	abstract class InterfaceTypeE implements InterfaceE, MyComparable<InterfaceTypeE> { int compareTo(InterfaceTypeE); }
//	abstract class GenericInterfaceTypeA<S> implements MyComparable<S> { int compareTo(S); }
func exampleClasses() []testClass {
	const ex = "com/example/"
	return []testClass{
		{name: ex + "BaseMethodBaseClass", methods: []testMember{
			method("<init>", "()V", ""),
			method("doThing", "(I)V", ""),
			method("getValue", "()Ljava/lang/Object;", ""),
			{flags: classfile.AccPublic | classfile.AccStatic, name: "helper", desc: "()V"},
		}},
		{name: ex + "BaseMethodDerivedClass", super: ex + "BaseMethodBaseClass", methods: []testMember{
			method("<init>", "()V", ""),
			method("doThing", "(I)V", ""),
			method("getValue", "()Ljava/lang/String;", ""),
			{flags: classfile.AccPublic | classfile.AccBridge | classfile.AccSynthetic, name: "getValue", desc: "()Ljava/lang/Object;"},
			{flags: classfile.AccPublic | classfile.AccStatic, name: "helper", desc: "()V"},
		}},
		{name: ex + "BaseMethodGrandchildClass", super: ex + "BaseMethodDerivedClass", methods: []testMember{
			method("doThing", "(Ljava/lang/String;)V", ""),
			method("doThing", "(I)V", ""),
		}},
		{
			name:      ex + "BaseMethodGenericBaseClass",
			signature: "<T:Ljava/lang/Object;>Ljava/lang/Object;",
			methods: []testMember{
				method("doThing", "(Ljava/lang/Object;)Ljava/lang/Object;", "(TT;)TT;"),
				method("doList", "(Ljava/util/List;)V", "(Ljava/util/List<TT;>;)V"),
			},
		},
		{
			name:      ex + "BaseMethodGenericDerivedClass",
			super:     ex + "BaseMethodGenericBaseClass",
			signature: "<T:Ljava/lang/Object;>Lcom/example/BaseMethodGenericBaseClass<TT;>;",
			methods:   []testMember{method("doThing", "(Ljava/lang/Object;)Ljava/lang/Object;", "(TT;)TT;")},
		},
		{
			name:      ex + "BaseMethodGenericConcreteDerivedClass",
			super:     ex + "BaseMethodGenericBaseClass",
			signature: "Lcom/example/BaseMethodGenericBaseClass<Ljava/lang/Object;>;",
			methods: []testMember{
				method("doThing", "(Ljava/lang/Object;)Ljava/lang/Object;", ""),
				method("doList", "(Ljava/util/List;)V", "(Ljava/util/List<Ljava/lang/Object;>;)V"),
			},
		},
		{
			name:      ex + "BaseMethodGenericRederivedClass",
			super:     ex + "BaseMethodGenericBaseClass",
			signature: "<K:Ljava/lang/Object;>Lcom/example/BaseMethodGenericBaseClass<TK;>;",
		},
		{
			name:      ex + "BaseMethodGenericRederivedGrandchildClass",
			super:     ex + "BaseMethodGenericRederivedClass",
			signature: "Lcom/example/BaseMethodGenericRederivedClass<Ljava/lang/Object;>;",
			methods:   []testMember{method("doThing", "(Ljava/lang/Object;)Ljava/lang/Object;", "")},
		},
		{
			name:      ex + "BaseMethodGenericRederivedStringClass",
			super:     ex + "BaseMethodGenericRederivedClass",
			signature: "Lcom/example/BaseMethodGenericRederivedClass<Ljava/lang/String;>;",
			methods: []testMember{
				method("doThing", "(Ljava/lang/String;)Ljava/lang/String;", ""),
				method("doThing", "(I)V", ""),
			},
		},
		{
			name:      ex + "GenericNestedType",
			signature: "<A:Ljava/lang/Object;B:Ljava/lang/Object;>Ljava/lang/Object;",
			methods: []testMember{
				method("doThing2", "(Ljava/util/Map;)V", "(Ljava/util/Map<+TA;+TB;>;)V"),
				method("doThing3", "(Ljava/lang/Object;Ljava/util/function/Function;)V", "(TA;Ljava/util/function/Function<-TA;+TB;>;)V"),
				method("doThing4", "([Ljava/lang/Class;)V", "([Ljava/lang/Class<*>;)V"),
			},
		},
		{
			name:      ex + "GenericDerivedNestedType",
			super:     ex + "GenericNestedType",
			signature: "Lcom/example/GenericNestedType<Ljava/lang/String;Ljava/lang/Integer;>;",
			methods: []testMember{
				method("doThing2", "(Ljava/util/Map;)V", "(Ljava/util/Map<+Ljava/lang/String;+Ljava/lang/Integer;>;)V"),
				method("doThing3", "(Ljava/lang/String;Ljava/util/function/Function;)V", "(Ljava/lang/String;Ljava/util/function/Function<-Ljava/lang/String;+Ljava/lang/Integer;>;)V"),
				method("doThing4", "([Ljava/lang/Class;)V", ""),
			},
		},

		{name: ex + "InterfaceA", flags: accInterface, methods: []testMember{
			abstractMethod("add", "(II)I", ""),
			abstractMethod("subtract", "(II)I", ""),
		}},
		{name: ex + "InterfaceC", flags: accInterface, interfaces: []string{ex + "InterfaceA"}, methods: []testMember{
			method("add", "(II)I", ""),
		}},
		{name: ex + "InterfaceE", flags: accInterface, interfaces: []string{ex + "InterfaceC"}},
		{
			name:      ex + "MyComparable",
			flags:     accInterface,
			signature: "<T:Ljava/lang/Object;>Ljava/lang/Object;",
			methods:   []testMember{abstractMethod("compareTo", "(Ljava/lang/Object;)I", "(TT;)I")},
		},
		{name: ex + "InterfaceTypeA", interfaces: []string{ex + "InterfaceA"}, methods: []testMember{
			method("add", "(II)I", ""),
			method("subtract", "(II)I", ""),
		}},
		{name: ex + "InterfaceTypeB", super: ex + "InterfaceTypeA"},
		{name: ex + "InterfaceTypeC", flags: accAbstract, interfaces: []string{ex + "InterfaceA"}},
		{name: ex + "InterfaceTypeD", flags: accAbstract, interfaces: []string{ex + "InterfaceA", ex + "InterfaceC"}},
		{
			name:       ex + "InterfaceTypeE",
			flags:      accAbstract,
			signature:  "Ljava/lang/Object;Lcom/example/InterfaceE;Lcom/example/MyComparable<Lcom/example/InterfaceTypeE;>;",
			interfaces: []string{ex + "InterfaceE", ex + "MyComparable"},
			methods: []testMember{
				{flags: classfile.AccPublic | classfile.AccBridge | classfile.AccSynthetic, name: "compareTo", desc: "(Ljava/lang/Object;)I"},
				method("compareTo", "(Lcom/example/InterfaceTypeE;)I", ""),
			},
		},
		{
			name:       ex + "GenericInterfaceTypeA",
			flags:      accAbstract,
			signature:  "<S:Ljava/lang/Object;>Ljava/lang/Object;Lcom/example/MyComparable<TS;>;",
			interfaces: []string{ex + "MyComparable"},
			methods:    []testMember{method("compareTo", "(Ljava/lang/Object;)I", "(TS;)I")},
		},
	}
}

type world struct {
	resolver *Resolver
	runtime  *Container
	examples *Container
}

// newWorld loads the runtime stand-ins and the examples into two
// containers sharing one resolver.
func newWorld(t *testing.T) *world {
	t.Helper()
	r := NewResolver()
	rt := NewContainer("rt.jar", r)
	ex := NewContainer("examples.jar", r)
	r.AddContainer(rt)
	r.AddContainer(ex)
	load(t, rt, runtimeClasses()...)
	load(t, ex, exampleClasses()...)
	return &world{resolver: r, runtime: rt, examples: ex}
}

func (w *world) typ(t *testing.T, name string) *TypeDefinition {
	t.Helper()
	td := w.resolver.FindType(name)
	require.NotNil(t, td, name)
	return td
}

// method returns the first method of typeName called name whose
// descriptor starts with descPrefix.
func (w *world) method(t *testing.T, typeName, name, descPrefix string) *MethodDefinition {
	t.Helper()
	for _, m := range w.typ(t, typeName).FindMethods(name) {
		if strings.HasPrefix(m.Descriptor(), descPrefix) {
			return m
		}
	}
	t.Fatalf("no method %s%s on %s", name, descPrefix, typeName)
	return nil
}

// describe renders "ret Declaring.name (ptype pname, ...)".
func describe(m *MethodDefinition) string {
	if m == nil {
		return "<nil>"
	}
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s %s.%s (%s)", m.ReturnType.FullName(), m.DeclaringType.FullName(), m.Name, strings.Join(params, ", "))
}
