package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javil/java"
	"github.com/dhamidi/javil/signature"
)

func newSignatureCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "signature <signature>...",
		Short: "Parse type, class or method signatures and print their name projections",
		Example: `  javil signature 'Ljava/util/Map<TK;TV;>;'
  javil signature --kind method '<T:Ljava/lang/Object;>(TT;I)Ljava/util/List<TT;>;'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, text := range args {
				if i > 0 {
					fmt.Fprintln(out)
				}
				var err error
				switch kind {
				case "type":
					err = printTypeSignature(out, text)
				case "class":
					err = printClassSignature(out, text)
				case "method":
					err = printMethodSignature(out, text)
				default:
					return fmt.Errorf("unknown signature kind: %s (expected type, class, method)", kind)
				}
				if err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "type", "signature kind (type, class, method)")

	return cmd
}

func printTypeSignature(w io.Writer, text string) error {
	ref, err := java.CreateFromSignatureString(text, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "signature\t%s\n", text)
	fmt.Fprintf(w, "full\t%s\n", ref.FullName())
	fmt.Fprintf(w, "erased\t%s\n", ref.FullNameGenericsErased())
	fmt.Fprintf(w, "nested\t%s\n", ref.NestedName())
	fmt.Fprintf(w, "jni\t%s\n", ref.JniFullName())
	fmt.Fprintf(w, "jni-erased\t%s\n", ref.JniFullNameGenericsErased())
	return nil
}

func printClassSignature(w io.Writer, text string) error {
	sig, err := signature.ParseClassSignature(text)
	if err != nil {
		return err
	}
	printTypeParameters(w, sig.TypeParameters)
	super, err := fullName(sig.Superclass)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "extends\t%s\n", super)
	for _, iface := range sig.Interfaces {
		name, err := fullName(iface)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "implements\t%s\n", name)
	}
	return nil
}

func printMethodSignature(w io.Writer, text string) error {
	sig, err := signature.ParseMethodSignature(text)
	if err != nil {
		return err
	}
	printTypeParameters(w, sig.TypeParameters)
	for i, p := range sig.Parameters {
		name, err := fullName(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "param %d\t%s\n", i, name)
	}
	ret, err := fullName(sig.Return)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "returns\t%s\n", ret)
	for _, t := range sig.Throws {
		name, err := fullName(t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "throws\t%s\n", name)
	}
	return nil
}

func printTypeParameters(w io.Writer, params []signature.TypeParameter) {
	for _, tp := range params {
		var bounds []string
		if tp.ClassBound != "" {
			bounds = append(bounds, tp.ClassBound)
		}
		bounds = append(bounds, tp.InterfaceBounds...)
		for i, b := range bounds {
			if name, err := fullName(b); err == nil {
				bounds[i] = name
			}
		}
		fmt.Fprintf(w, "type-param\t%s\t%s\n", tp.Name, strings.Join(bounds, " & "))
	}
}

func fullName(text string) (string, error) {
	ref, err := java.CreateFromSignatureString(text, nil)
	if err != nil {
		return "", err
	}
	return ref.FullName(), nil
}
