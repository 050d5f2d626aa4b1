package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javil/format"
	"github.com/dhamidi/javil/java"
)

func newFindCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "find <type>",
		Short: "Find a type on the classpath and print where it was loaded from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			td, err := opts.findType(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, format.Declaration(td))
			if c := td.Container(); c != nil {
				fmt.Fprintf(out, "from\t%s\n", c.FileName)
			}
			return nil
		},
	}
}

func newBaseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "base <type> <method>",
		Short: "Print the superclass method each matching method overrides",
		Long: `Print the superclass method each matching method overrides.

The method is a name, optionally followed by its descriptor to pick one
overload, e.g. "compareTo(Ljava/lang/Object;)I".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			methods, err := selectMethods(opts, cmd, args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range methods {
				base, err := m.FindBaseMethodOrDefault()
				if err != nil {
					return err
				}
				printResolution(out, m, base)
			}
			return nil
		},
	}
}

func newImplementsCmd(opts *options) *cobra.Command {
	var iface string

	cmd := &cobra.Command{
		Use:   "implements <type> <method>",
		Short: "Print the interface method each matching method implements",
		Long: `Print the interface method each matching method implements.

With --interface, the method is looked up on that interface instead and the
concrete method of <type> implementing it is printed, default methods
included.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if iface == "" {
				methods, err := selectMethods(opts, cmd, args[0], args[1])
				if err != nil {
					return err
				}
				for _, m := range methods {
					decl, err := m.FindImplementedDeclarationOrDefault()
					if err != nil {
						return err
					}
					printResolution(out, m, decl)
				}
				return nil
			}

			resolver, err := opts.resolver(cmd.Context())
			if err != nil {
				return err
			}
			td := resolver.FindType(args[0])
			if td == nil {
				return fmt.Errorf("type not found: %s", args[0])
			}
			ref := implementedInterface(td, iface)
			if ref == nil {
				return fmt.Errorf("%s does not implement %s", td.FullName(), iface)
			}
			ifaceDef, err := ref.Resolve()
			if err != nil {
				return err
			}
			if ifaceDef == nil {
				return fmt.Errorf("cannot resolve %s", ref.FullName())
			}
			methods, err := matchMethods(ifaceDef, args[1])
			if err != nil {
				return err
			}
			for _, m := range methods {
				impl, err := td.FindImplementedInterfaceOrDefault(ref, m)
				if err != nil {
					return err
				}
				printResolution(out, m, impl)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&iface, "interface", "i", "", "interface whose method to resolve on <type>")

	return cmd
}

// implementedInterface finds the reference through which td or one of its
// superclasses implements the interface named name.
func implementedInterface(td *java.TypeDefinition, name string) java.TypeReference {
	erased := strings.ReplaceAll(name, "/", ".")
	for cur := td; cur != nil; {
		for _, ii := range cur.ImplementedInterfaces {
			if ii.InterfaceType.FullNameGenericsErased() == erased {
				return ii.InterfaceType
			}
		}
		if cur.BaseType == nil {
			break
		}
		next, err := cur.BaseType.Resolve()
		if err != nil {
			break
		}
		cur = next
	}
	return nil
}

func selectMethods(opts *options, cmd *cobra.Command, typeName, selector string) ([]*java.MethodDefinition, error) {
	td, err := opts.findType(cmd.Context(), typeName)
	if err != nil {
		return nil, err
	}
	return matchMethods(td, selector)
}

// matchMethods returns the methods of td named by selector, "name" or
// "name(descriptor)".
func matchMethods(td *java.TypeDefinition, selector string) ([]*java.MethodDefinition, error) {
	name, desc, hasDesc := strings.Cut(selector, "(")
	var methods []*java.MethodDefinition
	for _, m := range td.FindMethods(name) {
		if m.IsBridge {
			continue
		}
		if hasDesc && m.Descriptor() != "("+desc {
			continue
		}
		methods = append(methods, m)
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("method not found: %s.%s", td.FullName(), selector)
	}
	return methods, nil
}

func printResolution(w io.Writer, m, found *java.MethodDefinition) {
	fmt.Fprintf(w, "%s.%s%s\n", m.DeclaringType.FullNameGenericsErased(), m.Name, m.Descriptor())
	if found == nil {
		fmt.Fprintln(w, "\t-")
		return
	}
	fmt.Fprintf(w, "\t%s.%s%s\n", found.DeclaringType.FullNameGenericsErased(), found.Name, found.Descriptor())
	fmt.Fprintf(w, "\t%s\n", format.MethodDeclaration(found))
}
