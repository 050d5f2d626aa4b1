package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javil/java/codebase"
)

func newSymbolsCmd(opts *options) *cobra.Command {
	var complete bool

	cmd := &cobra.Command{
		Use:   "symbols <query>",
		Short: "Search types and members on the classpath by name",
		Long: `Search types and members on the classpath by name.

With --complete the query is completed as a qualified expression instead,
e.g. "java.util.Li" or "java.util.List.".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := opts.entries()
			if err != nil {
				return err
			}
			c := codebase.New(entries)
			if err := c.Load(cmd.Context()); err != nil {
				log.Warningf("%s", err)
			}

			out := cmd.OutOrStdout()
			if complete {
				for _, item := range c.Complete(args[0]) {
					fmt.Fprintf(out, "%s\t%s\t%s\n", completionKindName(item.Kind), item.Label, item.Detail)
				}
				return nil
			}
			for _, s := range c.Symbols(args[0]) {
				deprecated := ""
				if s.Deprecated {
					deprecated = "\tdeprecated"
				}
				fmt.Fprintf(out, "%s\t%s\t%s%s\n", symbolKindName(s.Kind), s.Name, s.Container, deprecated)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&complete, "complete", false, "complete a qualified expression")

	return cmd
}

func symbolKindName(kind codebase.SymbolKind) string {
	switch kind {
	case codebase.SymbolKindInterface:
		return "interface"
	case codebase.SymbolKindEnum:
		return "enum"
	case codebase.SymbolKindMethod:
		return "method"
	case codebase.SymbolKindConstructor:
		return "constructor"
	case codebase.SymbolKindField:
		return "field"
	case codebase.SymbolKindConstant:
		return "constant"
	}
	return "class"
}

func completionKindName(kind codebase.CompletionKind) string {
	switch kind {
	case codebase.CompletionKindMethod:
		return "method"
	case codebase.CompletionKindField:
		return "field"
	case codebase.CompletionKindPackage:
		return "package"
	}
	return "class"
}
