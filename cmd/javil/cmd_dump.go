package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javil/classfile"
	"github.com/dhamidi/javil/format"
	"github.com/dhamidi/javil/java"
)

func newDumpCmd(opts *options) *cobra.Command {
	var dumpFormat string

	cmd := &cobra.Command{
		Use:   "dump <type|file.class>...",
		Short: "Dump the type model of classpath types or .class files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dumpFormat == "" {
				dumpFormat = opts.project.Format
			}
			enc, err := format.NewEncoder(dumpFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			var resolver *java.Resolver
			for _, arg := range args {
				var td *java.TypeDefinition
				if filepath.Ext(arg) == ".class" {
					td, err = loadClassFile(arg)
				} else {
					if resolver == nil {
						if resolver, err = opts.resolver(cmd.Context()); err != nil {
							return err
						}
					}
					if td = resolver.FindType(arg); td == nil {
						err = fmt.Errorf("type not found: %s", arg)
					}
				}
				if err != nil {
					return err
				}
				if err := enc.Encode(td); err != nil {
					return fmt.Errorf("encode %s: %w", dumpFormat, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "", "output format ("+strings.Join(format.Names, ", ")+"); defaults to the configured format")

	return cmd
}

// loadClassFile reads a single class file into its own container.
func loadClassFile(path string) (*java.TypeDefinition, error) {
	cf, err := classfile.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parse class file: %w", err)
	}
	container := java.NewContainer(path, java.NewResolver())
	return container.AddClassFile(cf)
}
