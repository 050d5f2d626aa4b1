package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/javil/java/codebase"
)

func newLSPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Long: `Start the Language Server Protocol server on stdio.

A client can pass {"classpath": [...]} in its initializationOptions. Otherwise
--classpath or ./javil.yml is used, falling back to the javil.yml in the
workspace root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var classpath []string
			if len(opts.classpath) > 0 {
				classpath = opts.classpath
			} else if opts.project.ConfigFile != "" {
				entries, err := opts.entries()
				if err != nil {
					return err
				}
				classpath = entries
			}
			server := codebase.NewLSPServer(version, classpath)
			return server.RunStdio()
		},
	}
}
