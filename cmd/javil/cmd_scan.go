package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/javil/java"
	"github.com/dhamidi/javil/java/scanner"
)

func newScanCmd(opts *options) *cobra.Command {
	var showErrors bool

	cmd := &cobra.Command{
		Use:   "scan [path...]",
		Short: "Load jars, zips or class directories and report what was found",
		Long: `Load jars, zips or class directories and report what was found.

Without arguments the configured classpath is scanned. Paths are submitted to
a background scanner; the class files of each are parsed in parallel.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				entries, err := opts.entries()
				if err != nil {
					return err
				}
				paths = entries
			}
			if len(paths) == 0 {
				return fmt.Errorf("nothing to scan")
			}

			s := scanner.New(java.NewResolver())
			var ids []string
			for _, p := range paths {
				ids = append(ids, s.Submit(p))
			}
			for _, id := range ids {
				if _, err := s.Wait(cmd.Context(), id); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			var types, failed int
			for _, r := range s.List() {
				duration := r.EndedAt.Sub(r.StartedAt).Round(time.Millisecond)
				if r.Status == scanner.StatusFailed {
					failed++
					fmt.Fprintf(out, "[FAILED] %s: %s\n", r.Request.Path, r.Error)
					continue
				}
				n := len(r.Container.AllTypes())
				types += n
				fmt.Fprintf(out, "[OK] %s (%d types, %d skipped, %s)\n", r.Request.Path, n, len(r.Errors), duration)
				if showErrors {
					for _, e := range r.Errors {
						fmt.Fprintf(out, "  - %s\n", e)
					}
				}
			}

			fmt.Fprintf(out, "\n=== SCAN COMPLETE ===\n")
			fmt.Fprintf(out, "Types found: %d\n", types)
			fmt.Fprintf(out, "Failed entries: %d\n", failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d entries failed", failed, len(paths))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showErrors, "errors", "e", false, "list skipped class files")

	return cmd
}
