package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/javil/java"
	"github.com/dhamidi/javil/java/scanner"
	"github.com/dhamidi/javil/project"
)

var version = "dev"

var log = commonlog.GetLogger("javil")

// options holds the persistent flags merged with the project configuration.
type options struct {
	classpath  []string
	configFile string
	verbosity  int

	project *project.Project
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "javil",
		Short:         "Inspect Java class files, signatures and type hierarchies",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringSliceVarP(&opts.classpath, "classpath", "c", nil, "classpath entries (jars, zips, class directories); overrides javil.yml")
	flags.StringVar(&opts.configFile, "config", "", "configuration file (default ./javil.yml)")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "log more (repeat for debug output)")

	rootCmd.AddCommand(newSignatureCmd())
	rootCmd.AddCommand(newFindCmd(opts))
	rootCmd.AddCommand(newBaseCmd(opts))
	rootCmd.AddCommand(newImplementsCmd(opts))
	rootCmd.AddCommand(newDumpCmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newSymbolsCmd(opts))
	rootCmd.AddCommand(newLSPCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (o *options) load() error {
	var (
		p   *project.Project
		err error
	)
	if o.configFile != "" {
		p, err = project.LoadFile(o.configFile)
	} else {
		p, err = project.Load()
	}
	if err != nil {
		return err
	}
	o.project = p

	verbosity := o.verbosity
	if verbosity == 0 {
		verbosity = p.Verbosity
	}
	commonlog.Configure(verbosity, nil)
	return nil
}

// entries returns the classpath given on the command line, or the
// project's configured classpath and lib jars.
func (o *options) entries() ([]string, error) {
	if len(o.classpath) > 0 {
		return o.classpath, nil
	}
	return o.project.ClasspathEntries()
}

// resolver loads the classpath into a new resolver. Entries are loaded in
// order, so earlier entries shadow later ones.
func (o *options) resolver(ctx context.Context) (*java.Resolver, error) {
	entries, err := o.entries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("empty classpath: pass --classpath or create %s.yml", project.ConfigName)
	}
	resolver := java.NewResolver()
	if _, err := scanner.LoadAll(ctx, entries, resolver); err != nil {
		return nil, err
	}
	return resolver, nil
}

func (o *options) findType(ctx context.Context, name string) (*java.TypeDefinition, error) {
	resolver, err := o.resolver(ctx)
	if err != nil {
		return nil, err
	}
	td := resolver.FindType(name)
	if td == nil {
		return nil, fmt.Errorf("type not found: %s", name)
	}
	return td, nil
}
