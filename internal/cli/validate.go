package cli

import (
	"errors"
	"fmt"

	"github.com/doccat-labs/doccat/internal/catalog"
	"github.com/spf13/cobra"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate [source...]",
	Short: "Validate catalog sources",
	Long: `Load each source, reporting schema violations and duplicate types, then
run consistency checks (types owned by undeclared packages, duplicate package
declarations, empty packages).

Sources default to --catalog or the configured catalogs. The command fails
when any source cannot be loaded, or with --strict when any warning is found.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat consistency warnings as failures")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	sources := args
	if len(sources) == 0 {
		sources = selectedSources()
	}

	reg, err := newRegistry(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	warnings := 0
	for _, src := range sources {
		root, err := reg.Load(cmd.Context(), src)
		if err != nil {
			failed++
			var pe *catalog.ParseError
			if errors.As(err, &pe) && len(pe.Issues) > 0 {
				fmt.Fprintf(out, "%s: invalid\n", src)
				for _, issue := range pe.Issues {
					fmt.Fprintf(out, "  error   %s\n", issue)
				}
				continue
			}
			fmt.Fprintf(out, "%s: %v\n", src, err)
			continue
		}

		findings := root.Check()
		stats := root.Stats()
		fmt.Fprintf(out, "%s: ok (%d types, %d packages)\n", src, stats.Types, stats.Packages)
		for _, f := range findings {
			if f.Severity == catalog.SeverityWarning {
				warnings++
			}
			fmt.Fprintf(out, "  %-7s %s: %s\n", f.Severity, f.Path, f.Message)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d source(s) invalid", failed, len(sources))
	}
	if validateStrict && warnings > 0 {
		return fmt.Errorf("%d consistency warning(s)", warnings)
	}
	return nil
}
