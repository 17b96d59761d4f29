package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var packagesJSON bool

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List declared packages with type counts",
	RunE:  runPackages,
}

func init() {
	packagesCmd.Flags().BoolVar(&packagesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(packagesCmd)
}

// packageEntry represents a package for display.
type packageEntry struct {
	Name  string `json:"name"`
	Types int    `json:"types"`
}

func runPackages(cmd *cobra.Command, args []string) error {
	root, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	stats := root.Stats()
	entries := []packageEntry{}
	seen := make(map[string]bool)
	for _, p := range root.Packages() {
		if seen[p] {
			continue
		}
		seen[p] = true
		entries = append(entries, packageEntry{Name: p, Types: stats.ByPackage[p]})
	}

	if packagesJSON {
		return printJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No packages declared.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PACKAGE\tTYPES")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\n", e.Name, e.Types)
	}
	return w.Flush()
}
