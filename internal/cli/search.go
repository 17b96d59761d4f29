package cli

import (
	"fmt"
	"strings"

	"github.com/doccat-labs/doccat/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	searchKindFilter    string
	searchPackageFilter string
	searchJSON          bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for types across all catalog sources",
	Long: `Search for types across every configured catalog source.

The query matches against simple and qualified type names (case-insensitive
substring). Use --kind to filter by declaration kind and --package to restrict
the search to one package.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchKindFilter, "kind", "", "Filter by kind (Class, AbstractClass)")
	searchCmd.Flags().StringVar(&searchPackageFilter, "package", "", "Filter by owning package")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := catalog.Query{Package: searchPackageFilter}
	if len(args) > 0 {
		query.Text = args[0]
	}
	if searchKindFilter != "" {
		kind, err := parseKind(searchKindFilter)
		if err != nil {
			return err
		}
		query.Kind = kind
	}

	root, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	results := root.Search(query)
	if len(results) == 0 {
		if searchJSON {
			return printJSON(cmd, []any{})
		}
		fmt.Fprintln(cmd.OutOrStdout(), noResultsMessage(query))
		return nil
	}

	if searchJSON {
		return printJSON(cmd, results)
	}
	return printTypesTable(cmd, results)
}

// parseKind matches a kind name case-insensitively.
func parseKind(s string) (catalog.Kind, error) {
	for _, k := range catalog.ValidKinds {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	names := make([]string, len(catalog.ValidKinds))
	for i, k := range catalog.ValidKinds {
		names[i] = string(k)
	}
	return "", fmt.Errorf("unknown kind %q (want one of %s)", s, strings.Join(names, ", "))
}

func noResultsMessage(q catalog.Query) string {
	msg := "No types found"
	if q.Text != "" {
		msg += fmt.Sprintf(" matching %q", q.Text)
	}
	if q.Kind != "" {
		msg += fmt.Sprintf(" with --kind=%s", q.Kind)
	}
	if q.Package != "" {
		msg += fmt.Sprintf(" with --package=%s", q.Package)
	}
	return msg
}
