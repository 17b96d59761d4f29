package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/doccat-labs/doccat/internal/catalog"
	"github.com/spf13/cobra"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <package> <name>",
	Short: "Show a single type descriptor",
	Long: `Look up a type by its owning package and simple name, e.g.

  doccat show psychopath Folder`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	root, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	td, err := root.LookupType(args[0], args[1])
	if err != nil {
		return err
	}

	if showJSON {
		return printJSON(cmd, td)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", td.Name)
	fmt.Fprintf(w, "Package:\t%s\n", td.PackageName)
	fmt.Fprintf(w, "Kind:\t%s\n", td.Kind)
	for _, k := range sortedKeys(td.Modifiers) {
		fmt.Fprintf(w, "Modifier %s:\t%v\n", k, td.Modifiers[k])
	}
	return w.Flush()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// printTypesTable writes descriptors as a KIND/PACKAGE/NAME table.
func printTypesTable(cmd *cobra.Command, types []catalog.TypeDescriptor) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KIND\tPACKAGE\tNAME")
	for _, t := range types {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.Kind, t.PackageName, t.Name)
	}
	return w.Flush()
}
