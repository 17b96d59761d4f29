package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var typesJSON bool

var typesCmd = &cobra.Command{
	Use:   "types <package>",
	Short: "List the types declared in a package",
	Long:  `List every type owned by a package, in catalog order.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTypes,
}

func init() {
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	root, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	pkg := args[0]
	types := root.TypesInPackage(pkg)
	if len(types) == 0 {
		if typesJSON {
			return printJSON(cmd, []any{})
		}
		if root.HasPackage(pkg) {
			fmt.Fprintf(cmd.OutOrStdout(), "Package %q declares no types.\n", pkg)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "No types found in package %q.\n", pkg)
		}
		return nil
	}

	if typesJSON {
		return printJSON(cmd, types)
	}
	return printTypesTable(cmd, types)
}
