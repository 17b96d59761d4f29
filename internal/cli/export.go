package cli

import (
	"fmt"
	"os"

	"github.com/doccat-labs/doccat/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-serialize the catalog",
	Long: `Write the loaded catalog (merged when several sources are selected) as
JSON, YAML, or the generator's script form ("const root = {...}").`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, yaml, script)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := catalog.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	root, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		return catalog.Encode(cmd.OutOrStdout(), root, format)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("creating %s: %w", exportOutput, err)
	}
	if err := catalog.Encode(f, root, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	logger.Printf("wrote %s catalog to %s", format, exportOutput)
	return nil
}
