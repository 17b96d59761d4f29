package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/doccat-labs/doccat/internal/branding"
	"github.com/doccat-labs/doccat/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long:  configLong(),
}

// configLong lists each key with the environment variable that overrides it.
func configLong() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Read and write %s configuration stored at ~/%s/config.yaml.\n", branding.CLIName(), branding.HomeDir())
	b.WriteString("Environment variables (and .env files) take precedence over the file.\n\nKeys:\n")
	w := tabwriter.NewWriter(&b, 0, 0, 3, ' ', 0)
	for _, key := range config.Keys {
		fmt.Fprintf(w, "  %s\t%s\n", key, config.EnvName(key))
	}
	w.Flush()
	b.WriteString("\nThe catalogs key takes a comma-separated list of sources.")
	return b.String()
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == config.KeyCatalogs {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(config.Catalogs(), ","))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}
