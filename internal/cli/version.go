package cli

import (
	"fmt"

	"github.com/doccat-labs/doccat/internal/branding"
	"github.com/doccat-labs/doccat/internal/buildinfo"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
	versionCheck string
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	versionCmd.Flags().StringVar(&versionCheck, "check", "", "Exit non-zero unless the version satisfies this semver constraint")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if versionCheck != "" {
			ok, err := buildinfo.Satisfies(build.Version, versionCheck)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("version %s does not satisfy %q", build.Version, versionCheck)
			}
			fmt.Fprintf(out, "%s satisfies %s\n", build.Version, versionCheck)
			return nil
		}

		if versionShort {
			fmt.Fprintln(out, build.Version)
			return nil
		}

		if versionJSON {
			return printJSON(cmd, build)
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), build.Version, build.Commit, build.Date)
		return nil
	},
}
