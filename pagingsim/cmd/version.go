package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set at link time with -ldflags "-X ...cmd.Version=v1.0.0".
var Version = ""

func version() string {
	if Version != "" {
		return Version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "(devel)"
	}

	return info.Main.Version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of pagingsim.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pagingsim %s\n", version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
