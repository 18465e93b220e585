// Package cmd provides the command-line interface of pagingsim.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pagingsim",
	Short: "pagingsim simulates a demand-paged virtual memory.",
	Long: `pagingsim runs a trace of memory references through a simulated ` +
		`MMU and reports page faults, write-backs and illegal references ` +
		`under FIFO or LRU page replacement.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "",
		"Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().String("env-file", "",
		"File of PAGINGSIM_* variables to read (default .env if present)")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It runs the exit handlers before leaving the process.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func setupLogger(level slog.Level) {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}

func mustGetString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag %s: %v", name, err))
	}

	return v
}
