package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "performous-tools",
	Short: "Tools for UltraStar-style karaoke charts",
	Long: `Tools for UltraStar-style karaoke charts: merge single player
charts into duets, inspect them, export them as MIDI, or serve the
merger over HTTP.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print errors with full detail")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError prints one line per error, or the whole chain with stack
// traces under --debug.
func reportError(err error) {
	if debug {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
}
