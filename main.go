// package main provides the entry point for the AI SHIELD backend: the HTTP
// and GraphQL server, a one shot scenario simulator and the terminal dashboard.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "shield",
	Short: "AI SHIELD ad fraud and brand safety command center",
	Long: "shield serves the AI SHIELD dashboard backend: mock telemetry, what-if\n" +
		"scenarios, generative narratives and the autonomous intervention engine.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
