package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the voxsched application
var rootCmd = &cobra.Command{
	Use:   "voxsched",
	Short: "Conversational scheduling assistant backend",
	Long: `voxsched turns calendar availability questions into answers: it computes
free slots from busy intervals, validates candidate times, and creates
events on confirmation.

It can run as:
  - An MCP (Model Context Protocol) server for voice/LLM agents (default)
  - A standalone CLI for availability queries (slots)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "voxsched version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSlotsCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
