package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the gcalmcp application
var rootCmd = &cobra.Command{
	Use:   "gcalmcp",
	Short: "MCP server for Google Calendar",
	Long: `gcalmcp exposes Google Calendar to AI assistants over the Model
Context Protocol: listing and resolving calendars, creating and updating
events, and managing recurring series including single-instance
cancellation and "this and all following" changes.

It can run as:
  - An MCP server on stdio (default)
  - An MCP server on streamable HTTP`,
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
	rootCmd.SetVersionTemplate(`{{printf "gcalmcp version %s\n" .Version}}`)

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
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
