package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the tubemetrics application
var rootCmd = &cobra.Command{
	Use:   "tubemetrics",
	Short: "YouTube channel analytics as MCP tools",
	Long: `tubemetrics exposes YouTube channel and video analytics as Model Context
Protocol (MCP) tools for AI assistants, authenticating against Google
with OAuth2 and persisting the grant across restarts.

It can run as:
  - An MCP server over stdio or streamable HTTP (default)
  - A standalone CLI for managing the Google authorization (auth subcommand)`,
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
	rootCmd.SetVersionTemplate(`{{printf "tubemetrics version %s\n" .Version}}`)

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
	rootCmd.AddCommand(newGenerateDocsCmd())
}
