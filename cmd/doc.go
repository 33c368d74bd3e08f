// Package cmd implements the command-line interface for tubemetrics.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide YouTube analytics tools for AI assistants
//   - auth: Manage the Google authorization (login, status, revoke)
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
