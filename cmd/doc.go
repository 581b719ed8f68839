// Package cmd implements the command-line interface for voxsched.
//
// This package provides the following commands:
//   - serve: Start the MCP server exposing the scheduling tools
//   - slots: Compute free slots from the command line (Google or .ics source)
//   - auth: Authorize a Google account and cache its OAuth token
//   - version: Display version information
//
// The serve command is the default command when no subcommand is specified.
package cmd
