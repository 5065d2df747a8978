// Package main implements the entry point for the tasks API server, a small
// JSON API for TODO tasks kept in a single JSON document.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand serves the API.
func newRootCmd() *cobra.Command {
	var configFile string

	serve := serveCmd(&configFile)
	root := &cobra.Command{
		Use:          "tasks-api",
		Short:        "JSON API for TODO tasks",
		Version:      Version,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default: tasks.{yaml,json,toml} in . or /etc/tasks-api)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "json", "log format (json, text)")
	flags.Int("port", 8080, "HTTP port")
	flags.String("base-path", "", "path prefix stripped before routing, e.g. /api")
	flags.String("store", "file", "store backend (file, postgres, memory)")
	flags.String("tasks-file", "tasks.json", "tasks file for the file backend")
	flags.String("database", "", "PostgreSQL URL for the postgres backend and migrations")

	root.AddCommand(serve)
	root.AddCommand(migrateCmd(&configFile))

	return root
}
