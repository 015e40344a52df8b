package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/weave/pathsrv"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the path-expression Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := pathsrv.NewServer("0.1.0")
			return server.RunStdio()
		},
	}
}
