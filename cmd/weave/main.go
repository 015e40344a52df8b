package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weave",
		Short: "Run path expressions against streaming XML and JSON documents",
	}

	rootCmd.AddCommand(newXMLCmd())
	rootCmd.AddCommand(newJSONCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
