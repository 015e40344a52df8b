package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/weave"
	"github.com/dhamidi/weave/jsonevents"
	"github.com/dhamidi/weave/pathexpr"
)

func newJSONCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json <path-expression> <file>",
		Short: "Print every match of a path expression against a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJSON(cmd, args[0], args[1])
		},
	}
	return cmd
}

func runJSON(cmd *cobra.Command, exprText, filename string) error {
	matches, err := matchJSON(exprText, filename)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Fprintln(cmd.OutOrStdout(), m)
	}
	return nil
}

// matchJSON runs a path expression against a JSON file and returns every
// scalar match in document order. Shared by the json subcommand and
// weave run.
func matchJSON(exprText, filename string) ([]any, error) {
	expr, err := pathexpr.Parse(exprText)
	if err != nil {
		return nil, fmt.Errorf("path expression: %w", err)
	}
	matcher, err := pathexpr.CompileJSON(expr)
	if err != nil {
		return nil, fmt.Errorf("compile path expression: %w", err)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	inner := weave.IgnoreContext[jsonevents.Frame, jsonevents.Event, any](jsonevents.ScalarValue())
	split := weave.NewSplit(matcher, jsonevents.Project, inner)
	matches, err := weave.ParseWith[struct{}, jsonevents.Event, []any](
		jsonevents.NewSource(f),
		weave.AsListOf[jsonevents.Frame, jsonevents.Event, any](split),
		struct{}{},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return matches, nil
}
