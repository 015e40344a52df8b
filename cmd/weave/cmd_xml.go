package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/weave"
	"github.com/dhamidi/weave/pathexpr"
	"github.com/dhamidi/weave/xmlevents"
)

func newXMLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xml <path-expression> <file>",
		Short: "Print every match of a path expression against an XML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runXML(cmd, args[0], args[1])
		},
	}
	return cmd
}

func runXML(cmd *cobra.Command, exprText, filename string) error {
	matches, err := matchXML(exprText, filename)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Fprintln(cmd.OutOrStdout(), m)
	}
	return nil
}

// matchXML runs a path expression against an XML file and returns every
// match in document order. Shared by the xml subcommand and weave run.
func matchXML(exprText, filename string) ([]string, error) {
	expr, err := pathexpr.Parse(exprText)
	if err != nil {
		return nil, fmt.Errorf("path expression: %w", err)
	}
	matcher, err := pathexpr.CompileXML(expr)
	if err != nil {
		return nil, fmt.Errorf("compile path expression: %w", err)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer f.Close()

	var inner weave.Parser[xmlevents.Frame, xmlevents.Event, string]
	if attr, ok := expr.AttrOf(); ok {
		inner = xmlevents.Attr(attr)
	} else {
		inner = weave.IgnoreContext[xmlevents.Frame, xmlevents.Event, string](xmlevents.TextContent())
	}

	split := weave.NewSplit(matcher, xmlevents.Project, inner)
	matches, err := weave.ParseWith[struct{}, xmlevents.Event, []string](
		xmlevents.NewSource(f),
		weave.AsListOf[xmlevents.Frame, xmlevents.Event, string](split),
		struct{}{},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return matches, nil
}
