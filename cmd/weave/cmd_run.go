package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dhamidi/weave/pathsrv"
)

func newRunCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run <pipeline.yaml>",
		Short: "Run a pipeline of path expressions against XML and JSON files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipelineFile := args[0]
			p, err := LoadPipeline(pipelineFile)
			if err != nil {
				return err
			}

			if !watch {
				return runPipeline(cmd, p)
			}
			return watchPipeline(cmd, pipelineFile, p)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "re-run the pipeline whenever one of its input files changes")

	return cmd
}

// runPipeline executes every step of p once, in order, printing each
// step's matches under its name.
func runPipeline(cmd *cobra.Command, p Pipeline) error {
	out := cmd.OutOrStdout()
	for _, step := range p.Steps {
		fmt.Fprint(out, stepHeader(out, step.Name))
		var err error
		switch step.Kind {
		case "xml":
			var matches []string
			matches, err = matchXML(step.Path, step.File)
			for _, m := range matches {
				fmt.Fprintln(out, m)
			}
		case "json":
			var matches []any
			matches, err = matchJSON(step.Path, step.File)
			for _, m := range matches {
				fmt.Fprintln(out, m)
			}
		default:
			err = fmt.Errorf("step %s: unknown kind %q", step.Name, step.Kind)
		}
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", step.Name, err)
		}
	}
	return nil
}

// watchPipeline runs the pipeline once, then re-runs it every time one
// of its step files changes, until interrupted.
func watchPipeline(cmd *cobra.Command, pipelineFile string, p Pipeline) error {
	if err := runPipeline(cmd, p); err != nil {
		return err
	}

	watched := make(map[string]bool, len(p.Steps)+1)
	if abs, err := filepath.Abs(pipelineFile); err == nil {
		watched[abs] = true
	}
	for _, step := range p.Steps {
		if abs, err := filepath.Abs(step.File); err == nil {
			watched[abs] = true
		}
	}

	root := commonDir(watched)
	match := func(path string) bool {
		abs, err := filepath.Abs(path)
		if err != nil {
			return false
		}
		return watched[abs]
	}

	onChange := func(path string) {
		fmt.Fprintf(cmd.OutOrStdout(), "-- %s changed, re-running pipeline --\n", path)
		fresh, err := LoadPipeline(pipelineFile)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "reload pipeline: %v\n", err)
			return
		}
		runPipeline(cmd, fresh)
	}

	w := pathsrv.NewWatcher(root, match, onChange)
	w.Start()
	defer w.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	fmt.Fprintln(cmd.OutOrStdout(), "stopping")
	return nil
}

// commonDir returns the deepest directory that contains every path in
// paths, so the watcher only has to walk one tree even when a
// pipeline's steps read files from several sibling directories.
func commonDir(paths map[string]bool) string {
	var common string
	first := true
	for p := range paths {
		dir := filepath.Dir(p)
		if first {
			common = dir
			first = false
			continue
		}
		for !strings.HasPrefix(dir+string(filepath.Separator), common+string(filepath.Separator)) && common != "." {
			parent := filepath.Dir(common)
			if parent == common {
				break
			}
			common = parent
		}
	}
	if common == "" {
		return "."
	}
	return common
}
