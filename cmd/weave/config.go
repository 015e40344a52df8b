package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Step is one path expression run against one file, as configured in a
// pipeline YAML document.
type Step struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	Path string `yaml:"path"`
	Kind string `yaml:"kind"` // "xml" or "json"
}

// Pipeline is a named sequence of Steps, the unit `weave run` executes.
type Pipeline struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// LoadPipeline reads and validates a pipeline definition from filename.
func LoadPipeline(filename string) (Pipeline, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Pipeline{}, fmt.Errorf("read pipeline %s: %w", filename, err)
	}
	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pipeline{}, fmt.Errorf("parse pipeline %s: %w", filename, err)
	}
	for i, s := range p.Steps {
		if s.File == "" {
			return Pipeline{}, fmt.Errorf("pipeline %s: step %d missing file", filename, i)
		}
		if s.Path == "" {
			return Pipeline{}, fmt.Errorf("pipeline %s: step %d missing path", filename, i)
		}
		if s.Kind != "xml" && s.Kind != "json" {
			return Pipeline{}, fmt.Errorf("pipeline %s: step %d has unknown kind %q (want xml or json)", filename, i, s.Kind)
		}
	}
	return p, nil
}
