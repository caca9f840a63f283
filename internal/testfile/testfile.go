// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package testfile loads the on-disk YAML test format and resolves checker
// pipelines from pipespec archives.
package testfile

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// StructureError marks a broken test file or pipespec. Runs hitting one
// must halt an enclosing build pipeline instead of counting as a normal
// test failure.
type StructureError struct {
	Path string
	Msg  string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// File is one loaded YAML test file.
type File struct {
	// Spec is the checker pipeline spec path, resolved relative to the
	// test file's directory.
	Spec string
	// Variants lists the requested pipeline variants, first preferred.
	Variants []string
	// Tests are the markup-annotated sentences.
	Tests []string
	// Path is where the file was read from.
	Path string
}

// Variant returns the preferred variant.
func (f *File) Variant() string {
	return f.Variants[0]
}

type rawFile struct {
	Config struct {
		Spec     string   `yaml:"Spec"`
		Variants []string `yaml:"Variants"`
	} `yaml:"Config"`
	Tests []string `yaml:"Tests"`
}

// Load reads and validates a YAML test file. Syntax errors and missing
// sections come back as StructureError.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading test file: %w", err)
	}

	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &StructureError{Path: path, Msg: fmt.Sprintf("yaml syntax error: %v", err)}
	}
	if raw.Config.Spec == "" {
		return nil, &StructureError{Path: path, Msg: "no spec"}
	}
	if len(raw.Config.Variants) == 0 {
		return nil, &StructureError{Path: path, Msg: "no variants"}
	}
	if len(raw.Tests) == 0 {
		return nil, &StructureError{Path: path, Msg: "no tests"}
	}

	return &File{
		Spec:     filepath.Join(filepath.Dir(path), raw.Config.Spec),
		Variants: raw.Config.Variants,
		Tests:    raw.Tests,
		Path:     path,
	}, nil
}
