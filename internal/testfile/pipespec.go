// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package testfile

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/giellalt/gramtest/internal/markup"
)

// Pipespec describes the pipelines a checker spec offers.
type Pipespec struct {
	DefaultPipe string
	Pipelines   []string
}

// ReadPipespec parses a pipespec. A .zcheck path is a zip archive holding
// the pipespec.xml member; anything else is the XML file itself.
func ReadPipespec(path string) (*Pipespec, error) {
	data, err := pipespecBytes(path)
	if err != nil {
		return nil, err
	}

	root, err := markup.ParseString(string(data))
	if err != nil {
		return nil, &StructureError{Path: path, Msg: fmt.Sprintf("parsing pipespec: %v", err)}
	}

	spec := &Pipespec{DefaultPipe: root.Attr("default-pipe")}
	root.Iter(func(el *markup.Element) {
		if el.Tag == "pipeline" {
			if name := el.Attr("name"); name != "" {
				spec.Pipelines = append(spec.Pipelines, name)
			}
		}
	})
	return spec, nil
}

func pipespecBytes(path string) ([]byte, error) {
	if filepath.Ext(path) != ".zcheck" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading pipespec: %w", err)
		}
		return data, nil
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening checker archive: %w", err)
	}
	defer archive.Close()

	member, err := archive.Open("pipespec.xml")
	if err != nil {
		return nil, &StructureError{Path: path, Msg: "archive has no pipespec.xml"}
	}
	defer member.Close()
	return io.ReadAll(member)
}

// ResolveVariant picks the pipeline to run. With no requested variants the
// spec's default pipe wins. Requested variants are matched against the
// available pipelines, with "-dev" stripped for compiled .zcheck archives.
// No match is a StructureError listing what the spec offers.
func ResolveVariant(specPath string, requested []string) (string, error) {
	spec, err := ReadPipespec(specPath)
	if err != nil {
		return "", err
	}
	if len(requested) == 0 {
		return spec.DefaultPipe, nil
	}

	zcheck := filepath.Ext(specPath) == ".zcheck"
	for _, variant := range requested {
		if zcheck {
			variant = strings.ReplaceAll(variant, "-dev", "")
		}
		for _, name := range spec.Pipelines {
			if variant == name {
				return variant, nil
			}
		}
	}
	return "", &StructureError{
		Path: specPath,
		Msg: fmt.Sprintf("no pipeline named %s; available pipelines are\n%s",
			strings.Join(requested, ", "), strings.Join(spec.Pipelines, "\n")),
	}
}

// CheckerCommand builds the divvun-checker invocation for a spec and
// variant. Compiled archives use --archive, XML specs use --spec.
func CheckerCommand(specPath, variant string) []string {
	flag := "--spec"
	if filepath.Ext(specPath) == ".zcheck" {
		flag = "--archive"
	}
	return []string{"divvun-checker", flag, specPath, "--variant", variant}
}
