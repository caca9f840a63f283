// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package archive builds distributable checker archives from a pipespec:
// development pipelines referencing local build artifacts are stripped and
// the remaining referenced files are zipped alongside the cleaned spec.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/giellalt/gramtest/internal/markup"
)

// CleanPipespec parses specPath and removes every pipeline referencing a
// relative build path (an n attribute containing "./"). Those pipelines
// only work inside a development checkout.
func CleanPipespec(specPath string) (*markup.Element, error) {
	data, err := os.ReadFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("reading pipespec: %w", err)
	}
	root, err := markup.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing pipespec: %w", err)
	}

	removeDevPipelines(root)
	return root, nil
}

func removeDevPipelines(el *markup.Element) {
	kept := el.Children[:0]
	for _, child := range el.Children {
		if child.Tag == "pipeline" && referencesLocalBuild(child) {
			continue
		}
		removeDevPipelines(child)
		kept = append(kept, child)
	}
	el.Children = kept
}

func referencesLocalBuild(el *markup.Element) bool {
	found := false
	el.Iter(func(node *markup.Element) {
		if strings.Contains(node.Attr("n"), "./") {
			found = true
		}
	})
	return found
}

// referencedFiles returns the sorted unique n attribute values left in the
// cleaned spec.
func referencedFiles(root *markup.Element) []string {
	seen := make(map[string]bool)
	root.Iter(func(node *markup.Element) {
		if n := node.Attr("n"); n != "" {
			seen[n] = true
		}
	})

	files := make([]string, 0, len(seen))
	for name := range seen {
		files = append(files, name)
	}
	sort.Strings(files)
	return files
}

// Build writes a checker archive: the cleaned pipespec as pipespec.xml
// plus every file it references, resolved relative to the spec's
// directory.
func Build(specPath, archivePath string) error {
	root, err := CleanPipespec(specPath)
	if err != nil {
		return err
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	zw := zip.NewWriter(out)

	specMember, err := zw.Create("pipespec.xml")
	if err != nil {
		return fmt.Errorf("writing pipespec member: %w", err)
	}
	if err := root.WriteXML(specMember); err != nil {
		return fmt.Errorf("writing pipespec member: %w", err)
	}

	baseDir := filepath.Dir(specPath)
	for _, name := range referencedFiles(root) {
		if err := addFile(zw, baseDir, name); err != nil {
			zw.Close()
			out.Close()
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return out.Close()
}

func addFile(zw *zip.Writer, baseDir, name string) error {
	f, err := os.Open(filepath.Join(baseDir, name))
	if err != nil {
		return fmt.Errorf("opening archive member %s: %w", name, err)
	}
	defer f.Close()

	member, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating archive member %s: %w", name, err)
	}
	if _, err := io.Copy(member, f); err != nil {
		return fmt.Errorf("writing archive member %s: %w", name, err)
	}
	return nil
}
