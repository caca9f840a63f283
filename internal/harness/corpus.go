// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package harness

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/giellalt/gramtest/internal/markup"
	"github.com/giellalt/gramtest/pkg/types"
)

// RunCorpus checks every error-annotated XML corpus file under the target
// paths. Paragraphs carrying an xml:lang attribute are in another language
// than the checker and are skipped.
func (r *Runner) RunCorpus(ctx context.Context, targets []string) (*Summary, error) {
	files, err := findCorpusFiles(targets)
	if err != nil {
		return nil, err
	}

	var items []item
	for _, filename := range files {
		sentences, err := extractCorpusSentences(filename)
		if err != nil {
			return nil, err
		}
		for _, sentence := range sentences {
			items = append(items, item{sentence: sentence, filename: filename})
		}
	}
	return r.check(ctx, items)
}

// findCorpusFiles expands the targets into a sorted list of .xml files.
// A target may be a single file or a directory to walk.
func findCorpusFiles(targets []string) ([]string, error) {
	var files []string
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("reading corpus target: %w", err)
		}
		if !info.IsDir() {
			files = append(files, target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".xml") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking corpus target: %w", err)
		}
	}
	return files, nil
}

// extractCorpusSentences parses one corpus file into annotated sentences.
func extractCorpusSentences(filename string) ([]types.AnnotatedSentence, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	root, err := markup.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	markup.FlattenURLs(root)

	var sentences []types.AnnotatedSentence
	root.Iter(func(el *markup.Element) {
		if el.Tag != "p" || el.Attr("xml:lang") != "" {
			return
		}
		markup.Flatten(el)
		sentences = append(sentences, markup.Extract(el))
	})
	return sentences, nil
}
