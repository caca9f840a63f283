// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultChunkSize = 10

// CheckAll dispatches the paragraphs to the engine in fixed-size chunks
// across a bounded worker pool and returns results in submission order:
// results[i] always belongs to paragraphs[i]. Each chunk is one subprocess
// invocation; no state is shared between workers. The first failing chunk
// cancels the rest.
func (c *Checker) CheckAll(ctx context.Context, paragraphs []string) ([]Result, error) {
	if len(paragraphs) == 0 {
		return nil, nil
	}

	chunks := chunk(paragraphs, c.cfg.ChunkSize)
	perChunk := make([][]Result, len(chunks))

	workers := c.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, part := range chunks {
		g.Go(func() error {
			c.log.Debug("checking chunk",
				zap.Int("chunk", i), zap.Int("sentences", len(part)))
			results, err := c.CheckParagraphs(ctx, part)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", i, err)
			}
			if len(results) != len(part) {
				c.log.Warn("chunk result count mismatch, padding with empty results",
					zap.Int("chunk", i), zap.Int("want", len(part)), zap.Int("got", len(results)))
				padded := make([]Result, len(part))
				copy(padded, results)
				results = padded[:len(part)]
			}
			perChunk[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Result
	for _, results := range perChunk {
		all = append(all, results...)
	}
	return all, nil
}

// chunk splits items into successive n-sized pieces.
func chunk(items []string, n int) [][]string {
	if n <= 0 {
		n = defaultChunkSize
	}
	var out [][]string
	for len(items) > n {
		out = append(out, items[:n])
		items = items[n:]
	}
	return append(out, items)
}
