// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

// Package engine invokes external grammar-checker engines as subprocesses
// and normalizes their differently-shaped outputs into one canonical
// per-sentence error-span representation.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/giellalt/gramtest/pkg/types"
)

// Kind identifies the output schema an engine speaks.
type Kind string

const (
	// KindChecker is the legacy engine: one JSON object per line, errors as
	// positional arrays, rune offsets.
	KindChecker Kind = "checker"

	// KindRuntime is the newer engine: a single ANSI-polluted JSON object
	// for the whole invocation, byte offsets.
	KindRuntime Kind = "runtime"
)

// Result is the normalized outcome for one sentence: the text the engine
// echoed and the errors it reported, rebased to rune offsets within that
// sentence.
type Result struct {
	Text   string
	Errors []types.ErrorSpan
}

// executor abstracts command execution for testing.
type executor interface {
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// Checker drives one grammar-checker engine.
type Checker struct {
	command []string
	kind    Kind
	cfg     types.RunConfig
	exec    executor
	log     *zap.Logger
}

// New builds a Checker for the given command line. command[0] is the
// binary, the rest its arguments. The logger may be nil.
func New(command []string, kind Kind, cfg types.RunConfig, log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	return &Checker{command: command, kind: kind, cfg: cfg, exec: defaultExec, log: log}
}

// Command returns the engine command line, for reporting.
func (c *Checker) Command() string { return strings.Join(c.command, " ") }

// Kind returns the engine's output schema.
func (c *Checker) Kind() Kind { return c.kind }

// CheckParagraphs feeds the paragraphs, newline-joined, to one subprocess
// invocation and returns one normalized result per paragraph, in order.
func (c *Checker) CheckParagraphs(ctx context.Context, paragraphs []string) ([]Result, error) {
	if len(c.command) == 0 {
		return nil, fmt.Errorf("no engine command configured")
	}

	stdin := strings.NewReader(strings.Join(paragraphs, "\n"))
	var stdout, stderr bytes.Buffer

	err := c.exec.RunPiped(ctx, c.command[0], c.command[1:], stdin, &stdout, &stderr)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if _, isExit := err.(*exec.ExitError); !isExit || !c.cfg.TolerateExitErrors {
			return nil, fmt.Errorf("running %s: %w: %s", c.command[0], err, firstLine(stderr.String()))
		}
		c.log.Warn("engine exited non-zero, keeping output",
			zap.String("command", c.Command()),
			zap.String("stderr", firstLine(stderr.String())))
	}

	switch c.kind {
	case KindRuntime:
		return ParseRuntimeOutput(stdout.String(), c.log), nil
	default:
		return ParseCheckerOutput(stdout.String())
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
