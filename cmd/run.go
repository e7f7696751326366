package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"cdecl-stream/pkg/ast"
	"cdecl-stream/pkg/observability"
	"cdecl-stream/pkg/parser"
	"cdecl-stream/pkg/source"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// stdinName is the argument that reads from standard input
const stdinName = "-"

// runOptions are the per-invocation parse settings taken from flags
type runOptions struct {
	raw      bool
	maxText  *int // nil keeps the configured limit
	maxLines *int
	jobs     int
	stdin    io.Reader
}

type fileResult struct {
	filename string
	items    []ast.Item
	err      error
}

// parseFiles parses every file on a bounded pool of workers. Results are
// returned in argument order.
func parseFiles(ctx context.Context, files []string, opts runOptions) []fileResult {
	jobs := opts.jobs
	if jobs < 1 {
		jobs = 1
	}
	results := make([]fileResult, len(files))
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup
	for i, name := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = parseFile(ctx, name, opts)
		}()
	}
	wg.Wait()
	return results
}

func parseFile(ctx context.Context, filename string, opts runOptions) fileResult {
	_, span := observability.Tracer.Start(ctx, "parseFile", trace.WithAttributes(attribute.String("file", filename)))
	defer span.End()

	items, err := parseInput(filename, opts)
	span.SetAttributes(attribute.Int("items", len(items)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Warn("failed to parse file", "file", filename, "error", err)
	} else {
		slog.Debug("parsed file", "file", filename, "items", len(items))
	}
	return fileResult{filename: filename, items: items, err: err}
}

func parseInput(filename string, opts runOptions) ([]ast.Item, error) {
	var r io.Reader
	name := filename
	if filename == stdinName {
		r = opts.stdin
		if r == nil {
			r = os.Stdin
		}
		name = "<stdin>"
	} else {
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		defer f.Close()
		r = f
	}

	var lines source.LineSource
	if opts.raw {
		lines = source.NewReader(name, r)
	} else {
		lines = source.NewPreprocessed(name, r)
	}

	maxText, maxLines := cfg.Limits(filename)
	if opts.maxText != nil {
		maxText = *opts.maxText
	}
	if opts.maxLines != nil {
		maxLines = *opts.maxLines
	}
	p := parser.New(parser.Options{
		MaxText:  maxText,
		MaxLines: maxLines,
		Logger:   slog.Default().With("input", name),
	})
	items, err := p.Collect(lines)
	if err != nil {
		return items, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	return items, nil
}
