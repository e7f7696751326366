// Package parser implements a streaming, non-validating recognizer of C
// top-level declarations.
//
// Lines are buffered until one of the context patterns matches a complete
// construct at the front of the buffer. Recognized declarations are handed
// to the caller one at a time, in source order, as soon as they are complete.
// Nothing is validated: text that merely looks like a declaration is reported
// as one.
package parser

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/dlclark/regexp2"

	"cdecl-stream/pkg/ast"
	"cdecl-stream/pkg/observability"
	"cdecl-stream/pkg/source"
)

// Options configures a Parser
type Options struct {
	// MaxText bounds the buffered, not yet matched text in bytes
	MaxText int
	// MaxLines bounds the number of lines a single construct may span
	MaxLines int
	Logger   *slog.Logger
}

// DefaultOptions returns the limits used when none are configured
func DefaultOptions() Options {
	return Options{
		MaxText:  10000,
		MaxLines: 200,
	}
}

// Parser recognizes declarations in preprocessed C source. A Parser holds
// no state between calls and may be shared.
type Parser struct {
	opts Options
	log  *slog.Logger
}

// New creates a parser. Limits <= 0 disable the corresponding check.
func New(opts Options) *Parser {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Parser{opts: opts, log: log}
}

// Parse reads lines until the source is exhausted, calling yield for every
// item. An error returned by yield stops parsing and is returned unchanged.
func (p *Parser) Parse(lines source.LineSource, yield func(ast.Item) error) (err error) {
	start := time.Now()
	defer func() {
		result := "ok"
		switch {
		case errors.Is(err, ErrUnmatchedText):
			result = "unmatched"
			observability.UnmatchedTextTotal.Inc()
		case err != nil:
			result = "error"
		}
		observability.ParseDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	r := &run{
		feed:  newFeed(lines, p.opts.MaxText, p.opts.MaxLines),
		anon:  anonymousNames(),
		log:   p.log,
		yield: yield,
	}
	return r.parseGlobals()
}

var errStopped = errors.New("iteration stopped")

// All returns the items of lines as an iterator. A parse error is delivered
// as the final pair.
func (p *Parser) All(lines source.LineSource) iter.Seq2[ast.Item, error] {
	return func(yield func(ast.Item, error) bool) {
		err := p.Parse(lines, func(it ast.Item) error {
			if !yield(it, nil) {
				return errStopped
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopped) {
			yield(ast.Item{}, err)
		}
	}
}

// Collect parses lines to the end. On error the items recognized so far are
// returned along with it.
func (p *Parser) Collect(lines source.LineSource) ([]ast.Item, error) {
	var items []ast.Item
	err := p.Parse(lines, func(it ast.Item) error {
		items = append(items, it)
		return nil
	})
	return items, err
}

// Parse parses lines with DefaultOptions
func Parse(lines source.LineSource, yield func(ast.Item) error) error {
	return New(DefaultOptions()).Parse(lines, yield)
}

// Collect collects the items of lines with DefaultOptions
func Collect(lines source.LineSource) ([]ast.Item, error) {
	return New(DefaultOptions()).Collect(lines)
}

// run is the state of one Parse call
type run struct {
	feed  *feed
	anon  anonNamer
	log   *slog.Logger
	yield func(ast.Item) error
}

func (r *run) emit(it ast.Item) error {
	observability.ItemsTotal.WithLabelValues(it.Kind.String()).Inc()
	return r.yield(it)
}

// match runs re against the front of the buffer. A nil match means more
// input is needed.
func (r *run) match(re *regexp2.Regexp, si *sourceInfo) (*match, error) {
	m, err := findMatch(re, si.text())
	if err != nil {
		return nil, fmt.Errorf("matching %s:%d: %w", si.filename, si.current.start, err)
	}
	return m, nil
}

func (r *run) logMatch(context, construct string, si *sourceInfo) {
	r.log.Debug("matched",
		"context", context,
		"construct", construct,
		"file", si.filename,
		"line", si.current.start)
}

// unterminated reports a body whose closing brace never came
func unterminated(owner ast.Item) error {
	return newUnmatchedTextError(owner.File.Filename, owner.File.Line, owner.Name, reasonUnterminated)
}
