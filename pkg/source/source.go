// Package source supplies preprocessed C source lines to the parser
package source

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cdecl-stream/pkg/ast"
)

// maxLineSize bounds a single physical line read from a reader
const maxLineSize = 4 * 1024 * 1024

// Line is one line of preprocessed source tagged with where it came from
type Line struct {
	File ast.FileInfo
	Text string
}

// LineSource yields lines in order. Next returns false once the input is
// exhausted.
type LineSource interface {
	Next() (Line, bool, error)
}

type sliceSource struct {
	lines []Line
	pos   int
}

// Slice returns a LineSource over already tagged lines
func Slice(lines []Line) LineSource {
	return &sliceSource{lines: lines}
}

// Strings returns a LineSource over the lines of a single file, numbered from 1
func Strings(filename string, lines []string) LineSource {
	tagged := make([]Line, len(lines))
	for i, text := range lines {
		tagged[i] = Line{File: ast.FileInfo{Filename: filename, Line: i + 1}, Text: text}
	}
	return Slice(tagged)
}

func (s *sliceSource) Next() (Line, bool, error) {
	if s.pos >= len(s.lines) {
		return Line{}, false, nil
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true, nil
}

type readerSource struct {
	scanner  *bufio.Scanner
	filename string
	lno      int
	markers  bool
}

// NewReader reads plain preprocessed text: every line belongs to filename
func NewReader(filename string, r io.Reader) LineSource {
	return newReaderSource(filename, r, false)
}

// NewPreprocessed reads compiler -E output. Line markers such as
// `# 12 "foo.h" 1` and `#line 12 "foo.h"` re-attribute the following lines;
// any other directive line is dropped.
func NewPreprocessed(filename string, r io.Reader) LineSource {
	return newReaderSource(filename, r, true)
}

func newReaderSource(filename string, r io.Reader, markers bool) *readerSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &readerSource{
		scanner:  scanner,
		filename: filename,
		markers:  markers,
	}
}

func (s *readerSource) Next() (Line, bool, error) {
	for s.scanner.Scan() {
		text := s.scanner.Text()
		s.lno++
		if s.markers && strings.HasPrefix(strings.TrimSpace(text), "#") {
			if lno, filename, ok := parseLineMarker(text); ok {
				s.lno = lno - 1
				if filename != "" {
					s.filename = filename
				}
			}
			continue
		}
		return Line{File: ast.FileInfo{Filename: s.filename, Line: s.lno}, Text: text}, true, nil
	}
	if err := s.scanner.Err(); err != nil {
		return Line{}, false, fmt.Errorf("reading %s: %w", s.filename, err)
	}
	return Line{}, false, nil
}

// parseLineMarker decodes `# <lno> ["file" [flags...]]` and
// `#line <lno> ["file"]`
func parseLineMarker(text string) (int, string, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "#"))
	rest = strings.TrimSpace(strings.TrimPrefix(rest, "line"))
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(rest)
	}
	lno, err := strconv.Atoi(rest[:end])
	if err != nil || lno <= 0 {
		return 0, "", false
	}
	rest = strings.TrimSpace(rest[end:])
	if !strings.HasPrefix(rest, `"`) {
		return lno, "", true
	}
	closing := 1
	for closing < len(rest) {
		if rest[closing] == '\\' {
			closing += 2
			continue
		}
		if rest[closing] == '"' {
			break
		}
		closing++
	}
	if closing >= len(rest) {
		return lno, "", true
	}
	quoted := rest[:closing+1]
	filename, err := strconv.Unquote(quoted)
	if err != nil {
		filename = strings.Trim(quoted, `"`)
	}
	return lno, filename, true
}
