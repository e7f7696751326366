package parser

import (
	"strings"

	"cdecl-stream/pkg/ast"
)

// textSpan is buffered text together with the lines it came from
type textSpan struct {
	text  string
	start int
	end   int
}

// sourceInfo buffers the not yet consumed text of one file.
//
// Lines are joined with single spaces. When a pattern consumes a prefix the
// remainder stays buffered; nest parks the enclosing construct while the body
// of an inline type is parsed, and resume puts it back in front of whatever
// follows the closing brace.
type sourceInfo struct {
	filename string
	current  textSpan
	nested   []textSpan
	// ready is set whenever the buffer holds text that has not been offered
	// to a pattern yet
	ready bool
	// reparse is set when the buffer starts with a compound tag that has
	// already been reported
	reparse bool
}

func newSourceInfo(filename string) *sourceInfo {
	return &sourceInfo{filename: filename}
}

func (si *sourceInfo) text() string {
	return si.current.text
}

// addLine appends a source line. Blank lines are ignored.
func (si *sourceInfo) addLine(line string, lno int) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if si.current.text == "" {
		si.current = textSpan{text: strings.TrimSpace(line), start: lno, end: lno}
	} else {
		si.current.text += " " + strings.TrimLeft(line, " \t")
		si.current.end = lno
	}
	si.ready = true
}

// advance replaces the buffer with the unconsumed remainder of a match
func (si *sourceInfo) advance(remainder string) {
	si.reparse = false
	if strings.TrimSpace(remainder) == "" {
		si.current.text = ""
		si.current.start = si.current.end
		si.ready = false
		return
	}
	si.current.text = strings.TrimSpace(remainder)
	si.current.start = si.current.end
	si.ready = true
}

// advanceFrom is advance for a remainder that still belongs to the
// construct that began on line start
func (si *sourceInfo) advanceFrom(remainder string, start int) {
	si.advance(remainder)
	if si.current.text != "" {
		si.current.start = start
	}
}

// nest parks prefix, the already matched head of a construct, and continues
// with the text after its opening brace
func (si *sourceInfo) nest(remainder, prefix string) {
	si.nested = append(si.nested, textSpan{
		text:  prefix,
		start: si.current.start,
		end:   si.current.end,
	})
	si.current = textSpan{
		text:  strings.TrimSpace(remainder),
		start: si.current.end,
		end:   si.current.end,
	}
	si.ready = si.current.text != ""
	si.reparse = false
}

// resume restores the innermost parked construct with the pending text
// appended
func (si *sourceInfo) resume() {
	si.resumeWith(si.current.text)
}

func (si *sourceInfo) resumeWith(leftover string) {
	if len(si.nested) == 0 {
		panic("resume without a matching nest")
	}
	parked := si.nested[len(si.nested)-1]
	si.nested = si.nested[:len(si.nested)-1]
	si.current = textSpan{
		text:  strings.TrimSpace(parked.text + " " + strings.TrimSpace(leftover)),
		start: parked.start,
		end:   si.current.end,
	}
	si.ready = si.current.text != ""
	si.reparse = true
}

// markReparse flags the buffer as starting with an already reported tag
func (si *sourceInfo) markReparse() {
	si.reparse = true
}

// used reports whether there is text to offer to a pattern and clears the
// flag
func (si *sourceInfo) used() bool {
	ready := si.ready
	si.ready = false
	return ready
}

// pending reports whether anything is left unconsumed
func (si *sourceInfo) pending() bool {
	return strings.TrimSpace(si.current.text) != "" || len(si.nested) > 0
}

// tooMuch reports whether the buffer exceeds either limit. A limit <= 0
// disables that check.
func (si *sourceInfo) tooMuch(maxText, maxLines int) bool {
	if maxText > 0 && len(si.current.text) > maxText {
		return true
	}
	if maxLines > 0 && si.current.text != "" && si.current.end-si.current.start+1 > maxLines {
		return true
	}
	return false
}

// resolve builds an item located at the start of the buffered construct
func (si *sourceInfo) resolve(kind ast.Kind, data ast.Data, name, parent string) ast.Item {
	return ast.Item{
		File:   ast.FileInfo{Filename: si.filename, Line: si.current.start},
		Kind:   kind,
		Parent: parent,
		Name:   name,
		Data:   data,
	}
}

// unmatched reports the buffered text, or the innermost parked construct
// when the buffer itself is empty
func (si *sourceInfo) unmatched(reason string) error {
	span := si.current
	if strings.TrimSpace(span.text) == "" && len(si.nested) > 0 {
		span = si.nested[len(si.nested)-1]
	}
	return newUnmatchedTextError(si.filename, span.start, span.text, reason)
}
