package parser

import (
	"cdecl-stream/pkg/observability"
	"cdecl-stream/pkg/source"
)

// feed pulls lines into per-file buffers and hands out the buffer that has
// new text to match. Line markers switching to a file already on the stack
// close the files included above it.
type feed struct {
	lines    source.LineSource
	maxText  int
	maxLines int

	stack   []string
	infos   map[string]*sourceInfo
	current *sourceInfo
	eof     bool
}

func newFeed(lines source.LineSource, maxText, maxLines int) *feed {
	return &feed{
		lines:    lines,
		maxText:  maxText,
		maxLines: maxLines,
		infos:    make(map[string]*sourceInfo),
	}
}

// next returns the buffer to match against. It returns false once the input
// is exhausted with nothing left unconsumed.
func (f *feed) next() (*sourceInfo, bool, error) {
	for {
		if f.current != nil && f.current.used() {
			return f.current, true, nil
		}
		if f.eof {
			for i := len(f.stack) - 1; i >= 0; i-- {
				if info := f.infos[f.stack[i]]; info.pending() {
					return nil, false, info.unmatched(reasonEOF)
				}
			}
			return nil, false, nil
		}

		line, ok, err := f.lines.Next()
		if err != nil {
			return nil, false, err
		}
		if !ok {
			f.eof = true
			continue
		}
		observability.LinesTotal.Inc()

		info, err := f.switchTo(line.File.Filename)
		if err != nil {
			return nil, false, err
		}
		info.addLine(line.Text, line.File.Line)
		f.current = info
		if info.tooMuch(f.maxText, f.maxLines) {
			return nil, false, info.unmatched(reasonTooMuch)
		}
	}
}

func (f *feed) switchTo(filename string) (*sourceInfo, error) {
	for i := len(f.stack) - 1; i >= 0; i-- {
		if f.stack[i] != filename {
			continue
		}
		for len(f.stack)-1 > i {
			top := f.stack[len(f.stack)-1]
			if info := f.infos[top]; info.pending() {
				return nil, info.unmatched(reasonIncludeEnd)
			}
			delete(f.infos, top)
			f.stack = f.stack[:len(f.stack)-1]
		}
		return f.infos[filename], nil
	}
	info := newSourceInfo(filename)
	f.stack = append(f.stack, filename)
	f.infos[filename] = info
	return info, nil
}
