package parser

import (
	"fmt"

	"cdecl-stream/pkg/ast"
)

type (
	localInline struct {
		leading string
		kind    string
		name    string
	}
	localStatic struct {
		decl    string
		hasInit bool
		init    string
		ending  string
	}
	localBlockOpen  struct{}
	localBlockClose struct{}
	localStmtEnd    struct{}
)

func decodeLocal(m *match) any {
	switch {
	case m.has("INLINE_KIND"):
		return localInline{
			leading: joinWords(m.str("INLINE_LEADING"), m.str("INLINE_PRE")),
			kind:    m.str("INLINE_KIND"),
			name:    m.str("INLINE_NAME"),
		}
	case m.has("STATIC_DECL"):
		return localStatic{
			decl:    m.str("STATIC_DECL"),
			hasInit: m.has("STATIC_INIT"),
			init:    m.str("STATIC_INIT"),
			ending:  m.str("STATIC_ENDING"),
		}
	case m.has("BLOCK_OPEN"):
		return localBlockOpen{}
	case m.has("BLOCK_CLOSE"):
		return localBlockClose{}
	case m.has("STMT_END"):
		return localStmtEnd{}
	}
	return nil
}

// parseFunctionBody skips a function body whose opening brace has been
// consumed. Only static locals and inline type definitions are reported;
// statics get the function name as parent.
func (r *run) parseFunctionBody(fn ast.Item) error {
	depth := 1
	for depth > 0 {
		si, ok, err := r.feed.next()
		if err != nil {
			return err
		}
		if !ok {
			return unterminated(fn)
		}
		m, err := r.match(localStaticsRE, si)
		if err != nil {
			return err
		}
		if m == nil {
			continue
		}
		switch l := decodeLocal(m).(type) {
		case localInline:
			r.logMatch(fn.Name, "inline", si)
			if err := r.parseInlineCompound(si, l.leading, l.kind, l.name, m.remainder()); err != nil {
				return err
			}
		case localStatic:
			r.logMatch(fn.Name, "static", si)
			v := globalVariable{
				decl:    l.decl,
				hasInit: l.hasInit,
				init:    l.init,
				ending:  l.ending,
			}
			if err := r.handleVariable(si, v, m.remainder(), fn.Name); err != nil {
				return err
			}
		case localBlockOpen:
			depth++
			si.advance(m.remainder())
		case localBlockClose:
			depth--
			si.advance(m.remainder())
		case localStmtEnd:
			si.advance(m.remainder())
		default:
			return fmt.Errorf("local match at %s:%d has no known alternative", si.filename, si.current.start)
		}
	}
	return nil
}
