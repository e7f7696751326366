package parser

import (
	"fmt"
	"strings"

	"cdecl-stream/pkg/ast"
)

// globalMatch is one construct recognized at file scope
type globalMatch interface {
	construct() string
}

type (
	globalEmpty    struct{}
	globalTagOnly  struct{}
	globalCompound struct {
		leading string
		kind    string
		name    string
	}
	globalForward struct {
		kind   string
		name   string
		actual string
	}
	globalTypedef struct {
		decl       string
		isFuncType bool
		funcParams string
		ending     string
	}
	globalFunction struct {
		storage string
		inline  bool
		decl    string
		params  string
		delim   string
		legacy  bool
		names   string
	}
	globalVariable struct {
		storage string
		decl    string
		hasInit bool
		init    string
		ending  string
	}
)

func (globalEmpty) construct() string    { return "empty" }
func (globalTagOnly) construct() string  { return "tag" }
func (globalCompound) construct() string { return "compound" }
func (globalForward) construct() string  { return "forward" }
func (globalTypedef) construct() string  { return "typedef" }
func (globalFunction) construct() string { return "function" }
func (globalVariable) construct() string { return "variable" }

func decodeGlobal(m *match) globalMatch {
	switch {
	case m.has("EMPTY"):
		return globalEmpty{}
	case m.has("COMPOUND_KIND"):
		return globalCompound{
			leading: m.str("COMPOUND_LEADING"),
			kind:    m.str("COMPOUND_KIND"),
			name:    m.str("COMPOUND_NAME"),
		}
	case m.has("FORWARD_KIND"):
		return globalForward{
			kind:   m.str("FORWARD_KIND"),
			name:   m.str("FORWARD_NAME"),
			actual: m.str("MAYBE_INLINE_ACTUAL"),
		}
	case m.has("TAG_ONLY"):
		return globalTagOnly{}
	case m.has("TYPEDEF_DECL"):
		return globalTypedef{
			decl:       m.str("TYPEDEF_DECL"),
			isFuncType: m.has("TYPEDEF_FUNC_PARAMS"),
			funcParams: m.str("TYPEDEF_FUNC_PARAMS"),
			ending:     m.str("TYPEDEF_ENDING"),
		}
	case m.has("FUNC_DELIM"), m.has("FUNC_LEGACY_PARAMS"):
		return globalFunction{
			storage: m.str("VAR_STORAGE"),
			inline:  m.has("FUNC_INLINE"),
			decl:    m.str("VAR_DECL"),
			params:  m.str("FUNC_PARAMS"),
			delim:   m.str("FUNC_DELIM"),
			legacy:  m.has("FUNC_LEGACY_PARAMS"),
			names:   m.str("FUNC_LEGACY_NAMES"),
		}
	case m.has("VAR_ENDING"):
		return globalVariable{
			storage: m.str("VAR_STORAGE"),
			decl:    m.str("VAR_DECL"),
			hasInit: m.has("VAR_INIT"),
			init:    m.str("VAR_INIT"),
			ending:  m.str("VAR_ENDING"),
		}
	}
	return nil
}

// parseGlobals is the top level loop. It returns nil once the input is
// exhausted.
func (r *run) parseGlobals() error {
	for {
		si, ok, err := r.feed.next()
		if err != nil || !ok {
			return err
		}
		re := globalRE
		if si.reparse {
			re = globalReparseRE
		}
		m, err := r.match(re, si)
		if err != nil {
			return err
		}
		if m == nil {
			continue
		}
		g := decodeGlobal(m)
		if g == nil {
			return fmt.Errorf("global match at %s:%d has no known alternative", si.filename, si.current.start)
		}
		r.logMatch("global", g.construct(), si)
		if err := r.handleGlobal(si, g, m.remainder()); err != nil {
			return err
		}
	}
}

func (r *run) handleGlobal(si *sourceInfo, g globalMatch, remainder string) error {
	switch g := g.(type) {
	case globalEmpty, globalTagOnly:
		si.advance(remainder)
		return nil
	case globalCompound:
		return r.parseInlineCompound(si, g.leading, g.kind, g.name, remainder)
	case globalForward:
		return r.handleForward(si, g, remainder)
	case globalTypedef:
		return r.handleTypedef(si, g, remainder)
	case globalFunction:
		return r.handleFunction(si, g, remainder)
	case globalVariable:
		return r.handleVariable(si, g, remainder, "")
	}
	return fmt.Errorf("unhandled global construct %T", g)
}

// handleForward reports a tag used without a body and puts the rest of the
// declaration back so it is matched again without the forward alternative
func (r *run) handleForward(si *sourceInfo, g globalForward, remainder string) error {
	forward := si.resolve(compoundKind(g.kind), nil, g.name, "")
	if err := r.emit(forward); err != nil {
		return err
	}
	actual := strings.TrimSpace(g.actual)
	switch {
	case actual == ";":
		si.advance(remainder)
	case strings.HasSuffix(actual, "="):
		// An initialized variable is typed through a synthetic typedef of
		// the tag.
		fake := "fake_typedef_" + g.name
		_, name, vt, err := parseVarDecl(g.kind + " " + g.name + " " + fake)
		if err != nil {
			return err
		}
		if err := r.emit(si.resolve(ast.KindTypedef, &vt, name, "")); err != nil {
			return err
		}
		si.advanceFrom(fake+" "+g.actual+remainder, forward.File.Line)
	default:
		si.advanceFrom(g.kind+" "+g.name+" "+g.actual+remainder, forward.File.Line)
		si.markReparse()
	}
	return nil
}

func (r *run) handleTypedef(si *sourceInfo, g globalTypedef, remainder string) error {
	kind, name, vt, err := parseVarDecl(g.decl)
	if err != nil {
		return err
	}
	var data ast.Data = &vt
	switch {
	case g.isFuncType:
		data = &ast.Function{
			Params:     "(" + strings.TrimSpace(g.funcParams) + ")",
			ReturnType: vt,
			IsForward:  true,
		}
	case kind == declFuncPtr:
		if head, params, ok := splitTrailingParams(vt.Abstract); ok {
			rt := vt
			rt.Abstract = head
			data = &ast.Function{
				Params:     params,
				ReturnType: rt,
				IsForward:  true,
			}
		}
	}
	if err := r.emit(si.resolve(ast.KindTypedef, data, name, "")); err != nil {
		return err
	}
	if g.ending == "," {
		si.advance(joinWords("typedef", vt.TypeQual, vt.TypeSpec) + " " + remainder)
		si.markReparse()
		return nil
	}
	si.advance(remainder)
	return nil
}

func (r *run) handleFunction(si *sourceInfo, g globalFunction, remainder string) error {
	_, name, rt, err := parseVarDecl(g.decl)
	if err != nil {
		return err
	}
	storage := g.storage
	if storage == "" {
		storage = rt.Storage
	}
	rt.Storage = ""
	params := strings.TrimSpace(g.params)
	if g.legacy {
		params = legacyNames(g.names)
	}
	fn := si.resolve(ast.KindFunction, &ast.Function{
		Storage:    storage,
		Inline:     g.inline,
		Params:     "(" + params + ")",
		ReturnType: rt,
		IsForward:  g.delim == ";",
	}, name, "")
	if err := r.emit(fn); err != nil {
		return err
	}
	si.advance(remainder)
	if g.delim == "{" || g.legacy {
		return r.parseFunctionBody(fn)
	}
	return nil
}

// legacyNames normalizes the identifier list of a K&R definition to "a, b"
func legacyNames(list string) string {
	names := strings.Split(list, ",")
	for i, n := range names {
		names[i] = strings.TrimSpace(n)
	}
	return strings.Join(names, ", ")
}

// handleVariable reports one declarator of a variable declaration, global or
// static local. A "," ending puts the type back in front of the next
// declarator.
func (r *run) handleVariable(si *sourceInfo, g globalVariable, remainder, parent string) error {
	_, name, vt, err := parseVarDecl(g.decl)
	if err != nil {
		return err
	}
	if g.storage != "" {
		vt.Storage = g.storage
	}
	if err := r.emit(si.resolve(ast.KindVariable, &vt, name, parent)); err != nil {
		return err
	}
	if g.hasInit {
		stmt := name + " = " + strings.TrimSpace(g.init)
		if err := r.emit(si.resolve(ast.KindStatement, &ast.Statement{Text: stmt}, "", parent)); err != nil {
			return err
		}
	}
	if g.ending == "," {
		si.advance(joinWords(vt.Storage, vt.TypeQual, vt.TypeSpec) + " " + remainder)
		si.markReparse()
		return nil
	}
	si.advance(remainder)
	return nil
}

func compoundKind(kind string) ast.Kind {
	switch strings.TrimSpace(kind) {
	case "union":
		return ast.KindUnion
	case "enum":
		return ast.KindEnum
	default:
		return ast.KindStruct
	}
}
