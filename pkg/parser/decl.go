package parser

import (
	"fmt"
	"strings"

	"cdecl-stream/pkg/ast"
)

// declKind is the shape of a declarator
type declKind int

const (
	declSimple   declKind = iota // name, *name, name[4]
	declWrapped                  // (name), (name[4])
	declFuncPtr                  // (*name)(int)
)

func (k declKind) String() string {
	switch k {
	case declSimple:
		return "simple"
	case declWrapped:
		return "wrapped"
	case declFuncPtr:
		return "funcptr"
	default:
		return "unknown"
	}
}

// parseVarDecl splits "[storage] [qual] spec declarator" into the declared
// name and its type. The abstract declarator is the declarator with the
// name cut out.
func parseVarDecl(text string) (declKind, string, ast.VarType, error) {
	m, err := findMatch(varDeclRE, text)
	if err != nil {
		return 0, "", ast.VarType{}, fmt.Errorf("matching declaration %q: %w", text, err)
	}
	if m == nil {
		return 0, "", ast.VarType{}, fmt.Errorf("%w: %q", ErrDeclaratorShape, text)
	}

	var kind declKind
	var group string
	switch {
	case m.has("IDENTIFIER"):
		kind, group = declSimple, "IDENTIFIER"
	case m.has("WRAPPED_IDENTIFIER"):
		kind, group = declWrapped, "WRAPPED_IDENTIFIER"
	case m.has("FUNC_IDENTIFIER"):
		kind, group = declFuncPtr, "FUNC_IDENTIFIER"
	default:
		return 0, "", ast.VarType{}, fmt.Errorf("%w: %q", ErrDeclaratorShape, text)
	}

	name := m.str(group)
	declarator := []rune(m.str("DECLARATOR"))
	at := m.index(group) - m.index("DECLARATOR")
	abstract := string(declarator[:at]) + string(declarator[at+len([]rune(name)):])

	return kind, name, ast.VarType{
		Storage:  m.str("STORAGE"),
		TypeQual: m.str("TYPE_QUAL"),
		TypeSpec: collapseSpace(m.str("TYPE_SPEC")),
		Abstract: strings.TrimSpace(abstract),
	}, nil
}

// splitTrailingParams splits "(*)(int, char *)" into "(*)" and
// "(int, char *)"
func splitTrailingParams(abstract string) (string, string, bool) {
	s := strings.TrimSpace(abstract)
	if !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				if i == 0 {
					return "", "", false
				}
				return strings.TrimSpace(s[:i]), s[i:], true
			}
		}
	}
	return "", "", false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func joinWords(words ...string) string {
	return collapseSpace(strings.Join(words, " "))
}
