// Package formatter renders parsed declaration items as text
package formatter

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"cdecl-stream/pkg/ast"
)

// Formatter renders items for people and regenerates C declarations
type Formatter struct {
	indentSize int
	useSpaces  bool
}

// New creates a new formatter
func New() *Formatter {
	return &Formatter{
		indentSize: 4,
		useSpaces:  true,
	}
}

// Human renders one line per item: location, kind, qualified name and a
// short description
func (f *Formatter) Human(items []ast.Item) string {
	var result strings.Builder
	for _, it := range items {
		result.WriteString(f.Summary(it))
		result.WriteString("\n")
	}
	return result.String()
}

// Summary describes a single item on one line
func (f *Formatter) Summary(it ast.Item) string {
	name := it.Name
	if it.Parent != "" {
		name = it.Parent + "." + it.Name
	}
	line := fmt.Sprintf("%s\t%s\t%s", it.File, it.Kind, name)
	if detail := f.detail(it); detail != "" {
		line += "\t" + detail
	}
	return line
}

func (f *Formatter) detail(it ast.Item) string {
	switch d := it.Data.(type) {
	case nil:
		if it.Kind.IsCompound() {
			return "(forward)"
		}
	case *ast.Compound:
		return fmt.Sprintf("{%d members}", len(d.Members))
	case *ast.VarType:
		return d.Declaration(it.Name)
	case *ast.Function:
		decl := d.Declaration(it.Name)
		if it.Kind == ast.KindFunction && !d.IsForward {
			decl += " {...}"
		}
		return decl
	case *ast.Field:
		decl := d.Type.Declaration(it.Name)
		if d.IsAnonymous {
			decl = d.Type.Declaration("")
		}
		if d.IsBitfield {
			decl += " : " + d.Size
		}
		return decl
	case *ast.Enumerator:
		if d.Init != "" {
			return "= " + d.Init
		}
	case *ast.Statement:
		return d.Text
	}
	return ""
}

// Declarations regenerates normalized C declarations for the file scope
// items. Compound types are collapsed to their final definition and
// anonymous types are written inline where they are used.
func (f *Formatter) Declarations(items []ast.Item) string {
	merged := ast.Merge(items)
	inline := make(map[string]ast.Item)
	for _, it := range merged {
		if it.Kind.IsCompound() && isSynthetic(it.Name) {
			inline[it.Kind.String()+" "+it.Name] = it
		}
	}

	var result strings.Builder
	for _, it := range merged {
		if it.Parent != "" {
			continue
		}
		var decl string
		switch d := it.Data.(type) {
		case nil:
			if !it.Kind.IsCompound() || isSynthetic(it.Name) {
				continue
			}
			decl = it.Kind.String() + " " + it.Name
		case *ast.Compound:
			if isSynthetic(it.Name) {
				continue
			}
			decl = f.compound(it, inline, 0)
		case *ast.VarType:
			decl = f.declaration(*d, it.Name, inline, 0)
			if it.Kind == ast.KindTypedef {
				decl = "typedef " + decl
			}
		case *ast.Function:
			decl = f.function(*d, it.Name, inline)
			if it.Kind == ast.KindTypedef {
				decl = "typedef " + decl
			}
		default:
			continue
		}
		result.WriteString(decl + ";\n")
	}
	return result.String()
}

// declaration writes "type name", expanding a reference to an anonymous
// compound into its body
func (f *Formatter) declaration(vt ast.VarType, name string, inline map[string]ast.Item, depth int) string {
	if body, ok := inline[vt.TypeSpec]; ok {
		spec := f.compound(ast.Item{Kind: body.Kind, Data: body.Data}, inline, depth)
		vt.TypeSpec = spec
	}
	return vt.Declaration(name)
}

func (f *Formatter) function(fn ast.Function, name string, inline map[string]ast.Item) string {
	if body, ok := inline[fn.ReturnType.TypeSpec]; ok {
		fn.ReturnType.TypeSpec = f.compound(ast.Item{Kind: body.Kind, Data: body.Data}, inline, 0)
	}
	return fn.Declaration(name)
}

// compound writes a struct, union or enum with its body. An empty name
// writes an anonymous type.
func (f *Formatter) compound(it ast.Item, inline map[string]ast.Item, depth int) string {
	var result strings.Builder
	result.WriteString(it.Kind.String())
	if it.Name != "" {
		result.WriteString(" " + it.Name)
	}
	result.WriteString(" {\n")

	indent := f.getIndent(depth + 1)
	members := it.Members()
	for i, m := range members {
		result.WriteString(indent)
		switch d := m.Data.(type) {
		case *ast.Enumerator:
			result.WriteString(m.Name)
			if d.Init != "" {
				result.WriteString(" = " + d.Init)
			}
			if i < len(members)-1 {
				result.WriteString(",")
			}
		case *ast.Field:
			name := m.Name
			if d.IsAnonymous {
				name = ""
			}
			result.WriteString(f.declaration(d.Type, name, inline, depth+1))
			if d.IsBitfield {
				result.WriteString(" : " + d.Size)
			}
			result.WriteString(";")
		}
		result.WriteString("\n")
	}
	result.WriteString(f.getIndent(depth) + "}")
	return result.String()
}

func isSynthetic(name string) bool {
	return strings.HasPrefix(name, "inline-") || strings.HasPrefix(name, "anon-")
}

// getIndent returns the indentation string for the given depth
func (f *Formatter) getIndent(depth int) string {
	if f.useSpaces {
		return strings.Repeat(" ", depth*f.indentSize)
	}
	return strings.Repeat("\t", depth)
}

// FormatWithClang formats the code using clang-format
func (f *Formatter) FormatWithClang(code string) (string, error) {
	tmpFile, err := os.CreateTemp("", "cdecl-*.c")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(code); err != nil {
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}
	tmpFile.Close()

	cmd := exec.Command("clang-format", tmpFile.Name())
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("clang-format failed: %w", err)
	}

	return string(output), nil
}
