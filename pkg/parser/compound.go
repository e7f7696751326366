package parser

import (
	"fmt"
	"strings"

	"cdecl-stream/pkg/ast"
)

type (
	memberClose  struct{}
	memberInline struct {
		leading string
		kind    string
		name    string
	}
	memberField struct {
		qual       string
		spec       string
		qualSpec   string
		declarator string
		hasSize    bool
		size       string
		ending     string
	}
)

func decodeMember(m *match) any {
	switch {
	case m.has("CLOSE"):
		return memberClose{}
	case m.has("INLINE_KIND"):
		return memberInline{
			leading: m.str("INLINE_LEADING"),
			kind:    m.str("INLINE_KIND"),
			name:    m.str("INLINE_NAME"),
		}
	case m.has("ENDING"):
		return memberField{
			qual:       m.str("MEMBER_QUAL"),
			spec:       collapseSpace(m.str("MEMBER_SPEC")),
			qualSpec:   joinWords(m.str("MEMBER_QUAL"), m.str("MEMBER_SPEC")),
			declarator: m.str("DECLARATOR"),
			hasSize:    m.has("SIZE"),
			size:       strings.TrimSpace(m.str("SIZE")),
			ending:     m.str("ENDING"),
		}
	}
	return nil
}

type (
	enumClose  struct{}
	enumMember struct {
		name    string
		hasInit bool
		init    string
		ending  string
	}
)

func decodeEnumMember(m *match) any {
	switch {
	case m.has("CLOSE"):
		return enumClose{}
	case m.has("NAME"):
		return enumMember{
			name:    m.str("NAME"),
			hasInit: m.has("INIT"),
			init:    strings.TrimSpace(m.str("INIT")),
			ending:  m.str("ENDING"),
		}
	}
	return nil
}

// parseInlineCompound handles a struct, union or enum whose opening brace has
// just been matched. It reports the tag, parses the body, reports the full
// type and then puts "leading kind name" back in front of whatever followed
// the closing brace, so the declaration the type was part of is matched
// next.
func (r *run) parseInlineCompound(si *sourceInfo, leading, kindName, name, remainder string) error {
	kindName = strings.TrimSpace(kindName)
	kind := compoundKind(kindName)
	if name == "" {
		name = r.anon("inline-")
	}
	forward := si.resolve(kind, nil, name, "")
	if err := r.emit(forward); err != nil {
		return err
	}

	si.nest(remainder, joinWords(leading, kindName, name))
	var members []ast.Item
	var err error
	if kind == ast.KindEnum {
		members, err = r.parseEnumBody(forward)
	} else {
		members, err = r.parseStructBody(forward)
	}
	if err != nil {
		return err
	}

	full := forward
	full.Data = &ast.Compound{Members: members}
	if err := r.emit(full); err != nil {
		return err
	}
	si.resume()
	return nil
}

// parseStructBody reports the members of a struct or union up to and
// including the closing brace. The members directly owned by the type are
// also returned.
func (r *run) parseStructBody(owner ast.Item) ([]ast.Item, error) {
	parent := owner.Kind.String() + " " + owner.Name
	var members []ast.Item
	for {
		si, ok, err := r.feed.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, unterminated(owner)
		}
		m, err := r.match(structMemberRE, si)
		if err != nil {
			return nil, err
		}
		if m == nil {
			continue
		}
		switch mm := decodeMember(m).(type) {
		case memberClose:
			r.logMatch(parent, "close", si)
			si.advance(m.remainder())
			return members, nil
		case memberInline:
			r.logMatch(parent, "inline", si)
			if err := r.parseInlineCompound(si, mm.leading, mm.kind, mm.name, m.remainder()); err != nil {
				return nil, err
			}
		case memberField:
			r.logMatch(parent, "field", si)
			field, err := r.resolveField(si, mm, parent)
			if err != nil {
				return nil, err
			}
			if err := r.emit(field); err != nil {
				return nil, err
			}
			members = append(members, field)
			if mm.ending == "," {
				si.advance(mm.qualSpec + " " + m.remainder())
			} else {
				si.advance(m.remainder())
			}
		default:
			return nil, fmt.Errorf("member match at %s:%d has no known alternative", si.filename, si.current.start)
		}
	}
}

func (r *run) resolveField(si *sourceInfo, mm memberField, parent string) (ast.Item, error) {
	field := &ast.Field{
		Size:       mm.size,
		IsBitfield: mm.hasSize,
	}
	var name string
	if strings.TrimSpace(mm.declarator) == "" {
		name = r.anon("anon-")
		field.IsAnonymous = true
		field.Type = ast.VarType{TypeQual: mm.qual, TypeSpec: mm.spec}
	} else {
		_, n, vt, err := parseVarDecl(mm.qualSpec + " " + mm.declarator)
		if err != nil {
			return ast.Item{}, err
		}
		name = n
		field.Type = vt
	}
	return si.resolve(ast.KindField, field, name, parent), nil
}

// parseEnumBody reports enumerators up to and including the closing brace
func (r *run) parseEnumBody(owner ast.Item) ([]ast.Item, error) {
	parent := owner.Kind.String() + " " + owner.Name
	var members []ast.Item
	for {
		si, ok, err := r.feed.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, unterminated(owner)
		}
		m, err := r.match(enumMemberRE, si)
		if err != nil {
			return nil, err
		}
		if m == nil {
			continue
		}
		switch em := decodeEnumMember(m).(type) {
		case enumClose:
			r.logMatch(parent, "close", si)
			si.advance(m.remainder())
			return members, nil
		case enumMember:
			r.logMatch(parent, "enumerator", si)
			it := si.resolve(ast.KindField, &ast.Enumerator{Init: em.init}, em.name, parent)
			if err := r.emit(it); err != nil {
				return nil, err
			}
			members = append(members, it)
			si.advance(m.remainder())
			if em.ending == "}" {
				return members, nil
			}
		default:
			return nil, fmt.Errorf("enumerator match at %s:%d has no known alternative", si.filename, si.current.start)
		}
	}
}
