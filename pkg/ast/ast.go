// Package ast defines the items produced by the C declaration parser
package ast

import (
	"fmt"
	"strings"
)

// FileInfo locates the line on which a construct began
type FileInfo struct {
	Filename string
	Line     int
}

func (fi FileInfo) String() string {
	if fi.Filename == "" {
		return fmt.Sprintf("???:%d", fi.Line)
	}
	return fmt.Sprintf("%s:%d", fi.Filename, fi.Line)
}

// Kind represents the kind of a parsed item
type Kind int

const (
	KindUnknown Kind = iota
	KindStruct
	KindUnion
	KindEnum
	KindTypedef
	KindFunction
	KindVariable
	KindField
	KindStatement
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindTypedef:
		return "typedef"
	case KindFunction:
		return "function"
	case KindVariable:
		return "variable"
	case KindField:
		return "field"
	case KindStatement:
		return "statement"
	default:
		return "unknown"
	}
}

// IsCompound reports whether the kind is struct, union or enum
func (k Kind) IsCompound() bool {
	return k == KindStruct || k == KindUnion || k == KindEnum
}

// ParseKind maps a kind name (as returned by String) back to its Kind
func ParseKind(s string) (Kind, error) {
	for k := KindStruct; k <= KindStatement; k++ {
		if k.String() == strings.ToLower(strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown item kind %q", s)
}

// Item is one declaration recognized by the parser.
//
// Items are values: the parser never touches an item again once it has been
// handed to the caller.
type Item struct {
	File   FileInfo
	Kind   Kind
	Parent string // enclosing type for fields, function for local statics
	Name   string // may be synthetic (inline-N, anon-N)
	Data   Data   // nil for forward declarations of compound types
}

// IsForward reports whether the item is a bodyless compound type reference
func (it Item) IsForward() bool {
	return it.Kind.IsCompound() && it.Data == nil
}

// VarType returns the declared type of variables, typedefs and fields
func (it Item) VarType() (VarType, bool) {
	switch d := it.Data.(type) {
	case *VarType:
		return *d, true
	case *Field:
		return d.Type, true
	}
	return VarType{}, false
}

// Members returns the body of a struct, union or enum item
func (it Item) Members() []Item {
	if c, ok := it.Data.(*Compound); ok {
		return c.Members
	}
	return nil
}

func (it Item) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", it.File, it.Kind)
	if it.Parent != "" {
		fmt.Fprintf(&b, " %s.", it.Parent)
	} else {
		b.WriteString(" ")
	}
	b.WriteString(it.Name)
	if it.IsForward() {
		b.WriteString(" (forward)")
	}
	return b.String()
}

// FilterKinds returns the items whose kind is one of kinds
func FilterKinds(items []Item, kinds ...Kind) []Item {
	if len(kinds) == 0 {
		return items
	}
	var filtered []Item
	for _, it := range items {
		for _, k := range kinds {
			if it.Kind == k {
				filtered = append(filtered, it)
				break
			}
		}
	}
	return filtered
}
