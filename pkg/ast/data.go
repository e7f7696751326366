package ast

import "strings"

// Data is the kind-specific payload of an Item
type Data interface {
	isData()
}

// VarType describes the declared type of a variable, typedef or return value.
// Abstract is the declarator with the identifier removed, e.g. "*", "[8]" or
// "(*)(int)".
type VarType struct {
	Storage  string
	TypeQual string
	TypeSpec string
	Abstract string
}

// Function describes a function declaration or definition, and typedefs of
// function and function-pointer types
type Function struct {
	Storage    string
	Inline     bool
	Params     string // including the surrounding parens
	ReturnType VarType
	IsForward  bool
}

// Compound is the body of a struct, union or enum
type Compound struct {
	Members []Item
}

// Field is a struct or union member
type Field struct {
	Type        VarType
	Size        string // bit width, empty unless IsBitfield
	IsBitfield  bool
	IsAnonymous bool
}

// Enumerator is an enum member
type Enumerator struct {
	Init string
}

// Statement is an opaque statement synthesized from a declaration, such as
// the assignment performed by an initializer
type Statement struct {
	Text string
}

func (*VarType) isData()    {}
func (*Function) isData()   {}
func (*Compound) isData()   {}
func (*Field) isData()      {}
func (*Enumerator) isData() {}
func (*Statement) isData()  {}

// IsFuncPtr reports whether the abstract declarator is a function pointer
func (vt VarType) IsFuncPtr() bool {
	a := strings.ReplaceAll(vt.Abstract, " ", "")
	return strings.HasPrefix(a, "(*") && strings.HasSuffix(a, ")")
}

// Declaration rebuilds the C declaration of name with this type
func (vt VarType) Declaration(name string) string {
	return joinWords(vt.Storage, vt.TypeQual, vt.TypeSpec, InsertName(vt.Abstract, name))
}

// Declaration rebuilds the C prototype of a function named name
func (f Function) Declaration(name string) string {
	inline := ""
	if f.Inline {
		inline = "inline"
	}
	storage := f.Storage
	if storage == "" {
		storage = f.ReturnType.Storage
	}
	rt := f.ReturnType
	return joinWords(storage, inline, rt.TypeQual, rt.TypeSpec, InsertName(rt.Abstract, name)+f.Params)
}

// InsertName puts name back into an abstract declarator.
// "(*)(int)" becomes "(*name)(int)", "*[4]" becomes "*name[4]".
func InsertName(abstract, name string) string {
	a := strings.TrimSpace(abstract)
	if a == "" {
		return name
	}
	paren := strings.Index(a, "(")
	bracket := strings.Index(a, "[")
	if paren >= 0 && (bracket < 0 || paren < bracket) {
		if closing := strings.Index(a[paren:], ")"); closing >= 0 {
			at := paren + closing
			if b := strings.Index(a[paren:at], "["); b >= 0 {
				at = paren + b
			}
			return a[:at] + name + a[at:]
		}
	}
	if bracket >= 0 {
		return a[:bracket] + name + a[bracket:]
	}
	return a + name
}

func joinWords(words ...string) string {
	var parts []string
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			parts = append(parts, w)
		}
	}
	return strings.Join(parts, " ")
}
