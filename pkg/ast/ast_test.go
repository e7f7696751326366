package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	for k := KindStruct; k <= KindStatement; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	k, err := ParseKind(" Struct ")
	require.NoError(t, err)
	assert.Equal(t, KindStruct, k)

	_, err = ParseKind("class")
	assert.Error(t, err)

	assert.True(t, KindEnum.IsCompound())
	assert.False(t, KindTypedef.IsCompound())
}

func TestInsertName(t *testing.T) {
	tests := []struct {
		abstract string
		want     string
	}{
		{"", "x"},
		{"*", "*x"},
		{"* const *", "* const *x"},
		{"[8]", "x[8]"},
		{"*[4][2]", "*x[4][2]"},
		{"(*)(int, char *)", "(*x)(int, char *)"},
		{"(*[3])(void)", "(*x[3])(void)"},
		{"([2])", "(x[2])"},
	}
	for _, tt := range tests {
		t.Run(tt.abstract, func(t *testing.T) {
			assert.Equal(t, tt.want, InsertName(tt.abstract, "x"))
		})
	}
}

func TestDeclaration(t *testing.T) {
	vt := VarType{Storage: "static", TypeQual: "const", TypeSpec: "char", Abstract: "*[4]"}
	assert.Equal(t, "static const char *names[4]", vt.Declaration("names"))
	assert.False(t, vt.IsFuncPtr())

	fp := VarType{TypeSpec: "int", Abstract: "(*)(const void *, const void *)"}
	assert.True(t, fp.IsFuncPtr())
	assert.Equal(t, "int (*cmp)(const void *, const void *)", fp.Declaration("cmp"))

	fn := Function{Storage: "static", Inline: true, Params: "(int a)", ReturnType: VarType{TypeSpec: "int"}}
	assert.Equal(t, "static inline int twice(int a)", fn.Declaration("twice"))

	ret := Function{Params: "(void)", ReturnType: VarType{Storage: "extern", TypeSpec: "char", Abstract: "*"}}
	assert.Equal(t, "extern char *name(void)", ret.Declaration("name"))
}

func TestItemAccessors(t *testing.T) {
	fwd := Item{File: FileInfo{"a.c", 3}, Kind: KindStruct, Name: "S"}
	assert.True(t, fwd.IsForward())
	assert.Nil(t, fwd.Members())
	assert.Equal(t, "a.c:3 struct S (forward)", fwd.String())

	field := Item{File: FileInfo{"a.c", 4}, Kind: KindField, Parent: "struct S", Name: "x",
		Data: &Field{Type: VarType{TypeSpec: "int"}}}
	vt, ok := field.VarType()
	require.True(t, ok)
	assert.Equal(t, "int", vt.TypeSpec)
	assert.Equal(t, "a.c:4 field struct S.x", field.String())

	full := Item{File: fwd.File, Kind: KindStruct, Name: "S", Data: &Compound{Members: []Item{field}}}
	assert.False(t, full.IsForward())
	assert.Len(t, full.Members(), 1)

	_, ok = full.VarType()
	assert.False(t, ok)

	assert.Equal(t, "???:7", FileInfo{Line: 7}.String())
}

func TestMerge(t *testing.T) {
	fwdA := Item{File: FileInfo{"a.c", 1}, Kind: KindStruct, Name: "A"}
	field := Item{File: FileInfo{"a.c", 2}, Kind: KindField, Parent: "struct A", Name: "x", Data: &Field{}}
	fullA := Item{File: FileInfo{"a.c", 1}, Kind: KindStruct, Name: "A", Data: &Compound{Members: []Item{field}}}
	fwdB := Item{File: FileInfo{"a.c", 5}, Kind: KindStruct, Name: "B"}
	unionA := Item{File: FileInfo{"a.c", 6}, Kind: KindUnion, Name: "A"}
	otherFile := Item{File: FileInfo{"b.c", 1}, Kind: KindStruct, Name: "A"}
	v := Item{File: FileInfo{"a.c", 7}, Kind: KindVariable, Name: "v", Data: &VarType{TypeSpec: "struct A"}}
	again := Item{File: FileInfo{"a.c", 8}, Kind: KindStruct, Name: "A"}

	merged := Merge([]Item{fwdA, field, fullA, fwdB, unionA, otherFile, v, again})
	assert.Equal(t, []Item{fullA, field, fwdB, unionA, otherFile, v}, merged)
}

func TestFilterKinds(t *testing.T) {
	items := []Item{
		{Kind: KindStruct, Name: "S"},
		{Kind: KindFunction, Name: "f"},
		{Kind: KindVariable, Name: "v"},
	}
	assert.Equal(t, items, FilterKinds(items))
	assert.Equal(t, []Item{items[1], items[2]}, FilterKinds(items, KindVariable, KindFunction))
	assert.Empty(t, FilterKinds(items, KindEnum))
}
