package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullMatch(t *testing.T, fragment, text string) bool {
	t.Helper()
	ok, err := compile(`^ ` + fragment + ` \z`).MatchString(text)
	require.NoError(t, err)
	return ok
}

func TestFragments(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		match    []string
		reject   []string
	}{
		{
			name:     "strict identifier",
			fragment: strictIdentifier,
			match:    []string{"x", "_tmp", "inline", "structure", "int8_t"},
			reject:   []string{"int", "struct", "static", "9lives", "inline-1"},
		},
		{
			name:     "anonymous identifier",
			fragment: anonIdentifier,
			match:    []string{"inline-12", "anon-3", "point"},
			reject:   []string{"enum", "-3"},
		},
		{
			name:     "string literal",
			fragment: stringLiteral,
			match:    []string{`""`, `"a \"quoted\" word"`, `'x'`, `'\n'`, `'\x41'`, `L"wide"`, `u8"utf"`},
			reject:   []string{`"open`, `''`, `'a`},
		},
		{
			name:     "simple type",
			fragment: simpleType,
			match:    []string{"int", "unsigned", "unsigned char", "long long int", "signed short", "long double", "_Bool", "void"},
			reject:   []string{"integer", "long long long int", "unsigned void"},
		},
		{
			name:     "type spec",
			fragment: typeSpec,
			match:    []string{"struct point", "union inline-2", "enum", "size_t", "typeof(x)", "__typeof__(*p)"},
			reject:   []string{"const int", "struct point *"},
		},
		{
			name:     "declarator",
			fragment: declarator,
			match:    []string{"x", "*p", "**argv", "* const p", "buf[8][2]", "(name)", "(*fn)(int)", "(**pp)(void)", "(*arr[3])(int, char *)"},
			reject:   []string{"", "*", "int", "(*)(int)"},
		},
		{
			name:     "initializer",
			fragment: initializer,
			match:    []string{"0", "-1", "(int) x", "\"a\" \"b\"", "f(1, g(2))", "a ? b : c"},
			reject:   []string{"x, y", "g(h(i(1)))"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, text := range tt.match {
				assert.True(t, fullMatch(t, tt.fragment, text), "expected %q to match", text)
			}
			for _, text := range tt.reject {
				assert.False(t, fullMatch(t, tt.fragment, text), "expected %q not to match", text)
			}
		})
	}
}

func TestSetCaptureGroup(t *testing.T) {
	pattern := setCaptureGroup(`(?: # <WORD>
		\w+
	) \s+ (?:	#	<NUMBER>
		\d+
	)`, "WORD", "NUMBER")

	m, err := findMatch(compile(pattern), "answer 42 left")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "answer", m.str("WORD"))
	assert.Equal(t, "42", m.str("NUMBER"))
	assert.Equal(t, 7, m.index("NUMBER"))
	assert.Equal(t, " left", m.remainder())

	assert.Panics(t, func() { setCaptureGroup(`(?: # <A> a)`, "B") })
}

func TestMatchRuneOffsets(t *testing.T) {
	m, err := findMatch(compile(`^ \s* (?<NAME> \w+ ) \s* [;]`), `héllo; "ünïcode"`)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "héllo", m.str("NAME"))
	assert.Equal(t, ` "ünïcode"`, m.remainder())
	assert.False(t, m.has("MISSING"))
	assert.Equal(t, -1, m.index("MISSING"))
}
