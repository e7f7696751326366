package parser

import (
	"fmt"
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single pattern evaluation
const matchTimeout = 2 * time.Second

// setCaptureGroup turns each `(?: # <NAME>` marker into the named group
// `(?<NAME>`. It panics if a name has no marker, which can only happen when
// the patterns themselves are broken.
func setCaptureGroup(pattern string, names ...string) string {
	for _, name := range names {
		marker := regexp2.MustCompile(`\(\?:\s*[#]\s*<`+regexp.QuoteMeta(name)+`>`, regexp2.None)
		replaced, err := marker.Replace(pattern, "(?<"+name+">", -1, -1)
		if err != nil {
			panic(fmt.Sprintf("promoting group %s: %v", name, err))
		}
		if replaced == pattern {
			panic(fmt.Sprintf("no marker for group %s", name))
		}
		pattern = replaced
	}
	return pattern
}

func compile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.IgnorePatternWhitespace)
	re.MatchTimeout = matchTimeout
	return re
}

// match wraps a regexp2 match. Group offsets are rune based, so the input is
// kept as runes for slicing.
type match struct {
	m    *regexp2.Match
	text []rune
}

func findMatch(re *regexp2.Regexp, text string) (*match, error) {
	m, err := re.FindStringMatch(text)
	if err != nil || m == nil {
		return nil, err
	}
	return &match{m: m, text: []rune(text)}, nil
}

func (m *match) group(name string) *regexp2.Group {
	g := m.m.GroupByName(name)
	if g == nil || len(g.Captures) == 0 {
		return nil
	}
	return g
}

// has reports whether the named group took part in the match
func (m *match) has(name string) bool {
	return m.group(name) != nil
}

func (m *match) str(name string) string {
	if g := m.group(name); g != nil {
		return g.String()
	}
	return ""
}

func (m *match) index(name string) int {
	if g := m.group(name); g != nil {
		return g.Index
	}
	return -1
}

// remainder is the text following the match
func (m *match) remainder() string {
	return string(m.text[m.m.Index+m.m.Length:])
}
