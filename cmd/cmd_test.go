package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const pointSource = `struct Point {
	int x;
	int y;
};

int main(void)
{
	return 0;
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommandHuman(t *testing.T) {
	path := writeFile(t, "point.c", pointSource)

	out, err := execute(t, "", "parse", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, path+":1\tstruct\tPoint\t(forward)", lines[0])
	assert.Equal(t, path+":2\tfield\tstruct Point.x\tint x", lines[1])
	assert.Equal(t, path+":3\tfield\tstruct Point.y\tint y", lines[2])
	assert.Equal(t, path+":1\tstruct\tPoint\t{2 members}", lines[3])
	assert.Contains(t, lines[4], "\tfunction\tmain\t")
	assert.True(t, strings.HasSuffix(lines[4], "{...}"))
}

func TestParseCommandFilters(t *testing.T) {
	path := writeFile(t, "point.c", pointSource)

	out, err := execute(t, "", "parse", "--merge", "--kind", "struct", path)
	require.NoError(t, err)
	assert.Equal(t, path+":1\tstruct\tPoint\t{2 members}\n", out)

	_, err = execute(t, "", "parse", "--kind", "class", path)
	assert.ErrorContains(t, err, "unknown item kind")
}

func TestParseCommandJSON(t *testing.T) {
	path := writeFile(t, "point.c", pointSource)

	out, err := execute(t, "", "parse", "-f", "json", "--merge", path)
	require.NoError(t, err)

	var doc struct {
		Files []fileRecord `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)
	assert.Equal(t, path, doc.Files[0].Filename)
	assert.Empty(t, doc.Files[0].Error)

	var kinds []string
	for _, it := range doc.Files[0].Items {
		kinds = append(kinds, it.Kind)
	}
	assert.Equal(t, []string{"struct", "field", "field", "function"}, kinds)

	point := doc.Files[0].Items[0]
	assert.Equal(t, "Point", point.Name)
	assert.Equal(t, []string{"x", "y"}, point.Members)
	assert.False(t, point.Forward)

	x := doc.Files[0].Items[1]
	assert.Equal(t, "struct Point", x.Parent)
	assert.Equal(t, "int", x.TypeSpec)
}

func TestParseCommandYAML(t *testing.T) {
	out, err := execute(t, "static int counter = 3;\n", "parse", "-f", "yaml")
	require.NoError(t, err)

	var doc struct {
		Files []fileRecord `yaml:"files"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Files, 1)
	assert.Equal(t, stdinName, doc.Files[0].Filename)
	require.Len(t, doc.Files[0].Items, 2)

	v := doc.Files[0].Items[0]
	assert.Equal(t, "variable", v.Kind)
	assert.Equal(t, "counter", v.Name)
	assert.Equal(t, "static", v.Storage)
	assert.Equal(t, "<stdin>", v.File)

	st := doc.Files[0].Items[1]
	assert.Equal(t, "statement", st.Kind)
	assert.Equal(t, "counter = 3", st.Text)
}

func TestParseCommandMultipleFiles(t *testing.T) {
	a := writeFile(t, "a.c", "int a;\n")
	b := writeFile(t, "b.c", "int b;\n")
	broken := writeFile(t, "broken.c", "struct S {\n\tint x;\n")

	out, err := execute(t, "", "parse", "-j", "2", a, broken, b)
	require.Error(t, err)
	assert.ErrorContains(t, err, broken)

	first := strings.Index(out, "Parsed file: "+a)
	second := strings.Index(out, "Parsed file: "+broken)
	third := strings.Index(out, "Parsed file: "+b)
	assert.True(t, first >= 0 && first < second && second < third, out)
	assert.Contains(t, out, "\tvariable\tb\t")
}

func TestParseCommandLineMarkers(t *testing.T) {
	src := "# 1 \"main.c\"\n# 1 \"types.h\" 1\ntypedef unsigned int u32;\n# 2 \"main.c\" 2\nu32 total;\n"

	out, err := execute(t, src, "parse")
	require.NoError(t, err)
	assert.Contains(t, out, "types.h:1\ttypedef\tu32\t")
	assert.Contains(t, out, "main.c:2\tvariable\ttotal\t")

	out, err = execute(t, "# 5 \"x.c\"\nint v;\n", "parse", "--raw")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(out, "error: "), out)
}

func TestParseCommandGuard(t *testing.T) {
	src := "int x =\n" + strings.Repeat("1 +\n", 10) + "1;\n"
	path := writeFile(t, "long.c", src)

	_, err := execute(t, "", "parse", "--max-lines", "5", path)
	assert.ErrorContains(t, err, "too much text")

	_, err = execute(t, "", "parse", "--max-lines", "0", path)
	assert.NoError(t, err)
}

func TestParseCommandConfig(t *testing.T) {
	src := "int x =\n" + strings.Repeat("1 +\n", 10) + "1;\n"
	path := writeFile(t, "long.c", src)
	conf := writeFile(t, "cdecl.toml", `
[parser]
max_lines = 5

[output]
format = "json"
`)

	_, err := execute(t, "", "--config", conf, "parse", path)
	assert.ErrorContains(t, err, "too much text")

	_, err = execute(t, "", "--config", conf, "parse", "--max-lines", "50", path)
	assert.NoError(t, err)

	_, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "parse", path)
	assert.ErrorContains(t, err, "failed to load config")
}

func TestParseCommandBadFlags(t *testing.T) {
	path := writeFile(t, "a.c", "int a;\n")

	_, err := execute(t, "", "parse", "-f", "xml", path)
	assert.ErrorContains(t, err, "unknown output format")

	_, err = execute(t, "", "parse", "-j", "0", path)
	assert.ErrorContains(t, err, "--jobs")

	_, err = execute(t, "", "--log-level", "loud", "parse", path)
	assert.ErrorContains(t, err, "invalid log level")
}

func TestParseCommandMetricsFile(t *testing.T) {
	path := writeFile(t, "point.c", pointSource)
	metrics := filepath.Join(t.TempDir(), "cdecl.prom")

	_, err := execute(t, "", "parse", "--metrics-file", metrics, path)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cdecl_items_total")
	assert.Contains(t, string(data), "cdecl_parse_seconds")
}

func TestDeclsCommand(t *testing.T) {
	src := `typedef struct {
	int a;
	char *b;
} pair_t;
static int add(int x, int y) { return x + y; }
`
	path := writeFile(t, "pair.c", src)

	out, err := execute(t, "", "decls", path)
	require.NoError(t, err)
	assert.Equal(t, `typedef struct {
    int a;
    char *b;
} pair_t;
static int add(int x, int y);
`, out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "cdecl-stream")
	assert.Contains(t, out, "Commit:")
}
