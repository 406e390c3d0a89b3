package commands //nolint:testpackage // exercises the unexported environment helpers too.

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/rbkeys/pkg/config"
)

const threeKeyTree = "      /--[R] 30\n\\--[B] 20\n      \\--[R] 10\n"

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRootCommand_Help(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "--help")
	require.NoError(t, err)

	for _, name := range []string{"run", "demo", "bench", "version", "--config", "--log-json"} {
		assert.Contains(t, out, name)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "rbkeys "))
	assert.Contains(t, out, "commit:")
}

func TestDemoCommand_DefaultKeys(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "demo", "--color", "never")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, len(DemoKeys))

	roots := 0

	for _, line := range lines {
		if strings.HasPrefix(line, `\--[B] `) {
			roots++
		}

		assert.NotContains(t, line, "\x1b[")
	}

	assert.Equal(t, 1, roots, "exactly one unindented black root line")
}

func TestDemoCommand_CustomKeys(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "demo", "--keys", "10,20,30", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, threeKeyTree, out)
}

func TestDemoCommand_JSON(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "", "demo", "--keys", "2,1,3", "--format", "json")
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 3)
	assert.Equal(t, "root", docs[1]["side"])
	assert.Equal(t, "black", docs[1]["color"])
}

func TestDemoCommand_ConfigFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "rbkeys.yaml", "render:\n  indent: 2\n  color: never\n")

	out, _, err := execute(t, "", "--config", path, "demo", "--keys", "10,20,30")
	require.NoError(t, err)
	assert.Equal(t, "  /--[R] 30\n\\--[B] 20\n  \\--[R] 10\n", out)
}

func TestDemoCommand_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "demo", "--format", "xml")
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestRunCommand_ScriptFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "script.rb", "insert 10 20 30\nprint\nremove 20\nkeys\nverify\n")

	out, _, err := execute(t, "", "run", path, "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, threeKeyTree)
	assert.Contains(t, out, "removed 20\n")
	assert.True(t, strings.HasSuffix(out, "10 30\nok\n"))
	assert.NotContains(t, out, "rbkeys> ")
}

func TestRunCommand_Stdin(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "insert 3\nsearch 3 4\n", "run")
	require.NoError(t, err)
	assert.Equal(t, "inserted 3\n3 found\n4 not found\n", out)

	out, _, err = execute(t, "insert 5\n", "run", "-")
	require.NoError(t, err)
	assert.Equal(t, "inserted 5\n", out)
}

func TestRunCommand_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "run", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open script")
}

func TestRunCommand_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	out, _, err := execute(t, "insert 1\n", "run", "--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Equal(t, "inserted 1\n", out)
}

func TestRunCommand_VerboseLogsToStderr(t *testing.T) {
	t.Parallel()

	out, errOut, err := execute(t, "insert 1\n", "--verbose", "--log-json", "run")
	require.NoError(t, err)
	assert.Equal(t, "inserted 1\n", out)
	assert.Contains(t, errOut, `"msg":"command executed"`)
	assert.Contains(t, errOut, `"mode":"run"`)
}

func TestBenchCommand(t *testing.T) {
	t.Parallel()

	plot := filepath.Join(t.TempDir(), "bench.html")

	out, _, err := execute(t, "", "bench", "--sizes", "8,16", "--orders", "sorted", "--seed", "3", "--plot", plot)
	require.NoError(t, err)

	assert.Contains(t, out, "KEYS")
	assert.Contains(t, out, "sorted")
	assert.NotContains(t, out, "shuffled")

	html, err := os.ReadFile(plot)
	require.NoError(t, err)
	assert.Contains(t, string(html), "sorted keys")
}

func TestBenchCommand_InvalidOrder(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "bench", "--sizes", "8", "--orders", "spiral")
	require.ErrorIs(t, err, config.ErrInvalidBenchOrder)
}

func TestBenchCommand_InvalidSize(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "bench", "--sizes", "0")
	require.ErrorIs(t, err, config.ErrInvalidBenchSize)
}

func TestIsTerminal_NonFile(t *testing.T) {
	t.Parallel()

	assert.False(t, isTerminal(&bytes.Buffer{}))
}
