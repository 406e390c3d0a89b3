package render_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/rbkeys/pkg/rbtree"
	"github.com/Sumatoshi-tech/rbkeys/pkg/render"
)

// threeKeys is the tree built by inserting 10, 20, 30.
var threeKeys = []rbtree.Record{
	{Depth: 1, Side: rbtree.SideRight, Color: rbtree.Red, Key: 30},
	{Depth: 0, Side: rbtree.SideRoot, Color: rbtree.Black, Key: 20},
	{Depth: 1, Side: rbtree.SideLeft, Color: rbtree.Red, Key: 10},
}

func TestText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.Text(&buf, threeKeys, render.Options{}))

	want := "      /--[R] 30\n" +
		"\\--[B] 20\n" +
		"      \\--[R] 10\n"
	assert.Equal(t, want, buf.String())
}

func TestTextCustomIndent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.Text(&buf, threeKeys, render.Options{Indent: 2}))

	assert.Equal(t, "  /--[R] 30\n\\--[B] 20\n  \\--[R] 10\n", buf.String())
}

func TestTextColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.Text(&buf, threeKeys, render.Options{Color: true}))

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), " 20\n")
}

func TestTextEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.Text(&buf, nil, render.Options{}))
	assert.Empty(t, buf.String())
}

type doc struct {
	Depth int    `json:"depth" yaml:"depth"`
	Side  string `json:"side"  yaml:"side"`
	Color string `json:"color" yaml:"color"`
	Key   int64  `json:"key"   yaml:"key"`
}

var threeKeysDocs = []doc{
	{Depth: 1, Side: "right", Color: "red", Key: 30},
	{Depth: 0, Side: "root", Color: "black", Key: 20},
	{Depth: 1, Side: "left", Color: "red", Key: 10},
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.JSON(&buf, threeKeys))

	var got []doc

	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, threeKeysDocs, got)
}

func TestJSONEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.JSON(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())
}

func TestYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.YAML(&buf, threeKeys))

	var got []doc

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, threeKeysDocs, got)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    render.Format
		wantErr bool
	}{
		{input: "text", want: render.FormatText},
		{input: "JSON", want: render.FormatJSON},
		{input: " yaml ", want: render.FormatYAML},
		{input: "", want: render.FormatText},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := render.ParseFormat(tt.input)
		if tt.wantErr {
			require.ErrorIs(t, err, render.ErrUnknownFormat)

			continue
		}

		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteDispatch(t *testing.T) {
	t.Parallel()

	tree := rbtree.New()
	for _, k := range []int64{10, 20, 30} {
		tree.Insert(k)
	}

	var text, js bytes.Buffer

	require.NoError(t, render.Write(&text, render.FormatText, tree.Traverse(), render.Options{}))
	require.NoError(t, render.Write(&js, render.FormatJSON, tree.Traverse(), render.Options{}))

	assert.Contains(t, text.String(), "[B] 20")
	assert.Contains(t, js.String(), `"key": 20`)

	err := render.Write(&text, render.Format("csv"), nil, render.Options{})
	require.ErrorIs(t, err, render.ErrUnknownFormat)
}
