// Package render turns tree traversal records into output for people and
// tools: an indented text diagram, JSON or YAML.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/rbkeys/pkg/rbtree"
)

// ErrUnknownFormat is returned for an output format name that is not supported.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects the output encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultIndent is the number of spaces per depth level in text output.
const DefaultIndent = 6

// Text diagram markers.
const (
	markerRight = "/--"
	markerLeft  = `\--`
	tagRed      = "[R]"
	tagBlack    = "[B]"
)

// Options control text rendering.
type Options struct {
	// Indent is the number of spaces per depth level. Zero means DefaultIndent.
	Indent int

	// Color prints the color tags in red and dark gray.
	Color bool
}

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Write renders records to w in the given format.
func Write(w io.Writer, format Format, records []rbtree.Record, opts Options) error {
	switch format {
	case FormatText:
		return Text(w, records, opts)
	case FormatJSON:
		return JSON(w, records)
	case FormatYAML:
		return YAML(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text writes one line per record: indentation for the depth, a branch
// marker ("/--" above the parent for right children, "\--" below it for
// left children and the root), a color tag and the key.
func Text(w io.Writer, records []rbtree.Record, opts Options) error {
	indent := opts.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	redTag, blackTag := tagRed, tagBlack

	if opts.Color {
		redColor := color.New(color.FgRed, color.Bold)
		redColor.EnableColor()

		blackColor := color.New(color.FgHiBlack, color.Bold)
		blackColor.EnableColor()

		redTag = redColor.Sprint(tagRed)
		blackTag = blackColor.Sprint(tagBlack)
	}

	var sb strings.Builder

	for _, rec := range records {
		sb.WriteString(strings.Repeat(" ", rec.Depth*indent))

		if rec.Side == rbtree.SideRight {
			sb.WriteString(markerRight)
		} else {
			sb.WriteString(markerLeft)
		}

		if rec.Color == rbtree.Red {
			sb.WriteString(redTag)
		} else {
			sb.WriteString(blackTag)
		}

		fmt.Fprintf(&sb, " %d\n", rec.Key)
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write tree: %w", err)
	}

	return nil
}

// recordDoc is the JSON and YAML shape of a record.
type recordDoc struct {
	Depth int    `json:"depth" yaml:"depth"`
	Side  string `json:"side"  yaml:"side"`
	Color string `json:"color" yaml:"color"`
	Key   int64  `json:"key"   yaml:"key"`
}

func toDocs(records []rbtree.Record) []recordDoc {
	docs := make([]recordDoc, len(records))

	for i, rec := range records {
		docs[i] = recordDoc{
			Depth: rec.Depth,
			Side:  rec.Side.String(),
			Color: rec.Color.String(),
			Key:   rec.Key,
		}
	}

	return docs
}

// JSON writes records as an indented JSON array.
func JSON(w io.Writer, records []rbtree.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(toDocs(records))
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

// YAML writes records as a YAML sequence.
func YAML(w io.Writer, records []rbtree.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(toDocs(records))
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("close yaml encoder: %w", err)
	}

	return nil
}
