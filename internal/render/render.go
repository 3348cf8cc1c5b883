// Package render writes parsed outlines in display and interchange formats.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/outlinetree/internal/outline"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatPaths    Format = "paths"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatTable, FormatMarkdown, FormatHTML, FormatJSON, FormatYAML, FormatPaths}

// ParseFormat accepts a format name, case-insensitively. "md" and "yml" are
// accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatText, nil
	default:
		for _, known := range Formats {
			if f == known {
				return f, nil
			}
		}
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// ContentType is the MIME type of a format's output.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Options control what is rendered.
type Options struct {
	// Title labels the document: the tree root in text output, the heading in
	// Markdown and HTML, a field in JSON and YAML.
	Title string

	// Only restricts output to these nodes and their ancestors. Nil renders
	// every node.
	Only []outline.NodeID
}

// keep returns the visibility predicate for opts.
func (o Options) keep(t *outline.Tree) func(outline.Node) bool {
	if o.Only == nil {
		return func(outline.Node) bool { return true }
	}
	visible := make(map[outline.NodeID]bool, len(o.Only))
	for _, id := range o.Only {
		n, ok := t.Node(id)
		for ok && !n.IsRoot() && !visible[n.ID()] {
			visible[n.ID()] = true
			n, ok = n.Parent()
		}
	}
	return func(n outline.Node) bool { return visible[n.ID()] }
}

// Render writes t to w in format f.
func Render(w io.Writer, t *outline.Tree, f Format, opts Options) error {
	switch f {
	case FormatText:
		return writeString(w, Text(t, opts))
	case FormatTable:
		return writeString(w, Table(t, opts))
	case FormatMarkdown:
		return writeString(w, Markdown(t, opts))
	case FormatHTML:
		return HTML(w, t, opts)
	case FormatJSON:
		return JSON(w, t, opts)
	case FormatYAML:
		return YAML(w, t, opts)
	case FormatPaths:
		return writeString(w, Paths(t, opts))
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

func writeString(w io.Writer, s string) error {
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
