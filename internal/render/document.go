package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/outlinetree/internal/outline"
	"github.com/goccy/go-yaml"
)

// Document is the nested interchange form of an outline.
type Document struct {
	Title   string     `json:"title,omitempty" yaml:"title,omitempty"`
	Headers []string   `json:"headers" yaml:"headers"`
	Nodes   []*DocNode `json:"nodes" yaml:"nodes"`
}

// DocNode is one outline entry.
type DocNode struct {
	ID       outline.NodeID `json:"id" yaml:"id"`
	Cells    []string       `json:"cells" yaml:"cells"`
	Children []*DocNode     `json:"children,omitempty" yaml:"children,omitempty"`
}

// NewDocument converts the visible part of t.
func NewDocument(t *outline.Tree, opts Options) *Document {
	keep := opts.keep(t)
	var convert func(n outline.Node) []*DocNode
	convert = func(n outline.Node) []*DocNode {
		var out []*DocNode
		for i := 0; i < n.ChildCount(); i++ {
			c, _ := n.Child(i)
			if !keep(c) {
				continue
			}
			out = append(out, &DocNode{
				ID:       c.ID(),
				Cells:    c.Cells(),
				Children: convert(c),
			})
		}
		return out
	}

	nodes := convert(t.Root())
	if nodes == nil {
		nodes = []*DocNode{}
	}
	return &Document{
		Title:   opts.Title,
		Headers: t.Headers(),
		Nodes:   nodes,
	}
}

// JSON writes the indented Document form.
func JSON(w io.Writer, t *outline.Tree, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(t, opts)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// YAML writes the Document form as YAML.
func YAML(w io.Writer, t *outline.Tree, opts Options) error {
	out, err := yaml.Marshal(NewDocument(t, opts))
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}
