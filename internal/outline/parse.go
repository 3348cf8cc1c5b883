package outline

import (
	"fmt"
	"io"
	"strings"
)

// Option configures Parse.
type Option func(*parseConfig)

type parseConfig struct {
	headers  []string
	tabWidth int
}

// WithHeaders sets the root's cells, which the model reports as column
// headers.
func WithHeaders(labels ...string) Option {
	return func(c *parseConfig) {
		c.headers = labels
	}
}

// WithTabWidth makes leading tabs count as width spaces of indentation. The
// default of 0 counts literal spaces only, and a tab ends the indentation.
func WithTabWidth(width int) Option {
	return func(c *parseConfig) {
		if width < 0 {
			width = 0
		}
		c.tabWidth = width
	}
}

// Parse builds a tree from outline text. A line's depth comes from its count
// of leading spaces and its cells from the tab-separated fields of the trimmed
// remainder. Parse accepts any input; odd indentation yields an odd tree, never
// an error.
func Parse(text string, opts ...Option) *Tree {
	cfg := parseConfig{headers: DefaultHeaders}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := newBuilder(newTree(cfg.headers), cfg.tabWidth)
	for _, line := range strings.Split(text, "\n") {
		b.addLine(line)
	}
	return b.tree
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader, opts ...Option) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}
	return Parse(string(data), opts...), nil
}

// builder keeps the ancestor and indentation stacks. Both always have the
// same length and start with the root at indentation 0.
type builder struct {
	tree         *Tree
	tabWidth     int
	ancestors    []NodeID
	indentLevels []int
}

func newBuilder(t *Tree, tabWidth int) *builder {
	return &builder{
		tree:         t,
		tabWidth:     tabWidth,
		ancestors:    []NodeID{RootID},
		indentLevels: []int{0},
	}
}

func (b *builder) addLine(line string) {
	indent, rest := b.indentation(line)
	content := strings.TrimSpace(rest)
	if content == "" {
		return
	}
	cells := splitCells(content)

	top := len(b.indentLevels) - 1
	if indent > b.indentLevels[top] {
		// The last child of the current parent becomes the new parent,
		// unless the current parent has no children yet.
		if last, ok := b.tree.lastChild(b.ancestors[top]); ok {
			b.ancestors = append(b.ancestors, last)
			b.indentLevels = append(b.indentLevels, indent)
		}
	} else {
		for len(b.indentLevels) > 1 && indent < b.indentLevels[len(b.indentLevels)-1] {
			b.ancestors = b.ancestors[:len(b.ancestors)-1]
			b.indentLevels = b.indentLevels[:len(b.indentLevels)-1]
		}
	}

	b.tree.appendChild(b.ancestors[len(b.ancestors)-1], cells)
}

// indentation counts leading spaces and returns the rest of the line.
func (b *builder) indentation(line string) (int, string) {
	indent := 0
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == ' ':
			indent++
		case line[i] == '\t' && b.tabWidth > 0:
			indent += b.tabWidth
		default:
			return indent, line[i:]
		}
	}
	return indent, ""
}

// splitCells splits on tabs and drops empty fields, so runs of tabs act as a
// single separator.
func splitCells(content string) []string {
	fields := strings.Split(content, "\t")
	cells := fields[:0]
	for _, f := range fields {
		if f != "" {
			cells = append(cells, f)
		}
	}
	return cells
}
