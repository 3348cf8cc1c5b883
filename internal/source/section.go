package source

import (
	"strings"
)

// section is one entry of a structured document before it is written out as
// outline text.
type section struct {
	cells    []string
	children []*section
	summary  bool // second cell already filled from body text
}

func (s *section) add(cells ...string) *section {
	c := &section{cells: cells}
	s.children = append(s.children, c)
	return c
}

// cell collapses whitespace so that tabs and newlines in source text cannot
// split cells or lines.
func cell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// headingStack nests sections by heading level. Body text fills the summary
// cell of the heading it follows; further text becomes leaf entries.
type headingStack struct {
	root    *section
	entries []stackEntry
}

type stackEntry struct {
	node  *section
	level int
}

func newHeadingStack() *headingStack {
	root := &section{}
	// Root is level 0; all h1+ nest under it.
	return &headingStack{root: root, entries: []stackEntry{{node: root, level: 0}}}
}

func (h *headingStack) top() *section {
	return h.entries[len(h.entries)-1].node
}

func (h *headingStack) heading(level int, title string) {
	title = cell(title)
	if title == "" {
		return
	}
	for len(h.entries) > 1 && h.entries[len(h.entries)-1].level >= level {
		h.entries = h.entries[:len(h.entries)-1]
	}
	n := h.top().add(title)
	h.entries = append(h.entries, stackEntry{node: n, level: level})
}

func (h *headingStack) paragraph(text string) {
	text = cell(text)
	if text == "" {
		return
	}
	top := h.top()
	if top != h.root && !top.summary && len(top.children) == 0 {
		top.cells = append(top.cells, text)
		top.summary = true
		return
	}
	top.add(text)
}

// outlineText writes the children of root as indented outline lines.
func outlineText(root *section) string {
	var sb strings.Builder
	var write func(nodes []*section, depth int)
	write = func(nodes []*section, depth int) {
		for _, n := range nodes {
			if len(n.cells) == 0 {
				continue
			}
			sb.WriteString(strings.Repeat("  ", depth))
			sb.WriteString(strings.Join(n.cells, "\t"))
			sb.WriteString("\n")
			write(n.children, depth+1)
		}
	}
	write(root.children, 0)
	return sb.String()
}
