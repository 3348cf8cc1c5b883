package render

import (
	"strings"

	"github.com/dgallion1/outlinetree/internal/outline"
)

// Row is one node with its structural context.
type Row struct {
	ID         outline.NodeID `json:"id"`
	Depth      int            `json:"depth"`
	Breadcrumb []string       `json:"breadcrumb"` // first cells from the top-level ancestor down to this node
	Cells      []string       `json:"cells"`
}

// Flatten lists the visible nodes in source order.
func Flatten(t *outline.Tree, opts Options) []Row {
	keep := opts.keep(t)
	var rows []Row
	walkRows(t.Root(), nil, keep, &rows)
	return rows
}

// walkRows recursively visits children, carrying the breadcrumb down.
func walkRows(n outline.Node, breadcrumb []string, keep func(outline.Node) bool, rows *[]Row) {
	for i := 0; i < n.ChildCount(); i++ {
		c, _ := n.Child(i)
		if !keep(c) {
			continue
		}
		title, _ := c.Cell(0)
		bc := make([]string, 0, len(breadcrumb)+1)
		bc = append(bc, breadcrumb...)
		bc = append(bc, title)

		*rows = append(*rows, Row{
			ID:         c.ID(),
			Depth:      len(bc),
			Breadcrumb: bc,
			Cells:      c.Cells(),
		})
		walkRows(c, bc, keep, rows)
	}
}

// Paths renders one line per node: the " > " joined breadcrumb followed by
// the node's remaining cells, tab separated.
func Paths(t *outline.Tree, opts Options) string {
	var sb strings.Builder
	for _, r := range Flatten(t, opts) {
		sb.WriteString(strings.Join(r.Breadcrumb, " > "))
		for _, c := range r.Cells[1:] {
			sb.WriteString("\t")
			sb.WriteString(c)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
