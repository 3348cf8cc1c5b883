package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	ltree "github.com/charmbracelet/lipgloss/tree"
	"github.com/dgallion1/outlinetree/internal/outline"
)

var (
	// rootStyle for the document label
	rootStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160"))

	// enumeratorStyle for tree branches
	enumeratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginRight(1)

	// dimStyle for trailing cells
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// headerStyle for table headers
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("160")).
			Padding(0, 1)

	// cellStyle for table cells
	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// label renders a node's title followed by its other cells.
func label(n outline.Node) string {
	cells := n.Cells()
	if len(cells) <= 1 {
		return strings.Join(cells, "")
	}
	return cells[0] + "  " + dimStyle.Render(strings.Join(cells[1:], " | "))
}

// Text draws the outline as a branch diagram.
func Text(t *outline.Tree, opts Options) string {
	title := opts.Title
	if title == "" {
		title = "."
	}
	root := ltree.Root(title).
		RootStyle(rootStyle).
		EnumeratorStyle(enumeratorStyle)
	addBranches(root, t.Root(), opts.keep(t))
	return root.String()
}

func addBranches(parent *ltree.Tree, n outline.Node, keep func(outline.Node) bool) {
	for i := 0; i < n.ChildCount(); i++ {
		c, _ := n.Child(i)
		if !keep(c) {
			continue
		}
		if c.ChildCount() == 0 {
			parent.Child(label(c))
			continue
		}
		sub := ltree.Root(label(c)).EnumeratorStyle(enumeratorStyle)
		addBranches(sub, c, keep)
		parent.Child(sub)
	}
}

// Table lays the outline out as rows under the tree's headers. The first
// column is indented by depth; rows shorter than the widest one are padded.
func Table(t *outline.Tree, opts Options) string {
	rows := Flatten(t, opts)

	headers := t.Headers()
	width := len(headers)
	for _, r := range rows {
		width = max(width, len(r.Cells))
	}
	if width == 0 {
		return ""
	}
	for len(headers) < width {
		headers = append(headers, "")
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, width)
		copy(row, r.Cells)
		row[0] = strings.Repeat("  ", r.Depth-1) + row[0]
		data = append(data, row)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return tbl.String()
}
