package outline

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shape renders every node as "<depth>:<cells joined by |>" in source order.
func shape(t *Tree) []string {
	var out []string
	t.Walk(func(n Node) bool {
		out = append(out, fmt.Sprintf("%d:%s", n.Depth(), strings.Join(n.Cells(), "|")))
		return true
	})
	return out
}

func titles(n Node) []string {
	var out []string
	for i := 0; i < n.ChildCount(); i++ {
		c, _ := n.Child(i)
		title, _ := c.Cell(0)
		out = append(out, title)
	}
	return out
}

func child(t *testing.T, n Node, row int) Node {
	t.Helper()
	c, ok := n.Child(row)
	require.True(t, ok, "child %d of %v", row, n.Cells())
	return c
}

func TestParse_Examples(t *testing.T) {
	t.Run("nested by spaces", func(t *testing.T) {
		tree := Parse("A\n  B\n    C\n  D")
		root := tree.Root()
		assert.Equal(t, []string{"A"}, titles(root))
		a := child(t, root, 0)
		assert.Equal(t, []string{"B", "D"}, titles(a))
		assert.Equal(t, []string{"C"}, titles(child(t, a, 0)))
		assert.Equal(t, 0, child(t, a, 1).ChildCount())
	})

	t.Run("blank lines ignored", func(t *testing.T) {
		tree := Parse("\n  \nA")
		assert.Equal(t, []string{"A"}, titles(tree.Root()))
	})

	t.Run("tab separated columns", func(t *testing.T) {
		tree := Parse("A\tcol2\tcol3")
		a := child(t, tree.Root(), 0)
		assert.Equal(t, []string{"A", "col2", "col3"}, a.Cells())
		assert.Equal(t, 3, a.ColumnCount())
	})

	t.Run("empty input", func(t *testing.T) {
		tree := Parse("")
		assert.Equal(t, 0, tree.Root().ChildCount())
		assert.Equal(t, 1, tree.Len())
	})
}

func TestParse_TabsAreNotIndentation(t *testing.T) {
	tree := Parse("A\n\tX\n\tY\nB")
	assert.Equal(t, []string{"A", "X", "Y", "B"}, titles(tree.Root()))
}

func TestParse_WithTabWidth(t *testing.T) {
	tree := Parse("A\n\tX\n\tY\nB", WithTabWidth(4))
	root := tree.Root()
	require.Equal(t, []string{"A", "B"}, titles(root))
	assert.Equal(t, []string{"X", "Y"}, titles(child(t, root, 0)))
	assert.Equal(t, 0, child(t, root, 1).ChildCount())
}

func TestParse_TabWidthMixedWithSpaces(t *testing.T) {
	// One tab at width 2 equals two spaces.
	tree := Parse("A\n\tB\n  C", WithTabWidth(2))
	a := child(t, tree.Root(), 0)
	assert.Equal(t, []string{"B", "C"}, titles(a))
}

func TestParse_DeeperLineWithoutSiblingAttachesToParent(t *testing.T) {
	tree := Parse("    A\nB")
	assert.Equal(t, []string{"A", "B"}, titles(tree.Root()))

	// The first line pushed no frame, so a following deeper line nests
	// under it.
	tree = Parse("  A\n    B")
	root := tree.Root()
	require.Equal(t, []string{"A"}, titles(root))
	assert.Equal(t, []string{"B"}, titles(child(t, root, 0)))
}

func TestParse_RaggedIndentation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "dedent to unseen level pops past it",
			input: "A\n    B\n  C",
			want:  []string{"1:A", "2:B", "1:C"},
		},
		{
			name:  "any larger indent descends one level",
			input: "A\n B\n          C\n  D",
			want:  []string{"1:A", "2:B", "3:C", "2:D"},
		},
		{
			name:  "siblings at equal indent",
			input: "A\n   B\n   C\n   D",
			want:  []string{"1:A", "2:B", "2:C", "2:D"},
		},
		{
			name:  "return to top level",
			input: "A\n  B\n    C\nD\n  E",
			want:  []string{"1:A", "2:B", "3:C", "1:D", "2:E"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shape(Parse(tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("shape mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Cells(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"consecutive tabs collapse", "A\t\t\tB", []string{"A", "B"}},
		{"trailing tab trimmed", "A\tB\t", []string{"A", "B"}},
		{"inner whitespace kept", "A\t \tB", []string{"A", " ", "B"}},
		{"spaces inside a cell", "Big title\tsome summary", []string{"Big title", "some summary"}},
		{"crlf line ending", "A\tB\r", []string{"A", "B"}},
		{"unicode", "見出し\t概要", []string{"見出し", "概要"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := child(t, Parse(tt.input).Root(), 0)
			assert.Equal(t, tt.want, n.Cells())
		})
	}
}

func TestParse_CRLF(t *testing.T) {
	lf := Parse("A\n  B\n\n  C\nD")
	crlf := Parse("A\r\n  B\r\n\r\n  C\r\nD\r\n")
	if diff := cmp.Diff(shape(lf), shape(crlf)); diff != "" {
		t.Errorf("crlf changed the tree (-lf +crlf):\n%s", diff)
	}
}

func TestParse_Headers(t *testing.T) {
	tree := Parse("A")
	assert.Equal(t, []string{"Title", "Summary"}, tree.Headers())

	tree = Parse("A", WithHeaders("Name", "Owner", "Due"))
	assert.Equal(t, []string{"Name", "Owner", "Due"}, tree.Headers())
}

func TestParse_Idempotent(t *testing.T) {
	input := "Getting Started\tIntro\n  Install\n    Linux\n    macOS\n  Configure\nReference\n  API\tendpoints"
	a, b := Parse(input), Parse(input)
	if diff := cmp.Diff(shape(a), shape(b)); diff != "" {
		t.Errorf("parses differ (-first +second):\n%s", diff)
	}
}

func TestParse_BlankLineInvariance(t *testing.T) {
	lines := []string{"A", "  B", "    C", "  D", "E", "      F", "G\tg2"}
	want := shape(Parse(strings.Join(lines, "\n")))

	blanks := []string{"", "   ", "\t", " \t ", "\r"}
	for pos := 0; pos <= len(lines); pos++ {
		for _, blank := range blanks {
			with := append(append(append([]string{}, lines[:pos]...), blank), lines[pos:]...)
			got := shape(Parse(strings.Join(with, "\n")))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("blank %q at %d changed the tree (-want +got):\n%s", blank, pos, diff)
			}
		}
	}
}

func TestParseReader(t *testing.T) {
	tree, err := ParseReader(strings.NewReader("A\n  B"), WithHeaders("Only"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Only"}, tree.Headers())
	assert.Equal(t, []string{"1:A", "2:B"}, shape(tree))
}

func randomOutline(r *rand.Rand, lines int) string {
	var sb strings.Builder
	for i := 0; i < lines; i++ {
		sb.WriteString(strings.Repeat(" ", r.IntN(9)))
		switch r.IntN(6) {
		case 0:
			// blank
		case 1:
			sb.WriteString("\t")
			fallthrough
		default:
			fmt.Fprintf(&sb, "n%d", i)
			for c := r.IntN(3); c > 0; c-- {
				sb.WriteString(strings.Repeat("\t", 1+r.IntN(2)))
				fmt.Fprintf(&sb, "c%d", c)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestParse_RowInParentMatchesPosition(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for iter := 0; iter < 200; iter++ {
		tree := Parse(randomOutline(r, 1+r.IntN(40)))

		var check func(n Node)
		check = func(n Node) {
			for row := 0; row < n.ChildCount(); row++ {
				c := child(t, n, row)
				require.Equal(t, row, c.Row())
				p, ok := c.Parent()
				require.True(t, ok)
				require.Equal(t, n.ID(), p.ID())
				check(c)
			}
		}
		check(tree.Root())
		require.Equal(t, tree.Len()-1, len(tree.Nodes()))
	}
}
