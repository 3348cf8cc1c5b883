package outline

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "Chapter 1\tBasics\n  Section 1.1\tSetup\tlong\n  Section 1.2\nChapter 2\n  Section 2.1\n    Note"

func TestModel_TopLevel(t *testing.T) {
	m := NewModel(Parse(sample))

	assert.Equal(t, 2, m.RowCount(Index{}))
	assert.Equal(t, 2, m.ColumnCount(Index{}))

	first := m.Index(0, 0, Index{})
	require.True(t, first.IsValid())
	assert.Equal(t, 0, first.Row())
	assert.Equal(t, 0, first.Column())

	v, ok := m.Data(first, DisplayRole)
	require.True(t, ok)
	assert.Equal(t, "Chapter 1", v)

	summary := m.Index(0, 1, Index{})
	v, ok = m.Data(summary, DisplayRole)
	require.True(t, ok)
	assert.Equal(t, "Basics", v)
}

func TestModel_InvalidAddressing(t *testing.T) {
	m := NewModel(Parse(sample))

	tests := []struct {
		name   string
		row    int
		column int
	}{
		{"negative row", -1, 0},
		{"negative column", 0, -1},
		{"row past end", 2, 0},
		{"column past header width", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := m.Index(tt.row, tt.column, Index{})
			assert.False(t, idx.IsValid())
			assert.Equal(t, -1, idx.Row())
			assert.Equal(t, -1, idx.Column())
		})
	}
}

func TestModel_ColumnsCheckedAgainstParentRow(t *testing.T) {
	m := NewModel(Parse(sample))
	chapter2 := m.Index(1, 0, Index{})
	require.True(t, chapter2.IsValid())

	// "Chapter 2" has a single cell, so its children only expose column 0.
	assert.Equal(t, 1, m.ColumnCount(chapter2))
	assert.True(t, m.Index(0, 0, chapter2).IsValid())
	assert.False(t, m.Index(0, 1, chapter2).IsValid())

	// "Chapter 1" has two cells: column 1 is addressable below it and the
	// child's own third cell is reachable through Data.
	chapter1 := m.Index(0, 0, Index{})
	sec := m.Index(0, 1, chapter1)
	require.True(t, sec.IsValid())
	v, ok := m.Data(sec, DisplayRole)
	require.True(t, ok)
	assert.Equal(t, "Setup", v)
}

func TestModel_RowCountNonPrimaryColumn(t *testing.T) {
	m := NewModel(Parse(sample))
	c1 := m.Index(0, 1, Index{})
	require.True(t, c1.IsValid())
	assert.Equal(t, 0, m.RowCount(c1))
	assert.False(t, m.Index(0, 0, c1).IsValid())

	c0 := m.Index(0, 0, Index{})
	assert.Equal(t, 2, m.RowCount(c0))
}

func TestModel_Parent(t *testing.T) {
	m := NewModel(Parse(sample))

	top := m.Index(1, 0, Index{})
	assert.False(t, m.Parent(top).IsValid(), "top-level items have the root as owner")
	assert.False(t, m.Parent(Index{}).IsValid())

	sec := m.Index(0, 0, top)
	note := m.Index(0, 0, sec)
	require.True(t, note.IsValid())

	v, _ := m.Data(note, DisplayRole)
	assert.Equal(t, "Note", v)
	assert.Equal(t, sec, m.Parent(note))
	assert.Equal(t, top, m.Parent(sec))
}

func TestModel_ParentUsesColumnZero(t *testing.T) {
	m := NewModel(Parse(sample))
	chapter1 := m.Index(0, 0, Index{})
	sec := m.Index(1, 1, chapter1)
	require.True(t, sec.IsValid())

	p := m.Parent(sec)
	assert.Equal(t, 0, p.Column())
	assert.Equal(t, chapter1, p)
}

func TestModel_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for iter := 0; iter < 100; iter++ {
		m := NewModel(Parse(randomOutline(r, 1+r.IntN(30))))

		var visit func(p Index)
		visit = func(p Index) {
			rows, cols := m.RowCount(p), m.ColumnCount(p)
			for row := 0; row < rows; row++ {
				for col := 0; col < cols; col++ {
					idx := m.Index(row, col, p)
					require.True(t, idx.IsValid())
					require.Equal(t, p, m.Parent(idx))
					require.Equal(t, row, idx.Row())
				}
				if c := m.Index(row, 0, p); c.IsValid() {
					visit(c)
				}
			}
		}
		visit(Index{})
	}
}

func TestModel_DataRoles(t *testing.T) {
	m := NewModel(Parse(sample))
	idx := m.Index(0, 0, Index{})

	for _, role := range []Role{DecorationRole, EditRole, ToolTipRole, StatusTipRole} {
		v, ok := m.Data(idx, role)
		assert.False(t, ok)
		assert.Empty(t, v)
	}

	v, ok := m.Data(Index{}, DisplayRole)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestModel_DataPastRaggedRow(t *testing.T) {
	m := NewModel(Parse("A\tB\tC\nD"))
	// Column 2 is wider than the header row, so reach it through IndexOf.
	d := m.IndexOf(2, 2)
	require.True(t, d.IsValid())
	_, ok := m.Data(d, DisplayRole)
	assert.False(t, ok)

	a := m.IndexOf(1, 2)
	v, ok := m.Data(a, DisplayRole)
	require.True(t, ok)
	assert.Equal(t, "C", v)
}

func TestModel_HeaderData(t *testing.T) {
	m := NewModel(Parse(sample, WithHeaders("Name", "Notes")))

	v, ok := m.HeaderData(0, Horizontal, DisplayRole)
	require.True(t, ok)
	assert.Equal(t, "Name", v)
	assert.Equal(t, "Notes", m.HeaderLabel(1))
	assert.Equal(t, "", m.HeaderLabel(2))

	_, ok = m.HeaderData(0, Vertical, DisplayRole)
	assert.False(t, ok)
	_, ok = m.HeaderData(0, Horizontal, ToolTipRole)
	assert.False(t, ok)
}

func TestModel_Flags(t *testing.T) {
	m := NewModel(Parse(sample))
	idx := m.Index(0, 0, Index{})

	f := m.Flags(idx)
	assert.NotZero(t, f&ItemIsEnabled)
	assert.NotZero(t, f&ItemIsSelectable)
	assert.Zero(t, f&ItemIsEditable)
	assert.Equal(t, NoItemFlags, m.Flags(Index{}))
}

func TestModel_ForeignIndex(t *testing.T) {
	a := NewModel(Parse(sample))
	b := NewModel(Parse(sample))

	foreign := a.Index(0, 0, Index{})
	require.True(t, foreign.IsValid())

	assert.False(t, b.Index(0, 0, foreign).IsValid())
	assert.Equal(t, 0, b.RowCount(foreign))
	assert.Equal(t, 0, b.ColumnCount(foreign))
	_, ok := b.Data(foreign, DisplayRole)
	assert.False(t, ok)
	assert.False(t, b.Parent(foreign).IsValid())
	assert.Equal(t, NoItemFlags, b.Flags(foreign))
}

func TestModel_IndexOf(t *testing.T) {
	tree := Parse(sample)
	m := NewModel(tree)

	for _, n := range tree.Nodes() {
		idx := m.IndexOf(n.ID(), 0)
		require.True(t, idx.IsValid())
		assert.Equal(t, n.Row(), idx.Row())
		got, ok := m.NodeAt(idx)
		require.True(t, ok)
		assert.Equal(t, n.ID(), got.ID())
	}

	assert.False(t, m.IndexOf(RootID, 0).IsValid())
	assert.False(t, m.IndexOf(NodeID(tree.Len()), 0).IsValid())
	assert.False(t, m.IndexOf(-3, 0).IsValid())
	assert.False(t, m.IndexOf(1, -1).IsValid())
}

func TestModel_IndexOfColumnRange(t *testing.T) {
	m := NewModel(Parse(sample))

	tests := []struct {
		name   string
		id     NodeID
		column int
		valid  bool
	}{
		{"own row wider than parent", 2, 2, true},
		{"past own and parent row", 2, 3, false},
		{"far out of range", 2, 99, false},
		{"within parent row only", 3, 1, true},
		{"past parent row", 3, 2, false},
		{"top level within header row", 4, 1, true},
		{"top level past header row", 4, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := m.IndexOf(tt.id, tt.column)
			assert.Equal(t, tt.valid, idx.IsValid())
			if !tt.valid {
				assert.Equal(t, NoItemFlags, m.Flags(idx))
				assert.False(t, m.Parent(idx).IsValid())
			}
		})
	}
}

func TestModel_EmptyTree(t *testing.T) {
	m := NewModel(Parse(""))
	assert.Equal(t, 0, m.RowCount(Index{}))
	assert.Equal(t, 2, m.ColumnCount(Index{}))
	assert.False(t, m.Index(0, 0, Index{}).IsValid())
}
