package outline

// Role selects which value of an item a consumer asks for. Only DisplayRole
// carries data.
type Role int

const (
	DisplayRole Role = iota
	DecorationRole
	EditRole
	ToolTipRole
	StatusTipRole
)

// Orientation distinguishes column headers from row headers.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// ItemFlags describe how a view may interact with an item.
type ItemFlags uint

const (
	ItemIsSelectable ItemFlags = 1 << iota
	ItemIsEditable
	ItemIsEnabled

	NoItemFlags ItemFlags = 0
)

// Index addresses one cell of the model: a node, and a column of that node's
// row. The zero Index is invalid and stands for the root when passed as a
// parent.
type Index struct {
	tree   *Tree
	id     NodeID
	row    int
	column int
}

// IsValid reports whether idx addresses an item.
func (idx Index) IsValid() bool {
	return idx.tree != nil
}

// Row is the addressed node's position within its parent, or -1.
func (idx Index) Row() int {
	if !idx.IsValid() {
		return -1
	}
	return idx.row
}

// Column is the addressed column, or -1.
func (idx Index) Column() int {
	if !idx.IsValid() {
		return -1
	}
	return idx.column
}

// NodeID returns the id of the addressed node. It is meaningless for an
// invalid index.
func (idx Index) NodeID() NodeID {
	return idx.id
}

// Model exposes a Tree through stateless (row, column, parent) addressing, the
// shape hierarchical views consume. It holds no mutable state.
type Model struct {
	tree *Tree
}

// NewModel wraps t.
func NewModel(t *Tree) *Model {
	return &Model{tree: t}
}

// Tree returns the wrapped tree.
func (m *Model) Tree() *Tree {
	return m.tree
}

func (m *Model) createIndex(row, column int, id NodeID) Index {
	return Index{tree: m.tree, id: id, row: row, column: column}
}

// nodeOf resolves idx to a node. Invalid indexes resolve to the root; indexes
// from another tree or with a stale id do not resolve.
func (m *Model) nodeOf(idx Index) (Node, bool) {
	if !idx.IsValid() {
		return m.tree.Root(), true
	}
	if idx.tree != m.tree || idx.id == RootID {
		return Node{}, false
	}
	return m.tree.Node(idx.id)
}

// HasIndex reports whether row and column are in range under parent.
func (m *Model) HasIndex(row, column int, parent Index) bool {
	if row < 0 || column < 0 {
		return false
	}
	return row < m.RowCount(parent) && column < m.ColumnCount(parent)
}

// Index returns the item at row and column under parent, or an invalid Index.
func (m *Model) Index(row, column int, parent Index) Index {
	if !m.HasIndex(row, column, parent) {
		return Index{}
	}
	p, ok := m.nodeOf(parent)
	if !ok {
		return Index{}
	}
	child, ok := p.Child(row)
	if !ok {
		return Index{}
	}
	return m.createIndex(row, column, child.ID())
}

// IndexOf rebuilds the index of node id at column, for handles that were
// carried outside the process as plain ids. The root, unknown ids and columns
// outside both the node's own row and its parent's row yield an invalid Index.
func (m *Model) IndexOf(id NodeID, column int) Index {
	n, ok := m.tree.Node(id)
	if !ok || n.IsRoot() || column < 0 {
		return Index{}
	}
	p, _ := n.Parent()
	if column >= max(n.ColumnCount(), p.ColumnCount()) {
		return Index{}
	}
	return m.createIndex(n.Row(), column, id)
}

// Parent returns the index of idx's owner, or an invalid Index when the owner
// is the root.
func (m *Model) Parent(idx Index) Index {
	if !idx.IsValid() {
		return Index{}
	}
	n, ok := m.nodeOf(idx)
	if !ok {
		return Index{}
	}
	p, ok := n.Parent()
	if !ok || p.IsRoot() {
		return Index{}
	}
	return m.createIndex(p.Row(), 0, p.ID())
}

// RowCount is the number of children under parent. Only the first column has
// children, so a parent with a non-zero column reports 0.
func (m *Model) RowCount(parent Index) int {
	if parent.Column() > 0 {
		return 0
	}
	n, ok := m.nodeOf(parent)
	if !ok {
		return 0
	}
	return n.ChildCount()
}

// ColumnCount is the width of parent's own row, or of the header row when
// parent is invalid.
func (m *Model) ColumnCount(parent Index) int {
	n, ok := m.nodeOf(parent)
	if !ok {
		return 0
	}
	return n.ColumnCount()
}

// Data returns the addressed cell for DisplayRole.
func (m *Model) Data(idx Index, role Role) (string, bool) {
	if !idx.IsValid() || role != DisplayRole {
		return "", false
	}
	n, ok := m.nodeOf(idx)
	if !ok {
		return "", false
	}
	return n.Cell(idx.column)
}

// HeaderData returns the header label of a column.
func (m *Model) HeaderData(section int, orientation Orientation, role Role) (string, bool) {
	if orientation != Horizontal || role != DisplayRole {
		return "", false
	}
	return m.tree.Root().Cell(section)
}

// HeaderLabel is HeaderData for horizontal display headers.
func (m *Model) HeaderLabel(column int) string {
	label, _ := m.HeaderData(column, Horizontal, DisplayRole)
	return label
}

// Flags reports valid items as enabled and selectable. Items are never
// editable.
func (m *Model) Flags(idx Index) ItemFlags {
	if _, ok := m.NodeAt(idx); !ok {
		return NoItemFlags
	}
	return ItemIsEnabled | ItemIsSelectable
}

// NodeAt returns the node addressed by idx.
func (m *Model) NodeAt(idx Index) (Node, bool) {
	if !idx.IsValid() {
		return Node{}, false
	}
	return m.nodeOf(idx)
}
