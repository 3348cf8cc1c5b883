package outline

// Node is a read-only handle to one outline entry, or to the root. The zero
// Node is invalid and reports no cells, children or parent.
type Node struct {
	tree *Tree
	id   NodeID
}

func (n Node) data() *node {
	if !n.IsValid() {
		return nil
	}
	return &n.tree.nodes[n.id]
}

// IsValid reports whether n refers to a node of a tree.
func (n Node) IsValid() bool {
	return n.tree.contains(n.id)
}

// ID returns the node's arena id.
func (n Node) ID() NodeID {
	return n.id
}

// Tree returns the tree owning n.
func (n Node) Tree() *Tree {
	return n.tree
}

// IsRoot reports whether n is the synthetic root.
func (n Node) IsRoot() bool {
	return n.IsValid() && n.id == RootID
}

// Cell returns the value at column i. Rows are not padded, so columns past
// ColumnCount report false.
func (n Node) Cell(i int) (string, bool) {
	d := n.data()
	if d == nil || i < 0 || i >= len(d.cells) {
		return "", false
	}
	return d.cells[i], true
}

// Cells returns a copy of the node's row.
func (n Node) Cells() []string {
	d := n.data()
	if d == nil {
		return nil
	}
	out := make([]string, len(d.cells))
	copy(out, d.cells)
	return out
}

// ColumnCount is the number of cells in this node's row.
func (n Node) ColumnCount() int {
	d := n.data()
	if d == nil {
		return 0
	}
	return len(d.cells)
}

// ChildCount is the number of direct children.
func (n Node) ChildCount() int {
	d := n.data()
	if d == nil {
		return 0
	}
	return len(d.children)
}

// Child returns the child at row.
func (n Node) Child(row int) (Node, bool) {
	d := n.data()
	if d == nil || row < 0 || row >= len(d.children) {
		return Node{}, false
	}
	return Node{tree: n.tree, id: d.children[row]}, true
}

// Row is n's position among its parent's children. The root reports 0.
func (n Node) Row() int {
	d := n.data()
	if d == nil {
		return 0
	}
	return d.row
}

// Parent returns the owning node; the root has none.
func (n Node) Parent() (Node, bool) {
	d := n.data()
	if d == nil || d.parent == noParent {
		return Node{}, false
	}
	return Node{tree: n.tree, id: d.parent}, true
}

// Depth is the number of ancestors between n and the root: top-level entries
// are at depth 1, the root at 0.
func (n Node) Depth() int {
	depth := 0
	for p, ok := n.Parent(); ok; p, ok = p.Parent() {
		depth++
	}
	return depth
}

// Path returns the first cell of every node from the top-level ancestor down
// to n.
func (n Node) Path() []string {
	var path []string
	for cur := n; cur.IsValid() && !cur.IsRoot(); {
		title, _ := cur.Cell(0)
		path = append(path, title)
		cur, _ = cur.Parent()
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
