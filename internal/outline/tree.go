// Package outline parses space-indented plain-text outlines into an immutable
// tree and exposes it through a row/column navigation model.
package outline

// NodeID addresses a node inside its Tree's arena. The root is always 0.
type NodeID int32

// RootID is the id of the synthetic root node.
const RootID NodeID = 0

// noParent marks the root's parent slot.
const noParent NodeID = -1

// DefaultHeaders are the root cells used when no headers are given.
var DefaultHeaders = []string{"Title", "Summary"}

type node struct {
	cells    []string
	parent   NodeID
	row      int
	children []NodeID
}

// Tree is an outline built once by Parse. It is never mutated afterwards, so a
// *Tree may be shared between goroutines without locking.
type Tree struct {
	nodes []node
}

func newTree(headers []string) *Tree {
	cells := make([]string, len(headers))
	copy(cells, headers)
	return &Tree{
		nodes: []node{{cells: cells, parent: noParent}},
	}
}

// appendChild adds a node with the given cells as the last child of parent.
// Only the builder calls it.
func (t *Tree) appendChild(parent NodeID, cells []string) NodeID {
	id := NodeID(len(t.nodes))
	p := &t.nodes[parent]
	t.nodes = append(t.nodes, node{
		cells:  cells,
		parent: parent,
		row:    len(p.children),
	})
	// p may be stale after the append above.
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// lastChild returns the most recently appended child of id.
func (t *Tree) lastChild(id NodeID) (NodeID, bool) {
	children := t.nodes[id].children
	if len(children) == 0 {
		return 0, false
	}
	return children[len(children)-1], true
}

// Root returns the synthetic root whose cells are the column headers.
func (t *Tree) Root() Node {
	return Node{tree: t, id: RootID}
}

// Len returns the number of nodes including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if !t.contains(id) {
		return Node{}, false
	}
	return Node{tree: t, id: id}, true
}

// Headers returns a copy of the root's cells.
func (t *Tree) Headers() []string {
	return t.Root().Cells()
}

func (t *Tree) contains(id NodeID) bool {
	return t != nil && id >= 0 && int(id) < len(t.nodes)
}

// Walk visits every node below the root in source order (depth-first,
// pre-order). Returning false from fn skips the node's descendants.
func (t *Tree) Walk(fn func(n Node) bool) {
	var walk func(id NodeID)
	walk = func(id NodeID) {
		for _, c := range t.nodes[id].children {
			if fn(Node{tree: t, id: c}) {
				walk(c)
			}
		}
	}
	walk(RootID)
}

// Nodes returns every node below the root in source order.
func (t *Tree) Nodes() []Node {
	out := make([]Node, 0, len(t.nodes)-1)
	t.Walk(func(n Node) bool {
		out = append(out, n)
		return true
	})
	return out
}
