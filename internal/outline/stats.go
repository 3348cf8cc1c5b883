package outline

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes      int `json:"nodes"`
	TopLevel   int `json:"top_level"`
	Leaves     int `json:"leaves"`
	MaxDepth   int `json:"max_depth"`
	MaxColumns int `json:"max_columns"`
}

// Stats counts the nodes below the root.
func (t *Tree) Stats() Stats {
	s := Stats{TopLevel: t.Root().ChildCount()}
	depth := map[NodeID]int{RootID: 0}
	t.Walk(func(n Node) bool {
		p, _ := n.Parent()
		d := depth[p.ID()] + 1
		depth[n.ID()] = d

		s.Nodes++
		if n.ChildCount() == 0 {
			s.Leaves++
		}
		if d > s.MaxDepth {
			s.MaxDepth = d
		}
		if c := n.ColumnCount(); c > s.MaxColumns {
			s.MaxColumns = c
		}
		return true
	})
	return s
}
