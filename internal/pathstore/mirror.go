package pathstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/dgallion1/outlinetree/internal/outline"
)

// DefaultPrefix is the key prefix outlines are mirrored under.
const DefaultPrefix = "outlines"

// Mirror publishes parsed outlines to pathstore.
type Mirror struct {
	client *Client
	prefix string
}

func NewMirror(client *Client, prefix string) *Mirror {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Mirror{client: client, prefix: prefix}
}

// Key returns the pathstore key for an outline id.
func (m *Mirror) Key(id string) string {
	return m.prefix + "/" + id
}

// Publish writes the outline's metadata to {prefix}/{id}/meta and each node
// to {prefix}/{id}/nodes/{nodeID}. It stops at the first failed write.
func (m *Mirror) Publish(ctx context.Context, id, title string, tree *outline.Tree) error {
	source := "outlinetree:" + id
	err := m.client.PutNode(ctx, m.Key(id)+"/meta", NodeRequest{
		Value: map[string]any{
			"title":   title,
			"headers": tree.Headers(),
			"stats":   tree.Stats(),
		},
		MemoryType: "metacognitive",
		Salience:   0.5,
		Source:     source,
	})
	if err != nil {
		return fmt.Errorf("publish outline %s: %w", id, err)
	}

	for _, n := range tree.Nodes() {
		parent, _ := n.Parent()
		err := m.client.PutNode(ctx, fmt.Sprintf("%s/nodes/%d", m.Key(id), n.ID()), NodeRequest{
			Value: map[string]any{
				"cells":  n.Cells(),
				"parent": parent.ID(),
				"row":    n.Row(),
				"depth":  n.Depth(),
				"path":   n.Path(),
			},
			MemoryType: "semantic",
			Salience:   0.1,
			Source:     source,
		})
		if err != nil {
			return fmt.Errorf("publish outline %s node %d: %w", id, n.ID(), err)
		}
	}
	return nil
}

// Remove deletes a mirrored outline. Missing keys are not an error.
func (m *Mirror) Remove(ctx context.Context, id string) error {
	if err := m.client.DeleteNode(ctx, m.Key(id), true); err != nil {
		return fmt.Errorf("remove outline %s: %w", id, err)
	}
	return nil
}
