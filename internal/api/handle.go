package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dgallion1/outlinetree/internal/outline"
)

// A handle is an index carried over the wire as "<nodeID>.<column>". The
// empty handle is the invalid index, which addresses the root.

func encodeHandle(idx outline.Index) string {
	if !idx.IsValid() {
		return ""
	}
	return fmt.Sprintf("%d.%d", idx.NodeID(), idx.Column())
}

// decodeHandle resolves a handle against m. Handles naming nodes that do not
// exist in m, or columns out of range for them, are rejected rather than
// treated as the root.
func decodeHandle(m *outline.Model, h string) (outline.Index, error) {
	if h == "" {
		return outline.Index{}, nil
	}
	idPart, colPart, ok := strings.Cut(h, ".")
	if !ok {
		return outline.Index{}, fmt.Errorf("invalid handle %q", h)
	}
	id, err := strconv.ParseInt(idPart, 10, 32)
	if err != nil {
		return outline.Index{}, fmt.Errorf("invalid handle %q", h)
	}
	col, err := strconv.Atoi(colPart)
	if err != nil || col < 0 {
		return outline.Index{}, fmt.Errorf("invalid handle %q", h)
	}
	idx := m.IndexOf(outline.NodeID(id), col)
	if !idx.IsValid() {
		return outline.Index{}, fmt.Errorf("handle %q does not address an item", h)
	}
	return idx, nil
}

var roleNames = map[string]outline.Role{
	"display":    outline.DisplayRole,
	"decoration": outline.DecorationRole,
	"edit":       outline.EditRole,
	"tooltip":    outline.ToolTipRole,
	"statustip":  outline.StatusTipRole,
}

func parseRole(s string) (outline.Role, error) {
	if s == "" {
		return outline.DisplayRole, nil
	}
	role, ok := roleNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

func parseOrientation(s string) (outline.Orientation, error) {
	switch strings.ToLower(s) {
	case "", "horizontal":
		return outline.Horizontal, nil
	case "vertical":
		return outline.Vertical, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// flagNames lists the set flags of f.
func flagNames(f outline.ItemFlags) []string {
	names := []string{}
	if f&outline.ItemIsSelectable != 0 {
		names = append(names, "selectable")
	}
	if f&outline.ItemIsEditable != 0 {
		names = append(names, "editable")
	}
	if f&outline.ItemIsEnabled != 0 {
		names = append(names, "enabled")
	}
	return names
}
