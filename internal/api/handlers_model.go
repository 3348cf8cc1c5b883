package api

import (
	"net/http"
	"strconv"

	"github.com/dgallion1/outlinetree/internal/outline"
	"github.com/dgallion1/outlinetree/internal/query"
	"github.com/dgallion1/outlinetree/internal/render"
)

// indexJSON is the wire form of a model index.
type indexJSON struct {
	Handle string   `json:"handle"`
	Valid  bool     `json:"valid"`
	Row    int      `json:"row"`
	Column int      `json:"column"`
	Flags  []string `json:"flags"`
}

func toIndexJSON(m *outline.Model, idx outline.Index) indexJSON {
	return indexJSON{
		Handle: encodeHandle(idx),
		Valid:  idx.IsValid(),
		Row:    idx.Row(),
		Column: idx.Column(),
		Flags:  flagNames(m.Flags(idx)),
	}
}

// requestModel builds the model for the request's outline and resolves the
// named handle parameter.
func requestModel(w http.ResponseWriter, r *http.Request, param string) (*outline.Model, outline.Index, bool) {
	m := outline.NewModel(outlineFrom(r).Tree)
	idx, err := decodeHandle(m, r.URL.Query().Get(param))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, outline.Index{}, false
	}
	return m, idx, true
}

func intParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	return n, err == nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	m, parent, ok := requestModel(w, r, "parent")
	if !ok {
		return
	}
	row, okRow := intParam(r, "row")
	col, okCol := intParam(r, "column")
	if !okRow {
		jsonError(w, "row is required", http.StatusBadRequest)
		return
	}
	if !okCol {
		col = 0
	}
	writeJSON(w, http.StatusOK, toIndexJSON(m, m.Index(row, col, parent)))
}

func (s *Server) handleParent(w http.ResponseWriter, r *http.Request) {
	m, idx, ok := requestModel(w, r, "handle")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toIndexJSON(m, m.Parent(idx)))
}

func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	m, parent, ok := requestModel(w, r, "parent")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"rows":    m.RowCount(parent),
		"columns": m.ColumnCount(parent),
	})
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	m, idx, ok := requestModel(w, r, "handle")
	if !ok {
		return
	}
	role, err := parseRole(r.URL.Query().Get("role"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	value, found := m.Data(idx, role)
	resp := map[string]any{"found": found}
	if found {
		resp["value"] = value
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHeaders(w http.ResponseWriter, r *http.Request) {
	m := outline.NewModel(outlineFrom(r).Tree)
	q := r.URL.Query()

	orientation, err := parseOrientation(q.Get("orientation"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	role, err := parseRole(q.Get("role"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if q.Has("section") {
		section, ok := intParam(r, "section")
		if !ok {
			jsonError(w, "invalid section", http.StatusBadRequest)
			return
		}
		value, found := m.HeaderData(section, orientation, role)
		resp := map[string]any{"found": found}
		if found {
			resp["value"] = value
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	headers := []string{}
	for col := range m.ColumnCount(outline.Index{}) {
		if label, ok := m.HeaderData(col, orientation, role); ok {
			headers = append(headers, label)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"headers": headers})
}

// childJSON is one row under a parent, with all of its cells.
type childJSON struct {
	indexJSON
	ID       outline.NodeID `json:"id"`
	Cells    []string       `json:"cells"`
	Children int            `json:"children"`
}

func (s *Server) handleChildren(w http.ResponseWriter, r *http.Request) {
	m, parent, ok := requestModel(w, r, "parent")
	if !ok {
		return
	}
	rows := m.RowCount(parent)
	children := make([]childJSON, 0, rows)
	for row := range rows {
		idx := m.Index(row, 0, parent)
		n, _ := m.NodeAt(idx)
		children = append(children, childJSON{
			indexJSON: toIndexJSON(m, idx),
			ID:        n.ID(),
			Cells:     n.Cells(),
			Children:  m.RowCount(idx),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"parent":   encodeHandle(parent),
		"children": children,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	o := outlineFrom(r)
	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts := render.Options{Title: o.Title}
	if where := r.URL.Query().Get("where"); where != "" {
		f, err := query.Compile(where)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		ids, err := query.Select(o.Tree, f)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts.Only = ids
	}

	w.Header().Set("Content-Type", format.ContentType())
	if err := render.Render(w, o.Tree, format, opts); err != nil {
		s.log.Error("render outline", "outline_id", o.ID, "format", format, "error", err)
	}
}
