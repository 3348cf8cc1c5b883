package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/outlinetree/internal/outline"
	"github.com/dgallion1/outlinetree/internal/pipeline"
	"github.com/dgallion1/outlinetree/internal/source"
	"github.com/dgallion1/outlinetree/internal/store"
	"github.com/go-chi/chi/v5"
)

type ctxKey int

const outlineKey ctxKey = iota

// outlineCtx loads the {id} outline into the request context.
func (s *Server) outlineCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		o, err := s.orchestrator.Store().Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, "outline not found", http.StatusNotFound)
			return
		}
		if err != nil {
			s.log.Error("load outline", "outline_id", id, "error", err)
			jsonError(w, "failed to load outline", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), outlineKey, o)))
	})
}

func outlineFrom(r *http.Request) *store.Outline {
	o, _ := r.Context().Value(outlineKey).(*store.Outline)
	return o
}

// parseSettings are the per-upload parse options.
type parseSettings struct {
	headers  []string
	tabWidth int
	force    bool
}

// readSettings reads headers, tab_width and force from the form or query.
func (s *Server) readSettings(r *http.Request) (parseSettings, error) {
	ps := parseSettings{tabWidth: s.cfg.TabWidth}
	if v := r.FormValue("tab_width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return ps, fmt.Errorf("invalid tab_width %q", v)
		}
		ps.tabWidth = n
	}
	if v := r.FormValue("headers"); v != "" {
		ps.headers = splitList(v)
	}
	ps.force = r.FormValue("force") == "true"
	return ps, nil
}

func (ps parseSettings) apply(job *pipeline.Job) {
	job.Headers = ps.headers
	job.TabWidth = ps.tabWidth
	job.Force = ps.force
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	var (
		filename string
		data     []byte
		err      error
	)
	if isMultipart(r) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		filename = sanitizeFilename(header.Filename)
		data, err = io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
		if err != nil {
			jsonError(w, "failed to read file", http.StatusInternalServerError)
			return
		}
	} else {
		filename = sanitizeFilename(r.URL.Query().Get("filename"))
		if filepath.Ext(filename) == "" {
			filename += ".txt"
		}
		data, err = io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxUploadBytes+1))
		if err != nil {
			jsonError(w, "failed to read body", http.StatusBadRequest)
			return
		}
	}

	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	settings, err := s.readSettings(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	job := pipeline.NewJob(filename, r.FormValue("title"))
	settings.apply(job)
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, submitted(job))
}

func (s *Server) handleBatchUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*10+10*1024*1024)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}
	settings, err := s.readSettings(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	results := make([]map[string]any, 0, len(files))
	for _, fh := range files {
		filename := sanitizeFilename(fh.Filename)
		if !source.IsSupportedExtension(filename) {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)),
			})
			continue
		}

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}

		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxUploadBytes {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "file too large or read error",
			})
			continue
		}

		job := pipeline.NewJob(filename, "")
		settings.apply(job)
		job.SetFileData(data)

		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}
		results = append(results, submitted(job))
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"jobs": results})
}

func submitted(job *pipeline.Job) map[string]any {
	snap := job.Snapshot()
	return map[string]any{
		"filename": snap.Filename,
		"job_id":   snap.ID,
		"status":   snap.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s", snap.ID),
	}
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

func (s *Server) handleListOutlines(w http.ResponseWriter, r *http.Request) {
	infos, err := s.orchestrator.Store().List(r.Context())
	if err != nil {
		s.log.Error("list outlines", "error", err)
		jsonError(w, "failed to list outlines", http.StatusInternalServerError)
		return
	}
	if infos == nil {
		infos = []store.Info{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"outlines": infos})
}

func (s *Server) handleGetOutline(w http.ResponseWriter, r *http.Request) {
	o := outlineFrom(r)
	writeJSON(w, http.StatusOK, struct {
		store.Info
		Stats outline.Stats `json:"stats"`
	}{o.Info, o.Tree.Stats()})
}

func (s *Server) handleDeleteOutline(w http.ResponseWriter, r *http.Request) {
	o := outlineFrom(r)
	if err := s.orchestrator.Store().Delete(r.Context(), o.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		s.log.Error("delete outline", "outline_id", o.ID, "error", err)
		jsonError(w, "failed to delete outline", http.StatusInternalServerError)
		return
	}

	mirrorRemoved := false
	if m := s.orchestrator.Mirror(); m != nil {
		if err := m.Remove(r.Context(), o.ID); err != nil {
			s.log.Warn("mirror remove failed", "outline_id", o.ID, "error", err)
		} else {
			mirrorRemoved = true
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":        o.ID,
		"mirror_removed": mirrorRemoved,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
