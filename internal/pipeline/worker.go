package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/outlinetree/internal/outline"
	"github.com/dgallion1/outlinetree/internal/source"
	"github.com/dgallion1/outlinetree/internal/store"
)

// Mirror copies stored outlines to another store.
type Mirror interface {
	Publish(ctx context.Context, id, title string, tree *outline.Tree) error
	Remove(ctx context.Context, id string) error
}

// Worker processes a single outline job.
type Worker struct {
	store   *store.Store
	mirror  Mirror // nil disables mirroring
	stats   *ParseStats
	log     *slog.Logger
	sources source.Options
	headers []string // default column headers

	backoff func(attempt int) time.Duration
}

func NewWorker(st *store.Store, mirror Mirror, stats *ParseStats, log *slog.Logger, sources source.Options, headers []string) *Worker {
	return &Worker{
		store:   st,
		mirror:  mirror,
		stats:   stats,
		log:     log,
		sources: sources,
		headers: headers,
		backoff: Backoff,
	}
}

// Process runs the load, parse, store and mirror phases for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Load
	job.SetStatus(StatusLoading, "loading")
	loader, err := source.ForFile(job.Filename, w.sources)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "loading")
		return
	}
	doc, err := loader.Load(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("load failed", "error", err)
		job.AddError(fmt.Sprintf("load: %s", err))
		job.SetStatus(StatusFailed, "loading")
		return
	}
	job.releaseFileData()

	title := job.Title
	if title == "" {
		title = doc.Title
	}
	headers := job.Headers
	if headers == nil {
		headers = doc.Headers
	}
	if headers == nil {
		headers = w.headers
	}

	// Phase 1.5: Dedup check
	hash := OutlineHash(doc.Text, headers, job.TabWidth)
	if !job.Force {
		existing, found, err := w.store.FindByHash(ctx, hash)
		if err != nil {
			log.Warn("dedup check failed, proceeding", "error", err)
		} else if found {
			log.Info("duplicate outline, skipping", "existing_outline_id", existing)
			job.SetOutline(existing, hash)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 2: Parse
	job.SetStatus(StatusParsing, "parsing")
	start := time.Now()
	tree := outline.Parse(doc.Text, outline.WithHeaders(headers...), outline.WithTabWidth(job.TabWidth))
	elapsed := time.Since(start)
	st := tree.Stats()
	if w.stats != nil {
		w.stats.Record(elapsed, st.Nodes)
	}
	job.SetParsed(strings.Count(doc.Text, "\n")+1, st.Nodes, st.MaxDepth)
	log.Info("parsed outline", "nodes", st.Nodes, "max_depth", st.MaxDepth, "duration_us", elapsed.Microseconds())

	// Phase 3: Store
	job.SetStatus(StatusStoring, "storing")
	id := NewID()
	err = w.store.Put(ctx, &store.Outline{
		Info: store.Info{
			ID:          id,
			Title:       title,
			Filename:    job.Filename,
			ContentHash: hash,
			TabWidth:    job.TabWidth,
			CreatedAt:   time.Now(),
		},
		Text: doc.Text,
		Tree: tree,
	})
	if err != nil {
		log.Error("store failed", "error", err)
		job.AddError(fmt.Sprintf("store: %s", err))
		job.SetStatus(StatusFailed, "storing")
		return
	}
	job.SetOutline(id, hash)
	log = log.With("outline_id", id)

	// Phase 4: Mirror. Failure is recorded but does not fail the job.
	if w.mirror != nil {
		job.SetStatus(StatusMirroring, "mirroring")
		err := retry(ctx, w.backoff, func() error {
			return w.mirror.Publish(ctx, id, title, tree)
		})
		if err != nil {
			log.Warn("mirror failed", "error", err)
			job.AddError(fmt.Sprintf("mirror: %s", err))
		}
	}

	job.SetStatus(StatusCompleted, "done")
	log.Info("outline stored")
}
