package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgallion1/docmath/internal/mathtransform"
)

// Worker processes a single render job.
type Worker struct {
	transformer *mathtransform.Transformer
	stats       *RenderStats
	log         *slog.Logger
}

func NewWorker(tr *mathtransform.Transformer, stats *RenderStats, log *slog.Logger) *Worker {
	return &Worker{
		transformer: tr,
		stats:       stats,
		log:         log,
	}
}

// Process parses the job's document, typesets its math and stores the
// resulting HTML on the job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "queued")
		return
	}

	start := time.Now()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	tree, err := parseDocument(job.Filename, job.Fragment, job.FileData())
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	// Phase 2: Typeset and serialize
	job.SetStatus(StatusRendering, "rendering")
	res, err := typesetTree(w.transformer, job.Filename, tree)
	if err != nil {
		log.Error("render failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "rendering")
		return
	}

	for _, m := range res.File.Messages {
		log.Warn("math diagnostic", "place", m.Place, "rule_id", m.RuleID, "error", m.Cause)
	}
	job.SetResult([]byte(res.HTML), res.Title, res.File.Entries())
	if w.stats != nil {
		w.stats.Record(time.Since(start), res.File.Len())
	}
	log.Info("render complete", "diagnostics", res.File.Len(), "bytes", len(res.HTML))

	if res.File.Len() > 0 {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}
