package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docmath/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// handleJobResult serves the rendered HTML of a finished job.
func (s *Server) handleJobResult(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	switch snap.Status {
	case pipeline.StatusCompleted, pipeline.StatusPartial:
	case pipeline.StatusFailed:
		jsonError(w, "job failed", http.StatusUnprocessableEntity)
		return
	default:
		jsonError(w, "job not finished: "+string(snap.Status), http.StatusConflict)
		return
	}

	out, _ := job.Result()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}
