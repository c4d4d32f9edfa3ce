package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/divyansh1099/AI-jobs/internal/types"
)

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatus returns the live pipeline counters.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.pipeline.Stats())
}

// handleStart launches the automation loop. Starting an already running
// pipeline is a no-op.
func (s *Server) handleStart(w http.ResponseWriter, _ *http.Request) {
	// The loop outlives this request.
	s.pipeline.Start(context.Background())
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "automation started"})
}

// handleStop stops the automation loop, waiting for any in-flight
// submission to finish.
func (s *Server) handleStop(w http.ResponseWriter, _ *http.Request) {
	s.pipeline.Stop()
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "automation stopped"})
}

// handleListJobs returns all tracked jobs, preferring the persistent
// store when one is configured.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.jsonResponse(w, http.StatusOK, s.queue.SnapshotAll())
		return
	}

	jobs, err := s.store.ListJobs(r.Context())
	if err != nil {
		s.logger.Error("listing jobs failed", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleCreateJob validates and enqueues a manually submitted job.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var data types.JobCreate
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := s.validate.Struct(data); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			verr := &ErrValidation{Field: verrs[0].Field(), Message: verrs[0].Tag()}
			s.errorResponse(w, HTTPStatus(verr), verr.Error())
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "validation failed")
		return
	}

	// Best effort: fill in a missing description from the posting page.
	if data.Description == "" && s.ingestor != nil {
		if posting, err := s.ingestor.Ingest(r.Context(), data.URL); err != nil {
			s.logger.Warn("posting enrichment failed", "url", data.URL, "error", err)
		} else {
			data.Description = posting.Description
		}
	}

	job := s.queue.EnqueueJob(data)
	if s.store != nil {
		if err := s.store.AddJob(r.Context(), job); err != nil {
			s.logger.Error("persisting job failed", "job_id", job.ID, "error", err)
			s.queue.RemoveByID(job.ID)
			s.errorResponse(w, http.StatusInternalServerError, "failed to persist job")
			return
		}
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleDeleteJob removes a job from the queue and the store.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if s.store != nil {
		job, err := s.store.GetJob(r.Context(), id)
		if err != nil {
			s.logger.Error("job lookup failed", "job_id", id, "error", err)
			s.errorResponse(w, http.StatusInternalServerError, "failed to look up job")
			return
		}
		if job == nil {
			nf := &ErrJobNotFound{ID: id}
			s.errorResponse(w, HTTPStatus(nf), nf.Error())
			return
		}
		if err := s.store.DeleteJob(r.Context(), id); err != nil {
			s.logger.Error("deleting job failed", "job_id", id, "error", err)
			s.errorResponse(w, http.StatusInternalServerError, "failed to delete job")
			return
		}
	}

	s.queue.RemoveByID(id)
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "job deleted", "id": id})
}

// scrapeRequest is the optional body for a scrape trigger.
type scrapeRequest struct {
	SearchTerms []string `json:"search_terms"`
	Locations   []string `json:"locations"`
}

// handleScrape runs a discovery pass and reports the accepted postings.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	jobs, err := s.scraper.Scrape(r.Context(), req.SearchTerms, req.Locations)
	if err != nil {
		s.logger.Error("scrape failed", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "scrape failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs_found": len(jobs),
		"jobs":       jobs,
	})
}

// handleStats returns application counts by status. Without a store the
// counts are derived from the in-memory queue.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		depth := s.queue.Len()
		s.jsonResponse(w, http.StatusOK, &types.ApplicationStats{Total: depth, Pending: depth})
		return
	}

	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.logger.Error("stats query failed", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}
