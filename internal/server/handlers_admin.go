package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/google/uuid"

	"github.com/LukhazD/germany-const-landing/internal/intake"
)

// parseQueryInt parses an integer query parameter with default and max values.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 1 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// handleListOffersWithStats returns the paginated dashboard view of
// offers with their application counts.
func (s *Server) handleListOffersWithStats(w http.ResponseWriter, r *http.Request) {
	page := parseQueryInt(r, "page", 1, 0)
	limit := parseQueryInt(r, "limit", 10, 100)

	result, err := s.reports.ListJobOffersWithStats(r.Context(), adminToken(r), page, limit)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleCreateOffer creates a new job offer.
func (s *Server) handleCreateOffer(w http.ResponseWriter, r *http.Request) {
	var input intake.JobOfferInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	offer, err := s.pipeline.CreateJobOffer(r.Context(), input, adminToken(r))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, offer)
}

// handleUpdateOffer applies a partial update to a job offer.
func (s *Server) handleUpdateOffer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid job offer ID"})
		return
	}

	var patch intake.JobOfferPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	offer, err := s.pipeline.UpdateJobOffer(r.Context(), id, patch, adminToken(r))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, offer)
}

// handleDeleteOffer hard-deletes a job offer.
func (s *Server) handleDeleteOffer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid job offer ID"})
		return
	}

	if err := s.pipeline.DeleteJobOffer(r.Context(), id, adminToken(r)); err != nil {
		s.errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListAnalyses returns the paginated list of analysis requests.
func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	page := parseQueryInt(r, "page", 1, 0)
	limit := parseQueryInt(r, "limit", 20, 100)

	result, err := s.reports.ListProjectAnalyses(r.Context(), adminToken(r), page, limit)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleDeleteAnalysis hard-deletes an analysis request.
func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid analysis ID"})
		return
	}

	if err := s.pipeline.DeleteProjectAnalysis(r.Context(), id, adminToken(r)); err != nil {
		s.errorResponse(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateApplicationStatusRequest is the admin payload for a review
// status change.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

// handleUpdateApplicationStatus sets the review status of an application.
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid application ID"})
		return
	}

	var req UpdateApplicationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	app, err := s.pipeline.UpdateApplicationStatus(r.Context(), id, req.Status, adminToken(r))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":     true,
		"application": app,
	})
}

// handleDownloadCV resolves a stored CV reference back to its object key
// and streams the bytes inline.
func (s *Server) handleDownloadCV(w http.ResponseWriter, r *http.Request) {
	if s.authSvc.VerifyToken(adminToken(r)) == nil {
		s.jsonResponse(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	ref := r.URL.Query().Get("url")
	if ref == "" {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Missing URL param"})
		return
	}

	key := s.cvs.ResolveObjectURL(ref)
	body, contentType, err := s.cvs.Download(r.Context(), key)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", path.Base(key)))
	if _, err := io.Copy(w, body); err != nil {
		// Headers already sent; nothing left to report to the client.
		return
	}
}
