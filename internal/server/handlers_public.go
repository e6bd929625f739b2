package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/LukhazD/germany-const-landing/internal/intake"
)

// maxCVSize caps the multipart form memory for CV uploads.
const maxCVSize = 10 << 20 // 10 MiB

// LoginRequest is the admin login payload.
type LoginRequest struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

// handleLogin checks the admin credentials and sets the session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	token, err := s.authSvc.Login(req.User, req.Pass)
	if err != nil {
		s.jsonResponse(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.authSvc.TokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// handleListActiveOffers lists active offers for the public careers page.
func (s *Server) handleListActiveOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := s.reports.ListActiveJobOffers(r.Context())
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, offers)
}

// handleGetOfferBySlug retrieves one active offer by its slug.
func (s *Server) handleGetOfferBySlug(w http.ResponseWriter, r *http.Request) {
	offer, err := s.reports.GetJobOfferBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, offer)
}

// handleSubmitApplication accepts a multipart job application with a CV
// attachment and runs it through the intake pipeline.
func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCVSize); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Invalid multipart form"})
		return
	}

	jobOfferID, err := uuid.Parse(r.FormValue("jobOfferId"))
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Job Offer ID required"})
		return
	}

	input := intake.ApplicationInput{
		CandidateName:    r.FormValue("candidateName"),
		CandidateEmail:   r.FormValue("candidateEmail"),
		CoverLetter:      r.FormValue("coverLetter"),
		GDPRConsent:      r.FormValue("gdprConsent") == "on",
		Incorporation:    r.FormValue("incorporation"),
		HasVehicle:       r.FormValue("hasVehicle") == "true",
		TrainingInterest: r.FormValue("trainingInterest") == "on",
	}

	file, header, err := r.FormFile("cv")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": "Failed to read CV file"})
			return
		}
		input.CV = &intake.CVFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	app, err := s.pipeline.SubmitApplication(r.Context(), input, jobOfferID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"success":       true,
		"applicationId": app.ID,
	})
}

// handleSubmitAnalysis accepts a public project-analysis request.
func (s *Server) handleSubmitAnalysis(w http.ResponseWriter, r *http.Request) {
	input, err := parseAnalysisInput(r)
	if err != nil {
		s.jsonResponse(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	analysis, err := s.pipeline.SubmitProjectAnalysis(r.Context(), input)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"id":      analysis.ID,
	})
}

// parseAnalysisInput reads the analysis submission from either a JSON
// body or a classic form post.
func parseAnalysisInput(r *http.Request) (intake.AnalysisInput, error) {
	var input intake.AnalysisInput

	if contentTypeIsJSON(r) {
		err := json.NewDecoder(r.Body).Decode(&input)
		return input, err
	}

	if err := r.ParseForm(); err != nil {
		return input, err
	}

	input = intake.AnalysisInput{
		ContactEmail:      r.FormValue("contactEmail"),
		ContactPhone:      r.FormValue("contactPhone"),
		QueryType:         r.FormValue("queryType"),
		IsNewConstruction: r.FormValue("isNewConstruction") == "true",
		ProjectTypeDetail: r.FormValue("projectTypeDetail"),
		Location:          r.FormValue("location"),
		AnalysisDetails:   r.FormValue("analysisDetails"),
	}
	if v := r.FormValue("sqMeters"); v != "" {
		sqMeters, err := strconv.ParseFloat(v, 64)
		if err == nil {
			input.SqMeters = sqMeters
		}
	}
	if v := r.FormValue("pricePerSqMeter"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err == nil {
			input.PricePerSqMeter = &price
		}
	}
	return input, nil
}

func contentTypeIsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
