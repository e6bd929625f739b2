package db

import (
	"time"

	"github.com/google/uuid"
)

// Job offer lifecycle statuses.
const (
	OfferStatusDraft  = "draft"
	OfferStatusActive = "active"
	OfferStatusClosed = "closed"
)

// Application review statuses.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusRejected = "rejected"
	ApplicationStatusHired    = "hired"
)

// Project analysis statuses.
const (
	AnalysisStatusPending   = "pending"
	AnalysisStatusReviewed  = "reviewed"
	AnalysisStatusContacted = "contacted"
)

// JobOffer represents a postable vacancy.
type JobOffer struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Location     *string   `json:"location,omitempty"`
	SalaryMin    *float64  `json:"salaryMin,omitempty"`
	SalaryMax    *float64  `json:"salaryMax,omitempty"`
	Status       string    `json:"status"`
	Vacancies    *int32    `json:"vacancies,omitempty"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicJobOffer is the projection of an offer exposed to unauthenticated
// callers. Internal audit fields (status, updatedAt) are excluded.
type PublicJobOffer struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Location     *string   `json:"location,omitempty"`
	SalaryMin    *float64  `json:"salaryMin,omitempty"`
	SalaryMax    *float64  `json:"salaryMax,omitempty"`
	Vacancies    *int32    `json:"vacancies,omitempty"`
	Slug         string    `json:"slug"`
	CreatedAt    time.Time `json:"createdAt"`
}

// JobOfferStats is an offer row enriched with application counts for the
// admin dashboard.
type JobOfferStats struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	TotalApplications int       `json:"totalApplications"`
	PendingReview     int       `json:"pendingReview"`
}

// Application represents a candidate submission against one job offer.
type Application struct {
	ID               uuid.UUID `json:"id"`
	JobOfferID       uuid.UUID `json:"jobOfferId"`
	CandidateName    string    `json:"candidateName"`
	CandidateEmail   string    `json:"candidateEmail"`
	CVURL            string    `json:"cvUrl"`
	CoverLetter      *string   `json:"coverLetter,omitempty"`
	Status           string    `json:"status"`
	SubmittedAt      time.Time `json:"submittedAt"`
	GDPRConsent      bool      `json:"gdprConsent"`
	GDPRConsentDate  time.Time `json:"gdprConsentDate"`
	Incorporation    string    `json:"incorporation"`
	HasVehicle       bool      `json:"hasVehicle"`
	TrainingInterest bool      `json:"trainingInterest"`
}

// ProjectAnalysis represents a lead-capture feasibility inquiry.
type ProjectAnalysis struct {
	ID                uuid.UUID `json:"id"`
	ContactEmail      string    `json:"contactEmail"`
	ContactPhone      string    `json:"contactPhone"`
	QueryType         string    `json:"queryType"`
	IsNewConstruction bool      `json:"isNewConstruction"`
	ProjectTypeDetail string    `json:"projectTypeDetail"`
	Location          string    `json:"location"`
	AnalysisDetails   *string   `json:"analysisDetails,omitempty"`
	SqMeters          float64   `json:"sqMeters"`
	PricePerSqMeter   *float64  `json:"pricePerSqMeter,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}
