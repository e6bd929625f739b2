// Package reporting provides paginated admin views and the public offer
// queries.
package reporting

import (
	"context"

	"github.com/LukhazD/germany-const-landing/internal/auth"
	"github.com/LukhazD/germany-const-landing/internal/db"
	"github.com/LukhazD/germany-const-landing/internal/errs"
)

// OfferReader is the persistence surface for offer reporting.
type OfferReader interface {
	CountJobOffers(ctx context.Context) (int, error)
	ListJobOffersWithStats(ctx context.Context, limit, offset int) ([]db.JobOfferStats, error)
	ListActiveJobOffers(ctx context.Context) ([]db.PublicJobOffer, error)
	GetActiveJobOfferBySlug(ctx context.Context, slug string) (*db.JobOffer, error)
}

// AnalysisReader is the persistence surface for analysis reporting.
type AnalysisReader interface {
	CountProjectAnalyses(ctx context.Context) (int, error)
	ListProjectAnalyses(ctx context.Context, limit, offset int) ([]db.ProjectAnalysis, error)
}

// TokenVerifier validates admin session tokens.
type TokenVerifier interface {
	VerifyToken(tokenString string) *auth.Claims
}

// Page is a paginated result envelope.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// Service computes the admin dashboard views. Pagination runs as two
// explicit steps, a count query and a page query; the two are not a
// consistent snapshot, matching the source design.
type Service struct {
	offers   OfferReader
	analyses AnalysisReader
	tokens   TokenVerifier
}

// New creates a reporting service with the given dependencies.
func New(offers OfferReader, analyses AnalysisReader, tokens TokenVerifier) *Service {
	return &Service{
		offers:   offers,
		analyses: analyses,
		tokens:   tokens,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

func totalPages(total, limit int) int {
	return (total + limit - 1) / limit
}

// ListJobOffersWithStats returns one page of offers newest-first, each
// carrying its total and pending application counts.
func (s *Service) ListJobOffersWithStats(ctx context.Context, token string, page, limit int) (*Page[db.JobOfferStats], error) {
	if s.tokens.VerifyToken(token) == nil {
		return nil, &errs.AuthError{Message: "invalid token"}
	}
	page, limit = normalizePage(page, limit)

	total, err := s.offers.CountJobOffers(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.offers.ListJobOffersWithStats(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []db.JobOfferStats{}
	}

	return &Page[db.JobOfferStats]{
		Data:       data,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	}, nil
}

// ListProjectAnalyses returns one page of analysis requests newest-first.
func (s *Service) ListProjectAnalyses(ctx context.Context, token string, page, limit int) (*Page[db.ProjectAnalysis], error) {
	if s.tokens.VerifyToken(token) == nil {
		return nil, &errs.AuthError{Message: "invalid token"}
	}
	page, limit = normalizePage(page, limit)

	total, err := s.analyses.CountProjectAnalyses(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.analyses.ListProjectAnalyses(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []db.ProjectAnalysis{}
	}

	return &Page[db.ProjectAnalysis]{
		Data:       data,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	}, nil
}

// ListActiveJobOffers returns the public projection of active offers,
// newest-first. No authentication required.
func (s *Service) ListActiveJobOffers(ctx context.Context) ([]db.PublicJobOffer, error) {
	offers, err := s.offers.ListActiveJobOffers(ctx)
	if err != nil {
		return nil, err
	}
	if offers == nil {
		offers = []db.PublicJobOffer{}
	}
	return offers, nil
}

// GetJobOfferBySlug returns an active offer by slug for the public
// detail page.
func (s *Service) GetJobOfferBySlug(ctx context.Context, slug string) (*db.JobOffer, error) {
	offer, err := s.offers.GetActiveJobOfferBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, &errs.NotFoundError{Entity: "job offer"}
	}
	return offer, nil
}
