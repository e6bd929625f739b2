package intake

import (
	"context"

	"github.com/google/uuid"

	"github.com/LukhazD/germany-const-landing/internal/db"
	"github.com/LukhazD/germany-const-landing/internal/errs"
)

// verifyAdmin checks the session token; every admin mutation calls it
// first and performs no further action on failure.
func (p *Pipeline) verifyAdmin(token string) error {
	if p.tokens.VerifyToken(token) == nil {
		return &errs.AuthError{Message: "invalid token"}
	}
	return nil
}

// CreateJobOffer validates the payload, derives a unique slug from the
// title and persists the offer. Status defaults to draft.
func (p *Pipeline) CreateJobOffer(ctx context.Context, input JobOfferInput, token string) (*db.JobOffer, error) {
	if err := p.verifyAdmin(token); err != nil {
		return nil, err
	}
	if err := p.validate.Struct(input); err != nil {
		return nil, &errs.ValidationError{Fields: toFieldErrors(err)}
	}

	status := input.Status
	if status == "" {
		status = db.OfferStatusDraft
	}
	requirements := input.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	return p.offers.CreateJobOffer(ctx, db.CreateJobOfferParams{
		Title:        input.Title,
		Description:  input.Description,
		Requirements: requirements,
		Location:     input.Location,
		SalaryMin:    input.SalaryMin,
		SalaryMax:    input.SalaryMax,
		Status:       status,
		Vacancies:    input.Vacancies,
		Slug:         GenerateSlug(input.Title),
	})
}

// UpdateJobOffer applies a validated partial patch to an offer.
func (p *Pipeline) UpdateJobOffer(ctx context.Context, id uuid.UUID, patch JobOfferPatch, token string) (*db.JobOffer, error) {
	if err := p.verifyAdmin(token); err != nil {
		return nil, err
	}
	if err := p.validate.Struct(patch); err != nil {
		return nil, &errs.ValidationError{Fields: toFieldErrors(err)}
	}

	offer, err := p.offers.UpdateJobOffer(ctx, id, db.UpdateJobOfferParams{
		Title:        patch.Title,
		Description:  patch.Description,
		Requirements: patch.Requirements,
		Location:     patch.Location,
		SalaryMin:    patch.SalaryMin,
		SalaryMax:    patch.SalaryMax,
		Status:       patch.Status,
		Vacancies:    patch.Vacancies,
	})
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, &errs.NotFoundError{Entity: "job offer"}
	}
	return offer, nil
}

// DeleteJobOffer hard-deletes an offer. Its applications are left in
// place and remain queryable.
func (p *Pipeline) DeleteJobOffer(ctx context.Context, id uuid.UUID, token string) error {
	if err := p.verifyAdmin(token); err != nil {
		return err
	}
	deleted, err := p.offers.DeleteJobOffer(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &errs.NotFoundError{Entity: "job offer"}
	}
	return nil
}

// validApplicationStatuses are the review statuses an admin may set.
var validApplicationStatuses = map[string]bool{
	db.ApplicationStatusPending:  true,
	db.ApplicationStatusReviewed: true,
	db.ApplicationStatusRejected: true,
	db.ApplicationStatusHired:    true,
}

// UpdateApplicationStatus sets the review status of an application.
func (p *Pipeline) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, token string) (*db.Application, error) {
	if err := p.verifyAdmin(token); err != nil {
		return nil, err
	}
	if !validApplicationStatuses[status] {
		return nil, errs.NewValidationError("status", "must be one of pending, reviewed, rejected, hired")
	}

	app, err := p.apps.UpdateApplicationStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, &errs.NotFoundError{Entity: "application"}
	}
	return app, nil
}

// DeleteProjectAnalysis hard-deletes an analysis request.
func (p *Pipeline) DeleteProjectAnalysis(ctx context.Context, id uuid.UUID, token string) error {
	if err := p.verifyAdmin(token); err != nil {
		return err
	}
	deleted, err := p.analyses.DeleteProjectAnalysis(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &errs.NotFoundError{Entity: "analysis"}
	}
	return nil
}
