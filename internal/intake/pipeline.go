// Package intake implements the submission pipeline: validation,
// business invariants, CV upload coordination and persistence for job
// applications, project analysis requests and job offers.
package intake

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/LukhazD/germany-const-landing/internal/auth"
	"github.com/LukhazD/germany-const-landing/internal/db"
	"github.com/LukhazD/germany-const-landing/internal/errs"
	"github.com/LukhazD/germany-const-landing/internal/storage"
)

// OfferStore is the persistence surface the pipeline needs for offers.
type OfferStore interface {
	CreateJobOffer(ctx context.Context, params db.CreateJobOfferParams) (*db.JobOffer, error)
	GetJobOffer(ctx context.Context, id uuid.UUID) (*db.JobOffer, error)
	UpdateJobOffer(ctx context.Context, id uuid.UUID, params db.UpdateJobOfferParams) (*db.JobOffer, error)
	DeleteJobOffer(ctx context.Context, id uuid.UUID) (bool, error)
}

// ApplicationStore is the persistence surface for applications.
type ApplicationStore interface {
	CreateApplication(ctx context.Context, params db.CreateApplicationParams) (*db.Application, error)
	HasApplication(ctx context.Context, jobOfferID uuid.UUID, candidateEmail string) (bool, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) (*db.Application, error)
}

// AnalysisStore is the persistence surface for analysis requests.
type AnalysisStore interface {
	CreateProjectAnalysis(ctx context.Context, params db.CreateProjectAnalysisParams) (*db.ProjectAnalysis, error)
	DeleteProjectAnalysis(ctx context.Context, id uuid.UUID) (bool, error)
}

// ObjectStore is the object-storage surface for CV uploads.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	ObjectURL(key string) string
}

// TokenVerifier validates admin session tokens. A nil result means
// unauthorized and stops the operation before any further action.
type TokenVerifier interface {
	VerifyToken(tokenString string) *auth.Claims
}

// Pipeline coordinates validation, the gateways and persistence for
// every submission type. All operations are single-shot; there is no
// partial-commit recovery.
type Pipeline struct {
	offers   OfferStore
	apps     ApplicationStore
	analyses AnalysisStore
	objects  ObjectStore
	tokens   TokenVerifier
	validate *validator.Validate
}

// New creates a pipeline with the given dependencies.
func New(offers OfferStore, apps ApplicationStore, analyses AnalysisStore, objects ObjectStore, tokens TokenVerifier) *Pipeline {
	return &Pipeline{
		offers:   offers,
		apps:     apps,
		analyses: analyses,
		objects:  objects,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// SubmitApplication runs the public application flow: validate, check
// the offer is active, reject duplicates, upload the CV and persist.
// The upload strictly precedes the database write, so a storage failure
// leaves no application behind.
func (p *Pipeline) SubmitApplication(ctx context.Context, input ApplicationInput, jobOfferID uuid.UUID) (*db.Application, error) {
	var fields []errs.FieldError
	if err := p.validate.Struct(input); err != nil {
		fields = toFieldErrors(err)
	}
	if !input.GDPRConsent {
		fields = append(fields, errs.FieldError{Field: "gdprConsent", Message: "consent required"})
	}
	if input.CV == nil || len(input.CV.Data) == 0 {
		fields = append(fields, errs.FieldError{Field: "cv", Message: "CV required"})
	}
	if len(fields) > 0 {
		return nil, &errs.ValidationError{Fields: fields}
	}

	offer, err := p.offers.GetJobOffer(ctx, jobOfferID)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, &errs.NotFoundError{Entity: "job offer"}
	}
	if offer.Status != db.OfferStatusActive {
		return nil, &errs.ConflictError{Message: "This job offer is no longer accepting applications"}
	}

	// Pre-check only; the unique index is the safety net under
	// concurrent submissions.
	exists, err := p.apps.HasApplication(ctx, jobOfferID, input.CandidateEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &errs.ConflictError{Message: "You have already applied to this position."}
	}

	key := storage.BuildCVKey(offer.Slug, input.CV.Filename, time.Now())
	if err := p.objects.Upload(ctx, key, input.CV.Data, input.CV.ContentType); err != nil {
		return nil, err
	}

	var coverLetter *string
	if input.CoverLetter != "" {
		coverLetter = &input.CoverLetter
	}

	return p.apps.CreateApplication(ctx, db.CreateApplicationParams{
		JobOfferID:       jobOfferID,
		CandidateName:    input.CandidateName,
		CandidateEmail:   input.CandidateEmail,
		CVURL:            p.objects.ObjectURL(key),
		CoverLetter:      coverLetter,
		Incorporation:    input.Incorporation,
		HasVehicle:       input.HasVehicle,
		TrainingInterest: input.TrainingInterest,
	})
}

// SubmitProjectAnalysis validates and persists a public analysis request.
func (p *Pipeline) SubmitProjectAnalysis(ctx context.Context, input AnalysisInput) (*db.ProjectAnalysis, error) {
	if err := p.validate.Struct(input); err != nil {
		return nil, &errs.ValidationError{Fields: toFieldErrors(err)}
	}

	var details *string
	if input.AnalysisDetails != "" {
		details = &input.AnalysisDetails
	}

	return p.analyses.CreateProjectAnalysis(ctx, db.CreateProjectAnalysisParams{
		ContactEmail:      input.ContactEmail,
		ContactPhone:      input.ContactPhone,
		QueryType:         input.QueryType,
		IsNewConstruction: input.IsNewConstruction,
		ProjectTypeDetail: input.ProjectTypeDetail,
		Location:          input.Location,
		AnalysisDetails:   details,
		SqMeters:          input.SqMeters,
		PricePerSqMeter:   input.PricePerSqMeter,
	})
}
