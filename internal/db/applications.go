package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/LukhazD/germany-const-landing/internal/errs"
)

// CreateApplicationParams holds the validated fields for a new application.
type CreateApplicationParams struct {
	JobOfferID       uuid.UUID
	CandidateName    string
	CandidateEmail   string
	CVURL            string
	CoverLetter      *string
	Incorporation    string
	HasVehicle       bool
	TrainingInterest bool
}

// CreateApplication inserts a new application with status pending and the
// consent date set to now. A unique-index violation on
// (job_offer_id, candidate_email) surfaces as a ConflictError; the index
// is the authoritative guard against concurrent duplicate submissions.
func (d *DB) CreateApplication(ctx context.Context, params CreateApplicationParams) (*Application, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}

	app := Application{
		JobOfferID:       params.JobOfferID,
		CandidateName:    params.CandidateName,
		CandidateEmail:   params.CandidateEmail,
		CVURL:            params.CVURL,
		CoverLetter:      params.CoverLetter,
		Status:           ApplicationStatusPending,
		GDPRConsent:      true,
		Incorporation:    params.Incorporation,
		HasVehicle:       params.HasVehicle,
		TrainingInterest: params.TrainingInterest,
	}
	err = pool.QueryRow(ctx,
		`INSERT INTO applications (job_offer_id, candidate_name, candidate_email, cv_url, cover_letter,
		                           status, gdpr_consent, gdpr_consent_date, incorporation, has_vehicle, training_interest)
		 VALUES ($1, $2, $3, $4, $5, 'pending', TRUE, now(), $6, $7, $8)
		 RETURNING id, submitted_at, gdpr_consent_date`,
		params.JobOfferID, params.CandidateName, params.CandidateEmail, params.CVURL,
		params.CoverLetter, params.Incorporation, params.HasVehicle, params.TrainingInterest,
	).Scan(&app.ID, &app.SubmittedAt, &app.GDPRConsentDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, &errs.ConflictError{Message: "You have already applied to this position."}
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &app, nil
}

// HasApplication reports whether the candidate already applied to the offer.
func (d *DB) HasApplication(ctx context.Context, jobOfferID uuid.UUID, candidateEmail string) (bool, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	err = pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_offer_id = $1 AND candidate_email = $2)`,
		jobOfferID, candidateEmail,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing application: %w", err)
	}
	return exists, nil
}

// UpdateApplicationStatus sets the review status of an application and
// returns the updated row. Returns nil if the application does not exist.
func (d *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) (*Application, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}
	var app Application
	err = pool.QueryRow(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1
		 RETURNING id, job_offer_id, candidate_name, candidate_email, cv_url, cover_letter,
		           status, submitted_at, gdpr_consent, gdpr_consent_date, incorporation, has_vehicle, training_interest`,
		id, status,
	).Scan(&app.ID, &app.JobOfferID, &app.CandidateName, &app.CandidateEmail, &app.CVURL,
		&app.CoverLetter, &app.Status, &app.SubmittedAt, &app.GDPRConsent, &app.GDPRConsentDate,
		&app.Incorporation, &app.HasVehicle, &app.TrainingInterest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return &app, nil
}
