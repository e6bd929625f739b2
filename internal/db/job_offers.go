package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/LukhazD/germany-const-landing/internal/errs"
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// CreateJobOfferParams holds the validated fields for a new offer.
type CreateJobOfferParams struct {
	Title        string
	Description  string
	Requirements []string
	Location     *string
	SalaryMin    *float64
	SalaryMax    *float64
	Status       string
	Vacancies    *int32
	Slug         string
}

// CreateJobOffer inserts a new job offer and returns the stored row.
func (d *DB) CreateJobOffer(ctx context.Context, params CreateJobOfferParams) (*JobOffer, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}

	offer := JobOffer{
		Title:        params.Title,
		Description:  params.Description,
		Requirements: params.Requirements,
		Location:     params.Location,
		SalaryMin:    params.SalaryMin,
		SalaryMax:    params.SalaryMax,
		Status:       params.Status,
		Vacancies:    params.Vacancies,
		Slug:         params.Slug,
	}
	err = pool.QueryRow(ctx,
		`INSERT INTO job_offers (title, description, requirements, location, salary_min, salary_max, status, vacancies, slug)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at, updated_at`,
		params.Title, params.Description, params.Requirements, params.Location,
		params.SalaryMin, params.SalaryMax, params.Status, params.Vacancies, params.Slug,
	).Scan(&offer.ID, &offer.CreatedAt, &offer.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, &errs.ConflictError{Message: "slug already exists"}
		}
		return nil, fmt.Errorf("failed to create job offer: %w", err)
	}
	return &offer, nil
}

const jobOfferColumns = `id, title, description, requirements, location, salary_min, salary_max, status, vacancies, slug, created_at, updated_at`

func scanJobOffer(row pgx.Row) (*JobOffer, error) {
	var offer JobOffer
	err := row.Scan(&offer.ID, &offer.Title, &offer.Description, &offer.Requirements,
		&offer.Location, &offer.SalaryMin, &offer.SalaryMax, &offer.Status,
		&offer.Vacancies, &offer.Slug, &offer.CreatedAt, &offer.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan job offer: %w", err)
	}
	return &offer, nil
}

// GetJobOffer retrieves a job offer by ID. Returns nil if absent.
func (d *DB) GetJobOffer(ctx context.Context, id uuid.UUID) (*JobOffer, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return scanJobOffer(pool.QueryRow(ctx,
		`SELECT `+jobOfferColumns+` FROM job_offers WHERE id = $1`, id))
}

// GetActiveJobOfferBySlug retrieves an active offer by slug. Returns nil
// if absent or not active.
func (d *DB) GetActiveJobOfferBySlug(ctx context.Context, slug string) (*JobOffer, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}
	return scanJobOffer(pool.QueryRow(ctx,
		`SELECT `+jobOfferColumns+` FROM job_offers WHERE slug = $1 AND status = 'active'`, slug))
}

// UpdateJobOfferParams holds a partial patch; nil fields are left unchanged.
// The slug is immutable and cannot be patched.
type UpdateJobOfferParams struct {
	Title        *string
	Description  *string
	Requirements *[]string
	Location     *string
	SalaryMin    *float64
	SalaryMax    *float64
	Status       *string
	Vacancies    *int32
}

// UpdateJobOffer applies a partial update and returns the updated row.
// Returns nil if the offer does not exist.
func (d *DB) UpdateJobOffer(ctx context.Context, id uuid.UUID, params UpdateJobOfferParams) (*JobOffer, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}

	sets := []string{"updated_at = now()"}
	args := []any{id}
	argNum := 2

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argNum))
		args = append(args, value)
		argNum++
	}

	if params.Title != nil {
		addSet("title", *params.Title)
	}
	if params.Description != nil {
		addSet("description", *params.Description)
	}
	if params.Requirements != nil {
		addSet("requirements", *params.Requirements)
	}
	if params.Location != nil {
		addSet("location", *params.Location)
	}
	if params.SalaryMin != nil {
		addSet("salary_min", *params.SalaryMin)
	}
	if params.SalaryMax != nil {
		addSet("salary_max", *params.SalaryMax)
	}
	if params.Status != nil {
		addSet("status", *params.Status)
	}
	if params.Vacancies != nil {
		addSet("vacancies", *params.Vacancies)
	}

	query := fmt.Sprintf(
		`UPDATE job_offers SET %s WHERE id = $1 RETURNING %s`,
		strings.Join(sets, ", "), jobOfferColumns)

	return scanJobOffer(pool.QueryRow(ctx, query, args...))
}

// DeleteJobOffer hard-deletes a job offer. Returns false if it did not exist.
func (d *DB) DeleteJobOffer(ctx context.Context, id uuid.UUID) (bool, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return false, err
	}
	result, err := pool.Exec(ctx, `DELETE FROM job_offers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete job offer: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ListActiveJobOffers retrieves active offers newest-first, projecting
// only public-safe fields.
func (d *DB) ListActiveJobOffers(ctx context.Context) ([]PublicJobOffer, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx,
		`SELECT id, title, description, requirements, location, salary_min, salary_max, vacancies, slug, created_at
		 FROM job_offers WHERE status = 'active' ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active job offers: %w", err)
	}
	defer rows.Close()

	var offers []PublicJobOffer
	for rows.Next() {
		var o PublicJobOffer
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.Requirements,
			&o.Location, &o.SalaryMin, &o.SalaryMax, &o.Vacancies, &o.Slug, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job offer: %w", err)
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

// CountJobOffers returns the total number of stored offers.
func (d *DB) CountJobOffers(ctx context.Context) (int, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return 0, err
	}
	var total int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_offers`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count job offers: %w", err)
	}
	return total, nil
}

// ListJobOffersWithStats retrieves one page of offers newest-first, each
// enriched with its application counts.
func (d *DB) ListJobOffersWithStats(ctx context.Context, limit, offset int) ([]JobOfferStats, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx,
		`SELECT o.id, o.title, o.description, o.status, o.created_at,
		        COUNT(a.id) AS total_applications,
		        COUNT(a.id) FILTER (WHERE a.status = 'pending') AS pending_review
		 FROM job_offers o
		 LEFT JOIN applications a ON a.job_offer_id = o.id
		 GROUP BY o.id
		 ORDER BY o.created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list job offers with stats: %w", err)
	}
	defer rows.Close()

	var stats []JobOfferStats
	for rows.Next() {
		var s JobOfferStats
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Status, &s.CreatedAt,
			&s.TotalApplications, &s.PendingReview); err != nil {
			return nil, fmt.Errorf("failed to scan job offer stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
