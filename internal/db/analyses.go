package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateProjectAnalysisParams holds the validated fields for a new
// analysis request.
type CreateProjectAnalysisParams struct {
	ContactEmail      string
	ContactPhone      string
	QueryType         string
	IsNewConstruction bool
	ProjectTypeDetail string
	Location          string
	AnalysisDetails   *string
	SqMeters          float64
	PricePerSqMeter   *float64
}

// CreateProjectAnalysis inserts a new analysis request with status pending.
func (d *DB) CreateProjectAnalysis(ctx context.Context, params CreateProjectAnalysisParams) (*ProjectAnalysis, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}

	queryType := params.QueryType
	if queryType == "" {
		queryType = "Analisis de Proyecto"
	}

	analysis := ProjectAnalysis{
		ContactEmail:      params.ContactEmail,
		ContactPhone:      params.ContactPhone,
		QueryType:         queryType,
		IsNewConstruction: params.IsNewConstruction,
		ProjectTypeDetail: params.ProjectTypeDetail,
		Location:          params.Location,
		AnalysisDetails:   params.AnalysisDetails,
		SqMeters:          params.SqMeters,
		PricePerSqMeter:   params.PricePerSqMeter,
		Status:            AnalysisStatusPending,
	}
	err = pool.QueryRow(ctx,
		`INSERT INTO project_analyses (contact_email, contact_phone, query_type, is_new_construction,
		                               project_type_detail, location, analysis_details, sq_meters, price_per_sq_meter, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending')
		 RETURNING id, created_at`,
		params.ContactEmail, params.ContactPhone, queryType, params.IsNewConstruction,
		params.ProjectTypeDetail, params.Location, params.AnalysisDetails,
		params.SqMeters, params.PricePerSqMeter,
	).Scan(&analysis.ID, &analysis.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create project analysis: %w", err)
	}
	return &analysis, nil
}

// CountProjectAnalyses returns the total number of stored analysis requests.
func (d *DB) CountProjectAnalyses(ctx context.Context) (int, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return 0, err
	}
	var total int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM project_analyses`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count project analyses: %w", err)
	}
	return total, nil
}

// ListProjectAnalyses retrieves one page of analysis requests newest-first.
func (d *DB) ListProjectAnalyses(ctx context.Context, limit, offset int) ([]ProjectAnalysis, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := pool.Query(ctx,
		`SELECT id, contact_email, contact_phone, query_type, is_new_construction,
		        project_type_detail, location, analysis_details, sq_meters, price_per_sq_meter, status, created_at
		 FROM project_analyses
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list project analyses: %w", err)
	}
	defer rows.Close()

	var analyses []ProjectAnalysis
	for rows.Next() {
		var a ProjectAnalysis
		if err := rows.Scan(&a.ID, &a.ContactEmail, &a.ContactPhone, &a.QueryType, &a.IsNewConstruction,
			&a.ProjectTypeDetail, &a.Location, &a.AnalysisDetails, &a.SqMeters,
			&a.PricePerSqMeter, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// DeleteProjectAnalysis hard-deletes an analysis request. Returns false
// if it did not exist.
func (d *DB) DeleteProjectAnalysis(ctx context.Context, id uuid.UUID) (bool, error) {
	pool, err := d.acquire(ctx)
	if err != nil {
		return false, err
	}
	result, err := pool.Exec(ctx, `DELETE FROM project_analyses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project analysis: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
