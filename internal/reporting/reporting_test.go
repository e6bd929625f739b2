package reporting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LukhazD/germany-const-landing/internal/auth"
	"github.com/LukhazD/germany-const-landing/internal/db"
	"github.com/LukhazD/germany-const-landing/internal/errs"
)

type fakeOfferReader struct {
	stats  []db.JobOfferStats
	public []db.PublicJobOffer
	bySlug map[string]*db.JobOffer
}

func (f *fakeOfferReader) CountJobOffers(_ context.Context) (int, error) {
	return len(f.stats), nil
}

func (f *fakeOfferReader) ListJobOffersWithStats(_ context.Context, limit, offset int) ([]db.JobOfferStats, error) {
	if offset >= len(f.stats) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.stats) {
		end = len(f.stats)
	}
	return f.stats[offset:end], nil
}

func (f *fakeOfferReader) ListActiveJobOffers(_ context.Context) ([]db.PublicJobOffer, error) {
	return f.public, nil
}

func (f *fakeOfferReader) GetActiveJobOfferBySlug(_ context.Context, slug string) (*db.JobOffer, error) {
	return f.bySlug[slug], nil
}

type fakeAnalysisReader struct {
	analyses []db.ProjectAnalysis
}

func (f *fakeAnalysisReader) CountProjectAnalyses(_ context.Context) (int, error) {
	return len(f.analyses), nil
}

func (f *fakeAnalysisReader) ListProjectAnalyses(_ context.Context, limit, offset int) ([]db.ProjectAnalysis, error) {
	if offset >= len(f.analyses) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.analyses) {
		end = len(f.analyses)
	}
	return f.analyses[offset:end], nil
}

type fakeVerifier struct {
	valid bool
}

func (f *fakeVerifier) VerifyToken(_ string) *auth.Claims {
	if !f.valid {
		return nil
	}
	return &auth.Claims{Role: auth.RoleAdmin}
}

func offerStats(n int) []db.JobOfferStats {
	stats := make([]db.JobOfferStats, n)
	for i := range stats {
		stats[i] = db.JobOfferStats{
			ID:                uuid.New(),
			Title:             fmt.Sprintf("Oferta %d", i+1),
			Status:            db.OfferStatusActive,
			TotalApplications: i,
		}
	}
	return stats
}

func TestListJobOffersWithStatsPagination(t *testing.T) {
	offers := &fakeOfferReader{stats: offerStats(15)}
	svc := New(offers, &fakeAnalysisReader{}, &fakeVerifier{valid: true})

	first, err := svc.ListJobOffersWithStats(context.Background(), "token", 1, 10)
	require.NoError(t, err)
	assert.Len(t, first.Data, 10)
	assert.Equal(t, 15, first.Total)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 2, first.TotalPages)

	second, err := svc.ListJobOffersWithStats(context.Background(), "token", 2, 10)
	require.NoError(t, err)
	assert.Len(t, second.Data, 5)
	assert.Equal(t, 2, second.Page)
	assert.Equal(t, "Oferta 11", second.Data[0].Title)
}

func TestListJobOffersWithStatsNormalizesPaging(t *testing.T) {
	offers := &fakeOfferReader{stats: offerStats(3)}
	svc := New(offers, &fakeAnalysisReader{}, &fakeVerifier{valid: true})

	page, err := svc.ListJobOffersWithStats(context.Background(), "token", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListJobOffersWithStatsEmptyPageIsNotNil(t *testing.T) {
	svc := New(&fakeOfferReader{}, &fakeAnalysisReader{}, &fakeVerifier{valid: true})

	page, err := svc.ListJobOffersWithStats(context.Background(), "token", 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.TotalPages)
}

func TestListJobOffersWithStatsRequiresToken(t *testing.T) {
	svc := New(&fakeOfferReader{}, &fakeAnalysisReader{}, &fakeVerifier{})

	_, err := svc.ListJobOffersWithStats(context.Background(), "bad", 1, 10)
	var authErr *errs.AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestListProjectAnalysesPagination(t *testing.T) {
	analyses := make([]db.ProjectAnalysis, 25)
	for i := range analyses {
		analyses[i] = db.ProjectAnalysis{
			ID:           uuid.New(),
			ContactEmail: fmt.Sprintf("cliente%d@example.com", i+1),
			CreatedAt:    time.Now().Add(-time.Duration(i) * time.Hour),
		}
	}
	svc := New(&fakeOfferReader{}, &fakeAnalysisReader{analyses: analyses}, &fakeVerifier{valid: true})

	page, err := svc.ListProjectAnalyses(context.Background(), "token", 2, 20)
	require.NoError(t, err)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "cliente21@example.com", page.Data[0].ContactEmail)
}

func TestListProjectAnalysesRequiresToken(t *testing.T) {
	svc := New(&fakeOfferReader{}, &fakeAnalysisReader{}, &fakeVerifier{})

	_, err := svc.ListProjectAnalyses(context.Background(), "bad", 1, 20)
	var authErr *errs.AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestListActiveJobOffersPublic(t *testing.T) {
	offers := &fakeOfferReader{public: []db.PublicJobOffer{
		{ID: uuid.New(), Title: "Electricista", Slug: "electricista-a1b2c3d4"},
	}}
	svc := New(offers, &fakeAnalysisReader{}, &fakeVerifier{})

	list, err := svc.ListActiveJobOffers(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListActiveJobOffersEmptyIsNotNil(t *testing.T) {
	svc := New(&fakeOfferReader{}, &fakeAnalysisReader{}, &fakeVerifier{})

	list, err := svc.ListActiveJobOffers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetJobOfferBySlug(t *testing.T) {
	offer := &db.JobOffer{ID: uuid.New(), Title: "Electricista", Slug: "electricista-a1b2c3d4", Status: db.OfferStatusActive}
	offers := &fakeOfferReader{bySlug: map[string]*db.JobOffer{offer.Slug: offer}}
	svc := New(offers, &fakeAnalysisReader{}, &fakeVerifier{})

	got, err := svc.GetJobOfferBySlug(context.Background(), offer.Slug)
	require.NoError(t, err)
	assert.Equal(t, offer.ID, got.ID)

	_, err = svc.GetJobOfferBySlug(context.Background(), "missing-slug")
	var notFound *errs.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
