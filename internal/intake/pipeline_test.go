package intake

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LukhazD/germany-const-landing/internal/auth"
	"github.com/LukhazD/germany-const-landing/internal/db"
	"github.com/LukhazD/germany-const-landing/internal/errs"
)

// --- fakes ---

type fakeOfferStore struct {
	offers       map[uuid.UUID]*db.JobOffer
	created      []db.CreateJobOfferParams
	updated      *db.JobOffer
	deleteResult bool
}

func newFakeOfferStore() *fakeOfferStore {
	return &fakeOfferStore{offers: make(map[uuid.UUID]*db.JobOffer)}
}

func (f *fakeOfferStore) CreateJobOffer(_ context.Context, params db.CreateJobOfferParams) (*db.JobOffer, error) {
	f.created = append(f.created, params)
	offer := &db.JobOffer{
		ID:           uuid.New(),
		Title:        params.Title,
		Description:  params.Description,
		Requirements: params.Requirements,
		Status:       params.Status,
		Slug:         params.Slug,
	}
	f.offers[offer.ID] = offer
	return offer, nil
}

func (f *fakeOfferStore) GetJobOffer(_ context.Context, id uuid.UUID) (*db.JobOffer, error) {
	return f.offers[id], nil
}

func (f *fakeOfferStore) UpdateJobOffer(_ context.Context, _ uuid.UUID, _ db.UpdateJobOfferParams) (*db.JobOffer, error) {
	return f.updated, nil
}

func (f *fakeOfferStore) DeleteJobOffer(_ context.Context, _ uuid.UUID) (bool, error) {
	return f.deleteResult, nil
}

type fakeApplicationStore struct {
	existing bool
	created  []db.CreateApplicationParams
	updated  *db.Application
}

func (f *fakeApplicationStore) CreateApplication(_ context.Context, params db.CreateApplicationParams) (*db.Application, error) {
	f.created = append(f.created, params)
	return &db.Application{
		ID:             uuid.New(),
		JobOfferID:     params.JobOfferID,
		CandidateName:  params.CandidateName,
		CandidateEmail: params.CandidateEmail,
		CVURL:          params.CVURL,
		Status:         db.ApplicationStatusPending,
		GDPRConsent:    true,
	}, nil
}

func (f *fakeApplicationStore) HasApplication(_ context.Context, _ uuid.UUID, _ string) (bool, error) {
	return f.existing, nil
}

func (f *fakeApplicationStore) UpdateApplicationStatus(_ context.Context, _ uuid.UUID, _ string) (*db.Application, error) {
	return f.updated, nil
}

type fakeAnalysisStore struct {
	created      []db.CreateProjectAnalysisParams
	deleteResult bool
}

func (f *fakeAnalysisStore) CreateProjectAnalysis(_ context.Context, params db.CreateProjectAnalysisParams) (*db.ProjectAnalysis, error) {
	f.created = append(f.created, params)
	return &db.ProjectAnalysis{
		ID:                uuid.New(),
		ContactEmail:      params.ContactEmail,
		ContactPhone:      params.ContactPhone,
		QueryType:         params.QueryType,
		IsNewConstruction: params.IsNewConstruction,
		ProjectTypeDetail: params.ProjectTypeDetail,
		Location:          params.Location,
		SqMeters:          params.SqMeters,
		Status:            db.AnalysisStatusPending,
	}, nil
}

func (f *fakeAnalysisStore) DeleteProjectAnalysis(_ context.Context, _ uuid.UUID) (bool, error) {
	return f.deleteResult, nil
}

type fakeObjectStore struct {
	uploads   []string
	uploadErr error
}

func (f *fakeObjectStore) Upload(_ context.Context, key string, _ []byte, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	return nil
}

func (f *fakeObjectStore) ObjectURL(key string) string {
	return "http://localhost:9000/cv-uploads/" + key
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

type pipelineFixture struct {
	offers   *fakeOfferStore
	apps     *fakeApplicationStore
	analyses *fakeAnalysisStore
	objects  *fakeObjectStore
	verifier *fakeVerifier
	pipeline *Pipeline
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		offers:   newFakeOfferStore(),
		apps:     &fakeApplicationStore{},
		analyses: &fakeAnalysisStore{},
		objects:  &fakeObjectStore{},
		verifier: &fakeVerifier{valid: true},
	}
	f.pipeline = New(f.offers, f.apps, f.analyses, f.objects, f.verifier)
	return f
}

func (f *pipelineFixture) addOffer(status string) *db.JobOffer {
	offer := &db.JobOffer{
		ID:     uuid.New(),
		Title:  "Electricista",
		Status: status,
		Slug:   "electricista-a1b2c3d4",
	}
	f.offers.offers[offer.ID] = offer
	return offer
}

func validApplicationInput() ApplicationInput {
	return ApplicationInput{
		CandidateName:    "Ana García",
		CandidateEmail:   "ana@example.com",
		GDPRConsent:      true,
		Incorporation:    IncorporationImmediate,
		HasVehicle:       true,
		TrainingInterest: false,
		CV: &CVFile{
			Filename:    "cv.pdf",
			ContentType: "application/pdf",
			Data:        []byte("%PDF-1.4"),
		},
	}
}

// --- SubmitApplication ---

func TestSubmitApplicationSuccess(t *testing.T) {
	f := newPipelineFixture()
	offer := f.addOffer(db.OfferStatusActive)

	app, err := f.pipeline.SubmitApplication(context.Background(), validApplicationInput(), offer.ID)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, db.ApplicationStatusPending, app.Status)

	require.Len(t, f.objects.uploads, 1)
	assert.True(t, strings.HasPrefix(f.objects.uploads[0], "cvs/electricista-a1b2c3d4/"))
	assert.True(t, strings.HasSuffix(f.objects.uploads[0], "-cv.pdf"))

	require.Len(t, f.apps.created, 1)
	assert.Equal(t, f.objects.ObjectURL(f.objects.uploads[0]), f.apps.created[0].CVURL)
}

func TestSubmitApplicationConsentRequired(t *testing.T) {
	f := newPipelineFixture()
	offer := f.addOffer(db.OfferStatusActive)

	input := validApplicationInput()
	input.GDPRConsent = false

	_, err := f.pipeline.SubmitApplication(context.Background(), input, offer.ID)
	var validation *errs.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, err.Error(), "consent required")
	assert.Empty(t, f.objects.uploads)
	assert.Empty(t, f.apps.created)
}

func TestSubmitApplicationCVRequired(t *testing.T) {
	f := newPipelineFixture()
	offer := f.addOffer(db.OfferStatusActive)

	tests := []struct {
		name string
		cv   *CVFile
	}{
		{"missing file", nil},
		{"zero-length file", &CVFile{Filename: "cv.pdf", Data: nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validApplicationInput()
			input.CV = tt.cv

			_, err := f.pipeline.SubmitApplication(context.Background(), input, offer.ID)
			var validation *errs.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Contains(t, err.Error(), "CV required")
		})
	}
}

func TestSubmitApplicationInvalidShape(t *testing.T) {
	f := newPipelineFixture()
	offer := f.addOffer(db.OfferStatusActive)

	tests := []struct {
		name   string
		mutate func(*ApplicationInput)
	}{
		{"short name", func(in *ApplicationInput) { in.CandidateName = "A" }},
		{"bad email", func(in *ApplicationInput) { in.CandidateEmail = "not-an-email" }},
		{"bad incorporation", func(in *ApplicationInput) { in.Incorporation = "next year" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validApplicationInput()
			tt.mutate(&input)

			_, err := f.pipeline.SubmitApplication(context.Background(), input, offer.ID)
			var validation *errs.ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestSubmitApplicationOfferNotFound(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.pipeline.SubmitApplication(context.Background(), validApplicationInput(), uuid.New())
	var notFound *errs.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Empty(t, f.objects.uploads)
}

func TestSubmitApplicationInactiveOffer(t *testing.T) {
	for _, status := range []string{db.OfferStatusDraft, db.OfferStatusClosed} {
		t.Run(status, func(t *testing.T) {
			f := newPipelineFixture()
			offer := f.addOffer(status)

			_, err := f.pipeline.SubmitApplication(context.Background(), validApplicationInput(), offer.ID)
			var conflict *errs.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Empty(t, f.objects.uploads)
			assert.Empty(t, f.apps.created)
		})
	}
}

func TestSubmitApplicationDuplicate(t *testing.T) {
	f := newPipelineFixture()
	offer := f.addOffer(db.OfferStatusActive)
	f.apps.existing = true

	_, err := f.pipeline.SubmitApplication(context.Background(), validApplicationInput(), offer.ID)
	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Empty(t, f.objects.uploads)
	assert.Empty(t, f.apps.created)
}

func TestSubmitApplicationUploadFailureSkipsPersist(t *testing.T) {
	f := newPipelineFixture()
	offer := f.addOffer(db.OfferStatusActive)
	f.objects.uploadErr = &errs.StorageError{Op: "upload", Err: errors.New("bucket unavailable")}

	_, err := f.pipeline.SubmitApplication(context.Background(), validApplicationInput(), offer.ID)
	var storageErr *errs.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Empty(t, f.apps.created, "no application may be persisted after a failed upload")
}

// --- SubmitProjectAnalysis ---

func TestSubmitProjectAnalysisSuccess(t *testing.T) {
	f := newPipelineFixture()

	analysis, err := f.pipeline.SubmitProjectAnalysis(context.Background(), AnalysisInput{
		ContactEmail:      "cliente@example.com",
		ContactPhone:      "600123456",
		ProjectTypeDetail: "Vivienda",
		Location:          "Madrid",
		SqMeters:          120,
	})
	require.NoError(t, err)
	assert.Equal(t, db.AnalysisStatusPending, analysis.Status)
	assert.False(t, analysis.IsNewConstruction)
	require.Len(t, f.analyses.created, 1)
}

func TestSubmitProjectAnalysisMissingFields(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.pipeline.SubmitProjectAnalysis(context.Background(), AnalysisInput{
		ContactEmail: "cliente@example.com",
	})
	var validation *errs.ValidationError
	require.ErrorAs(t, err, &validation)

	fields := make([]string, 0, len(validation.Fields))
	for _, fe := range validation.Fields {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "ContactPhone")
	assert.Contains(t, fields, "ProjectTypeDetail")
	assert.Contains(t, fields, "Location")
	assert.Contains(t, fields, "SqMeters")
	assert.Empty(t, f.analyses.created)
}

func TestSubmitProjectAnalysisRejectsNonPositiveSqMeters(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.pipeline.SubmitProjectAnalysis(context.Background(), AnalysisInput{
		ContactEmail:      "cliente@example.com",
		ContactPhone:      "600123456",
		ProjectTypeDetail: "Vivienda",
		Location:          "Madrid",
		SqMeters:          -5,
	})
	var validation *errs.ValidationError
	assert.ErrorAs(t, err, &validation)
}
