package intake

import (
	"github.com/go-playground/validator/v10"

	"github.com/LukhazD/germany-const-landing/internal/errs"
)

// Incorporation availability values a candidate may declare.
const (
	IncorporationImmediate = "inmediata"
	Incorporation15Days    = "15_dias"
	Incorporation1Month    = "1_mes"
	IncorporationOther     = "other"
)

// CVFile is an uploaded CV attachment.
type CVFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ApplicationInput is the public application submission payload.
type ApplicationInput struct {
	CandidateName    string `json:"candidateName" validate:"required,min=2"`
	CandidateEmail   string `json:"candidateEmail" validate:"required,email"`
	CoverLetter      string `json:"coverLetter"`
	GDPRConsent      bool   `json:"gdprConsent"`
	Incorporation    string `json:"incorporation" validate:"required,oneof=inmediata 15_dias 1_mes other"`
	HasVehicle       bool   `json:"hasVehicle"`
	TrainingInterest bool   `json:"trainingInterest"`
	CV               *CVFile
}

// AnalysisInput is the public project-analysis submission payload.
type AnalysisInput struct {
	ContactEmail      string   `json:"contactEmail" validate:"required"`
	ContactPhone      string   `json:"contactPhone" validate:"required"`
	QueryType         string   `json:"queryType" validate:"omitempty,oneof='Analisis de Proyecto' 'Obra Nueva' 'Reformas'"`
	IsNewConstruction bool     `json:"isNewConstruction"`
	ProjectTypeDetail string   `json:"projectTypeDetail" validate:"required"`
	Location          string   `json:"location" validate:"required"`
	AnalysisDetails   string   `json:"analysisDetails"`
	SqMeters          float64  `json:"sqMeters" validate:"required,gt=0"`
	PricePerSqMeter   *float64 `json:"pricePerSqMeter"`
}

// JobOfferInput is the admin payload for creating an offer.
type JobOfferInput struct {
	Title        string   `json:"title" validate:"required,min=3"`
	Description  string   `json:"description" validate:"required,min=10"`
	Requirements []string `json:"requirements"`
	Location     *string  `json:"location"`
	SalaryMin    *float64 `json:"salaryMin"`
	SalaryMax    *float64 `json:"salaryMax"`
	Status       string   `json:"status" validate:"omitempty,oneof=draft active closed"`
	Vacancies    *int32   `json:"vacancies"`
}

// JobOfferPatch is the admin payload for partially updating an offer.
// Nil fields are left unchanged; the slug is never patchable.
type JobOfferPatch struct {
	Title        *string   `json:"title" validate:"omitempty,min=3"`
	Description  *string   `json:"description" validate:"omitempty,min=10"`
	Requirements *[]string `json:"requirements"`
	Location     *string   `json:"location"`
	SalaryMin    *float64  `json:"salaryMin"`
	SalaryMax    *float64  `json:"salaryMax"`
	Status       *string   `json:"status" validate:"omitempty,oneof=draft active closed"`
	Vacancies    *int32    `json:"vacancies"`
}

// toFieldErrors converts validator errors into the shared tagged form so
// ordinary input-shape problems are reported, not thrown.
func toFieldErrors(err error) []errs.FieldError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []errs.FieldError{{Field: "request", Message: "invalid payload"}}
	}
	fields := make([]errs.FieldError, 0, len(validationErrors))
	for _, ve := range validationErrors {
		fields = append(fields, errs.FieldError{Field: ve.Field(), Message: ve.Tag()})
	}
	return fields
}
