package intake

import (
	"context"
	"net/http"
	"strings"

	"github.com/libelle-hq/volunteer-intake/constants"
	"github.com/libelle-hq/volunteer-intake/internal/common"
	"github.com/libelle-hq/volunteer-intake/internal/extract"
)

// Form is the raw multipart submission, before validation.
type Form struct {
	FullName        string
	Email           string
	Location        string
	Interests       string
	Availability    string
	ExperienceLevel string
	Consent         bool
	LinkedinURL     string
	GithubURL       string
	Motivation      string
}

// Validator checks a submission for completeness and well-formedness,
// including a synchronous sanity decode of the uploaded document. It
// either fully passes or fails; it never writes to any store.
type Validator struct {
	extractor extract.TextExtractor
}

func NewValidator(extractor extract.TextExtractor) *Validator {
	return &Validator{extractor: extractor}
}

// Validate runs the intake checks in order, short-circuiting on the
// first structural failure but accumulating all field-presence failures
// into one response. On success it returns the text extracted by the
// sanity decode, so enrichment does not have to re-derive it.
func (v *Validator) Validate(ctx context.Context, form Form, filename string, data []byte) (string, error) {
	if !form.Consent {
		return "", common.NewFieldError("consent", "Must be checked to submit application.")
	}

	if len(data) == 0 || filename == "" {
		return "", common.NewFileRequiredError()
	}

	if !constants.IsResumeFilename(filename) {
		return "", &common.AppError{
			Code:    "VALIDATION_ERROR",
			Status:  http.StatusUnprocessableEntity,
			Message: "Only PDF files supported",
			Fields:  map[string]string{"file": "Only PDF files supported"},
		}
	}

	missing := map[string]string{}
	if strings.TrimSpace(form.FullName) == "" {
		missing["full_name"] = "Required"
	}
	if strings.TrimSpace(form.Location) == "" {
		missing["location"] = "Required"
	}
	if strings.TrimSpace(form.Interests) == "" {
		missing["interests"] = "Required"
	}
	if strings.TrimSpace(form.Availability) == "" {
		missing["availability"] = "Required"
	}
	if strings.TrimSpace(form.ExperienceLevel) == "" {
		missing["experience_level"] = "Required"
	}
	if !form.Consent {
		missing["consent"] = "Required"
	}
	if strings.TrimSpace(form.Email) == "" {
		missing["email"] = "Required"
	} else if !strings.Contains(form.Email, "@") || !strings.Contains(form.Email, ".") {
		missing["email"] = "Invalid format"
	}
	if len(missing) > 0 {
		return "", common.NewValidationError(missing)
	}

	// Fail-fast sanity decode, distinct from the deferred full
	// enrichment extraction. Nothing is persisted before this passes.
	res, err := v.extractor.Extract(ctx, data)
	if err != nil {
		return "", common.NewExtractionError(err)
	}
	if strings.TrimSpace(res.Text) == "" {
		return "", common.NewExtractionError(nil)
	}
	return res.Text, nil
}
