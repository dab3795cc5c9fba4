package intake

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/libelle-hq/volunteer-intake/internal/blobstore"
	"github.com/libelle-hq/volunteer-intake/internal/enrich"
	"github.com/libelle-hq/volunteer-intake/internal/tabular"
)

// Service is the request-path half of the pipeline: validate, store the
// document, append the base row, schedule enrichment. The base row is
// written only after every prior step has succeeded, so no validation
// or upload failure leaves a partial row behind.
type Service struct {
	validator *Validator
	blobs     blobstore.Client
	sheet     tabular.Store
	queue     enrich.Queue
	logger    *slog.Logger

	// seq supplies a display-friendly ordinal for stored filenames.
	// Uniqueness comes from the blob handle, not from this counter.
	seq atomic.Int64
}

func NewService(validator *Validator, blobs blobstore.Client, sheet tabular.Store, queue enrich.Queue, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		validator: validator,
		blobs:     blobs,
		sheet:     sheet,
		queue:     queue,
		logger:    logger,
	}
}

// Result is what the submitter gets back. The submission id is returned
// only; the blob handle is the record's sole durable identifier.
type Result struct {
	SubmissionID string
}

// Submit runs the two-phase persistence protocol's first phase and
// schedules the second. Within one submission the base-row append
// happens-before the enrichment update.
func (s *Service) Submit(ctx context.Context, form Form, filename string, data []byte) (Result, error) {
	preText, err := s.validator.Validate(ctx, form, filename, data)
	if err != nil {
		return Result{}, err
	}

	submissionID := uuid.NewString()[:8]
	now := time.Now().UTC()

	seq := s.seq.Add(1)
	storedName := fmt.Sprintf("%d-%s", seq, filename)

	handle, url, err := s.blobs.Upload(ctx, data, storedName)
	if err != nil {
		return Result{}, fmt.Errorf("store resume: %w", err)
	}

	row := tabular.SubmissionRow{
		FullName:     form.FullName,
		Email:        form.Email,
		Location:     form.Location,
		Interests:    form.Interests,
		Availability: form.Availability,
		Experience:   form.ExperienceLevel,
		LinkedinURL:  form.LinkedinURL,
		GithubURL:    form.GithubURL,
		Motivation:   form.Motivation,
		FileID:       handle,
		FileURL:      url,
		SubmittedAt:  now,
	}
	if err := s.sheet.Append(ctx, row.Cells()); err != nil {
		return Result{}, fmt.Errorf("append base row: %w", err)
	}

	s.logger.Info("intake.base_row.ok", "submission_id", submissionID, "handle", handle)

	if err := s.queue.Enqueue(ctx, enrich.Job{Handle: handle, PreText: preText, SubmittedAt: now}); err != nil {
		// Enrichment is best-effort; the submission itself succeeded.
		s.logger.Warn("intake.enqueue.failed", "handle", handle, "error", err)
	}

	return Result{SubmissionID: submissionID}, nil
}
