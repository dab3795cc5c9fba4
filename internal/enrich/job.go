package enrich

import (
	"context"
	"log/slog"
	"time"
)

// Job is one enrichment unit of work: a stored resume identified by its
// blob handle, plus the text already extracted by the request path's
// sanity check (may be empty, in which case the orchestrator re-derives
// it from the blob store).
type Job struct {
	Handle      string
	PreText     string
	SubmittedAt time.Time
}

// Queue runs enrichment jobs without blocking the HTTP response path.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// FailurePolicy decides what happens to an enrichment job that failed.
// The submitter has already received a success response by the time a
// job runs, so no policy may propagate anything to the request path.
type FailurePolicy interface {
	HandleFailure(logger *slog.Logger, job Job, err error)
}

// LogAndDrop logs the failure and discards the job. The row stays in
// its pre-enrichment state: no retry, no dead letter, no alert. This is
// the intake pipeline's chosen degradation mode, named so it can be
// swapped for a retry or dead-letter policy without touching the
// request path.
type LogAndDrop struct{}

func (LogAndDrop) HandleFailure(logger *slog.Logger, job Job, err error) {
	logger.Error("enrich.dropped", "handle", job.Handle, "error", err)
}
