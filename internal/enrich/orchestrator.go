package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/libelle-hq/volunteer-intake/internal/blobstore"
	"github.com/libelle-hq/volunteer-intake/internal/extract"
	"github.com/libelle-hq/volunteer-intake/internal/parser"
	"github.com/libelle-hq/volunteer-intake/internal/tabular"
)

// Orchestrator merges parser output into an already-persisted base row.
// It runs strictly after the base row exists; it mutates exactly one
// row, and only that row's enrichment column range plus the timestamp
// cell.
type Orchestrator struct {
	blobs     blobstore.Client
	sheet     tabular.Store
	extractor extract.TextExtractor
	logger    *slog.Logger
}

func NewOrchestrator(blobs blobstore.Client, sheet tabular.Store, extractor extract.TextExtractor, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{blobs: blobs, sheet: sheet, extractor: extractor, logger: logger}
}

// Enrich obtains the resume text, parses it, and writes the enrichment
// block of the row keyed by the job's blob handle. Errors are returned
// to the worker, whose failure policy decides their fate.
func (o *Orchestrator) Enrich(ctx context.Context, job Job) error {
	text := job.PreText
	if text == "" {
		data, err := o.blobs.Download(ctx, job.Handle)
		if err != nil {
			return fmt.Errorf("download resume: %w", err)
		}
		res, err := o.extractor.Extract(ctx, data)
		if err != nil {
			return fmt.Errorf("extract resume text: %w", err)
		}
		text = res.Text
	}

	resume := parser.ParseResume(text)
	if err := parser.ValidateResume(resume); err != nil {
		return err
	}
	overall := parser.OverallConfidence(resume)

	row, found, err := o.sheet.Locate(ctx, tabular.ColFileID, job.Handle)
	if err != nil {
		return fmt.Errorf("locate row: %w", err)
	}
	if !found {
		return fmt.Errorf("handle %s not found in sheet", job.Handle)
	}

	if err := o.sheet.UpdateRange(ctx, row, tabular.ColParseStatus, tabular.EnrichmentCells(resume, overall)); err != nil {
		return fmt.Errorf("update enrichment range: %w", err)
	}
	// The timestamp cell is rewritten to reflect enrichment completion.
	if err := o.sheet.UpdateRange(ctx, row, tabular.ColTimestamp, []any{tabular.Timestamp(time.Now())}); err != nil {
		return fmt.Errorf("update timestamp: %w", err)
	}

	o.logger.Info("enrich.ok", "handle", job.Handle, "row", row, "overall_confidence", overall)
	return nil
}
