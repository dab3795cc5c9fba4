package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// PDFExtractor extracts embedded text from PDF documents.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

// Extract reads every page of the PDF and concatenates the text layer.
// It fails when the bytes do not decode as a PDF or no page yields text.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (TextExtractionResult, error) {
	start := time.Now()

	reader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("read pdf: %w", err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("get page count: %w", err)
	}
	if numPages == 0 {
		return TextExtractionResult{}, fmt.Errorf("pdf has no pages")
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return TextExtractionResult{}, err
		}

		page, err := reader.GetPage(i)
		if err != nil {
			e.logger.Warn("extract.page.skipped", "page", i, "error", err)
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			e.logger.Warn("extract.page.skipped", "page", i, "error", err)
			continue
		}
		pageText, err := ex.ExtractText()
		if err != nil {
			e.logger.Warn("extract.page.skipped", "page", i, "error", err)
			continue
		}
		if pageText != "" {
			sb.WriteString(pageText)
			sb.WriteString("\n")
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return TextExtractionResult{}, fmt.Errorf("no text could be extracted from any page")
	}

	return TextExtractionResult{
		Text:     text,
		Pages:    numPages,
		Method:   "pdf-text",
		Duration: time.Since(start),
	}, nil
}
