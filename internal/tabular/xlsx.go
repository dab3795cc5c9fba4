package tabular

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"
)

// Column headers for the named portion of the layout; the remainder of
// the fixed-width row is reserved.
var headers = []string{
	"Timestamp", "Full Name", "Email", "Location", "Areas of Interest",
	"Availability", "Experience Level", "LinkedIn URL", "GitHub URL",
	"resume_file_id", "resume_file_url", "Motivation",
	"parser_status", "parser_confidence_overall",
	"parsed_name", "parsed_name_conf",
	"parsed_email", "parsed_email_conf",
	"parsed_location", "parsed_location_conf",
	"parsed_education", "parsed_education_conf",
	"parsed_skills_json", "parsed_skills_conf",
	"parsed_work_experience_json", "parsed_work_experience_conf",
	"parsed_project_experience_json", "parsed_project_experience_conf",
	"full_extracted_text",
}

// XLSXStore keeps the applicants grid in a local XLSX workbook.
// excelize files are not safe for concurrent use, so every operation
// holds the store mutex and saves before releasing it.
type XLSXStore struct {
	mu     sync.Mutex
	path   string
	sheet  string
	f      *excelize.File
	logger *slog.Logger
}

// OpenXLSX opens the workbook at path, creating it with a header row
// when it does not exist yet.
func OpenXLSX(path, sheet string, logger *slog.Logger) (*XLSXStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &XLSXStore{path: path, sheet: sheet, logger: logger}

	if _, err := os.Stat(path); err == nil {
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
			return nil, fmt.Errorf("workbook %s has no sheet %q", path, sheet)
		}
		s.f = f
		return s, nil
	}

	f := excelize.NewFile()
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("save new workbook: %w", err)
	}
	s.f = f
	return s, nil
}

func (s *XLSXStore) Append(ctx context.Context, cells []any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.f.GetRows(s.sheet)
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}
	next := len(rows) + 1

	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, next)
		if err != nil {
			return err
		}
		if err := s.f.SetCellValue(s.sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	if err := s.f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	s.logger.Info("sheet.append.ok", "row", next, "elapsed_ms", time.Since(start).Milliseconds())
	return nil
}

// Locate scans one column top to bottom for the first exact match,
// skipping the header row. O(rows) per call.
func (s *XLSXStore) Locate(ctx context.Context, col int, value string) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.f.GetRows(s.sheet)
	if err != nil {
		return 0, false, fmt.Errorf("read sheet: %w", err)
	}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if col < len(row) && row[col] == value {
			return i + 1, true, nil
		}
	}
	return 0, false, nil
}

func (s *XLSXStore) UpdateRange(ctx context.Context, row int, startCol int, values []any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(startCol+i+1, row)
		if err != nil {
			return err
		}
		if err := s.f.SetCellValue(s.sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	if err := s.f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	s.logger.Info("sheet.update.ok", "row", row, "start_col", startCol, "cells", len(values))
	return nil
}
