package tabular

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/libelle-hq/volunteer-intake/internal/parser"
)

func newTestStore(t *testing.T) (*XLSXStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "applicants.xlsx")
	s, err := OpenXLSX(path, "applicantsInfo", nil)
	require.NoError(t, err)
	return s, path
}

func testRow(handle string) SubmissionRow {
	return SubmissionRow{
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		Location:     "Austin, TX",
		Interests:    "Education",
		Availability: "Weekends",
		Experience:   "Intermediate",
		FileID:       handle,
		FileURL:      "https://blob.example.com/resumes/" + handle,
		SubmittedAt:  time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
	}
}

func TestAppendAndLocate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, testRow("handle-a").Cells()))
	require.NoError(t, s.Append(ctx, testRow("handle-b").Cells()))

	row, found, err := s.Locate(ctx, ColFileID, "handle-a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, row)

	row, found, err = s.Locate(ctx, ColFileID, "handle-b")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, row)

	_, found, err = s.Locate(ctx, ColFileID, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLocateFirstMatch(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, testRow("dup").Cells()))
	require.NoError(t, s.Append(ctx, testRow("dup").Cells()))

	row, found, err := s.Locate(ctx, ColFileID, "dup")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, row, "locate must return the first matching row")
}

func TestUpdateRangeTouchesOnlyEnrichmentColumns(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, testRow("handle-a").Cells()))

	resume := parser.Resume{
		Name:              parser.Field[string]{Value: "Jane Doe", Confidence: 0.9},
		Emails:            parser.Field[[]string]{Value: []string{"jane@example.com"}, Confidence: 0.8},
		Locations:         parser.Field[[]string]{Value: []string{"Austin, TX"}, Confidence: 0.7},
		Education:         parser.Field[[]string]{Value: []string{}},
		Skills:            parser.Field[[]string]{Value: []string{"Go"}, Confidence: 0.6},
		WorkExperience:    parser.Field[[]string]{Value: []string{}},
		ProjectExperience: parser.Field[[]string]{Value: []string{}},
	}

	row, found, err := s.Locate(ctx, ColFileID, "handle-a")
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, s.UpdateRange(ctx, row, ColParseStatus, EnrichmentCells(resume, 0.75)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("applicantsInfo")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	got := rows[1]
	// Intake columns are byte-identical to what was appended.
	assert.Equal(t, "Jane Doe", got[ColFullName])
	assert.Equal(t, "jane@example.com", got[ColEmail])
	assert.Equal(t, "Austin, TX", got[ColLocation])
	assert.Equal(t, "handle-a", got[ColFileID])
	assert.Equal(t, "https://blob.example.com/resumes/handle-a", got[ColFileURL])
	// Enrichment block was written.
	assert.Equal(t, "parsed", got[ColParseStatus])
	assert.Equal(t, "0.75", got[ColOverallConfidence])
	assert.Equal(t, "Jane Doe", got[ColParsedName])
	assert.Equal(t, "jane@example.com", got[ColParsedEmails])
}

func TestReopenExistingWorkbook(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Append(ctx, testRow("persisted").Cells()))

	reopened, err := OpenXLSX(path, "applicantsInfo", nil)
	require.NoError(t, err)

	row, found, err := reopened.Locate(ctx, ColFileID, "persisted")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, row)
}

func TestOpenXLSXMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applicants.xlsx")
	_, err := OpenXLSX(path, "applicantsInfo", nil)
	require.NoError(t, err)

	_, err = OpenXLSX(path, "otherSheet", nil)
	assert.Error(t, err)
}
