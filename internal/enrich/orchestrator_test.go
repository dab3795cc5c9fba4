package enrich

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libelle-hq/volunteer-intake/internal/extract"
	"github.com/libelle-hq/volunteer-intake/internal/tabular"
)

const resumeText = `Jane Doe
Austin, TX
jane@example.com

Skills
Go, SQL`

type fakeBlobClient struct {
	data      map[string][]byte
	downloads int
}

func (f *fakeBlobClient) Upload(_ context.Context, _ []byte, name string) (string, string, error) {
	return name, "https://blob.example.com/" + name, nil
}

func (f *fakeBlobClient) Download(_ context.Context, handle string) ([]byte, error) {
	f.downloads++
	data, ok := f.data[handle]
	if !ok {
		return nil, errors.New("no such object")
	}
	return data, nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(_ context.Context, _ []byte) (extract.TextExtractionResult, error) {
	if f.err != nil {
		return extract.TextExtractionResult{}, f.err
	}
	return extract.TextExtractionResult{Text: f.text, Method: "pdf-text"}, nil
}

type update struct {
	row      int
	startCol int
	values   []any
}

type fakeSheet struct {
	mu        sync.Mutex
	rows      map[string]int // handle -> row reference
	updates   []update
	locateErr error
	updateErr error
}

func (f *fakeSheet) Append(_ context.Context, _ []any) error { return nil }

func (f *fakeSheet) Locate(_ context.Context, col int, value string) (int, bool, error) {
	if f.locateErr != nil {
		return 0, false, f.locateErr
	}
	if col != tabular.ColFileID {
		return 0, false, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[value]
	return row, ok, nil
}

func (f *fakeSheet) UpdateRange(_ context.Context, row, startCol int, values []any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, update{row: row, startCol: startCol, values: values})
	return nil
}

func TestEnrichWithPreExtractedText(t *testing.T) {
	blobs := &fakeBlobClient{}
	sheet := &fakeSheet{rows: map[string]int{"handle-a": 2}}
	orch := NewOrchestrator(blobs, sheet, &fakeExtractor{}, nil)

	err := orch.Enrich(context.Background(), Job{Handle: "handle-a", PreText: resumeText})
	require.NoError(t, err)

	assert.Zero(t, blobs.downloads, "pre-extracted text skips the blob store")
	require.Len(t, sheet.updates, 2)

	block := sheet.updates[0]
	assert.Equal(t, 2, block.row)
	assert.Equal(t, tabular.ColParseStatus, block.startCol)
	assert.Equal(t, "parsed", block.values[0])

	ts := sheet.updates[1]
	assert.Equal(t, 2, ts.row)
	assert.Equal(t, tabular.ColTimestamp, ts.startCol)
	assert.Len(t, ts.values, 1)
}

func TestEnrichRederivesTextFromBlobStore(t *testing.T) {
	blobs := &fakeBlobClient{data: map[string][]byte{"handle-a": []byte("%PDF")}}
	sheet := &fakeSheet{rows: map[string]int{"handle-a": 2}}
	orch := NewOrchestrator(blobs, sheet, &fakeExtractor{text: resumeText}, nil)

	err := orch.Enrich(context.Background(), Job{Handle: "handle-a"})
	require.NoError(t, err)
	assert.Equal(t, 1, blobs.downloads)
	assert.Len(t, sheet.updates, 2)
}

func TestEnrichFailures(t *testing.T) {
	tests := []struct {
		name  string
		blobs *fakeBlobClient
		sheet *fakeSheet
		ext   *fakeExtractor
		job   Job
	}{
		{
			name:  "blob missing",
			blobs: &fakeBlobClient{},
			sheet: &fakeSheet{rows: map[string]int{}},
			ext:   &fakeExtractor{},
			job:   Job{Handle: "gone"},
		},
		{
			name:  "extraction fails",
			blobs: &fakeBlobClient{data: map[string][]byte{"h": []byte("x")}},
			sheet: &fakeSheet{rows: map[string]int{"h": 2}},
			ext:   &fakeExtractor{err: errors.New("bad pdf")},
			job:   Job{Handle: "h"},
		},
		{
			name:  "handle not in sheet",
			blobs: &fakeBlobClient{},
			sheet: &fakeSheet{rows: map[string]int{}},
			ext:   &fakeExtractor{},
			job:   Job{Handle: "h", PreText: resumeText},
		},
		{
			name:  "locate errors",
			blobs: &fakeBlobClient{},
			sheet: &fakeSheet{locateErr: errors.New("sheet unavailable")},
			ext:   &fakeExtractor{},
			job:   Job{Handle: "h", PreText: resumeText},
		},
		{
			name:  "update errors",
			blobs: &fakeBlobClient{},
			sheet: &fakeSheet{rows: map[string]int{"h": 2}, updateErr: errors.New("write denied")},
			ext:   &fakeExtractor{},
			job:   Job{Handle: "h", PreText: resumeText},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := NewOrchestrator(tt.blobs, tt.sheet, tt.ext, nil)
			err := orch.Enrich(context.Background(), tt.job)
			assert.Error(t, err)
		})
	}
}
