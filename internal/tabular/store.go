package tabular

import "context"

// Store is a grid-shaped store of fixed-width rows.
//
// Locate is a linear exact-match scan of one column returning the first
// matching row; no index is maintained. A lookup performed immediately
// after an append by another writer may not observe that row yet.
type Store interface {
	// Append inserts a row at the end of the managed range.
	Append(ctx context.Context, cells []any) error
	// Locate returns the row reference of the first row whose cell in
	// col equals value, or found=false.
	Locate(ctx context.Context, col int, value string) (row int, found bool, err error)
	// UpdateRange overwrites a contiguous column range of one row,
	// leaving the row's other columns untouched.
	UpdateRange(ctx context.Context, row int, startCol int, values []any) error
}
