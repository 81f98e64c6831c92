// Package sheet is the gateway to the external spreadsheet store. It
// is the only package that talks to the Google Sheets API; everything
// above it works with the loosely-typed Table values it returns.
package sheet

import "context"

// Store abstracts the three operations the application performs
// against the spreadsheet. Repositories depend on this interface so
// tests can substitute an in-memory implementation.
type Store interface {
	// ReadAll fetches every row of a table. A completely empty table
	// (not even a header row) yields a zero Table, not an error.
	ReadAll(ctx context.Context, table string) (Table, error)
	// Append adds one row after the last data row of the table.
	Append(ctx context.Context, table string, row []string) error
	// UpdateCell writes a single cell addressed by data-row index
	// (0-based, excluding the header) and column name. An unknown
	// column name returns a *SchemaError.
	UpdateCell(ctx context.Context, table string, rowIndex int, column, value string) error
}
