// Error types shared by the gateway and its callers. A *SchemaError
// signals that the spreadsheet header does not contain a column the
// application expects; it indicates external misconfiguration rather
// than user error, so handlers surface it differently from
// validation failures.
package sheet

import "fmt"

// SchemaError is returned when a required column is missing from a
// table's header row.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q not found in %s header", e.Column, e.Table)
}
