package sheet

// RowEncoder builds rows positionally from a header snapshot. Named
// fields are resolved to column positions once, when the encoder is
// created; headers the caller does not set become empty cells. This
// keeps writes stable when the administrator adds or reorders
// columns in the sheet: only the recognized field names matter.
type RowEncoder struct {
	table  string
	header []string
	index  map[string]int
}

// NewRowEncoder snapshots the given header for the named table.
func NewRowEncoder(table string, header []string) *RowEncoder {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	return &RowEncoder{table: table, header: header, index: idx}
}

// Require returns a *SchemaError for the first of the given columns
// missing from the header snapshot. Callers check this before
// encoding a row whose fields must not be silently dropped.
func (e *RowEncoder) Require(columns ...string) error {
	for _, c := range columns {
		if _, ok := e.index[c]; !ok {
			return &SchemaError{Table: e.table, Column: c}
		}
	}
	return nil
}

// Encode lays the named field values out in header order. Fields
// without a matching header column are ignored; header columns
// without a field value come out empty.
func (e *RowEncoder) Encode(fields map[string]string) []string {
	row := make([]string, len(e.header))
	for name, val := range fields {
		if i, ok := e.index[name]; ok {
			row[i] = val
		}
	}
	return row
}
