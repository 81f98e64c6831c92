package sheet

// Table holds the raw contents of one sheet: the header row and the
// data rows below it, all as untyped strings. Rows may be shorter
// than the header when trailing cells are blank; Cell treats those as
// empty.
type Table struct {
	Header []string
	Rows   [][]string
}

// Col returns the index of the named header column, or -1 when the
// column is absent. Matching is exact and case-sensitive because the
// sheet header is part of the external contract.
func (t Table) Col(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value of the named column in the given row, or ""
// when the column is absent or the row is too short.
func (t Table) Cell(row []string, name string) string {
	i := t.Col(name)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Empty reports whether the table has no data rows.
func (t Table) Empty() bool { return len(t.Rows) == 0 }
