package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableLookup(t *testing.T) {
	tbl := Table{
		Header: []string{"user_id", "password_hash", "height_cm"},
		Rows:   [][]string{{"alice", "h1", "170"}, {"bob", "h2"}},
	}
	assert.Equal(t, 2, tbl.Col("height_cm"))
	assert.Equal(t, -1, tbl.Col("HEIGHT_CM")) // case-sensitive
	assert.Equal(t, -1, tbl.Col("missing"))

	assert.Equal(t, "170", tbl.Cell(tbl.Rows[0], "height_cm"))
	assert.Equal(t, "", tbl.Cell(tbl.Rows[1], "height_cm")) // short row
	assert.Equal(t, "", tbl.Cell(tbl.Rows[0], "missing"))

	assert.False(t, tbl.Empty())
	assert.True(t, Table{}.Empty())
}

func TestRowEncoder(t *testing.T) {
	enc := NewRowEncoder("users", []string{"user_id", "note", "password_hash", "height_cm"})

	row := enc.Encode(map[string]string{
		"user_id":       "alice",
		"password_hash": "h1",
		"height_cm":     "172.5",
		"unknown_field": "dropped",
	})
	// Positional per header; the unmapped "note" column stays empty.
	assert.Equal(t, []string{"alice", "", "h1", "172.5"}, row)

	require.NoError(t, enc.Require("user_id", "password_hash"))

	err := enc.Require("user_id", "created_at")
	require.Error(t, err)
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "created_at", serr.Column)
	assert.Equal(t, "users", serr.Table)
}

func TestColLabel(t *testing.T) {
	for i, want := range map[int]string{0: "A", 2: "C", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA"} {
		assert.Equal(t, want, colLabel(i))
	}
}
