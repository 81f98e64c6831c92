package parse

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/weight-tracker/internal/model"
	"github.com/iliyamo/weight-tracker/internal/sheet"
)

// Weights converts the raw `weights` table into typed entries sorted
// ascending by date. Rows whose date components do not form a real
// calendar date, or whose weight does not parse as a number, are
// silently dropped; the skipped count is returned so callers can log
// it, but it is never surfaced to users. The sort is stable so that
// same-date entries keep sheet insertion order, which is the
// tie-break for "latest".
func Weights(t sheet.Table) ([]model.WeightEntry, int) {
	entries := make([]model.WeightEntry, 0, len(t.Rows))
	skipped := 0
	for _, row := range t.Rows {
		date, err := ComposeDate(t.Cell(row, "year"), t.Cell(row, "month"), t.Cell(row, "day"))
		if err != nil {
			skipped++
			continue
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(t.Cell(row, "weight")), 64)
		if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
			skipped++
			continue
		}
		entries = append(entries, model.WeightEntry{
			UserID:   NormalizeID(t.Cell(row, "user_id")),
			Date:     date,
			WeightKG: w,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, skipped
}

// ComposeDate builds a calendar date from separate year/month/day
// cells. The components must be integers forming a valid Gregorian
// date with a positive year; time.Date normalizes overflow (month 13,
// February 31), so the result is compared back against the inputs to
// reject it.
func ComposeDate(year, month, day string) (time.Time, error) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y < 1 {
		return time.Time{}, fmt.Errorf("invalid year %q", year)
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q", month)
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q", day)
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return time.Time{}, fmt.Errorf("no such date %04d-%02d-%02d", y, m, d)
	}
	return t, nil
}
