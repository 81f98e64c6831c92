package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/iliyamo/weight-tracker/internal/model"
)

// Period is a named trailing time window used to filter entries for
// charting.
type Period string

const (
	OneMonth    Period = "1m"
	ThreeMonths Period = "3m"
	AllTime     Period = "all"
)

// ParsePeriod maps the query-parameter form to a Period. An empty
// string defaults to AllTime.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "", string(AllTime):
		return AllTime, nil
	case string(OneMonth):
		return OneMonth, nil
	case string(ThreeMonths):
		return ThreeMonths, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// FilterPeriod keeps entries dated on or after the window's lower
// bound relative to now and returns them sorted ascending by date
// regardless of input order. AllTime keeps everything. Empty input
// yields empty output.
func FilterPeriod(entries []model.WeightEntry, p Period, now time.Time) []model.WeightEntry {
	out := make([]model.WeightEntry, 0, len(entries))
	var lower time.Time
	switch p {
	case OneMonth:
		lower = addMonths(now, -1)
	case ThreeMonths:
		lower = addMonths(now, -3)
	}
	for _, e := range entries {
		if p == AllTime || !e.Date.Before(lower) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// addMonths shifts a date by whole calendar months, clamping the day
// to the last valid day of the target month (one month before
// March 31 is the end of February). time.AddDate would normalize the
// overflow into the following month instead.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
