package report

import (
	"sort"
	"time"

	"github.com/iliyamo/weight-tracker/internal/model"
)

// Snapshot is the per-user "latest" view: most recent measurement
// date and weight, stored height, and the BMI derived from them.
// Pointer fields are nil when the user has no measurements (date,
// weight) or no height on file.
type Snapshot struct {
	UserID   string
	Date     *time.Time
	WeightKG *float64
	HeightCM *float64
	BMI      BMI
}

// Latest returns the most recent entry of a date-ascending slice, or
// nil when it is empty. Entries sharing the latest date resolve to
// the one inserted last, which stable date sorting has already placed
// at the end.
func Latest(entries []model.WeightEntry) *model.WeightEntry {
	if len(entries) == 0 {
		return nil
	}
	return &entries[len(entries)-1]
}

// SnapshotFor builds one user's snapshot from their date-ascending
// entries and their account record.
func SnapshotFor(u model.UserAccount, entries []model.WeightEntry) Snapshot {
	s := Snapshot{UserID: u.UserID, HeightCM: u.HeightCM}
	if last := Latest(entries); last != nil {
		d, w := last.Date, last.WeightKG
		s.Date = &d
		s.WeightKG = &w
		s.BMI = ComputeBMI(w, u.HeightCM)
	}
	return s
}

// Snapshots builds the administrator overview: one snapshot per
// account, ordered by user id. Entries must be date-ascending, as
// returned by the weights parser.
func Snapshots(users []model.UserAccount, entries []model.WeightEntry) []Snapshot {
	byUser := make(map[string][]model.WeightEntry, len(users))
	for _, e := range entries {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}
	out := make([]Snapshot, 0, len(users))
	for _, u := range users {
		out = append(out, SnapshotFor(u, byUser[u.UserID]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}
