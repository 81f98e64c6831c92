package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/weight-tracker/internal/model"
	"github.com/iliyamo/weight-tracker/internal/parse"
	"github.com/iliyamo/weight-tracker/internal/sheet"
)

// Weight bounds enforced at write time. Reads tolerate whatever is
// already in the sheet.
const (
	minWeightKG = 30
	maxWeightKG = 200
)

// WeightRepo reads measurements through the cache and appends
// validated entries through the gateway.
type WeightRepo struct {
	Store sheet.Store
	Cache *Cache
}

func NewWeightRepo(store sheet.Store, cache *Cache) *WeightRepo {
	return &WeightRepo{Store: store, Cache: cache}
}

// All returns every entry, date-ascending.
func (r *WeightRepo) All(ctx context.Context) ([]model.WeightEntry, error) {
	return r.Cache.Weights(ctx)
}

// ForUser returns one user's entries, date-ascending.
func (r *WeightRepo) ForUser(ctx context.Context, id string) ([]model.WeightEntry, error) {
	id = parse.NormalizeID(id)
	all, err := r.Cache.Weights(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.WeightEntry, 0, len(all))
	for _, e := range all {
		if e.UserID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

// Add validates and appends one measurement. The date must be a real
// calendar date and the weight a number in [30,200]; violations come
// back as ValidationError values for inline display. The appended
// row is the fixed 5-field layout (year, month, day, user_id, weight)
// with zero-padded date components.
func (r *WeightRepo) Add(ctx context.Context, id, year, month, day, weight string) (model.WeightEntry, error) {
	date, err := parse.ComposeDate(year, month, day)
	if err != nil {
		return model.WeightEntry{}, validationf("invalid date")
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
	if err != nil {
		return model.WeightEntry{}, validationf("weight must be a number")
	}
	// Negated form so NaN, which fails every comparison, is rejected
	// along with out-of-range and infinite values.
	if !(w >= minWeightKG && w <= maxWeightKG) {
		return model.WeightEntry{}, validationf(fmt.Sprintf("weight must be between %d and %d kg", minWeightKG, maxWeightKG))
	}
	id = parse.NormalizeID(id)

	row := []string{
		fmt.Sprintf("%04d", date.Year()),
		fmt.Sprintf("%02d", int(date.Month())),
		fmt.Sprintf("%02d", date.Day()),
		id,
		strconv.FormatFloat(w, 'f', -1, 64),
	}
	if err := r.Store.Append(ctx, weightsTable, row); err != nil {
		return model.WeightEntry{}, err
	}
	r.Cache.Invalidate()
	return model.WeightEntry{UserID: id, Date: date, WeightKG: w}, nil
}
