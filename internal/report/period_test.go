package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/weight-tracker/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(d time.Time, w float64) model.WeightEntry {
	return model.WeightEntry{UserID: "alice", Date: d, WeightKG: w}
}

func TestFilterPeriod(t *testing.T) {
	entries := []model.WeightEntry{
		entry(day(2024, 1, 1), 60),
		entry(day(2024, 2, 15), 61),
		entry(day(2024, 5, 1), 62),
	}
	now := day(2024, 5, 10)

	t.Run("one month", func(t *testing.T) {
		got := FilterPeriod(entries, OneMonth, now)
		require.Len(t, got, 1)
		assert.Equal(t, day(2024, 5, 1), got[0].Date)
	})

	t.Run("three months", func(t *testing.T) {
		got := FilterPeriod(entries, ThreeMonths, now)
		require.Len(t, got, 2)
		assert.Equal(t, day(2024, 2, 15), got[0].Date)
		assert.Equal(t, day(2024, 5, 1), got[1].Date)
	})

	t.Run("all time ascending", func(t *testing.T) {
		shuffled := []model.WeightEntry{entries[2], entries[0], entries[1]}
		got := FilterPeriod(shuffled, AllTime, now)
		require.Len(t, got, 3)
		assert.Equal(t, day(2024, 1, 1), got[0].Date)
		assert.Equal(t, day(2024, 5, 1), got[2].Date)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, FilterPeriod(nil, OneMonth, now))
	})

	t.Run("lower bound inclusive", func(t *testing.T) {
		es := []model.WeightEntry{entry(day(2024, 4, 10), 60)}
		got := FilterPeriod(es, OneMonth, day(2024, 5, 10))
		assert.Len(t, got, 1)
	})
}

func TestAddMonthsClamping(t *testing.T) {
	cases := []struct {
		name   string
		in     time.Time
		months int
		want   time.Time
	}{
		{"plain shift", day(2024, 5, 10), -1, day(2024, 4, 10)},
		{"clamp to leap february", day(2024, 3, 31), -1, day(2024, 2, 29)},
		{"clamp to short month", day(2024, 3, 31), -3, day(2023, 12, 31)},
		{"clamp may to april", day(2024, 5, 31), -1, day(2024, 4, 30)},
		{"year boundary", day(2024, 1, 15), -3, day(2023, 10, 15)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, addMonths(tc.in, tc.months))
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"": AllTime, "all": AllTime, "1m": OneMonth, "3m": ThreeMonths} {
		got, err := ParsePeriod(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePeriod("6m")
	assert.Error(t, err)
}
