package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/weight-tracker/internal/model"
)

func TestLatest(t *testing.T) {
	assert.Nil(t, Latest(nil))

	entries := []model.WeightEntry{
		entry(day(2024, 1, 1), 60),
		entry(day(2024, 5, 1), 62),
		entry(day(2024, 5, 1), 63), // same date, inserted later wins
	}
	last := Latest(entries)
	require.NotNil(t, last)
	assert.Equal(t, 63.0, last.WeightKG)
}

func TestSnapshots(t *testing.T) {
	users := []model.UserAccount{
		{UserID: "bob", HeightCM: nil},
		{UserID: "alice", HeightCM: ptr(175)},
		{UserID: "carol", HeightCM: ptr(160)},
	}
	entries := []model.WeightEntry{
		{UserID: "alice", Date: day(2024, 4, 1), WeightKG: 68},
		{UserID: "alice", Date: day(2024, 5, 1), WeightKG: 70},
		{UserID: "bob", Date: day(2024, 5, 2), WeightKG: 80},
	}

	snaps := Snapshots(users, entries)
	require.Len(t, snaps, 3)

	// Ordered by user id.
	assert.Equal(t, "alice", snaps[0].UserID)
	assert.Equal(t, "bob", snaps[1].UserID)
	assert.Equal(t, "carol", snaps[2].UserID)

	// alice: full snapshot with BMI.
	require.NotNil(t, snaps[0].Date)
	assert.Equal(t, day(2024, 5, 1), *snaps[0].Date)
	assert.Equal(t, 70.0, *snaps[0].WeightKG)
	assert.Equal(t, "22.9", snaps[0].BMI.String())

	// bob: measurement but no height -> BMI unset.
	require.NotNil(t, snaps[1].WeightKG)
	assert.Equal(t, "-", snaps[1].BMI.String())

	// carol: height but no measurements.
	assert.Nil(t, snaps[2].Date)
	assert.Nil(t, snaps[2].WeightKG)
	require.NotNil(t, snaps[2].HeightCM)
	assert.Equal(t, "-", snaps[2].BMI.String())
}
