// Package report derives view data from parsed records: BMI values,
// trailing time windows for charting, and per-user latest snapshots
// for the administrator overview.
package report

import (
	"math"
	"strconv"
)

// BMI is a computed body-mass index, or an explicit unset value when
// no usable height exists. It never carries an error: every bad
// input collapses to unset, and both the per-user and the admin
// aggregate views rely on exactly that behavior.
type BMI struct {
	Value float64
	Set   bool
}

// ComputeBMI returns weight / (height/100)² rounded to one decimal.
// A nil or non-positive height yields the unset value.
func ComputeBMI(weightKG float64, heightCM *float64) BMI {
	if heightCM == nil || *heightCM <= 0 {
		return BMI{}
	}
	m := *heightCM / 100
	return BMI{Value: math.Round(weightKG/(m*m)*10) / 10, Set: true}
}

// String renders the value with one decimal ("22.9"), or "-" when
// unset, matching how clients display it.
func (b BMI) String() string {
	if !b.Set {
		return "-"
	}
	return strconv.FormatFloat(b.Value, 'f', 1, 64)
}
