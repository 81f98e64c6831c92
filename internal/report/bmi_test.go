package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestComputeBMI(t *testing.T) {
	cases := []struct {
		name   string
		weight float64
		height *float64
		want   string
	}{
		{"normal", 70, ptr(175), "22.9"}, // 70 / 1.75² = 22.857… -> 22.9
		{"unset height", 70, nil, "-"},
		{"zero height", 70, ptr(0), "-"},
		{"negative height", 70, ptr(-5), "-"},
		{"exact decimal", 80, ptr(200), "20.0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := ComputeBMI(tc.weight, tc.height)
			assert.Equal(t, tc.want, b.String())
			assert.Equal(t, tc.want != "-", b.Set)
		})
	}
}
