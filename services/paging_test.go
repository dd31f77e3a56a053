package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFoodFilterNormalize(t *testing.T) {
	tests := []struct {
		name               string
		take, skip         int
		wantTake, wantSkip int
	}{
		{"defaults", 0, 0, 20, 0},
		{"negative take", -5, 0, 20, 0},
		{"negative skip", 10, -3, 10, 0},
		{"capped take", 500, 40, 100, 40},
		{"in range untouched", 50, 10, 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := FoodFilter{Take: tt.take, Skip: tt.skip}
			filter.Normalize()
			assert.Equal(t, tt.wantTake, filter.Take)
			assert.Equal(t, tt.wantSkip, filter.Skip)
		})
	}
}

func TestProgressFilterNormalize(t *testing.T) {
	filter := ProgressFilter{Take: 500, Skip: -1}
	filter.Normalize()
	assert.Equal(t, 100, filter.Take)
	assert.Equal(t, 0, filter.Skip)
}

func TestStartOfDay(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	late := time.Date(2026, 8, 28, 23, 30, 0, 0, loc)

	day := startOfDay(late)
	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.August, day.Month())
	assert.Equal(t, 28, day.Day())
	assert.Zero(t, day.Hour())
	assert.Equal(t, loc, day.Location(), "day boundary must stay in the caller's zone")

	// a timestamp later the same local day is never before that boundary
	assert.False(t, late.Before(day))
}
