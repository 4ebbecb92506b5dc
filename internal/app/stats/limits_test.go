package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		minutes   int
		limit     int
		percent   float64
		display   float64
		remaining int
		exceeded  bool
		level     Level
	}{
		{"empty", 0, 120, 0, 0, 120, false, LevelLow},
		{"under half", 45, 120, 37.5, 37.5, 75, false, LevelLow},
		{"moderate", 60, 120, 50, 50, 60, false, LevelModerate},
		{"high", 96, 120, 80, 80, 24, false, LevelHigh},
		{"at limit", 120, 120, 100, 100, 0, false, LevelHigh},
		{"over limit", 180, 120, 150, 100, 0, true, LevelHigh},
		{"no limit", 0, 0, 100, 100, 0, false, LevelHigh},
		{"no limit with play", 10, 0, 100, 100, 0, true, LevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Progress(tt.minutes, tt.limit)
			assert.Equal(t, tt.minutes, p.Minutes)
			assert.InDelta(t, tt.percent, p.Percent, 0.0001)
			assert.InDelta(t, tt.display, p.DisplayPercent, 0.0001)
			assert.Equal(t, tt.remaining, p.RemainingMinutes)
			assert.Equal(t, tt.exceeded, p.Exceeded)
			assert.Equal(t, tt.level, p.Level)
		})
	}
}
