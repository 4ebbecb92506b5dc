package stats

import "math"

type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// LimitProgress is a display-side view of a total against a configured limit.
type LimitProgress struct {
	Minutes      int     `json:"minutes"`
	LimitMinutes int     `json:"limitMinutes"`
	Percent      float64 `json:"percent"`
	// DisplayPercent is Percent clamped to [0, 100] for progress bars.
	DisplayPercent   float64 `json:"displayPercent"`
	RemainingMinutes int     `json:"remainingMinutes"`
	Exceeded         bool    `json:"exceeded"`
	Level            Level   `json:"level"`
}

// Progress derives the limit view for minutes against limitMinutes.
// Percent keeps the true ratio so totals above the limit are still visible.
// A non-positive limit is treated as already reached.
func Progress(minutes, limitMinutes int) LimitProgress {
	p := LimitProgress{
		Minutes:      minutes,
		LimitMinutes: limitMinutes,
	}

	if limitMinutes <= 0 {
		p.Percent = 100
	} else {
		p.Percent = float64(minutes) / float64(limitMinutes) * 100
	}

	p.DisplayPercent = math.Max(0, math.Min(p.Percent, 100))
	p.RemainingMinutes = limitMinutes - minutes
	if p.RemainingMinutes < 0 {
		p.RemainingMinutes = 0
	}
	p.Exceeded = minutes > 0 && minutes > limitMinutes

	switch {
	case p.Percent < 50:
		p.Level = LevelLow
	case p.Percent < 80:
		p.Level = LevelModerate
	default:
		p.Level = LevelHigh
	}
	return p
}
