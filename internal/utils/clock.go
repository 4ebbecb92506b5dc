package utils

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go gamebalance/internal/utils Clock
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
