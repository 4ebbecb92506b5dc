package stats

import (
	"time"

	"gamebalance/internal/app/session"
)

const dayKeyLayout = "2006-01-02"

type Stats struct {
	TodayMinutes  int            `json:"todayMinutes"`
	WeeklyTotal   int            `json:"weeklyTotal"`
	DailyData     map[string]int `json:"dailyData"`
	TotalSessions int            `json:"totalSessions"`
}

// Aggregate computes today/this-week totals from a user's sessions as seen at now.
// Calendar days are taken in now's location and the week starts on Sunday.
// Only finished sessions with a positive duration that started by now are
// summed, so today is always part of the week. Seconds are summed per bucket
// and reported in whole minutes.
func Aggregate(sessions []*session.Session, now time.Time) Stats {
	loc := now.Location()
	today := startOfDay(now)
	weekStart := WeekStart(now)

	var todaySeconds, weekSeconds int64
	dailySeconds := make(map[string]int64)
	total := 0

	for _, s := range sessions {
		if s == nil || s.IsActive {
			continue
		}
		total++

		if s.DurationSeconds <= 0 {
			continue
		}

		started := s.StartTime.In(loc)
		if started.After(now) {
			continue
		}
		day := startOfDay(started)

		if day.Equal(today) {
			todaySeconds += s.DurationSeconds
		}

		if !day.Before(weekStart) {
			weekSeconds += s.DurationSeconds
			dailySeconds[day.Format(dayKeyLayout)] += s.DurationSeconds
		}
	}

	daily := make(map[string]int, len(dailySeconds))
	for k, v := range dailySeconds {
		daily[k] = toMinutes(v)
	}

	return Stats{
		TodayMinutes:  toMinutes(todaySeconds),
		WeeklyTotal:   toMinutes(weekSeconds),
		DailyData:     daily,
		TotalSessions: total,
	}
}

// WeekStart returns midnight of the most recent Sunday at or before t, in t's location.
func WeekStart(t time.Time) time.Time {
	today := startOfDay(t)
	return today.AddDate(0, 0, -int(today.Weekday()))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func toMinutes(seconds int64) int {
	return int(seconds / 60)
}
