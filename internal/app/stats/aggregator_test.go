package stats

import (
	"fmt"
	"testing"
	"time"

	"gamebalance/internal/app/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 2025-04-16, 18:00 UTC.
var wednesday = time.Date(2025, 4, 16, 18, 0, 0, 0, time.UTC)

func finished(start time.Time, minutes int) *session.Session {
	end := start.Add(time.Duration(minutes) * time.Minute)
	return &session.Session{
		ID:              fmt.Sprintf("session:user-1:%d", start.UnixMilli()),
		UserID:          "user-1",
		StartTime:       start,
		EndTime:         &end,
		DurationSeconds: int64(minutes * 60),
	}
}

func active(start time.Time) *session.Session {
	return &session.Session{
		ID:        fmt.Sprintf("session:user-1:%d", start.UnixMilli()),
		UserID:    "user-1",
		StartTime: start,
		IsActive:  true,
	}
}

func TestAggregateWeekExample(t *testing.T) {
	sessions := []*session.Session{
		finished(time.Date(2025, 4, 14, 20, 0, 0, 0, time.UTC), 75),
		finished(time.Date(2025, 4, 15, 19, 0, 0, 0, time.UTC), 120),
		finished(time.Date(2025, 4, 16, 9, 0, 0, 0, time.UTC), 45),
		active(time.Date(2025, 4, 16, 17, 30, 0, 0, time.UTC)),
	}

	st := Aggregate(sessions, wednesday)

	assert.Equal(t, 45, st.TodayMinutes)
	assert.Equal(t, 240, st.WeeklyTotal)
	assert.Equal(t, 3, st.TotalSessions)
	assert.Equal(t, map[string]int{
		"2025-04-14": 75,
		"2025-04-15": 120,
		"2025-04-16": 45,
	}, st.DailyData)
}

func TestAggregateWeekBoundary(t *testing.T) {
	sunday := time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 4, 12, 23, 59, 0, 0, time.UTC)

	st := Aggregate([]*session.Session{
		finished(sunday, 30),
		finished(saturday, 50),
	}, wednesday)

	assert.Equal(t, 30, st.WeeklyTotal)
	assert.Equal(t, map[string]int{"2025-04-13": 30}, st.DailyData)
	assert.Equal(t, 0, st.TodayMinutes)
	assert.Equal(t, 2, st.TotalSessions)
}

func TestAggregateOnSunday(t *testing.T) {
	now := time.Date(2025, 4, 13, 10, 0, 0, 0, time.UTC)

	st := Aggregate([]*session.Session{
		finished(time.Date(2025, 4, 13, 8, 0, 0, 0, time.UTC), 20),
		finished(time.Date(2025, 4, 12, 8, 0, 0, 0, time.UTC), 40),
	}, now)

	assert.Equal(t, 20, st.TodayMinutes)
	assert.Equal(t, 20, st.WeeklyTotal)
}

func TestAggregateExcludesActiveAndZeroDuration(t *testing.T) {
	longRunning := active(wednesday.Add(-10 * time.Hour))
	zero := finished(wednesday.Add(-time.Hour), 0)

	st := Aggregate([]*session.Session{longRunning, zero, nil}, wednesday)

	assert.Zero(t, st.TodayMinutes)
	assert.Zero(t, st.WeeklyTotal)
	assert.Empty(t, st.DailyData)
	assert.NotNil(t, st.DailyData)
	assert.Equal(t, 1, st.TotalSessions)
}

func TestAggregateCountsOldSessionsInTotal(t *testing.T) {
	st := Aggregate([]*session.Session{
		finished(wednesday.AddDate(0, -2, 0), 60),
		finished(wednesday.AddDate(-1, 0, 0), 60),
	}, wednesday)

	assert.Zero(t, st.WeeklyTotal)
	assert.Equal(t, 2, st.TotalSessions)
}

func TestAggregateSumsSecondsBeforeRounding(t *testing.T) {
	a := finished(wednesday.Add(-3*time.Hour), 0)
	a.DurationSeconds = 90
	b := finished(wednesday.Add(-2*time.Hour), 0)
	b.DurationSeconds = 90

	st := Aggregate([]*session.Session{a, b}, wednesday)

	assert.Equal(t, 3, st.TodayMinutes)
	assert.Equal(t, 3, st.WeeklyTotal)
}

func TestAggregateUsesLocationOfNow(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2025, 4, 16, 8, 0, 0, 0, loc)
	// 2025-04-15 22:30 UTC is 07:30 on the 16th in UTC+9.
	s := finished(time.Date(2025, 4, 15, 22, 30, 0, 0, time.UTC), 25)

	st := Aggregate([]*session.Session{s}, now)

	assert.Equal(t, 25, st.TodayMinutes)
	assert.Equal(t, map[string]int{"2025-04-16": 25}, st.DailyData)
}

func TestAggregateIsDeterministic(t *testing.T) {
	sessions := []*session.Session{
		finished(time.Date(2025, 4, 14, 20, 0, 0, 0, time.UTC), 75),
		finished(time.Date(2025, 4, 16, 9, 0, 0, 0, time.UTC), 45),
		active(time.Date(2025, 4, 16, 17, 30, 0, 0, time.UTC)),
	}

	first := Aggregate(sessions, wednesday)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Aggregate(sessions, wednesday))
	}
}

func TestWeekStart(t *testing.T) {
	cases := map[time.Time]time.Time{
		wednesday: time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC):    time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 19, 23, 59, 59, 0, time.UTC): time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC):    time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		assert.True(t, want.Equal(WeekStart(in)), "WeekStart(%s) = %s, want %s", in, WeekStart(in), want)
	}
}

func TestAggregateIgnoresSessionsStartingAfterNow(t *testing.T) {
	now := time.Date(2025, 4, 16, 10, 0, 0, 0, time.UTC)
	sessions := []*session.Session{
		finished(time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC), 60),
		finished(time.Date(2025, 4, 16, 8, 0, 0, 0, time.UTC), 30),
	}

	st := Aggregate(sessions, now)

	assert.Equal(t, 30, st.TodayMinutes)
	assert.Equal(t, 30, st.WeeklyTotal)
	assert.Equal(t, map[string]int{"2025-04-16": 30}, st.DailyData)
	assert.Equal(t, 2, st.TotalSessions)
}
