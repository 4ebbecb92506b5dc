// Package timer implements the play-session stopwatch. Elapsed time is derived
// from clock readings (accumulated + now - segment start), so pauses and long
// sessions do not drift.
package timer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gamebalance/internal/defaults"
	"gamebalance/internal/utils"
)

var (
	ErrNoGameSelected = errors.New("select a game first")
	ErrRunning        = errors.New("timer is running")
)

// Snapshot is the timer state as seen at one instant.
type Snapshot struct {
	Game           *defaults.Game
	Running        bool
	ElapsedSeconds int64
	Display        string
	// Progress is elapsed against the two-hour ceiling, clamped to [0, 1].
	Progress float64
	// BreakDue is set on the first snapshot after each break interval is crossed.
	BreakDue bool
}

type Option func(*Timer)

// WithBreakReminder flags BreakDue every interval of play. Zero disables it.
func WithBreakReminder(interval time.Duration) Option {
	return func(t *Timer) { t.breakInterval = interval }
}

// WithTickInterval sets how often Run delivers snapshots.
func WithTickInterval(interval time.Duration) Option {
	return func(t *Timer) { t.tick = interval }
}

type Timer struct {
	mu            sync.Mutex
	clock         utils.Clock
	game          *defaults.Game
	running       bool
	accumulated   time.Duration
	segmentStart  time.Time
	breakInterval time.Duration
	breaksFired   int64
	tick          time.Duration
}

func New(clock utils.Clock, opts ...Option) *Timer {
	t := &Timer{
		clock: clock,
		tick:  time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Select chooses the game to track. It is rejected while the timer runs.
func (t *Timer) Select(game defaults.Game) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return ErrRunning
	}
	g := game
	t.game = &g
	return nil
}

// Toggle starts a stopped timer or pauses a running one and reports whether it now runs.
func (t *Timer) Toggle() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if t.running {
		t.accumulated += now.Sub(t.segmentStart)
		t.running = false
		return false, nil
	}

	if t.game == nil {
		return false, ErrNoGameSelected
	}
	t.segmentStart = now
	t.running = true
	return true, nil
}

// Reset stops the timer, zeroes elapsed time and clears the selection.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = false
	t.accumulated = 0
	t.segmentStart = time.Time{}
	t.game = nil
	t.breaksFired = 0
}

func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// ElapsedSeconds returns the whole seconds played so far.
func (t *Timer) ElapsedSeconds() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return int64(t.elapsedLocked() / time.Second)
}

func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := t.elapsedLocked()
	seconds := int64(elapsed / time.Second)

	snap := Snapshot{
		Running:        t.running,
		ElapsedSeconds: seconds,
		Display:        FormatDuration(elapsed),
		Progress:       Progress(seconds),
	}
	if t.game != nil {
		g := *t.game
		snap.Game = &g
	}

	if t.breakInterval > 0 {
		crossed := int64(elapsed / t.breakInterval)
		if crossed > t.breaksFired {
			t.breaksFired = crossed
			snap.BreakDue = true
		}
	}
	return snap
}

// Run delivers a snapshot every tick until ctx is cancelled or the timer stops.
// The snapshot that observes the stop is delivered before Run returns.
func (t *Timer) Run(ctx context.Context, onTick func(Snapshot)) {
	ticker := time.NewTicker(t.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := t.Snapshot()
			onTick(snap)
			if !snap.Running {
				return
			}
		}
	}
}

func (t *Timer) elapsedLocked() time.Duration {
	elapsed := t.accumulated
	if t.running {
		elapsed += t.clock.Now().Sub(t.segmentStart)
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// FormatDuration renders d as hh:mm:ss, truncated to whole seconds.
func FormatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Progress returns seconds against the two-hour ceiling, clamped to [0, 1].
func Progress(seconds int64) float64 {
	p := float64(seconds) / float64(defaults.TimerCeilingSeconds)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
