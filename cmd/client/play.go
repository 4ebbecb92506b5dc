package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gamebalance/internal/client"
	"gamebalance/internal/defaults"
	"gamebalance/internal/timer"
	"gamebalance/internal/utils"

	"github.com/urfave/cli/v2"
)

func play(c *cli.Context) error {
	cl := clientFrom(c)
	w := c.App.Writer

	games, err := cl.ListGames(c.Context)
	if err != nil {
		return err
	}
	g, err := pickGame(games, c.Args().First())
	if err != nil {
		return err
	}

	settings, err := cl.GetSettings(c.Context)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return err
		}
		def := defaults.DefaultSettings()
		settings = &def
	}

	var opts []timer.Option
	if settings.BreakReminder {
		opts = append(opts, timer.WithBreakReminder(defaults.BreakIntervalMinutes*time.Minute))
	}

	p := &player{
		client: cl,
		timer:  timer.New(utils.SystemClock{}, opts...),
		game:   g,
		out:    w,
	}
	if err := p.timer.Select(g); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s selected. Enter: start/pause, r: reset, q: finish\n", g.Icon, g.Name)
	return p.loop(c.Context, os.Stdin)
}

func pickGame(games []defaults.Game, query string) (defaults.Game, error) {
	if query == "" {
		return defaults.Game{}, fmt.Errorf("choose a game: %s", gameSlugs(games))
	}
	for _, g := range games {
		if strings.EqualFold(g.Slug, query) || strings.EqualFold(g.Name, query) {
			return g, nil
		}
	}
	return defaults.Game{}, fmt.Errorf("unknown game %q, choose one of: %s", query, gameSlugs(games))
}

func gameSlugs(games []defaults.Game) string {
	slugs := make([]string, 0, len(games))
	for _, g := range games {
		slugs = append(slugs, g.Slug)
	}
	return strings.Join(slugs, ", ")
}

// player drives one play command: keyboard input toggles the timer and the
// server session follows it.
type player struct {
	client  *client.Client
	timer   *timer.Timer
	game    defaults.Game
	out     io.Writer
	outMu   sync.Mutex
	tracked bool
	stopRun context.CancelFunc
	runDone chan struct{}
}

func (p *player) loop(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-quit:
				return
			}
		}
	}()

	defer p.stopTicker()

	for {
		select {
		case <-ctx.Done():
			return p.finish(context.Background())
		case line, ok := <-lines:
			if !ok {
				return p.finish(ctx)
			}
			switch strings.ToLower(line) {
			case "":
				if err := p.toggle(ctx); err != nil {
					return err
				}
			case "r":
				if err := p.reset(ctx); err != nil {
					return err
				}
			case "q":
				return p.finish(ctx)
			default:
				p.println("Enter: start/pause, r: reset, q: finish")
			}
		}
	}
}

func (p *player) toggle(ctx context.Context) error {
	running, err := p.timer.Toggle()
	if err != nil {
		return err
	}
	if !running {
		p.stopTicker()
		p.printf("\nPaused at %s\n", p.timer.Snapshot().Display)
		return nil
	}

	if !p.tracked {
		if _, err := p.client.StartSession(ctx, p.game); err != nil {
			p.timer.Toggle()
			return err
		}
		p.tracked = true
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.stopRun, p.runDone = cancel, done
	go func() {
		defer close(done)
		p.timer.Run(runCtx, p.render)
	}()
	return nil
}

// reset discards the current timing. A session already recorded on the server is
// closed with zero duration, which keeps it out of the totals.
func (p *player) reset(ctx context.Context) error {
	p.stopTicker()
	p.timer.Reset()
	if p.tracked {
		p.tracked = false
		if err := p.client.EndSession(ctx, 0); err != nil {
			return err
		}
	}
	p.println("\nTimer reset.")
	return p.timer.Select(p.game)
}

func (p *player) finish(ctx context.Context) error {
	p.stopTicker()
	if p.timer.Running() {
		p.timer.Toggle()
	}
	seconds := p.timer.ElapsedSeconds()

	if !p.tracked {
		p.println("\nNothing to record.")
		return nil
	}
	p.tracked = false
	if err := p.client.EndSession(ctx, seconds); err != nil {
		return err
	}
	p.printf("\nSession finished: %s of %s.\n", timer.FormatDuration(time.Duration(seconds)*time.Second), p.game.Name)
	return nil
}

func (p *player) render(s timer.Snapshot) {
	const width = 20
	filled := int(s.Progress * width)
	bar := strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
	p.printf("\r%s [%s]", s.Display, bar)
	if s.BreakDue {
		p.printf("\n%d minutes played. Time for a short break.\n", s.ElapsedSeconds/60)
	}
}

// printf and println serialize writes from the key loop and the ticker.
func (p *player) printf(format string, args ...interface{}) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}

func (p *player) println(args ...interface{}) {
	p.outMu.Lock()
	defer p.outMu.Unlock()
	fmt.Fprintln(p.out, args...)
}

// stopTicker cancels the running ticker and waits for it, so no tick is
// rendered after the caller starts writing.
func (p *player) stopTicker() {
	if p.stopRun == nil {
		return
	}
	p.stopRun()
	<-p.runDone
	p.stopRun, p.runDone = nil, nil
}
