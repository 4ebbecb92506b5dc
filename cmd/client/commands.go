package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gamebalance/internal/app/stats"
	"gamebalance/internal/app/user"
	"gamebalance/internal/client"
	"gamebalance/internal/defaults"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "signup",
			Usage: "create an account",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Required: true},
				&cli.StringFlag{Name: "username", Required: true},
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "password", Required: true},
			},
			Action: signup,
		},
		{
			Name:  "signin",
			Usage: "sign in and remember the access token",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "password", Required: true},
			},
			Action: signin,
		},
		{
			Name:   "signout",
			Usage:  "forget the access token and return to demo mode",
			Action: signout,
		},
		{
			Name:   "profile",
			Usage:  "show the profile",
			Action: showProfile,
			Subcommands: []*cli.Command{
				{
					Name:  "edit",
					Usage: "change profile fields; omitted fields are kept",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "name"},
						&cli.StringFlag{Name: "username"},
						&cli.StringFlag{Name: "email"},
						&cli.StringFlag{Name: "phone"},
						&cli.StringFlag{Name: "birthdate"},
						&cli.StringFlag{Name: "image", Usage: "profile image URL"},
					},
					Action: editProfile,
				},
			},
		},
		{
			Name:   "settings",
			Usage:  "show limits and toggles",
			Action: showSettings,
			Subcommands: []*cli.Command{
				{
					Name:  "set",
					Usage: "change settings; omitted values keep their current value",
					Flags: []cli.Flag{
						&cli.IntFlag{Name: "daily", Usage: "daily limit in minutes"},
						&cli.IntFlag{Name: "weekly", Usage: "weekly limit in minutes"},
						&cli.BoolFlag{Name: "break-reminder"},
						&cli.BoolFlag{Name: "limit-warning"},
						&cli.BoolFlag{Name: "sound"},
						&cli.BoolFlag{Name: "night-mode"},
						&cli.BoolFlag{Name: "vibration"},
					},
					Action: setSettings,
				},
			},
		},
		{
			Name:   "games",
			Usage:  "list the game catalog",
			Action: listGames,
		},
		{
			Name:   "sessions",
			Usage:  "list recorded sessions",
			Action: listSessions,
		},
		{
			Name:   "stats",
			Usage:  "show today and this week against your limits",
			Action: showStats,
		},
		{
			Name:      "play",
			Usage:     "time a play session",
			ArgsUsage: "<game slug or name>",
			Action:    play,
		},
	}
}

// fallback returns a demo-mode client after telling the user their token was rejected.
func fallback(c *cli.Context, err error) (*client.Client, error) {
	if !errors.Is(err, client.ErrUnauthorized) {
		return nil, err
	}
	fmt.Fprintf(c.App.ErrWriter, "%v; showing demo data\n", err)
	return client.New("", nil, nil, zap.NewNop()), nil
}

func signup(c *cli.Context) error {
	ident, err := clientFrom(c).Signup(c.Context, client.SignupInput{
		Name:     c.String("name"),
		Username: c.String("username"),
		Email:    c.String("email"),
		Password: c.String("password"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Account created for %s (%s). Sign in to start tracking.\n", ident.Username, ident.Email)
	return nil
}

func signin(c *cli.Context) error {
	ident, err := clientFrom(c).Signin(c.Context, c.String("email"), c.String("password"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Signed in as %s.\n", ident.Username)
	return nil
}

func signout(c *cli.Context) error {
	if err := clientFrom(c).Signout(); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "Signed out. Running in demo mode.")
	return nil
}

func showProfile(c *cli.Context) error {
	cl := clientFrom(c)
	profile, err := cl.GetProfile(c.Context)
	if err != nil {
		if cl, err = fallback(c, err); err != nil {
			return err
		}
		profile, _ = cl.GetProfile(c.Context)
	}

	w := c.App.Writer
	if cl.Demo() {
		fmt.Fprintln(w, "(demo mode)")
	}
	fmt.Fprintf(w, "Name:      %s\n", profile.Name)
	fmt.Fprintf(w, "Username:  %s\n", profile.Username)
	fmt.Fprintf(w, "Email:     %s\n", profile.Email)
	printOptional(w, "Phone:     ", profile.Phone)
	printOptional(w, "Birthdate: ", profile.Birthdate)
	printOptional(w, "Image:     ", profile.ProfileImage)
	return nil
}

func editProfile(c *cli.Context) error {
	var update user.ProfileUpdate
	set := func(flag string) *string {
		if !c.IsSet(flag) {
			return nil
		}
		v := c.String(flag)
		return &v
	}
	update.Name = set("name")
	update.Username = set("username")
	update.Email = set("email")
	update.Phone = set("phone")
	update.Birthdate = set("birthdate")
	update.ProfileImage = set("image")

	cl := clientFrom(c)
	if err := cl.UpdateProfile(c.Context, update); err != nil {
		return err
	}
	if cl.Demo() {
		fmt.Fprintln(c.App.Writer, "Demo mode: profile changes are not saved.")
		return nil
	}
	fmt.Fprintln(c.App.Writer, "Profile updated.")
	return nil
}

func showSettings(c *cli.Context) error {
	cl := clientFrom(c)
	settings, err := cl.GetSettings(c.Context)
	if err != nil {
		if cl, err = fallback(c, err); err != nil {
			return err
		}
		settings, _ = cl.GetSettings(c.Context)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Daily limit:     %s\n", formatMinutes(settings.DailyLimitMinutes))
	fmt.Fprintf(w, "Weekly limit:    %s\n", formatMinutes(settings.WeeklyLimitMinutes))
	fmt.Fprintf(w, "Break reminder:  %s\n", onOff(settings.BreakReminder))
	fmt.Fprintf(w, "Limit warning:   %s\n", onOff(settings.LimitWarning))
	fmt.Fprintf(w, "Sound:           %s\n", onOff(settings.Sound))
	fmt.Fprintf(w, "Night mode:      %s\n", onOff(settings.NightMode))
	fmt.Fprintf(w, "Vibration:       %s\n", onOff(settings.Vibration))
	return nil
}

func setSettings(c *cli.Context) error {
	cl := clientFrom(c)
	current, err := cl.GetSettings(c.Context)
	if err != nil {
		return err
	}

	// Settings are replaced wholesale, so unspecified flags carry the current values.
	next := *current
	if c.IsSet("daily") {
		next.DailyLimitMinutes = c.Int("daily")
	}
	if c.IsSet("weekly") {
		next.WeeklyLimitMinutes = c.Int("weekly")
	}
	if next.DailyLimitMinutes < 0 || next.WeeklyLimitMinutes < 0 {
		return errors.New("limits must not be negative")
	}
	for flag, dst := range map[string]*bool{
		"break-reminder": &next.BreakReminder,
		"limit-warning":  &next.LimitWarning,
		"sound":          &next.Sound,
		"night-mode":     &next.NightMode,
		"vibration":      &next.Vibration,
	} {
		if c.IsSet(flag) {
			*dst = c.Bool(flag)
		}
	}

	if err := cl.UpdateSettings(c.Context, next); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "Settings saved.")
	return nil
}

func listGames(c *cli.Context) error {
	games, err := clientFrom(c).ListGames(c.Context)
	if err != nil {
		return err
	}
	for _, g := range games {
		fmt.Fprintf(c.App.Writer, "%s  %-16s %s\n", g.Icon, g.Slug, g.Name)
	}
	return nil
}

func listSessions(c *cli.Context) error {
	cl := clientFrom(c)
	sessions, err := cl.GetSessions(c.Context)
	if err != nil {
		if cl, err = fallback(c, err); err != nil {
			return err
		}
		sessions, _ = cl.GetSessions(c.Context)
	}

	w := c.App.Writer
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions yet.")
		return nil
	}
	for _, s := range sessions {
		status := formatSeconds(s.DurationSeconds)
		if s.IsActive {
			status = "in progress"
		}
		fmt.Fprintf(w, "%s  %s %-16s %s\n", s.StartTime.Local().Format("2006-01-02 15:04"), s.GameIcon, s.GameName, status)
	}
	return nil
}

func showStats(c *cli.Context) error {
	cl := clientFrom(c)
	st, err := cl.GetStats(c.Context)
	if err != nil {
		if cl, err = fallback(c, err); err != nil {
			return err
		}
		st, _ = cl.GetStats(c.Context)
	}
	settings, err := cl.GetSettings(c.Context)
	if err != nil {
		def := defaults.DefaultSettings()
		settings = &def
	}

	w := c.App.Writer
	if cl.Demo() {
		fmt.Fprintln(w, "(demo mode)")
	}
	printLimit(w, "Today", stats.Progress(st.TodayMinutes, settings.DailyLimitMinutes), settings.LimitWarning)
	printLimit(w, "Week ", stats.Progress(st.WeeklyTotal, settings.WeeklyLimitMinutes), settings.LimitWarning)
	fmt.Fprintf(w, "Sessions: %d\n", st.TotalSessions)

	days := make([]string, 0, len(st.DailyData))
	for day := range st.DailyData {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		fmt.Fprintf(w, "  %s  %s\n", day, formatMinutes(st.DailyData[day]))
	}
	return nil
}

func printLimit(w io.Writer, label string, p stats.LimitProgress, warn bool) {
	const width = 20
	filled := int(p.DisplayPercent / 100 * width)
	bar := strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
	fmt.Fprintf(w, "%s [%s] %s / %s (%.0f%%)\n", label, bar, formatMinutes(p.Minutes), formatMinutes(p.LimitMinutes), p.Percent)
	if warn && p.Exceeded {
		fmt.Fprintf(w, "      limit exceeded by %s\n", formatMinutes(p.Minutes-p.LimitMinutes))
	}
}

func printOptional(w io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(w, "%s%s\n", label, value)
	}
}

func formatMinutes(minutes int) string {
	return formatSeconds(int64(minutes) * 60)
}

func formatSeconds(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case h == 0 && m == 0 && seconds > 0 && seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
