// Package defaults holds the fallback values shared by the server and the client:
// settings for users that never saved any, the demo-mode profile and statistics,
// and the game catalog.
package defaults

const (
	DailyLimitMinutes  = 120
	WeeklyLimitMinutes = 840

	// BreakIntervalMinutes is how often a break reminder fires during play.
	BreakIntervalMinutes = 30
	// TimerCeilingSeconds is the two-hour ceiling the timer progress ring is drawn against.
	TimerCeilingSeconds = 2 * 60 * 60

	DemoUserID   = "demo-user-id"
	DemoEmail    = "demo@gamebalance.com"
	DemoPassword = "demo123456"
	DemoName     = "Demo User"
	DemoUsername = "demo_user"
)

type Settings struct {
	DailyLimitMinutes  int  `json:"dailyLimit" yaml:"dailyLimit"`
	WeeklyLimitMinutes int  `json:"weeklyLimit" yaml:"weeklyLimit"`
	BreakReminder      bool `json:"breakReminder" yaml:"breakReminder"`
	LimitWarning       bool `json:"limitWarning" yaml:"limitWarning"`
	Sound              bool `json:"sound" yaml:"sound"`
	NightMode          bool `json:"nightMode" yaml:"nightMode"`
	Vibration          bool `json:"vibration" yaml:"vibration"`
}

func DefaultSettings() Settings {
	return Settings{
		DailyLimitMinutes:  DailyLimitMinutes,
		WeeklyLimitMinutes: WeeklyLimitMinutes,
		BreakReminder:      true,
		LimitWarning:       true,
		Sound:              true,
		NightMode:          true,
		Vibration:          true,
	}
}

type Profile struct {
	ID       string
	Email    string
	Name     string
	Username string
}

func DemoProfile() Profile {
	return Profile{
		ID:       DemoUserID,
		Email:    DemoEmail,
		Name:     DemoName,
		Username: DemoUsername,
	}
}

type Stats struct {
	TodayMinutes  int
	WeeklyTotal   int
	TotalSessions int
}

func DemoStats() Stats {
	return Stats{TodayMinutes: 45, WeeklyTotal: 315, TotalSessions: 2}
}

type Game struct {
	Slug  string
	Name  string
	Icon  string
	Color string
}

func Games() []Game {
	return []Game{
		{Slug: "mobile-legends", Name: "Mobile Legends", Icon: "🎮", Color: "from-purple-500 to-pink-500"},
		{Slug: "pubg-mobile", Name: "PUBG Mobile", Icon: "🔫", Color: "from-orange-500 to-red-500"},
		{Slug: "genshin-impact", Name: "Genshin Impact", Icon: "⚔️", Color: "from-blue-500 to-cyan-500"},
		{Slug: "free-fire", Name: "Free Fire", Icon: "🔥", Color: "from-yellow-500 to-orange-500"},
		{Slug: "other", Name: "Other Game", Icon: "🎯", Color: "from-green-500 to-emerald-500"},
	}
}
