package domain

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// Reward is the inventory grant attached to a rarity tier.
type Reward struct {
	Coins   int
	Gems    int
	Powerup string
}

var rarityRewards = map[Rarity]Reward{
	RarityCommon:    {Coins: 10},
	RarityUncommon:  {Coins: 25, Gems: 1},
	RarityRare:      {Coins: 50, Gems: 3},
	RarityEpic:      {Coins: 100, Gems: 5, Powerup: "xp_boost"},
	RarityLegendary: {Coins: 200, Gems: 10, Powerup: "double_points"},
	RarityMythic:    {Coins: 500, Gems: 25, Powerup: "shield"},
}

func RewardFor(rarity Rarity) Reward {
	return rarityRewards[rarity]
}

// Context is the snapshot a predicate sees. It mixes lifetime profile
// stats with facts about the current day.
type Context struct {
	Level               int
	TotalSessions       int
	TotalFocusSeconds   int
	CurrentStreak       int
	TodayCompleted      int
	HasEarlySession     bool
	HasLateSession      bool
	PerfectWeek         bool
	ChallengesCompleted int
}

type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Points      int
	Category    string
	Rarity      Rarity
	Hidden      bool
	Unlocked    func(Context) bool
}

func sessions(n int) func(Context) bool {
	return func(c Context) bool { return c.TotalSessions >= n }
}

func streak(n int) func(Context) bool {
	return func(c Context) bool { return c.CurrentStreak >= n }
}

func focusHours(n int) func(Context) bool {
	return func(c Context) bool { return c.TotalFocusSeconds >= n*3600 }
}

func level(n int) func(Context) bool {
	return func(c Context) bool { return c.Level >= n }
}

var catalog = []Definition{
	{ID: "first_session", Name: "First Blood", Description: "Complete your first focus session", Icon: "🎯", Points: 10, Category: "sessions", Rarity: RarityCommon, Unlocked: sessions(1)},
	{ID: "sessions_5", Name: "Warming Up", Description: "Complete 5 sessions", Icon: "🔥", Points: 25, Category: "sessions", Rarity: RarityCommon, Unlocked: sessions(5)},
	{ID: "sessions_10", Name: "In Motion", Description: "Complete 10 sessions", Icon: "✅", Points: 50, Category: "sessions", Rarity: RarityCommon, Unlocked: sessions(10)},
	{ID: "sessions_25", Name: "Warrior", Description: "Complete 25 sessions", Icon: "⚔️", Points: 100, Category: "sessions", Rarity: RarityUncommon, Unlocked: sessions(25)},
	{ID: "sessions_50", Name: "Veteran", Description: "Complete 50 sessions", Icon: "🛡️", Points: 200, Category: "sessions", Rarity: RarityUncommon, Unlocked: sessions(50)},
	{ID: "sessions_100", Name: "Centurion", Description: "Complete 100 sessions", Icon: "🏛️", Points: 400, Category: "sessions", Rarity: RarityRare, Unlocked: sessions(100)},
	{ID: "sessions_250", Name: "Legend", Description: "Complete 250 sessions", Icon: "⭐", Points: 800, Category: "sessions", Rarity: RarityEpic, Unlocked: sessions(250)},
	{ID: "sessions_500", Name: "Unstoppable", Description: "Complete 500 sessions", Icon: "👑", Points: 1500, Category: "sessions", Rarity: RarityLegendary, Unlocked: sessions(500)},
	{ID: "sessions_1000", Name: "Focus Deity", Description: "Complete 1000 sessions", Icon: "🌟", Points: 3000, Category: "sessions", Rarity: RarityMythic, Unlocked: sessions(1000)},

	{ID: "streak_3", Name: "Momentum", Description: "3 consecutive days", Icon: "💨", Points: 30, Category: "streaks", Rarity: RarityCommon, Unlocked: streak(3)},
	{ID: "streak_7", Name: "Iron Week", Description: "7 consecutive days", Icon: "💪", Points: 100, Category: "streaks", Rarity: RarityUncommon, Unlocked: streak(7)},
	{ID: "streak_14", Name: "Fortnight", Description: "14 consecutive days", Icon: "⚡", Points: 200, Category: "streaks", Rarity: RarityRare, Unlocked: streak(14)},
	{ID: "streak_30", Name: "Month of Legend", Description: "30 consecutive days", Icon: "🌟", Points: 500, Category: "streaks", Rarity: RarityEpic, Unlocked: streak(30)},
	{ID: "streak_100", Name: "Hundred Days", Description: "100 consecutive days", Icon: "🏆", Points: 1500, Category: "streaks", Rarity: RarityLegendary, Unlocked: streak(100)},
	{ID: "streak_365", Name: "Year of Glory", Description: "365 consecutive days", Icon: "💎", Points: 5000, Category: "streaks", Rarity: RarityMythic, Unlocked: streak(365)},

	{ID: "time_1h", Name: "First Hour", Description: "1 hour of total focus", Icon: "⏱️", Points: 15, Category: "time", Rarity: RarityCommon, Unlocked: focusHours(1)},
	{ID: "time_5h", Name: "Five Hours", Description: "5 hours of total focus", Icon: "⏰", Points: 50, Category: "time", Rarity: RarityCommon, Unlocked: focusHours(5)},
	{ID: "time_10h", Name: "Deep Tens", Description: "10 hours of total focus", Icon: "🧘", Points: 100, Category: "time", Rarity: RarityUncommon, Unlocked: focusHours(10)},
	{ID: "time_50h", Name: "Focus Master", Description: "50 hours of total focus", Icon: "🎯", Points: 500, Category: "time", Rarity: RarityRare, Unlocked: focusHours(50)},
	{ID: "time_100h", Name: "Focus Legend", Description: "100 hours of total focus", Icon: "🏆", Points: 1000, Category: "time", Rarity: RarityEpic, Unlocked: focusHours(100)},

	{ID: "level_5", Name: "Ascent", Description: "Reach level 5", Icon: "📈", Points: 50, Category: "level", Rarity: RarityCommon, Unlocked: level(5)},
	{ID: "level_10", Name: "Seasoned", Description: "Reach level 10", Icon: "🎖️", Points: 150, Category: "level", Rarity: RarityUncommon, Unlocked: level(10)},
	{ID: "level_20", Name: "Master", Description: "Reach level 20", Icon: "🌠", Points: 400, Category: "level", Rarity: RarityRare, Unlocked: level(20)},
	{ID: "level_30", Name: "Champion", Description: "Reach level 30", Icon: "🏅", Points: 800, Category: "level", Rarity: RarityEpic, Unlocked: level(30)},
	{ID: "level_50", Name: "Living Legend", Description: "Reach level 50", Icon: "👑", Points: 2000, Category: "level", Rarity: RarityLegendary, Unlocked: level(50)},

	{ID: "marathon", Name: "Marathon", Description: "4 sessions in one day", Icon: "🏃", Points: 80, Category: "special", Rarity: RarityUncommon, Unlocked: func(c Context) bool { return c.TodayCompleted >= 4 }},
	{ID: "early_bird", Name: "Daybreak", Description: "A session before 6 AM", Icon: "🌅", Points: 50, Category: "special", Rarity: RarityUncommon, Unlocked: func(c Context) bool { return c.HasEarlySession }},
	{ID: "night_owl", Name: "Owl", Description: "A session late at night", Icon: "🦉", Points: 40, Category: "special", Rarity: RarityUncommon, Unlocked: func(c Context) bool { return c.HasLateSession }},
	{ID: "perfect_week", Name: "Perfect Week", Description: "7 days hitting your goal", Icon: "✨", Points: 300, Category: "special", Rarity: RarityRare, Unlocked: func(c Context) bool { return c.PerfectWeek }},

	{ID: "secret_1", Name: "What Is This?", Description: "???", Icon: "🔮", Points: 100, Category: "secret", Rarity: RarityLegendary, Hidden: true, Unlocked: func(c Context) bool { return c.ChallengesCompleted >= 10 }},
	{ID: "secret_2", Name: "The Path", Description: "???", Icon: "🛤️", Points: 200, Category: "secret", Rarity: RarityLegendary, Hidden: true, Unlocked: func(c Context) bool { return c.TotalSessions >= 100 && c.CurrentStreak >= 30 }},
	{ID: "secret_3", Name: "The Destination", Description: "???", Icon: "🎯", Points: 500, Category: "secret", Rarity: RarityMythic, Hidden: true, Unlocked: func(c Context) bool { return c.Level >= 50 && c.CurrentStreak >= 100 }},
}

// Catalog returns the full static achievement set in display order.
func Catalog() []Definition {
	return catalog
}

func Find(id string) (Definition, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// NewlyUnlocked returns every definition whose predicate holds and whose
// id is not yet in the unlocked set, in catalog order.
func NewlyUnlocked(ctx Context, has func(id string) bool) []Definition {
	var unlocked []Definition
	for _, def := range catalog {
		if has(def.ID) {
			continue
		}
		if def.Unlocked(ctx) {
			unlocked = append(unlocked, def)
		}
	}
	return unlocked
}
