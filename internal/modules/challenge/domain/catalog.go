package domain

import "sort"

type Definition struct {
	ID          string
	Title       string
	Description string
	Goal        int
	Icon        string
	XPReward    int
	Unit        string
	Difficulty  string
	Category    string
}

var catalog = []Definition{
	{ID: "focus_3", Title: "Trinity", Description: "3 focus sessions", Goal: 3, Icon: "🎯", XPReward: 30, Difficulty: "easy", Category: "sessions"},
	{ID: "focus_5", Title: "Quintet", Description: "5 focus sessions", Goal: 5, Icon: "🔥", XPReward: 50, Difficulty: "medium", Category: "sessions"},
	{ID: "focus_8", Title: "Golden Eight", Description: "Full daily goal", Goal: 8, Icon: "💪", XPReward: 80, Difficulty: "hard", Category: "sessions"},
	{ID: "time_2h", Title: "Two Hours", Description: "2 hours of focus", Goal: 120, Icon: "⏰", XPReward: 60, Unit: "min", Difficulty: "medium", Category: "time"},
	{ID: "time_90min", Title: "Ninety Minutes", Description: "90 minutes of focus", Goal: 90, Icon: "⏱️", XPReward: 45, Unit: "min", Difficulty: "easy", Category: "time"},
	{ID: "streak_1", Title: "Momentum", Description: "Keep your streak alive", Goal: 1, Icon: "🌟", XPReward: 20, Difficulty: "easy", Category: "streak"},
	{ID: "streak_3", Title: "Three-Day Run", Description: "3-day streak", Goal: 3, Icon: "💫", XPReward: 70, Difficulty: "medium", Category: "streak"},
	{ID: "perfect_day", Title: "Perfect Day", Description: "Hit your daily goal", Goal: 1, Icon: "✨", XPReward: 50, Difficulty: "medium", Category: "special"},
	{ID: "marathon", Title: "Marathon", Description: "4 sessions today", Goal: 4, Icon: "🏃", XPReward: 80, Difficulty: "hard", Category: "special"},
	{ID: "early_session", Title: "Daybreak", Description: "A session before 8 AM", Goal: 1, Icon: "🌅", XPReward: 40, Difficulty: "medium", Category: "special"},
	{ID: "night_owl", Title: "Owl", Description: "A session after 10 PM", Goal: 1, Icon: "🦉", XPReward: 35, Difficulty: "medium", Category: "special"},
	{ID: "quick_1", Title: "Quick Strike", Description: "1 session under 20 min", Goal: 1, Icon: "⚡", XPReward: 25, Difficulty: "easy", Category: "speed"},
	{ID: "double_session", Title: "Double Impact", Description: "2 sessions back to back", Goal: 2, Icon: "💥", XPReward: 45, Difficulty: "medium", Category: "speed"},
}

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

func seed(dayOfYear int, id string) int {
	return (dayOfYear*int(id[0]) + len(id)) % 100
}

// SelectDaily picks the day's three challenges. The pick depends only on
// the day of year, so repeated calls on the same date return the same
// ordered triple.
func SelectDaily(dayOfYear int) []Definition {
	shuffled := make([]Definition, len(catalog))
	copy(shuffled, catalog)
	sort.SliceStable(shuffled, func(a, b int) bool {
		return seed(dayOfYear, shuffled[a].ID) < seed(dayOfYear, shuffled[b].ID)
	})
	return shuffled[:3]
}
