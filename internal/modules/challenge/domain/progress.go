package domain

// SessionInfo is the slice of a completed focus session that progress
// dispatch needs.
type SessionInfo struct {
	StartHour       int
	DurationSeconds int
}

// Progress computes how far along a challenge is for today.
func Progress(def Definition, today []SessionInfo, currentStreak, dailyGoal int) int {
	switch def.ID {
	case "focus_3", "focus_5", "focus_8", "marathon", "double_session":
		return len(today)
	case "streak_1", "streak_3":
		if currentStreak > def.Goal {
			return def.Goal
		}
		return currentStreak
	case "time_2h", "time_90min":
		seconds := 0
		for _, s := range today {
			seconds += s.DurationSeconds
		}
		return seconds / 60
	case "perfect_day":
		if len(today) >= dailyGoal {
			return 1
		}
		return 0
	case "early_session":
		count := 0
		for _, s := range today {
			if s.StartHour < 8 {
				count++
			}
		}
		return count
	case "night_owl":
		count := 0
		for _, s := range today {
			if s.StartHour >= 22 || s.StartHour < 6 {
				count++
			}
		}
		return count
	case "quick_1":
		count := 0
		for _, s := range today {
			if s.DurationSeconds <= 20*60 {
				count++
			}
		}
		return count
	default:
		return 0
	}
}

// FinalReward applies the streak bonus to a challenge's XP reward. The
// bonus kicks in at a 3-day streak and caps at 30 days.
func FinalReward(xpReward, currentStreak int) int {
	if currentStreak < 3 {
		return xpReward
	}
	capped := currentStreak
	if capped > 30 {
		capped = 30
	}
	return int(float64(xpReward) * (1 + float64(capped)*0.05))
}
