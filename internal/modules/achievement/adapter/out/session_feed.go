package out

import (
	"context"
	"time"

	achievementout "pomo/internal/modules/achievement/port/out"
	timerout "pomo/internal/modules/timer/port/out"
	"pomo/internal/platform/dates"
)

// goalWindowDays bounds the perfect-week lookback.
const goalWindowDays = 14

// LogSessionFeed derives day facts from the timer's session log.
type LogSessionFeed struct {
	log timerout.SessionLog
}

func NewLogSessionFeed(log timerout.SessionLog) achievementout.SessionFeed {
	return &LogSessionFeed{log: log}
}

func (f *LogSessionFeed) TodayFacts(ctx context.Context, now time.Time) (achievementout.DayFacts, error) {
	sessions, err := f.log.CompletedOnDay(ctx, dates.Key(now))
	if err != nil {
		return achievementout.DayFacts{}, err
	}
	var facts achievementout.DayFacts
	for _, s := range sessions {
		if s.Mode.IsBreak() {
			continue
		}
		facts.Completed++
		hour := s.StartedAt.Hour()
		if hour < 6 {
			facts.HasEarlySession = true
		}
		if hour >= 22 || hour < 5 {
			facts.HasLateSession = true
		}
	}
	return facts, nil
}

func (f *LogSessionFeed) GoalMetDays(ctx context.Context, now time.Time, goal int) (int, error) {
	if goal < 1 {
		goal = 1
	}
	from := dates.Key(now.AddDate(0, 0, -(goalWindowDays - 1)))
	totals, err := f.log.DayTotals(ctx, from, dates.Key(now))
	if err != nil {
		return 0, err
	}
	byDay := make(map[string]int, len(totals))
	for _, total := range totals {
		byDay[total.Day] = total.Sessions
	}
	streak := 0
	for offset := 0; offset < goalWindowDays; offset++ {
		day := dates.Key(now.AddDate(0, 0, -offset))
		if byDay[day] < goal {
			break
		}
		streak++
	}
	return streak, nil
}
