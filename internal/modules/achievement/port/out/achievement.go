package out

import (
	"context"
	"time"
)

// DayFacts summarizes today's completed focus sessions for predicates
// that look at the current day.
type DayFacts struct {
	Completed       int
	HasEarlySession bool
	HasLateSession  bool
}

type SessionFeed interface {
	TodayFacts(ctx context.Context, now time.Time) (DayFacts, error)
	// GoalMetDays reports how many consecutive days ending today met the
	// daily session goal.
	GoalMetDays(ctx context.Context, now time.Time, goal int) (int, error)
}

type ChallengeStats interface {
	CompletedCount(ctx context.Context) (int, error)
}
