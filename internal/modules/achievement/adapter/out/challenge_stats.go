package out

import (
	"context"

	achievementout "pomo/internal/modules/achievement/port/out"
	challengein "pomo/internal/modules/challenge/port/in"
)

// ChallengeCounter answers lifetime challenge completions via the
// challenge module's own port.
type ChallengeCounter struct {
	challenges challengein.Usecase
}

func NewChallengeCounter(challenges challengein.Usecase) achievementout.ChallengeStats {
	return &ChallengeCounter{challenges: challenges}
}

func (c *ChallengeCounter) CompletedCount(ctx context.Context) (int, error) {
	return c.challenges.CompletedCount(ctx)
}
