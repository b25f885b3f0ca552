package service

import (
	"context"
	"fmt"

	"pomo/internal/modules/achievement/domain"
	achievementout "pomo/internal/modules/achievement/port/out"
	progressiondto "pomo/internal/modules/progression/dto"
	progressionin "pomo/internal/modules/progression/port/in"
	"pomo/internal/platform/clock"
)

// AchievementService walks the catalog against the current player state
// and grants everything that newly holds.
type AchievementService struct {
	progression progressionin.Usecase
	sessions    achievementout.SessionFeed
	challenges  achievementout.ChallengeStats
	clock       clock.Clock
}

func NewAchievementService(
	progression progressionin.Usecase,
	sessions achievementout.SessionFeed,
	challenges achievementout.ChallengeStats,
	clk clock.Clock,
) *AchievementService {
	return &AchievementService{
		progression: progression,
		sessions:    sessions,
		challenges:  challenges,
		clock:       clk,
	}
}

func (s *AchievementService) buildContext(ctx context.Context) (domain.Context, progressiondto.PlayerOutput, error) {
	player, err := s.progression.Get(ctx)
	if err != nil {
		return domain.Context{}, progressiondto.PlayerOutput{}, fmt.Errorf("load player: %w", err)
	}
	now := s.clock.Now()
	facts, err := s.sessions.TodayFacts(ctx, now)
	if err != nil {
		return domain.Context{}, progressiondto.PlayerOutput{}, fmt.Errorf("today facts: %w", err)
	}
	goalDays, err := s.sessions.GoalMetDays(ctx, now, player.Settings.DailyGoal)
	if err != nil {
		return domain.Context{}, progressiondto.PlayerOutput{}, fmt.Errorf("goal days: %w", err)
	}
	completed, err := s.challenges.CompletedCount(ctx)
	if err != nil {
		return domain.Context{}, progressiondto.PlayerOutput{}, fmt.Errorf("challenge count: %w", err)
	}
	return domain.Context{
		Level:               player.Profile.Level,
		TotalSessions:       player.Profile.TotalSessions,
		TotalFocusSeconds:   player.Profile.TotalFocusSeconds,
		CurrentStreak:       player.Profile.CurrentStreak,
		TodayCompleted:      facts.Completed,
		HasEarlySession:     facts.HasEarlySession,
		HasLateSession:      facts.HasLateSession,
		PerfectWeek:         goalDays >= 7,
		ChallengesCompleted: completed,
	}, player, nil
}

// Evaluate grants every achievement whose predicate newly holds and
// returns the grants in catalog order.
func (s *AchievementService) Evaluate(ctx context.Context) ([]domain.Definition, error) {
	evalCtx, player, err := s.buildContext(ctx)
	if err != nil {
		return nil, err
	}
	held := make(map[string]bool, len(player.Profile.AchievementIDs))
	for _, id := range player.Profile.AchievementIDs {
		held[id] = true
	}
	unlocked := domain.NewlyUnlocked(evalCtx, func(id string) bool { return held[id] })
	for _, def := range unlocked {
		reward := domain.RewardFor(def.Rarity)
		err := s.progression.GrantUnlock(ctx, progressiondto.UnlockGrantInput{
			AchievementID: def.ID,
			Points:        def.Points,
			Coins:         reward.Coins,
			Gems:          reward.Gems,
			Powerup:       reward.Powerup,
		})
		if err != nil {
			return nil, fmt.Errorf("grant %s: %w", def.ID, err)
		}
	}
	return unlocked, nil
}

// Player exposes the profile snapshot for listing.
func (s *AchievementService) Player(ctx context.Context) (progressiondto.PlayerOutput, error) {
	return s.progression.Get(ctx)
}
