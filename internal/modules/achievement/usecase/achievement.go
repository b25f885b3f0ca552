package usecase

import (
	"context"

	"pomo/internal/modules/achievement/domain"
	"pomo/internal/modules/achievement/dto"
	achievementin "pomo/internal/modules/achievement/port/in"
	achievementout "pomo/internal/modules/achievement/port/out"
	"pomo/internal/modules/achievement/service"
	progressionin "pomo/internal/modules/progression/port/in"
	"pomo/internal/platform/clock"
)

type Interactor struct {
	service *service.AchievementService
}

func NewInteractor(
	progression progressionin.Usecase,
	sessions achievementout.SessionFeed,
	challenges achievementout.ChallengeStats,
	clk clock.Clock,
) achievementin.Usecase {
	return &Interactor{
		service: service.NewAchievementService(progression, sessions, challenges, clk),
	}
}

func (i *Interactor) Evaluate(ctx context.Context) ([]dto.Unlock, error) {
	unlocked, err := i.service.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Unlock, 0, len(unlocked))
	for _, def := range unlocked {
		reward := domain.RewardFor(def.Rarity)
		out = append(out, dto.Unlock{
			ID:      def.ID,
			Name:    def.Name,
			Icon:    def.Icon,
			Rarity:  string(def.Rarity),
			Points:  def.Points,
			Coins:   reward.Coins,
			Gems:    reward.Gems,
			Powerup: reward.Powerup,
		})
	}
	return out, nil
}

// List returns the catalog merged with unlock state. Hidden entries keep
// their placeholder name and description until unlocked.
func (i *Interactor) List(ctx context.Context) ([]dto.Achievement, error) {
	player, err := i.service.Player(ctx)
	if err != nil {
		return nil, err
	}
	held := make(map[string]bool, len(player.Profile.AchievementIDs))
	for _, id := range player.Profile.AchievementIDs {
		held[id] = true
	}
	out := make([]dto.Achievement, 0, len(domain.Catalog()))
	for _, def := range domain.Catalog() {
		entry := dto.Achievement{
			ID:       def.ID,
			Name:     def.Name,
			Icon:     def.Icon,
			Points:   def.Points,
			Category: def.Category,
			Rarity:   string(def.Rarity),
			Hidden:   def.Hidden,
			Unlocked: held[def.ID],
		}
		entry.Description = def.Description
		if def.Hidden && !entry.Unlocked {
			entry.Name = "???"
			entry.Description = "???"
		}
		if at, ok := player.Profile.UnlockedAt[def.ID]; ok {
			t := at
			entry.UnlockedAt = &t
		}
		out = append(out, entry)
	}
	return out, nil
}
