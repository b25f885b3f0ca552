package usecase

import (
	"context"
	"time"

	"pomo/internal/modules/progression/domain"
	progressiondto "pomo/internal/modules/progression/dto"
	progressionin "pomo/internal/modules/progression/port/in"
	"pomo/internal/modules/progression/service"
	apperrors "pomo/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProgressionService
}

func NewInteractor(svc *service.ProgressionService) progressionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (progressiondto.PlayerOutput, error) {
	profile, inventory, settings := i.svc.Player(ctx)
	return progressiondto.PlayerOutput{
		Profile:   toProfileDTO(profile),
		Inventory: toInventoryDTO(inventory),
		Settings:  toSettingsDTO(settings),
	}, nil
}

func (i *Interactor) CompleteFocus(ctx context.Context, input progressiondto.CompleteFocusInput) (progressiondto.CompleteFocusOutput, error) {
	if input.DurationSeconds <= 0 {
		return progressiondto.CompleteFocusOutput{}, apperrors.ErrInvalidInput
	}
	result, err := i.svc.CompleteFocus(ctx, input.DurationSeconds)
	if err != nil {
		return progressiondto.CompleteFocusOutput{}, err
	}
	return progressiondto.CompleteFocusOutput{
		XPEarned:       result.XPEarned,
		LevelUps:       toLevelUpDTOs(result.LevelUps),
		Level:          result.Profile.Level,
		StreakAfter:    result.Profile.CurrentStreak,
		StreakExtended: result.StreakExtended,
		TotalSessions:  result.Profile.TotalSessions,
	}, nil
}

func (i *Interactor) AwardXP(ctx context.Context, input progressiondto.AwardInput) (progressiondto.AwardOutput, error) {
	if input.Base <= 0 {
		return progressiondto.AwardOutput{}, apperrors.ErrInvalidInput
	}
	profile, applied, ups, err := i.svc.Award(ctx, input.Base)
	if err != nil {
		return progressiondto.AwardOutput{}, err
	}
	return progressiondto.AwardOutput{
		Applied:  applied,
		Level:    profile.Level,
		XP:       profile.XP,
		XPToNext: domain.XPPerLevel,
		LevelUps: toLevelUpDTOs(ups),
	}, nil
}

func (i *Interactor) GrantUnlock(ctx context.Context, input progressiondto.UnlockGrantInput) error {
	if input.AchievementID == "" {
		return apperrors.ErrInvalidInput
	}
	return i.svc.GrantUnlock(ctx, input.AchievementID, input.Points, input.Coins, input.Gems, input.Powerup)
}

func (i *Interactor) ActivatePowerup(ctx context.Context, kind string) error {
	ok, err := i.svc.ActivatePowerup(ctx, kind)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidInput
	}
	return nil
}

func (i *Interactor) Rollover(ctx context.Context) (progressiondto.RolloverOutput, error) {
	today, lost, err := i.svc.Rollover(ctx)
	if err != nil {
		return progressiondto.RolloverOutput{}, err
	}
	return progressiondto.RolloverOutput{Today: today, StreakLost: lost}, nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input progressiondto.Settings) (progressiondto.Settings, error) {
	saved, err := i.svc.SaveSettings(ctx, domain.Settings{
		SoundEnabled:     input.SoundEnabled,
		VibrationEnabled: input.VibrationEnabled,
		AutoBreak:        input.AutoBreak,
		DailyGoal:        input.DailyGoal,
		CustomMinutes:    input.CustomMinutes,
	})
	if err != nil {
		return progressiondto.Settings{}, err
	}
	return toSettingsDTO(saved), nil
}

func (i *Interactor) ExportState(ctx context.Context) (progressiondto.State, error) {
	profile, inventory, _ := i.svc.Player(ctx)
	return progressiondto.State{Profile: toProfileDTO(profile), Inventory: toInventoryDTO(inventory)}, nil
}

func (i *Interactor) ImportState(ctx context.Context, state progressiondto.State) error {
	return i.svc.Replace(ctx, fromProfileDTO(state.Profile), fromInventoryDTO(state.Inventory))
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx)
}

func toProfileDTO(p domain.Profile) progressiondto.Profile {
	unlocked := make(map[string]time.Time, len(p.UnlockedAt))
	for id, at := range p.UnlockedAt {
		unlocked[id] = at
	}
	return progressiondto.Profile{
		Level:             p.Level,
		XP:                p.XP,
		XPToNext:          domain.XPPerLevel,
		TotalXP:           p.TotalXP,
		TotalFocusSeconds: p.TotalFocusSeconds,
		TotalSessions:     p.TotalSessions,
		CurrentStreak:     p.CurrentStreak,
		BestStreak:        p.BestStreak,
		LongestStreak:     p.LongestStreak,
		Title:             p.Title,
		Subtitle:          p.Subtitle,
		AchievementIDs:    append([]string{}, p.AchievementIDs...),
		AchievementPoints: p.AchievementPoints,
		UnlockedAt:        unlocked,
		LastActiveDate:    p.LastActiveDate,
	}
}

func fromProfileDTO(p progressiondto.Profile) domain.Profile {
	return domain.Profile{
		Level:             p.Level,
		XP:                p.XP,
		TotalXP:           p.TotalXP,
		TotalFocusSeconds: p.TotalFocusSeconds,
		TotalSessions:     p.TotalSessions,
		CurrentStreak:     p.CurrentStreak,
		BestStreak:        p.BestStreak,
		LongestStreak:     p.LongestStreak,
		Title:             p.Title,
		Subtitle:          p.Subtitle,
		AchievementIDs:    p.AchievementIDs,
		AchievementPoints: p.AchievementPoints,
		UnlockedAt:        p.UnlockedAt,
		LastActiveDate:    p.LastActiveDate,
	}
}

func toInventoryDTO(inv domain.Inventory) progressiondto.Inventory {
	powerups := make(map[string]progressiondto.Powerup, len(inv.Powerups))
	for kind, p := range inv.Powerups {
		powerups[kind] = progressiondto.Powerup{Count: p.Count, Max: p.Max}
	}
	return progressiondto.Inventory{
		Coins:         inv.Coins,
		Gems:          inv.Gems,
		Powerups:      powerups,
		ActiveEffects: append([]string{}, inv.ActiveEffects...),
	}
}

func fromInventoryDTO(inv progressiondto.Inventory) domain.Inventory {
	powerups := make(map[string]domain.Powerup, len(inv.Powerups))
	for kind, p := range inv.Powerups {
		powerups[kind] = domain.Powerup{Count: p.Count, Max: p.Max}
	}
	return domain.Inventory{
		Coins:         inv.Coins,
		Gems:          inv.Gems,
		Powerups:      powerups,
		ActiveEffects: inv.ActiveEffects,
	}
}

func toSettingsDTO(s domain.Settings) progressiondto.Settings {
	return progressiondto.Settings{
		SoundEnabled:     s.SoundEnabled,
		VibrationEnabled: s.VibrationEnabled,
		AutoBreak:        s.AutoBreak,
		DailyGoal:        s.DailyGoal,
		CustomMinutes:    s.CustomMinutes,
	}
}

func toLevelUpDTOs(ups []domain.LevelUp) []progressiondto.LevelUp {
	if len(ups) == 0 {
		return nil
	}
	out := make([]progressiondto.LevelUp, 0, len(ups))
	for _, up := range ups {
		out = append(out, progressiondto.LevelUp{
			Level:        up.Level,
			Title:        up.Title,
			Subtitle:     up.Subtitle,
			Coins:        up.Coins,
			Gems:         up.Gems,
			BonusPowerup: up.BonusPowerup,
		})
	}
	return out
}
