package service

import (
	"context"

	"pomo/internal/modules/progression/domain"
	progressionout "pomo/internal/modules/progression/port/out"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/dates"
	"pomo/internal/platform/random"
)

// ProgressionService owns every mutation of the player profile and
// inventory. Callers get value snapshots back; nothing here is shared
// mutable state.
type ProgressionService struct {
	clock     clock.Clock
	rng       random.Source
	profiles  progressionout.ProfileStore
	inventory progressionout.InventoryStore
	settings  progressionout.SettingsStore
}

func NewProgressionService(clk clock.Clock, rng random.Source, profiles progressionout.ProfileStore, inventory progressionout.InventoryStore, settings progressionout.SettingsStore) *ProgressionService {
	return &ProgressionService{clock: clk, rng: rng, profiles: profiles, inventory: inventory, settings: settings}
}

func (s *ProgressionService) loadProfile(ctx context.Context) domain.Profile {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		profile = domain.DefaultProfile()
	}
	profile.Normalize()
	return profile
}

func (s *ProgressionService) loadInventory(ctx context.Context) domain.Inventory {
	inventory, err := s.inventory.Load(ctx)
	if err != nil {
		inventory = domain.DefaultInventory()
	}
	inventory.Normalize()
	return inventory
}

func (s *ProgressionService) loadSettings(ctx context.Context) domain.Settings {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		settings = domain.DefaultSettings()
	}
	return settings.Normalized()
}

func (s *ProgressionService) Player(ctx context.Context) (domain.Profile, domain.Inventory, domain.Settings) {
	return s.loadProfile(ctx), s.loadInventory(ctx), s.loadSettings(ctx)
}

type FocusResult struct {
	Profile        domain.Profile
	XPEarned       int
	LevelUps       []domain.LevelUp
	StreakExtended bool
}

// CompleteFocus books a finished focus session: totals, streak credit for
// today, then XP through the streak multiplier. One point of base XP per
// full minute of focus. An active double-XP effect is consumed by the
// session that benefits from it.
func (s *ProgressionService) CompleteFocus(ctx context.Context, durationSeconds int) (FocusResult, error) {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	profile := s.loadProfile(ctx)
	inventory := s.loadInventory(ctx)
	now := s.clock.Now()

	streakBefore := profile.CurrentStreak
	profile.TotalSessions++
	profile.TotalFocusSeconds += durationSeconds
	profile.CreditDay(dates.Key(now), dates.Yesterday(now))

	doubleXP := inventory.EffectActive(domain.PowerupXPBoost)
	applied, ups := profile.ApplyXP(durationSeconds/60, doubleXP, s.rng)
	if doubleXP {
		inventory.ClearEffect(domain.PowerupXPBoost)
	}
	s.bankLevelUps(&inventory, ups)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return FocusResult{}, err
	}
	if err := s.inventory.Save(ctx, inventory); err != nil {
		return FocusResult{}, err
	}
	return FocusResult{
		Profile:        profile,
		XPEarned:       applied,
		LevelUps:       ups,
		StreakExtended: profile.CurrentStreak > streakBefore,
	}, nil
}

// Award credits XP outside a session, e.g. a challenge reward. The streak
// multiplier does not re-apply: challenge rewards carry their own bonus.
func (s *ProgressionService) Award(ctx context.Context, base int) (domain.Profile, int, []domain.LevelUp, error) {
	profile := s.loadProfile(ctx)
	inventory := s.loadInventory(ctx)

	applied, ups := profile.ApplyFlatXP(base, s.rng)
	s.bankLevelUps(&inventory, ups)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return domain.Profile{}, 0, nil, err
	}
	if err := s.inventory.Save(ctx, inventory); err != nil {
		return domain.Profile{}, 0, nil, err
	}
	return profile, applied, ups, nil
}

func (s *ProgressionService) bankLevelUps(inventory *domain.Inventory, ups []domain.LevelUp) {
	for _, up := range ups {
		inventory.Coins += up.Coins
		inventory.Gems += up.Gems
		if up.BonusPowerup != "" {
			inventory.AddPowerup(up.BonusPowerup)
		}
	}
}

// GrantUnlock records an achievement unlock and banks its rarity reward.
// Granting is guarded by the profile's monotonic unlock rule.
func (s *ProgressionService) GrantUnlock(ctx context.Context, achievementID string, points, coins, gems int, powerup string) error {
	profile := s.loadProfile(ctx)
	if !profile.Unlock(achievementID, points, s.clock.Now()) {
		return nil
	}
	inventory := s.loadInventory(ctx)
	inventory.Coins += coins
	inventory.Gems += gems
	if powerup != "" {
		inventory.AddPowerup(powerup)
	}
	if err := s.profiles.Save(ctx, profile); err != nil {
		return err
	}
	return s.inventory.Save(ctx, inventory)
}

func (s *ProgressionService) ActivatePowerup(ctx context.Context, kind string) (bool, error) {
	inventory := s.loadInventory(ctx)
	if !inventory.ActivatePowerup(kind) {
		return false, nil
	}
	return true, s.inventory.Save(ctx, inventory)
}

// Rollover runs the passive day check on startup. It only ever decays a
// streak; crediting happens on session completion.
func (s *ProgressionService) Rollover(ctx context.Context) (string, bool, error) {
	profile := s.loadProfile(ctx)
	now := s.clock.Now()
	lost := profile.RolloverDay(dates.Key(now), dates.Yesterday(now))
	if !lost {
		return dates.Key(now), false, nil
	}
	return dates.Key(now), true, s.profiles.Save(ctx, profile)
}

func (s *ProgressionService) SaveSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	normalized := settings.Normalized()
	return normalized, s.settings.Save(ctx, normalized)
}

func (s *ProgressionService) Replace(ctx context.Context, profile domain.Profile, inventory domain.Inventory) error {
	profile.Normalize()
	inventory.Normalize()
	if err := s.profiles.Save(ctx, profile); err != nil {
		return err
	}
	return s.inventory.Save(ctx, inventory)
}

func (s *ProgressionService) Reset(ctx context.Context) error {
	if err := s.profiles.Save(ctx, domain.DefaultProfile()); err != nil {
		return err
	}
	if err := s.inventory.Save(ctx, domain.DefaultInventory()); err != nil {
		return err
	}
	_, err := s.SaveSettings(ctx, domain.DefaultSettings())
	return err
}
