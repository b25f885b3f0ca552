package service

import (
	"context"
	"errors"
	"testing"
	"time"

	challengeadapter "pomo/internal/modules/challenge/adapter/out"
	"pomo/internal/modules/challenge/domain"
	challengeout "pomo/internal/modules/challenge/port/out"
	progressionadapter "pomo/internal/modules/progression/adapter/out"
	progressionin "pomo/internal/modules/progression/port/in"
	progressionservice "pomo/internal/modules/progression/service"
	progressionusecase "pomo/internal/modules/progression/usecase"
	"pomo/internal/platform/random"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type staticFeed struct {
	sessions []domain.SessionInfo
}

func (f *staticFeed) CompletedToday(context.Context, time.Time) ([]domain.SessionInfo, error) {
	return f.sessions, nil
}

type brokenStore struct {
	inner challengeout.StateStore
}

func (b *brokenStore) Load(ctx context.Context) (domain.State, error) {
	return b.inner.Load(ctx)
}

func (b *brokenStore) Save(context.Context, domain.State) error {
	return errors.New("disk full")
}

func newProgression(t *testing.T, clk *fakeClock) progressionin.Usecase {
	t.Helper()
	dir := t.TempDir()
	return progressionusecase.NewInteractor(progressionservice.NewProgressionService(
		clk,
		random.Fixed(0.9),
		progressionadapter.NewFileProfileStore(dir),
		progressionadapter.NewFileInventoryStore(dir),
		progressionadapter.NewYAMLSettingsStore(dir+"/settings.yaml"),
	))
}

// Four 25-minute sessions reach 100 focus minutes, which crosses the
// 90-minute goal of 2024-03-15's selection but not the 120-minute one.
func minutes100() []domain.SessionInfo {
	return []domain.SessionInfo{
		{StartHour: 9, DurationSeconds: 25 * 60},
		{StartHour: 10, DurationSeconds: 25 * 60},
		{StartHour: 11, DurationSeconds: 25 * 60},
		{StartHour: 12, DurationSeconds: 25 * 60},
	}
}

func TestEvaluatePaysOutOncePerDay(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)}
	progression := newProgression(t, clk)
	svc := NewChallengeService(
		progression,
		challengeadapter.NewFileStateStore(t.TempDir()),
		&staticFeed{sessions: minutes100()},
		clk,
	)
	ctx := context.Background()

	completions, err := svc.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(completions) != 1 || completions[0].Definition.ID != "time_90min" {
		t.Fatalf("completions = %+v, want [time_90min]", completions)
	}
	player, err := progression.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	paid := player.Profile.TotalXP
	if paid != completions[0].XPEarned {
		t.Fatalf("TotalXP = %d, want %d", paid, completions[0].XPEarned)
	}

	again, err := svc.Evaluate(ctx)
	if err != nil {
		t.Fatalf("second Evaluate: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second Evaluate settled %+v, want nothing", again)
	}
	player, err = progression.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if player.Profile.TotalXP != paid {
		t.Fatalf("second pass paid again: TotalXP %d, want %d", player.Profile.TotalXP, paid)
	}
}

func TestEvaluateFailedSaveAwardsNothing(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2024, 3, 15, 13, 0, 0, 0, time.UTC)}
	progression := newProgression(t, clk)
	svc := NewChallengeService(
		progression,
		&brokenStore{inner: challengeadapter.NewFileStateStore(t.TempDir())},
		&staticFeed{sessions: minutes100()},
		clk,
	)
	ctx := context.Background()

	if _, err := svc.Evaluate(ctx); err == nil {
		t.Fatal("Evaluate with a failing store should error")
	}
	player, err := progression.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if player.Profile.TotalXP != 0 {
		t.Fatalf("XP paid out despite unsaved completion: %d", player.Profile.TotalXP)
	}
}
