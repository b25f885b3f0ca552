package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	achievementadapter "pomo/internal/modules/achievement/adapter/out"
	achievementusecase "pomo/internal/modules/achievement/usecase"
	challengeadapter "pomo/internal/modules/challenge/adapter/out"
	challengeusecase "pomo/internal/modules/challenge/usecase"
	notifydto "pomo/internal/modules/notify/dto"
	notifyin "pomo/internal/modules/notify/port/in"
	progressiondto "pomo/internal/modules/progression/dto"
	progressionadapter "pomo/internal/modules/progression/adapter/out"
	progressionin "pomo/internal/modules/progression/port/in"
	progressionservice "pomo/internal/modules/progression/service"
	progressionusecase "pomo/internal/modules/progression/usecase"
	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
	"pomo/internal/modules/timer/service"
	apperrors "pomo/internal/platform/errors"
	"pomo/internal/platform/random"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeIDs struct {
	next int
}

func (f *fakeIDs) New() string {
	f.next++
	return "session-" + string(rune('0'+f.next))
}

type memoryLog struct {
	sessions map[string]*domain.Session
	order    []string
}

func newMemoryLog() *memoryLog {
	return &memoryLog{sessions: map[string]*domain.Session{}}
}

func (m *memoryLog) Append(_ context.Context, session domain.Session) error {
	copied := session
	m.sessions[session.ID] = &copied
	m.order = append(m.order, session.ID)
	return nil
}

func (m *memoryLog) Complete(_ context.Context, id string, endedAt time.Time, xpEarned int) error {
	session, ok := m.sessions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	session.EndedAt = &endedAt
	session.Completed = true
	session.XPEarned = xpEarned
	return nil
}

func (m *memoryLog) Get(_ context.Context, id string) (domain.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, apperrors.ErrNotFound
	}
	return *session, nil
}

func (m *memoryLog) CompletedOnDay(_ context.Context, day string) ([]domain.Session, error) {
	var out []domain.Session
	for _, id := range m.order {
		session := m.sessions[id]
		if session.Completed && session.StartedAt.Format("2006-01-02") == day {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (m *memoryLog) DayTotals(_ context.Context, fromDay, toDay string) ([]domain.DayTotal, error) {
	byDay := map[string]*domain.DayTotal{}
	var days []string
	for _, id := range m.order {
		session := m.sessions[id]
		day := session.StartedAt.Format("2006-01-02")
		if !session.Completed || session.Mode.IsBreak() || day < fromDay || day > toDay {
			continue
		}
		total, ok := byDay[day]
		if !ok {
			total = &domain.DayTotal{Day: day}
			byDay[day] = total
			days = append(days, day)
		}
		total.Sessions++
		total.FocusMinutes += session.DurationSeconds / 60
	}
	var out []domain.DayTotal
	for _, day := range days {
		out = append(out, *byDay[day])
	}
	return out, nil
}

func (m *memoryLog) List(_ context.Context, limit int) ([]domain.Session, error) {
	var out []domain.Session
	for i := len(m.order) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, *m.sessions[m.order[i]])
	}
	return out, nil
}

func (m *memoryLog) ReplaceAll(_ context.Context, sessions []domain.Session) error {
	m.sessions = map[string]*domain.Session{}
	m.order = nil
	for _, session := range sessions {
		copied := session
		m.sessions[session.ID] = &copied
		m.order = append(m.order, session.ID)
	}
	return nil
}

func (m *memoryLog) Clear(_ context.Context) error {
	m.sessions = map[string]*domain.Session{}
	m.order = nil
	return nil
}

type memoryActive struct {
	active *domain.Active
}

func (m *memoryActive) Save(_ context.Context, active domain.Active) error {
	m.active = &active
	return nil
}

func (m *memoryActive) Load(_ context.Context) (*domain.Active, error) {
	return m.active, nil
}

func (m *memoryActive) Clear(_ context.Context) error {
	m.active = nil
	return nil
}

type recordingNotifier struct {
	events []notifydto.Event
}

func (r *recordingNotifier) Dispatch(_ context.Context, event notifydto.Event) {
	r.events = append(r.events, event)
}

func (r *recordingNotifier) List(context.Context) ([]notifydto.Plugin, error) { return nil, nil }

func (r *recordingNotifier) Test(context.Context, string) error { return nil }

func newEngine(t *testing.T, clk *fakeClock) (timerin.Usecase, progressionin.Usecase, *memoryLog) {
	t.Helper()
	return newEngineWithNotifier(t, clk, nil)
}

func newEngineWithNotifier(t *testing.T, clk *fakeClock, notifier notifyin.Usecase) (timerin.Usecase, progressionin.Usecase, *memoryLog) {
	t.Helper()
	dir := t.TempDir()

	progression := progressionusecase.NewInteractor(progressionservice.NewProgressionService(
		clk,
		random.Fixed(0.9),
		progressionadapter.NewFileProfileStore(dir),
		progressionadapter.NewFileInventoryStore(dir),
		progressionadapter.NewYAMLSettingsStore(dir+"/settings.yaml"),
	))

	log := newMemoryLog()
	challenges := challengeusecase.NewInteractor(
		progression,
		challengeadapter.NewFileStateStore(dir),
		challengeadapter.NewLogSessionFeed(log),
		clk,
	)
	achievements := achievementusecase.NewInteractor(
		progression,
		achievementadapter.NewLogSessionFeed(log),
		achievementadapter.NewChallengeCounter(challenges),
		clk,
	)

	timer := NewInteractor(
		service.NewTimerService(log, &memoryActive{}, clk, &fakeIDs{}),
		progression,
		achievements,
		challenges,
		notifier,
	)
	return timer, progression, log
}

func TestFreshProfileFocusSession(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	timer, progression, _ := newEngine(t, clk)
	ctx := context.Background()

	started, err := timer.Start(ctx, dto.StartInput{Mode: "focus"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if started.DurationSeconds != 25*60 {
		t.Fatalf("focus duration = %d", started.DurationSeconds)
	}

	clk.now = clk.now.Add(25 * time.Minute)
	out, err := timer.Complete(ctx)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out.XPEarned != 25 {
		t.Errorf("XPEarned = %d, want 25", out.XPEarned)
	}
	if out.StreakAfter != 1 || !out.StreakExtended {
		t.Errorf("streak = %d extended=%v", out.StreakAfter, out.StreakExtended)
	}
	if !out.Session.Completed || out.Session.EndedAt == nil {
		t.Error("session row not stamped complete")
	}

	found := false
	for _, unlock := range out.Unlocked {
		if unlock.ID == "first_session" {
			found = true
		}
	}
	if !found {
		t.Errorf("first_session not unlocked: %+v", out.Unlocked)
	}

	player, err := progression.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if player.Profile.TotalSessions != 1 {
		t.Errorf("TotalSessions = %d, want 1", player.Profile.TotalSessions)
	}
}

func TestCancelledSessionStaysIncomplete(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	timer, progression, log := newEngine(t, clk)
	ctx := context.Background()

	started, err := timer.Start(ctx, dto.StartInput{Mode: "focus"})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancelled, err := timer.Cancel(ctx)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if cancelled.Completed || cancelled.EndedAt != nil {
		t.Errorf("cancelled session marked complete: %+v", cancelled)
	}

	row, err := log.Get(ctx, started.SessionID)
	if err != nil {
		t.Fatalf("Get row: %v", err)
	}
	if row.Completed {
		t.Error("log row flipped to completed")
	}

	player, err := progression.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if player.Profile.TotalSessions != 0 || player.Profile.TotalXP != 0 {
		t.Errorf("cancel credited progression: %+v", player.Profile)
	}
}

func TestSecondStartRejected(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	timer, _, _ := newEngine(t, clk)
	ctx := context.Background()

	if _, err := timer.Start(ctx, dto.StartInput{Mode: "focus"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	_, err := timer.Start(ctx, dto.StartInput{Mode: "focus"})
	if !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("second Start err = %v, want ErrActiveSessionExists", err)
	}
}

func TestBreakCompletionSkipsEngine(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	timer, progression, _ := newEngine(t, clk)
	ctx := context.Background()

	if _, err := timer.Start(ctx, dto.StartInput{Mode: "short_break"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clk.now = clk.now.Add(5 * time.Minute)
	out, err := timer.Complete(ctx)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out.XPEarned != 0 || len(out.Unlocked) != 0 {
		t.Errorf("break completion paid out: %+v", out)
	}

	player, err := progression.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if player.Profile.TotalSessions != 0 {
		t.Errorf("break counted as focus session: %d", player.Profile.TotalSessions)
	}
}

func TestCompleteWithoutActiveSession(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	timer, _, _ := newEngine(t, clk)

	_, err := timer.Complete(context.Background())
	if !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("Complete err = %v, want ErrNoActiveSession", err)
	}
}

func TestInvalidModeRejected(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	timer, _, _ := newEngine(t, clk)

	_, err := timer.Start(context.Background(), dto.StartInput{Mode: "nap"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("Start err = %v, want ErrInvalidInput", err)
	}
}

func TestDispatchCarriesNotificationPrefs(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	notifier := &recordingNotifier{}
	timer, progression, _ := newEngineWithNotifier(t, clk, notifier)
	ctx := context.Background()

	if _, err := progression.UpdateSettings(ctx, progressiondto.Settings{
		SoundEnabled:     false,
		VibrationEnabled: true,
		DailyGoal:        8,
		CustomMinutes:    25,
	}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	if _, err := timer.Start(ctx, dto.StartInput{Mode: "focus"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clk.now = clk.now.Add(25 * time.Minute)
	if _, err := timer.Complete(ctx); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if len(notifier.events) == 0 {
		t.Fatal("no events dispatched")
	}
	for _, event := range notifier.events {
		if event.Payload["sound_enabled"] != "false" {
			t.Errorf("%s sound_enabled = %q, want false", event.Name, event.Payload["sound_enabled"])
		}
		if event.Payload["vibration_enabled"] != "true" {
			t.Errorf("%s vibration_enabled = %q, want true", event.Name, event.Payload["vibration_enabled"])
		}
	}
}

func TestChallengeSettlesOnCompletion(t *testing.T) {
	t.Parallel()

	// 2024-03-15 selects time_2h, time_90min, perfect_day.
	clk := &fakeClock{now: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	timer, _, _ := newEngine(t, clk)
	ctx := context.Background()

	// Four 25-minute sessions reach 100 focus minutes: past the
	// 90-minute goal, short of the 120.
	var last dto.CompleteOutput
	for i := 0; i < 4; i++ {
		if _, err := timer.Start(ctx, dto.StartInput{Mode: "focus"}); err != nil {
			t.Fatalf("Start %d: %v", i, err)
		}
		clk.now = clk.now.Add(25 * time.Minute)
		out, err := timer.Complete(ctx)
		if err != nil {
			t.Fatalf("Complete %d: %v", i, err)
		}
		last = out
	}

	ids := map[string]bool{}
	for _, done := range last.ChallengesDone {
		ids[done.ID] = true
	}
	if !ids["time_90min"] {
		t.Errorf("time_90min not settled on the crossing session: %+v", last.ChallengesDone)
	}
	if ids["time_2h"] {
		t.Errorf("time_2h settled at 100 minutes")
	}
}
