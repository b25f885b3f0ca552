package service

import (
	"context"
	"fmt"

	"pomo/internal/modules/challenge/domain"
	challengeout "pomo/internal/modules/challenge/port/out"
	progressiondto "pomo/internal/modules/progression/dto"
	progressionin "pomo/internal/modules/progression/port/in"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/dates"
)

// ChallengeService resolves the day's selection and settles completions.
type ChallengeService struct {
	progression progressionin.Usecase
	store       challengeout.StateStore
	sessions    challengeout.SessionFeed
	clock       clock.Clock
}

func NewChallengeService(
	progression progressionin.Usecase,
	store challengeout.StateStore,
	sessions challengeout.SessionFeed,
	clk clock.Clock,
) *ChallengeService {
	return &ChallengeService{
		progression: progression,
		store:       store,
		sessions:    sessions,
		clock:       clk,
	}
}

type DayView struct {
	Definition domain.Definition
	Progress   int
	Completed  bool
}

func (s *ChallengeService) loadForToday(ctx context.Context) (domain.State, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		state = domain.DefaultState()
	}
	state.ForDay(dates.Key(s.clock.Now()))
	return state, nil
}

// Daily returns today's three challenges with live progress.
func (s *ChallengeService) Daily(ctx context.Context) ([]DayView, error) {
	state, err := s.loadForToday(ctx)
	if err != nil {
		return nil, err
	}
	player, err := s.progression.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	now := s.clock.Now()
	today, err := s.sessions.CompletedToday(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("today sessions: %w", err)
	}

	var views []DayView
	for _, def := range domain.SelectDaily(dates.DayOfYear(now)) {
		views = append(views, DayView{
			Definition: def,
			Progress:   domain.Progress(def, today, player.Profile.CurrentStreak, player.Settings.DailyGoal),
			Completed:  state.IsCompleted(def.ID),
		})
	}
	return views, nil
}

type Completion struct {
	Definition domain.Definition
	XPEarned   int
}

// Evaluate settles every daily challenge whose goal is newly met. Each
// challenge pays out at most once per day.
func (s *ChallengeService) Evaluate(ctx context.Context) ([]Completion, error) {
	state, err := s.loadForToday(ctx)
	if err != nil {
		return nil, err
	}
	player, err := s.progression.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	now := s.clock.Now()
	today, err := s.sessions.CompletedToday(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("today sessions: %w", err)
	}

	var completions []Completion
	for _, def := range domain.SelectDaily(dates.DayOfYear(now)) {
		if state.IsCompleted(def.ID) {
			continue
		}
		progress := domain.Progress(def, today, player.Profile.CurrentStreak, player.Settings.DailyGoal)
		if progress < def.Goal {
			continue
		}
		earned := domain.FinalReward(def.XPReward, player.Profile.CurrentStreak)
		state.MarkCompleted(def.ID)
		state.AddHistory(domain.HistoryEntry{
			ID:          def.ID,
			Title:       def.Title,
			CompletedAt: now,
			XPEarned:    earned,
		})
		completions = append(completions, Completion{Definition: def, XPEarned: earned})
	}
	if len(completions) == 0 {
		return nil, nil
	}
	// Persist the completed set before paying out, so a failed save cannot
	// leave a settled challenge eligible to pay again on the next pass.
	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	for _, completion := range completions {
		if _, err := s.progression.AwardXP(ctx, progressiondto.AwardInput{Base: completion.XPEarned, Source: "challenge"}); err != nil {
			return nil, fmt.Errorf("award %s: %w", completion.Definition.ID, err)
		}
	}
	return completions, nil
}

func (s *ChallengeService) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	state, err := s.loadForToday(ctx)
	if err != nil {
		return nil, err
	}
	return state.History, nil
}

func (s *ChallengeService) CompletedCount(ctx context.Context) (int, error) {
	state, err := s.loadForToday(ctx)
	if err != nil {
		return 0, err
	}
	return len(state.History), nil
}

func (s *ChallengeService) Export(ctx context.Context) (domain.State, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return domain.DefaultState(), nil
	}
	return state, nil
}

func (s *ChallengeService) Replace(ctx context.Context, state domain.State) error {
	return s.store.Save(ctx, state)
}

func (s *ChallengeService) Reset(ctx context.Context) error {
	return s.store.Save(ctx, domain.DefaultState())
}
