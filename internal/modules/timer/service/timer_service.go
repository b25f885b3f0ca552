package service

import (
	"context"
	"fmt"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/dates"
	apperrors "pomo/internal/platform/errors"
	"pomo/internal/platform/id"
)

// TimerService owns the session log and the single active-run record.
type TimerService struct {
	log    timerout.SessionLog
	active timerout.ActiveStore
	clock  clock.Clock
	ids    id.Generator
}

func NewTimerService(log timerout.SessionLog, active timerout.ActiveStore, clk clock.Clock, ids id.Generator) *TimerService {
	return &TimerService{log: log, active: active, clock: clk, ids: ids}
}

// StartSession opens a run: an incomplete row in the log plus the
// active-state file. Only one run may be open at a time.
func (s *TimerService) StartSession(ctx context.Context, mode domain.Mode, customMinutes int) (domain.Session, error) {
	existing, err := s.active.Load(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load active session: %w", err)
	}
	if existing != nil {
		return domain.Session{}, apperrors.ErrActiveSessionExists
	}

	session := domain.Session{
		ID:              s.ids.New(),
		Mode:            mode,
		DurationSeconds: domain.DurationFor(mode, customMinutes),
		StartedAt:       s.clock.Now(),
	}
	if err := s.log.Append(ctx, session); err != nil {
		return domain.Session{}, err
	}
	err = s.active.Save(ctx, domain.Active{
		SessionID:    session.ID,
		Mode:         session.Mode,
		StartedAt:    session.StartedAt,
		TotalSeconds: session.DurationSeconds,
	})
	if err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

// CancelActive abandons the open run. The log row keeps completed=false.
func (s *TimerService) CancelActive(ctx context.Context) (domain.Session, error) {
	active, err := s.requireActive(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.active.Clear(ctx); err != nil {
		return domain.Session{}, err
	}
	return s.log.Get(ctx, active.SessionID)
}

// CompleteActive stamps the open run's row and releases the active slot.
func (s *TimerService) CompleteActive(ctx context.Context, xpEarned int) (domain.Session, error) {
	active, err := s.requireActive(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.log.Complete(ctx, active.SessionID, s.clock.Now(), xpEarned); err != nil {
		return domain.Session{}, err
	}
	if err := s.active.Clear(ctx); err != nil {
		return domain.Session{}, err
	}
	return s.log.Get(ctx, active.SessionID)
}

func (s *TimerService) Active(ctx context.Context) (*domain.Active, error) {
	return s.active.Load(ctx)
}

func (s *TimerService) requireActive(ctx context.Context) (*domain.Active, error) {
	active, err := s.active.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active session: %w", err)
	}
	if active == nil {
		return nil, apperrors.ErrNoActiveSession
	}
	return active, nil
}

func (s *TimerService) CompletedToday(ctx context.Context) ([]domain.Session, error) {
	return s.log.CompletedOnDay(ctx, dates.Key(s.clock.Now()))
}

func (s *TimerService) CompletedOn(ctx context.Context, day string) ([]domain.Session, error) {
	return s.log.CompletedOnDay(ctx, day)
}

func (s *TimerService) DayTotals(ctx context.Context, days int) ([]domain.DayTotal, error) {
	now := s.clock.Now()
	from := dates.Key(now.AddDate(0, 0, -(days - 1)))
	return s.log.DayTotals(ctx, from, dates.Key(now))
}

func (s *TimerService) Sessions(ctx context.Context, limit int) ([]domain.Session, error) {
	return s.log.List(ctx, limit)
}

func (s *TimerService) ReplaceSessions(ctx context.Context, sessions []domain.Session) error {
	return s.log.ReplaceAll(ctx, sessions)
}

func (s *TimerService) ClearSessions(ctx context.Context) error {
	if err := s.log.Clear(ctx); err != nil {
		return err
	}
	return s.active.Clear(ctx)
}
