package out

import (
	"context"
	"time"

	"pomo/internal/modules/timer/domain"
)

// SessionLog is the append-only run history.
type SessionLog interface {
	Append(ctx context.Context, session domain.Session) error
	Complete(ctx context.Context, id string, endedAt time.Time, xpEarned int) error
	Get(ctx context.Context, id string) (domain.Session, error)
	CompletedOnDay(ctx context.Context, day string) ([]domain.Session, error)
	DayTotals(ctx context.Context, fromDay, toDay string) ([]domain.DayTotal, error)
	List(ctx context.Context, limit int) ([]domain.Session, error)
	ReplaceAll(ctx context.Context, sessions []domain.Session) error
	Clear(ctx context.Context) error
}

// ActiveStore holds at most one in-flight run for crash recovery.
type ActiveStore interface {
	Save(ctx context.Context, active domain.Active) error
	Load(ctx context.Context) (*domain.Active, error)
	Clear(ctx context.Context) error
}
