package out

import (
	"context"
	"time"

	"pomo/internal/modules/challenge/domain"
)

// StateStore persists the day's completions and the history log. Load
// degrades to the default state when the file is missing or unreadable.
type StateStore interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, state domain.State) error
}

// SessionFeed supplies today's completed focus sessions.
type SessionFeed interface {
	CompletedToday(ctx context.Context, now time.Time) ([]domain.SessionInfo, error)
}
