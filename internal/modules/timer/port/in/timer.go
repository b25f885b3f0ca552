package in

import (
	"context"

	"pomo/internal/modules/timer/dto"
)

// Usecase drives timer runs and their downstream effects. The countdown
// itself lives in the caller (TUI or headless runner); this port owns
// persistence and what happens when a run starts or ends.
type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Cancel(ctx context.Context) (dto.Session, error)
	Complete(ctx context.Context) (dto.CompleteOutput, error)
	ActiveSession(ctx context.Context) (*dto.Active, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Sessions(ctx context.Context, limit int) ([]dto.Session, error)
	CompletedOn(ctx context.Context, day string) ([]dto.Session, error)
	ReplaceSessions(ctx context.Context, sessions []dto.Session) error
	ClearSessions(ctx context.Context) error
}
