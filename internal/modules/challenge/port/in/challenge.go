package in

import (
	"context"

	"pomo/internal/modules/challenge/dto"
)

// Usecase serves the day's challenges and settles them after sessions.
type Usecase interface {
	Daily(ctx context.Context) ([]dto.Challenge, error)
	Evaluate(ctx context.Context) ([]dto.Completion, error)
	History(ctx context.Context) ([]dto.HistoryEntry, error)
	CompletedCount(ctx context.Context) (int, error)
	ExportState(ctx context.Context) (dto.State, error)
	ImportState(ctx context.Context, state dto.State) error
	Reset(ctx context.Context) error
}
