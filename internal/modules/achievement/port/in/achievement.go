package in

import (
	"context"

	"pomo/internal/modules/achievement/dto"
)

// Usecase evaluates and lists achievements. Evaluate is safe to run
// after every session; already-held achievements are never re-granted.
type Usecase interface {
	Evaluate(ctx context.Context) ([]dto.Unlock, error)
	List(ctx context.Context) ([]dto.Achievement, error)
}
