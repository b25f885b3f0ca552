package in

import (
	"context"

	"pomo/internal/modules/notify/dto"
)

// Usecase fans engine events out to installed notifier plugins. Dispatch
// never fails the caller; plugin errors are swallowed after logging.
type Usecase interface {
	Dispatch(ctx context.Context, event dto.Event)
	List(ctx context.Context) ([]dto.Plugin, error)
	Test(ctx context.Context, name string) error
}
