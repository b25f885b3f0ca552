package in

import (
	"context"

	"pomo/internal/modules/progression/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.PlayerOutput, error)
	CompleteFocus(ctx context.Context, input dto.CompleteFocusInput) (dto.CompleteFocusOutput, error)
	AwardXP(ctx context.Context, input dto.AwardInput) (dto.AwardOutput, error)
	GrantUnlock(ctx context.Context, input dto.UnlockGrantInput) error
	ActivatePowerup(ctx context.Context, kind string) error
	Rollover(ctx context.Context) (dto.RolloverOutput, error)
	UpdateSettings(ctx context.Context, input dto.Settings) (dto.Settings, error)
	ExportState(ctx context.Context) (dto.State, error)
	ImportState(ctx context.Context, state dto.State) error
	Reset(ctx context.Context) error
}
