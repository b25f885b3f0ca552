package in

import (
	"context"

	progressiondto "pomo/internal/modules/progression/dto"
	progressionin "pomo/internal/modules/progression/port/in"
)

type CLIHandler struct {
	usecase progressionin.Usecase
}

func NewCLIHandler(usecase progressionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context) (progressiondto.PlayerOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Rollover(ctx context.Context) (progressiondto.RolloverOutput, error) {
	return h.usecase.Rollover(ctx)
}

func (h CLIHandler) UpdateSettings(ctx context.Context, settings progressiondto.Settings) (progressiondto.Settings, error) {
	return h.usecase.UpdateSettings(ctx, settings)
}

func (h CLIHandler) ActivatePowerup(ctx context.Context, kind string) error {
	return h.usecase.ActivatePowerup(ctx, kind)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}
