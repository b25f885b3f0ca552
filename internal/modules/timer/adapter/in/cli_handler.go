package in

import (
	"context"

	"pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, input)
}

func (h CLIHandler) Cancel(ctx context.Context) (dto.Session, error) {
	return h.usecase.Cancel(ctx)
}

func (h CLIHandler) Complete(ctx context.Context) (dto.CompleteOutput, error) {
	return h.usecase.Complete(ctx)
}

func (h CLIHandler) ActiveSession(ctx context.Context) (*dto.Active, error) {
	return h.usecase.ActiveSession(ctx)
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Sessions(ctx context.Context, limit int) ([]dto.Session, error) {
	return h.usecase.Sessions(ctx, limit)
}
