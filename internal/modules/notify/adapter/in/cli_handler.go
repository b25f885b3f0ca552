package in

import (
	"context"

	"pomo/internal/modules/notify/dto"
	notifyin "pomo/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.Plugin, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Test(ctx context.Context, name string) error {
	return h.usecase.Test(ctx, name)
}
