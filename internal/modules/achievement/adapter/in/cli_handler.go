package in

import (
	"context"

	"pomo/internal/modules/achievement/dto"
	achievementin "pomo/internal/modules/achievement/port/in"
)

type CLIHandler struct {
	usecase achievementin.Usecase
}

func NewCLIHandler(usecase achievementin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.Achievement, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Evaluate(ctx context.Context) ([]dto.Unlock, error) {
	return h.usecase.Evaluate(ctx)
}
