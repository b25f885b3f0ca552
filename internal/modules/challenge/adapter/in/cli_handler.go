package in

import (
	"context"

	"pomo/internal/modules/challenge/dto"
	challengein "pomo/internal/modules/challenge/port/in"
)

type CLIHandler struct {
	usecase challengein.Usecase
}

func NewCLIHandler(usecase challengein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Daily(ctx context.Context) ([]dto.Challenge, error) {
	return h.usecase.Daily(ctx)
}

func (h CLIHandler) History(ctx context.Context) ([]dto.HistoryEntry, error) {
	return h.usecase.History(ctx)
}
