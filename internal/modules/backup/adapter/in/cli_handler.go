package in

import (
	"context"

	"pomo/internal/modules/backup/dto"
	backupin "pomo/internal/modules/backup/port/in"
)

type CLIHandler struct {
	usecase backupin.Usecase
}

func NewCLIHandler(usecase backupin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ExportToFile(ctx context.Context, path string) error {
	return h.usecase.ExportToFile(ctx, path)
}

func (h CLIHandler) ImportFromFile(ctx context.Context, path string) error {
	return h.usecase.ImportFromFile(ctx, path)
}

func (h CLIHandler) Report(ctx context.Context, date string) (dto.Report, error) {
	return h.usecase.Report(ctx, date)
}
