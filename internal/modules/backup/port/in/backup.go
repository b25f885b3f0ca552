package in

import (
	"context"

	"pomo/internal/modules/backup/dto"
)

// Usecase moves whole-player state in and out of the app and renders
// day reports.
type Usecase interface {
	Export(ctx context.Context) (dto.Snapshot, error)
	ExportToFile(ctx context.Context, path string) error
	Import(ctx context.Context, snapshot dto.Snapshot) error
	ImportFromFile(ctx context.Context, path string) error
	Report(ctx context.Context, date string) (dto.Report, error)
}
