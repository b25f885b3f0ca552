package out

import (
	"context"

	"pomo/internal/modules/progression/domain"
)

// Stores degrade missing or corrupt files to defaults; an error means real
// I/O trouble, and callers still fall back to defaults rather than fail.

type ProfileStore interface {
	Load(ctx context.Context) (domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
}

type InventoryStore interface {
	Load(ctx context.Context) (domain.Inventory, error)
	Save(ctx context.Context, inventory domain.Inventory) error
}

type SettingsStore interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
