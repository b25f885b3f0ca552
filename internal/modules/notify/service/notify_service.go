package service

import (
	"context"
	"fmt"

	"pomo/internal/modules/notify/domain"
	notifyout "pomo/internal/modules/notify/port/out"

	hclog "github.com/hashicorp/go-hclog"
)

// NotifyService fans events out to every installed, enabled notifier.
// A broken plugin never fails the engine; its errors go to the logger.
type NotifyService struct {
	store  notifyout.ManifestStore
	host   notifyout.Host
	logger hclog.Logger
}

func NewNotifyService(store notifyout.ManifestStore, host notifyout.Host, logger hclog.Logger) *NotifyService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &NotifyService{store: store, host: host, logger: logger}
}

func (s *NotifyService) Dispatch(ctx context.Context, notification domain.Notification) {
	if err := notification.Validate(); err != nil {
		s.logger.Warn("dropping notification", "error", err)
		return
	}
	manifests, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("load notifier manifests", "error", err)
		return
	}
	for _, manifest := range manifests {
		if !manifest.Enabled || !manifest.Subscribed(notification.Event) {
			continue
		}
		if err := manifest.Validate(); err != nil {
			s.logger.Warn("skipping invalid manifest", "notifier", manifest.Name, "error", err)
			continue
		}
		if err := s.host.Notify(ctx, manifest, notification); err != nil {
			s.logger.Warn("notifier failed", "notifier", manifest.Name, "event", notification.Event, "error", err)
		}
	}
}

func (s *NotifyService) List(ctx context.Context) ([]domain.Manifest, error) {
	return s.store.Load(ctx)
}

// Test launches the named notifier and round-trips its metadata.
func (s *NotifyService) Test(ctx context.Context, name string) error {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	for _, manifest := range manifests {
		if manifest.Name != name {
			continue
		}
		if !manifest.Enabled {
			return domain.ErrNotifierDisabled
		}
		if err := manifest.Validate(); err != nil {
			return err
		}
		return s.host.CheckLifecycle(ctx, manifest)
	}
	return fmt.Errorf("%w: %s", domain.ErrUnknownNotifier, name)
}
