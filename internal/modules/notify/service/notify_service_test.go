package service

import (
	"context"
	"errors"
	"testing"

	"pomo/internal/modules/notify/domain"
)

type fakeStore struct {
	manifests []domain.Manifest
	err       error
}

func (f *fakeStore) Load(_ context.Context) ([]domain.Manifest, error) {
	return f.manifests, f.err
}

type fakeHost struct {
	notified []string
	err      error
}

func (f *fakeHost) CheckLifecycle(_ context.Context, manifest domain.Manifest) error {
	return f.err
}

func (f *fakeHost) GetMetadata(_ context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: manifest.Name}, f.err
}

func (f *fakeHost) Notify(_ context.Context, manifest domain.Manifest, _ domain.Notification) error {
	f.notified = append(f.notified, manifest.Name)
	return f.err
}

func manifest(name string, enabled bool, events ...string) domain.Manifest {
	return domain.Manifest{Name: name, Version: "1.0.0", Binary: "/bin/" + name, Enabled: enabled, Events: events}
}

func TestDispatchFansOut(t *testing.T) {
	t.Parallel()

	host := &fakeHost{}
	svc := NewNotifyService(&fakeStore{manifests: []domain.Manifest{
		manifest("all-events", true),
		manifest("levels-only", true, "level_up"),
		manifest("disabled", false),
	}}, host, nil)

	svc.Dispatch(context.Background(), domain.Notification{Event: "session_completed"})

	if len(host.notified) != 1 || host.notified[0] != "all-events" {
		t.Fatalf("notified = %v, want [all-events]", host.notified)
	}
}

func TestDispatchSubscriptionFilter(t *testing.T) {
	t.Parallel()

	host := &fakeHost{}
	svc := NewNotifyService(&fakeStore{manifests: []domain.Manifest{
		manifest("levels-only", true, "level_up"),
	}}, host, nil)

	svc.Dispatch(context.Background(), domain.Notification{Event: "level_up"})

	if len(host.notified) != 1 {
		t.Fatalf("subscribed notifier not called: %v", host.notified)
	}
}

func TestDispatchSwallowsHostErrors(t *testing.T) {
	t.Parallel()

	host := &fakeHost{err: errors.New("plugin crashed")}
	svc := NewNotifyService(&fakeStore{manifests: []domain.Manifest{
		manifest("crashy", true),
	}}, host, nil)

	// Must not panic or surface the error.
	svc.Dispatch(context.Background(), domain.Notification{Event: "streak_changed"})
}

func TestDispatchDropsUnknownEvent(t *testing.T) {
	t.Parallel()

	host := &fakeHost{}
	svc := NewNotifyService(&fakeStore{manifests: []domain.Manifest{
		manifest("all-events", true),
	}}, host, nil)

	svc.Dispatch(context.Background(), domain.Notification{Event: "nonsense"})

	if len(host.notified) != 0 {
		t.Fatalf("unknown event dispatched: %v", host.notified)
	}
}

func TestTestUnknownNotifier(t *testing.T) {
	t.Parallel()

	svc := NewNotifyService(&fakeStore{}, &fakeHost{}, nil)
	err := svc.Test(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUnknownNotifier) {
		t.Fatalf("err = %v, want ErrUnknownNotifier", err)
	}
}

func TestTestDisabledNotifier(t *testing.T) {
	t.Parallel()

	svc := NewNotifyService(&fakeStore{manifests: []domain.Manifest{
		manifest("off", false),
	}}, &fakeHost{}, nil)
	err := svc.Test(context.Background(), "off")
	if !errors.Is(err, domain.ErrNotifierDisabled) {
		t.Fatalf("err = %v, want ErrNotifierDisabled", err)
	}
}
