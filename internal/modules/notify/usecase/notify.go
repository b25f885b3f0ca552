package usecase

import (
	"context"

	"pomo/internal/modules/notify/domain"
	"pomo/internal/modules/notify/dto"
	notifyin "pomo/internal/modules/notify/port/in"
	"pomo/internal/modules/notify/service"
)

type Interactor struct {
	service *service.NotifyService
}

func NewInteractor(svc *service.NotifyService) notifyin.Usecase {
	return &Interactor{service: svc}
}

func (i *Interactor) Dispatch(ctx context.Context, event dto.Event) {
	i.service.Dispatch(ctx, domain.Notification{Event: event.Name, Payload: event.Payload})
}

func (i *Interactor) List(ctx context.Context) ([]dto.Plugin, error) {
	manifests, err := i.service.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Plugin, 0, len(manifests))
	for _, manifest := range manifests {
		out = append(out, dto.Plugin{
			Name:    manifest.Name,
			Version: manifest.Version,
			Binary:  manifest.Binary,
			Events:  manifest.Events,
		})
	}
	return out, nil
}

func (i *Interactor) Test(ctx context.Context, name string) error {
	return i.service.Test(ctx, name)
}
