package usecase

import (
	"context"

	"pomo/internal/modules/challenge/domain"
	"pomo/internal/modules/challenge/dto"
	challengein "pomo/internal/modules/challenge/port/in"
	challengeout "pomo/internal/modules/challenge/port/out"
	"pomo/internal/modules/challenge/service"
	progressionin "pomo/internal/modules/progression/port/in"
	"pomo/internal/platform/clock"
)

type Interactor struct {
	service *service.ChallengeService
}

func NewInteractor(
	progression progressionin.Usecase,
	store challengeout.StateStore,
	sessions challengeout.SessionFeed,
	clk clock.Clock,
) challengein.Usecase {
	return &Interactor{
		service: service.NewChallengeService(progression, store, sessions, clk),
	}
}

func (i *Interactor) Daily(ctx context.Context) ([]dto.Challenge, error) {
	views, err := i.service.Daily(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Challenge, 0, len(views))
	for _, view := range views {
		def := view.Definition
		out = append(out, dto.Challenge{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Goal:        def.Goal,
			Progress:    view.Progress,
			Unit:        def.Unit,
			XPReward:    def.XPReward,
			Difficulty:  def.Difficulty,
			Category:    def.Category,
			Completed:   view.Completed,
		})
	}
	return out, nil
}

func (i *Interactor) Evaluate(ctx context.Context) ([]dto.Completion, error) {
	completions, err := i.service.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Completion, 0, len(completions))
	for _, c := range completions {
		out = append(out, dto.Completion{
			ID:       c.Definition.ID,
			Title:    c.Definition.Title,
			Icon:     c.Definition.Icon,
			XPReward: c.Definition.XPReward,
			XPEarned: c.XPEarned,
		})
	}
	return out, nil
}

func (i *Interactor) History(ctx context.Context) ([]dto.HistoryEntry, error) {
	entries, err := i.service.History(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.HistoryEntry(entry))
	}
	return out, nil
}

func (i *Interactor) CompletedCount(ctx context.Context) (int, error) {
	return i.service.CompletedCount(ctx)
}

func (i *Interactor) ExportState(ctx context.Context) (dto.State, error) {
	state, err := i.service.Export(ctx)
	if err != nil {
		return dto.State{}, err
	}
	out := dto.State{Date: state.Date, Completed: state.Completed}
	for _, entry := range state.History {
		out.History = append(out.History, dto.HistoryEntry(entry))
	}
	return out, nil
}

func (i *Interactor) ImportState(ctx context.Context, state dto.State) error {
	in := domain.State{Date: state.Date, Completed: state.Completed}
	for _, entry := range state.History {
		in.History = append(in.History, domain.HistoryEntry(entry))
	}
	return i.service.Replace(ctx, in)
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.service.Reset(ctx)
}
