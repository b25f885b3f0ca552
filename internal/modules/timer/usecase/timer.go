package usecase

import (
	"context"
	"strconv"

	achievementin "pomo/internal/modules/achievement/port/in"
	challengein "pomo/internal/modules/challenge/port/in"
	notifydto "pomo/internal/modules/notify/dto"
	notifyin "pomo/internal/modules/notify/port/in"
	progressiondto "pomo/internal/modules/progression/dto"
	progressionin "pomo/internal/modules/progression/port/in"
	"pomo/internal/modules/timer/domain"
	"pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
	"pomo/internal/modules/timer/service"
	apperrors "pomo/internal/platform/errors"
)

// Interactor runs the session lifecycle. Completing a focus run feeds
// progression, then challenges, then achievements, then notifiers, in
// that order; challenge XP can mint level-ups the same pass picks up.
type Interactor struct {
	service      *service.TimerService
	progression  progressionin.Usecase
	achievements achievementin.Usecase
	challenges   challengein.Usecase
	notifier     notifyin.Usecase
}

func NewInteractor(
	svc *service.TimerService,
	progression progressionin.Usecase,
	achievements achievementin.Usecase,
	challenges challengein.Usecase,
	notifier notifyin.Usecase,
) timerin.Usecase {
	return &Interactor{
		service:      svc,
		progression:  progression,
		achievements: achievements,
		challenges:   challenges,
		notifier:     notifier,
	}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	mode := domain.Mode(input.Mode)
	if input.Mode == "" {
		mode = domain.ModeFocus
	}
	if !mode.Valid() {
		return dto.StartOutput{}, apperrors.ErrInvalidInput
	}
	player, err := i.progression.Get(ctx)
	if err != nil {
		return dto.StartOutput{}, err
	}
	session, err := i.service.StartSession(ctx, mode, player.Settings.CustomMinutes)
	if err != nil {
		return dto.StartOutput{}, err
	}
	return dto.StartOutput{
		SessionID:       session.ID,
		Mode:            string(session.Mode),
		DurationSeconds: session.DurationSeconds,
		StartedAt:       session.StartedAt,
	}, nil
}

func (i *Interactor) Cancel(ctx context.Context) (dto.Session, error) {
	session, err := i.service.CancelActive(ctx)
	if err != nil {
		return dto.Session{}, err
	}
	return toSessionDTO(session), nil
}

func (i *Interactor) Complete(ctx context.Context) (dto.CompleteOutput, error) {
	active, err := i.service.Active(ctx)
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	if active == nil {
		return dto.CompleteOutput{}, apperrors.ErrNoActiveSession
	}
	if active.Mode.IsBreak() {
		return i.completeBreak(ctx)
	}
	return i.completeFocus(ctx, active)
}

func (i *Interactor) completeBreak(ctx context.Context) (dto.CompleteOutput, error) {
	session, err := i.service.CompleteActive(ctx, 0)
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	return dto.CompleteOutput{Session: toSessionDTO(session)}, nil
}

func (i *Interactor) completeFocus(ctx context.Context, active *domain.Active) (dto.CompleteOutput, error) {
	progress, err := i.progression.CompleteFocus(ctx, progressiondto.CompleteFocusInput{
		DurationSeconds: active.TotalSeconds,
		StartedAt:       active.StartedAt,
	})
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	session, err := i.service.CompleteActive(ctx, progress.XPEarned)
	if err != nil {
		return dto.CompleteOutput{}, err
	}

	completions, err := i.challenges.Evaluate(ctx)
	if err != nil {
		return dto.CompleteOutput{}, err
	}
	unlocks, err := i.achievements.Evaluate(ctx)
	if err != nil {
		return dto.CompleteOutput{}, err
	}

	out := dto.CompleteOutput{
		Session:        toSessionDTO(session),
		XPEarned:       progress.XPEarned,
		Level:          progress.Level,
		StreakAfter:    progress.StreakAfter,
		StreakExtended: progress.StreakExtended,
		NextBreak:      nextBreak(progress.TotalSessions),
	}
	for _, up := range progress.LevelUps {
		out.LevelUps = append(out.LevelUps, dto.LevelUp(up))
	}
	for _, unlock := range unlocks {
		out.Unlocked = append(out.Unlocked, dto.Unlock{
			ID:     unlock.ID,
			Name:   unlock.Name,
			Rarity: unlock.Rarity,
			Points: unlock.Points,
		})
	}
	for _, done := range completions {
		out.ChallengesDone = append(out.ChallengesDone, dto.ChallengeResult{
			ID:       done.ID,
			Name:     done.Title,
			XPReward: done.XPReward,
			Bonus:    done.XPEarned - done.XPReward,
		})
	}

	i.dispatchEvents(ctx, out)
	return out, nil
}

// Every fourth completed focus session earns the long break.
func nextBreak(totalSessions int) string {
	if totalSessions > 0 && totalSessions%4 == 0 {
		return string(domain.ModeLongBreak)
	}
	return string(domain.ModeShortBreak)
}

func (i *Interactor) dispatchEvents(ctx context.Context, out dto.CompleteOutput) {
	if i.notifier == nil {
		return
	}
	// Plugins decide whether to beep or buzz, so every event carries the
	// player's sound and vibration preferences.
	prefs := map[string]string{"sound_enabled": "true", "vibration_enabled": "true"}
	if player, err := i.progression.Get(ctx); err == nil {
		prefs["sound_enabled"] = strconv.FormatBool(player.Settings.SoundEnabled)
		prefs["vibration_enabled"] = strconv.FormatBool(player.Settings.VibrationEnabled)
	}
	stamp := func(payload map[string]string) map[string]string {
		for k, v := range prefs {
			payload[k] = v
		}
		return payload
	}
	i.notifier.Dispatch(ctx, notifydto.Event{
		Name: notifydto.EventSessionCompleted,
		Payload: stamp(map[string]string{
			"session_id": out.Session.ID,
			"mode":       out.Session.Mode,
			"xp_earned":  strconv.Itoa(out.XPEarned),
		}),
	})
	for _, up := range out.LevelUps {
		i.notifier.Dispatch(ctx, notifydto.Event{
			Name: notifydto.EventLevelUp,
			Payload: stamp(map[string]string{
				"level": strconv.Itoa(up.Level),
				"title": up.Title,
			}),
		})
	}
	for _, unlock := range out.Unlocked {
		i.notifier.Dispatch(ctx, notifydto.Event{
			Name: notifydto.EventAchievementUnlocked,
			Payload: stamp(map[string]string{
				"id":     unlock.ID,
				"name":   unlock.Name,
				"rarity": unlock.Rarity,
			}),
		})
	}
	for _, done := range out.ChallengesDone {
		i.notifier.Dispatch(ctx, notifydto.Event{
			Name: notifydto.EventChallengeCompleted,
			Payload: stamp(map[string]string{
				"id":   done.ID,
				"name": done.Name,
			}),
		})
	}
	if out.StreakExtended {
		i.notifier.Dispatch(ctx, notifydto.Event{
			Name:    notifydto.EventStreakChanged,
			Payload: stamp(map[string]string{"streak": strconv.Itoa(out.StreakAfter)}),
		})
	}
}

func (i *Interactor) ActiveSession(ctx context.Context) (*dto.Active, error) {
	active, err := i.service.Active(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, nil
	}
	return &dto.Active{
		SessionID:    active.SessionID,
		Mode:         string(active.Mode),
		StartedAt:    active.StartedAt,
		TotalSeconds: active.TotalSeconds,
	}, nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	totals, err := i.service.DayTotals(ctx, 7)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	player, err := i.progression.Get(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	today, err := i.service.CompletedToday(ctx)
	if err != nil {
		return dto.StatsOutput{}, err
	}

	var out dto.StatsOutput
	for _, total := range totals {
		out.Last7Days = append(out.Last7Days, dto.DayStats{
			Day:          total.Day,
			Sessions:     total.Sessions,
			FocusMinutes: total.FocusMinutes,
		})
	}
	for _, session := range today {
		if session.Mode.IsBreak() {
			continue
		}
		out.Today.Sessions++
		out.Today.FocusMinutes += session.DurationSeconds / 60
	}
	out.AllTime.Sessions = player.Profile.TotalSessions
	out.AllTime.FocusMinutes = player.Profile.TotalFocusSeconds / 60
	return out, nil
}

func (i *Interactor) Sessions(ctx context.Context, limit int) ([]dto.Session, error) {
	sessions, err := i.service.Sessions(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Session, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionDTO(session))
	}
	return out, nil
}

func (i *Interactor) CompletedOn(ctx context.Context, day string) ([]dto.Session, error) {
	sessions, err := i.service.CompletedOn(ctx, day)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Session, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionDTO(session))
	}
	return out, nil
}

func (i *Interactor) ReplaceSessions(ctx context.Context, sessions []dto.Session) error {
	converted := make([]domain.Session, 0, len(sessions))
	for _, session := range sessions {
		converted = append(converted, fromSessionDTO(session))
	}
	return i.service.ReplaceSessions(ctx, converted)
}

func (i *Interactor) ClearSessions(ctx context.Context) error {
	return i.service.ClearSessions(ctx)
}

func toSessionDTO(session domain.Session) dto.Session {
	return dto.Session{
		ID:              session.ID,
		Mode:            string(session.Mode),
		DurationSeconds: session.DurationSeconds,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		Completed:       session.Completed,
		XPEarned:        session.XPEarned,
	}
}

func fromSessionDTO(session dto.Session) domain.Session {
	return domain.Session{
		ID:              session.ID,
		Mode:            domain.Mode(session.Mode),
		DurationSeconds: session.DurationSeconds,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		Completed:       session.Completed,
		XPEarned:        session.XPEarned,
	}
}
