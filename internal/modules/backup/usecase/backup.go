package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pomo/internal/modules/backup/dto"
	backupin "pomo/internal/modules/backup/port/in"
	backupout "pomo/internal/modules/backup/port/out"
	challengein "pomo/internal/modules/challenge/port/in"
	progressionin "pomo/internal/modules/progression/port/in"
	timerdomain "pomo/internal/modules/timer/domain"
	timerin "pomo/internal/modules/timer/port/in"
	"pomo/internal/platform/clock"
	"pomo/internal/platform/dates"
	apperrors "pomo/internal/platform/errors"
)

const snapshotVersion = 1

type Interactor struct {
	progression progressionin.Usecase
	timer       timerin.Usecase
	challenges  challengein.Usecase
	reports     backupout.ReportWriter
	clock       clock.Clock
}

func NewInteractor(
	progression progressionin.Usecase,
	timer timerin.Usecase,
	challenges challengein.Usecase,
	reports backupout.ReportWriter,
	clk clock.Clock,
) backupin.Usecase {
	return &Interactor{
		progression: progression,
		timer:       timer,
		challenges:  challenges,
		reports:     reports,
		clock:       clk,
	}
}

func (i *Interactor) Export(ctx context.Context) (dto.Snapshot, error) {
	progression, err := i.progression.ExportState(ctx)
	if err != nil {
		return dto.Snapshot{}, fmt.Errorf("export progression: %w", err)
	}
	sessions, err := i.timer.Sessions(ctx, 0)
	if err != nil {
		return dto.Snapshot{}, fmt.Errorf("export sessions: %w", err)
	}
	challenges, err := i.challenges.ExportState(ctx)
	if err != nil {
		return dto.Snapshot{}, fmt.Errorf("export challenges: %w", err)
	}
	return dto.Snapshot{
		Version:     snapshotVersion,
		ExportedAt:  i.clock.Now(),
		Progression: progression,
		Sessions:    sessions,
		Challenges:  challenges,
	}, nil
}

func (i *Interactor) ExportToFile(ctx context.Context, path string) error {
	snapshot, err := i.Export(ctx)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Import validates the whole snapshot before touching any store, so a
// bad file can never leave the data half replaced.
func (i *Interactor) Import(ctx context.Context, snapshot dto.Snapshot) error {
	if err := validate(snapshot); err != nil {
		return err
	}
	if err := i.progression.ImportState(ctx, snapshot.Progression); err != nil {
		return fmt.Errorf("import progression: %w", err)
	}
	if err := i.timer.ReplaceSessions(ctx, snapshot.Sessions); err != nil {
		return fmt.Errorf("import sessions: %w", err)
	}
	if err := i.challenges.ImportState(ctx, snapshot.Challenges); err != nil {
		return fmt.Errorf("import challenges: %w", err)
	}
	return nil
}

func (i *Interactor) ImportFromFile(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var snapshot dto.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidSnapshot, err)
	}
	return i.Import(ctx, snapshot)
}

func validate(snapshot dto.Snapshot) error {
	if snapshot.Version != snapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", apperrors.ErrInvalidSnapshot, snapshot.Version)
	}
	if snapshot.Progression.Profile.Level < 0 || snapshot.Progression.Profile.XP < 0 {
		return fmt.Errorf("%w: negative profile values", apperrors.ErrInvalidSnapshot)
	}
	seen := map[string]bool{}
	for _, session := range snapshot.Sessions {
		if session.ID == "" {
			return fmt.Errorf("%w: session without id", apperrors.ErrInvalidSnapshot)
		}
		if seen[session.ID] {
			return fmt.Errorf("%w: duplicate session id %s", apperrors.ErrInvalidSnapshot, session.ID)
		}
		seen[session.ID] = true
		if !timerdomain.Mode(session.Mode).Valid() {
			return fmt.Errorf("%w: unknown mode %q", apperrors.ErrInvalidSnapshot, session.Mode)
		}
		if session.DurationSeconds <= 0 {
			return fmt.Errorf("%w: session %s has duration %d", apperrors.ErrInvalidSnapshot, session.ID, session.DurationSeconds)
		}
	}
	return nil
}

func (i *Interactor) Report(ctx context.Context, date string) (dto.Report, error) {
	if date == "" {
		date = dates.Key(i.clock.Now())
	}
	if _, ok := dates.Parse(date); !ok {
		return dto.Report{}, apperrors.ErrInvalidInput
	}

	sessions, err := i.timer.CompletedOn(ctx, date)
	if err != nil {
		return dto.Report{}, fmt.Errorf("day sessions: %w", err)
	}
	history, err := i.challenges.History(ctx)
	if err != nil {
		return dto.Report{}, fmt.Errorf("challenge history: %w", err)
	}

	report := dto.Report{Date: date}
	var body string
	body += fmt.Sprintf("# Day report %s\n\n## Sessions\n\n", date)
	for _, session := range sessions {
		if timerdomain.Mode(session.Mode).IsBreak() {
			continue
		}
		report.Sessions++
		report.Minutes += session.DurationSeconds / 60
		report.XPEarned += session.XPEarned
		body += fmt.Sprintf("- %s %s (%d min, +%d XP)\n",
			session.StartedAt.Format("15:04"), session.Mode, session.DurationSeconds/60, session.XPEarned)
	}
	if report.Sessions == 0 {
		body += "No focus sessions.\n"
	}

	body += "\n## Challenges\n\n"
	challengesDone := 0
	for _, entry := range history {
		if dates.Key(entry.CompletedAt) != date {
			continue
		}
		challengesDone++
		report.XPEarned += entry.XPEarned
		body += fmt.Sprintf("- %s (+%d XP)\n", entry.Title, entry.XPEarned)
	}
	if challengesDone == 0 {
		body += "No challenges completed.\n"
	}

	meta := map[string]any{
		"date":                 date,
		"sessions":             report.Sessions,
		"focus_minutes":        report.Minutes,
		"xp_earned":            report.XPEarned,
		"challenges_completed": challengesDone,
	}
	path, err := i.reports.Write(ctx, date, meta, body)
	if err != nil {
		return dto.Report{}, err
	}
	report.Path = path
	return report, nil
}
