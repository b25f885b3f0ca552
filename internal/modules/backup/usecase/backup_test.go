package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	achievementadapter "pomo/internal/modules/achievement/adapter/out"
	achievementusecase "pomo/internal/modules/achievement/usecase"
	backupadapter "pomo/internal/modules/backup/adapter/out"
	backupin "pomo/internal/modules/backup/port/in"
	challengeadapter "pomo/internal/modules/challenge/adapter/out"
	challengeusecase "pomo/internal/modules/challenge/usecase"
	progressionadapter "pomo/internal/modules/progression/adapter/out"
	progressionin "pomo/internal/modules/progression/port/in"
	progressionservice "pomo/internal/modules/progression/service"
	progressionusecase "pomo/internal/modules/progression/usecase"
	timeradapter "pomo/internal/modules/timer/adapter/out"
	timerdto "pomo/internal/modules/timer/dto"
	timerin "pomo/internal/modules/timer/port/in"
	timerservice "pomo/internal/modules/timer/service"
	timerusecase "pomo/internal/modules/timer/usecase"
	apperrors "pomo/internal/platform/errors"
	"pomo/internal/platform/id"
	"pomo/internal/platform/markdown"
	"pomo/internal/platform/random"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type engine struct {
	backup      backupin.Usecase
	timer       timerin.Usecase
	progression progressionin.Usecase
	dir         string
}

func newEngine(t *testing.T, clk *fakeClock) engine {
	t.Helper()
	dir := t.TempDir()

	progression := progressionusecase.NewInteractor(progressionservice.NewProgressionService(
		clk,
		random.Fixed(0.9),
		progressionadapter.NewFileProfileStore(dir),
		progressionadapter.NewFileInventoryStore(dir),
		progressionadapter.NewYAMLSettingsStore(filepath.Join(dir, "settings.yaml")),
	))

	log, err := timeradapter.NewSQLiteSessionLog(filepath.Join(dir, "pomo.db"))
	if err != nil {
		t.Fatalf("session log: %v", err)
	}
	active := timeradapter.NewFileActiveStore(dir)

	challenges := challengeusecase.NewInteractor(
		progression,
		challengeadapter.NewFileStateStore(dir),
		challengeadapter.NewLogSessionFeed(log),
		clk,
	)
	achievements := achievementusecase.NewInteractor(
		progression,
		achievementadapter.NewLogSessionFeed(log),
		achievementadapter.NewChallengeCounter(challenges),
		clk,
	)
	timer := timerusecase.NewInteractor(
		timerservice.NewTimerService(log, active, clk, id.RandomHex{}),
		progression,
		achievements,
		challenges,
		nil,
	)
	backup := NewInteractor(progression, timer, challenges, backupadapter.NewFileReportWriter(dir), clk)
	return engine{backup: backup, timer: timer, progression: progression, dir: dir}
}

func completeFocus(t *testing.T, e engine, clk *fakeClock) {
	t.Helper()
	ctx := context.Background()
	if _, err := e.timer.Start(ctx, timerdto.StartInput{Mode: "focus"}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	clk.now = clk.now.Add(25 * time.Minute)
	if _, err := e.timer.Complete(ctx); err != nil {
		t.Fatalf("Complete: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)}
	source := newEngine(t, clk)
	ctx := context.Background()

	completeFocus(t, source, clk)
	completeFocus(t, source, clk)

	path := filepath.Join(source.dir, "export.json")
	if err := source.backup.ExportToFile(ctx, path); err != nil {
		t.Fatalf("ExportToFile: %v", err)
	}

	target := newEngine(t, clk)
	if err := target.backup.ImportFromFile(ctx, path); err != nil {
		t.Fatalf("ImportFromFile: %v", err)
	}

	want, err := source.progression.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got, err := target.progression.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Profile.TotalSessions != want.Profile.TotalSessions || got.Profile.TotalXP != want.Profile.TotalXP {
		t.Errorf("imported profile = %+v, want %+v", got.Profile, want.Profile)
	}

	sessions, err := target.timer.Sessions(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Errorf("imported %d sessions, want 2", len(sessions))
	}
}

func TestImportRejectsBadSnapshots(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)}
	e := newEngine(t, clk)
	ctx := context.Background()

	snapshot, err := e.backup.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}

	bad := snapshot
	bad.Version = 99
	if err := e.backup.Import(ctx, bad); !errors.Is(err, apperrors.ErrInvalidSnapshot) {
		t.Errorf("bad version err = %v, want ErrInvalidSnapshot", err)
	}

	bad = snapshot
	bad.Sessions = []timerdto.Session{
		{ID: "dup", Mode: "focus", DurationSeconds: 1500, StartedAt: clk.now},
		{ID: "dup", Mode: "focus", DurationSeconds: 1500, StartedAt: clk.now},
	}
	if err := e.backup.Import(ctx, bad); !errors.Is(err, apperrors.ErrInvalidSnapshot) {
		t.Errorf("duplicate ids err = %v, want ErrInvalidSnapshot", err)
	}

	bad = snapshot
	bad.Sessions = []timerdto.Session{{ID: "x", Mode: "nap", DurationSeconds: 1500, StartedAt: clk.now}}
	if err := e.backup.Import(ctx, bad); !errors.Is(err, apperrors.ErrInvalidSnapshot) {
		t.Errorf("bad mode err = %v, want ErrInvalidSnapshot", err)
	}
}

func TestImportValidatesBeforeWriting(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)}
	e := newEngine(t, clk)
	ctx := context.Background()

	completeFocus(t, e, clk)
	before, err := e.progression.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}

	snapshot, err := e.backup.Export(ctx)
	if err != nil {
		t.Fatal(err)
	}
	snapshot.Version = 99
	snapshot.Progression.Profile.TotalSessions = 777
	if err := e.backup.Import(ctx, snapshot); err == nil {
		t.Fatal("invalid snapshot imported")
	}

	after, err := e.progression.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if after.Profile.TotalSessions != before.Profile.TotalSessions {
		t.Errorf("rejected import still wrote state: %d -> %d", before.Profile.TotalSessions, after.Profile.TotalSessions)
	}
}

func TestReport(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)}
	e := newEngine(t, clk)
	ctx := context.Background()

	completeFocus(t, e, clk)

	report, err := e.backup.Report(ctx, "")
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if report.Sessions != 1 || report.Minutes != 25 {
		t.Errorf("report = %+v, want 1 session / 25 minutes", report)
	}

	raw, err := os.ReadFile(report.Path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(raw))
	if err != nil {
		t.Fatalf("SplitFrontmatter: %v", err)
	}
	if meta["date"] != "2026-03-10" {
		t.Errorf("frontmatter date = %v", meta["date"])
	}
	if !strings.Contains(body, "focus") {
		t.Errorf("body missing session line:\n%s", body)
	}
}

func TestReportRejectsBadDate(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)}
	e := newEngine(t, clk)

	_, err := e.backup.Report(context.Background(), "yesterday")
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
