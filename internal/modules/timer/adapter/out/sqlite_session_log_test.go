package out

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pomo/internal/modules/timer/domain"
	apperrors "pomo/internal/platform/errors"
)

func newLog(t *testing.T) *SQLiteSessionLog {
	t.Helper()
	log, err := NewSQLiteSessionLog(filepath.Join(t.TempDir(), "pomo.db"))
	if err != nil {
		t.Fatalf("NewSQLiteSessionLog: %v", err)
	}
	return log.(*SQLiteSessionLog)
}

func session(id string, mode domain.Mode, startedAt time.Time, seconds int) domain.Session {
	return domain.Session{ID: id, Mode: mode, DurationSeconds: seconds, StartedAt: startedAt}
}

func TestAppendCompleteGet(t *testing.T) {
	t.Parallel()

	log := newLog(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)

	if err := log.Append(ctx, session("s1", domain.ModeFocus, started, 1500)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	row, err := log.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if row.Completed || row.EndedAt != nil {
		t.Fatalf("fresh row already completed: %+v", row)
	}

	ended := started.Add(25 * time.Minute)
	if err := log.Complete(ctx, "s1", ended, 25); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	row, err = log.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !row.Completed || row.XPEarned != 25 {
		t.Fatalf("row not stamped: %+v", row)
	}
	if row.EndedAt == nil || !row.EndedAt.Equal(ended) {
		t.Fatalf("EndedAt = %v, want %v", row.EndedAt, ended)
	}
}

func TestCompleteUnknownID(t *testing.T) {
	t.Parallel()

	log := newLog(t)
	err := log.Complete(context.Background(), "ghost", time.Now(), 0)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCompletedOnDayFiltersIncomplete(t *testing.T) {
	t.Parallel()

	log := newLog(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	if err := log.Append(ctx, session("done", domain.ModeFocus, day, 1500)); err != nil {
		t.Fatal(err)
	}
	if err := log.Complete(ctx, "done", day.Add(25*time.Minute), 25); err != nil {
		t.Fatal(err)
	}
	if err := log.Append(ctx, session("abandoned", domain.ModeFocus, day.Add(time.Hour), 1500)); err != nil {
		t.Fatal(err)
	}
	if err := log.Append(ctx, session("other-day", domain.ModeFocus, day.AddDate(0, 0, 1), 1500)); err != nil {
		t.Fatal(err)
	}

	rows, err := log.CompletedOnDay(ctx, "2026-03-10")
	if err != nil {
		t.Fatalf("CompletedOnDay: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "done" {
		t.Fatalf("rows = %+v, want only the completed same-day session", rows)
	}
}

func TestDayTotalsSkipBreaks(t *testing.T) {
	t.Parallel()

	log := newLog(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	for i, s := range []domain.Session{
		session("f1", domain.ModeFocus, day, 1500),
		session("f2", domain.ModeCustom, day.Add(time.Hour), 2700),
		session("b1", domain.ModeShortBreak, day.Add(2*time.Hour), 300),
	} {
		if err := log.Append(ctx, s); err != nil {
			t.Fatal(err)
		}
		if err := log.Complete(ctx, s.ID, s.StartedAt.Add(time.Duration(s.DurationSeconds)*time.Second), i); err != nil {
			t.Fatal(err)
		}
	}

	totals, err := log.DayTotals(ctx, "2026-03-10", "2026-03-10")
	if err != nil {
		t.Fatalf("DayTotals: %v", err)
	}
	if len(totals) != 1 {
		t.Fatalf("totals = %+v, want one day", totals)
	}
	if totals[0].Sessions != 2 || totals[0].FocusMinutes != 70 {
		t.Fatalf("day total = %+v, want 2 sessions / 70 minutes", totals[0])
	}
}

func TestReplaceAllAndList(t *testing.T) {
	t.Parallel()

	log := newLog(t)
	ctx := context.Background()
	day := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)

	if err := log.Append(ctx, session("old", domain.ModeFocus, day, 1500)); err != nil {
		t.Fatal(err)
	}
	replacement := []domain.Session{
		session("n1", domain.ModeFocus, day, 1500),
		session("n2", domain.ModeFocus, day.Add(time.Hour), 1500),
	}
	if err := log.ReplaceAll(ctx, replacement); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	rows, err := log.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("List returned %d rows, want 2", len(rows))
	}
	if rows[0].ID != "n2" {
		t.Fatalf("List order: first = %s, want newest", rows[0].ID)
	}
	if _, err := log.Get(ctx, "old"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("old row survived replace: %v", err)
	}

	limited, err := log.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Fatalf("limited list returned %d rows", len(limited))
	}
}
