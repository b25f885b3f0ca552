package domain

import (
	"testing"
	"time"
)

func mustFind(t *testing.T, id string) Definition {
	t.Helper()
	def, ok := Find(id)
	if !ok {
		t.Fatalf("id %q not in catalog", id)
	}
	return def
}

func TestProgressDispatch(t *testing.T) {
	t.Parallel()

	sessions := []SessionInfo{
		{StartHour: 7, DurationSeconds: 25 * 60},
		{StartHour: 14, DurationSeconds: 50 * 60},
		{StartHour: 23, DurationSeconds: 15 * 60},
	}

	cases := []struct {
		id       string
		streak   int
		goal     int
		progress int
	}{
		{"focus_3", 0, 8, 3},
		{"marathon", 0, 8, 3},
		{"time_2h", 0, 8, 90},
		{"time_90min", 0, 8, 90},
		{"streak_3", 5, 8, 3},
		{"streak_3", 2, 8, 2},
		{"perfect_day", 0, 3, 1},
		{"perfect_day", 0, 4, 0},
		{"early_session", 0, 8, 1},
		{"night_owl", 0, 8, 1},
		{"quick_1", 0, 8, 1},
		{"double_session", 0, 8, 3},
	}
	for _, tc := range cases {
		def := mustFind(t, tc.id)
		if got := Progress(def, sessions, tc.streak, tc.goal); got != tc.progress {
			t.Errorf("Progress(%s, streak=%d, goal=%d) = %d, want %d", tc.id, tc.streak, tc.goal, got, tc.progress)
		}
	}
}

func TestFinalReward(t *testing.T) {
	t.Parallel()

	cases := []struct {
		reward int
		streak int
		want   int
	}{
		{50, 0, 50},
		{50, 2, 50},
		{50, 3, 57},
		{50, 7, 67},
		{50, 30, 125},
		{50, 45, 125},
	}
	for _, tc := range cases {
		if got := FinalReward(tc.reward, tc.streak); got != tc.want {
			t.Errorf("FinalReward(%d, %d) = %d, want %d", tc.reward, tc.streak, got, tc.want)
		}
	}
}

func TestStateDayReset(t *testing.T) {
	t.Parallel()

	state := DefaultState()
	state.ForDay("2024-03-15")
	if !state.MarkCompleted("focus_3") {
		t.Fatal("first completion not recorded")
	}
	if state.MarkCompleted("focus_3") {
		t.Fatal("second completion recorded twice")
	}
	state.AddHistory(HistoryEntry{ID: "focus_3", CompletedAt: time.Now()})

	state.ForDay("2024-03-15")
	if !state.IsCompleted("focus_3") {
		t.Fatal("same-day ForDay wiped completions")
	}

	state.ForDay("2024-03-16")
	if state.IsCompleted("focus_3") {
		t.Fatal("date change kept old completions")
	}
	if len(state.History) != 1 {
		t.Fatalf("date change touched history: %d entries", len(state.History))
	}
}

func TestHistoryCap(t *testing.T) {
	t.Parallel()

	state := DefaultState()
	for i := 0; i < 60; i++ {
		state.AddHistory(HistoryEntry{ID: "focus_3", XPEarned: i})
	}
	if len(state.History) != 50 {
		t.Fatalf("history holds %d entries, want 50", len(state.History))
	}
	if state.History[0].XPEarned != 59 {
		t.Fatalf("newest entry first: got %d", state.History[0].XPEarned)
	}
}
