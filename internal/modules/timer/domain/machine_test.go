package domain

import "testing"

func TestMachineHappyPath(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	if m.State != StateIdle {
		t.Fatalf("State = %q, want idle", m.State)
	}
	if !m.Start(ModeFocus, 3, "s1") {
		t.Fatal("Start failed from idle")
	}
	if m.Remaining != 3 || m.State != StateRunning {
		t.Fatalf("after Start: remaining=%d state=%q", m.Remaining, m.State)
	}
	if m.Tick() {
		t.Fatal("finished after 1 of 3 ticks")
	}
	if m.Tick() {
		t.Fatal("finished after 2 of 3 ticks")
	}
	if !m.Tick() {
		t.Fatal("did not finish after 3 ticks")
	}
	if m.State != StateCompleted || m.Remaining != 0 {
		t.Fatalf("after finish: state=%q remaining=%d", m.State, m.Remaining)
	}
	if !m.Acknowledge() {
		t.Fatal("Acknowledge failed from completed")
	}
	if m.State != StateIdle || m.SessionID != "" {
		t.Fatalf("after Acknowledge: state=%q session=%q", m.State, m.SessionID)
	}
}

func TestMachinePauseResume(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.Start(ModeShortBreak, 10, "s1")
	m.Tick()
	if !m.Pause() {
		t.Fatal("Pause failed while running")
	}
	if m.Tick() {
		t.Fatal("Tick completed a paused machine")
	}
	if m.Remaining != 9 {
		t.Fatalf("Remaining drained while paused: %d", m.Remaining)
	}
	if m.Pause() {
		t.Fatal("Pause succeeded while already paused")
	}
	if !m.Resume() {
		t.Fatal("Resume failed while paused")
	}
	m.Tick()
	if m.Remaining != 8 {
		t.Fatalf("Remaining = %d, want 8", m.Remaining)
	}
}

func TestMachineCancel(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	if m.Cancel() {
		t.Fatal("Cancel succeeded from idle")
	}
	m.Start(ModeFocus, 60, "s1")
	m.Tick()
	if !m.Cancel() {
		t.Fatal("Cancel failed while running")
	}
	if m.State != StateIdle {
		t.Fatalf("State = %q, want idle", m.State)
	}

	m.Start(ModeFocus, 60, "s2")
	m.Pause()
	if !m.Cancel() {
		t.Fatal("Cancel failed while paused")
	}
}

func TestMachineStartGuards(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	if m.Start(ModeFocus, 0, "s1") {
		t.Fatal("Start accepted zero duration")
	}
	m.Start(ModeFocus, 60, "s1")
	if m.Start(ModeFocus, 60, "s2") {
		t.Fatal("Start succeeded while running")
	}
}

func TestDurationFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		mode    Mode
		custom  int
		seconds int
	}{
		{ModeFocus, 45, 25 * 60},
		{ModeShortBreak, 45, 5 * 60},
		{ModeLongBreak, 45, 15 * 60},
		{ModeCustom, 45, 45 * 60},
		{ModeCustom, 0, 60},
	}
	for _, tc := range cases {
		if got := DurationFor(tc.mode, tc.custom); got != tc.seconds {
			t.Errorf("DurationFor(%q, %d) = %d, want %d", tc.mode, tc.custom, got, tc.seconds)
		}
	}
}

func TestElapsed(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	if m.Elapsed() != 0 {
		t.Fatalf("Elapsed on idle = %d", m.Elapsed())
	}
	m.Start(ModeFocus, 100, "s1")
	for i := 0; i < 30; i++ {
		m.Tick()
	}
	if m.Elapsed() != 30 {
		t.Fatalf("Elapsed = %d, want 30", m.Elapsed())
	}
}
