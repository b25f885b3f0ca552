package timer

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pomo/internal/modules/timer/domain"
	timerdto "pomo/internal/modules/timer/dto"
)

type stubPort struct{}

func (stubPort) Start(context.Context, timerdto.StartInput) (timerdto.StartOutput, error) {
	return timerdto.StartOutput{}, nil
}

func (stubPort) Cancel(context.Context) (timerdto.Session, error) {
	return timerdto.Session{}, nil
}

func (stubPort) Complete(context.Context) (timerdto.CompleteOutput, error) {
	return timerdto.CompleteOutput{}, nil
}

func (stubPort) ActiveSession(context.Context) (*timerdto.Active, error) {
	return nil, nil
}

func space() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace} }

func TestPauseDropsPendingTick(t *testing.T) {
	t.Parallel()
	m := New(stubPort{})
	m, _ = m.Update(StartedMsg{Out: timerdto.StartOutput{Mode: "focus", DurationSeconds: 10, SessionID: "s1"}})
	if m.machine.State != domain.StateRunning {
		t.Fatalf("expected running after start, got %s", m.machine.State)
	}

	m, _ = m.Update(space())
	if m.machine.State != domain.StatePaused {
		t.Fatalf("space should pause a running countdown, got %s", m.machine.State)
	}

	// The tick scheduled before the pause still arrives. It must neither
	// consume a second nor reschedule itself.
	m, cmd := m.Update(tickMsg(time.Now()))
	if m.machine.Remaining != 10 {
		t.Fatalf("paused countdown must not burn seconds, remaining %d", m.machine.Remaining)
	}
	if cmd != nil {
		t.Fatalf("tick while paused must not reschedule")
	}
}

func TestResumeRestartsTickChain(t *testing.T) {
	t.Parallel()
	m := New(stubPort{})
	m, _ = m.Update(StartedMsg{Out: timerdto.StartOutput{Mode: "focus", DurationSeconds: 10, SessionID: "s1"}})
	m, _ = m.Update(tickMsg(time.Now()))
	if m.machine.Remaining != 9 {
		t.Fatalf("expected one second consumed, remaining %d", m.machine.Remaining)
	}

	m, _ = m.Update(space())
	m, _ = m.Update(tickMsg(time.Now())) // pending tick dies while paused

	// Resuming has to issue a fresh tick command, otherwise the countdown
	// sits frozen with no tick left in flight.
	m, cmd := m.Update(space())
	if m.machine.State != domain.StateRunning {
		t.Fatalf("space should resume a paused countdown, got %s", m.machine.State)
	}
	if cmd == nil {
		t.Fatalf("resume must reschedule the tick chain")
	}

	m, _ = m.Update(tickMsg(time.Now()))
	if m.machine.Remaining != 8 {
		t.Fatalf("countdown did not advance after resume, remaining %d", m.machine.Remaining)
	}
}
