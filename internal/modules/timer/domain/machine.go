package domain

// State names a phase of the countdown.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
)

// Machine is the pure countdown state machine. It holds no wall-clock
// references; callers drive it with Tick once per elapsed second.
type Machine struct {
	Mode         Mode
	State        State
	TotalSeconds int
	Remaining    int
	SessionID    string
}

func NewMachine() Machine {
	return Machine{Mode: ModeFocus, State: StateIdle}
}

// Start arms the countdown. Only legal from idle.
func (m *Machine) Start(mode Mode, totalSeconds int, sessionID string) bool {
	if m.State != StateIdle || totalSeconds <= 0 {
		return false
	}
	m.Mode = mode
	m.TotalSeconds = totalSeconds
	m.Remaining = totalSeconds
	m.SessionID = sessionID
	m.State = StateRunning
	return true
}

func (m *Machine) Pause() bool {
	if m.State != StateRunning {
		return false
	}
	m.State = StatePaused
	return true
}

func (m *Machine) Resume() bool {
	if m.State != StatePaused {
		return false
	}
	m.State = StateRunning
	return true
}

// Tick consumes one second and reports whether the run just finished.
// Ticks while paused or idle are ignored.
func (m *Machine) Tick() (finished bool) {
	if m.State != StateRunning {
		return false
	}
	m.Remaining--
	if m.Remaining <= 0 {
		m.Remaining = 0
		m.State = StateCompleted
		return true
	}
	return false
}

// Cancel abandons the run from running or paused.
func (m *Machine) Cancel() bool {
	if m.State != StateRunning && m.State != StatePaused {
		return false
	}
	m.reset()
	return true
}

// Acknowledge returns a completed machine to idle.
func (m *Machine) Acknowledge() bool {
	if m.State != StateCompleted {
		return false
	}
	m.reset()
	return true
}

func (m *Machine) reset() {
	m.State = StateIdle
	m.Remaining = 0
	m.TotalSeconds = 0
	m.SessionID = ""
}

// Elapsed is the number of seconds consumed so far.
func (m Machine) Elapsed() int {
	if m.TotalSeconds == 0 {
		return 0
	}
	return m.TotalSeconds - m.Remaining
}
