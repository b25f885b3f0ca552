package domain

import "time"

const historyMax = 50

type HistoryEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CompletedAt time.Time `json:"completed_at"`
	XPEarned    int       `json:"xp_earned"`
}

// State is the persisted challenge record: which of today's challenges
// are done plus a capped completion history.
type State struct {
	Date      string         `json:"date"`
	Completed []string       `json:"completed"`
	History   []HistoryEntry `json:"history"`
}

func DefaultState() State {
	return State{}
}

// ForDay resets the completed set when the stored date is stale. History
// survives the day change.
func (s *State) ForDay(date string) {
	if s.Date == date {
		return
	}
	s.Date = date
	s.Completed = nil
}

func (s *State) IsCompleted(id string) bool {
	for _, done := range s.Completed {
		if done == id {
			return true
		}
	}
	return false
}

// MarkCompleted records a completion exactly once per day.
func (s *State) MarkCompleted(id string) bool {
	if s.IsCompleted(id) {
		return false
	}
	s.Completed = append(s.Completed, id)
	return true
}

// AddHistory prepends an entry, dropping the oldest past the cap.
func (s *State) AddHistory(entry HistoryEntry) {
	s.History = append([]HistoryEntry{entry}, s.History...)
	if len(s.History) > historyMax {
		s.History = s.History[:historyMax]
	}
}
