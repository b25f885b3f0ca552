package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotifierDisabled = errors.New("notifier is disabled")
	ErrNotifierTimeout  = errors.New("notifier timeout")
	ErrUnknownNotifier  = errors.New("unknown notifier")
)

// Known engine events. A manifest with an empty Events list subscribes
// to everything.
var knownEvents = map[string]struct{}{
	"session_completed":    {},
	"level_up":             {},
	"achievement_unlocked": {},
	"challenge_completed":  {},
	"streak_changed":       {},
}

type Manifest struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Binary  string   `json:"binary"`
	Enabled bool     `json:"enabled"`
	Events  []string `json:"events"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("notifier name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("notifier version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("notifier binary path is required")
	}
	seen := map[string]struct{}{}
	for _, event := range m.Events {
		if _, ok := knownEvents[event]; !ok {
			return fmt.Errorf("unknown event: %s", event)
		}
		if _, ok := seen[event]; ok {
			return fmt.Errorf("duplicate event: %s", event)
		}
		seen[event] = struct{}{}
	}
	return nil
}

func (m Manifest) Subscribed(event string) bool {
	if len(m.Events) == 0 {
		return true
	}
	for _, e := range m.Events {
		if e == event {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name    string
	Version string
	Events  []string
}

// Notification is one event on its way to a plugin.
type Notification struct {
	Event   string
	Payload map[string]string
}

func (n Notification) Validate() error {
	if n.Event == "" {
		return fmt.Errorf("event name is required")
	}
	if _, ok := knownEvents[n.Event]; !ok {
		return fmt.Errorf("unknown event: %s", n.Event)
	}
	return nil
}
