// Package model describes the application state statekit keeps in its store
// and the payloads the poller and key handlers dispatch.
package model

import (
	"time"

	"github.com/five82/statekit/internal/state"
)

// State is the application state. Values are never modified in place: every
// change goes through Store.Dispatch with a payload of the same shape.
type State = map[string]any

// Store is the store type shared by the UI, the poller and the debug server.
type Store = state.Store[State]

// Keys used in State.
const (
	KeyCount     = "count"
	KeyLogs      = "logs"
	KeyLogPath   = "log_path"
	KeyPolledAt  = "polled_at"
	KeyPollError = "poll_error"
	KeyRemote    = "remote"
	KeyTheme     = "theme"
)

// Initial returns the state a fresh store starts from.
func Initial(logPath, theme string) State {
	return State{
		KeyCount:     0,
		KeyLogs:      []string(nil),
		KeyLogPath:   logPath,
		KeyPolledAt:  time.Time{},
		KeyPollError: "",
		KeyRemote:    map[string]any(nil),
		KeyTheme:     theme,
	}
}

// NewStore creates a store seeded with Initial using the default merge reducer.
func NewStore(logPath, theme string) *Store {
	return state.New(Initial(logPath, theme))
}

// Count returns the counter value.
func Count(s State) int {
	n, _ := s[KeyCount].(int)
	return n
}

// Logs returns the tailed log lines.
func Logs(s State) []string {
	lines, _ := s[KeyLogs].([]string)
	return lines
}

// LogPath returns the path of the tailed file.
func LogPath(s State) string {
	p, _ := s[KeyLogPath].(string)
	return p
}

// Theme returns the active theme name.
func Theme(s State) string {
	name, _ := s[KeyTheme].(string)
	return name
}

// Remote returns the last document fetched from the remote source.
func Remote(s State) map[string]any {
	doc, _ := s[KeyRemote].(map[string]any)
	return doc
}

// PollStatus is the header's view of the last poll.
type PollStatus struct {
	At    time.Time
	Error string
}

// Poll returns when the poller last ran and what went wrong, if anything.
func Poll(s State) PollStatus {
	at, _ := s[KeyPolledAt].(time.Time)
	msg, _ := s[KeyPollError].(string)
	return PollStatus{At: at, Error: msg}
}

// SetCount is the payload setting the counter.
func SetCount(n int) State {
	return State{KeyCount: n}
}

// SetTheme is the payload switching the theme.
func SetTheme(name string) State {
	return State{KeyTheme: name}
}

// PollSucceeded is the payload for a successful poll. Nil lines or a nil
// remote document leave the stored values untouched.
func PollSucceeded(at time.Time, lines []string, remote map[string]any) State {
	payload := State{KeyPolledAt: at, KeyPollError: ""}
	if lines != nil {
		payload[KeyLogs] = lines
	}
	if remote != nil {
		payload[KeyRemote] = remote
	}
	return payload
}

// PollFailed is the payload for a failed poll. Previously tailed data stays.
func PollFailed(at time.Time, err error) State {
	return State{KeyPolledAt: at, KeyPollError: err.Error()}
}
