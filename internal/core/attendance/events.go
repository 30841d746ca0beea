package attendance

import "time"

// State represents the current attendance mode.
type State string

const (
	StateIdle    State = "idle"
	StateWorking State = "working"
	StateOnBreak State = "on_break"
)

// Transition names a user-driven change between states.
type Transition string

const (
	TransitionNone       Transition = ""
	TransitionWorkStart  Transition = "work_start"
	TransitionWorkEnd    Transition = "work_end"
	TransitionBreakStart Transition = "break_start"
	TransitionBreakEnd   Transition = "break_end"
)

var transitionStatus = map[Transition]string{
	TransitionWorkStart:  "業務 開始",
	TransitionWorkEnd:    "業務 終了",
	TransitionBreakStart: "休憩 開始",
	TransitionBreakEnd:   "休憩 終了",
}

// Status returns the status string reported to the webhook.
func (transition Transition) Status() string {
	return transitionStatus[transition]
}

// EventType defines the type of tracker event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
)

// Event represents a tracker update for observers.
type Event struct {
	Type       EventType
	State      State
	Transition Transition
	Elapsed    time.Duration
	SessionID  string
	At         time.Time
}

// Snapshot is a point-in-time copy of tracker state.
type Snapshot struct {
	State     State
	Elapsed   time.Duration
	SessionID string
	StartedAt time.Time
}
