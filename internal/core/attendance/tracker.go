package attendance

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"kintai/internal/core/model"
	"kintai/internal/logging"
)

var log = logging.L("attendance")

var (
	// ErrOnBreak indicates the work session cannot end while a break is active.
	ErrOnBreak = errors.New("attendance locked while on break")
	// ErrNotWorking indicates a break was requested outside a work session.
	ErrNotWorking = errors.New("no active work session")
)

// Tracker is the working/on-break state machine with its elapsed-time ticker.
type Tracker struct {
	mu        sync.Mutex
	config    model.TrackerConfig
	working   bool
	onBreak   bool
	elapsed   time.Duration
	sessionID string
	startedAt time.Time
	stopCh    chan struct{}
	events    []*subscriber
	closed    bool
	newID     func() string
	now       func() time.Time
}

// New creates an idle Tracker.
func New(config model.TrackerConfig) *Tracker {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	return &Tracker{
		config: config,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Subscribe registers a new observer channel. State changes are always
// delivered in order; ticks a slow observer has not consumed are coalesced
// and, past buffer pending events, dropped.
func (tracker *Tracker) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	sub := newSubscriber(buffer)
	tracker.mu.Lock()
	if tracker.closed {
		tracker.mu.Unlock()
		close(sub.out)
		return sub.out
	}
	tracker.events = append(tracker.events, sub)
	tracker.mu.Unlock()

	go sub.pump()
	return sub.out
}

// ToggleAttendance starts or ends a work session.
func (tracker *Tracker) ToggleAttendance() (Transition, error) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.toggleAttendanceLocked()
}

// ToggleBreak starts or ends a break inside the current work session.
func (tracker *Tracker) ToggleBreak() (Transition, error) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.toggleBreakLocked()
}

// Primary performs the tray icon click action: it ends a running break,
// otherwise it toggles attendance.
func (tracker *Tracker) Primary() (Transition, error) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if tracker.onBreak {
		return tracker.toggleBreakLocked()
	}
	return tracker.toggleAttendanceLocked()
}

func (tracker *Tracker) toggleAttendanceLocked() (Transition, error) {
	if tracker.onBreak {
		return TransitionNone, ErrOnBreak
	}
	if tracker.working {
		tracker.endSessionLocked()
		log.Info("work session ended",
			logging.KeySession, tracker.sessionID,
			"elapsed", FormatDuration(tracker.elapsed),
		)
		tracker.emitLocked(tracker.stateEventLocked(TransitionWorkEnd))
		return TransitionWorkEnd, nil
	}

	tracker.working = true
	tracker.elapsed = 0
	tracker.sessionID = tracker.newID()
	tracker.startedAt = tracker.now()
	tracker.stopCh = make(chan struct{})
	go tracker.run(tracker.stopCh)

	log.Info("work session started", logging.KeySession, tracker.sessionID)
	tracker.emitLocked(tracker.stateEventLocked(TransitionWorkStart))
	return TransitionWorkStart, nil
}

func (tracker *Tracker) toggleBreakLocked() (Transition, error) {
	if !tracker.working {
		return TransitionNone, ErrNotWorking
	}

	tracker.onBreak = !tracker.onBreak
	transition := TransitionBreakEnd
	if tracker.onBreak {
		transition = TransitionBreakStart
	}
	log.Info("break toggled",
		logging.KeySession, tracker.sessionID,
		logging.KeyTransition, string(transition),
	)
	tracker.emitLocked(tracker.stateEventLocked(transition))
	return transition, nil
}

// Working reports whether a work session is active.
func (tracker *Tracker) Working() bool {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.working
}

// OnBreak reports whether a break is active.
func (tracker *Tracker) OnBreak() bool {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.onBreak
}

// Snapshot returns the current state.
func (tracker *Tracker) Snapshot() Snapshot {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return Snapshot{
		State:     tracker.stateLocked(),
		Elapsed:   tracker.elapsed,
		SessionID: tracker.sessionID,
		StartedAt: tracker.startedAt,
	}
}

// Stop halts the ticker and closes observers. No transition is reported.
func (tracker *Tracker) Stop() {
	tracker.mu.Lock()
	if tracker.closed {
		tracker.mu.Unlock()
		return
	}
	if tracker.stopCh != nil {
		close(tracker.stopCh)
		tracker.stopCh = nil
	}
	tracker.closed = true
	events := tracker.events
	tracker.events = nil
	tracker.mu.Unlock()

	for _, sub := range events {
		sub.close()
	}
}

func (tracker *Tracker) run(stopCh chan struct{}) {
	ticker := time.NewTicker(tracker.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			tracker.tick(stopCh, tracker.config.TickInterval)
		}
	}
}

// tick advances the elapsed counter for the session owning stopCh.
func (tracker *Tracker) tick(stopCh chan struct{}, delta time.Duration) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	if stopCh != tracker.stopCh || !tracker.working || tracker.onBreak {
		return
	}
	tracker.elapsed += delta
	tracker.emitLocked(Event{
		Type:      EventTick,
		State:     StateWorking,
		Elapsed:   tracker.elapsed,
		SessionID: tracker.sessionID,
		At:        tracker.now(),
	})
}

func (tracker *Tracker) endSessionLocked() {
	tracker.working = false
	tracker.onBreak = false
	if tracker.stopCh != nil {
		close(tracker.stopCh)
		tracker.stopCh = nil
	}
}

func (tracker *Tracker) stateLocked() State {
	switch {
	case tracker.working && tracker.onBreak:
		return StateOnBreak
	case tracker.working:
		return StateWorking
	default:
		return StateIdle
	}
}

func (tracker *Tracker) stateEventLocked(transition Transition) Event {
	return Event{
		Type:       EventStateChange,
		State:      tracker.stateLocked(),
		Transition: transition,
		Elapsed:    tracker.elapsed,
		SessionID:  tracker.sessionID,
		At:         tracker.now(),
	}
}

func (tracker *Tracker) emitLocked(event Event) {
	for _, sub := range tracker.events {
		sub.push(event)
	}
}
