package cli

import "kintai/internal/core/attendance"

// relay consumes tracker events until the channel closes. Each state change
// is dispatched once by its webhook status; every event is rendered.
func relay(events <-chan attendance.Event, dispatch func(status string), render func(attendance.Event)) {
	for event := range events {
		if event.Type == attendance.EventStateChange {
			if status := event.Transition.Status(); status != "" {
				dispatch(status)
			}
		}
		render(event)
	}
}
