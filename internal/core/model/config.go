package model

import "time"

// TrackerConfig contains runtime settings for the attendance tracker.
type TrackerConfig struct {
	TickInterval time.Duration
}

// NotifierConfig describes where and how state transitions are reported.
type NotifierConfig struct {
	URL     string
	Name    string
	Timeout time.Duration
}

// Enabled reports whether a webhook URL is configured.
func (config NotifierConfig) Enabled() bool {
	return config.URL != ""
}
