package preferences

import (
	"time"

	"kintai/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Name           string
	WebhookURL     string
	RequestTimeout time.Duration

	LeftClickToggles bool
}

// DefaultSettings returns default settings for Kintai.
func DefaultSettings() Settings {
	return Settings{
		RequestTimeout:   30 * time.Second,
		LeftClickToggles: true,
	}
}

// NotifierConfig converts settings to NotifierConfig.
func (settings Settings) NotifierConfig() model.NotifierConfig {
	return model.NotifierConfig{
		URL:     settings.WebhookURL,
		Name:    settings.Name,
		Timeout: settings.RequestTimeout,
	}
}
