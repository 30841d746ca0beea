package preferences

import (
	"testing"
	"time"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.WebhookURL != "" {
		t.Fatalf("webhook should be unset by default, got %q", settings.WebhookURL)
	}
	if settings.RequestTimeout != 30*time.Second {
		t.Fatalf("timeout = %v", settings.RequestTimeout)
	}
	if !settings.LeftClickToggles {
		t.Fatalf("left click should toggle by default")
	}
}

func TestNotifierConfig(t *testing.T) {
	settings := Settings{Name: "多田", WebhookURL: "https://example.com/hook", RequestTimeout: 5 * time.Second}
	config := settings.NotifierConfig()
	if config.URL != settings.WebhookURL || config.Name != settings.Name || config.Timeout != settings.RequestTimeout {
		t.Fatalf("config = %+v", config)
	}
	if !config.Enabled() {
		t.Fatalf("config with url should be enabled")
	}
}

func TestParsePositiveInt(t *testing.T) {
	cases := map[string]struct {
		value int
		ok    bool
	}{
		"15":  {15, true},
		" 3 ": {3, true},
		"0":   {0, false},
		"-1":  {0, false},
		"abc": {0, false},
	}
	for input, want := range cases {
		got, ok := parsePositiveInt(input)
		if got != want.value || ok != want.ok {
			t.Fatalf("parsePositiveInt(%q) = %d, %v", input, got, ok)
		}
	}
}
