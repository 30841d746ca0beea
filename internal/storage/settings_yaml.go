package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"kintai/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Name                  string `yaml:"name"`
	WebhookURL            string `yaml:"webhook_url"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
	LeftClickToggles      *bool  `yaml:"left_click_toggles,omitempty"`
}

// LoadSettings reads user preferences from YAML at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	leftClick := settings.LeftClickToggles
	fileData := yamlSettings{
		Name:                  settings.Name,
		WebhookURL:            settings.WebhookURL,
		RequestTimeoutSeconds: int(settings.RequestTimeout / time.Second),
		LeftClickToggles:      &leftClick,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	// Write through a temp file so watchers never observe a half-written file.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o600); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

// ResolvePath returns the default settings path for appName.
func ResolvePath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	settings.Name = fileData.Name
	settings.WebhookURL = fileData.WebhookURL
	if fileData.RequestTimeoutSeconds > 0 {
		settings.RequestTimeout = time.Duration(fileData.RequestTimeoutSeconds) * time.Second
	}
	if fileData.LeftClickToggles != nil {
		settings.LeftClickToggles = *fileData.LeftClickToggles
	}
}
