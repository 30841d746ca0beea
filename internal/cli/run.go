package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"

	"kintai/internal/core/attendance"
	"kintai/internal/core/model"
	"kintai/internal/logging"
	"kintai/internal/notify"
	"kintai/internal/platform"
	"kintai/internal/storage"
	"kintai/internal/ui/preferences"
	"kintai/internal/ui/tray"
	"kintai/resources"
)

var log = logging.L("app")

const shutdownGrace = 5 * time.Second

func runTray(settingsPath string) error {
	guard, err := platform.AcquireSingleInstance(AppName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		log.Info("already running, asked the other instance to show preferences")
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		log.Warn("using default settings", "path", settingsPath, logging.KeyError, err)
	}
	if settings.WebhookURL == "" {
		log.Warn("webhook_url not configured, transitions will not be reported", "path", settingsPath)
	}

	fyneApp := app.NewWithID("com.kintai.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconWorking))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	tracker := attendance.New(model.TrackerConfig{TickInterval: time.Second})
	webhook := notify.New(settings.NotifierConfig(), &http.Client{})

	setLeftClick := func(enabled bool) {
		if !enabled {
			systray.SetOnTapped(nil)
			return
		}
		systray.SetOnTapped(toggle(tracker.Primary))
	}

	applySettings := func(updated preferences.Settings) {
		settings = updated
		webhook.UpdateConfig(settings.NotifierConfig())
		setLeftClick(settings.LeftClickToggles)
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		applySettings(updated)
		if err := storage.SaveSettings(settingsPath, updated); err != nil {
			log.Warn("save settings failed", "path", settingsPath, logging.KeyError, err)
		}
	})

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnAttendance:  toggle(tracker.ToggleAttendance),
		OnBreak:       toggle(tracker.ToggleBreak),
		OnPreferences: prefsWindow.Show,
		OnQuit:        fyneApp.Quit,
	})

	guard.OnActivate(func() {
		fyne.Do(prefsWindow.Show)
	})

	fyneApp.Lifecycle().SetOnStarted(func() {
		setLeftClick(settings.LeftClickToggles)
	})

	events := tracker.Subscribe(16)
	go relay(events, webhook.Dispatch, func(event attendance.Event) {
		fyne.Do(func() {
			trayManager.Render(event)
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := storage.Watch(ctx, settingsPath, func(updated preferences.Settings) {
			fyne.Do(func() {
				applySettings(updated)
				prefsWindow.UpdateSettings(updated)
			})
		})
		if err != nil {
			log.Warn("settings hot reload disabled", logging.KeyError, err)
		}
	}()

	fyneApp.Run()

	tracker.Stop()
	waitCtx, waitCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer waitCancel()
	if err := webhook.Wait(waitCtx); err != nil {
		log.Warn("pending webhook requests abandoned", logging.KeyError, err)
	}
	return nil
}

// toggle adapts a tracker action to a click handler. Refused toggles are
// expected when the menu and tracker race, so they are only logged.
func toggle(action func() (attendance.Transition, error)) func() {
	return func() {
		if _, err := action(); err != nil {
			log.Debug("toggle ignored", logging.KeyError, err)
		}
	}
}
