package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	name      *widget.Entry
	url       *widget.Entry
	timeout   *widget.Entry
	leftClick *widget.Check
}

// New creates a hidden preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Kintai Settings")

	name := widget.NewEntry()
	name.SetPlaceHolder("表示名")
	url := widget.NewEntry()
	url.SetPlaceHolder("https://example.com/webhook")
	timeout := widget.NewEntry()
	leftClick := widget.NewCheck("Left click toggles attendance", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Webhook", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Name"),
		name,
		widget.NewLabel("URL"),
		url,
		container.NewHBox(widget.NewLabel("Request timeout"), timeout, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Tray", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		leftClick,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(460, 300))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		name:      name,
		url:       url,
		timeout:   timeout,
		leftClick: leftClick,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.name.SetText(settings.Name)
	prefs.url.SetText(settings.WebhookURL)
	prefs.timeout.SetText(fmt.Sprintf("%d", int(settings.RequestTimeout.Seconds())))
	prefs.leftClick.SetChecked(settings.LeftClickToggles)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.Name = strings.TrimSpace(prefs.name.Text)
	settings.WebhookURL = strings.TrimSpace(prefs.url.Text)
	if seconds, ok := parsePositiveInt(prefs.timeout.Text); ok {
		settings.RequestTimeout = time.Duration(seconds) * time.Second
	}
	settings.LeftClickToggles = prefs.leftClick.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
