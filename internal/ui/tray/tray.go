package tray

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/systray"

	"kintai/internal/core/attendance"
	"kintai/resources"
)

// Menu labels.
const (
	LabelWorkStart  = "業務開始"
	LabelWorkEnd    = "業務終了"
	LabelBreakStart = "休憩"
	LabelBreakEnd   = "休憩解除"
	LabelOnBreak    = "休憩中"
)

// Host is the subset of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnAttendance  func()
	OnBreak       func()
	OnPreferences func()
	OnQuit        func()
}

// Option customises a Manager.
type Option func(*Manager)

// WithTitleSetter replaces the function that writes the tray title text.
func WithTitleSetter(setTitle func(string)) Option {
	return func(manager *Manager) {
		manager.setTitle = setTitle
	}
}

// Manager handles system tray state.
type Manager struct {
	host           Host
	setTitle       func(string)
	menu           *fyne.Menu
	attendanceItem *fyne.MenuItem
	breakItem      *fyne.MenuItem
	callbacks      Callbacks
	state          attendance.State
	title          string
}

// New creates a tray manager in the idle state.
func New(host Host, callbacks Callbacks, options ...Option) *Manager {
	manager := &Manager{
		host:      host,
		setTitle:  systray.SetTitle,
		callbacks: callbacks,
	}
	for _, option := range options {
		option(manager)
	}

	manager.attendanceItem = fyne.NewMenuItem(LabelWorkStart, func() {
		if manager.callbacks.OnAttendance != nil {
			manager.callbacks.OnAttendance()
		}
	})
	manager.breakItem = fyne.NewMenuItem(LabelBreakStart, func() {
		if manager.callbacks.OnBreak != nil {
			manager.callbacks.OnBreak()
		}
	})
	preferences := fyne.NewMenuItem("Preferences…", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	// fyne appends its own Quit item unless one is flagged.
	quit.IsQuit = true

	manager.menu = fyne.NewMenu("Kintai",
		manager.attendanceItem,
		manager.breakItem,
		fyne.NewMenuItemSeparator(),
		preferences,
		quit,
	)

	manager.Apply(attendance.StateIdle)
	return manager
}

// Apply updates labels, enablement and icon for state.
func (manager *Manager) Apply(state attendance.State) {
	manager.state = state

	switch state {
	case attendance.StateWorking:
		manager.attendanceItem.Label = LabelWorkEnd
		manager.attendanceItem.Disabled = false
		manager.breakItem.Label = LabelBreakStart
		manager.breakItem.Disabled = false
	case attendance.StateOnBreak:
		manager.attendanceItem.Label = LabelWorkEnd
		manager.attendanceItem.Disabled = true
		manager.breakItem.Label = LabelBreakEnd
		manager.breakItem.Disabled = false
	default:
		manager.attendanceItem.Label = LabelWorkStart
		manager.attendanceItem.Disabled = false
		manager.breakItem.Label = LabelBreakStart
		manager.breakItem.Disabled = true
	}

	manager.refreshIcon()
	manager.refreshMenu()
}

// Render reflects a tracker event in the menu and title.
func (manager *Manager) Render(event attendance.Event) {
	switch event.Type {
	case attendance.EventStateChange:
		manager.Apply(event.State)
		manager.SetTitle(titleFor(event.State, event.Elapsed))
	case attendance.EventTick:
		if manager.state == attendance.StateWorking {
			manager.SetTitle(titleFor(attendance.StateWorking, event.Elapsed))
		}
	}
}

// SetTitle updates the text shown next to the tray icon.
func (manager *Manager) SetTitle(title string) {
	if title == manager.title {
		return
	}
	manager.title = title
	if manager.setTitle != nil {
		manager.setTitle(title)
	}
}

// State returns the last applied state.
func (manager *Manager) State() attendance.State {
	return manager.state
}

// Title returns the last title written.
func (manager *Manager) Title() string {
	return manager.title
}

func titleFor(state attendance.State, elapsed time.Duration) string {
	switch state {
	case attendance.StateWorking:
		return attendance.FormatDuration(elapsed)
	case attendance.StateOnBreak:
		return LabelOnBreak
	default:
		return ""
	}
}

func (manager *Manager) refreshIcon() {
	if manager.host == nil {
		return
	}
	kind := resources.IconIdle
	switch manager.state {
	case attendance.StateWorking:
		kind = resources.IconWorking
	case attendance.StateOnBreak:
		kind = resources.IconBreak
	}
	manager.host.SetSystemTrayIcon(resources.MustIcon(kind))
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}
