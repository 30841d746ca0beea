package tray

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"

	"kintai/internal/core/attendance"
)

type fakeHost struct {
	menus int
	icons []fyne.Resource
	menu  *fyne.Menu
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menus++
	host.menu = menu
}

func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) {
	host.icons = append(host.icons, icon)
}

func newTestManager(callbacks Callbacks) (*Manager, *fakeHost, *[]string) {
	host := &fakeHost{}
	titles := &[]string{}
	manager := New(host, callbacks, WithTitleSetter(func(title string) {
		*titles = append(*titles, title)
	}))
	return manager, host, titles
}

func TestInitialMenu(t *testing.T) {
	manager, host, _ := newTestManager(Callbacks{})

	if host.menu == nil || host.menus == 0 {
		t.Fatalf("menu should be registered on creation")
	}
	items := host.menu.Items
	if len(items) != 5 {
		t.Fatalf("menu items = %d, want 5", len(items))
	}
	if items[0].Label != LabelWorkStart || items[0].Disabled {
		t.Fatalf("attendance item = %q disabled=%v", items[0].Label, items[0].Disabled)
	}
	if items[1].Label != LabelBreakStart || !items[1].Disabled {
		t.Fatalf("break item should start disabled, got %q disabled=%v", items[1].Label, items[1].Disabled)
	}
	if !items[2].IsSeparator {
		t.Fatalf("third item should be a separator")
	}
	if items[4].Label != "Quit" || !items[4].IsQuit {
		t.Fatalf("last item should be Quit")
	}
	if manager.State() != attendance.StateIdle {
		t.Fatalf("initial state = %q", manager.State())
	}
}

func TestApplyEnablementIsMutuallyExclusive(t *testing.T) {
	manager, host, _ := newTestManager(Callbacks{})

	cases := []struct {
		state              attendance.State
		attendanceLabel    string
		attendanceDisabled bool
		breakLabel         string
		breakDisabled      bool
	}{
		{attendance.StateIdle, LabelWorkStart, false, LabelBreakStart, true},
		{attendance.StateWorking, LabelWorkEnd, false, LabelBreakStart, false},
		{attendance.StateOnBreak, LabelWorkEnd, true, LabelBreakEnd, false},
	}
	for _, tc := range cases {
		manager.Apply(tc.state)
		items := host.menu.Items
		if items[0].Label != tc.attendanceLabel || items[0].Disabled != tc.attendanceDisabled {
			t.Fatalf("%s: attendance = %q disabled=%v", tc.state, items[0].Label, items[0].Disabled)
		}
		if items[1].Label != tc.breakLabel || items[1].Disabled != tc.breakDisabled {
			t.Fatalf("%s: break = %q disabled=%v", tc.state, items[1].Label, items[1].Disabled)
		}
	}
	if len(host.icons) != 4 {
		t.Fatalf("icon updates = %d, want 4", len(host.icons))
	}
	if host.icons[1] == host.icons[2] {
		t.Fatalf("working and break icons should differ")
	}
}

func TestCallbacksFire(t *testing.T) {
	var attendanceClicks, breakClicks, prefs, quits int
	_, host, _ := newTestManager(Callbacks{
		OnAttendance:  func() { attendanceClicks++ },
		OnBreak:       func() { breakClicks++ },
		OnPreferences: func() { prefs++ },
		OnQuit:        func() { quits++ },
	})

	items := host.menu.Items
	items[0].Action()
	items[1].Action()
	items[3].Action()
	items[4].Action()
	if attendanceClicks != 1 || breakClicks != 1 || prefs != 1 || quits != 1 {
		t.Fatalf("clicks = %d %d %d %d", attendanceClicks, breakClicks, prefs, quits)
	}
}

func TestRenderTitles(t *testing.T) {
	manager, _, titles := newTestManager(Callbacks{})

	manager.Render(attendance.Event{Type: attendance.EventStateChange, State: attendance.StateWorking})
	manager.Render(attendance.Event{Type: attendance.EventTick, State: attendance.StateWorking, Elapsed: 3661 * time.Second})
	manager.Render(attendance.Event{Type: attendance.EventStateChange, State: attendance.StateOnBreak, Elapsed: 3661 * time.Second})
	manager.Render(attendance.Event{Type: attendance.EventTick, State: attendance.StateWorking, Elapsed: 3662 * time.Second})
	manager.Render(attendance.Event{Type: attendance.EventStateChange, State: attendance.StateWorking, Elapsed: 3661 * time.Second})
	manager.Render(attendance.Event{Type: attendance.EventStateChange, State: attendance.StateIdle, Elapsed: 3661 * time.Second})

	want := []string{"00:00:00", "01:01:01", LabelOnBreak, "01:01:01", ""}
	if len(*titles) != len(want) {
		t.Fatalf("titles = %q, want %q", *titles, want)
	}
	for i := range want {
		if (*titles)[i] != want[i] {
			t.Fatalf("titles = %q, want %q", *titles, want)
		}
	}
	if manager.Title() != "" {
		t.Fatalf("idle title should be empty")
	}
}
