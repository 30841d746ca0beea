package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"kintai/internal/storage"
	"kintai/internal/ui/preferences"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSendPostsResolvedStatus(t *testing.T) {
	var gotStatus, gotName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotStatus = r.PostForm.Get("status")
		gotName = r.PostForm.Get("name")
		_, _ = w.Write([]byte("recorded"))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	settings := preferences.DefaultSettings()
	settings.Name = "多田"
	settings.WebhookURL = server.URL
	if err := storage.SaveSettings(path, settings); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := execute(t, "--config", path, "send", "break_start")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if strings.TrimSpace(out) != "recorded" {
		t.Fatalf("output = %q", out)
	}
	if gotStatus != "休憩 開始" || gotName != "多田" {
		t.Fatalf("posted name=%q status=%q", gotName, gotStatus)
	}
}

func TestSendRequiresWebhook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if _, err := execute(t, "--config", path, "send", "work_start"); err == nil {
		t.Fatalf("expected error without webhook_url")
	}
}

func TestConfigPrintsEffectiveSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	out, err := execute(t, "--config", path, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "path: "+path) {
		t.Fatalf("output missing path: %q", out)
	}
	if !strings.Contains(out, "left_click_toggles: true") {
		t.Fatalf("output missing defaults: %q", out)
	}
}

func TestResolveStatus(t *testing.T) {
	cases := map[string]string{
		"work_start": "業務 開始",
		"WORK_END":   "業務 終了",
		"break_end":  "休憩 終了",
		"custom":     "custom",
	}
	for input, want := range cases {
		if got := resolveStatus(input); got != want {
			t.Fatalf("resolveStatus(%q) = %q, want %q", input, got, want)
		}
	}
}
