package attendance

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{3661 * time.Second, "01:01:01"},
		{86399 * time.Second, "23:59:59"},
		{100 * time.Hour, "100:00:00"},
		{1500 * time.Millisecond, "00:00:01"},
		{-5 * time.Second, "00:00:00"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
