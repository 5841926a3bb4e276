package utils

import (
	"testing"
	"time"
)

func TestTimeOrDash(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	tests := []struct {
		name   string
		t      time.Time
		layout string
		want   string
	}{
		{"zero", time.Time{}, DateTimeSec, "—"},
		{"date only", ts, DateOnly, "2026-03-04"},
		{"date time", ts, DateTimeSec, "2026-03-04 05:06:07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeOrDash(tt.t, tt.layout); got != tt.want {
				t.Errorf("TimeOrDash() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOrDash(t *testing.T) {
	if got := OrDash(""); got != "—" {
		t.Errorf("OrDash(\"\") = %q, want —", got)
	}
	if got := OrDash("us-east-1"); got != "us-east-1" {
		t.Errorf("OrDash(us-east-1) = %q", got)
	}
}
