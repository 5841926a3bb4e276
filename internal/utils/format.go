package utils

import "time"

const (
	DateOnly    = "2006-01-02"
	DateTimeSec = "2006-01-02 15:04:05"
)

// TimeOrDash formats a time value in local time using the given layout, or
// returns "—" if zero.
func TimeOrDash(t time.Time, layout string) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format(layout)
}

// OrDash returns s, or "—" if s is empty.
func OrDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
