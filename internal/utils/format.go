package utils

import (
	"time"
)

const (
	DateTime = "2006-01-02 15:04"
	TimeOnly = "15:04:05"
)

const dash = "—"

// OrDash returns s, or "—" if it is empty.
func OrDash(s string) string {
	if s == "" {
		return dash
	}
	return s
}

// TimeOrDash formats a time value using the given layout, or returns "—" if zero.
func TimeOrDash(t time.Time, layout string) string {
	if t.IsZero() {
		return dash
	}
	return t.Format(layout)
}
