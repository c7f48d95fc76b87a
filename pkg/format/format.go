// Package format provides pure display-formatting helpers for dates, numbers
// and byte sizes. All functions are total: zero or out-of-range inputs yield
// a placeholder instead of panicking.
package format

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Placeholder is returned for inputs that have no meaningful rendering.
const Placeholder = "-"

// Date renders a date as YYYY-MM-DD. The zero time yields the placeholder.
func Date(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format("2006-01-02")
}

// DateTime renders a timestamp as YYYY-MM-DD HH:MM. The zero time yields the
// placeholder.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return t.Format("2006-01-02 15:04")
}

// Number renders an integer with thousands separators.
func Number(n int64) string {
	return humanize.Comma(n)
}

// Bytes renders a byte count in human-readable IEC units (KiB, MiB, ...).
func Bytes(n uint64) string {
	return humanize.IBytes(n)
}

// RelativeTime renders how long ago (or until) t is, relative to now
// ("3 minutes ago", "2 days from now"). The zero time yields the placeholder.
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return humanize.Time(t)
}
