package common

import (
	"time"

	"github.com/dustin/go-humanize"
)

// RelativeTime renders t as "3 minutes ago"; zero times render empty.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.After(now) {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// CompactCount renders counters with thousands separators.
func CompactCount(n int) string {
	if n >= 10_000 {
		return humanize.SIWithDigits(float64(n), 1, "")
	}
	return humanize.Comma(int64(n))
}
