package format

import (
	"strings"
	"time"
)

// NanosToTime converts nanoseconds since the Unix epoch to a UTC time.Time.
func NanosToTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

// TimeToNanos converts t to nanoseconds since the Unix epoch. Times before the
// epoch are clamped to zero.
func TimeToNanos(t time.Time) int64 {
	ns := t.UnixNano()
	if ns < 0 {
		return 0
	}
	return ns
}

// NanosToDatetime renders ns as a calendar datetime with millisecond
// precision, the resolution header diagnostics are printed at.
func NanosToDatetime(ns int64) string {
	t := NanosToTime(ns).Truncate(time.Millisecond)
	return strings.ToUpper(t.Format("02Jan2006_15:04:05.000"))
}
