package common

import "time"

// TimeFormatISO8601 keeps nanoseconds, so the creation times of the
// transactions of the same second differ.
const TimeFormatISO8601 string = "2006-01-02T15:04:05.000000000Z07:00"

func FormatISO8601(t time.Time) string {
	return t.UTC().Format(TimeFormatISO8601)
}

func NowISO8601() string {
	return FormatISO8601(time.Now())
}
