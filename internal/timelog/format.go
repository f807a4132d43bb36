package timelog

import (
	"fmt"
	"math"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	secondsPerMonth  = 30 * secondsPerDay
	secondsPerYear   = 365 * secondsPerDay
)

// FormatTotal renders an aggregate duration. Anything longer than one day is
// humanized ("2 days"); up to and including one day it is total-hours
// HH:mm:ss, so 86400 renders as 24:00:00.
func FormatTotal(seconds int64) string {
	if seconds > secondsPerDay {
		return Humanize(seconds)
	}
	return FormatHHMMSS(seconds)
}

// FormatHHMMSS formats seconds as zero-padded total hours, minutes, seconds.
// Hours are not wrapped and may exceed 24.
func FormatHHMMSS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / secondsPerHour
	m := (seconds % secondsPerHour) / secondsPerMinute
	s := seconds % secondsPerMinute
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatClock formats a single row's duration as a time of day: values of a
// day or more wrap around, so 90000 seconds renders as 01:00:00.
func FormatClock(seconds int64) string {
	wrapped := seconds % secondsPerDay
	if wrapped < 0 {
		wrapped += secondsPerDay
	}
	return FormatHHMMSS(wrapped)
}

// Humanize renders an approximate relative duration using the usual
// relative-time thresholds: counts are rounded to the nearest unit and a
// count of one is spelled out ("a day", "an hour").
func Humanize(seconds int64) string {
	if seconds < 0 {
		seconds = -seconds
	}

	if round(seconds, 1) <= 44 {
		return "a few seconds"
	}
	if round(seconds, 1) <= 89 {
		return "a minute"
	}
	if m := round(seconds, secondsPerMinute); m <= 44 {
		return plural(m, "a minute", "minutes")
	}
	if round(seconds, secondsPerMinute) <= 89 {
		return "an hour"
	}
	if h := round(seconds, secondsPerHour); h <= 21 {
		return plural(h, "an hour", "hours")
	}
	if round(seconds, secondsPerHour) <= 35 {
		return "a day"
	}
	if d := round(seconds, secondsPerDay); d <= 25 {
		return plural(d, "a day", "days")
	}
	if round(seconds, secondsPerDay) <= 45 {
		return "a month"
	}
	if mo := round(seconds, secondsPerMonth); mo <= 10 {
		return plural(mo, "a month", "months")
	}
	if round(seconds, secondsPerMonth) <= 17 {
		return "a year"
	}
	return plural(round(seconds, secondsPerYear), "a year", "years")
}

func round(seconds, unit int64) int64 {
	return int64(math.Round(float64(seconds) / float64(unit)))
}

func plural(n int64, one, many string) string {
	if n <= 1 {
		return one
	}
	return fmt.Sprintf("%d %s", n, many)
}
