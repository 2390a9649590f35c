package timeutil

import (
	"fmt"
	"time"
)

// BoardingClock derives the printed boarding time from a departure time:
// one hour earlier, same minute. A departure in hour 0 boards at 23:MM of
// the previous day, so only the clock face wraps.
func BoardingClock(departure time.Time) string {
	hour := departure.Hour()
	if hour == 0 {
		hour = 23
	} else {
		hour--
	}
	return fmt.Sprintf("%02d:%02d", hour, departure.Minute())
}

// FormatDuration renders the gap between two timestamps as "7h 15m" for
// search results. Sub-hour flights render as "45m".
func FormatDuration(departure, arrival time.Time) string {
	d := arrival.Sub(departure).Round(time.Minute)
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
