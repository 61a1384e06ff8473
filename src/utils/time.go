package utils

import "time"

// GetClosestFriday returns the next Friday on or after now, the default
// weekly expiration the dashboard trades against.
func GetClosestFriday(now time.Time) time.Time {
	daysUntilFriday := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, daysUntilFriday)
}
