package cache

import (
	"time"
)

// TimeUntilNext8AM returns the duration until the next 8:00 AM in
// New York, shortly before the US market opens. Daily close series are
// cached until then, since a new close can only appear with a new
// trading day.
func TimeUntilNext8AM() time.Duration {
	loc, _ := time.LoadLocation("America/New_York")
	now := time.Now().In(loc)

	next8am := time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, loc)

	// today's 8 AM has already passed, use tomorrow's
	if now.After(next8am) {
		next8am = next8am.Add(24 * time.Hour)
	}

	return next8am.Sub(now)
}
