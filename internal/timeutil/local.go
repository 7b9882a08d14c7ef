package timeutil

import (
	"time"
)

// Zone is the production-local timezone. Call sheets, daily reports and
// contest cycles all run on Los Angeles time regardless of server locale.
var Zone *time.Location

func init() {
	var err error
	Zone, err = time.LoadLocation("America/Los_Angeles")
	if err != nil {
		// Fallback: fixed offset if the tz database is not available
		Zone = time.FixedZone("PST", -8*60*60)
	}
}

// Now returns the current time in the production timezone
func Now() time.Time {
	return time.Now().In(Zone)
}

// ToLocal converts any time to the production timezone
func ToLocal(t time.Time) time.Time {
	return t.In(Zone)
}

// FormatLocal formats a time in the production timezone using the given layout
func FormatLocal(t time.Time, layout string) string {
	return t.In(Zone).Format(layout)
}
