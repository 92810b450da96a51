package timefmt

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// Days returns the whole number of days from ts to now, rounded toward
// negative infinity. A ts in the future yields a negative count.
func Days(ts, now time.Time) int64 {
	d := now.Sub(ts)
	days := int64(d / day)
	if d%day != 0 && d < 0 {
		days--
	}
	return days
}

// DaysAgo formats the day count as "<n> days ago". The count is not
// pluralized or clamped: 1 and -1 print as "1 days ago" and "-1 days ago".
func DaysAgo(ts, now time.Time) string {
	return fmt.Sprintf("%d days ago", Days(ts, now))
}
