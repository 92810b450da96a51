package timefmt

import (
	"testing"
	"time"
)

func TestDaysAgo(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{name: "same instant", ts: now, want: "0 days ago"},
		{name: "exactly one day", ts: now.Add(-24 * time.Hour), want: "1 days ago"},
		{name: "exactly ten days", ts: now.Add(-10 * 24 * time.Hour), want: "10 days ago"},
		{name: "just under a day", ts: now.Add(-23 * time.Hour), want: "0 days ago"},
		{name: "a day and a half", ts: now.Add(-36 * time.Hour), want: "1 days ago"},
		{name: "exactly one day in the future", ts: now.Add(24 * time.Hour), want: "-1 days ago"},
		{name: "an hour in the future floors", ts: now.Add(time.Hour), want: "-1 days ago"},
		{name: "exactly three days in the future", ts: now.Add(3 * 24 * time.Hour), want: "-3 days ago"},
		{name: "other zone", ts: now.In(time.FixedZone("UTC+9", 9*3600)).Add(-48 * time.Hour), want: "2 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysAgo(tt.ts, now); got != tt.want {
				t.Errorf("DaysAgo() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDays_RoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for k := int64(-30); k <= 30; k++ {
		ts := now.Add(-time.Duration(k) * 24 * time.Hour)
		if got := Days(ts, now); got != k {
			t.Errorf("Days(now - %d days) = %d", k, got)
		}
	}
}
