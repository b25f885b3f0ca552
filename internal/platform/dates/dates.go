package dates

import "time"

const keyLayout = "2006-01-02"

// Key collapses a timestamp to its local calendar day, the granularity at
// which streaks and daily challenges operate.
func Key(t time.Time) string {
	return t.Format(keyLayout)
}

func Yesterday(t time.Time) string {
	return Key(t.AddDate(0, 0, -1))
}

// DayOfYear returns the 1-based ordinal day used to seed the daily
// challenge selection.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

func Parse(key string) (time.Time, bool) {
	t, err := time.ParseInLocation(keyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
