package dateutil

import (
	"fmt"
	"time"
)

// Layout is the canonical calendar-date format used everywhere in the app.
const Layout = "2006-01-02"

// Today returns the current calendar date string in the given location.
// Callers derive it once at the request boundary and pass it down, so an
// operation never straddles midnight halfway through.
func Today(loc *time.Location) string {
	return time.Now().In(loc).Format(Layout)
}

// DayDiff returns the absolute number of calendar days between two date
// strings, ignoring time of day. Same day is 0, consecutive days are 1.
func DayDiff(a, b string) (int, error) {
	ta, err := time.Parse(Layout, a)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %v", a, err)
	}
	tb, err := time.Parse(Layout, b)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %v", b, err)
	}

	diff := int(tb.Sub(ta).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff, nil
}

// WeekdayOf returns the short weekday label ("Mon".."Sun") for a date string.
func WeekdayOf(date string) (string, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %v", date, err)
	}
	return t.Format("Mon"), nil
}

// WeekStart returns the Sunday that starts the week containing the given date.
func WeekStart(date string) (string, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %v", date, err)
	}
	return t.AddDate(0, 0, -int(t.Weekday())).Format(Layout), nil
}
