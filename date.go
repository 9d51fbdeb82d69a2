package postdoc

import "time"

// FormatDate renders t as a calendar date (YYYY-MM-DD) in UTC.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

// FormatLongDate renders t for print headers, e.g.
// "January 15, 2024 at 10:30 AM", in UTC.
func FormatLongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("January 2, 2006 at 3:04 PM")
}
