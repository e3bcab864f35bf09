package models

import "time"

const DateKeyLayout = "2006-01-02"

// DateKey formats t as a YYYY-MM-DD key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey only checks that key is a well-formed calendar date.
func ParseDateKey(key string) (time.Time, error) {
	if len(key) != len(DateKeyLayout) {
		return time.Time{}, NewValidationError("date", "expected YYYY-MM-DD, got "+key)
	}
	t, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, NewValidationError("date", "expected YYYY-MM-DD, got "+key)
	}
	return t, nil
}

// DateKeysEndingAt returns n consecutive date keys, oldest first, the last
// one being the calendar day of end.
func DateKeysEndingAt(end time.Time, n int) []string {
	keys := make([]string, 0, n)
	y, m, d := end.Date()
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, DateKey(time.Date(y, m, d-i, 12, 0, 0, 0, end.Location())))
	}
	return keys
}
