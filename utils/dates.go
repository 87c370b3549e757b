package utils

import (
	"fmt"
	"time"
)

// ParseMonth parses "yyyy-MM" into its first day.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return t, nil
}

// DaysInMonth returns the number of calendar days in "yyyy-MM".
func DaysInMonth(month string) (int, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return 0, err
	}
	return t.AddDate(0, 1, -1).Day(), nil
}

// ValidDate reports whether date is a well-formed "yyyy-MM-dd" string.
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// Today returns the current date as "yyyy-MM-dd".
func Today() string {
	return time.Now().Format("2006-01-02")
}
