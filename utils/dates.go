package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const DateLayout = "2006-01-02"

// EnvOrDefault returns the ENV value or the fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// Today returns the current date truncated to midnight local time.
func Today() time.Time {
	return now.BeginningOfDay()
}

// DateOnly truncates a timestamp to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return now.New(t).BeginningOfDay()
}

// ParseDate parses a YYYY-MM-DD stay date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// NightsBetween counts the nights between check-in and check-out. A stay from
// 2024-03-01 to 2024-03-02 is one night; equal or inverted dates yield zero
// and are rejected upstream.
func NightsBetween(checkIn, checkOut time.Time) int {
	n := int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// StayDates returns every date of the stay as YYYY-MM-DD strings, inclusive of
// check-in and exclusive of check-out. These are the nights the guest sleeps
// in the room, which is also the list of credit nights a complimentary
// booking consumes.
func StayDates(checkIn, checkOut time.Time) []string {
	dates := []string{}
	for d := DateOnly(checkIn); d.Before(DateOnly(checkOut)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}
