package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d := mustDate(t, "2024-03-01")
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 1, d.Day())

	_, err := ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("01/03/2024")
	assert.Error(t, err)
	_, err = ParseDate("2024-13-40")
	assert.Error(t, err)

	// Surrounding whitespace is tolerated.
	_, err = ParseDate(" 2024-03-01 ")
	assert.NoError(t, err)
}

func TestNightsBetween(t *testing.T) {
	assert.Equal(t, 1, NightsBetween(mustDate(t, "2024-03-01"), mustDate(t, "2024-03-02")))
	assert.Equal(t, 3, NightsBetween(mustDate(t, "2024-03-01"), mustDate(t, "2024-03-04")))
	assert.Equal(t, 0, NightsBetween(mustDate(t, "2024-03-01"), mustDate(t, "2024-03-01")))
	assert.Equal(t, 0, NightsBetween(mustDate(t, "2024-03-05"), mustDate(t, "2024-03-01")))
}

func TestStayDates(t *testing.T) {
	dates := StayDates(mustDate(t, "2024-01-10"), mustDate(t, "2024-01-13"))
	assert.Equal(t, []string{"2024-01-10", "2024-01-11", "2024-01-12"}, dates)

	assert.Empty(t, StayDates(mustDate(t, "2024-01-10"), mustDate(t, "2024-01-10")))
	assert.Empty(t, StayDates(mustDate(t, "2024-01-13"), mustDate(t, "2024-01-10")))
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 5, 10, 8, 0, 0, 0, time.Local)
	night := time.Date(2024, 5, 10, 23, 59, 0, 0, time.Local)
	nextDay := time.Date(2024, 5, 11, 0, 1, 0, 0, time.Local)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, nextDay))
}

func TestDateOnly(t *testing.T) {
	stamp := time.Date(2024, 5, 10, 17, 45, 12, 0, time.Local)
	got := DateOnly(stamp)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, 10, got.Day())
}
