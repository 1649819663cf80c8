package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateBookingNumber builds a unique booking reference like
// BK-20240110-3f2a9c1d. The uuid suffix guarantees uniqueness without a
// round-trip to the database.
func GenerateBookingNumber() string {
	return fmt.Sprintf("BK-%s-%s", time.Now().UTC().Format("20060102"), uuid.NewString()[:8])
}

// GenerateComplimentaryNumber builds the reference for credits-based bookings.
func GenerateComplimentaryNumber() string {
	return fmt.Sprintf("COMP-%s-%s", time.Now().UTC().Format("20060102"), uuid.NewString()[:8])
}

// NormalizeEmail lowercases and trims an email for case-insensitive
// comparison. The duplicate-guest check depends on this being applied to both
// sides.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
