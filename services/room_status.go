package services

import (
	"time"

	"hotel-pms/models"
	"hotel-pms/utils"
)

// ResolveRoomStatus derives the status shown for a room from its stored
// status plus the bookings currently on it. The stored status is never
// trusted verbatim while active bookings exist:
//
//  1. any checked-in booking        -> occupied
//  2. confirmed/pending, arrival due -> reserved
//  3. stored maintenance/dirty/cleaning kept as-is
//  4. otherwise                      -> available
//
// Rule order is the tie-break: a room matching 1 and 2 resolves to occupied.
func ResolveRoomStatus(room models.Room, bookings []models.Booking, today time.Time) string {
	today = utils.DateOnly(today)

	for _, b := range bookings {
		if models.IsCheckedIn(b.Status) {
			return models.RoomOccupied
		}
	}

	for _, b := range bookings {
		if models.IsUpcoming(b.Status) && !utils.DateOnly(b.CheckInDate).After(today) {
			return models.RoomReserved
		}
	}

	switch room.Status {
	case models.RoomMaintenance, models.RoomDirty, models.RoomCleaning, models.RoomOutOfOrder:
		return room.Status
	}
	return models.RoomAvailable
}

// UpcomingReservation returns the earliest confirmed/pending booking with a
// future check-in date, or nil. A future arrival never changes today's
// effective status; it is surfaced separately as an indicator.
func UpcomingReservation(bookings []models.Booking, today time.Time) *models.Booking {
	today = utils.DateOnly(today)

	var next *models.Booking
	for i := range bookings {
		b := &bookings[i]
		if !models.IsUpcoming(b.Status) || !utils.DateOnly(b.CheckInDate).After(today) {
			continue
		}
		if next == nil || b.CheckInDate.Before(next.CheckInDate) {
			next = b
		}
	}
	return next
}

// StatusInconsistency flags a room whose stored status promises a booking that
// does not exist. These come from out-of-band status edits; they are reported
// and logged but never auto-remediated.
type StatusInconsistency struct {
	RoomID     uint   `json:"room_id"`
	RoomNumber string `json:"room_number"`
	Stored     string `json:"stored_status"`
	Reason     string `json:"reason"`
}

// FindStatusInconsistencies checks one room against its bookings.
func FindStatusInconsistencies(room models.Room, bookings []models.Booking) []StatusInconsistency {
	var out []StatusInconsistency

	hasActive := false
	hasCheckedIn := false
	for _, b := range bookings {
		if models.IsCheckedIn(b.Status) {
			hasCheckedIn = true
			hasActive = true
		} else if models.IsUpcoming(b.Status) {
			hasActive = true
		}
	}

	if room.Status == models.RoomReserved && !hasActive {
		out = append(out, StatusInconsistency{
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			Stored:     room.Status,
			Reason:     "room marked reserved but no confirmed or pending booking exists",
		})
	}
	if room.Status == models.RoomOccupied && !hasCheckedIn {
		out = append(out, StatusInconsistency{
			RoomID:     room.ID,
			RoomNumber: room.RoomNumber,
			Stored:     room.Status,
			Reason:     "room marked occupied but no checked-in booking exists",
		})
	}
	return out
}
