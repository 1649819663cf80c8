package models

// Booking lifecycle statuses. The odd-looking auto_checked_in is produced by
// the night-audit path when a confirmed arrival was never manually checked in.
const (
	BookingPending       = "pending"
	BookingConfirmed     = "confirmed"
	BookingCheckedIn     = "checked_in"
	BookingAutoCheckedIn = "auto_checked_in"
	BookingCheckedOut    = "checked_out"
	BookingCancelled     = "cancelled"
	BookingNoShow        = "no_show"
	BookingReleased      = "released"
)

// Stored room statuses.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomReserved    = "reserved"
	RoomCleaning    = "cleaning"
	RoomDirty       = "dirty"
	RoomMaintenance = "maintenance"
	RoomOutOfOrder  = "out_of_order"
)

// Booking sources.
const (
	SourceWalkIn        = "walk_in"
	SourceDirect        = "direct"
	SourceOnline        = "online"
	SourceComplimentary = "complimentary_credits"
)

// Guest types. Members get the room card deposit waived.
const (
	GuestRegular = "regular"
	GuestMember  = "member"
)

// ActiveBookingStatuses are the statuses that block a room for their date
// range. cancelled/no_show/checked_out/released never conflict.
func ActiveBookingStatuses() []string {
	return []string{BookingPending, BookingConfirmed, BookingCheckedIn, BookingAutoCheckedIn}
}

// IsCheckedIn reports whether the status represents a guest currently in the room.
func IsCheckedIn(status string) bool {
	return status == BookingCheckedIn || status == BookingAutoCheckedIn
}

// IsUpcoming reports whether the status represents a stay that has not started yet.
func IsUpcoming(status string) bool {
	return status == BookingConfirmed || status == BookingPending
}

// ValidRoomStatuses lists every status accepted by the room status endpoint.
// "clean" is accepted as an alias and normalized to available.
func ValidRoomStatuses() []string {
	return []string{
		RoomAvailable, RoomOccupied, RoomReserved, RoomCleaning,
		RoomDirty, RoomMaintenance, RoomOutOfOrder, "clean",
	}
}
