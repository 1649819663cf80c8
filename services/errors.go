package services

import "errors"

// Sentinel errors shared by the services. Controllers map these to HTTP
// statuses with errors.Is.
var (
	ErrRoomNotFound    = errors.New("room_not_found")
	ErrGuestNotFound   = errors.New("guest_not_found")
	ErrBookingNotFound = errors.New("booking_not_found")

	ErrRoomUnavailable  = errors.New("room_unavailable")
	ErrRoomNotReady     = errors.New("room_not_ready")
	ErrDatesConflict    = errors.New("room_already_booked_for_dates")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrStatusTransition = errors.New("invalid_status_transition")
	ErrActiveBooking    = errors.New("room_has_active_booking")
	ErrBookingRequired  = errors.New("booking_required_for_reserved")

	ErrAlreadyCheckedIn  = errors.New("already_checked_in")
	ErrAlreadyCheckedOut = errors.New("already_checked_out")
	ErrNotCheckedIn      = errors.New("booking_not_checked_in")

	ErrInsufficientCredits = errors.New("insufficient_complimentary_credits")
	ErrNoComplimentaryDate = errors.New("at_least_one_complimentary_date_required")
	ErrDateOutOfRange      = errors.New("complimentary_date_outside_stay")

	ErrDuplicateRoomNumber = errors.New("duplicate_room_number")

	ErrCompanyRequired  = errors.New("company_name_required")
	ErrInvalidEntryType = errors.New("invalid_ledger_entry_type")

	ErrAuditAlreadyRun = errors.New("night_audit_already_run")
	ErrAuditNotFound   = errors.New("night_audit_run_not_found")
)
