package controllers

import (
	"errors"
	"net/http"
	"time"

	"hotel-pms/services"
)

// httpStatusFor maps service errors onto HTTP statuses. Anything unknown is a
// 500 with a generic message so internals never leak.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrWizardSessionGone),
		errors.Is(err, services.ErrAuditNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicateRoomNumber),
		errors.Is(err, services.ErrDatesConflict),
		errors.Is(err, services.ErrWizardDone),
		errors.Is(err, services.ErrAuditAlreadyRun):
		return http.StatusConflict
	case errors.Is(err, services.ErrRoomUnavailable),
		errors.Is(err, services.ErrRoomNotReady),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrStatusTransition),
		errors.Is(err, services.ErrActiveBooking),
		errors.Is(err, services.ErrBookingRequired),
		errors.Is(err, services.ErrAlreadyCheckedIn),
		errors.Is(err, services.ErrAlreadyCheckedOut),
		errors.Is(err, services.ErrNotCheckedIn),
		errors.Is(err, services.ErrInsufficientCredits),
		errors.Is(err, services.ErrNoComplimentaryDate),
		errors.Is(err, services.ErrDateOutOfRange),
		errors.Is(err, services.ErrWizardMode),
		errors.Is(err, services.ErrWizardType),
		errors.Is(err, services.ErrWizardRoom),
		errors.Is(err, services.ErrWizardGuest),
		errors.Is(err, services.ErrWizardDates),
		errors.Is(err, services.ErrWizardChannel),
		errors.Is(err, services.ErrWizardTerminal),
		errors.Is(err, services.ErrWizardUseSubmit),
		errors.Is(err, services.ErrWizardNoMoreSteps),
		errors.Is(err, services.ErrCompanyRequired),
		errors.Is(err, services.ErrInvalidEntryType):
		return http.StatusBadRequest
	}
	// Wizard patches parse user-supplied dates, so surface those as 400s too.
	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errorMessage(err error) string {
	if httpStatusFor(err) == http.StatusInternalServerError {
		return "internal error"
	}
	return err.Error()
}
