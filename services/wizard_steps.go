package services

// BookingMode selects between an immediate check-in and a future reservation.
type BookingMode string

const (
	ModeDirect      BookingMode = "direct"
	ModeReservation BookingMode = "reservation"
)

// ReservationType is only asked for reservations. Direct bookings behave like
// walk-ins with the check-in happening immediately after creation.
type ReservationType string

const (
	TypeWalkIn        ReservationType = "walk_in"
	TypeOnline        ReservationType = "online"
	TypeComplimentary ReservationType = "complimentary"
)

// WizardStep names one screen of the booking wizard.
type WizardStep string

const (
	StepMode         WizardStep = "mode"
	StepType         WizardStep = "type"
	StepRoom         WizardStep = "room"
	StepGuest        WizardStep = "guest"
	StepDetails      WizardStep = "details"
	StepDatesPayment WizardStep = "dates_payment"
	StepConfirm      WizardStep = "confirm"
	StepCheckIn      WizardStep = "check_in"
)

// WizardSteps returns the ordered step list for the chosen flow. The sequence
// always starts at mode and ends at confirm, or at check-in for direct
// bookings. Rooms launched from a room action menu skip the room step.
func WizardSteps(mode BookingMode, rtype ReservationType, roomPreselected bool) []WizardStep {
	steps := []WizardStep{StepMode}

	if mode == ModeReservation {
		steps = append(steps, StepType)
	}
	if !roomPreselected {
		steps = append(steps, StepRoom)
	}
	steps = append(steps, StepGuest)

	// The reservation type changes validation, not the step order.
	if mode == ModeDirect {
		steps = append(steps, StepDatesPayment, StepConfirm, StepCheckIn)
	} else {
		steps = append(steps, StepDetails, StepConfirm)
	}
	return steps
}

// TerminalStep returns the last step of a flow.
func TerminalStep(mode BookingMode, rtype ReservationType, roomPreselected bool) WizardStep {
	steps := WizardSteps(mode, rtype, roomPreselected)
	return steps[len(steps)-1]
}
