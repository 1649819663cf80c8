package services

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"hotel-pms/utils"
)

var wizardValidate = validator.New()

// Wizard validation errors surfaced to the client as 400s.
var (
	ErrWizardMode        = errors.New("booking mode must be chosen first")
	ErrWizardType        = errors.New("reservation type must be chosen")
	ErrWizardRoom        = errors.New("a room and a valid date range are required")
	ErrWizardGuest       = errors.New("select an existing guest or complete the new guest form")
	ErrWizardDates       = errors.New("check-out date must be after check-in date")
	ErrWizardChannel     = errors.New("online bookings require a booking channel")
	ErrWizardTerminal    = errors.New("cannot go back from the check-in step")
	ErrWizardUseSubmit   = errors.New("leaving the confirm step requires submit")
	ErrWizardNoMoreSteps = errors.New("already on the final step")
	ErrWizardSessionGone = errors.New("wizard session not found")
	ErrWizardDone        = errors.New("wizard session already submitted")
	ErrDuplicateEmail    = errors.New("a guest with this email already exists")
)

// WizardGuestForm is the new-guest registration form. Validation runs through
// validator/v10 every time the guest step is checked; nothing is cached.
type WizardGuestForm struct {
	FullName    string `json:"full_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	ICNumber    string `json:"ic_number"`
	Nationality string `json:"nationality"`
	GuestType   string `json:"guest_type" validate:"omitempty,oneof=regular member"`
}

// WizardState is the whole wizard as one value. Transitions return a new
// state instead of mutating in place, so a failed transition leaves the
// session exactly where it was.
type WizardState struct {
	Mode            BookingMode     `json:"mode"`
	ReservationType ReservationType `json:"reservation_type,omitempty"`
	RoomPreselected bool            `json:"room_preselected"`

	StepIndex int `json:"step_index"`

	RoomID       *uint     `json:"room_id,omitempty"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`

	GuestID  *uint            `json:"guest_id,omitempty"`
	NewGuest *WizardGuestForm `json:"new_guest,omitempty"`

	CustomRateEnabled bool    `json:"custom_rate_enabled"`
	CustomRate        float64 `json:"custom_rate"`

	PaymentMethod   string  `json:"payment_method,omitempty"`
	DepositAmount   float64 `json:"deposit_amount"`
	RoomCardDeposit float64 `json:"room_card_deposit"`

	BookingChannel   string `json:"booking_channel,omitempty"`
	ChannelReference string `json:"channel_reference,omitempty"`
	MarketCode       string `json:"market_code,omitempty"`
	RateCode         string `json:"rate_code,omitempty"`

	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Remarks  string `json:"remarks,omitempty"`
}

// Steps returns the step sequence for the state's current choices.
func (s WizardState) Steps() []WizardStep {
	return WizardSteps(s.Mode, s.ReservationType, s.RoomPreselected)
}

// CurrentStep returns the step the wizard is on.
func (s WizardState) CurrentStep() WizardStep {
	steps := s.Steps()
	if s.StepIndex < 0 || s.StepIndex >= len(steps) {
		return steps[len(steps)-1]
	}
	return steps[s.StepIndex]
}

// EffectiveType resolves the type used at submission: direct bookings always
// behave like walk-ins.
func (s WizardState) EffectiveType() ReservationType {
	if s.Mode == ModeDirect {
		return TypeWalkIn
	}
	if s.ReservationType == "" {
		return TypeWalkIn
	}
	return s.ReservationType
}

// WithMode selects the booking mode. All guest sub-state is dropped so stale
// selections never cross flow types; the step index rewinds to the start.
func (s WizardState) WithMode(mode BookingMode) WizardState {
	s.Mode = mode
	s.ReservationType = ""
	s.StepIndex = 0
	return s.resetGuestState()
}

// WithReservationType selects the reservation type, with the same reset rule.
func (s WizardState) WithReservationType(t ReservationType) WizardState {
	s.ReservationType = t
	return s.resetGuestState()
}

func (s WizardState) resetGuestState() WizardState {
	s.GuestID = nil
	s.NewGuest = nil
	return s
}

// Nights computes the stay length from the selected dates.
func (s WizardState) Nights() int {
	return utils.NightsBetween(s.CheckInDate, s.CheckOutDate)
}

// Total prices the stay: (custom rate if enabled, else the room's nightly
// price) x nights; complimentary stays are always zero-cost.
func (s WizardState) Total(pricePerNight float64) float64 {
	if s.EffectiveType() == TypeComplimentary {
		return 0
	}
	rate := pricePerNight
	if s.CustomRateEnabled {
		rate = s.CustomRate
	}
	return rate * float64(s.Nights())
}

// ComplimentaryDates lists the credit nights the stay consumes: every date
// from check-in up to, but excluding, check-out.
func (s WizardState) ComplimentaryDates() []string {
	return utils.StayDates(s.CheckInDate, s.CheckOutDate)
}

// ValidateStep re-checks one step against the current data. It is invoked on
// every Next, so clearing a field after a step passed makes the step fail
// again. emailTaken answers the case-insensitive duplicate check for new
// guests; pass nil to skip it.
func (s WizardState) ValidateStep(step WizardStep, emailTaken func(string) bool) error {
	switch step {
	case StepMode:
		if s.Mode != ModeDirect && s.Mode != ModeReservation {
			return ErrWizardMode
		}
	case StepType:
		switch s.ReservationType {
		case TypeWalkIn, TypeOnline, TypeComplimentary:
		default:
			return ErrWizardType
		}
	case StepRoom:
		if s.RoomID == nil || *s.RoomID == 0 {
			return ErrWizardRoom
		}
		if err := s.validateDates(); err != nil {
			return ErrWizardRoom
		}
	case StepGuest:
		if s.GuestID != nil && *s.GuestID != 0 {
			return nil
		}
		if s.NewGuest == nil {
			return ErrWizardGuest
		}
		if err := wizardValidate.Struct(s.NewGuest); err != nil {
			return ErrWizardGuest
		}
		if emailTaken != nil && emailTaken(utils.NormalizeEmail(s.NewGuest.Email)) {
			return ErrDuplicateEmail
		}
	case StepDetails, StepDatesPayment:
		if err := s.validateDates(); err != nil {
			return err
		}
		if s.EffectiveType() == TypeOnline && s.BookingChannel == "" {
			return ErrWizardChannel
		}
	case StepConfirm, StepCheckIn:
		// nothing to validate; confirm gates on the submit side effects
	}
	return nil
}

func (s WizardState) validateDates() error {
	if s.CheckInDate.IsZero() || s.CheckOutDate.IsZero() {
		return ErrWizardDates
	}
	// checkout == checkin is a hard rejection; there is no one-night floor here
	if !utils.DateOnly(s.CheckOutDate).After(utils.DateOnly(s.CheckInDate)) {
		return ErrWizardDates
	}
	return nil
}

// Next validates the current step and advances. The confirm -> check-in
// transition is excluded: it has side effects and only happens through
// Submit.
func (s WizardState) Next(emailTaken func(string) bool) (WizardState, error) {
	steps := s.Steps()
	if s.StepIndex >= len(steps)-1 {
		return s, ErrWizardNoMoreSteps
	}
	if steps[s.StepIndex] == StepConfirm {
		return s, ErrWizardUseSubmit
	}
	if err := s.ValidateStep(steps[s.StepIndex], emailTaken); err != nil {
		return s, err
	}
	s.StepIndex++
	return s, nil
}

// Back moves to the previous step. It is unrestricted except from the
// terminal check-in step, which is only reached after the booking exists.
func (s WizardState) Back() (WizardState, error) {
	if s.CurrentStep() == StepCheckIn {
		return s, ErrWizardTerminal
	}
	if s.StepIndex > 0 {
		s.StepIndex--
	}
	return s, nil
}
