package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hotel-pms/models"
	"hotel-pms/utils"
)

// WizardSession is one staff member's in-progress booking wizard. Sessions
// live in memory only; an abandoned dialog simply expires.
type WizardSession struct {
	ID        string      `json:"id"`
	State     WizardState `json:"state"`
	Completed bool        `json:"completed"`
	BookingID *uint       `json:"booking_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// WizardService owns the session map and drives submission side effects. Two
// operators can still race on the same room; the booking service's conflict
// check is the arbiter, exactly like the backend was for the old UI.
type WizardService struct {
	mu       sync.Mutex
	sessions map[string]*WizardSession

	guests   *GuestService
	bookings *BookingService
}

func NewWizardService(guests *GuestService, bookings *BookingService) *WizardService {
	return &WizardService{
		sessions: make(map[string]*WizardSession),
		guests:   guests,
		bookings: bookings,
	}
}

const wizardSessionTTL = 2 * time.Hour

// Start opens a session. A room passed in means the wizard was launched from
// a room's action menu and the room step is skipped.
func (s *WizardService) Start(roomID *uint) *WizardSession {
	state := WizardState{
		RoomPreselected: roomID != nil && *roomID != 0,
		RoomID:          roomID,
		Adults:          1,
	}
	session := &WizardSession{
		ID:        uuid.NewString(),
		State:     state,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	s.sessions[session.ID] = session
	return session
}

func (s *WizardService) Get(id string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrWizardSessionGone
	}
	return session, nil
}

// WizardUpdate is a partial patch of the session state. Only non-nil fields
// are applied. Mode and reservation-type changes go through the resetting
// transitions.
type WizardUpdate struct {
	Mode            *BookingMode     `json:"mode"`
	ReservationType *ReservationType `json:"reservation_type"`

	RoomID       *uint   `json:"room_id"`
	CheckInDate  *string `json:"check_in_date"`
	CheckOutDate *string `json:"check_out_date"`

	GuestID  *uint            `json:"guest_id"`
	NewGuest *WizardGuestForm `json:"new_guest"`

	CustomRateEnabled *bool    `json:"custom_rate_enabled"`
	CustomRate        *float64 `json:"custom_rate"`

	PaymentMethod   *string  `json:"payment_method"`
	DepositAmount   *float64 `json:"deposit_amount"`
	RoomCardDeposit *float64 `json:"room_card_deposit"`

	BookingChannel   *string `json:"booking_channel"`
	ChannelReference *string `json:"channel_reference"`
	MarketCode       *string `json:"market_code"`
	RateCode         *string `json:"rate_code"`

	Adults   *int    `json:"adults"`
	Children *int    `json:"children"`
	Remarks  *string `json:"remarks"`
}

// Update applies a patch and returns the new session state.
func (s *WizardService) Update(id string, patch WizardUpdate) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrWizardSessionGone
	}

	state := session.State
	if patch.Mode != nil {
		state = state.WithMode(*patch.Mode)
	}
	if patch.ReservationType != nil {
		state = state.WithReservationType(*patch.ReservationType)
	}
	if patch.RoomID != nil {
		state.RoomID = patch.RoomID
	}
	if patch.CheckInDate != nil {
		d, err := utils.ParseDate(*patch.CheckInDate)
		if err != nil {
			return nil, err
		}
		state.CheckInDate = d
	}
	if patch.CheckOutDate != nil {
		d, err := utils.ParseDate(*patch.CheckOutDate)
		if err != nil {
			return nil, err
		}
		state.CheckOutDate = d
	}
	if patch.GuestID != nil {
		state.GuestID = patch.GuestID
		state.NewGuest = nil
	}
	if patch.NewGuest != nil {
		state.NewGuest = patch.NewGuest
		state.GuestID = nil
	}
	if patch.CustomRateEnabled != nil {
		state.CustomRateEnabled = *patch.CustomRateEnabled
	}
	if patch.CustomRate != nil {
		state.CustomRate = *patch.CustomRate
	}
	if patch.PaymentMethod != nil {
		state.PaymentMethod = *patch.PaymentMethod
	}
	if patch.DepositAmount != nil {
		state.DepositAmount = *patch.DepositAmount
	}
	if patch.RoomCardDeposit != nil {
		state.RoomCardDeposit = *patch.RoomCardDeposit
	}
	if patch.BookingChannel != nil {
		state.BookingChannel = *patch.BookingChannel
	}
	if patch.ChannelReference != nil {
		state.ChannelReference = *patch.ChannelReference
	}
	if patch.MarketCode != nil {
		state.MarketCode = *patch.MarketCode
	}
	if patch.RateCode != nil {
		state.RateCode = *patch.RateCode
	}
	if patch.Adults != nil {
		state.Adults = *patch.Adults
	}
	if patch.Children != nil {
		state.Children = *patch.Children
	}
	if patch.Remarks != nil {
		state.Remarks = *patch.Remarks
	}

	session.State = state
	session.UpdatedAt = time.Now()
	return session, nil
}

// Next advances one step after re-validating the current one.
func (s *WizardService) Next(id string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrWizardSessionGone
	}

	next, err := session.State.Next(func(email string) bool {
		return s.guests.EmailExists(email, 0)
	})
	if err != nil {
		return nil, err
	}
	session.State = next
	session.UpdatedAt = time.Now()
	return session, nil
}

// Back retreats one step.
func (s *WizardService) Back(id string) (*WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrWizardSessionGone
	}

	prev, err := session.State.Back()
	if err != nil {
		return nil, err
	}
	session.State = prev
	session.UpdatedAt = time.Now()
	return session, nil
}

// WizardResult reports what Submit created.
type WizardResult struct {
	Session   *WizardSession  `json:"session"`
	Guest     *models.Guest   `json:"guest"`
	Booking   *models.Booking `json:"booking"`
	CheckedIn bool            `json:"checked_in"`
}

// Submit runs the confirm-step side effects: create the guest when a new one
// was registered, create the booking for the effective type, and for direct
// bookings check in immediately. Any failure leaves the session on the
// confirm step for retry.
func (s *WizardService) Submit(id string, by *uint) (*WizardResult, error) {
	// Snapshot the state under the lock; Update mutates it concurrently and
	// the DB work below must not run while holding the mutex.
	s.mu.Lock()
	session, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrWizardSessionGone
	}
	if session.Completed {
		s.mu.Unlock()
		return nil, ErrWizardDone
	}
	state := session.State
	s.mu.Unlock()

	if state.CurrentStep() != StepConfirm {
		return nil, ErrWizardUseSubmit
	}
	// Re-run every gate the flow passed through; nothing is trusted from
	// earlier validations.
	for _, step := range state.Steps() {
		if step == StepConfirm || step == StepCheckIn {
			break
		}
		if step == StepRoom && state.RoomPreselected {
			continue
		}
		if err := state.ValidateStep(step, nil); err != nil {
			return nil, err
		}
	}
	if state.RoomID == nil {
		return nil, ErrWizardRoom
	}

	guest, err := s.resolveGuest(state)
	if err != nil {
		return nil, err
	}

	var booking *models.Booking
	switch state.EffectiveType() {
	case TypeComplimentary:
		booking, err = s.bookings.CreateWithCredits(CreditsBookingInput{
			GuestID:            guest.ID,
			RoomID:             *state.RoomID,
			CheckInDate:        state.CheckInDate,
			CheckOutDate:       state.CheckOutDate,
			ComplimentaryDates: state.ComplimentaryDates(),
			Adults:             state.Adults,
			Children:           state.Children,
			Remarks:            state.Remarks,
			CreatedBy:          by,
		})
	case TypeOnline:
		// No payment collection in the online flow; the channel settles it.
		booking, err = s.bookings.Create(BookingInput{
			GuestID:          guest.ID,
			RoomID:           *state.RoomID,
			CheckInDate:      state.CheckInDate,
			CheckOutDate:     state.CheckOutDate,
			RateOverride:     state.rateOverride(),
			Source:           models.SourceOnline,
			BookingChannel:   state.BookingChannel,
			ChannelReference: state.ChannelReference,
			MarketCode:       state.MarketCode,
			RateCode:         state.RateCode,
			Adults:           state.Adults,
			Children:         state.Children,
			Remarks:          state.Remarks,
			CreatedBy:        by,
		})
	default: // walk-in, including direct
		source := models.SourceWalkIn
		if state.Mode == ModeDirect {
			source = models.SourceDirect
		}
		booking, err = s.bookings.Create(BookingInput{
			GuestID:         guest.ID,
			RoomID:          *state.RoomID,
			CheckInDate:     state.CheckInDate,
			CheckOutDate:    state.CheckOutDate,
			RateOverride:    state.rateOverride(),
			Source:          source,
			MarketCode:      state.MarketCode,
			RateCode:        state.RateCode,
			PaymentMethod:   state.PaymentMethod,
			DepositAmount:   state.DepositAmount,
			RoomCardDeposit: state.RoomCardDeposit,
			Adults:          state.Adults,
			Children:        state.Children,
			Remarks:         state.Remarks,
			CreatedBy:       by,
		})
	}
	if err != nil {
		return nil, err
	}

	result := &WizardResult{Guest: guest, Booking: booking}

	if state.Mode == ModeDirect {
		checkedIn, ciErr := s.bookings.CheckIn(booking.ID, by)
		if ciErr != nil {
			// Booking exists but the guest is not in the room; the session
			// stays on confirm and the operator retries or resolves by hand.
			logrus.WithFields(logrus.Fields{
				"booking_id": booking.ID,
				"error":      ciErr.Error(),
			}).Warn("direct booking created but immediate check-in failed")
			return nil, ciErr
		}
		result.Booking = checkedIn
		result.CheckedIn = true
	}

	s.mu.Lock()
	session.State.StepIndex = len(state.Steps()) - 1
	session.State.GuestID = &guest.ID
	session.Completed = true
	session.BookingID = &booking.ID
	session.UpdatedAt = time.Now()
	result.Session = session
	s.mu.Unlock()

	return result, nil
}

func (s WizardState) rateOverride() *float64 {
	if !s.CustomRateEnabled {
		return nil
	}
	r := s.CustomRate
	return &r
}

func (s *WizardService) resolveGuest(state WizardState) (*models.Guest, error) {
	if state.GuestID != nil && *state.GuestID != 0 {
		guest, err := s.guests.GetByID(*state.GuestID)
		if err != nil {
			return nil, err
		}
		return &guest, nil
	}
	if state.NewGuest == nil {
		return nil, ErrWizardGuest
	}
	if err := wizardValidate.Struct(state.NewGuest); err != nil {
		return nil, ErrWizardGuest
	}

	guest := &models.Guest{
		FullName:    state.NewGuest.FullName,
		Email:       utils.NormalizeEmail(state.NewGuest.Email),
		Phone:       state.NewGuest.Phone,
		ICNumber:    state.NewGuest.ICNumber,
		Nationality: state.NewGuest.Nationality,
		GuestType:   state.NewGuest.GuestType,
		IsActive:    true,
	}
	if err := s.guests.Create(guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// evictExpiredLocked drops stale sessions. Caller holds the lock.
func (s *WizardService) evictExpiredLocked() {
	cutoff := time.Now().Add(-wizardSessionTTL)
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
