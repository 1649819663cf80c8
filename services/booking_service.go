package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/utils"
)

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// BookingInput carries everything the create path needs. Dates are stay
// dates, already parsed.
type BookingInput struct {
	GuestID      uint
	RoomID       uint
	CheckInDate  time.Time
	CheckOutDate time.Time

	RateOverride *float64

	Source           string
	BookingChannel   string
	ChannelReference string
	MarketCode       string
	RateCode         string

	PaymentMethod   string
	PaymentStatus   string
	DepositAmount   float64
	RoomCardDeposit float64

	Adults   int
	Children int
	Remarks  string

	CreatedBy *uint
}

// CreditsBookingInput is the complimentary flow: the caller names the exact
// dates the credits cover.
type CreditsBookingInput struct {
	GuestID            uint
	RoomID             uint
	CheckInDate        time.Time
	CheckOutDate       time.Time
	ComplimentaryDates []string
	Adults             int
	Children           int
	Remarks            string
	CreatedBy          *uint
}

// Create validates availability and writes the booking plus its room-status
// side effect in one transaction. Member guests get the room card deposit
// forced to zero whatever the form said.
func (s *BookingService) Create(input BookingInput) (*models.Booking, error) {
	nights := utils.NightsBetween(input.CheckInDate, input.CheckOutDate)
	if nights <= 0 {
		return nil, ErrWizardDates
	}

	var room models.Room
	if err := s.DB.First(&room, input.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room: %w", err)
	}
	// Only maintenance and out-of-order rooms refuse new bookings; a dirty
	// room can still be booked for a future date.
	if room.Status == models.RoomMaintenance || room.Status == models.RoomOutOfOrder {
		return nil, ErrRoomUnavailable
	}

	var guest models.Guest
	if err := s.DB.First(&guest, input.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}

	conflict, err := s.hasDateConflict(input.RoomID, input.CheckInDate, input.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrDatesConflict
	}

	rate := room.PricePerNight
	if input.RateOverride != nil {
		rate = *input.RateOverride
	}
	subtotal := rate * float64(nights)

	roomCardDeposit := input.RoomCardDeposit
	if guest.GuestType == models.GuestMember {
		// Members never pay the card deposit.
		roomCardDeposit = 0
	}

	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "unpaid"
	}
	source := input.Source
	if source == "" {
		source = models.SourceWalkIn
	}
	adults := input.Adults
	if adults <= 0 {
		adults = 1
	}

	booking := &models.Booking{
		BookingNumber:    utils.GenerateBookingNumber(),
		GuestID:          input.GuestID,
		RoomID:           input.RoomID,
		CheckInDate:      utils.DateOnly(input.CheckInDate),
		CheckOutDate:     utils.DateOnly(input.CheckOutDate),
		Nights:           nights,
		Status:           models.BookingConfirmed,
		PaymentStatus:    paymentStatus,
		PaymentMethod:    input.PaymentMethod,
		RoomRate:         rate,
		Subtotal:         subtotal,
		TotalAmount:      subtotal,
		DepositAmount:    input.DepositAmount,
		RoomCardDeposit:  roomCardDeposit,
		Source:           source,
		BookingChannel:   input.BookingChannel,
		ChannelReference: input.ChannelReference,
		MarketCode:       input.MarketCode,
		RateCode:         input.RateCode,
		Adults:           adults,
		Children:         input.Children,
		Remarks:          input.Remarks,
		CreatedBy:        input.CreatedBy,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		// A stay arriving today marks the room occupied right away; future
		// stays mark it reserved. Stored status stays untouched for rooms
		// under maintenance windows.
		if room.Status == models.RoomAvailable || room.Status == models.RoomReserved {
			status := models.RoomReserved
			if booking.CheckInDate.Equal(utils.Today()) {
				status = models.RoomOccupied
			}
			if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
				Update("status", status).Error; err != nil {
				return fmt.Errorf("failed to update room status: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_number": booking.BookingNumber,
		"room_id":        booking.RoomID,
		"guest_id":       booking.GuestID,
		"source":         booking.Source,
		"nights":         booking.Nights,
	}).Info("booking created")
	return booking, nil
}

// CreateWithCredits books a stay paid with complimentary nights. Every listed
// date must fall inside [check-in, check-out); the guest's balance for the
// room's type is decremented in the same transaction.
func (s *BookingService) CreateWithCredits(input CreditsBookingInput) (*models.Booking, error) {
	nights := utils.NightsBetween(input.CheckInDate, input.CheckOutDate)
	if nights <= 0 {
		return nil, ErrWizardDates
	}
	if len(input.ComplimentaryDates) == 0 {
		return nil, ErrNoComplimentaryDate
	}

	checkIn := utils.DateOnly(input.CheckInDate)
	checkOut := utils.DateOnly(input.CheckOutDate)

	// Parse, bound-check and dedupe the requested dates.
	seen := map[string]bool{}
	compDates := make([]string, 0, len(input.ComplimentaryDates))
	for _, ds := range input.ComplimentaryDates {
		d, err := utils.ParseDate(ds)
		if err != nil {
			return nil, err
		}
		if d.Before(checkIn) || !d.Before(checkOut) {
			return nil, ErrDateOutOfRange
		}
		if !seen[ds] {
			seen[ds] = true
			compDates = append(compDates, ds)
		}
	}

	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, input.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if room.RoomTypeID == nil {
		return nil, fmt.Errorf("room %s has no room type; credits are tracked per room type", room.RoomNumber)
	}

	var credit models.GuestCredit
	err := s.DB.Where("guest_id = ? AND room_type_id = ?", input.GuestID, *room.RoomTypeID).First(&credit).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if credit.NightsAvailable < len(compDates) {
		// Nights beyond the balance are a data inconsistency, not something
		// to silently cap.
		logrus.WithFields(logrus.Fields{
			"guest_id":  input.GuestID,
			"requested": len(compDates),
			"available": credit.NightsAvailable,
		}).Warn("complimentary booking requested more nights than the guest's balance")
		return nil, ErrInsufficientCredits
	}

	conflict, err := s.hasDateConflict(input.RoomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrDatesConflict
	}

	datesJSON, err := json.Marshal(compDates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode complimentary dates: %w", err)
	}

	adults := input.Adults
	if adults <= 0 {
		adults = 1
	}

	booking := &models.Booking{
		BookingNumber:       utils.GenerateComplimentaryNumber(),
		GuestID:             input.GuestID,
		RoomID:              input.RoomID,
		CheckInDate:         checkIn,
		CheckOutDate:        checkOut,
		Nights:              nights,
		Status:              models.BookingConfirmed,
		PaymentStatus:       "paid",
		RoomRate:            0,
		Subtotal:            0,
		TotalAmount:         0,
		Source:              models.SourceComplimentary,
		IsComplimentary:     true,
		ComplimentaryDates:  datatypes.JSON(datesJSON),
		ComplimentaryReason: fmt.Sprintf("Free gift - %d complimentary night(s) for %s", len(compDates), room.RoomType.Name),
		Adults:              adults,
		Children:            input.Children,
		Remarks:             input.Remarks,
		CreatedBy:           input.CreatedBy,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create complimentary booking: %w", err)
		}
		res := tx.Model(&models.GuestCredit{}).
			Where("guest_id = ? AND room_type_id = ? AND nights_available >= ?", input.GuestID, *room.RoomTypeID, len(compDates)).
			Update("nights_available", gorm.Expr("nights_available - ?", len(compDates)))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientCredits
		}
		status := models.RoomReserved
		if checkIn.Equal(utils.Today()) {
			status = models.RoomOccupied
		}
		return tx.Model(&models.Room{}).Where("id = ?", room.ID).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_number":       booking.BookingNumber,
		"complimentary_nights": len(compDates),
	}).Info("complimentary booking created")
	return booking, nil
}

// CheckIn moves a confirmed or pending booking to checked_in, marks the room
// occupied and appends the room history entry.
func (s *BookingService) CheckIn(bookingID uint, by *uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").Preload("Guest").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if models.IsCheckedIn(booking.Status) {
		return nil, ErrAlreadyCheckedIn
	}
	if !models.IsUpcoming(booking.Status) {
		return nil, ErrStatusTransition
	}
	switch booking.Room.Status {
	case models.RoomDirty, models.RoomCleaning:
		return nil, ErrRoomNotReady
	case models.RoomMaintenance, models.RoomOutOfOrder:
		return nil, ErrRoomUnavailable
	}

	now := time.Now()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]interface{}{
			"status":        models.BookingCheckedIn,
			"checked_in_at": &now,
		}).Error; err != nil {
			return err
		}
		fromStatus := booking.Room.Status
		if err := tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
			Update("status", models.RoomOccupied).Error; err != nil {
			return err
		}
		history := models.RoomHistory{
			RoomID:     booking.RoomID,
			FromStatus: fromStatus,
			ToStatus:   models.RoomOccupied,
			BookingID:  &booking.ID,
			GuestID:    &booking.GuestID,
			Notes:      fmt.Sprintf("Checked in booking %s", booking.BookingNumber),
			ChangedBy:  by,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, fmt.Errorf("check-in failed: %w", err)
	}

	booking.Status = models.BookingCheckedIn
	booking.CheckedInAt = &now
	logrus.WithField("booking_number", booking.BookingNumber).Info("guest checked in")
	return &booking, nil
}

// CheckOut closes a checked-in stay and sends the room to cleaning.
func (s *BookingService) CheckOut(bookingID uint, by *uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if booking.Status == models.BookingCheckedOut {
		return nil, ErrAlreadyCheckedOut
	}
	if !models.IsCheckedIn(booking.Status) {
		return nil, ErrNotCheckedIn
	}

	now := time.Now()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]interface{}{
			"status":         models.BookingCheckedOut,
			"checked_out_at": &now,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
			Update("status", models.RoomCleaning).Error; err != nil {
			return err
		}
		history := models.RoomHistory{
			RoomID:     booking.RoomID,
			FromStatus: models.RoomOccupied,
			ToStatus:   models.RoomCleaning,
			BookingID:  &booking.ID,
			GuestID:    &booking.GuestID,
			Notes:      fmt.Sprintf("Checked out booking %s", booking.BookingNumber),
			ChangedBy:  by,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, fmt.Errorf("check-out failed: %w", err)
	}

	booking.Status = models.BookingCheckedOut
	booking.CheckedOutAt = &now
	logrus.WithField("booking_number", booking.BookingNumber).Info("guest checked out")
	return &booking, nil
}

// Cancel cancels a booking that has not started. Complimentary nights flow
// back to the guest's per-room-type balance.
func (s *BookingService) Cancel(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if models.IsCheckedIn(booking.Status) || booking.Status == models.BookingCheckedOut {
		return nil, ErrStatusTransition
	}

	refund := 0
	if booking.IsComplimentary && len(booking.ComplimentaryDates) > 0 {
		var dates []string
		if err := json.Unmarshal(booking.ComplimentaryDates, &dates); err == nil {
			refund = len(dates)
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("status", models.BookingCancelled).Error; err != nil {
			return err
		}
		if refund > 0 && booking.Room.RoomTypeID != nil {
			var credit models.GuestCredit
			err := tx.Where("guest_id = ? AND room_type_id = ?", booking.GuestID, *booking.Room.RoomTypeID).First(&credit).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				credit = models.GuestCredit{
					GuestID:         booking.GuestID,
					RoomTypeID:      *booking.Room.RoomTypeID,
					NightsAvailable: refund,
					Notes:           "Refunded from cancelled complimentary booking",
				}
				return tx.Create(&credit).Error
			}
			if err != nil {
				return err
			}
			return tx.Model(&credit).Update("nights_available", gorm.Expr("nights_available + ?", refund)).Error
		}
		// Release the reserved flag when no other active booking holds it.
		if booking.Room.Status == models.RoomReserved {
			var remaining int64
			if err := tx.Model(&models.Booking{}).
				Where("room_id = ? AND id <> ? AND status IN ?", booking.RoomID, booking.ID, models.ActiveBookingStatuses()).
				Count(&remaining).Error; err != nil {
				return err
			}
			if remaining == 0 {
				return tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
					Update("status", models.RoomAvailable).Error
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cancel failed: %w", err)
	}

	booking.Status = models.BookingCancelled
	if refund > 0 {
		logrus.WithFields(logrus.Fields{"booking_id": booking.ID, "nights_refunded": refund}).
			Info("complimentary nights refunded on cancellation")
	}
	return &booking, nil
}

func (s *BookingService) GetAll() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Guest").Preload("Room").Order("id DESC").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetByID(id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Guest").Preload("Room.RoomType").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return booking, ErrBookingNotFound
		}
		return booking, err
	}
	return booking, nil
}

// ForRoom returns the bookings the resolver cares about for one room.
func (s *BookingService) ForRoom(roomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Where("room_id = ? AND status IN ?", roomID, models.ActiveBookingStatuses()).
		Find(&bookings).Error
	return bookings, err
}

// ArrivalsOn lists confirmed/pending bookings due to arrive on the date.
func (s *BookingService) ArrivalsOn(day time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Guest").Preload("Room").
		Where("check_in_date = ? AND status IN ?", utils.DateOnly(day),
			[]string{models.BookingConfirmed, models.BookingPending}).
		Order("id").
		Find(&bookings).Error
	return bookings, err
}

// DeparturesOn lists in-house bookings due to leave on the date.
func (s *BookingService) DeparturesOn(day time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Guest").Preload("Room").
		Where("check_out_date = ? AND status IN ?", utils.DateOnly(day),
			[]string{models.BookingCheckedIn, models.BookingAutoCheckedIn}).
		Order("id").
		Find(&bookings).Error
	return bookings, err
}

// InWindow returns bookings overlapping [start, end) plus active stays, for
// the timeline grid.
func (s *BookingService) InWindow(start, end time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Guest").
		Where("status IN ? AND check_in_date < ? AND check_out_date >= ?",
			models.ActiveBookingStatuses(), utils.DateOnly(end), utils.DateOnly(start)).
		Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) hasDateConflict(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Booking{}).
		Where("room_id = ? AND status IN ?", roomID, models.ActiveBookingStatuses()).
		Where("check_in_date < ? AND check_out_date > ?", utils.DateOnly(checkOut), utils.DateOnly(checkIn)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("conflict check failed: %w", err)
	}
	return count > 0, nil
}
