package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pms/models"
	"hotel-pms/utils"
)

func TestBookingCreate(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "DLX", 200)
	room := seedRoom(t, db, "301", rt.ID, 200)
	guest := seedGuest(t, db, "Ahmad Faiz", "ahmad.faiz@example.com", models.GuestRegular)

	svc := NewBookingService(db)

	booking, err := svc.Create(BookingInput{
		GuestID:         guest.ID,
		RoomID:          room.ID,
		CheckInDate:     date("2030-03-01"),
		CheckOutDate:    date("2030-03-04"),
		PaymentMethod:   "CASH",
		DepositAmount:   100,
		RoomCardDeposit: 50,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(booking.BookingNumber, "BK-"))
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, 3, booking.Nights)
	assert.Equal(t, 600.0, booking.TotalAmount)
	assert.Equal(t, 50.0, booking.RoomCardDeposit)
	assert.Equal(t, models.SourceWalkIn, booking.Source)

	var stored models.Room
	require.NoError(t, db.First(&stored, room.ID).Error)
	assert.Equal(t, models.RoomReserved, stored.Status)
}

func TestBookingCreateSameDayArrivalOccupiesRoom(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "DLX", 200)
	room := seedRoom(t, db, "305", rt.ID, 200)
	guest := seedGuest(t, db, "Lim Wei", "lim.wei@example.com", models.GuestRegular)

	svc := NewBookingService(db)
	_, err := svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  utils.Today(),
		CheckOutDate: utils.Today().AddDate(0, 0, 2),
	})
	require.NoError(t, err)

	var stored models.Room
	require.NoError(t, db.First(&stored, room.ID).Error)
	assert.Equal(t, models.RoomOccupied, stored.Status)
}

func TestBookingCreateMemberDepositWaived(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "DLX", 200)
	room := seedRoom(t, db, "302", rt.ID, 200)
	member := seedGuest(t, db, "Siti Nur", "siti.nur@example.com", models.GuestMember)

	svc := NewBookingService(db)
	booking, err := svc.Create(BookingInput{
		GuestID:         member.ID,
		RoomID:          room.ID,
		CheckInDate:     date("2030-03-01"),
		CheckOutDate:    date("2030-03-02"),
		RoomCardDeposit: 50,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, booking.RoomCardDeposit)
}

func TestBookingCreateRejections(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 120)
	room := seedRoom(t, db, "303", rt.ID, 120)
	guest := seedGuest(t, db, "Raj Kumar", "raj.kumar@example.com", models.GuestRegular)

	svc := NewBookingService(db)

	_, err := svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-03-01"),
		CheckOutDate: date("2030-03-01"),
	})
	assert.ErrorIs(t, err, ErrWizardDates)

	_, err = svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       9999,
		CheckInDate:  date("2030-03-01"),
		CheckOutDate: date("2030-03-02"),
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = svc.Create(BookingInput{
		GuestID:      9999,
		RoomID:       room.ID,
		CheckInDate:  date("2030-03-01"),
		CheckOutDate: date("2030-03-02"),
	})
	assert.ErrorIs(t, err, ErrGuestNotFound)

	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("status", models.RoomMaintenance).Error)
	_, err = svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-03-01"),
		CheckOutDate: date("2030-03-02"),
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestBookingCreateDateConflict(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 120)
	room := seedRoom(t, db, "304", rt.ID, 120)
	guest := seedGuest(t, db, "Chen Hui", "chen.hui@example.com", models.GuestRegular)

	svc := NewBookingService(db)
	_, err := svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-03-05"),
		CheckOutDate: date("2030-03-10"),
	})
	require.NoError(t, err)

	_, err = svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-03-08"),
		CheckOutDate: date("2030-03-12"),
	})
	assert.ErrorIs(t, err, ErrDatesConflict)

	// Back to back against the checkout day is allowed.
	_, err = svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-03-10"),
		CheckOutDate: date("2030-03-12"),
	})
	assert.NoError(t, err)
}

func TestBookingCreateWithCredits(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "SUP", 180)
	room := seedRoom(t, db, "305", rt.ID, 180)
	guest := seedGuest(t, db, "Nor Aini", "nor.aini@example.com", models.GuestMember)

	guests := NewGuestService(db)
	require.NoError(t, guests.AddCredits(guest.ID, rt.ID, 3, "anniversary gift"))

	svc := NewBookingService(db)
	booking, err := svc.CreateWithCredits(CreditsBookingInput{
		GuestID:            guest.ID,
		RoomID:             room.ID,
		CheckInDate:        date("2030-04-10"),
		CheckOutDate:       date("2030-04-13"),
		ComplimentaryDates: []string{"2030-04-10", "2030-04-11", "2030-04-12"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(booking.BookingNumber, "COMP-"))
	assert.True(t, booking.IsComplimentary)
	assert.Equal(t, 0.0, booking.TotalAmount)
	assert.Equal(t, "paid", booking.PaymentStatus)
	assert.Equal(t, models.SourceComplimentary, booking.Source)

	balance, err := guests.CreditBalance(guest.ID, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
}

func TestBookingCreateWithCreditsRejections(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "SUP", 180)
	room := seedRoom(t, db, "306", rt.ID, 180)
	guest := seedGuest(t, db, "Lee Min", "lee.min@example.com", models.GuestMember)

	guests := NewGuestService(db)
	require.NoError(t, guests.AddCredits(guest.ID, rt.ID, 1, ""))

	svc := NewBookingService(db)

	_, err := svc.CreateWithCredits(CreditsBookingInput{
		GuestID:            guest.ID,
		RoomID:             room.ID,
		CheckInDate:        date("2030-04-10"),
		CheckOutDate:       date("2030-04-12"),
		ComplimentaryDates: []string{"2030-04-10", "2030-04-11"},
	})
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	// The checkout day is not a stay night and cannot be a credit night.
	_, err = svc.CreateWithCredits(CreditsBookingInput{
		GuestID:            guest.ID,
		RoomID:             room.ID,
		CheckInDate:        date("2030-04-10"),
		CheckOutDate:       date("2030-04-12"),
		ComplimentaryDates: []string{"2030-04-12"},
	})
	assert.ErrorIs(t, err, ErrDateOutOfRange)

	_, err = svc.CreateWithCredits(CreditsBookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-04-10"),
		CheckOutDate: date("2030-04-12"),
	})
	assert.ErrorIs(t, err, ErrNoComplimentaryDate)
}

func TestBookingCheckInAndOut(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 120)
	room := seedRoom(t, db, "307", rt.ID, 120)
	guest := seedGuest(t, db, "Wong Kar", "wong.kar@example.com", models.GuestRegular)

	svc := NewBookingService(db)
	booking, err := svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-05-01"),
		CheckOutDate: date("2030-05-03"),
	})
	require.NoError(t, err)

	checkedIn, err := svc.CheckIn(booking.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedIn, checkedIn.Status)
	require.NotNil(t, checkedIn.CheckedInAt)

	var stored models.Room
	require.NoError(t, db.First(&stored, room.ID).Error)
	assert.Equal(t, models.RoomOccupied, stored.Status)

	_, err = svc.CheckIn(booking.ID, nil)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	checkedOut, err := svc.CheckOut(booking.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedOut, checkedOut.Status)

	require.NoError(t, db.First(&stored, room.ID).Error)
	assert.Equal(t, models.RoomCleaning, stored.Status)

	_, err = svc.CheckOut(booking.ID, nil)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)

	var history []models.RoomHistory
	require.NoError(t, db.Where("room_id = ?", room.ID).Order("id").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, models.RoomOccupied, history[0].ToStatus)
	assert.Equal(t, models.RoomCleaning, history[1].ToStatus)
}

func TestBookingCheckInBlockedByRoomCondition(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 120)
	room := seedRoom(t, db, "308", rt.ID, 120)
	guest := seedGuest(t, db, "Tan Ah Kow", "tan.ahkow@example.com", models.GuestRegular)

	svc := NewBookingService(db)
	booking, err := svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-05-01"),
		CheckOutDate: date("2030-05-02"),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("status", models.RoomDirty).Error)
	_, err = svc.CheckIn(booking.ID, nil)
	assert.ErrorIs(t, err, ErrRoomNotReady)

	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("status", models.RoomMaintenance).Error)
	_, err = svc.CheckIn(booking.ID, nil)
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestBookingCancelReleasesRoom(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 120)
	room := seedRoom(t, db, "309", rt.ID, 120)
	guest := seedGuest(t, db, "Hafiz Omar", "hafiz.omar@example.com", models.GuestRegular)

	svc := NewBookingService(db)
	booking, err := svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-06-01"),
		CheckOutDate: date("2030-06-03"),
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	var stored models.Room
	require.NoError(t, db.First(&stored, room.ID).Error)
	assert.Equal(t, models.RoomAvailable, stored.Status)
}

func TestBookingCancelRefundsCredits(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "SUP", 180)
	room := seedRoom(t, db, "310", rt.ID, 180)
	guest := seedGuest(t, db, "Aisha Binti", "aisha.binti@example.com", models.GuestMember)

	guests := NewGuestService(db)
	require.NoError(t, guests.AddCredits(guest.ID, rt.ID, 2, ""))

	svc := NewBookingService(db)
	booking, err := svc.CreateWithCredits(CreditsBookingInput{
		GuestID:            guest.ID,
		RoomID:             room.ID,
		CheckInDate:        date("2030-06-10"),
		CheckOutDate:       date("2030-06-12"),
		ComplimentaryDates: []string{"2030-06-10", "2030-06-11"},
	})
	require.NoError(t, err)

	balance, err := guests.CreditBalance(guest.ID, rt.ID)
	require.NoError(t, err)
	require.Equal(t, 0, balance)

	_, err = svc.Cancel(booking.ID)
	require.NoError(t, err)

	balance, err = guests.CreditBalance(guest.ID, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, balance)
}

func TestBookingArrivalsAndDepartures(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 120)
	roomA := seedRoom(t, db, "401", rt.ID, 120)
	roomB := seedRoom(t, db, "402", rt.ID, 120)
	guest := seedGuest(t, db, "Daily Ops", "daily.ops@example.com", models.GuestRegular)

	svc := NewBookingService(db)

	arriving, err := svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       roomA.ID,
		CheckInDate:  date("2030-07-15"),
		CheckOutDate: date("2030-07-18"),
	})
	require.NoError(t, err)

	leaving, err := svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       roomB.ID,
		CheckInDate:  date("2030-07-12"),
		CheckOutDate: date("2030-07-15"),
	})
	require.NoError(t, err)
	_, err = svc.CheckIn(leaving.ID, nil)
	require.NoError(t, err)

	arrivals, err := svc.ArrivalsOn(date("2030-07-15"))
	require.NoError(t, err)
	require.Len(t, arrivals, 1)
	assert.Equal(t, arriving.ID, arrivals[0].ID)

	departures, err := svc.DeparturesOn(date("2030-07-15"))
	require.NoError(t, err)
	require.Len(t, departures, 1)
	assert.Equal(t, leaving.ID, departures[0].ID)

	// A confirmed stay that has not checked in is not a departure.
	departures, err = svc.DeparturesOn(date("2030-07-18"))
	require.NoError(t, err)
	assert.Empty(t, departures)
}

func TestBookingCancelRefusedOnceStarted(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 120)
	room := seedRoom(t, db, "311", rt.ID, 120)
	guest := seedGuest(t, db, "Kumar Selvam", "kumar.selvam@example.com", models.GuestRegular)

	svc := NewBookingService(db)
	booking, err := svc.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-06-01"),
		CheckOutDate: date("2030-06-02"),
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(booking.ID, nil)
	require.NoError(t, err)

	_, err = svc.Cancel(booking.ID)
	assert.ErrorIs(t, err, ErrStatusTransition)
}
