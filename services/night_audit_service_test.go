package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pms/models"
	"hotel-pms/utils"
)

func TestNightAuditAutoChecksInDueArrivals(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 120)
	room := seedRoom(t, db, "601", rt.ID, 120)
	guest := seedGuest(t, db, "Tan Ah Kow", "tan.ahkow@example.com", models.GuestRegular)

	bookings := NewBookingService(db)
	booking, err := bookings.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-05-10"),
		CheckOutDate: date("2030-05-12"),
	})
	require.NoError(t, err)

	svc := NewNightAuditService(db)
	run, err := svc.Run(date("2030-05-10"), "end of day", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, run.TotalCheckins)
	assert.Equal(t, 0, run.TotalNoShows)
	assert.Equal(t, 1, run.TotalBookingsPosted)
	assert.Equal(t, 240.0, run.TotalRevenue)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, "end of day", run.Notes)

	var stored models.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, models.BookingAutoCheckedIn, stored.Status)
	require.NotNil(t, stored.CheckedInAt)
	require.NotNil(t, stored.PostedDate)

	var storedRoom models.Room
	require.NoError(t, db.First(&storedRoom, room.ID).Error)
	assert.Equal(t, models.RoomOccupied, storedRoom.Status)

	var history models.RoomHistory
	require.NoError(t, db.Where("room_id = ? AND booking_id = ?", room.ID, booking.ID).First(&history).Error)
	assert.Equal(t, models.RoomReserved, history.FromStatus)
	assert.Equal(t, models.RoomOccupied, history.ToStatus)
}

func TestNightAuditMarksStaleArrivalsNoShow(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 120)
	room := seedRoom(t, db, "602", rt.ID, 120)
	guest := seedGuest(t, db, "Lee Mei", "lee.mei@example.com", models.GuestRegular)

	bookings := NewBookingService(db)
	booking, err := bookings.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-05-08"),
		CheckOutDate: date("2030-05-09"),
	})
	require.NoError(t, err)

	svc := NewNightAuditService(db)
	run, err := svc.Run(date("2030-05-10"), "", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, run.TotalNoShows)
	assert.Equal(t, 0, run.TotalCheckins)
	// A no-show never posts revenue.
	assert.Equal(t, 0, run.TotalBookingsPosted)
	assert.Equal(t, 0.0, run.TotalRevenue)

	var stored models.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, models.BookingNoShow, stored.Status)
	assert.Nil(t, stored.PostedDate)

	var storedRoom models.Room
	require.NoError(t, db.First(&storedRoom, room.ID).Error)
	assert.Equal(t, models.RoomAvailable, storedRoom.Status)
}

func TestNightAuditRunOncePerDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewNightAuditService(db)

	first, err := svc.Run(date("2030-05-10"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "completed", first.Status)

	_, err = svc.Run(date("2030-05-10"), "", nil)
	assert.ErrorIs(t, err, ErrAuditAlreadyRun)

	// The next business date still closes, and already-posted bookings do
	// not post twice.
	second, err := svc.Run(date("2030-05-11"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.TotalBookingsPosted)

	runs, err := svc.List(1, 30)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "2030-05-11", runs[0].AuditDate.Format(utils.DateLayout))

	got, err := svc.GetByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "2030-05-10", got.AuditDate.Format(utils.DateLayout))

	_, err = svc.GetByID(9999)
	assert.ErrorIs(t, err, ErrAuditNotFound)
}

func TestNightAuditPreviewReportsWithoutMutating(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "DLX", 200)
	roomA := seedRoom(t, db, "603", rt.ID, 200)
	roomB := seedRoom(t, db, "604", rt.ID, 200)
	guest := seedGuest(t, db, "Nur Aisyah", "nur.aisyah@example.com", models.GuestRegular)

	bookings := NewBookingService(db)
	due, err := bookings.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       roomA.ID,
		CheckInDate:  date("2030-05-10"),
		CheckOutDate: date("2030-05-12"),
	})
	require.NoError(t, err)
	_, err = bookings.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       roomB.ID,
		CheckInDate:  date("2030-05-08"),
		CheckOutDate: date("2030-05-09"),
	})
	require.NoError(t, err)

	svc := NewNightAuditService(db)
	preview, err := svc.Preview(date("2030-05-10"))
	require.NoError(t, err)

	assert.True(t, preview.CanRun)
	assert.False(t, preview.AlreadyRun)
	assert.Equal(t, 2, preview.TotalUnposted)
	assert.Equal(t, 600.0, preview.EstimatedRevenue)
	require.Len(t, preview.DueArrivals, 1)
	assert.Equal(t, due.ID, preview.DueArrivals[0].ID)
	assert.Len(t, preview.OverdueArrivals, 1)
	assert.Equal(t, 2, preview.RoomSnapshot.Total)
	assert.Equal(t, 2, preview.RoomSnapshot.Reserved)

	// Preview must not touch anything.
	var stored models.Booking
	require.NoError(t, db.First(&stored, due.ID).Error)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
	assert.Nil(t, stored.PostedDate)

	_, err = svc.Run(date("2030-05-10"), "", nil)
	require.NoError(t, err)

	preview, err = svc.Preview(date("2030-05-10"))
	require.NoError(t, err)
	assert.False(t, preview.CanRun)
	assert.True(t, preview.AlreadyRun)
	assert.Equal(t, 0, preview.TotalUnposted)
}

func TestNightAuditSkipsCancelledBookings(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 120)
	room := seedRoom(t, db, "605", rt.ID, 120)
	guest := seedGuest(t, db, "Wong Kit", "wong.kit@example.com", models.GuestRegular)

	bookings := NewBookingService(db)
	booking, err := bookings.Create(BookingInput{
		GuestID:      guest.ID,
		RoomID:       room.ID,
		CheckInDate:  date("2030-05-10"),
		CheckOutDate: date("2030-05-11"),
	})
	require.NoError(t, err)
	_, err = bookings.Cancel(booking.ID)
	require.NoError(t, err)

	svc := NewNightAuditService(db)
	run, err := svc.Run(date("2030-05-10"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, run.TotalCheckins)
	assert.Equal(t, 0, run.TotalBookingsPosted)

	var stored models.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, models.BookingCancelled, stored.Status)
}
