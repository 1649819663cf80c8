package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-pms/models"
)

func TestEntryCoversDate(t *testing.T) {
	confirmed := models.Booking{
		Status:       models.BookingConfirmed,
		CheckInDate:  date("2024-02-03"),
		CheckOutDate: date("2024-02-05"),
	}
	inHouse := models.Booking{
		Status:       models.BookingCheckedIn,
		CheckInDate:  date("2024-02-03"),
		CheckOutDate: date("2024-02-05"),
	}

	assert.False(t, EntryCoversDate(confirmed, date("2024-02-02")))
	assert.True(t, EntryCoversDate(confirmed, date("2024-02-03")))
	assert.True(t, EntryCoversDate(confirmed, date("2024-02-04")))
	// A reservation's checkout day is free for the next arrival.
	assert.False(t, EntryCoversDate(confirmed, date("2024-02-05")))

	// An in-house stay still occupies the room on its checkout day.
	assert.True(t, EntryCoversDate(inHouse, date("2024-02-05")))
	assert.False(t, EntryCoversDate(inHouse, date("2024-02-06")))
}

func TestTimelineGrid(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 150)
	room101 := seedRoom(t, db, "101", rt.ID, 150)
	room102 := seedRoom(t, db, "102", rt.ID, 150)
	guest := seedGuest(t, db, "Lim Wei", "lim.wei@example.com", models.GuestRegular)

	require.NoError(t, db.Create(&models.Booking{
		BookingNumber: "BK-20240203-aaaa1111",
		GuestID:       guest.ID,
		RoomID:        room101.ID,
		CheckInDate:   date("2024-02-03"),
		CheckOutDate:  date("2024-02-05"),
		Nights:        2,
		Status:        models.BookingConfirmed,
	}).Error)
	require.NoError(t, db.Create(&models.Booking{
		BookingNumber: "BK-20240203-bbbb2222",
		GuestID:       guest.ID,
		RoomID:        room102.ID,
		CheckInDate:   date("2024-02-03"),
		CheckOutDate:  date("2024-02-05"),
		Nights:        2,
		Status:        models.BookingCheckedIn,
	}).Error)

	rooms := NewRoomService(db)
	bookings := NewBookingService(db)
	svc := NewTimelineService(db, rooms, bookings)

	grid, err := svc.Grid(date("2024-02-01"), 7)
	require.NoError(t, err)

	assert.Equal(t, 7, grid.Days)
	require.Len(t, grid.Dates, 7)
	assert.Equal(t, "2024-02-01", grid.Dates[0])
	assert.Equal(t, "2024-02-07", grid.Dates[6])
	require.Len(t, grid.Rows, 2)

	byRoom := map[string]TimelineRow{}
	for _, row := range grid.Rows {
		byRoom[row.Room.RoomNumber] = row
	}

	confirmedRow := byRoom["101"]
	require.Len(t, confirmedRow.Entries, 1)
	assert.Equal(t, EntryReal, confirmedRow.Entries[0].Kind)
	assert.Equal(t, []string{"2024-02-03", "2024-02-04"}, confirmedRow.Entries[0].Dates)

	// The in-house stay extends through the checkout day on the grid.
	inHouseRow := byRoom["102"]
	require.Len(t, inHouseRow.Entries, 1)
	assert.Equal(t, []string{"2024-02-03", "2024-02-04", "2024-02-05"}, inHouseRow.Entries[0].Dates)
}

func TestTimelineGridInfersManualOccupancy(t *testing.T) {
	db := newTestDB(t)
	rt := seedRoomType(t, db, "STD", 150)

	occupied := seedRoom(t, db, "201", rt.ID, 150)
	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", occupied.ID).
		Update("status", models.RoomOccupied).Error)

	reservedStart := date("2024-02-02")
	reservedEnd := date("2024-02-04")
	reserved := seedRoom(t, db, "202", rt.ID, 150)
	require.NoError(t, db.Model(&models.Room{}).Where("id = ?", reserved.ID).
		Updates(map[string]interface{}{
			"status":              models.RoomReserved,
			"reserved_start_date": reservedStart,
			"reserved_end_date":   reservedEnd,
		}).Error)

	svc := NewTimelineService(db, NewRoomService(db), NewBookingService(db))
	grid, err := svc.Grid(date("2024-02-01"), 7)
	require.NoError(t, err)

	byRoom := map[string]TimelineRow{}
	for _, row := range grid.Rows {
		byRoom[row.Room.RoomNumber] = row
	}

	// Stored occupied with no booking fills the whole window as a tagged
	// placeholder, never as a real entry.
	occupiedRow := byRoom["201"]
	require.Len(t, occupiedRow.Entries, 1)
	assert.Equal(t, EntryInferred, occupiedRow.Entries[0].Kind)
	assert.Equal(t, "Manual Occupancy", occupiedRow.Entries[0].Label)
	assert.Nil(t, occupiedRow.Entries[0].Booking)
	assert.Len(t, occupiedRow.Entries[0].Dates, 7)

	// A reserved window narrows the placeholder to the window dates.
	reservedRow := byRoom["202"]
	require.Len(t, reservedRow.Entries, 1)
	assert.Equal(t, EntryInferred, reservedRow.Entries[0].Kind)
	assert.Equal(t, []string{"2024-02-02", "2024-02-03"}, reservedRow.Entries[0].Dates)
}

func TestTimelineGridWindowFallback(t *testing.T) {
	db := newTestDB(t)
	svc := NewTimelineService(db, NewRoomService(db), NewBookingService(db))

	grid, err := svc.Grid(time.Now(), 23)
	require.NoError(t, err)
	assert.Equal(t, 14, grid.Days)

	grid, err = svc.Grid(time.Now(), 30)
	require.NoError(t, err)
	assert.Equal(t, 30, grid.Days)
}
