package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/utils"
)

// TimelineEntry kinds. Inferred entries are fabricated when a room's stored
// status claims occupation without a booking row; consumers must surface that
// provenance, never blend the two.
const (
	EntryReal     = "real"
	EntryInferred = "inferred"
)

// TimelineEntry is one span on the room x date grid: either a real booking or
// a "Manual Occupancy" placeholder.
type TimelineEntry struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`

	Booking *models.Booking `json:"booking,omitempty"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	// Dates actually filled in the visible window, YYYY-MM-DD.
	Dates []string `json:"dates"`
}

// TimelineRow is one room's lane.
type TimelineRow struct {
	Room    models.Room     `json:"room"`
	Entries []TimelineEntry `json:"entries"`
}

// TimelineGrid is the full view for a window.
type TimelineGrid struct {
	StartDate time.Time     `json:"start_date"`
	Days      int           `json:"days"`
	Dates     []string      `json:"dates"`
	Rows      []TimelineRow `json:"rows"`
}

type TimelineService struct {
	DB       *gorm.DB
	rooms    *RoomService
	bookings *BookingService
}

func NewTimelineService(db *gorm.DB, rooms *RoomService, bookings *BookingService) *TimelineService {
	return &TimelineService{DB: db, rooms: rooms, bookings: bookings}
}

var timelineWindows = map[int]bool{7: true, 14: true, 30: true, 60: true}

// Grid builds the room x date matrix starting at start for the given window.
// Windows other than 7/14/30/60 fall back to 14.
func (s *TimelineService) Grid(start time.Time, days int) (*TimelineGrid, error) {
	if !timelineWindows[days] {
		days = 14
	}
	start = utils.DateOnly(start)
	end := start.AddDate(0, 0, days)

	dates := make([]string, 0, days)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(utils.DateLayout))
	}

	rooms, err := s.rooms.GetAll()
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.InWindow(start, end)
	if err != nil {
		return nil, err
	}
	byRoom := map[uint][]models.Booking{}
	for i := range bookings {
		byRoom[bookings[i].RoomID] = append(byRoom[bookings[i].RoomID], bookings[i])
	}

	grid := &TimelineGrid{StartDate: start, Days: days, Dates: dates}
	for _, room := range rooms {
		row := TimelineRow{Room: room, Entries: []TimelineEntry{}}

		for i := range byRoom[room.ID] {
			b := byRoom[room.ID][i]
			entry := TimelineEntry{
				Kind:      EntryReal,
				Label:     b.BookingNumber,
				Booking:   &b,
				StartDate: utils.DateOnly(b.CheckInDate),
				EndDate:   utils.DateOnly(b.CheckOutDate),
				Dates:     coveredDates(b, start, end),
			}
			if len(entry.Dates) > 0 {
				row.Entries = append(row.Entries, entry)
			}
		}

		// A room stored as occupied or reserved with no booking in the window
		// gets an inferred placeholder so the grid doesn't show it empty.
		if len(row.Entries) == 0 && (room.Status == models.RoomOccupied || room.Status == models.RoomReserved) {
			entry := inferredEntry(room, start, end)
			if len(entry.Dates) > 0 {
				logrus.WithFields(logrus.Fields{
					"room_number": room.RoomNumber,
					"stored":      room.Status,
				}).Warn("timeline inferred occupancy for room with no booking record")
				row.Entries = append(row.Entries, entry)
			}
		}

		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

// coveredDates lists the window dates a booking fills. The span is
// [check-in, check-out) except for in-house stays, which visually extend
// through the check-out day.
func coveredDates(b models.Booking, start, end time.Time) []string {
	spanEnd := utils.DateOnly(b.CheckOutDate)
	if models.IsCheckedIn(b.Status) {
		spanEnd = spanEnd.AddDate(0, 0, 1)
	}
	spanStart := utils.DateOnly(b.CheckInDate)

	var dates []string
	for d := spanStart; d.Before(spanEnd); d = d.AddDate(0, 0, 1) {
		if d.Before(start) || !d.Before(end) {
			continue
		}
		dates = append(dates, d.Format(utils.DateLayout))
	}
	return dates
}

// EntryCoversDate answers a single-cell query with the same inclusion rule.
func EntryCoversDate(b models.Booking, date time.Time) bool {
	d := utils.DateOnly(date)
	if d.Before(utils.DateOnly(b.CheckInDate)) {
		return false
	}
	checkOut := utils.DateOnly(b.CheckOutDate)
	if models.IsCheckedIn(b.Status) {
		return !d.After(checkOut)
	}
	return d.Before(checkOut)
}

func inferredEntry(room models.Room, start, end time.Time) TimelineEntry {
	spanStart, spanEnd := start, end
	if room.ReservedStartDate != nil && room.ReservedEndDate != nil {
		spanStart = utils.DateOnly(*room.ReservedStartDate)
		spanEnd = utils.DateOnly(*room.ReservedEndDate)
	}

	var dates []string
	for d := spanStart; d.Before(spanEnd); d = d.AddDate(0, 0, 1) {
		if d.Before(start) || !d.Before(end) {
			continue
		}
		dates = append(dates, d.Format(utils.DateLayout))
	}
	return TimelineEntry{
		Kind:      EntryInferred,
		Label:     "Manual Occupancy",
		StartDate: spanStart,
		EndDate:   spanEnd,
		Dates:     dates,
	}
}
