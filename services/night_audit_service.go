package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/utils"
)

// NightAuditService closes out a business date. Running the audit posts the
// day's bookings for reporting, auto-checks-in confirmed arrivals nobody
// processed at the desk, and marks older unprocessed arrivals as no-shows.
// It is the only path that produces the auto_checked_in and no_show statuses.
type NightAuditService struct {
	DB *gorm.DB
}

func NewNightAuditService(db *gorm.DB) *NightAuditService {
	return &NightAuditService{DB: db}
}

// AuditRoomSnapshot is the room-status census stored with each run.
type AuditRoomSnapshot struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Reserved    int `json:"reserved"`
	Maintenance int `json:"maintenance"`
	Dirty       int `json:"dirty"`
}

// AuditPreview shows what Run would do for a date without committing anything.
type AuditPreview struct {
	AuditDate        string            `json:"audit_date"`
	CanRun           bool              `json:"can_run"`
	AlreadyRun       bool              `json:"already_run"`
	UnpostedBookings []models.Booking  `json:"unposted_bookings"`
	TotalUnposted    int               `json:"total_unposted"`
	EstimatedRevenue float64           `json:"estimated_revenue"`
	DueArrivals      []models.Booking  `json:"due_arrivals"`
	OverdueArrivals  []models.Booking  `json:"overdue_arrivals"`
	RoomSnapshot     AuditRoomSnapshot `json:"room_snapshot"`
}

func (s *NightAuditService) alreadyRun(db *gorm.DB, day time.Time) (bool, error) {
	var count int64
	err := db.Model(&models.NightAuditRun{}).
		Where("audit_date = ? AND status = ?", day, "completed").
		Count(&count).Error
	return count > 0, err
}

// unpostedScope selects bookings whose revenue belongs to the audit date or
// earlier and has not been posted by a previous run. Cancelled stays and
// no-shows never post.
func (s *NightAuditService) unpostedScope(db *gorm.DB, day time.Time) *gorm.DB {
	return db.Model(&models.Booking{}).
		Where("posted_date IS NULL").
		Where("check_in_date <= ?", day).
		Where("status NOT IN ?", []string{models.BookingCancelled, models.BookingNoShow, models.BookingReleased})
}

// Preview reports what running the audit for the date would change.
func (s *NightAuditService) Preview(date time.Time) (*AuditPreview, error) {
	day := utils.DateOnly(date)

	done, err := s.alreadyRun(s.DB, day)
	if err != nil {
		return nil, err
	}

	var unposted []models.Booking
	if err := s.unpostedScope(s.DB, day).
		Preload("Guest").Preload("Room").
		Order("check_in_date, id").
		Find(&unposted).Error; err != nil {
		return nil, err
	}
	revenue := 0.0
	for _, b := range unposted {
		revenue += b.TotalAmount
	}

	var due []models.Booking
	if err := s.DB.Preload("Guest").Preload("Room").
		Where("check_in_date = ? AND status IN ?", day, []string{models.BookingPending, models.BookingConfirmed}).
		Find(&due).Error; err != nil {
		return nil, err
	}
	var overdue []models.Booking
	if err := s.DB.Preload("Guest").Preload("Room").
		Where("check_in_date < ? AND status IN ?", day, []string{models.BookingPending, models.BookingConfirmed}).
		Find(&overdue).Error; err != nil {
		return nil, err
	}

	snapshot, err := s.roomSnapshot(s.DB)
	if err != nil {
		return nil, err
	}

	return &AuditPreview{
		AuditDate:        day.Format(utils.DateLayout),
		CanRun:           !done,
		AlreadyRun:       done,
		UnpostedBookings: unposted,
		TotalUnposted:    len(unposted),
		EstimatedRevenue: revenue,
		DueArrivals:      due,
		OverdueArrivals:  overdue,
		RoomSnapshot:     snapshot,
	}, nil
}

// Run closes the date: due arrivals become auto_checked_in with their rooms
// occupied, stale arrivals become no_show with their reservations released,
// and every unposted booking in scope gets its posted_date stamped. The whole
// close happens in one transaction and a NightAuditRun row records the totals.
func (s *NightAuditService) Run(date time.Time, notes string, by *uint) (*models.NightAuditRun, error) {
	day := utils.DateOnly(date)

	done, err := s.alreadyRun(s.DB, day)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrAuditAlreadyRun
	}

	now := time.Now()
	run := &models.NightAuditRun{
		AuditDate: day,
		RunAt:     now,
		RunBy:     by,
		Status:    "completed",
		Notes:     notes,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var due []models.Booking
		if err := tx.Preload("Room").
			Where("check_in_date = ? AND status IN ?", day, []string{models.BookingPending, models.BookingConfirmed}).
			Find(&due).Error; err != nil {
			return err
		}
		for i := range due {
			if err := s.autoCheckIn(tx, &due[i], now, by); err != nil {
				return err
			}
		}
		run.TotalCheckins = len(due)

		var overdue []models.Booking
		if err := tx.Preload("Room").
			Where("check_in_date < ? AND status IN ?", day, []string{models.BookingPending, models.BookingConfirmed}).
			Find(&overdue).Error; err != nil {
			return err
		}
		for i := range overdue {
			if err := s.markNoShow(tx, &overdue[i], by); err != nil {
				return err
			}
		}
		run.TotalNoShows = len(overdue)

		// Post after status changes so fresh no-shows drop out of scope.
		var unposted []models.Booking
		if err := s.unpostedScope(tx, day).Find(&unposted).Error; err != nil {
			return err
		}
		revenue := 0.0
		for _, b := range unposted {
			revenue += b.TotalAmount
		}
		if len(unposted) > 0 {
			ids := make([]uint, 0, len(unposted))
			for _, b := range unposted {
				ids = append(ids, b.ID)
			}
			if err := tx.Model(&models.Booking{}).Where("id IN ?", ids).
				Update("posted_date", day).Error; err != nil {
				return err
			}
		}
		run.TotalBookingsPosted = len(unposted)
		run.TotalRevenue = revenue

		var checkouts int64
		if err := tx.Model(&models.Booking{}).
			Where("check_out_date = ? AND status = ?", day, models.BookingCheckedOut).
			Count(&checkouts).Error; err != nil {
			return err
		}
		run.TotalCheckouts = int(checkouts)

		snapshot, err := s.roomSnapshot(tx)
		if err != nil {
			return err
		}
		run.RoomsAvailable = snapshot.Available
		run.RoomsOccupied = snapshot.Occupied
		run.RoomsReserved = snapshot.Reserved
		run.RoomsMaintenance = snapshot.Maintenance
		run.RoomsDirty = snapshot.Dirty
		if snapshot.Total > 0 {
			run.OccupancyRate = float64(snapshot.Occupied) / float64(snapshot.Total) * 100
		}

		return tx.Create(run).Error
	})
	if err != nil {
		if isDuplicateKeyErr(err) {
			return nil, ErrAuditAlreadyRun
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"audit_date":      day.Format(utils.DateLayout),
		"bookings_posted": run.TotalBookingsPosted,
		"auto_checkins":   run.TotalCheckins,
		"no_shows":        run.TotalNoShows,
		"revenue":         run.TotalRevenue,
	}).Info("night audit completed")
	return run, nil
}

// autoCheckIn is the audit's counterpart of BookingService.CheckIn. Rooms that
// are not ready stay on their stored status; the booking still flips so the
// stay is accounted for.
func (s *NightAuditService) autoCheckIn(tx *gorm.DB, booking *models.Booking, now time.Time, by *uint) error {
	if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).Updates(map[string]interface{}{
		"status":        models.BookingAutoCheckedIn,
		"checked_in_at": &now,
	}).Error; err != nil {
		return err
	}
	fromStatus := booking.Room.Status
	switch fromStatus {
	case models.RoomAvailable, models.RoomReserved:
	default:
		return nil
	}
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
		Notes:      fmt.Sprintf("Night audit auto check-in for booking %s", booking.BookingNumber),
		ChangedBy:  by,
	}
	return tx.Create(&history).Error
}

func (s *NightAuditService) markNoShow(tx *gorm.DB, booking *models.Booking, by *uint) error {
	if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("status", models.BookingNoShow).Error; err != nil {
		return err
	}
	if booking.Room.Status != models.RoomReserved {
		return nil
	}
	// Release the reserved flag when no other active booking holds it.
	var remaining int64
	if err := tx.Model(&models.Booking{}).
		Where("room_id = ? AND id <> ? AND status IN ?", booking.RoomID, booking.ID, models.ActiveBookingStatuses()).
		Count(&remaining).Error; err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}
	if err := tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
		Update("status", models.RoomAvailable).Error; err != nil {
		return err
	}
	history := models.RoomHistory{
		RoomID:     booking.RoomID,
		FromStatus: models.RoomReserved,
		ToStatus:   models.RoomAvailable,
		BookingID:  &booking.ID,
		GuestID:    &booking.GuestID,
		Notes:      fmt.Sprintf("Night audit no-show release for booking %s", booking.BookingNumber),
		ChangedBy:  by,
	}
	return tx.Create(&history).Error
}

func (s *NightAuditService) roomSnapshot(db *gorm.DB) (AuditRoomSnapshot, error) {
	var rows []struct {
		Status string
		N      int
	}
	if err := db.Model(&models.Room{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return AuditRoomSnapshot{}, err
	}
	var snap AuditRoomSnapshot
	for _, row := range rows {
		snap.Total += row.N
		switch row.Status {
		case models.RoomAvailable:
			snap.Available += row.N
		case models.RoomOccupied:
			snap.Occupied += row.N
		case models.RoomReserved:
			snap.Reserved += row.N
		case models.RoomMaintenance, models.RoomOutOfOrder:
			snap.Maintenance += row.N
		case models.RoomDirty, models.RoomCleaning:
			snap.Dirty += row.N
		}
	}
	return snap, nil
}

// List returns past runs, newest first.
func (s *NightAuditService) List(page, pageSize int) ([]models.NightAuditRun, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 30
	}
	if pageSize > 100 {
		pageSize = 100
	}
	var runs []models.NightAuditRun
	err := s.DB.Order("audit_date DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&runs).Error
	return runs, err
}

func (s *NightAuditService) GetByID(id uint) (models.NightAuditRun, error) {
	var run models.NightAuditRun
	if err := s.DB.First(&run, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return run, ErrAuditNotFound
		}
		return run, err
	}
	return run, nil
}
