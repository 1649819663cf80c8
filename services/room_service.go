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

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// RoomStatusInput mirrors the staff status-change form. The window dates
// matter for reserved/maintenance/cleaning and feed the timeline's inference.
type RoomStatusInput struct {
	Status    string `json:"status" binding:"required"`
	Notes     string `json:"notes"`
	BookingID *uint  `json:"booking_id"`
	GuestID   *uint  `json:"guest_id"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	ChangedBy *uint `json:"-"`
}

func (s *RoomService) Create(room *models.Room) error {
	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return ErrDuplicateRoomNumber
		}
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Preload("RoomType").Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, ErrRoomNotFound
		}
		return room, err
	}
	return room, nil
}

func (s *RoomService) Update(room *models.Room) error {
	if err := s.DB.Model(&models.Room{}).Where("id = ?", room.ID).Updates(room).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return ErrDuplicateRoomNumber
		}
		return err
	}
	return nil
}

func (s *RoomService) Delete(id uint) error {
	return s.DB.Delete(&models.Room{}, id).Error
}

// UpdateStatus applies a staff status change with the original's guard rails:
// reserved requires a booking reference, available is refused while an active
// booking exists, "clean" normalizes to available. Every change appends a
// RoomHistory row.
func (s *RoomService) UpdateStatus(roomID uint, input RoomStatusInput) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, ErrRoomNotFound
		}
		return room, err
	}

	target := input.Status
	if target == "clean" {
		target = models.RoomAvailable
	}
	valid := false
	for _, st := range models.ValidRoomStatuses() {
		if target == st {
			valid = true
			break
		}
	}
	if !valid {
		return room, ErrInvalidStatus
	}

	if target == models.RoomReserved && input.BookingID == nil {
		return room, ErrBookingRequired
	}
	if target == models.RoomAvailable {
		var active int64
		if err := s.DB.Model(&models.Booking{}).
			Where("room_id = ? AND status IN ?", roomID, []string{models.BookingCheckedIn, models.BookingAutoCheckedIn}).
			Count(&active).Error; err != nil {
			return room, err
		}
		if active > 0 {
			return room, ErrActiveBooking
		}
	}

	var start, end *time.Time
	if input.StartDate != "" {
		d, err := utils.ParseDate(input.StartDate)
		if err != nil {
			return room, err
		}
		start = &d
	}
	if input.EndDate != "" {
		d, err := utils.ParseDate(input.EndDate)
		if err != nil {
			return room, err
		}
		end = &d
	}

	updates := map[string]interface{}{"status": target}
	switch target {
	case models.RoomReserved:
		updates["reserved_start_date"] = start
		updates["reserved_end_date"] = end
	case models.RoomMaintenance, models.RoomOutOfOrder:
		updates["maintenance_start_date"] = start
		updates["maintenance_end_date"] = end
	case models.RoomCleaning, models.RoomDirty:
		updates["cleaning_start_date"] = start
		updates["cleaning_end_date"] = end
	case models.RoomAvailable:
		// Clear every window when the room goes back into service.
		updates["reserved_start_date"] = nil
		updates["reserved_end_date"] = nil
		updates["maintenance_start_date"] = nil
		updates["maintenance_end_date"] = nil
		updates["cleaning_start_date"] = nil
		updates["cleaning_end_date"] = nil
	}

	fromStatus := room.Status
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Room{}).Where("id = ?", roomID).Updates(updates).Error; err != nil {
			return err
		}
		history := models.RoomHistory{
			RoomID:     roomID,
			FromStatus: fromStatus,
			ToStatus:   target,
			BookingID:  input.BookingID,
			GuestID:    input.GuestID,
			StartDate:  start,
			EndDate:    end,
			Notes:      input.Notes,
			ChangedBy:  input.ChangedBy,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return room, fmt.Errorf("status update failed: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"room_number": room.RoomNumber,
		"from":        fromStatus,
		"to":          target,
	}).Info("room status changed")

	room.Status = target
	return room, nil
}

func (s *RoomService) History(roomID uint, limit int) ([]models.RoomHistory, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var history []models.RoomHistory
	err := s.DB.Where("room_id = ?", roomID).Order("id DESC").Limit(limit).Find(&history).Error
	return history, err
}

// RoomView is a room decorated with its derived display status. The stored
// status is returned alongside and is never written back.
type RoomView struct {
	models.Room
	EffectiveStatus     string          `json:"effective_status"`
	UpcomingReservation *models.Booking `json:"upcoming_reservation,omitempty"`
}

// RoomsWithStatus runs the resolver over every room. Inconsistencies are
// logged as warnings, matching the source system's behavior of flagging
// rather than fixing them.
func (s *RoomService) RoomsWithStatus() ([]RoomView, error) {
	rooms, err := s.GetAll()
	if err != nil {
		return nil, err
	}

	var bookings []models.Booking
	if err := s.DB.Where("status IN ?", models.ActiveBookingStatuses()).Find(&bookings).Error; err != nil {
		return nil, err
	}
	byRoom := map[uint][]models.Booking{}
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	today := utils.Today()
	views := make([]RoomView, 0, len(rooms))
	for _, room := range rooms {
		roomBookings := byRoom[room.ID]
		view := RoomView{
			Room:                room,
			EffectiveStatus:     ResolveRoomStatus(room, roomBookings, today),
			UpcomingReservation: UpcomingReservation(roomBookings, today),
		}
		for _, inc := range FindStatusInconsistencies(room, roomBookings) {
			logrus.WithFields(logrus.Fields{
				"room_number": inc.RoomNumber,
				"stored":      inc.Stored,
			}).Warn(inc.Reason)
		}
		views = append(views, view)
	}
	return views, nil
}

// OccupancySummary counts rooms by effective status for the dashboard.
func (s *RoomService) OccupancySummary() (map[string]int, error) {
	views, err := s.RoomsWithStatus()
	if err != nil {
		return nil, err
	}
	summary := map[string]int{
		models.RoomAvailable:   0,
		models.RoomOccupied:    0,
		models.RoomReserved:    0,
		models.RoomCleaning:    0,
		models.RoomDirty:       0,
		models.RoomMaintenance: 0,
		models.RoomOutOfOrder:  0,
	}
	for _, v := range views {
		summary[v.EffectiveStatus]++
	}
	summary["total"] = len(views)
	return summary, nil
}
