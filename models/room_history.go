package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomHistory is an append-only record of room status transitions. It is
// written by status changes, check-in and check-out, and only ever read back
// for audit display.
type RoomHistory struct {
	gorm.Model

	RoomID     uint   `gorm:"index;column:room_id" json:"room_id"`
	FromStatus string `gorm:"column:from_status;size:32" json:"from_status"`
	ToStatus   string `gorm:"column:to_status;size:32" json:"to_status"`

	BookingID *uint `gorm:"column:booking_id" json:"booking_id,omitempty"`
	GuestID   *uint `gorm:"column:guest_id" json:"guest_id,omitempty"`

	StartDate *time.Time `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`

	Notes     string `gorm:"type:varchar(255)" json:"notes,omitempty"`
	ChangedBy *uint  `gorm:"column:changed_by" json:"changed_by,omitempty"`
}
