package models

import (
	"time"

	"gorm.io/gorm"
)

// NightAuditRun records one end-of-day close. A date can only be closed once;
// the unique index on audit_date backs that up at the database level.
type NightAuditRun struct {
	gorm.Model

	AuditDate time.Time `gorm:"column:audit_date;uniqueIndex" json:"audit_date"`
	RunAt     time.Time `gorm:"column:run_at" json:"run_at"`
	RunBy     *uint     `gorm:"column:run_by" json:"run_by,omitempty"`
	Status    string    `gorm:"column:status;size:32;default:completed" json:"status"`

	TotalBookingsPosted int     `gorm:"column:total_bookings_posted" json:"total_bookings_posted"`
	TotalCheckins       int     `gorm:"column:total_checkins" json:"total_checkins"`
	TotalNoShows        int     `gorm:"column:total_no_shows" json:"total_no_shows"`
	TotalCheckouts      int     `gorm:"column:total_checkouts" json:"total_checkouts"`
	TotalRevenue        float64 `gorm:"column:total_revenue" json:"total_revenue"`
	OccupancyRate       float64 `gorm:"column:occupancy_rate" json:"occupancy_rate"`

	RoomsAvailable   int `gorm:"column:rooms_available" json:"rooms_available"`
	RoomsOccupied    int `gorm:"column:rooms_occupied" json:"rooms_occupied"`
	RoomsReserved    int `gorm:"column:rooms_reserved" json:"rooms_reserved"`
	RoomsMaintenance int `gorm:"column:rooms_maintenance" json:"rooms_maintenance"`
	RoomsDirty       int `gorm:"column:rooms_dirty" json:"rooms_dirty"`

	Notes string `gorm:"type:varchar(255)" json:"notes,omitempty"`
}
