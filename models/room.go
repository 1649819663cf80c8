package models

import (
	"time"

	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	RoomTypeID *uint  `json:"room_type_id,omitempty" gorm:"column:room_type_id;index"`
	RoomNumber string `json:"room_number" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`

	Status        string  `json:"status" gorm:"column:status;size:32;default:available"`
	Available     bool    `json:"available" gorm:"column:available;default:true"`
	PricePerNight float64 `json:"price_per_night" gorm:"column:price_per_night"`
	Floor         string  `json:"floor" gorm:"type:varchar(10)"`
	Building      string  `json:"building" gorm:"type:varchar(50)"`
	MaxOccupancy  int     `json:"max_occupancy" gorm:"column:max_occupancy;default:2"`
	Notes         string  `json:"notes" gorm:"type:text"`

	// Status windows written by staff status changes. The timeline falls back
	// to the reserved window when it has to infer occupancy for a room with
	// no matching booking row.
	ReservedStartDate    *time.Time `json:"reserved_start_date,omitempty" gorm:"column:reserved_start_date"`
	ReservedEndDate      *time.Time `json:"reserved_end_date,omitempty" gorm:"column:reserved_end_date"`
	MaintenanceStartDate *time.Time `json:"maintenance_start_date,omitempty" gorm:"column:maintenance_start_date"`
	MaintenanceEndDate   *time.Time `json:"maintenance_end_date,omitempty" gorm:"column:maintenance_end_date"`
	CleaningStartDate    *time.Time `json:"cleaning_start_date,omitempty" gorm:"column:cleaning_start_date"`
	CleaningEndDate      *time.Time `json:"cleaning_end_date,omitempty" gorm:"column:cleaning_end_date"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}
