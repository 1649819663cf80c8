package models

import "gorm.io/gorm"

type RoomType struct {
	gorm.Model

	Name        string  `json:"name" gorm:"uniqueIndex;type:varchar(100)"`
	Code        string  `json:"code" gorm:"uniqueIndex;type:varchar(20)"`
	Description string  `json:"description" gorm:"type:text"`
	BasePrice   float64 `json:"base_price" gorm:"column:base_price"`
	MaxGuests   int     `json:"max_guests" gorm:"column:max_guests;default:2"`
	IsActive    bool    `json:"is_active" gorm:"column:is_active;default:true"`
}
