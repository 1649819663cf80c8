package models

import "gorm.io/gorm"

// HotelSetting is a single-row table of property-wide settings.
type HotelSetting struct {
	gorm.Model

	HotelName       string  `json:"hotel_name" gorm:"type:varchar(200)"`
	Address         string  `json:"address" gorm:"type:varchar(255)"`
	Phone           string  `json:"phone" gorm:"type:varchar(50)"`
	Email           string  `json:"email" gorm:"type:varchar(191)"`
	CheckInTime     string  `json:"check_in_time" gorm:"type:varchar(10);default:'14:00'"`
	CheckOutTime    string  `json:"check_out_time" gorm:"type:varchar(10);default:'12:00'"`
	TaxRate         float64 `json:"tax_rate" gorm:"column:tax_rate"`
	RoomCardDeposit float64 `json:"room_card_deposit" gorm:"column:room_card_deposit;default:50"`
	Currency        string  `json:"currency" gorm:"type:varchar(10);default:'MYR'"`
}
