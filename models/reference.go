package models

import "gorm.io/gorm"

// Reference lookups used by the booking form: rate codes, market codes,
// booking channels and payment methods. All four share the same shape but are
// kept as separate tables so each can be managed independently.

type RateCode struct {
	gorm.Model
	Code        string `json:"code" gorm:"uniqueIndex;type:varchar(32)"`
	Name        string `json:"name" gorm:"type:varchar(100)"`
	Description string `json:"description" gorm:"type:varchar(255)"`
	IsActive    bool   `json:"is_active" gorm:"column:is_active;default:true"`
}

type MarketCode struct {
	gorm.Model
	Code     string `json:"code" gorm:"uniqueIndex;type:varchar(32)"`
	Name     string `json:"name" gorm:"type:varchar(100)"`
	IsActive bool   `json:"is_active" gorm:"column:is_active;default:true"`
}

type BookingChannel struct {
	gorm.Model
	Code     string `json:"code" gorm:"uniqueIndex;type:varchar(32)"`
	Name     string `json:"name" gorm:"type:varchar(100)"`
	IsActive bool   `json:"is_active" gorm:"column:is_active;default:true"`
}

type PaymentMethod struct {
	gorm.Model
	Code     string `json:"code" gorm:"uniqueIndex;type:varchar(32)"`
	Name     string `json:"name" gorm:"type:varchar(100)"`
	IsActive bool   `json:"is_active" gorm:"column:is_active;default:true"`
}
