package models

import "gorm.io/gorm"

type Guest struct {
	gorm.Model

	FullName    string `json:"full_name" gorm:"column:full_name;type:varchar(200)"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(191)"`
	Phone       string `json:"phone" gorm:"type:varchar(50)"`
	ICNumber    string `json:"ic_number" gorm:"column:ic_number;type:varchar(64)"`
	Nationality string `json:"nationality" gorm:"type:varchar(100)"`

	AddressLine1 string `json:"address_line1" gorm:"column:address_line1;type:varchar(255)"`
	City         string `json:"city" gorm:"type:varchar(100)"`
	PostalCode   string `json:"postal_code" gorm:"column:postal_code;type:varchar(20)"`
	Country      string `json:"country" gorm:"type:varchar(100)"`

	// regular or member; members never pay the room card deposit.
	GuestType string `json:"guest_type" gorm:"column:guest_type;size:32;default:regular"`

	// Legacy "any room type" free-night balance kept for guests migrated from
	// the old loyalty scheme. New credits are tracked per room type in
	// GuestCredit.
	ComplimentaryNightsCredit int `json:"complimentary_nights_credit" gorm:"column:complimentary_nights_credit;default:0"`

	IsActive bool `json:"is_active" gorm:"column:is_active;default:true"`

	Credits []GuestCredit `gorm:"foreignKey:GuestID" json:"credits,omitempty"`
}

// GuestCredit is a guest's complimentary-night balance for one room type.
type GuestCredit struct {
	gorm.Model

	GuestID         uint   `json:"guest_id" gorm:"index:idx_guest_room_type,unique;column:guest_id"`
	RoomTypeID      uint   `json:"room_type_id" gorm:"index:idx_guest_room_type,unique;column:room_type_id"`
	NightsAvailable int    `json:"nights_available" gorm:"column:nights_available;default:0"`
	Notes           string `json:"notes" gorm:"type:varchar(255)"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}
