package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingNumber string `gorm:"column:booking_number;uniqueIndex;size:64" json:"booking_number"`
	GuestID       uint   `gorm:"index;column:guest_id" json:"guest_id"`
	RoomID        uint   `gorm:"index;column:room_id" json:"room_id"`

	CheckInDate  time.Time `gorm:"column:check_in_date" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"check_out_date"`
	Nights       int       `gorm:"column:nights" json:"nights"`

	Status        string `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus string `gorm:"column:payment_status;size:32;default:unpaid" json:"payment_status"`
	PaymentMethod string `gorm:"column:payment_method;size:64" json:"payment_method,omitempty"`

	RoomRate    float64 `gorm:"column:room_rate" json:"room_rate"`
	Subtotal    float64 `gorm:"column:subtotal" json:"subtotal"`
	TotalAmount float64 `gorm:"column:total_amount" json:"total_amount"`

	DepositAmount   float64 `gorm:"column:deposit_amount" json:"deposit_amount"`
	RoomCardDeposit float64 `gorm:"column:room_card_deposit" json:"room_card_deposit"`

	Source           string `gorm:"column:source;size:32" json:"source"`
	BookingChannel   string `gorm:"column:booking_channel;size:64" json:"booking_channel,omitempty"`
	ChannelReference string `gorm:"column:channel_reference;size:128" json:"channel_reference,omitempty"`
	MarketCode       string `gorm:"column:market_code;size:32" json:"market_code,omitempty"`
	RateCode         string `gorm:"column:rate_code;size:32" json:"rate_code,omitempty"`

	IsComplimentary     bool           `gorm:"column:is_complimentary;default:false" json:"is_complimentary"`
	ComplimentaryDates  datatypes.JSON `gorm:"column:complimentary_dates" json:"complimentary_dates,omitempty"`
	ComplimentaryReason string         `gorm:"column:complimentary_reason;type:varchar(255)" json:"complimentary_reason,omitempty"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	Remarks   string `gorm:"type:text" json:"remarks,omitempty"`
	CreatedBy *uint  `gorm:"column:created_by" json:"created_by,omitempty"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`

	// Set by the night audit once the booking's revenue has been posted.
	PostedDate *time.Time `gorm:"column:posted_date;index" json:"posted_date,omitempty"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Room  Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
