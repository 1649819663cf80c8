package models

import "gorm.io/gorm"

// LedgerEntry is a company ledger posting. Entries are created after checkout
// for company-billed stays and by manual postings from the front desk.
type LedgerEntry struct {
	gorm.Model

	CompanyName string  `json:"company_name" gorm:"column:company_name;type:varchar(200);index"`
	BookingID   *uint   `json:"booking_id,omitempty" gorm:"column:booking_id;index"`
	EntryType   string  `json:"entry_type" gorm:"column:entry_type;size:32"` // charge | payment | adjustment
	Amount      float64 `json:"amount"`
	Description string  `json:"description" gorm:"type:varchar(255)"`
	PostedBy    *uint   `json:"posted_by,omitempty" gorm:"column:posted_by"`

	Booking Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}
