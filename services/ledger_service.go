package services

import (
	"strings"

	"gorm.io/gorm"

	"hotel-pms/models"
)

type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// Post appends a company ledger entry. Postings are independent of the
// booking write that preceded them; a failure here is surfaced to the
// operator rather than rolling the booking back.
func (s *LedgerService) Post(entry *models.LedgerEntry) error {
	entry.CompanyName = strings.TrimSpace(entry.CompanyName)
	if entry.CompanyName == "" {
		return ErrCompanyRequired
	}
	switch entry.EntryType {
	case "charge", "payment", "adjustment":
	default:
		return ErrInvalidEntryType
	}
	return s.DB.Create(entry).Error
}

func (s *LedgerService) ListByCompany(company string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	q := s.DB.Preload("Booking").Order("id DESC")
	if company != "" {
		q = q.Where("company_name = ?", company)
	}
	err := q.Find(&entries).Error
	return entries, err
}

// Balance sums charges minus payments for one company.
func (s *LedgerService) Balance(company string) (float64, error) {
	var balance float64
	err := s.DB.Model(&models.LedgerEntry{}).
		Select("COALESCE(SUM(CASE WHEN entry_type = 'payment' THEN -amount ELSE amount END), 0)").
		Where("company_name = ?", company).
		Scan(&balance).Error
	return balance, err
}
