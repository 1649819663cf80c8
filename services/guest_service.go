package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hotel-pms/models"
	"hotel-pms/utils"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// EmailExists answers the case-insensitive duplicate check. excludeID skips
// the guest being edited.
func (s *GuestService) EmailExists(email string, excludeID uint) bool {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return false
	}
	var count int64
	q := s.DB.Model(&models.Guest{}).Where("LOWER(email) = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	q.Count(&count)
	return count > 0
}

// Create registers a guest. The duplicate-email check runs before the insert
// so the caller gets ErrDuplicateEmail without touching the unique index; the
// index remains the backstop for races.
func (s *GuestService) Create(guest *models.Guest) error {
	guest.Email = utils.NormalizeEmail(guest.Email)
	if guest.GuestType == "" {
		guest.GuestType = models.GuestRegular
	}
	if s.EmailExists(guest.Email, 0) {
		return ErrDuplicateEmail
	}
	if err := s.DB.Create(guest).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create guest: %w", err)
	}
	logrus.WithFields(logrus.Fields{"guest_id": guest.ID, "guest_type": guest.GuestType}).Info("guest created")
	return nil
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.Preload("Credits.RoomType").Order("id DESC").Find(&guests).Error
	return guests, err
}

func (s *GuestService) GetByID(id uint) (models.Guest, error) {
	var guest models.Guest
	if err := s.DB.Preload("Credits.RoomType").First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return guest, ErrGuestNotFound
		}
		return guest, err
	}
	return guest, nil
}

func (s *GuestService) Update(guest *models.Guest) error {
	guest.Email = utils.NormalizeEmail(guest.Email)
	if guest.Email != "" && s.EmailExists(guest.Email, guest.ID) {
		return ErrDuplicateEmail
	}
	if err := s.DB.Model(&models.Guest{}).Where("id = ?", guest.ID).Updates(guest).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to update guest: %w", err)
	}
	return nil
}

func (s *GuestService) Delete(id uint) error {
	return s.DB.Delete(&models.Guest{}, id).Error
}

// GuestsWithCredits lists guests holding at least one positive complimentary
// balance, in either the per-room-type table or the legacy counter. The
// wizard's complimentary flow offers only these guests.
func (s *GuestService) GuestsWithCredits() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.Preload("Credits", "nights_available > 0").Preload("Credits.RoomType").
		Where("complimentary_nights_credit > 0 OR id IN (?)",
			s.DB.Model(&models.GuestCredit{}).Select("guest_id").Where("nights_available > 0"),
		).
		Order("full_name").
		Find(&guests).Error
	return guests, err
}

// CreditBalance returns the guest's nights for one room type.
func (s *GuestService) CreditBalance(guestID, roomTypeID uint) (int, error) {
	var credit models.GuestCredit
	err := s.DB.Where("guest_id = ? AND room_type_id = ?", guestID, roomTypeID).First(&credit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return credit.NightsAvailable, nil
}

// AddCredits grants complimentary nights for a room type, creating the
// balance row on first grant.
func (s *GuestService) AddCredits(guestID, roomTypeID uint, nights int, notes string) error {
	if nights <= 0 {
		return fmt.Errorf("nights must be positive")
	}
	var credit models.GuestCredit
	err := s.DB.Where("guest_id = ? AND room_type_id = ?", guestID, roomTypeID).First(&credit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		credit = models.GuestCredit{
			GuestID:         guestID,
			RoomTypeID:      roomTypeID,
			NightsAvailable: nights,
			Notes:           notes,
		}
		return s.DB.Create(&credit).Error
	}
	if err != nil {
		return err
	}
	return s.DB.Model(&credit).
		Updates(map[string]interface{}{"nights_available": gorm.Expr("nights_available + ?", nights), "notes": notes}).Error
}
