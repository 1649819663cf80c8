package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-pms/config"
	"hotel-pms/models"
	"hotel-pms/utils"
)

// newTestDB opens a fresh in-memory database with the full schema. Max open
// conns is pinned to 1 so every query sees the same :memory: instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func seedRoomType(t *testing.T, db *gorm.DB, code string, price float64) models.RoomType {
	t.Helper()
	rt := models.RoomType{Name: code + " Room", Code: code, BasePrice: price, MaxGuests: 2, IsActive: true}
	require.NoError(t, db.Create(&rt).Error)
	return rt
}

func seedRoom(t *testing.T, db *gorm.DB, number string, roomTypeID uint, price float64) models.Room {
	t.Helper()
	room := models.Room{
		RoomTypeID:    &roomTypeID,
		RoomNumber:    number,
		Status:        models.RoomAvailable,
		Available:     true,
		PricePerNight: price,
		MaxOccupancy:  2,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func seedGuest(t *testing.T, db *gorm.DB, name, email, guestType string) models.Guest {
	t.Helper()
	guest := models.Guest{
		FullName:  name,
		Email:     utils.NormalizeEmail(email),
		Phone:     "0123456789",
		GuestType: guestType,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&guest).Error)
	return guest
}

func date(s string) time.Time {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
