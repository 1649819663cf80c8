package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-pms/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_pms")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return err
	}
	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

// Migrate runs AutoMigrate in parent->child order. Shared with the test
// setup, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.HotelSetting{},
		&models.RoomType{},
		&models.RateCode{},
		&models.MarketCode{},
		&models.BookingChannel{},
		&models.PaymentMethod{},
		&models.Guest{},
		&models.GuestCredit{},
		&models.Room{},
		&models.Booking{},
		&models.RoomHistory{},
		&models.LedgerEntry{},
		&models.NightAuditRun{},
	)
}

// SeedDatabase fills the lookup tables on first boot.
func SeedDatabase(db *gorm.DB) {
	// ---------------- Admin ----------------
	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		password := envOrDefault("ADMIN_PASSWORD", "admin123")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Front Desk Admin",
				Username: envOrDefault("ADMIN_USERNAME", "admin@hotel.local"),
				Password: string(hash),
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- RoomTypes ----------------
	var rtCount int64
	db.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Code: "STD", Description: "Standard Room", BasePrice: 120, MaxGuests: 2},
			{Name: "Superior", Code: "SUP", Description: "Superior Room", BasePrice: 160, MaxGuests: 3},
			{Name: "Deluxe", Code: "DLX", Description: "Deluxe Room", BasePrice: 220, MaxGuests: 4},
			{Name: "Family Suite", Code: "FAM", Description: "Family Suite", BasePrice: 320, MaxGuests: 5},
		}
		db.Create(&roomTypes)
		log.Println("RoomTypes seeded")
	}

	// ---------------- Reference data ----------------
	var rcCount int64
	db.Model(&models.RateCode{}).Count(&rcCount)
	if rcCount == 0 {
		db.Create(&[]models.RateCode{
			{Code: "RACK", Name: "Rack Rate"},
			{Code: "CORP", Name: "Corporate Rate"},
			{Code: "GOV", Name: "Government Rate"},
			{Code: "PROMO", Name: "Promotional Rate"},
		})
	}

	var mcCount int64
	db.Model(&models.MarketCode{}).Count(&mcCount)
	if mcCount == 0 {
		db.Create(&[]models.MarketCode{
			{Code: "FIT", Name: "Free Independent Traveller"},
			{Code: "CORP", Name: "Corporate"},
			{Code: "GRP", Name: "Group"},
			{Code: "GOV", Name: "Government"},
		})
	}

	var bcCount int64
	db.Model(&models.BookingChannel{}).Count(&bcCount)
	if bcCount == 0 {
		db.Create(&[]models.BookingChannel{
			{Code: "DIRECT", Name: "Direct / Front Desk"},
			{Code: "WEB", Name: "Hotel Website"},
			{Code: "BOOKING", Name: "Booking.com"},
			{Code: "AGODA", Name: "Agoda"},
			{Code: "EXPEDIA", Name: "Expedia"},
		})
	}

	var pmCount int64
	db.Model(&models.PaymentMethod{}).Count(&pmCount)
	if pmCount == 0 {
		db.Create(&[]models.PaymentMethod{
			{Code: "CASH", Name: "Cash"},
			{Code: "CARD", Name: "Credit / Debit Card"},
			{Code: "BANK", Name: "Bank Transfer"},
			{Code: "EWALLET", Name: "E-Wallet"},
			{Code: "COMPANY", Name: "Company Ledger"},
		})
	}

	// ---------------- Hotel settings ----------------
	var settingCount int64
	db.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		db.Create(&models.HotelSetting{
			HotelName:       envOrDefault("HOTEL_NAME", "Hotel PMS"),
			CheckInTime:     "14:00",
			CheckOutTime:    "12:00",
			TaxRate:         0,
			RoomCardDeposit: 50,
			Currency:        "MYR",
		})
	}

	log.Println("Reference data ensured")
}
