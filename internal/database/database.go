package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/dwincahya/hausjogja-backend/internal/models"
)

// Open initializes and returns the GORM connection handle.
// The DSN is read from the environment with a local-dev fallback.
// The handle is passed around explicitly; there is no package-level
// singleton, so tests can swap in their own database.
func Open() (*gorm.DB, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(127.0.0.1:3306)/hausjogja?parseTime=true&charset=utf8mb4&loc=Local"
	}
	return OpenWithDSN(dsn)
}

// OpenWithDSN creates and configures a GORM handle for any DSN string.
func OpenWithDSN(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Configure the underlying connection pool.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Error connecting to database: %v", err)
		return nil, err
	}

	log.Println("Database connection pool established successfully")
	return db, nil
}

// Migrate creates or updates the four tables the API works with.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
}
