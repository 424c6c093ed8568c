package database

import (
	"booking_manager/config"
	"booking_manager/model"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg config.App) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Booking{},
		&model.ProcessedWebhook{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	log.Println("database connected and migrated")

	DB = db
	return db, nil
}
