package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gigstage/gigstage-backend/config"
)

// DB is the shared connection handle, set by Connect.
var DB *gorm.DB

// Connect opens the Postgres connection and stores it in DB.
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ failed to connect to Postgres: %v", err)
	}
	log.Println("✅ Connected to Postgres")

	DB = db
	return db
}
