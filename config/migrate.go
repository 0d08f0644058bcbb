package config

import (
	"fmt"
	"log"

	"publication-metrics-api/models"

	"gorm.io/gorm"
)

// RunMigrations brings the catalog schema up to date. It runs exactly once
// at startup, before any route is registered, and is idempotent: AutoMigrate
// only adds missing tables, columns and constraints.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Journal{}, &models.Publication{}); err != nil {
		return fmt.Errorf("migrate catalog schema: %w", err)
	}

	log.Println("Catalog schema migrated")
	return nil
}
