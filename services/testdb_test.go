package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"publication-metrics-api/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a private in-memory store with the catalog schema. Each
// call gets its own database; cache=shared keeps it alive across the pooled
// connections GORM opens.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Journal{}, &models.Publication{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func mustCreateJournal(t *testing.T, svc *CatalogService, name, journalType string, impactFactor *float64) models.Journal {
	t.Helper()
	j := models.Journal{Name: name, Type: journalType, ImpactFactor: impactFactor}
	if err := svc.CreateJournal(&j); err != nil {
		t.Fatalf("create journal %q: %v", name, err)
	}
	return j
}

func mustCreatePublication(t *testing.T, svc *CatalogService, title string, year int, journalID uint) models.Publication {
	t.Helper()
	p := models.Publication{Authors: "Doe, J.", Title: title, Year: year, JournalID: journalID}
	if err := svc.CreatePublication(&p); err != nil {
		t.Fatalf("create publication %q: %v", title, err)
	}
	return p
}
