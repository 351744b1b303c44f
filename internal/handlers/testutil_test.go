package handlers

import (
	"fmt"
	"strings"
	"testing"

	"asapcut/config"
	"asapcut/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the full schema. Each
// test gets its own database keyed by the test name.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// seedAssociation creates a university and one association under it.
func seedAssociation(t *testing.T, db *gorm.DB, abbr string, members int) models.Association {
	t.Helper()

	university := models.University{Name: "University of " + abbr, Abbr: "U" + abbr}
	if err := db.Create(&university).Error; err != nil {
		t.Fatalf("seed university: %v", err)
	}

	association := models.Association{
		Name:         abbr + " Students Association",
		Abbr:         abbr,
		MemberNumber: members,
		UniversityID: university.ID,
	}
	if err := db.Create(&association).Error; err != nil {
		t.Fatalf("seed association: %v", err)
	}
	return association
}

// seedUser creates a bare user account.
func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{Username: username, Password: "x", FullName: username}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
