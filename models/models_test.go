package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
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

	if err := db.AutoMigrate(&University{}, &Association{}, &Contribution{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUniversityDeleteCascades(t *testing.T) {
	db := openTestDB(t)

	university := University{Name: "University of Dodoma", Abbr: "UDOM"}
	if err := db.Create(&university).Error; err != nil {
		t.Fatalf("create university: %v", err)
	}

	association := Association{
		Name:         "CIVE Students Association",
		Abbr:         "CIVE",
		MemberNumber: 25,
		UniversityID: university.ID,
	}
	if err := db.Create(&association).Error; err != nil {
		t.Fatalf("create association: %v", err)
	}

	contribution := Contribution{
		AssociationID: association.ID,
		Year:          "2024-2025",
		Allocation:    150000,
		AmountPaid:    60000,
		Balance:       90000,
	}
	if err := db.Create(&contribution).Error; err != nil {
		t.Fatalf("create contribution: %v", err)
	}

	if err := db.Unscoped().Delete(&university).Error; err != nil {
		t.Fatalf("delete university: %v", err)
	}

	var associations, contributions int64
	db.Model(&Association{}).Count(&associations)
	db.Model(&Contribution{}).Count(&contributions)
	if associations != 0 {
		t.Errorf("associations after cascade = %d, want 0", associations)
	}
	if contributions != 0 {
		t.Errorf("contributions after cascade = %d, want 0", contributions)
	}
}

func TestContributionUniquePerAssociationYear(t *testing.T) {
	db := openTestDB(t)

	university := University{Name: "University of Dodoma", Abbr: "UDOM"}
	if err := db.Create(&university).Error; err != nil {
		t.Fatalf("create university: %v", err)
	}
	association := Association{Name: "CIVE", Abbr: "CIVE", MemberNumber: 25, UniversityID: university.ID}
	if err := db.Create(&association).Error; err != nil {
		t.Fatalf("create association: %v", err)
	}

	first := Contribution{AssociationID: association.ID, Year: "2024-2025", Allocation: 150000}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create contribution: %v", err)
	}

	duplicate := Contribution{AssociationID: association.ID, Year: "2024-2025", Allocation: 150000}
	if err := db.Create(&duplicate).Error; err == nil {
		t.Error("duplicate (association, year) insert succeeded, want unique violation")
	}

	// A different year for the same association is fine.
	nextYear := Contribution{AssociationID: association.ID, Year: "2025-2026", Allocation: 150000}
	if err := db.Create(&nextYear).Error; err != nil {
		t.Errorf("insert for a different year failed: %v", err)
	}
}
