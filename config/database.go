package config

import (
	"log/slog"
	"os"

	"asapcut/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := App.Database.URL
	if dsn == "" {
		dsn = os.Getenv("DB_URL")
	}
	if dsn == "" {
		slog.Error("database URL is not configured (ASAPCUT_DATABASE_URL or DB_URL)")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := Migrate(db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("connected to database")
}

// Migrate creates the schema and seeds the canonical federation positions.
// It is also used by the test suites against an in-memory database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.University{},
		&models.Association{},
		&models.Contribution{},
		&models.ContributionUpload{},
		&models.Position{},
		&models.Level{},
		&models.User{},
		&models.UserProfile{},
		&models.UserLog{},
		&models.Report{},
		&models.ReportView{},
	); err != nil {
		return err
	}
	return seedPositions(db)
}

func seedPositions(db *gorm.DB) error {
	for _, name := range models.CanonicalPositions {
		if err := db.Where(models.Position{Name: name}).
			FirstOrCreate(&models.Position{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
