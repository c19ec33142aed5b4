package services

import (
	"testing"

	"github.com/enzococca/pyarchinit-webapp/src/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// Each connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.SiteModel{},
		&models.USModel{},
		&models.MaterialModel{},
		&models.PotteryModel{},
		&models.MediaThumbModel{},
		&models.MediaToEntityModel{},
		&models.UserModel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	err = db.Exec("CREATE TABLE pyunitastratigrafiche (gid INTEGER PRIMARY KEY, scavo_s TEXT, area_s TEXT, us_s INTEGER)").Error
	if err != nil {
		t.Fatalf("create geometry table: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB, records ...any) {
	t.Helper()
	for _, r := range records {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed %T: %v", r, err)
		}
	}
}

func ptr[T any](v T) *T { return &v }
