package database

import (
	"log"
	"time"

	"gorm.io/gorm"

	"vendorhub/models"
)

// SchemaMigration tracks which migration steps have already been applied.
type SchemaMigration struct {
	Version   int    `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	AppliedAt time.Time
}

type migration struct {
	Version int
	Name    string
	Run     func(db *gorm.DB) error
}

// migrations is the ordered list of schema changes. Every step must be
// idempotent: a step may run again if its version-marker write failed.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create user_profiles",
		Run: func(db *gorm.DB) error {
			return db.AutoMigrate(&models.UserProfile{})
		},
	},
	{
		Version: 2,
		Name:    "add profile photo columns",
		Run: func(db *gorm.DB) error {
			m := db.Migrator()
			if !m.HasColumn(&models.UserProfile{}, "profile_photo_data") {
				if err := m.AddColumn(&models.UserProfile{}, "ProfilePhotoData"); err != nil {
					return err
				}
			}
			if !m.HasColumn(&models.UserProfile{}, "profile_photo_mime_type") {
				if err := m.AddColumn(&models.UserProfile{}, "ProfilePhotoMimeType"); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// RunMigrations applies all pending migration steps in order. A failing
// step is logged and skipped; startup must not be aborted by a migration
// failure.
func RunMigrations(db *gorm.DB) {
	log.Println("Running migrations...")

	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		log.Printf("Migration tracking table unavailable: %v", err)
		return
	}

	for _, m := range migrations {
		var applied int64
		if err := db.Model(&SchemaMigration{}).Where("version = ?", m.Version).Count(&applied).Error; err != nil {
			log.Printf("Migration %d (%s): version check failed: %v", m.Version, m.Name, err)
			continue
		}
		if applied > 0 {
			continue
		}

		if err := m.Run(db); err != nil {
			log.Printf("Migration %d (%s) failed: %v", m.Version, m.Name, err)
			continue
		}

		record := SchemaMigration{Version: m.Version, Name: m.Name, AppliedAt: time.Now()}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("Migration %d (%s): failed to record version: %v", m.Version, m.Name, err)
			continue
		}

		log.Printf("Migration %d (%s) applied", m.Version, m.Name)
	}

	log.Println("Migrations completed.")
}
