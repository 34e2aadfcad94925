package database

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Migration is one reversible schema step.
type Migration struct {
	// Version orders migrations. Format: YYYYMMDD_HHMMSS.
	Version string
	Name    string
	Up      func(tx *gorm.DB) error
	Down    func(tx *gorm.DB) error
}

// MigrationRecord is a row of schema_migrations.
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey;type:varchar(32)"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// Migrations returns the known migrations, oldest first.
func Migrations() []Migration {
	out := make([]Migration, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Version < out[j].Version
	})
	return out
}

// Migrate applies all pending migrations in version order.
//
// Each migration runs in its own transaction. If migration N fails, the
// ones before it stay committed, N is rolled back and nothing after N is
// attempted; re-running Migrate continues from N.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	_, pending, err := Status(db)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if err := applyMigration(db, m); err != nil {
			return fmt.Errorf("applying migration %s (%s): %w", m.Version, m.Name, err)
		}
		log.Info().Str("version", m.Version).Str("name", m.Name).Msg("Applied migration")
	}
	return nil
}

// MigrateDown reverts the most recently applied migration and returns it.
// It returns nil, nil when nothing is applied.
func MigrateDown(db *gorm.DB) (*Migration, error) {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return nil, fmt.Errorf("creating migrations table: %w", err)
	}

	var latest MigrationRecord
	res := db.Order("version DESC").Limit(1).Find(&latest)
	if res.Error != nil {
		return nil, fmt.Errorf("getting latest migration: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var migration *Migration
	for _, m := range Migrations() {
		if m.Version == latest.Version {
			migration = &m
			break
		}
	}
	if migration == nil {
		return nil, fmt.Errorf("migration %s is recorded but unknown to this binary", latest.Version)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := migration.Down(tx); err != nil {
			return fmt.Errorf("executing down step: %w", err)
		}
		if err := tx.Delete(&MigrationRecord{}, "version = ?", migration.Version).Error; err != nil {
			return fmt.Errorf("removing migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reverting migration %s (%s): %w", migration.Version, migration.Name, err)
	}

	log.Info().Str("version", migration.Version).Str("name", migration.Name).Msg("Reverted migration")
	return migration, nil
}

// Status returns the applied records and the migrations still pending.
func Status(db *gorm.DB) (applied []MigrationRecord, pending []Migration, err error) {
	if !db.Migrator().HasTable(&MigrationRecord{}) {
		return nil, Migrations(), nil
	}

	if err := db.Order("version").Find(&applied).Error; err != nil {
		return nil, nil, fmt.Errorf("querying migrations: %w", err)
	}

	appliedSet := make(map[string]bool, len(applied))
	for _, r := range applied {
		appliedSet[r.Version] = true
	}
	for _, m := range Migrations() {
		if !appliedSet[m.Version] {
			pending = append(pending, m)
		}
	}
	return applied, pending, nil
}

func applyMigration(db *gorm.DB, m Migration) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := m.Up(tx); err != nil {
			return fmt.Errorf("executing up step: %w", err)
		}
		record := MigrationRecord{Version: m.Version, AppliedAt: time.Now().UTC()}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("recording migration: %w", err)
		}
		return nil
	})
}
