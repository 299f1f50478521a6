// Package migration runs registered schema migrations in order and tracks
// which have been applied in a sokoni_migrations table.
package migration

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/sokoni/pkg/logger"
)

// Migration is a named, reversible schema change.
type Migration struct {
	Name string
	Up   func(db *gorm.DB) error
	Down func(db *gorm.DB) error
}

type record struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;uniqueIndex"`
	Batch     int
	AppliedAt time.Time
}

func (record) TableName() string { return "sokoni_migrations" }

var registry []Migration

// Register adds a migration to the registry. Migrations run in the
// lexical order of their names, so names carry a timestamp prefix.
func Register(m Migration) {
	registry = append(registry, m)
}

func sorted() []Migration {
	ms := make([]Migration, len(registry))
	copy(ms, registry)
	sort.Slice(ms, func(i, j int) bool { return ms[i].Name < ms[j].Name })
	return ms
}

// Run applies all pending migrations as a single batch.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migration table: %w", err)
	}

	applied := make(map[string]bool)
	var recs []record
	if err := db.Find(&recs).Error; err != nil {
		return err
	}
	for _, r := range recs {
		applied[r.Name] = true
	}

	batch := 1
	for _, r := range recs {
		if r.Batch >= batch {
			batch = r.Batch + 1
		}
	}

	ran := 0
	for _, m := range sorted() {
		if applied[m.Name] {
			continue
		}
		logger.Info("migrating", "name", m.Name)
		if err := m.Up(db); err != nil {
			return fmt.Errorf("migrate %s: %w", m.Name, err)
		}
		if err := db.Create(&record{Name: m.Name, Batch: batch, AppliedAt: time.Now()}).Error; err != nil {
			return err
		}
		ran++
	}

	if ran == 0 {
		logger.Info("nothing to migrate")
	} else {
		logger.Info("migrations complete", "count", ran, "batch", batch)
	}
	return nil
}

// Rollback reverts the most recent batch of migrations.
func Rollback(db *gorm.DB) error {
	var last record
	if err := db.Order("batch desc").First(&last).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			logger.Info("nothing to roll back")
			return nil
		}
		return err
	}

	var recs []record
	if err := db.Where("batch = ?", last.Batch).Order("name desc").Find(&recs).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration)
	for _, m := range registry {
		byName[m.Name] = m
	}

	for _, r := range recs {
		m, ok := byName[r.Name]
		if !ok || m.Down == nil {
			return fmt.Errorf("no down migration registered for %s", r.Name)
		}
		logger.Info("rolling back", "name", r.Name)
		if err := m.Down(db); err != nil {
			return fmt.Errorf("rollback %s: %w", r.Name, err)
		}
		if err := db.Delete(&record{}, r.ID).Error; err != nil {
			return err
		}
	}
	return nil
}

// Status returns each registered migration with its applied batch,
// or 0 when pending.
func Status(db *gorm.DB) (map[string]int, error) {
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, err
	}
	var recs []record
	if err := db.Find(&recs).Error; err != nil {
		return nil, err
	}
	applied := make(map[string]int)
	for _, r := range recs {
		applied[r.Name] = r.Batch
	}
	status := make(map[string]int)
	for _, m := range registry {
		status[m.Name] = applied[m.Name]
	}
	return status, nil
}
