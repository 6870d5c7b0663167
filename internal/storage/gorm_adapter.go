package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is one persisted key/value row. Values are full JSON documents;
// every write replaces the whole document (no partial merge).
type Record struct {
	Key   string `gorm:"primaryKey;type:varchar(64)"`
	Value []byte
}

// TableName pins the table name regardless of GORM's pluralization rules.
func (Record) TableName() string { return "records" }

// Open opens a GORM connection for the configured driver.
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}

// GormAdapter is the local persistence backend: a single records table in
// SQLite or PostgreSQL. Multi-key writes run in one transaction, which keeps
// the order-status dual write (ledger + user histories) atomic.
type GormAdapter struct {
	db *gorm.DB
}

// NewGormAdapter migrates the records table and returns the adapter.
func NewGormAdapter(db *gorm.DB) (*GormAdapter, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate records table: %w", err)
	}
	return &GormAdapter{db: db}, nil
}

// Read implements Adapter.
func (a *GormAdapter) Read(key string, out any) bool {
	var rec Record
	if err := a.db.First(&rec, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("storage: read %q failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(rec.Value, out); err != nil {
		log.Printf("storage: record %q holds invalid JSON: %v", key, err)
		return false
	}
	return true
}

// Write implements Adapter.
func (a *GormAdapter) Write(key string, v any) {
	if err := upsert(a.db, key, v); err != nil {
		log.Printf("storage: write %q dropped: %v", key, err)
	}
}

// WriteAll implements Adapter. All records commit or none do.
func (a *GormAdapter) WriteAll(records map[string]any) {
	err := a.db.Transaction(func(tx *gorm.DB) error {
		for key, v := range records {
			if err := upsert(tx, key, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("storage: batch write dropped: %v", err)
	}
}

// Delete implements Adapter.
func (a *GormAdapter) Delete(key string) {
	if err := a.db.Delete(&Record{}, "key = ?", key).Error; err != nil {
		log.Printf("storage: delete %q failed: %v", key, err)
	}
}

func upsert(db *gorm.DB, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record %q: %w", key, err)
	}
	rec := Record{Key: key, Value: value}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to upsert record %q: %w", key, err)
	}
	return nil
}
