// Package storage provides the durable key-value primitive the library
// synchronizer writes to. Values are opaque strings; callers decide the
// serialization.
package storage

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// KV is the get/set/remove-by-string-key contract.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Slot is a single key-value row.
type Slot struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"uniqueIndex;size:100"`
	Value     string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Slot) TableName() string {
	return "slots"
}

// Store is the SQLite-backed KV implementation.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the slot database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Storage initialized at %s", dbPath)

	return &Store{db: db}, nil
}

// Get returns the value for key and whether the key exists.
func (s *Store) Get(key string) (string, bool, error) {
	var slot Slot
	err := s.db.Where("key = ?", key).First(&slot).Error
	if err == gorm.ErrRecordNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return slot.Value, true, nil
}

// Set creates or overwrites the value for key.
func (s *Store) Set(key, value string) error {
	var slot Slot
	result := s.db.Where("key = ?", key).First(&slot)

	if result.Error == gorm.ErrRecordNotFound {
		slot = Slot{Key: key, Value: value}
		return s.db.Create(&slot).Error
	} else if result.Error != nil {
		return result.Error
	}

	slot.Value = value
	return s.db.Save(&slot).Error
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&Slot{}).Error
}

// Ping verifies the underlying connection is alive.
func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
