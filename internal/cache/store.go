package cache

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no live entry exists for a key.
var ErrNotFound = errors.New("cache entry not found")

// Entry is one time-bound record in the transients table.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	ExpiresAt time.Time
}

// Store is a database-backed transient store: set with a TTL, get while live,
// delete unconditionally. The database provides the atomic get/set semantics
// needed when the server handles concurrent requests.
type Store struct {
	db *gorm.DB
}

func Open(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate transients table: %w", err)
	}
	return &Store{db: db}, nil
}

// Set stores value under key, overwriting any prior entry. The entry expires
// ttl from now.
func (s *Store) Set(key string, value []byte, ttl time.Duration) error {
	entry := Entry{
		Key:       key,
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.db.Save(&entry).Error; err != nil {
		return fmt.Errorf("failed to store cache entry %q: %w", key, err)
	}
	return nil
}

// Get returns the stored value, or ErrNotFound if the entry is absent or has
// expired. Expired entries are evicted on read.
func (s *Store) Get(key string) ([]byte, error) {
	var entry Entry
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry %q: %w", key, err)
	}

	if !entry.ExpiresAt.After(time.Now()) {
		s.db.Delete(&Entry{}, "key = ?", key)
		return nil, ErrNotFound
	}
	return entry.Value, nil
}

// Delete removes the entry. Deleting an absent entry is not an error.
func (s *Store) Delete(key string) error {
	if err := s.db.Delete(&Entry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete cache entry %q: %w", key, err)
	}
	return nil
}
