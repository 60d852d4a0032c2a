package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dlamsal/airwave/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketFavorites = []byte("favorites")
	bucketRecent    = []byte("recent")
	bucketSettings  = []byte("settings")
)

// favoritesEnvelope is the on-disk shape of the favorites bucket. The
// version field drives explicit migrations on load.
type favoritesEnvelope struct {
	Version  int                             `json:"version"`
	Stations map[string]domain.FavoriteEntry `json:"stations"`
}

const favoritesVersion = 1

// UserStore implements domain.Store using BoltDB.
type UserStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewUserStore opens (or creates) the store under dataDir. An empty dataDir
// yields a memory-only store with no persistence.
func NewUserStore(dataDir string) (*UserStore, error) {
	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &UserStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "airwave.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketFavorites, bucketRecent, bucketSettings} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &UserStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *UserStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *UserStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

// getRaw returns the stored bytes without decoding. Used by the favorites
// migration, which has to inspect the shape before it can unmarshal.
func (s *UserStore) getRaw(bucket []byte, key string) ([]byte, bool) {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	return data, data != nil
}

func (s *UserStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

// === Favorites ===

// GetFavorites loads the favorites map, upgrading any pre-versioned
// "array of station ids" payload to the current keyed envelope. The
// migration is explicit: legacy entries keep their id but start with a
// fresh AddedAt and zero play count, since the old format carried neither.
func (s *UserStore) GetFavorites() (map[string]domain.FavoriteEntry, bool) {
	raw, ok := s.getRaw(bucketFavorites, "entries")
	if !ok {
		return nil, false
	}

	var envelope favoritesEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Version >= favoritesVersion {
		return envelope.Stations, true
	}

	// Legacy v0 format: a bare JSON array of station ids.
	var legacyIDs []string
	if err := json.Unmarshal(raw, &legacyIDs); err != nil {
		return nil, false
	}

	migrated := make(map[string]domain.FavoriteEntry, len(legacyIDs))
	now := time.Now()
	for _, id := range legacyIDs {
		migrated[id] = domain.FavoriteEntry{
			Station: domain.Station{ID: id},
			AddedAt: now,
		}
	}

	// Persist the upgraded shape so the migration runs once.
	if err := s.SaveFavorites(migrated); err != nil {
		return migrated, true
	}
	return migrated, true
}

func (s *UserStore) SaveFavorites(entries map[string]domain.FavoriteEntry) error {
	return s.set(bucketFavorites, "entries", favoritesEnvelope{
		Version:  favoritesVersion,
		Stations: entries,
	})
}

// === Recently played ===

func (s *UserStore) GetRecent() ([]domain.Station, bool) {
	var stations []domain.Station
	ok := s.get(bucketRecent, "list", &stations)
	return stations, ok
}

func (s *UserStore) SaveRecent(stations []domain.Station) error {
	return s.set(bucketRecent, "list", stations)
}

// === Settings ===

func (s *UserStore) GetSetting(key string) (string, bool) {
	var value string
	ok := s.get(bucketSettings, key, &value)
	return value, ok
}

func (s *UserStore) SaveSetting(key, value string) error {
	return s.set(bucketSettings, key, value)
}
