package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketLists = []byte("lists")
)

// Store is a key/value persistence slot backed by BoltDB.
// Values are JSON encoded. An empty path selects memory-only mode.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of every slot read or written (promoted on access)
	cache map[string][]byte
}

// Open opens (or creates) the database at path
func Open(path string) (*Store, error) {
	if path == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLists)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

// Close releases the database file lock
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load decodes the slot at key into dest.
// It returns false when the slot is absent or does not decode; dest is left untouched
// in that case.
func (s *Store) Load(key string, dest interface{}) bool {
	data := s.raw(key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// Save encodes value and overwrites the slot at key
func (s *Store) Save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}

	if s.db != nil {
		err = s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketLists)
			return b.Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", key, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()
	return nil
}

func (s *Store) raw(key string) []byte {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketLists)
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
		return nil
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return data
}
