// Package cache is a small disk-backed byte cache with TTL expiry, used to
// keep downloaded team logos across rotations and restarts. Each entry is a
// pair of files: {hash}.cache holds the data and {hash}.meta the JSON
// metadata. Writes are atomic via temp-file-then-rename.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// entryMeta is the JSON structure persisted alongside each cache entry.
type entryMeta struct {
	Key     string `json:"key"`
	Created int64  `json:"created"` // UnixNano
	TTLNS   int64  `json:"ttl_ns"`  // 0 = no TTL
}

// Store is a disk-backed key-value cache. Safe for concurrent use.
type Store struct {
	dir        string
	defaultTTL time.Duration

	mu  sync.Mutex
	now func() time.Time
}

// NewStore creates a Store rooted at dir, creating the directory when
// needed. defaultTTL of 0 means entries never expire.
func NewStore(dir string, defaultTTL time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory %s: %w", dir, err)
	}
	return &Store{dir: dir, defaultTTL: defaultTTL, now: time.Now}, nil
}

// Get retrieves the bytes for key. Returns false when the key is missing or
// expired; an expired entry's files are removed on the way out.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := hashKey(key)
	meta, err := s.readMeta(h)
	if err != nil {
		return nil, false
	}
	if meta.TTLNS > 0 && s.now().UnixNano()-meta.Created > meta.TTLNS {
		s.removeLocked(h)
		return nil, false
	}
	data, err := os.ReadFile(s.dataPath(h))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores data under key with the store's default TTL.
func (s *Store) Put(key string, data []byte) error {
	return s.PutWithTTL(key, data, s.defaultTTL)
}

// PutWithTTL stores data under key with an explicit TTL. A TTL of 0 never
// expires.
func (s *Store) PutWithTTL(key string, data []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := hashKey(key)
	meta := entryMeta{
		Key:     key,
		Created: s.now().UnixNano(),
		TTLNS:   int64(ttl),
	}
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("cache: marshal metadata for %q: %w", key, err)
	}

	if err := atomicWrite(s.dataPath(h), data); err != nil {
		return fmt.Errorf("cache: write data for %q: %w", key, err)
	}
	if err := atomicWrite(s.metaPath(h), metaBytes); err != nil {
		os.Remove(s.dataPath(h))
		return fmt.Errorf("cache: write metadata for %q: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key, if present.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(hashKey(key))
}

func (s *Store) dataPath(hash string) string {
	return filepath.Join(s.dir, hash+".cache")
}

func (s *Store) metaPath(hash string) string {
	return filepath.Join(s.dir, hash+".meta")
}

func (s *Store) readMeta(hash string) (entryMeta, error) {
	raw, err := os.ReadFile(s.metaPath(hash))
	if err != nil {
		return entryMeta{}, err
	}
	var meta entryMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return entryMeta{}, err
	}
	return meta, nil
}

func (s *Store) removeLocked(hash string) {
	os.Remove(s.dataPath(hash))
	os.Remove(s.metaPath(hash))
}

// atomicWrite writes data to path via a temp file in the same directory
// followed by a rename.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
