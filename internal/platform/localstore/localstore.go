// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package localstore implements the viewer's durable local storage: named JSON
collections persisted as files under a state directory, bounded by a byte quota.

It mirrors the storage model the gallery page was built against — an
origin-scoped key/value area holding JSON-encoded arrays, surviving restarts,
with a hard capacity that write operations can hit.

Architecture:

  - One collection per key, stored as <key>.json inside the state directory.
  - Writes are atomic (temp file + rename), so a collection is never observed
    half-written.
  - Reads fail open: a missing, unreadable, or corrupt collection is treated
    as the empty array. The gallery must keep working even if the store rots.
  - The quota spans the whole store. A write that would push the total past
    the quota is rejected with [apperr.LocalCapacity] and changes nothing.
*/
package localstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/levuhoang/photoring/internal/platform/apperr"
)

// emptyCollection is what every absent or unreadable key reads as.
var emptyCollection = []byte("[]")

// keyPattern restricts collection keys to safe file-name material.
var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Store is a quota-bounded set of durable JSON collections.
//
// # Concurrency
//
// All handlers in the viewer run on one cooperative loop, but timer callbacks
// re-enter from other goroutines, so the store takes a mutex around every
// read-modify-write.
type Store struct {
	dir    string
	quota  int64
	logger *slog.Logger
	mu     sync.Mutex
}

// Open prepares a store rooted at dir with the given byte quota.
//
// It creates the directory if absent and is safe to call on every start.
func Open(dir string, quotaBytes int64, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create state dir: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Store{dir: dir, quota: quotaBytes, logger: logger}, nil
}

// Dir returns the state directory backing the store.
func (s *Store) Dir() string { return s.dir }

// Get returns the raw JSON array stored under key.
//
// Missing and corrupt collections both read as "[]" — the caller never sees
// an error from a read.
func (s *Store) Get(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.pathFor(key)
	if err != nil {
		s.logger.Warn("localstore_bad_key", slog.String("key", key))
		return emptyCollection
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("localstore_read_failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return emptyCollection
	}

	if !json.Valid(data) {
		s.logger.Warn("localstore_corrupt_collection", slog.String("key", key))
		return emptyCollection
	}

	return data
}

// Put replaces the collection under key with data.
//
// The write is all-or-nothing: a quota rejection or write failure leaves the
// previous contents of the key intact.
func (s *Store) Put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.pathFor(key)
	if err != nil {
		return apperr.LocalWrite(err)
	}

	if s.quota > 0 {
		used, err := s.usedBytesExcluding(path)
		if err != nil {
			return apperr.LocalWrite(err)
		}
		if used+int64(len(data)) > s.quota {
			return apperr.LocalCapacity(fmt.Errorf(
				"localstore: %d bytes used, %d requested, quota %d", used, len(data), s.quota))
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperr.LocalWrite(err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return apperr.LocalWrite(err)
	}

	return nil
}

// Delete removes the collection under key. A missing collection is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.pathFor(key)
	if err != nil {
		return apperr.LocalWrite(err)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return apperr.LocalWrite(err)
	}

	return nil
}

// pathFor maps a collection key to its backing file, rejecting keys that
// could escape the state directory.
func (s *Store) pathFor(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("localstore: invalid collection key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// usedBytesExcluding sums the size of every collection except the one being
// replaced, so an overwrite is charged only for its new contents.
func (s *Store) usedBytesExcluding(exclude string) (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		full := filepath.Join(s.dir, entry.Name())
		if full == exclude {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}

	return total, nil
}
