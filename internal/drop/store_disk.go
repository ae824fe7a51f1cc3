// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package drop

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/levuhoang/photoring/internal/platform/apperr"
)

// metaDirName holds the per-photo JSON sidecars. It lives inside the upload
// directory but is never reachable through the static file routes, which
// accept bare filenames only.
const metaDirName = "meta"

// storedNamePattern matches the names this package assigns: a lowercase slug,
// a UUID, and a single extension. Anything else (separators, dots, uppercase)
// is rejected before it can touch the filesystem.
var storedNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.[a-z0-9]+$`)

// DiskStore is the filesystem implementation of [Store].
//
// Photos land directly in the upload directory so a plain static file server
// can expose them; metadata sidecars land in a meta/ subdirectory keyed by
// the photo filename.
type DiskStore struct {
	dir    string
	logger *slog.Logger
}

// NewDiskStore opens (creating if needed) the upload directory.
func NewDiskStore(dir string, logger *slog.Logger) (*DiskStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Join(dir, metaDirName), 0o755); err != nil {
		return nil, fmt.Errorf("drop: create upload dir: %w", err)
	}

	return &DiskStore{dir: dir, logger: logger}, nil
}

// Save persists the photo bytes and the metadata sidecar.
//
// The photo file is written via a temp file and rename so a concurrent
// reader never observes a partial photo. The sidecar is written after the
// photo: a crash between the two leaves an unlisted but servable file,
// never a listed but missing one.
func (store *DiskStore) Save(context context.Context, photo *Photo, data []byte) error {
	if !validStoredName(photo.Filename) {
		return apperr.ValidationError("Invalid filename", apperr.FieldError{
			Field: "filename", Message: "Filename contains disallowed characters",
		})
	}

	path := filepath.Join(store.dir, photo.Filename)

	temp, err := os.CreateTemp(store.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("drop: create temp file: %w", err)
	}

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(temp.Name())
		return fmt.Errorf("drop: write photo: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(temp.Name())
		return fmt.Errorf("drop: close temp file: %w", err)
	}
	if err := os.Rename(temp.Name(), path); err != nil {
		_ = os.Remove(temp.Name())
		return fmt.Errorf("drop: store photo: %w", err)
	}

	sidecar, err := json.Marshal(photo)
	if err != nil {
		return fmt.Errorf("drop: encode metadata: %w", err)
	}
	if err := os.WriteFile(store.metaPath(photo.Filename), sidecar, 0o644); err != nil {
		return fmt.Errorf("drop: write metadata: %w", err)
	}

	return nil
}

// List reads every metadata sidecar and returns the photos newest first.
//
// A corrupt sidecar is logged and skipped rather than failing the whole
// listing.
func (store *DiskStore) List(context context.Context) ([]Photo, error) {
	entries, err := os.ReadDir(filepath.Join(store.dir, metaDirName))
	if err != nil {
		if os.IsNotExist(err) {
			return []Photo{}, nil
		}
		return nil, fmt.Errorf("drop: read metadata dir: %w", err)
	}

	photos := make([]Photo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(store.dir, metaDirName, entry.Name()))
		if err != nil {
			store.logger.Warn("photo_metadata_unreadable", slog.String("file", entry.Name()), slog.Any("error", err))
			continue
		}

		var photo Photo
		if err := json.Unmarshal(raw, &photo); err != nil {
			store.logger.Warn("photo_metadata_corrupt", slog.String("file", entry.Name()), slog.Any("error", err))
			continue
		}

		photos = append(photos, photo)
	}

	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].UploadedAt.Equal(photos[j].UploadedAt) {
			return photos[i].Filename > photos[j].Filename
		}
		return photos[i].UploadedAt.After(photos[j].UploadedAt)
	})

	return photos, nil
}

// Open returns the stored bytes and metadata for one filename.
func (store *DiskStore) Open(context context.Context, filename string) ([]byte, *Photo, error) {
	if !validStoredName(filename) {
		return nil, nil, apperr.NotFound("Photo not found")
	}

	data, err := os.ReadFile(filepath.Join(store.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, apperr.NotFound("Photo not found")
		}
		return nil, nil, fmt.Errorf("drop: read photo: %w", err)
	}

	photo := &Photo{Filename: filename}
	raw, err := os.ReadFile(store.metaPath(filename))
	if err == nil {
		if err := json.Unmarshal(raw, photo); err != nil {
			store.logger.Warn("photo_metadata_corrupt", slog.String("file", filename), slog.Any("error", err))
			photo = &Photo{Filename: filename}
		}
	}

	return data, photo, nil
}

// metaPath returns the sidecar path for a stored photo filename.
func (store *DiskStore) metaPath(filename string) string {
	return filepath.Join(store.dir, metaDirName, filename+".json")
}

// validStoredName reports whether filename is one this package could have
// assigned. It doubles as the path-traversal guard for every route that
// takes a filename.
func validStoredName(filename string) bool {
	return storedNamePattern.MatchString(filename)
}
