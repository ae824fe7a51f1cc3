// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package drop

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nfnt/resize"

	// Raster formats the thumbnailer can decode.
	_ "image/gif"
	_ "golang.org/x/image/webp"

	"github.com/levuhoang/photoring/internal/platform/constants"
)

// Thumbnailer generates and caches downscaled copies of stored photos.
//
// Thumbnails are generated lazily on first request and cached on disk; the
// cache is disposable and can be deleted at any time. SVG sources are vector
// data and scale for free, so they bypass the cache entirely.
type Thumbnailer struct {
	cacheDir string
	maxDim   uint
	logger   *slog.Logger

	// mu serializes generation so concurrent first requests for the same
	// photo do not decode it twice.
	mu sync.Mutex
}

// NewThumbnailer opens (creating if needed) the thumbnail cache directory.
func NewThumbnailer(cacheDir string, logger *slog.Logger) (*Thumbnailer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("drop: create thumbnail cache dir: %w", err)
	}

	return &Thumbnailer{
		cacheDir: cacheDir,
		maxDim:   constants.ThumbnailMaxDimension,
		logger:   logger,
	}, nil
}

/*
Thumbnail returns a downscaled copy of the photo, generating and caching it
on first request.

Parameters:
  - filename: The stored photo filename (already validated by the caller)
  - data: The full-size photo bytes

Returns:
  - []byte: The thumbnail bytes
  - string: The thumbnail's media type
  - error: Decode failures for unsupported or corrupt raster data

PNG sources keep their alpha channel and stay PNG; every other raster format
is re-encoded as JPEG. SVG passes through untouched.
*/
func (thumbnailer *Thumbnailer) Thumbnail(filename string, data []byte) ([]byte, string, error) {
	if strings.HasSuffix(filename, ".svg") {
		return data, "image/svg+xml", nil
	}

	cachePath, mediaType := thumbnailer.cacheEntry(filename)

	thumbnailer.mu.Lock()
	defer thumbnailer.mu.Unlock()

	if cached, err := os.ReadFile(cachePath); err == nil {
		return cached, mediaType, nil
	}

	source, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("drop: decode photo for thumbnail: %w", err)
	}

	scaled := resize.Thumbnail(thumbnailer.maxDim, thumbnailer.maxDim, source, resize.Lanczos3)

	var buffer bytes.Buffer
	switch mediaType {
	case "image/png":
		err = png.Encode(&buffer, scaled)
	default:
		err = jpeg.Encode(&buffer, scaled, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return nil, "", fmt.Errorf("drop: encode thumbnail: %w", err)
	}

	if err := os.WriteFile(cachePath, buffer.Bytes(), 0o644); err != nil {
		// A cache miss next time costs a re-decode, not a request failure.
		thumbnailer.logger.Warn("thumbnail_cache_write_failed",
			slog.String("file", filename), slog.Any("error", err))
	}

	return buffer.Bytes(), mediaType, nil
}

// cacheEntry maps a source filename to its cache path and thumbnail type.
func (thumbnailer *Thumbnailer) cacheEntry(filename string) (string, string) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if strings.HasSuffix(filename, ".png") {
		return filepath.Join(thumbnailer.cacheDir, base+".png"), "image/png"
	}
	return filepath.Join(thumbnailer.cacheDir, base+".jpg"), "image/jpeg"
}
