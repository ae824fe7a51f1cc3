// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package drop_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levuhoang/photoring/internal/drop"
	"github.com/levuhoang/photoring/internal/platform/apperr"
	"github.com/levuhoang/photoring/pkg/pagination"
)

func newService(t *testing.T) (*drop.Service, string) {
	t.Helper()

	dir := t.TempDir()

	store, err := drop.NewDiskStore(dir, nil)
	require.NoError(t, err)

	thumbs, err := drop.NewThumbnailer(filepath.Join(dir, "thumbs"), nil)
	require.NoError(t, err)

	return drop.NewService(store, thumbs, "", 0, nil), dir
}

// jpegPayload builds a blob that sniffs as image/jpeg.
func jpegPayload(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0xff, 0xd8, 0xff, 0xe0})
	return data
}

// pngPayload encodes a real decodable PNG of the given dimensions.
func pngPayload(t *testing.T, width, height int) []byte {
	t.Helper()

	var buffer bytes.Buffer
	require.NoError(t, png.Encode(&buffer, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buffer.Bytes()
}

func TestAccept_StoresUnderAssignedName(t *testing.T) {
	service, dir := newService(t)

	photo, err := service.Accept(context.Background(), &drop.Upload{
		Filename: "IMG_0042.JPG",
		Data:     jpegPayload(1024),
		Title:    "Beach Day 2026",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^beach-day-2026-[0-9a-f-]{36}\.jpg$`), photo.Filename)
	assert.Equal(t, "uploads/"+photo.Filename, photo.URL)
	assert.Equal(t, "Beach Day 2026", photo.Title)
	assert.Equal(t, "image/jpeg", photo.MediaType)
	assert.WithinDuration(t, time.Now().UTC(), photo.UploadedAt, 5*time.Second)

	// Both the photo and its metadata sidecar landed on disk.
	stored, err := os.ReadFile(filepath.Join(dir, photo.Filename))
	require.NoError(t, err)
	assert.Equal(t, jpegPayload(1024), stored)
	assert.FileExists(t, filepath.Join(dir, "meta", photo.Filename+".json"))
}

func TestAccept_ClientFilenameCarriesNoAuthority(t *testing.T) {
	service, dir := newService(t)

	photo, err := service.Accept(context.Background(), &drop.Upload{
		Filename: "../../etc/passwd.jpg",
		Data:     jpegPayload(512),
		Title:    "Sneaky",
	})
	require.NoError(t, err)

	assert.NotContains(t, photo.Filename, "..")
	assert.NotContains(t, photo.Filename, "/")
	assert.FileExists(t, filepath.Join(dir, photo.Filename))
}

func TestAccept_DefaultsTitle(t *testing.T) {
	service, _ := newService(t)

	photo, err := service.Accept(context.Background(), &drop.Upload{
		Filename: "a.jpg",
		Data:     jpegPayload(256),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(photo.Title, "Uploaded Photo "))
	assert.True(t, strings.HasPrefix(photo.Filename, "uploaded-photo-"))
}

func TestAccept_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		upload  drop.Upload
		message string
	}{
		{
			name:    "empty_payload",
			upload:  drop.Upload{Filename: "a.jpg"},
			message: "No file uploaded or upload failed",
		},
		{
			name:    "not_an_image",
			upload:  drop.Upload{Filename: "notes.txt", Data: []byte("just some text")},
			message: "Invalid file type. Only images are allowed.",
		},
		{
			name:    "oversized",
			upload:  drop.Upload{Filename: "big.jpg", Data: jpegPayload(6 << 20)},
			message: "File is too large. Maximum size is 5 MB.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, dir := newService(t)

			_, err := service.Accept(context.Background(), &tt.upload)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeValidation, appError.Code)
			assert.Equal(t, tt.message, appError.Message)

			// Nothing landed on disk.
			entries, err := os.ReadDir(filepath.Join(dir, "meta"))
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestList_NewestFirstAndPaged(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		_, err := service.Accept(ctx, &drop.Upload{Filename: "a.jpg", Data: jpegPayload(128), Title: title})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond) // distinct timestamps
	}

	page, meta, err := service.List(ctx, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)

	require.Len(t, page, 2)
	assert.Equal(t, "Third", page[0].Title)
	assert.Equal(t, "Second", page[1].Title)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)

	page, _, err = service.List(ctx, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "First", page[0].Title)
}

func TestThumbnail_DownscalesAndCaches(t *testing.T) {
	service, dir := newService(t)
	ctx := context.Background()

	photo, err := service.Accept(ctx, &drop.Upload{
		Filename: "wide.png",
		Data:     pngPayload(t, 800, 400),
		Title:    "Wide",
	})
	require.NoError(t, err)

	thumb, mediaType, err := service.Thumbnail(ctx, photo.Filename)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)

	decoded, err := png.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	bounds := decoded.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 320)
	assert.LessOrEqual(t, bounds.Dy(), 320)
	assert.Equal(t, 320, bounds.Dx()) // longest side hits the ceiling

	// Second request is served from the on-disk cache.
	cacheName := strings.TrimSuffix(photo.Filename, ".png") + ".png"
	assert.FileExists(t, filepath.Join(dir, "thumbs", cacheName))

	again, _, err := service.Thumbnail(ctx, photo.Filename)
	require.NoError(t, err)
	assert.Equal(t, thumb, again)
}

func TestThumbnail_SVGPassesThrough(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	svg := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" width="1000" height="1000"></svg>`)
	photo, err := service.Accept(ctx, &drop.Upload{Filename: "logo.svg", Data: svg, Title: "Logo"})
	require.NoError(t, err)

	thumb, mediaType, err := service.Thumbnail(ctx, photo.Filename)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", mediaType)
	assert.Equal(t, svg, thumb)
}

func TestThumbnail_UnknownPhoto(t *testing.T) {
	service, _ := newService(t)

	_, _, err := service.Thumbnail(context.Background(), "no-such-photo.jpg")
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

func TestOpen_RejectsTraversalNames(t *testing.T) {
	store, err := drop.NewDiskStore(t.TempDir(), nil)
	require.NoError(t, err)

	for _, name := range []string{"../secret.jpg", "a/b.jpg", "..", ".hidden", "UPPER.JPG"} {
		_, _, err := store.Open(context.Background(), name)
		require.Error(t, err, name)
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound), name)
	}
}
