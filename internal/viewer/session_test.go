// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package viewer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levuhoang/photoring/internal/comment"
	"github.com/levuhoang/photoring/internal/gallery"
	"github.com/levuhoang/photoring/internal/platform/config"
	"github.com/levuhoang/photoring/internal/upload"
	"github.com/levuhoang/photoring/internal/viewer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.json")
	seed := `[
		{"src": "photos/pic1.png", "caption": "Mountain"},
		{"src": "photos/pic2.png", "caption": "Lake"},
		{"src": "photos/pic3.png"}
	]`
	require.NoError(t, os.WriteFile(seedPath, []byte(seed), 0o644))

	return &config.Config{
		StateDir:        filepath.Join(dir, "state"),
		SeedManifest:    seedPath,
		RemoteURL:       "http://127.0.0.1:1/api/v1/photos", // unreachable on purpose
		LocalQuotaBytes: 1 << 20,
	}
}

// jpegPayload builds a blob that sniffs as image/jpeg.
func jpegPayload(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0xff, 0xd8, 0xff, 0xe0})
	return data
}

func TestOpen_SeedsTheRing(t *testing.T) {
	session, err := viewer.Open(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	defer session.Close()

	require.Equal(t, 3, session.Registry.Count())

	slot, ok := session.Registry.SlotAt(2)
	require.True(t, ok)
	assert.Equal(t, "Photo 3", slot.Image.Caption) // defaulted caption
	assert.Equal(t, gallery.OriginEmbedded, slot.Image.Origin)
	assert.InDelta(t, 240.0, slot.Angle, 0.001)
}

func TestOpen_MissingSeedIsEmptyGallery(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedManifest = filepath.Join(t.TempDir(), "absent.json")

	session, err := viewer.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, 0, session.Registry.Count())
}

func TestSession_UploadFallsBackLocally(t *testing.T) {
	cfg := testConfig(t)
	session, err := viewer.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer session.Close()

	result, err := session.Reconciler.Submit(context.Background(), &upload.Draft{
		Filename:    "beach.jpg",
		Data:        jpegPayload(2048),
		Title:       "Beach",
		CommentText: "First swim",
	}, nil)
	require.NoError(t, err)

	assert.False(t, result.StoredRemotely)
	assert.Equal(t, 4, session.Registry.Count())

	comments, err := session.Comments.QueryByImage(context.Background(), result.Image.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "First swim", comments[0].Text)
}

func TestSession_UploadsSurviveReopen(t *testing.T) {
	cfg := testConfig(t)

	session, err := viewer.Open(context.Background(), cfg, nil)
	require.NoError(t, err)

	result, err := session.Reconciler.Submit(context.Background(), &upload.Draft{
		Filename: "beach.jpg",
		Data:     jpegPayload(1024),
		Title:    "Beach",
	}, nil)
	require.NoError(t, err)
	session.Close()

	reopened, err := viewer.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, 4, reopened.Registry.Count())

	slot, ok := reopened.Registry.SlotAt(3)
	require.True(t, ok)
	assert.Equal(t, result.Image.ID, slot.Image.ID)
	assert.Equal(t, gallery.OriginUploaded, slot.Image.Origin)
}

func TestSession_CommentBoardSharedWithController(t *testing.T) {
	cfg := testConfig(t)
	session, err := viewer.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer session.Close()

	slot, ok := session.Registry.SlotAt(0)
	require.True(t, ok)

	require.NoError(t, session.Comments.Append(context.Background(), &comment.Comment{
		ImageID: slot.Image.ID,
		Author:  "Hoang",
		Text:    "Love this one",
	}))

	view, err := session.Controller.OpenModal(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "Hoang", view.Comments[0].Author)
}
