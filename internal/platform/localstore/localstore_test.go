// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package localstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levuhoang/photoring/internal/platform/apperr"
	"github.com/levuhoang/photoring/internal/platform/localstore"
)

/*
TestStore_RoundTrip verifies that a written collection reads back unchanged.
*/
func TestStore_RoundTrip(t *testing.T) {
	store, err := localstore.Open(t.TempDir(), 1024, nil)
	require.NoError(t, err)

	payload := []byte(`[{"id":"1"}]`)
	require.NoError(t, store.Put("comments", payload))

	assert.Equal(t, payload, store.Get("comments"))
}

/*
TestStore_MissingReadsEmpty verifies the fail-open contract for absent keys.
*/
func TestStore_MissingReadsEmpty(t *testing.T) {
	store, err := localstore.Open(t.TempDir(), 1024, nil)
	require.NoError(t, err)

	assert.Equal(t, []byte("[]"), store.Get("never_written"))
}

/*
TestStore_CorruptReadsEmpty verifies that an unparsable collection is treated
as empty instead of crashing the caller.
*/
func TestStore_CorruptReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := localstore.Open(dir, 1024, nil)
	require.NoError(t, err)

	// Corrupt the collection behind the store's back
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comments.json"), []byte("{not json"), 0o644))

	assert.Equal(t, []byte("[]"), store.Get("comments"))
}

/*
TestStore_QuotaRejection verifies that an over-quota write fails with
LOCAL_CAPACITY and leaves the previous contents intact.
*/
func TestStore_QuotaRejection(t *testing.T) {
	store, err := localstore.Open(t.TempDir(), 32, nil)
	require.NoError(t, err)

	small := []byte(`["ok"]`)
	require.NoError(t, store.Put("uploaded_images", small))

	big := make([]byte, 64)
	for i := range big {
		big[i] = 'x'
	}

	err = store.Put("comments", big)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeLocalCapacity))

	// Existing data untouched
	assert.Equal(t, small, store.Get("uploaded_images"))
	assert.Equal(t, []byte("[]"), store.Get("comments"))
}

/*
TestStore_OverwriteNotDoubleCharged verifies that replacing a collection is
charged for the new contents only, not old plus new.
*/
func TestStore_OverwriteNotDoubleCharged(t *testing.T) {
	store, err := localstore.Open(t.TempDir(), 24, nil)
	require.NoError(t, err)

	first := []byte(`["aaaaaaaaaaaaaaaa"]`)
	require.NoError(t, store.Put("comments", first))

	// Same size again would exceed the quota if the old file were counted
	second := []byte(`["bbbbbbbbbbbbbbbb"]`)
	require.NoError(t, store.Put("comments", second))

	assert.Equal(t, second, store.Get("comments"))
}

/*
TestStore_Delete verifies removal and that deleting an absent key is a no-op.
*/
func TestStore_Delete(t *testing.T) {
	store, err := localstore.Open(t.TempDir(), 1024, nil)
	require.NoError(t, err)

	require.NoError(t, store.Put("uploaded_images", []byte(`[1]`)))
	require.NoError(t, store.Delete("uploaded_images"))
	assert.Equal(t, []byte("[]"), store.Get("uploaded_images"))

	// Second delete is not an error
	require.NoError(t, store.Delete("uploaded_images"))
}

/*
TestStore_RejectsTraversalKeys verifies that keys cannot escape the state dir.
*/
func TestStore_RejectsTraversalKeys(t *testing.T) {
	store, err := localstore.Open(t.TempDir(), 1024, nil)
	require.NoError(t, err)

	err = store.Put("../escape", []byte("[]"))
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeLocalWrite))
}
