// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package comment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levuhoang/photoring/internal/comment"
	"github.com/levuhoang/photoring/internal/platform/apperr"
	"github.com/levuhoang/photoring/internal/platform/localstore"
)

func newService(t *testing.T) *comment.Service {
	t.Helper()

	store, err := localstore.Open(t.TempDir(), 0, nil)
	require.NoError(t, err)

	svc := comment.NewService(comment.NewLocalRepository(store, nil), nil)
	require.NoError(t, svc.Initialize(context.Background()))
	return svc
}

/*
TestService_AppendThenQuery verifies the append/query round trip: a freshly
appended comment is visible under its image ID immediately.
*/
func TestService_AppendThenQuery(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	c := &comment.Comment{ImageID: "3", Author: "Grandma", Text: "Lovely photo!"}
	require.NoError(t, svc.Append(ctx, c))

	// IDs and timestamps are stamped on append
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := svc.QueryByImage(ctx, "3")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Grandma", got[0].Author)
	assert.Equal(t, "Lovely photo!", got[0].Text)
}

/*
TestService_QueryFiltersByImage verifies that only comments referencing the
queried image are returned.
*/
func TestService_QueryFiltersByImage(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Append(ctx, &comment.Comment{ImageID: "1", Author: "A", Text: "on one"}))
	require.NoError(t, svc.Append(ctx, &comment.Comment{ImageID: "2", Author: "B", Text: "on two"}))
	require.NoError(t, svc.Append(ctx, &comment.Comment{ImageID: "1", Author: "C", Text: "also on one"}))

	got, err := svc.QueryByImage(ctx, "1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, "1", c.ImageID)
	}
}

/*
TestService_QueryNewestFirst verifies CreatedAt-descending ordering with
insertion order preserved for equal timestamps.
*/
func TestService_QueryNewestFirst(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	older := &comment.Comment{ImageID: "7", Author: "A", Text: "first", CreatedAt: base}
	newer := &comment.Comment{ImageID: "7", Author: "B", Text: "second", CreatedAt: base.Add(time.Hour)}
	tiedA := &comment.Comment{ImageID: "7", Author: "C", Text: "tied-a", CreatedAt: base.Add(2 * time.Hour)}
	tiedB := &comment.Comment{ImageID: "7", Author: "D", Text: "tied-b", CreatedAt: base.Add(2 * time.Hour)}

	for _, c := range []*comment.Comment{older, newer, tiedA, tiedB} {
		require.NoError(t, svc.Append(ctx, c))
	}

	got, err := svc.QueryByImage(ctx, "7")
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "tied-a", got[0].Text)
	assert.Equal(t, "tied-b", got[1].Text)
	assert.Equal(t, "second", got[2].Text)
	assert.Equal(t, "first", got[3].Text)
}

/*
TestService_AppendValidation verifies that blank authors or bodies are rejected
before anything is persisted.
*/
func TestService_AppendValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		c    comment.Comment
	}{
		{"missing_author", comment.Comment{ImageID: "1", Text: "hi"}},
		{"missing_text", comment.Comment{ImageID: "1", Author: "A"}},
		{"missing_image", comment.Comment{Author: "A", Text: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.c
			err := svc.Append(ctx, &c)
			require.Error(t, err)
			assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		})
	}

	got, err := svc.QueryByImage(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

/*
TestService_DuplicateIDsAccepted verifies that ID collisions are not rejected.
*/
func TestService_DuplicateIDsAccepted(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first := &comment.Comment{ID: "same-id", ImageID: "1", Author: "A", Text: "one"}
	second := &comment.Comment{ID: "same-id", ImageID: "1", Author: "B", Text: "two"}

	require.NoError(t, svc.Append(ctx, first))
	require.NoError(t, svc.Append(ctx, second))

	got, err := svc.QueryByImage(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
