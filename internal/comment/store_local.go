// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package comment

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/levuhoang/photoring/internal/platform/constants"
	"github.com/levuhoang/photoring/internal/platform/localstore"
)

// LocalRepository stores the comment board in the viewer's durable local store,
// as one JSON array under the "comments" collection key.
type LocalRepository struct {
	store  *localstore.Store
	logger *slog.Logger
}

func NewLocalRepository(store *localstore.Store, logger *slog.Logger) *LocalRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalRepository{store: store, logger: logger}
}

func (repository *LocalRepository) Initialize(context context.Context) error {
	// Re-writing the current contents creates the collection on first use
	// and is a no-op afterwards.
	return repository.store.Put(constants.StoreKeyComments, repository.store.Get(constants.StoreKeyComments))
}

func (repository *LocalRepository) Append(context context.Context, comment *Comment) error {
	comments, err := repository.ListAll(context)
	if err != nil {
		return err
	}

	comments = append(comments, *comment)

	data, err := json.Marshal(comments)
	if err != nil {
		return err
	}

	return repository.store.Put(constants.StoreKeyComments, data)
}

func (repository *LocalRepository) ListAll(context context.Context) ([]Comment, error) {
	raw := repository.store.Get(constants.StoreKeyComments)

	var comments []Comment
	if err := json.Unmarshal(raw, &comments); err != nil {
		// A collection whose shape drifted is treated the same as a corrupt
		// one: empty, logged, never fatal to the gallery.
		repository.logger.Warn("comment_collection_unreadable", slog.Any("error", err))
		return []Comment{}, nil
	}

	return comments, nil
}
