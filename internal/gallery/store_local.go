// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package gallery

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/levuhoang/photoring/internal/platform/constants"
	"github.com/levuhoang/photoring/internal/platform/localstore"
)

// LocalRepository keeps uploaded images in the viewer's durable local store,
// as one JSON array under the "uploaded_images" collection key.
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

func (repository *LocalRepository) ListUploaded(context context.Context) ([]Image, error) {
	raw := repository.store.Get(constants.StoreKeyUploadedImages)

	var images []Image
	if err := json.Unmarshal(raw, &images); err != nil {
		repository.logger.Warn("uploaded_collection_unreadable", slog.Any("error", err))
		return []Image{}, nil
	}

	return images, nil
}

func (repository *LocalRepository) Append(context context.Context, image *Image) error {
	images, err := repository.ListUploaded(context)
	if err != nil {
		return err
	}

	images = append(images, *image)

	data, err := json.Marshal(images)
	if err != nil {
		return err
	}

	return repository.store.Put(constants.StoreKeyUploadedImages, data)
}

func (repository *LocalRepository) Clear(context context.Context) error {
	return repository.store.Delete(constants.StoreKeyUploadedImages)
}
