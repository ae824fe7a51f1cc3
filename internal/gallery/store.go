// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package gallery

import "context"

// Repository persists the uploaded-image layer of the registry.
//
// Embedded images are never persisted here; they come from the seed manifest.
type Repository interface {
	// ListUploaded returns every persisted uploaded image in insertion order.
	ListUploaded(context context.Context) ([]Image, error)

	// Append persists one uploaded image. A write that exceeds the store
	// quota fails with LOCAL_CAPACITY and persists nothing.
	Append(context context.Context, image *Image) error

	// Clear removes all persisted uploaded images. This is the one-shot
	// recovery used when the store is full.
	Clear(context context.Context) error
}
