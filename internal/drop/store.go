// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package drop

import "context"

// Store abstracts the durable photo storage backing the drop.
type Store interface {

	// Save persists the photo bytes and metadata under photo.Filename.
	Save(context context.Context, photo *Photo, data []byte) error

	// List returns all stored photos, newest first.
	List(context context.Context) ([]Photo, error)

	// Open returns the stored bytes and metadata for one filename.
	Open(context context.Context, filename string) ([]byte, *Photo, error)
}
