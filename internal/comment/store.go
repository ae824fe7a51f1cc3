// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package comment

import "context"

// Repository persists the comment board.
type Repository interface {
	// Initialize ensures the underlying collection exists. Idempotent.
	Initialize(context context.Context) error

	// Append persists one comment. Duplicate IDs are accepted silently.
	Append(context context.Context, comment *Comment) error

	// ListAll returns every stored comment in insertion order.
	ListAll(context context.Context) ([]Comment, error)
}
