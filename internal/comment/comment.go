// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package comment

import "time"

// Comment is a single entry on a photo's comment board.
//
// Comments are immutable once created: there is no edit or delete path, and
// removing a photo does not cascade into its comments.
type Comment struct {
	ID        string    `json:"id"`
	ImageID   string    `json:"image_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Limits

const (
	// MaxAuthorLen bounds the display name on a comment.
	MaxAuthorLen = 60

	// MaxTextLen bounds the body of a comment.
	MaxTextLen = 2000
)
