// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package gallery

import "time"

// Origin records where an image entered the gallery from.
type Origin string

const (
	// OriginEmbedded marks an image declared in the page's seed manifest.
	OriginEmbedded Origin = "embedded"

	// OriginUploaded marks an image added through the upload flow.
	OriginUploaded Origin = "uploaded"
)

// Image is one displayable photo in the carousel ring.
//
// Embedded images are identified positionally: their ID is reassigned from the
// slot index on every rebuild. Uploaded images carry a stable opaque ID and
// keep it across rebuilds — that ID is also the dedup key when persisted
// uploads are merged into the ring.
type Image struct {
	ID      string `json:"id"`
	Source  string `json:"src"`
	Caption string `json:"caption"`
	Origin  Origin `json:"origin"`

	// StoredRemotely is true when the photo's bytes live on the photo drop
	// server and Source is a URL; false when Source is a self-contained
	// data URI produced by the local fallback path.
	StoredRemotely bool `json:"stored_remotely"`

	UploadedAt time.Time `json:"uploaded_at,omitempty"`
}

// Slot is one render position in the ring.
//
// The ordered slot sequence has no gaps and maps 1:1 to rendered positions;
// the angle between adjacent slots is always 360/count.
type Slot struct {
	Index int     `json:"index"`
	Angle float64 `json:"angle"`
	Image Image   `json:"image"`
}
