// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package drop implements the photo drop: the authoritative server-side store
for uploaded photos.

It owns validation (media type sniffed from content, size ceiling), durable
storage under server-controlled names, the stored-photo listing, and lazily
generated thumbnails. Clients are untrusted: everything a client declares
about its payload is re-derived here.
*/
package drop

import "time"

// Photo is one stored photo with its recorded metadata.
//
// Filename is server-assigned; the client's original name is discarded on
// arrival and never recoverable.
type Photo struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Comment    string    `json:"comment,omitempty"`
	MediaType  string    `json:"media_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Upload is an incoming submission as extracted from the multipart form.
type Upload struct {
	// Filename is the client-declared name, used only as an SVG sniffing
	// hint. It never reaches disk.
	Filename string

	Data    []byte
	Title   string
	Comment string
}
