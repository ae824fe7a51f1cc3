// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Uploads: Size ceiling and the accepted image media types.
  - Gallery: Carousel timing and local store collection keys.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "photoring"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Uploads are bounded by size, not speed, so this stays generous.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 60 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Uploads

const (
	// MaxUploadBytes is the hard ceiling for a single photo payload (5 MiB).
	// The viewer checks it advisorily; the server enforces it authoritatively.
	MaxUploadBytes = 5 * 1024 * 1024

	// UploadFieldImage is the multipart field carrying the photo binary.
	UploadFieldImage = "image"

	// UploadFieldTitle is the multipart field carrying the optional title.
	UploadFieldTitle = "title"

	// UploadFieldComment is the multipart field carrying the optional first comment.
	UploadFieldComment = "comment"

	// DefaultUploaderName is the author recorded on a comment submitted
	// alongside an upload.
	DefaultUploaderName = "Uploader"

	// ThumbnailMaxDimension is the longest side of a generated thumbnail in pixels.
	ThumbnailMaxDimension = 320
)

// AllowedImageMIMETypes maps the accepted photo media types to their stored
// file extension. Membership is decided on the sniffed type, never the
// client-declared one.
var AllowedImageMIMETypes = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// # Gallery

const (
	// CarouselTickInterval is the autoplay delay between rotation steps.
	CarouselTickInterval = 3 * time.Second

	// FullCircleDegrees is the total rotation of the carousel ring.
	FullCircleDegrees = 360.0

	// StoreKeyComments is the local store collection holding the comment board.
	StoreKeyComments = "comments"

	// StoreKeyUploadedImages is the local store collection holding uploaded photos.
	StoreKeyUploadedImages = "uploaded_images"

	// DefaultLocalQuotaBytes is the capacity of the viewer's local store,
	// mirroring a typical browser origin quota.
	DefaultLocalQuotaBytes = 10 * 1024 * 1024
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldSuccess = "success"
	FieldImage   = "image"
	FieldTitle   = "title"
	FieldComment = "comment"
	FieldAuthor  = "author"
	FieldText    = "text"
)
