// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package drop

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/levuhoang/photoring/internal/platform/apperr"
	"github.com/levuhoang/photoring/internal/platform/constants"
	"github.com/levuhoang/photoring/internal/platform/imagetype"
	"github.com/levuhoang/photoring/pkg/pagination"
	"github.com/levuhoang/photoring/pkg/slug"
	"github.com/levuhoang/photoring/pkg/uuidv7"
)

// Service implements the photo drop's business logic: authoritative
// validation, name assignment, and the read paths.
type Service struct {
	store      Store
	thumbnails *Thumbnailer
	logger     *slog.Logger

	publicBaseURL string
	maxBytes      int64
}

// NewService constructs the drop [Service].
//
// publicBaseURL prefixes stored-photo URLs; empty produces relative URLs
// ("uploads/<filename>") for same-origin deployments.
func NewService(store Store, thumbnails *Thumbnailer, publicBaseURL string, maxBytes int64, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBytes <= 0 {
		maxBytes = constants.MaxUploadBytes
	}

	return &Service{
		store:         store,
		thumbnails:    thumbnails,
		logger:        logger,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		maxBytes:      maxBytes,
	}
}

/*
Accept validates an upload and stores it under a server-assigned name.

Parameters:
  - context: context.Context
  - upload: *Upload: The extracted multipart submission

Returns:
  - *Photo: The stored photo with its assigned filename and URL
  - error: Validation rejections or storage failures

The media type is sniffed from the payload; the client's declared type and
filename carry no authority. The stored name is a slug of the title plus a
UUID, so collisions and traversal attempts via the original name are
structurally impossible.
*/
func (service *Service) Accept(context context.Context, upload *Upload) (*Photo, error) {
	if len(upload.Data) == 0 {
		return nil, apperr.ValidationError("No file uploaded or upload failed")
	}

	if int64(len(upload.Data)) > service.maxBytes {
		return nil, apperr.ValidationError(fmt.Sprintf(
			"File is too large. Maximum size is %d MB.", service.maxBytes/(1024*1024)))
	}

	mediaType := imagetype.Sniff(upload.Filename, upload.Data)
	extension, allowed := imagetype.ExtensionFor(mediaType)
	if !allowed {
		return nil, apperr.ValidationError("Invalid file type. Only images are allowed.")
	}

	title := strings.TrimSpace(upload.Title)
	if title == "" {
		title = fmt.Sprintf("Uploaded Photo %d", time.Now().UnixMilli())
	}

	photo := &Photo{
		Filename:   storedName(title, extension),
		Title:      title,
		Comment:    strings.TrimSpace(upload.Comment),
		MediaType:  mediaType,
		SizeBytes:  int64(len(upload.Data)),
		UploadedAt: time.Now().UTC(),
	}
	photo.URL = service.publicURL(photo.Filename)

	if err := service.store.Save(context, photo, upload.Data); err != nil {
		service.logger.Error("photo_store_failed",
			slog.String("filename", photo.Filename), slog.Any("error", err))
		return nil, apperr.Internal(err)
	}

	service.logger.Info("photo_stored",
		slog.String("filename", photo.Filename),
		slog.String("media_type", mediaType),
		slog.Int64("size_bytes", photo.SizeBytes),
	)

	return photo, nil
}

/*
List returns one page of stored photos, newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Photo: The requested page
  - pagination.Meta: Page metadata over the full listing
  - error: Storage read failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]Photo, pagination.Meta, error) {
	photos, err := service.store.List(context)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Internal(err)
	}

	start, end := params.Slice(len(photos))
	return photos[start:end], pagination.NewMeta(params.Page, params.Limit, len(photos)), nil
}

/*
Fetch returns the stored bytes and metadata for one photo.

Returns:
  - []byte: The photo bytes
  - *Photo: Its metadata (best effort when the sidecar is missing)
  - error: ErrNotFound for unknown or malformed filenames
*/
func (service *Service) Fetch(context context.Context, filename string) ([]byte, *Photo, error) {
	return service.store.Open(context, filename)
}

/*
Thumbnail returns a downscaled copy of one stored photo.

Returns:
  - []byte: The thumbnail bytes
  - string: The thumbnail media type
  - error: ErrNotFound for unknown filenames, internal errors for
    undecodable payloads
*/
func (service *Service) Thumbnail(context context.Context, filename string) ([]byte, string, error) {
	data, photo, err := service.store.Open(context, filename)
	if err != nil {
		return nil, "", err
	}

	thumb, mediaType, err := service.thumbnails.Thumbnail(photo.Filename, data)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	return thumb, mediaType, nil
}

// publicURL builds the URL recorded for (and returned with) a stored photo.
func (service *Service) publicURL(filename string) string {
	if service.publicBaseURL == "" {
		return "uploads/" + filename
	}
	return service.publicBaseURL + "/uploads/" + filename
}

// storedName assigns the on-disk filename: a slug of the title plus a UUID,
// extension taken from the sniffed media type.
func storedName(title, extension string) string {
	prefix := slug.From(title)
	if prefix == "" {
		return uuidv7.New() + "." + extension
	}
	return prefix + "-" + uuidv7.New() + "." + extension
}
