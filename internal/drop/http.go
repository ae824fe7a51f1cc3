// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package drop

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/levuhoang/photoring/internal/platform/apperr"
	"github.com/levuhoang/photoring/internal/platform/constants"
	requestutil "github.com/levuhoang/photoring/internal/platform/request"
	"github.com/levuhoang/photoring/internal/platform/respond"
	"github.com/levuhoang/photoring/pkg/pagination"
)

// multipartOverheadBytes is the slack allowed on top of the photo ceiling
// for multipart boundaries and the text fields.
const multipartOverheadBytes = 1 * 1024 * 1024

// Handler implements the HTTP layer of the photo drop.
type Handler struct {
	dropService *Service
	maxBytes    int64
}

// NewHandler constructs a new drop [Handler].
func NewHandler(service *Service, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = constants.MaxUploadBytes
	}
	return &Handler{dropService: service, maxBytes: maxBytes}
}

// Routes returns a [chi.Router] configured with the photo endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createPhoto)
	router.Get("/", handler.listPhotos)
	router.Get("/{filename}/thumbnail", handler.getThumbnail)

	return router
}

// uploadResponse is the wire shape of the upload endpoint, kept exactly as
// the gallery page has always consumed it. Success and failure share the
// struct; the zero fields are omitted.
type uploadResponse struct {
	Success    bool   `json:"success"`
	Filename   string `json:"filename,omitempty"`
	URL        string `json:"url,omitempty"`
	Title      string `json:"title,omitempty"`
	Comment    string `json:"comment,omitempty"`
	UploadDate string `json:"uploadDate,omitempty"`
	Error      string `json:"error,omitempty"`
}

// # Upload Endpoint

/*
POST /api/v1/photos.

Description: Accepts one photo as a multipart form and stores it under a
server-assigned name.

Request:
  - image: file (required)
  - title: string (optional, defaulted server-side)
  - comment: string (optional, echoed for the uploader's comment board)

Response:
  - 201: uploadResponse: success:true with filename, url, title, uploadDate
  - 400: uploadResponse: success:false — missing file, non-image payload, or
    payload over the size ceiling
  - 500: uploadResponse: success:false — storage failure
*/
func (handler *Handler) createPhoto(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxBytes+multipartOverheadBytes)

	if err := request.ParseMultipartForm(handler.maxBytes + multipartOverheadBytes); err != nil {
		writeUploadError(writer, http.StatusBadRequest, "No file uploaded or upload failed")
		return
	}

	file, header, err := request.FormFile(constants.UploadFieldImage)
	if err != nil {
		writeUploadError(writer, http.StatusBadRequest, "No file uploaded or upload failed")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeUploadError(writer, http.StatusBadRequest, "No file uploaded or upload failed")
		return
	}

	photo, err := handler.dropService.Accept(request.Context(), &Upload{
		Filename: header.Filename,
		Data:     data,
		Title:    request.FormValue(constants.UploadFieldTitle),
		Comment:  request.FormValue(constants.UploadFieldComment),
	})
	if err != nil {
		status := http.StatusInternalServerError
		message := "Failed to save file"
		if appError := apperr.As(err); appError != nil && appError.Code == apperr.CodeValidation {
			status = http.StatusBadRequest
			message = appError.Message
		}
		writeUploadError(writer, status, message)
		return
	}

	respondJSON(writer, http.StatusCreated, uploadResponse{
		Success:    true,
		Filename:   photo.Filename,
		URL:        photo.URL,
		Title:      photo.Title,
		Comment:    photo.Comment,
		UploadDate: photo.UploadedAt.Format(time.RFC3339),
	})
}

// # Read Endpoints

/*
GET /api/v1/photos.

Description: Lists stored photos, newest first.

Request:
  - page, limit: Query parameters (clamped)

Response:
  - 200: []Photo: One page, with pagination metadata
*/
func (handler *Handler) listPhotos(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	photos, meta, err := handler.dropService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, photos, meta)
}

/*
GET /api/v1/photos/{filename}/thumbnail.

Description: Returns a lazily generated, cached thumbnail of a stored photo.

Response:
  - 200: Thumbnail bytes (image/jpeg, image/png, or the original SVG)
  - 404: ErrNotFound: Unknown or malformed filename
*/
func (handler *Handler) getThumbnail(writer http.ResponseWriter, request *http.Request) {
	filename := requestutil.Param(request, "filename")

	thumb, mediaType, err := handler.dropService.Thumbnail(request.Context(), filename)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", mediaType)
	writer.Header().Set("Content-Length", strconv.Itoa(len(thumb)))
	writer.Header().Set("Cache-Control", "public, max-age=86400")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(thumb)
}

/*
GET /uploads/{filename}.

Description: Serves a stored photo. Filenames are validated against the
server-assigned naming scheme, so traversal sequences never reach the
filesystem.

Response:
  - 200: Photo bytes under the sniffed media type
  - 404: ErrNotFound: Unknown or malformed filename
*/
func (handler *Handler) ServePhoto(writer http.ResponseWriter, request *http.Request) {
	filename := requestutil.Param(request, "filename")

	data, photo, err := handler.dropService.Fetch(request.Context(), filename)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	mediaType := photo.MediaType
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}

	writer.Header().Set("Content-Type", mediaType)
	writer.Header().Set("Content-Length", strconv.Itoa(len(data)))
	writer.Header().Set("Cache-Control", "public, max-age=86400")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(data)
}

// writeUploadError writes a failure in the legacy upload wire shape.
func writeUploadError(writer http.ResponseWriter, status int, message string) {
	respondJSON(writer, status, uploadResponse{Success: false, Error: message})
}

// respondJSON writes the legacy upload wire shape. The envelope helpers in
// the respond package are deliberately not used here: this endpoint's shape
// predates them and the gallery page parses it as-is.
func respondJSON(writer http.ResponseWriter, status int, payload uploadResponse) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(payload)
}
