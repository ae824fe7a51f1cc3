// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package drop_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levuhoang/photoring/internal/drop"
)

func newHandler(t *testing.T) (*drop.Handler, *drop.Service) {
	t.Helper()

	service, _ := newService(t)
	return drop.NewHandler(service, 0), service
}

// multipartBody builds a multipart form with an image part plus form fields.
func multipartBody(t *testing.T, filename string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func decodeUpload(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func TestCreatePhoto_Success(t *testing.T) {
	handler, _ := newHandler(t)
	router := handler.Routes()

	body, contentType := multipartBody(t, "beach.jpg", jpegPayload(2048), map[string]string{
		"title":   "Beach Day",
		"comment": "First swim",
	})

	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)

	payload := decodeUpload(t, recorder)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Beach Day", payload["title"])
	assert.Equal(t, "First swim", payload["comment"])
	assert.Contains(t, payload["url"], "uploads/beach-day-")
	assert.NotEmpty(t, payload["filename"])

	_, err := time.Parse(time.RFC3339, payload["uploadDate"].(string))
	assert.NoError(t, err)
}

func TestCreatePhoto_MissingFile(t *testing.T) {
	handler, _ := newHandler(t)
	router := handler.Routes()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("title", "No Image"))
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	payload := decodeUpload(t, recorder)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "No file uploaded or upload failed", payload["error"])
}

func TestCreatePhoto_RejectsNonImage(t *testing.T) {
	handler, _ := newHandler(t)
	router := handler.Routes()

	body, contentType := multipartBody(t, "notes.txt", []byte("plain text pretending"), nil)

	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	payload := decodeUpload(t, recorder)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Invalid file type. Only images are allowed.", payload["error"])
}

func TestCreatePhoto_RejectsOversized(t *testing.T) {
	handler, _ := newHandler(t)
	router := handler.Routes()

	body, contentType := multipartBody(t, "huge.jpg", jpegPayload(6<<20), nil)

	request := httptest.NewRequest(http.MethodPost, "/", body)
	request.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	payload := decodeUpload(t, recorder)
	assert.Equal(t, false, payload["success"])
}

func TestCreatePhoto_MethodNotAllowed(t *testing.T) {
	handler, _ := newHandler(t)
	router := handler.Routes()

	request := httptest.NewRequest(http.MethodPut, "/", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestListPhotos_Envelope(t *testing.T) {
	handler, service := newHandler(t)
	router := handler.Routes()

	_, err := service.Accept(context.Background(), &drop.Upload{
		Filename: "a.jpg", Data: jpegPayload(128), Title: "Only One",
	})
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/?page=1&limit=10", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []drop.Photo `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Only One", envelope.Data[0].Title)
	assert.Equal(t, 1, envelope.Meta.Total)
}

func TestGetThumbnail_NotFound(t *testing.T) {
	handler, _ := newHandler(t)
	router := handler.Routes()

	request := httptest.NewRequest(http.MethodGet, "/no-such-photo.jpg/thumbnail", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestServePhoto_RoundTrip(t *testing.T) {
	handler, service := newHandler(t)

	original := jpegPayload(512)
	photo, err := service.Accept(context.Background(), &drop.Upload{
		Filename: "a.jpg", Data: original, Title: "Round Trip",
	})
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Get("/uploads/{filename}", handler.ServePhoto)

	request := httptest.NewRequest(http.MethodGet, "/uploads/"+filepath.Base(photo.Filename), nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/jpeg", recorder.Header().Get("Content-Type"))
	assert.Equal(t, original, recorder.Body.Bytes())
}
