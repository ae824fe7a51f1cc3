// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/levuhoang/photoring/internal/platform/apperr"
	"github.com/levuhoang/photoring/internal/platform/constants"
)

// RemoteResult is the photo drop server's response to a store attempt.
//
// The field names are the wire contract; the viewer treats anything that does
// not parse into this shape as a transport failure.
type RemoteResult struct {
	Success    bool      `json:"success"`
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Comment    string    `json:"comment"`
	UploadDate time.Time `json:"uploadDate"`
	Error      string    `json:"error,omitempty"`
}

// RemoteStore is the remote half of the upload flow.
type RemoteStore interface {
	// Store ships a draft to the photo drop. Every failure — network, non-2xx
	// status, or a malformed body — comes back as REMOTE_TRANSPORT so the
	// reconciler can degrade to the local fallback uniformly.
	Store(context context.Context, draft *Draft) (*RemoteResult, error)
}

// Client is the HTTP [RemoteStore] talking to the photo drop endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient builds a client for the given endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: constants.DefaultWriteTimeout,
		},
	}
}

func (client *Client) Store(context context.Context, draft *Draft) (*RemoteResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(constants.UploadFieldImage, draft.Filename)
	if err != nil {
		return nil, apperr.RemoteTransport(err)
	}
	if _, err := part.Write(draft.Data); err != nil {
		return nil, apperr.RemoteTransport(err)
	}

	if err := writer.WriteField(constants.UploadFieldTitle, draft.Title); err != nil {
		return nil, apperr.RemoteTransport(err)
	}
	if err := writer.WriteField(constants.UploadFieldComment, draft.CommentText); err != nil {
		return nil, apperr.RemoteTransport(err)
	}
	if err := writer.Close(); err != nil {
		return nil, apperr.RemoteTransport(err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost, client.endpoint, body)
	if err != nil {
		return nil, apperr.RemoteTransport(err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	response, err := client.http.Do(request)
	if err != nil {
		return nil, apperr.RemoteTransport(err)
	}
	defer func() { _ = response.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, apperr.RemoteTransport(err)
	}

	result := &RemoteResult{}
	if err := json.Unmarshal(payload, result); err != nil {
		return nil, apperr.RemoteTransport(fmt.Errorf("malformed drop response: %w", err))
	}

	if response.StatusCode < 200 || response.StatusCode > 299 || !result.Success {
		message := result.Error
		if message == "" {
			message = response.Status
		}
		return nil, apperr.RemoteTransport(fmt.Errorf("drop rejected upload: %s", message))
	}

	if result.URL == "" {
		return nil, apperr.RemoteTransport(fmt.Errorf("drop response missing url"))
	}

	return result, nil
}
