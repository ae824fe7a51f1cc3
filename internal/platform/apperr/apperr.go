// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package apperr defines the centralized error handling framework for Photoring.

It provides a rich error type that bridges the gap between low-level Storage/
Transport errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: Upload failures are split into validation, remote transport,
    local capacity, and local write classes so callers can branch on them.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for Photoring.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., filesystem paths).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "LOCAL_CAPACITY").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Error Codes

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
	CodeRemoteTransport = "REMOTE_TRANSPORT"
	CodeLocalCapacity   = "LOCAL_CAPACITY"
	CodeLocalWrite      = "LOCAL_WRITE"
	CodeUploadPending   = "UPLOAD_PENDING"
	CodeInternal        = "INTERNAL_ERROR"
)

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Photo") // Returns "Photo not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// UploadPending creates a 409 [AppError] used when a submit is attempted while
// another submit for the same draft is still in flight.
func UploadPending() *AppError {
	return &AppError{
		Code:       CodeUploadPending,
		Message:    "An upload is already in progress",
		HTTPStatus: http.StatusConflict,
	}
}

// # Upload Reconciliation Errors

// RemoteTransport wraps a failed or malformed remote store attempt.
//
// It is never surfaced to the user directly — the reconciler always degrades
// to the local fallback path first.
func RemoteTransport(cause error) *AppError {
	return &AppError{
		Code:       CodeRemoteTransport,
		Message:    "Remote photo store is unreachable",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// LocalCapacity signals that a durable local write exceeded the store quota.
// Callers may offer the one-shot clear-and-retry recovery.
func LocalCapacity(cause error) *AppError {
	return &AppError{
		Code:       CodeLocalCapacity,
		Message:    "Local storage is full",
		HTTPStatus: http.StatusInsufficientStorage,
		Cause:      cause,
	}
}

// LocalWrite wraps any other durable local persistence failure.
func LocalWrite(cause error) *AppError {
	return &AppError{
		Code:       CodeLocalWrite,
		Message:    "Failed to save to local storage",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether err carries the given machine-readable code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
