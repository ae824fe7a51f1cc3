// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package upload implements the upload reconciliation flow.

A submission runs the state machine

	Idle → Validating → RemoteAttempt → {RemoteSuccess | RemoteFailed → LocalFallback} → Settled

terminating in Settled (the photo is in the gallery, remotely or locally
stored) or Rejected (validation failed, nothing was mutated).

Invariants:

  - Validation failures reject before any network call and before any store
    mutation.
  - Remote failures never surface to the user; they degrade to the local
    fallback. Only fallback-path failures are user-visible.
  - The registry's durable layer and the comment board are updated together
    or not at all from the caller's perspective: Rebuild is the commit
    point, and nothing before it changes the live gallery — except the
    explicit one-shot clear-and-retry when the local store is full.
*/
package upload

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/levuhoang/photoring/internal/comment"
	"github.com/levuhoang/photoring/internal/gallery"
	"github.com/levuhoang/photoring/internal/platform/apperr"
	"github.com/levuhoang/photoring/internal/platform/constants"
	"github.com/levuhoang/photoring/internal/platform/imagetype"
	"github.com/levuhoang/photoring/internal/platform/validate"
	"github.com/levuhoang/photoring/pkg/uuidv7"
)

// Draft is one pending submission: the selected file plus its form fields.
// Drafts are transient; they never outlive the submission that consumed them.
type Draft struct {
	Filename    string
	Data        []byte
	Title       string
	CommentText string
}

// Result describes how a settled submission landed.
type Result struct {
	Image gallery.Image

	// StoredRemotely mirrors Image.StoredRemotely for convenience.
	StoredRemotely bool

	// RecoveredCapacity is true when the one-shot clear-and-retry ran.
	RecoveredCapacity bool
}

// RecoveryPrompt asks the user whether old uploaded images may be cleared to
// make room. Returning false declines the recovery.
type RecoveryPrompt func() bool

// Reconciler orchestrates validation, the remote attempt, and the local
// fallback, keeping the registry and comment board consistent.
type Reconciler struct {
	registry *gallery.Registry
	comments *comment.Service
	remote   RemoteStore
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight bool
}

func NewReconciler(registry *gallery.Registry, comments *comment.Service, remote RemoteStore, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		registry: registry,
		comments: comments,
		remote:   remote,
		logger:   logger,
	}
}

/*
Validate runs the advisory pre-flight checks on a draft.

The sniffed media type must be an image type and the payload must fit the
5 MiB ceiling. The photo drop server re-validates independently, so a client
that skips this check gains nothing.
*/
func (reconciler *Reconciler) Validate(draft *Draft) error {
	validator := &validate.Validator{}
	validator.Custom(constants.FieldImage, len(draft.Data) == 0, "Select an image to upload")

	if len(draft.Data) > 0 {
		mediaType := imagetype.Sniff(draft.Filename, draft.Data)
		validator.Custom(constants.FieldImage,
			!strings.HasPrefix(mediaType, "image/"),
			"Please select an image file")
	}

	validator.MaxBytes(constants.FieldImage, int64(len(draft.Data)), constants.MaxUploadBytes)

	return validator.Err()
}

/*
Submit runs one draft through the full reconciliation flow.

Parameters:
  - context: context.Context (cancelling it abandons the submission; a late
    remote response can then no longer mutate anything)
  - draft: *Draft
  - recovery: RecoveryPrompt (may be nil — treated as declining)

Returns:
  - *Result: How the photo landed, on Settled
  - error: Validation errors, terminal local-store failures, or a pending
    submit collision

Re-submission is disabled while a submit is pending: a concurrent call fails
with UPLOAD_PENDING and touches nothing.
*/
func (reconciler *Reconciler) Submit(context context.Context, draft *Draft, recovery RecoveryPrompt) (*Result, error) {
	reconciler.mu.Lock()
	if reconciler.inFlight {
		reconciler.mu.Unlock()
		return nil, apperr.UploadPending()
	}
	reconciler.inFlight = true
	reconciler.mu.Unlock()

	defer func() {
		reconciler.mu.Lock()
		reconciler.inFlight = false
		reconciler.mu.Unlock()
	}()

	// Validating — a rejection here mutates nothing.
	if err := reconciler.Validate(draft); err != nil {
		return nil, err
	}

	image, initialComment := reconciler.attemptRemote(context, draft)

	// A submission abandoned mid-flight must not mutate state it no longer owns.
	if err := context.Err(); err != nil {
		return nil, err
	}

	result := &Result{Image: *image, StoredRemotely: image.StoredRemotely}

	// Persist the image, with the one-shot capacity recovery.
	if err := reconciler.persistImage(context, image, recovery, result); err != nil {
		return nil, err
	}

	// Optional initial comment, authored by the system uploader identity.
	if initialComment != "" {
		err := reconciler.comments.Append(context, &comment.Comment{
			ImageID:   image.ID,
			Author:    constants.DefaultUploaderName,
			Text:      initialComment,
			CreatedAt: image.UploadedAt,
		})
		if err != nil {
			return nil, err
		}
	}

	// Commit point: only now does the live gallery change.
	if err := reconciler.registry.LoadPersisted(context); err != nil {
		return nil, err
	}
	reconciler.registry.Rebuild()

	result.Image = *image
	return result, nil
}

// attemptRemote tries the photo drop first and falls back to a self-contained
// local representation on any transport failure. It never returns an error:
// remote problems are not user-visible.
func (reconciler *Reconciler) attemptRemote(context context.Context, draft *Draft) (*gallery.Image, string) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		title = fmt.Sprintf("Uploaded Photo %d", time.Now().UnixMilli())
	}

	remote, err := reconciler.remote.Store(context, draft)
	if err == nil {
		image := &gallery.Image{
			ID:             uuidv7.New(),
			Source:         remote.URL,
			Caption:        remote.Title,
			Origin:         gallery.OriginUploaded,
			StoredRemotely: true,
			UploadedAt:     remote.UploadDate,
		}
		if image.Caption == "" {
			image.Caption = title
		}
		if image.UploadedAt.IsZero() {
			image.UploadedAt = time.Now().UTC()
		}
		return image, remote.Comment
	}

	reconciler.logger.Warn("remote_store_failed_falling_back",
		slog.String("filename", draft.Filename),
		slog.Any("error", err),
	)

	mediaType := imagetype.Sniff(draft.Filename, draft.Data)
	image := &gallery.Image{
		ID:             uuidv7.New(),
		Source:         dataURI(mediaType, draft.Data),
		Caption:        title,
		Origin:         gallery.OriginUploaded,
		StoredRemotely: false,
		UploadedAt:     time.Now().UTC(),
	}

	return image, strings.TrimSpace(draft.CommentText)
}

// persistImage writes the image to the durable layer, running the one-shot
// clear-and-retry when the store reports it is full.
func (reconciler *Reconciler) persistImage(context context.Context, image *gallery.Image, recovery RecoveryPrompt, result *Result) error {
	err := reconciler.registry.Append(context, image)
	if err == nil {
		return nil
	}

	if !apperr.HasCode(err, apperr.CodeLocalCapacity) {
		return reconciler.reportPersistFailure(image, err)
	}

	if recovery == nil || !recovery() {
		return reconciler.reportPersistFailure(image, err)
	}

	// Recovery accepted: clear every previously uploaded image, then retry
	// the single pending write exactly once.
	if clearErr := reconciler.registry.ClearUploaded(context); clearErr != nil {
		return reconciler.reportPersistFailure(image, clearErr)
	}

	if retryErr := reconciler.registry.Append(context, image); retryErr != nil {
		// Still too big on an empty store: terminal, let the user pick a
		// smaller file.
		return reconciler.reportPersistFailure(image, retryErr)
	}

	result.RecoveredCapacity = true
	return nil
}

// reportPersistFailure logs a local persistence failure before re-raising it.
// When the photo already reached the server, the server keeps the file with
// no compensating delete; the log line is the only trace of the orphan.
func (reconciler *Reconciler) reportPersistFailure(image *gallery.Image, err error) error {
	if image.StoredRemotely {
		reconciler.logger.Warn("remote_copy_orphaned_by_local_failure",
			slog.String("url", image.Source),
			slog.Any("error", err),
		)
	}
	return err
}

// dataURI packs a payload into a self-contained data URI.
func dataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
