// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package viewer composes one local gallery session.

A Session owns the durable local store and everything layered on it: the
comment board, the image registry, the upload reconciler, and the carousel
controller. It is the single construction point the gallery commands go
through, so every command sees the same wiring.
*/
package viewer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/levuhoang/photoring/internal/carousel"
	"github.com/levuhoang/photoring/internal/comment"
	"github.com/levuhoang/photoring/internal/gallery"
	"github.com/levuhoang/photoring/internal/platform/config"
	"github.com/levuhoang/photoring/internal/platform/localstore"
	"github.com/levuhoang/photoring/internal/upload"
)

// Session is one wired-up local gallery.
type Session struct {
	Store      *localstore.Store
	Comments   *comment.Service
	Registry   *gallery.Registry
	Reconciler *upload.Reconciler
	Controller *carousel.Controller

	logger *slog.Logger
}

/*
Open builds a Session from configuration.

Parameters:
  - context: context.Context
  - cfg: *config.Config: StateDir, SeedManifest, RemoteURL, LocalQuotaBytes
  - logger: *slog.Logger (nil falls back to the default logger)

Returns:
  - *Session: Fully wired, with the registry already rebuilt
  - error: Local store failures or an unparsable seed manifest

The startup order mirrors the gallery page load: seed the embedded images,
replay the persisted uploads on top, then rebuild the ring once.
*/
func Open(context context.Context, cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	store, err := localstore.Open(cfg.StateDir, cfg.LocalQuotaBytes, logger)
	if err != nil {
		return nil, fmt.Errorf("viewer: open local store: %w", err)
	}

	comments := comment.NewService(comment.NewLocalRepository(store, logger), logger)
	if err := comments.Initialize(context); err != nil {
		return nil, fmt.Errorf("viewer: initialize comment board: %w", err)
	}

	seed, err := gallery.LoadSeed(cfg.SeedManifest)
	if err != nil {
		return nil, fmt.Errorf("viewer: load seed manifest: %w", err)
	}

	registry := gallery.NewRegistry(gallery.NewLocalRepository(store, logger), logger)
	registry.LoadEmbedded(seed)
	if err := registry.LoadPersisted(context); err != nil {
		return nil, fmt.Errorf("viewer: replay persisted uploads: %w", err)
	}
	registry.Rebuild()

	reconciler := upload.NewReconciler(registry, comments, upload.NewClient(cfg.RemoteURL), logger)

	controller := carousel.NewController(registry, carousel.TimerScheduler{}, comments.QueryByImage, logger)

	logger.Info("gallery_session_opened",
		slog.Int("embedded", len(seed)),
		slog.Int("ring_size", registry.Count()),
	)

	return &Session{
		Store:      store,
		Comments:   comments,
		Registry:   registry,
		Reconciler: reconciler,
		Controller: controller,
		logger:     logger,
	}, nil
}

// Close stops the carousel. The local store needs no teardown: every write
// is already durable when it returns.
func (session *Session) Close() {
	session.Controller.Stop()
	session.logger.Info("gallery_session_closed")
}
