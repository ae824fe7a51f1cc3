// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package gallery implements the Image Registry: the ordered list of displayable
images the carousel renders, reconciled from two sources.

Sources:

  - Embedded: images declared by the page's seed manifest, identified by
    position.
  - Uploaded: images persisted by prior uploads in the durable local store,
    identified by a stable opaque ID.

Architecture:

  - The registry is the sole source of truth for the render sequence.
    Rendering (the carousel, the CLI listing) is a pure projection of
    registry state, never the reverse.
  - Rebuild() re-derives the slot list and atomically replaces the per-slot
    open handlers, so a slot can never accumulate more than one handler
    across rebuilds.
*/
package gallery

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/levuhoang/photoring/internal/platform/apperr"
	"github.com/levuhoang/photoring/internal/platform/constants"
	"github.com/levuhoang/photoring/pkg/slice"
)

// OpenFunc is invoked with the slot index when an image slot is opened.
type OpenFunc func(slotIndex int)

// Registry owns the ordered render sequence of the gallery.
//
// All mutating operations take the registry lock; the slot list handed out by
// [Registry.Slots] is a copy and safe to hold across rebuilds.
type Registry struct {
	repo   Repository
	logger *slog.Logger

	mu       sync.Mutex
	embedded []Image
	uploaded []Image
	slots    []Slot
	handlers []func()
	onOpen   OpenFunc
}

func NewRegistry(repo Repository, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{repo: repo, logger: logger}
}

/*
LoadEmbedded snapshots the page-declared images as the embedded layer.

The snapshot is taken at a point in time: later changes to the caller's slice
do not leak into the registry. Call [Registry.Rebuild] afterwards to project
the new layer into slots.
*/
func (registry *Registry) LoadEmbedded(images []Image) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.embedded = slice.Map(images, func(image Image) Image {
		image.Origin = OriginEmbedded
		return image
	})
}

/*
LoadPersisted merges previously uploaded images from durable storage into the
live uploaded layer.

Images already represented (dedup key: uploaded image ID) are skipped, so the
operation is safe to repeat. Call [Registry.Rebuild] afterwards.
*/
func (registry *Registry) LoadPersisted(context context.Context) error {
	persisted, err := registry.repo.ListUploaded(context)
	if err != nil {
		return err
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	known := make(map[string]bool, len(registry.uploaded))
	for _, img := range registry.uploaded {
		known[img.ID] = true
	}

	for _, img := range persisted {
		if known[img.ID] {
			continue
		}
		img.Origin = OriginUploaded
		registry.uploaded = append(registry.uploaded, img)
		known[img.ID] = true
	}

	return nil
}

/*
Rebuild re-derives the full slot list from the embedded and uploaded layers.

The post-rebuild count is the authoritative count for the carousel. Rebuild is
idempotent: with no intervening load or append, repeated calls produce the same
ordered list. Per-slot open handlers are replaced atomically — stale handlers
from a previous rebuild are dropped, never stacked.
*/
func (registry *Registry) Rebuild() {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	total := len(registry.embedded) + len(registry.uploaded)
	slots := make([]Slot, 0, total)
	handlers := make([]func(), 0, total)

	step := 0.0
	if total > 0 {
		step = constants.FullCircleDegrees / float64(total)
	}

	appendSlot := func(img Image) {
		index := len(slots)
		if img.Origin == OriginEmbedded {
			// Positional identity: embedded IDs are reassigned every rebuild.
			img.ID = strconv.Itoa(index)
		}
		slots = append(slots, Slot{
			Index: index,
			Angle: step * float64(index),
			Image: img,
		})
		handlers = append(handlers, func() {
			registry.invokeOpen(index)
		})
	}

	for _, img := range registry.embedded {
		appendSlot(img)
	}
	for _, img := range registry.uploaded {
		appendSlot(img)
	}

	registry.slots = slots
	registry.handlers = handlers
}

// invokeOpen forwards a slot activation to the currently registered OpenFunc.
func (registry *Registry) invokeOpen(index int) {
	registry.mu.Lock()
	fn := registry.onOpen
	registry.mu.Unlock()

	if fn != nil {
		fn(index)
	}
}

/*
Append persists one uploaded image to the durable layer.

The live slot list does not change until [Registry.LoadPersisted] and
[Registry.Rebuild] run — that sequencing is what makes Rebuild the commit
point of an upload.
*/
func (registry *Registry) Append(context context.Context, image *Image) error {
	image.Origin = OriginUploaded
	return registry.repo.Append(context, image)
}

/*
ClearUploaded drops every uploaded image, both from durable storage and from
the live uploaded layer.

This is the one-shot recovery path taken when the local store is full.
*/
func (registry *Registry) ClearUploaded(context context.Context) error {
	if err := registry.repo.Clear(context); err != nil {
		return err
	}

	registry.mu.Lock()
	registry.uploaded = nil
	registry.mu.Unlock()

	return nil
}

// OnOpen registers the single callback fired when a slot is opened.
func (registry *Registry) OnOpen(fn OpenFunc) {
	registry.mu.Lock()
	registry.onOpen = fn
	registry.mu.Unlock()
}

// Open activates the handler for slot i, as a click on the rendered image would.
func (registry *Registry) Open(i int) error {
	registry.mu.Lock()
	if i < 0 || i >= len(registry.handlers) {
		registry.mu.Unlock()
		return apperr.NotFound("Image slot")
	}
	handler := registry.handlers[i]
	registry.mu.Unlock()

	handler()
	return nil
}

// Count returns the authoritative number of render slots.
func (registry *Registry) Count() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.slots)
}

// Slots returns a copy of the ordered render sequence.
func (registry *Registry) Slots() []Slot {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	out := make([]Slot, len(registry.slots))
	copy(out, registry.slots)
	return out
}

// SlotAt returns the slot at index i, if present.
func (registry *Registry) SlotAt(i int) (Slot, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if i < 0 || i >= len(registry.slots) {
		return Slot{}, false
	}
	return registry.slots[i], true
}
