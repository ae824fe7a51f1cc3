// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package carousel implements the rotating-ring and lightbox state machine.

States:

  - Playing: the ring advances by one step every tick interval.
  - Paused: no pending tick, rotation frozen.
  - ModalOpen: one image is in the lightbox; autoplay is always cancelled.

Architecture:

  - All state lives in an explicit [Controller] owned by its creator. There
    is no package-level state, so a process can run any number of
    independent carousels.
  - The rendered transform is a pure function of the rotation value; the
    controller only ever moves rotation by ±360/count per step.
  - At most one timer is outstanding per controller. Scheduling a tick
    always cancels the previous one first, and a generation counter keeps a
    cancelled timer that already fired from mutating state it no longer owns.
*/
package carousel

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/levuhoang/photoring/internal/comment"
	"github.com/levuhoang/photoring/internal/gallery"
	"github.com/levuhoang/photoring/internal/platform/apperr"
	"github.com/levuhoang/photoring/internal/platform/constants"
)

// Ring is the registry surface the controller derives its geometry from.
type Ring interface {
	Count() int
	SlotAt(i int) (gallery.Slot, bool)
}

// CommentLoader fetches the comment board for the image in the lightbox.
type CommentLoader func(context context.Context, imageID string) ([]comment.Comment, error)

// Status is a snapshot of the controller for rendering.
type Status struct {
	Rotation   float64
	Step       float64
	Count      int
	Paused     bool
	ModalOpen  bool
	ModalIndex int
}

// ModalView is what the lightbox shows: the open slot and its comment board.
type ModalView struct {
	Slot     gallery.Slot
	Comments []comment.Comment
}

// Controller owns rotation, the autoplay timer, and the lightbox index.
type Controller struct {
	ring      Ring
	scheduler Scheduler
	loader    CommentLoader
	logger    *slog.Logger
	interval  time.Duration

	mu         sync.Mutex
	rotation   float64
	paused     bool
	modalOpen  bool
	modalIndex int
	generation uint64
	cancelTick func()
}

// NewController wires a controller over a ring.
//
// The controller starts idle; call [Controller.Start] to begin autoplay.
func NewController(ring Ring, scheduler Scheduler, loader CommentLoader, logger *slog.Logger) *Controller {
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		ring:      ring,
		scheduler: scheduler,
		loader:    loader,
		logger:    logger,
		interval:  constants.CarouselTickInterval,
	}
}

// # Autoplay

// Start enters the Playing state and schedules the first tick.
func (controller *Controller) Start() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.paused = false
	controller.scheduleTickLocked()
}

// Stop cancels any pending tick. The controller can be restarted.
func (controller *Controller) Stop() {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.cancelTickLocked()
}

// onTick is the timer callback. A stale generation means this tick was
// cancelled after the timer already fired; it must not touch anything.
func (controller *Controller) onTick(generation uint64) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if generation != controller.generation || controller.paused || controller.modalOpen {
		return
	}

	controller.rotation += controller.stepLocked()
	controller.scheduleTickLocked()
}

// scheduleTickLocked replaces the pending tick with a fresh full interval.
// Callers must hold the lock.
func (controller *Controller) scheduleTickLocked() {
	controller.cancelTickLocked()

	generation := controller.generation
	controller.cancelTick = controller.scheduler.Schedule(controller.interval, func() {
		controller.onTick(generation)
	})
}

// cancelTickLocked cancels the pending tick and invalidates any timer that
// already fired but has not run yet.
func (controller *Controller) cancelTickLocked() {
	controller.generation++
	if controller.cancelTick != nil {
		controller.cancelTick()
		controller.cancelTick = nil
	}
}

// stepLocked returns the per-step angle 360/count.
func (controller *Controller) stepLocked() float64 {
	count := controller.ring.Count()
	if count == 0 {
		return 0
	}
	return constants.FullCircleDegrees / float64(count)
}

// # Manual Navigation

// Next rotates the ring one step forward and restarts the tick schedule
// from zero. Ignored while the lightbox is open.
func (controller *Controller) Next() {
	controller.stepRing(-1)
}

// Prev rotates the ring one step backward and restarts the tick schedule
// from zero. Ignored while the lightbox is open.
func (controller *Controller) Prev() {
	controller.stepRing(+1)
}

// stepRing applies one manual rotation step. Autoplay rotates in the positive
// direction, so "next" steps negative to pull the following image forward.
func (controller *Controller) stepRing(direction float64) {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.modalOpen {
		return
	}

	controller.rotation += direction * controller.stepLocked()

	if !controller.paused {
		controller.scheduleTickLocked()
	} else {
		controller.cancelTickLocked()
	}
}

// TogglePause flips between Playing and Paused and returns the new paused
// state. Pausing cancels the pending tick without moving the ring; resuming
// schedules a fresh full interval rather than rotating immediately.
func (controller *Controller) TogglePause() bool {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if controller.modalOpen {
		return controller.paused
	}

	controller.paused = !controller.paused
	if controller.paused {
		controller.cancelTickLocked()
	} else {
		controller.scheduleTickLocked()
	}

	return controller.paused
}

// # Lightbox

/*
OpenModal opens the lightbox on slot i.

Whatever the prior state, the pending tick is cancelled; the pre-modal paused
flag decides what happens on close. The returned view carries the slot and its
comments, newest first.
*/
func (controller *Controller) OpenModal(context context.Context, i int) (ModalView, error) {
	controller.mu.Lock()

	slot, ok := controller.ring.SlotAt(i)
	if !ok {
		controller.mu.Unlock()
		return ModalView{}, apperr.NotFound("Image slot")
	}

	controller.cancelTickLocked()
	controller.modalOpen = true
	controller.modalIndex = i
	controller.mu.Unlock()

	return controller.loadView(context, slot)
}

/*
Navigate moves the lightbox index by direction (±1), wrapping modulo count in
both directions, and reloads the comment board for the new image.

If the ring grew or shrank while the lightbox was open, the index is clamped
into the new range before moving.
*/
func (controller *Controller) Navigate(context context.Context, direction int) (ModalView, error) {
	controller.mu.Lock()

	if !controller.modalOpen {
		controller.mu.Unlock()
		return ModalView{}, apperr.NotFound("Open lightbox")
	}

	count := controller.ring.Count()
	if count == 0 {
		controller.mu.Unlock()
		return ModalView{}, apperr.NotFound("Image slot")
	}

	index := controller.modalIndex
	if index >= count {
		index = count - 1
	}

	index = ((index+direction)%count + count) % count
	controller.modalIndex = index

	slot, ok := controller.ring.SlotAt(index)
	controller.mu.Unlock()

	if !ok {
		return ModalView{}, apperr.NotFound("Image slot")
	}

	return controller.loadView(context, slot)
}

// CloseModal leaves the lightbox. Autoplay resumes — with exactly one new
// timer — only if the carousel was not paused before the lightbox opened.
func (controller *Controller) CloseModal() {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	if !controller.modalOpen {
		return
	}

	controller.modalOpen = false

	if !controller.paused {
		controller.scheduleTickLocked()
	}
}

// loadView assembles the lightbox view for a slot.
func (controller *Controller) loadView(context context.Context, slot gallery.Slot) (ModalView, error) {
	view := ModalView{Slot: slot}

	if controller.loader == nil {
		return view, nil
	}

	comments, err := controller.loader(context, slot.Image.ID)
	if err != nil {
		// The board failing to load must not block viewing the photo.
		controller.logger.Warn("lightbox_comments_unavailable",
			slog.String("image_id", slot.Image.ID),
			slog.Any("error", err),
		)
		return view, nil
	}

	view.Comments = comments
	return view, nil
}

// # Introspection

// Status returns a snapshot for rendering.
func (controller *Controller) Status() Status {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	return Status{
		Rotation:   controller.rotation,
		Step:       controller.stepLocked(),
		Count:      controller.ring.Count(),
		Paused:     controller.paused,
		ModalOpen:  controller.modalOpen,
		ModalIndex: controller.modalIndex,
	}
}

// Rotation returns the accumulated rotation in degrees.
func (controller *Controller) Rotation() float64 {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.rotation
}

// NormalizedRotation returns the rotation folded into [0, 360).
func (controller *Controller) NormalizedRotation() float64 {
	r := math.Mod(controller.Rotation(), constants.FullCircleDegrees)
	if r < 0 {
		r += constants.FullCircleDegrees
	}
	return r
}
