// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

/*
Package comment implements the per-photo comment board.

Comments are keyed by image identifier and kept in a single durable local
collection. The board is append-only: entries are never edited or deleted by
the system itself.
*/
package comment

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/levuhoang/photoring/internal/platform/constants"
	"github.com/levuhoang/photoring/internal/platform/validate"
	"github.com/levuhoang/photoring/pkg/slice"
	"github.com/levuhoang/photoring/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
Initialize ensures the durable comment collection exists.

Safe to call on every start.
*/
func (service *Service) Initialize(context context.Context) error {
	return service.repo.Initialize(context)
}

/*
Append validates and persists one comment.

Parameters:
  - context: context.Context
  - comment: *Comment (ID and CreatedAt are stamped when absent)

Returns:
  - error: Validation or persistence errors

No uniqueness check is performed on the ID — duplicates are accepted silently.
*/
func (service *Service) Append(context context.Context, comment *Comment) error {
	validator := &validate.Validator{}
	validator.Required(constants.FieldAuthor, comment.Author).
		MaxLen(constants.FieldAuthor, comment.Author, MaxAuthorLen).
		Required(constants.FieldText, comment.Text).
		MaxLen(constants.FieldText, comment.Text, MaxTextLen).
		Custom(constants.FieldImage, comment.ImageID == "", "Comment must reference an image")

	if err := validator.Err(); err != nil {
		return err
	}

	if comment.ID == "" {
		comment.ID = uuidv7.New()
	}

	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	return service.repo.Append(context, comment)
}

/*
QueryByImage returns the comments for one image, newest first.

Ordering is by CreatedAt descending; entries with equal timestamps keep their
original insertion order (stable sort).
*/
func (service *Service) QueryByImage(context context.Context, imageID string) ([]Comment, error) {
	all, err := service.repo.ListAll(context)
	if err != nil {
		return nil, err
	}

	matched := slice.Filter(all, func(c Comment) bool {
		return c.ImageID == imageID
	})

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}
