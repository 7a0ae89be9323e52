package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recipevault/recipevault-server/internal/domain"
	"github.com/recipevault/recipevault-server/internal/id"
	"github.com/recipevault/recipevault-server/internal/store"
	"github.com/recipevault/recipevault-server/internal/validation"
)

// TagService orchestrates tag operations. Tags are owner-scoped; every
// operation takes the calling user's ID and never sees other users' tags.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateTagRequest contains new tag data.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// ListTags returns the user's tags ordered by name descending.
func (s *TagService) ListTags(ctx context.Context, userID string) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx, userID)
}

// CreateTag creates a tag owned by the user.
func (s *TagService) CreateTag(ctx context.Context, userID string, req CreateTagRequest) (*domain.Tag, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, fmt.Errorf("generate tag ID: %w", err)
	}

	tag := &domain.Tag{
		ID:     tagID,
		Name:   req.Name,
		UserID: userID,
	}
	tag.InitTimestamps()

	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("tag created", "tag_id", tagID, "user_id", userID)
	}

	return tag, nil
}
