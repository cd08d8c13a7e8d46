package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/momtheprogram/api-final-writers-blog/internal/models"
	"github.com/momtheprogram/api-final-writers-blog/internal/policy"
	"github.com/momtheprogram/api-final-writers-blog/internal/repository"
)

// FollowService carries the subscription rules. Follows are private:
// every operation is scoped to the authenticated principal.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// CreateFollowInput names the target by username, matching the wire
// shape.
type CreateFollowInput struct {
	UserID            uint
	FollowingUsername string
}

// NewFollowService creates a new follow service.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// ListFollows returns the principal's own subscriptions, optionally
// filtered by a username search term.
func (s *FollowService) ListFollows(ctx context.Context, userID uint, search string) ([]*models.Follow, error) {
	if d := policy.AuthorizeCreate(userID); d != policy.Allow {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.followRepo.ListByUser(ctx, userID, search)
}

// CreateFollow subscribes the principal to another user. The missing
// target, self-follow and duplicate cases are all reported as field
// validation errors, distinguished only by message.
func (s *FollowService) CreateFollow(ctx context.Context, in CreateFollowInput) (*models.Follow, error) {
	if d := policy.AuthorizeCreate(in.UserID); d != policy.Allow {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if in.FollowingUsername == "" {
		return nil, models.NewFieldValidationError("following", "This field is required")
	}

	target, err := s.userRepo.GetByUsername(ctx, in.FollowingUsername)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, models.NewFieldValidationError("following",
			fmt.Sprintf("User with username=%s does not exist", in.FollowingUsername))
	}
	if target.ID == in.UserID {
		return nil, models.NewFieldValidationError("following", "You cannot follow yourself")
	}

	if err := s.followRepo.Create(ctx, in.UserID, target.ID); err != nil {
		if errors.Is(err, repository.ErrDuplicateFollow) {
			return nil, models.NewFieldValidationError("following", "You are already following this user")
		}
		return nil, err
	}

	return s.followRepo.GetByPair(ctx, in.UserID, target.ID)
}
