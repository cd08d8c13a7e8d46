package service

import (
	"context"
	"errors"

	"github.com/momtheprogram/api-final-writers-blog/internal/models"
	"github.com/momtheprogram/api-final-writers-blog/internal/repository"

	"gorm.io/gorm"
)

// GroupService exposes the read side of groups. Groups are managed out
// of band (seeding, admin tooling); the API never mutates them.
type GroupService struct {
	groupRepo repository.GroupRepository
}

// NewGroupService creates a new group service.
func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// ListGroups returns all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.List(ctx)
}

// GetGroup fetches one group or a NOT_FOUND error.
func (s *GroupService) GetGroup(ctx context.Context, id uint) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Group", id)
	}
	if err != nil {
		return nil, err
	}
	return group, nil
}
