package repository

import (
	"context"

	"github.com/momtheprogram/api-final-writers-blog/internal/cache"
	"github.com/momtheprogram/api-final-writers-blog/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines the interface for group data operations.
// Groups are read-only over the API; Create exists for the seeding
// command only.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	List(ctx context.Context) ([]*models.Group, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if err := r.db.WithContext(ctx).Create(group).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.GroupsListKey())
	return nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	err := cache.Aside(ctx, cache.GroupKey(id), &group, cache.GroupTTL, func() error {
		return r.db.WithContext(ctx).First(&group, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	err := cache.Aside(ctx, cache.GroupsListKey(), &groups, cache.GroupTTL, func() error {
		return r.db.WithContext(ctx).Order("id ASC").Find(&groups).Error
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Group{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
