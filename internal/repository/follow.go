package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/momtheprogram/api-final-writers-blog/internal/models"

	"gorm.io/gorm"
)

// ErrDuplicateFollow is returned when the (user, following) pair
// already exists.
var ErrDuplicateFollow = errors.New("follow pair already exists")

// FollowRepository defines the interface for follow data operations.
type FollowRepository interface {
	Create(ctx context.Context, userID, followingID uint) error
	GetByPair(ctx context.Context, userID, followingID uint) (*models.Follow, error)
	ListByUser(ctx context.Context, userID uint, search string) ([]*models.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the follow pair atomically. ON CONFLICT DO NOTHING
// closes the race between two identical concurrent requests: the loser
// affects zero rows and is reported as a duplicate, with no partial
// effects either way.
func (r *followRepository) Create(ctx context.Context, userID, followingID uint) error {
	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (user_id, following_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, following_id) DO NOTHING`,
		userID, followingID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDuplicateFollow
	}
	return nil
}

func (r *followRepository) GetByPair(ctx context.Context, userID, followingID uint) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Following").
		Where("user_id = ? AND following_id = ?", userID, followingID).
		First(&follow).Error
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

// ListByUser returns the requesting user's follow rows only. The
// optional search term is matched case-insensitively against both
// participants' usernames.
func (r *followRepository) ListByUser(ctx context.Context, userID uint, search string) ([]*models.Follow, error) {
	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("Following").
		Joins("JOIN users followers ON followers.id = follows.user_id").
		Joins("JOIN users followed ON followed.id = follows.following_id").
		Where("follows.user_id = ?", userID)

	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(followers.username) LIKE ? OR LOWER(followed.username) LIKE ?", like, like)
	}

	var follows []*models.Follow
	if err := q.Order("follows.id ASC").Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}
