package models

import "time"

// Follow represents a subscription of one user to another.
// The (user, following) pair is unique and self-follows are rejected
// before insert; the composite index backs the atomic
// insert-or-nothing in the repository.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"user_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	User      User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
