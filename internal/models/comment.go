package models

import "time"

// Comment represents a comment scoped to exactly one parent post.
// AuthorID comes from the authenticated principal and PostID from the
// URL path; neither is client-supplied.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Author   User      `gorm:"foreignKey:AuthorID" json:"author"`
	PostID   uint      `gorm:"not null;index" json:"post_id"`
	Created  time.Time `gorm:"autoCreateTime" json:"created"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}
