package models

import "time"

// Group represents a thematic community that posts can be published into.
// Groups are read-only over the API; they are created by the seeding
// command, never by request handlers.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"-"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}
