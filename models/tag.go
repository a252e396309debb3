package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is created on first use, keyed by slug, and never deleted.
type Tag struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string    `json:"name" db:"name" gorm:"column:name;type:text;not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"column:slug;type:text;not null;uniqueIndex:idx_tags_slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (Tag) TableName() string {
	return "tags"
}

// PostTag is the join row between a post and a tag.
type PostTag struct {
	PostID uuid.UUID `json:"post_id" db:"post_id" gorm:"column:post_id;type:uuid;primaryKey"`
	TagID  uuid.UUID `json:"tag_id" db:"tag_id" gorm:"column:tag_id;type:uuid;primaryKey;index:idx_post_tags_tag_id"`
}

func (PostTag) TableName() string {
	return "post_tags"
}
