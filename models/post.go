package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	// PostStatusScheduled is stored as-is; nothing publishes it later.
	PostStatusScheduled PostStatus = "scheduled"
)

// PostStatuses lists every accepted status value.
var PostStatuses = []PostStatus{PostStatusDraft, PostStatusPublished, PostStatusScheduled}

func (s PostStatus) Valid() bool {
	for _, status := range PostStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Post is a Journal entry. PublishedAt is non-nil exactly when Status is published.
type Post struct {
	ID               uuid.UUID      `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title            string         `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Slug             string         `json:"slug" db:"slug" gorm:"column:slug;type:text;not null;uniqueIndex:idx_posts_slug"`
	Excerpt          *string        `json:"excerpt" db:"excerpt" gorm:"column:excerpt;type:text"`
	Content          string         `json:"content" db:"content" gorm:"column:content;type:text;not null"`
	FeaturedImage    *string        `json:"featured_image" db:"featured_image" gorm:"column:featured_image;type:text"`
	FeaturedImageAlt *string        `json:"featured_image_alt" db:"featured_image_alt" gorm:"column:featured_image_alt;type:text"`
	Status           PostStatus     `json:"status" db:"status" gorm:"column:status;type:text;not null;default:draft;index:idx_posts_status_published_at,priority:1"`
	PublishedAt      *time.Time     `json:"published_at" db:"published_at" gorm:"column:published_at;type:timestamptz;index:idx_posts_status_published_at,priority:2"`
	ScheduledFor     *time.Time     `json:"scheduled_for" db:"scheduled_for" gorm:"column:scheduled_for;type:timestamptz"`
	AuthorID         string         `json:"author_id" db:"author_id" gorm:"column:author_id;type:text;not null;index:idx_posts_author_id"`
	CategoryID       *uuid.UUID     `json:"category_id" db:"category_id" gorm:"column:category_id;type:uuid;index:idx_posts_category_id"`
	ReadingTime      int            `json:"reading_time" db:"reading_time" gorm:"column:reading_time;type:integer;not null;default:1"`
	SEOTitle         *string        `json:"seo_title" db:"seo_title" gorm:"column:seo_title;type:text"`
	SEODescription   *string        `json:"seo_description" db:"seo_description" gorm:"column:seo_description;type:text"`
	SEOKeywords      pq.StringArray `json:"seo_keywords" db:"seo_keywords" gorm:"column:seo_keywords;type:text[]"`
	Views            int64          `json:"views" db:"views" gorm:"column:views;type:bigint;not null;default:0"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at" gorm:"column:updated_at;type:timestamptz;not null;default:now()"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:post_tags;joinForeignKey:PostID;joinReferences:TagID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string {
	return "posts"
}
