package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultCategoryColor = "#D4AF37"

type Category struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name        string    `json:"name" db:"name" gorm:"column:name;type:text;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"column:slug;type:text;not null;uniqueIndex:idx_categories_slug"`
	Description *string   `json:"description" db:"description" gorm:"column:description;type:text"`
	Color       string    `json:"color" db:"color" gorm:"column:color;type:text;not null;default:'#D4AF37'"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (Category) TableName() string {
	return "categories"
}
