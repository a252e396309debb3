package models

import (
	"time"

	"github.com/google/uuid"
)

// GalleryImage is a featured photo shown behind the marketing pages.
type GalleryImage struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid();not null"`
	URL          string    `json:"url" db:"url" gorm:"column:url;type:text;not null"`
	AltText      *string   `json:"alt_text" db:"alt_text" gorm:"column:alt_text;type:text"`
	IsFeatured   bool      `json:"is_featured" db:"is_featured" gorm:"column:is_featured;not null;default:true"`
	DisplayOrder int       `json:"display_order" db:"display_order" gorm:"column:display_order;type:integer;not null;default:0;index:idx_gallery_images_display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (GalleryImage) TableName() string {
	return "gallery_images"
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// SwapPartner returns the index of the image that trades display_order with
// images[index] when it moves in direction. images must be ordered by
// display_order ascending. ok is false at either end of the list.
func SwapPartner(images []GalleryImage, index int, direction MoveDirection) (partner int, ok bool) {
	if index < 0 || index >= len(images) {
		return 0, false
	}
	switch direction {
	case MoveUp:
		partner = index - 1
	case MoveDown:
		partner = index + 1
	default:
		return 0, false
	}
	if partner < 0 || partner >= len(images) {
		return 0, false
	}
	return partner, true
}
