package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rpupo63/ambitious-journal-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GalleryRepo struct {
	db *gorm.DB
}

func NewGalleryRepo(db *gorm.DB) *GalleryRepo {
	return &GalleryRepo{db}
}

// ListGalleryImages returns images by display_order. featuredOnly limits the
// result to what the public site shows.
func (r *GalleryRepo) ListGalleryImages(ctx context.Context, featuredOnly bool) ([]models.GalleryImage, error) {
	var images []models.GalleryImage
	query := r.db.WithContext(ctx).Order("display_order ASC")
	if featuredOnly {
		query = query.Where("is_featured = ?", true)
	}
	err := query.Find(&images).Error
	return images, translate(err, "gallery images")
}

func (r *GalleryRepo) FindGalleryImage(ctx context.Context, id uuid.UUID) (*models.GalleryImage, error) {
	var image models.GalleryImage
	if err := r.db.WithContext(ctx).First(&image, "id = ?", id).Error; err != nil {
		return nil, translate(err, "gallery image")
	}
	return &image, nil
}

// AppendGalleryImage inserts image after the current last one. Reading the
// max and inserting share a transaction holding a table lock so two uploads
// never get the same position.
func (r *GalleryRepo) AppendGalleryImage(ctx context.Context, image *models.GalleryImage) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("LOCK TABLE gallery_images IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return err
		}
		var next int
		err := tx.Model(&models.GalleryImage{}).
			Select("COALESCE(MAX(display_order) + 1, 0)").
			Scan(&next).Error
		if err != nil {
			return err
		}
		image.DisplayOrder = next
		return tx.Create(image).Error
	})
	return translate(err, "gallery image")
}

func (r *GalleryRepo) SetGalleryImageFeatured(ctx context.Context, id uuid.UUID, featured bool) (*models.GalleryImage, error) {
	result := r.db.WithContext(ctx).
		Model(&models.GalleryImage{}).
		Where("id = ?", id).
		Update("is_featured", featured)
	if result.Error != nil {
		return nil, translate(result.Error, "gallery image")
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound("gallery image")
	}
	return r.FindGalleryImage(ctx, id)
}

func (r *GalleryRepo) DeleteGalleryImage(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Delete(&models.GalleryImage{}, "id = ?", id).Error, "gallery image")
}

// MoveGalleryImage swaps the display_order of the image with its neighbour in
// direction. moved is false when the image is already at that end.
func (r *GalleryRepo) MoveGalleryImage(ctx context.Context, id uuid.UUID, direction models.MoveDirection) (moved bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var images []models.GalleryImage
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("display_order ASC").
			Find(&images).Error
		if err != nil {
			return err
		}

		index := -1
		for i := range images {
			if images[i].ID == id {
				index = i
				break
			}
		}
		if index < 0 {
			return errs.NewNotFound("gallery image")
		}
		partner, ok := models.SwapPartner(images, index, direction)
		if !ok {
			return nil
		}

		current, other := images[index], images[partner]
		if err := tx.Model(&current).UpdateColumn("display_order", other.DisplayOrder).Error; err != nil {
			return err
		}
		if err := tx.Model(&other).UpdateColumn("display_order", current.DisplayOrder).Error; err != nil {
			return err
		}
		moved = true
		return nil
	})
	return moved, translate(err, "gallery image")
}
