package database

import (
	"context"

	"gorm.io/gorm"
)

type Database struct {
	db           *gorm.DB
	postRepo     *PostRepo
	tagRepo      *TagRepo
	categoryRepo *CategoryRepo
	galleryRepo  *GalleryRepo
	contactRepo  *ContactRepo
	aiLogRepo    *AILogRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:           db,
		postRepo:     NewPostRepo(db),
		tagRepo:      NewTagRepo(db),
		categoryRepo: NewCategoryRepo(db),
		galleryRepo:  NewGalleryRepo(db),
		contactRepo:  NewContactRepo(db),
		aiLogRepo:    NewAILogRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) GalleryRepo() *GalleryRepo {
	return d.galleryRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) AILogRepo() *AILogRepo {
	return d.aiLogRepo
}

// Ping checks the primary connection with the same SELECT 1 used at startup.
func (d Database) Ping(ctx context.Context) error {
	return d.db.WithContext(ctx).Exec("SELECT 1").Error
}
