package repository

import (
	"context"
	"errors"

	"github.com/bodavargasprado/wedding-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGalleryRepository is a GORM implementation of GalleryRepository
type GormGalleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new GalleryRepository
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &GormGalleryRepository{db: db}
}

// "order" is a reserved word, so it always goes through clause.Column to get dialect quoting.
var orderColumn = clause.Column{Name: "order"}

func newestMediaFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func (r *GormGalleryRepository) ListSections(ctx context.Context, activeOnly bool) ([]models.GallerySection, error) {
	query := r.db.WithContext(ctx).Preload("Media", newestMediaFirst)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var sections []models.GallerySection
	if err := query.
		Order(clause.OrderByColumn{Column: orderColumn}).
		Order("id ASC").
		Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *GormGalleryRepository) FindSectionByID(ctx context.Context, id uint64) (*models.GallerySection, error) {
	var section models.GallerySection
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *GormGalleryRepository) FindSectionByName(ctx context.Context, name string) (*models.GallerySection, error) {
	var section models.GallerySection
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// CreateSection assigns max(order)+1, or 1 for the first section.
func (r *GormGalleryRepository) CreateSection(ctx context.Context, section *models.GallerySection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last models.GallerySection
		err := tx.Order(clause.OrderByColumn{Column: orderColumn, Desc: true}).Take(&last).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			section.Order = 1
		case err != nil:
			return err
		default:
			section.Order = last.Order + 1
		}

		return tx.Omit(clause.Associations).Create(section).Error
	})
}

func (r *GormGalleryRepository) UpdateSection(ctx context.Context, section *models.GallerySection) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(section).Error
}

// DeleteSection deletes media rows first, then the section, in a transaction
func (r *GormGalleryRepository) DeleteSection(ctx context.Context, id uint64) ([]models.GalleryMedia, error) {
	var media []models.GalleryMedia
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", id).Find(&media).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", id).Delete(&models.GalleryMedia{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.GallerySection{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return media, nil
}

func (r *GormGalleryRepository) CreateMedia(ctx context.Context, media *models.GalleryMedia) error {
	return r.db.WithContext(ctx).Create(media).Error
}

func (r *GormGalleryRepository) FindMediaByID(ctx context.Context, id uint64) (*models.GalleryMedia, error) {
	var media models.GalleryMedia
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&media).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *GormGalleryRepository) ListMedia(ctx context.Context, sectionID uint64) ([]models.GalleryMedia, error) {
	var media []models.GalleryMedia
	if err := newestMediaFirst(r.db.WithContext(ctx)).
		Where("section_id = ?", sectionID).
		Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (r *GormGalleryRepository) DeleteMedia(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GalleryMedia{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
