package dto

import (
	"time"

	"github.com/bodavargasprado/wedding-api/internal/models"
)

// 64-bit ids travel as strings so JavaScript clients do not lose precision.

// GalleryMediaDTO represents a media item
type GalleryMediaDTO struct {
	ID        uint64           `json:"id,string"`
	SectionID uint64           `json:"section_id,string"`
	FilePath  string           `json:"file_path"`
	PublicURL string           `json:"public_url"`
	Type      models.MediaType `json:"type"`
	Name      string           `json:"name"`
	Size      int64            `json:"size"`
	CreatedAt time.Time        `json:"created_at"`
}

// GallerySectionDTO represents a section
type GallerySectionDTO struct {
	ID          uint64    `json:"id,string"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Order       int       `json:"order"`
	AllowUpload bool      `json:"allow_upload"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GallerySectionWithMediaDTO represents a section together with its media
type GallerySectionWithMediaDTO struct {
	GallerySectionDTO
	Media []GalleryMediaDTO `json:"media"`
}

// SeedResponse reports the default section
type SeedResponse struct {
	Message string            `json:"message"`
	Section GallerySectionDTO `json:"section"`
}

func ToGalleryMediaDTO(media models.GalleryMedia) GalleryMediaDTO {
	return GalleryMediaDTO{
		ID:        media.ID,
		SectionID: media.SectionID,
		FilePath:  media.FilePath,
		PublicURL: media.PublicURL,
		Type:      media.Type,
		Name:      media.Name,
		Size:      media.Size,
		CreatedAt: media.CreatedAt,
	}
}

func ToGalleryMediaDTOs(media []models.GalleryMedia) []GalleryMediaDTO {
	result := make([]GalleryMediaDTO, len(media))
	for i, m := range media {
		result[i] = ToGalleryMediaDTO(m)
	}
	return result
}

func ToGallerySectionDTO(section models.GallerySection) GallerySectionDTO {
	return GallerySectionDTO{
		ID:          section.ID,
		Name:        section.Name,
		Description: section.Description,
		Order:       section.Order,
		AllowUpload: section.AllowUpload,
		IsActive:    section.IsActive,
		CreatedAt:   section.CreatedAt,
		UpdatedAt:   section.UpdatedAt,
	}
}

func ToGallerySectionWithMediaDTOs(sections []models.GallerySection) []GallerySectionWithMediaDTO {
	result := make([]GallerySectionWithMediaDTO, len(sections))
	for i, section := range sections {
		result[i] = GallerySectionWithMediaDTO{
			GallerySectionDTO: ToGallerySectionDTO(section),
			Media:             ToGalleryMediaDTOs(section.Media),
		}
	}
	return result
}
