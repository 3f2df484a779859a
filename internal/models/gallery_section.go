package models

import "time"

type GallerySection struct {
	ID          uint64    `gorm:"primarykey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description *string   `gorm:"type:text"`
	Order       int       `gorm:"column:order;not null"`
	AllowUpload bool      `gorm:"column:allow_upload;not null"`
	IsActive    bool      `gorm:"column:is_active;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`

	// Relations
	Media []GalleryMedia `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

func (GallerySection) TableName() string {
	return "gallery_sections"
}
