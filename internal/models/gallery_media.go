package models

import "time"

type MediaType string

const (
	MediaTypeImage MediaType = "IMAGE"
	MediaTypeVideo MediaType = "VIDEO"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

type GalleryMedia struct {
	ID        uint64    `gorm:"primarykey"`
	SectionID uint64    `gorm:"column:section_id;not null;index"`
	FilePath  string    `gorm:"column:file_path;type:varchar(512);not null"`
	PublicURL string    `gorm:"column:public_url;type:text;not null"`
	Type      MediaType `gorm:"type:varchar(10);not null"`
	Name      string    `gorm:"type:varchar(255)"`
	Size      int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (GalleryMedia) TableName() string {
	return "gallery_media"
}
