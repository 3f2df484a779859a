package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/bodavargasprado/wedding-api/internal/models"
	"github.com/bodavargasprado/wedding-api/internal/repository"
	"github.com/bodavargasprado/wedding-api/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSectionNotFound       = errors.New("gallery section not found")
	ErrSectionNameRequired   = errors.New("section name is required")
	ErrMediaNotFound         = errors.New("media not found")
	ErrInvalidMediaType      = errors.New("media type must be IMAGE or VIDEO")
	ErrMediaLocationRequired = errors.New("file_path and public_url are required")
	ErrInvalidMediaSize      = errors.New("size cannot be negative")
	ErrUploadNotAllowed      = errors.New("uploads are not allowed for this section")
	ErrFileTooLarge          = errors.New("file exceeds the upload limit")
	ErrUnsupportedFileType   = errors.New("only image and video files are allowed")
	ErrStorageUnavailable    = errors.New("media storage is unavailable")
)

// GalleryService handles gallery sections, media metadata and blob lifecycle.
type GalleryService struct {
	repo           repository.GalleryRepository
	blobs          storage.BlobStore
	log            *zap.Logger
	maxUploadBytes int64
	now            func() time.Time

	cleanupFailures atomic.Int64
}

// NewGalleryService creates a new GalleryService.
func NewGalleryService(repo repository.GalleryRepository, blobs storage.BlobStore, maxUploadBytes int64, log *zap.Logger) *GalleryService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = constants.DefaultMaxUploadBytes
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GalleryService{
		repo:           repo,
		blobs:          blobs,
		log:            log,
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

// CreateSectionInput represents a new section. Unset flags default to
// allow_upload=true and is_active=false.
type CreateSectionInput struct {
	Name        string
	Description *string
	AllowUpload *bool
	IsActive    *bool
}

// UpdateSectionInput only changes the fields that are set.
// ClearDescription sets the description to null.
type UpdateSectionInput struct {
	Name             *string
	Description      *string
	ClearDescription bool
	Order            *int
	AllowUpload      *bool
	IsActive         *bool
}

// AddMediaInput is metadata for a blob that already lives in the store.
type AddMediaInput struct {
	FilePath  string
	PublicURL string
	Type      models.MediaType
	Name      string
	Size      int64
}

// UploadInput is a file received by the API that still has to be stored.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (s *GalleryService) ListPublicSections(ctx context.Context) ([]models.GallerySection, error) {
	sections, err := s.repo.ListSections(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

func (s *GalleryService) ListAllSections(ctx context.Context) ([]models.GallerySection, error) {
	sections, err := s.repo.ListSections(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}
	return sections, nil
}

// CreateSection appends a section after the current last one.
func (s *GalleryService) CreateSection(ctx context.Context, input CreateSectionInput) (*models.GallerySection, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSectionNameRequired
	}

	section := &models.GallerySection{
		Name:        name,
		Description: normalizeDescription(input.Description),
		AllowUpload: true,
		IsActive:    false,
	}
	if input.AllowUpload != nil {
		section.AllowUpload = *input.AllowUpload
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}

	if err := s.repo.CreateSection(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}
	section.Media = []models.GalleryMedia{}
	return section, nil
}

func (s *GalleryService) UpdateSection(ctx context.Context, id uint64, input UpdateSectionInput) (*models.GallerySection, error) {
	section, err := s.findSection(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrSectionNameRequired
		}
		section.Name = name
	}
	if input.ClearDescription {
		section.Description = nil
	} else if input.Description != nil {
		section.Description = normalizeDescription(input.Description)
	}
	if input.Order != nil {
		section.Order = *input.Order
	}
	if input.AllowUpload != nil {
		section.AllowUpload = *input.AllowUpload
	}
	if input.IsActive != nil {
		section.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateSection(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to update section: %w", err)
	}
	return section, nil
}

// DeleteSection removes the section and its media rows, then cleans up the blobs.
func (s *GalleryService) DeleteSection(ctx context.Context, id uint64) error {
	media, err := s.repo.DeleteSection(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return fmt.Errorf("failed to delete section: %w", err)
	}

	for i := range media {
		s.cleanupBlob(ctx, s.mediaKey(&media[i]))
	}
	return nil
}

// ListMediaBySection fails with ErrSectionNotFound for unknown sections.
// Inactive sections are reported the same way unless asAdmin is set.
func (s *GalleryService) ListMediaBySection(ctx context.Context, sectionID uint64, asAdmin bool) ([]models.GalleryMedia, error) {
	section, err := s.findSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	if !asAdmin && !section.IsActive {
		return nil, ErrSectionNotFound
	}

	media, err := s.repo.ListMedia(ctx, sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return media, nil
}

// AddMedia registers metadata for an uploaded blob.
// Non-admin callers need an active section that accepts uploads.
func (s *GalleryService) AddMedia(ctx context.Context, sectionID uint64, input AddMediaInput, asAdmin bool) (*models.GalleryMedia, error) {
	if _, err := s.uploadableSection(ctx, sectionID, asAdmin); err != nil {
		return nil, err
	}

	if !input.Type.Valid() {
		return nil, ErrInvalidMediaType
	}
	if strings.TrimSpace(input.FilePath) == "" || strings.TrimSpace(input.PublicURL) == "" {
		return nil, ErrMediaLocationRequired
	}
	if input.Size < 0 {
		return nil, ErrInvalidMediaSize
	}

	media := &models.GalleryMedia{
		SectionID: sectionID,
		FilePath:  input.FilePath,
		PublicURL: input.PublicURL,
		Type:      input.Type,
		Name:      input.Name,
		Size:      input.Size,
	}
	if err := s.repo.CreateMedia(ctx, media); err != nil {
		return nil, fmt.Errorf("failed to add media: %w", err)
	}
	return media, nil
}

// Upload stores the blob first and registers it afterwards. A failed
// registration removes the blob again so no orphan is left behind.
func (s *GalleryService) Upload(ctx context.Context, sectionID uint64, input UploadInput, asAdmin bool) (*models.GalleryMedia, error) {
	if _, err := s.uploadableSection(ctx, sectionID, asAdmin); err != nil {
		return nil, err
	}
	if input.Size > s.maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	mediaType, ok := mediaTypeFor(input.ContentType)
	if !ok {
		return nil, ErrUnsupportedFileType
	}

	key := fmt.Sprintf("%d/%d_%s%s",
		sectionID,
		s.now().UnixMilli(),
		uuid.NewString(),
		strings.ToLower(filepath.Ext(input.FileName)),
	)

	publicURL, err := s.blobs.Put(ctx, key, input.Body, input.Size, input.ContentType)
	if err != nil {
		s.log.Error("media upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	media := &models.GalleryMedia{
		SectionID: sectionID,
		FilePath:  key,
		PublicURL: publicURL,
		Type:      mediaType,
		Name:      input.FileName,
		Size:      input.Size,
	}
	if err := s.repo.CreateMedia(ctx, media); err != nil {
		s.cleanupBlob(ctx, key)
		return nil, fmt.Errorf("failed to register media: %w", err)
	}
	return media, nil
}

// DeleteMedia removes the blob best effort, then always removes the row.
func (s *GalleryService) DeleteMedia(ctx context.Context, id uint64) error {
	media, err := s.repo.FindMediaByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return fmt.Errorf("failed to find media: %w", err)
	}

	s.cleanupBlob(ctx, s.mediaKey(media))

	if err := s.repo.DeleteMedia(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return nil
}

// SeedDefaultSection creates the "Ceremonia" section unless one already exists.
func (s *GalleryService) SeedDefaultSection(ctx context.Context) (*models.GallerySection, bool, error) {
	existing, err := s.repo.FindSectionByName(ctx, constants.DefaultSectionName)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up default section: %w", err)
	}

	description := constants.DefaultSectionDescription
	active := true
	section, err := s.CreateSection(ctx, CreateSectionInput{
		Name:        constants.DefaultSectionName,
		Description: &description,
		IsActive:    &active,
	})
	if err != nil {
		return nil, false, err
	}
	return section, true, nil
}

// MaxUploadBytes is the largest file Upload accepts.
func (s *GalleryService) MaxUploadBytes() int64 {
	return s.maxUploadBytes
}

// BlobCleanupFailures counts blobs that could not be removed since start.
func (s *GalleryService) BlobCleanupFailures() int64 {
	return s.cleanupFailures.Load()
}

func (s *GalleryService) findSection(ctx context.Context, id uint64) (*models.GallerySection, error) {
	section, err := s.repo.FindSectionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("failed to find section: %w", err)
	}
	return section, nil
}

func (s *GalleryService) uploadableSection(ctx context.Context, id uint64, asAdmin bool) (*models.GallerySection, error) {
	section, err := s.findSection(ctx, id)
	if err != nil {
		return nil, err
	}
	if !asAdmin && !(section.IsActive && section.AllowUpload) {
		return nil, ErrUploadNotAllowed
	}
	return section, nil
}

func (s *GalleryService) mediaKey(media *models.GalleryMedia) string {
	if media.FilePath != "" {
		return media.FilePath
	}
	return s.blobs.KeyFromURL(media.PublicURL)
}

// cleanupBlob never fails the caller; failures are logged and counted for reconciliation.
func (s *GalleryService) cleanupBlob(ctx context.Context, key string) {
	if key == "" {
		s.cleanupFailures.Add(1)
		s.log.Warn(constants.BlobCleanupFailedEvent, zap.String("reason", "missing object key"))
		return
	}
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.cleanupFailures.Add(1)
		s.log.Warn(constants.BlobCleanupFailedEvent, zap.String("key", key), zap.Error(err))
	}
}

// normalizeDescription stores blank descriptions as null.
func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mediaTypeFor(contentType string) (models.MediaType, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaTypeImage, true
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaTypeVideo, true
	default:
		return "", false
	}
}
