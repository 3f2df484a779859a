package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/bodavargasprado/wedding-api/internal/models"
	"github.com/bodavargasprado/wedding-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type GalleryServiceSuite struct {
	suite.Suite
	db    *gorm.DB
	blobs *fakeBlobStore
	svc   *GalleryService
	ctx   context.Context
}

func TestGalleryServiceSuite(t *testing.T) {
	suite.Run(t, new(GalleryServiceSuite))
}

func (s *GalleryServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.blobs = newFakeBlobStore()
	s.svc = NewGalleryService(repository.NewGalleryRepository(s.db), s.blobs, 1024, nil)
	s.ctx = context.Background()
}

func (s *GalleryServiceSuite) section(name string, active, allowUpload bool) *models.GallerySection {
	section, err := s.svc.CreateSection(s.ctx, CreateSectionInput{
		Name:        name,
		IsActive:    &active,
		AllowUpload: &allowUpload,
	})
	s.Require().NoError(err)
	return section
}

func (s *GalleryServiceSuite) addMedia(sectionID uint64, key string) *models.GalleryMedia {
	media, err := s.svc.AddMedia(s.ctx, sectionID, AddMediaInput{
		FilePath:  key,
		PublicURL: "https://cdn.test/object/public/wedding-gallery/" + key,
		Type:      models.MediaTypeImage,
		Name:      "foto.jpg",
		Size:      42,
	}, true)
	s.Require().NoError(err)
	return media
}

func (s *GalleryServiceSuite) TestCreateSection_Defaults() {
	section, err := s.svc.CreateSection(s.ctx, CreateSectionInput{Name: "  Fiesta  "})
	s.Require().NoError(err)

	s.Equal("Fiesta", section.Name)
	s.True(section.AllowUpload)
	s.False(section.IsActive)
	s.Equal(1, section.Order)
	s.Nil(section.Description)
}

func (s *GalleryServiceSuite) TestCreateSection_RequiresName() {
	_, err := s.svc.CreateSection(s.ctx, CreateSectionInput{Name: "   "})
	s.ErrorIs(err, ErrSectionNameRequired)
}

func (s *GalleryServiceSuite) TestCreateSection_OrderIsNeverReused() {
	first := s.section("Uno", true, true)
	second := s.section("Dos", true, true)
	third := s.section("Tres", true, true)
	s.Equal([]int{1, 2, 3}, []int{first.Order, second.Order, third.Order})

	s.Require().NoError(s.svc.DeleteSection(s.ctx, second.ID))

	fourth := s.section("Cuatro", true, true)
	s.Equal(4, fourth.Order)
}

func (s *GalleryServiceSuite) TestListPublicSections_OnlyActiveOrdered() {
	hidden := s.section("Oculta", false, true)
	b := s.section("B", true, true)
	a := s.section("A", true, true)

	order := 0
	_, err := s.svc.UpdateSection(s.ctx, a.ID, UpdateSectionInput{Order: &order})
	s.Require().NoError(err)

	older := s.addMedia(b.ID, "b/old.jpg")
	newer := s.addMedia(b.ID, "b/new.jpg")

	public, err := s.svc.ListPublicSections(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(public, 2)
	s.Equal(a.ID, public[0].ID)
	s.Equal(b.ID, public[1].ID)
	s.Require().Len(public[1].Media, 2)
	s.Equal(newer.ID, public[1].Media[0].ID)
	s.Equal(older.ID, public[1].Media[1].ID)

	all, err := s.svc.ListAllSections(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
	s.Equal(hidden.ID, all[1].ID)
}

func (s *GalleryServiceSuite) TestUpdateSection_PartialFields() {
	section := s.section("Boda", false, true)
	description := "  Fotos de la fiesta "
	active := true

	updated, err := s.svc.UpdateSection(s.ctx, section.ID, UpdateSectionInput{
		Description: &description,
		IsActive:    &active,
	})
	s.Require().NoError(err)
	s.Equal("Boda", updated.Name)
	s.Require().NotNil(updated.Description)
	s.Equal("Fotos de la fiesta", *updated.Description)
	s.True(updated.IsActive)
	s.True(updated.AllowUpload)
	s.False(updated.UpdatedAt.Before(section.UpdatedAt))

	cleared, err := s.svc.UpdateSection(s.ctx, section.ID, UpdateSectionInput{ClearDescription: true})
	s.Require().NoError(err)
	s.Nil(cleared.Description)

	blank := " "
	_, err = s.svc.UpdateSection(s.ctx, section.ID, UpdateSectionInput{Name: &blank})
	s.ErrorIs(err, ErrSectionNameRequired)

	_, err = s.svc.UpdateSection(s.ctx, 9999, UpdateSectionInput{IsActive: &active})
	s.ErrorIs(err, ErrSectionNotFound)
}

func (s *GalleryServiceSuite) TestDeleteSection_RemovesMediaAndBlobs() {
	section := s.section("Boda", true, true)
	s.addMedia(section.ID, "1/a.jpg")
	s.addMedia(section.ID, "1/b.jpg")

	s.Require().NoError(s.svc.DeleteSection(s.ctx, section.ID))

	var count int64
	s.Require().NoError(s.db.Model(&models.GalleryMedia{}).Count(&count).Error)
	s.Zero(count)
	s.ElementsMatch([]string{"1/a.jpg", "1/b.jpg"}, s.blobs.deleted)

	_, err := s.svc.ListMediaBySection(s.ctx, section.ID, true)
	s.ErrorIs(err, ErrSectionNotFound)

	s.ErrorIs(s.svc.DeleteSection(s.ctx, section.ID), ErrSectionNotFound)
}

func (s *GalleryServiceSuite) TestListMediaBySection_HidesInactiveSections() {
	section := s.section("Privada", false, true)
	s.addMedia(section.ID, "1/a.jpg")

	_, err := s.svc.ListMediaBySection(s.ctx, section.ID, false)
	s.ErrorIs(err, ErrSectionNotFound)

	media, err := s.svc.ListMediaBySection(s.ctx, section.ID, true)
	s.Require().NoError(err)
	s.Len(media, 1)
}

func (s *GalleryServiceSuite) TestDeleteSection_BlobFailureDoesNotBlock() {
	section := s.section("Boda", true, true)
	s.addMedia(section.ID, "1/a.jpg")
	s.blobs.deleteErr = errors.New("storage down")

	s.Require().NoError(s.svc.DeleteSection(s.ctx, section.ID))
	s.Equal(int64(1), s.svc.BlobCleanupFailures())
}

func (s *GalleryServiceSuite) TestAddMedia_Validation() {
	section := s.section("Boda", true, true)

	_, err := s.svc.AddMedia(s.ctx, section.ID, AddMediaInput{
		FilePath: "k", PublicURL: "u", Type: "AUDIO",
	}, false)
	s.ErrorIs(err, ErrInvalidMediaType)

	_, err = s.svc.AddMedia(s.ctx, section.ID, AddMediaInput{Type: models.MediaTypeVideo}, false)
	s.ErrorIs(err, ErrMediaLocationRequired)

	_, err = s.svc.AddMedia(s.ctx, 9999, AddMediaInput{
		FilePath: "k", PublicURL: "u", Type: models.MediaTypeImage,
	}, false)
	s.ErrorIs(err, ErrSectionNotFound)
}

func (s *GalleryServiceSuite) TestAddMedia_RespectsUploadFlags() {
	closed := s.section("Cerrada", true, false)
	inactive := s.section("Inactiva", false, true)
	input := AddMediaInput{FilePath: "k", PublicURL: "u", Type: models.MediaTypeImage}

	_, err := s.svc.AddMedia(s.ctx, closed.ID, input, false)
	s.ErrorIs(err, ErrUploadNotAllowed)
	_, err = s.svc.AddMedia(s.ctx, inactive.ID, input, false)
	s.ErrorIs(err, ErrUploadNotAllowed)

	_, err = s.svc.AddMedia(s.ctx, closed.ID, input, true)
	s.NoError(err)
}

func (s *GalleryServiceSuite) TestUpload_StoresBlobThenMetadata() {
	section := s.section("Boda", true, true)

	media, err := s.svc.Upload(s.ctx, section.ID, UploadInput{
		FileName:    "Foto.JPG",
		ContentType: "image/jpeg",
		Size:        5,
		Body:        strings.NewReader("bytes"),
	}, false)
	s.Require().NoError(err)

	s.Equal(models.MediaTypeImage, media.Type)
	s.True(strings.HasPrefix(media.FilePath, "1/"))
	s.True(strings.HasSuffix(media.FilePath, ".jpg"))
	s.Equal("https://cdn.test/object/public/wedding-gallery/"+media.FilePath, media.PublicURL)
	s.Contains(s.blobs.objects, media.FilePath)
}

func (s *GalleryServiceSuite) TestUpload_Rejections() {
	section := s.section("Boda", true, true)

	_, err := s.svc.Upload(s.ctx, section.ID, UploadInput{
		FileName: "notes.txt", ContentType: "text/plain", Size: 3, Body: strings.NewReader("abc"),
	}, false)
	s.ErrorIs(err, ErrUnsupportedFileType)

	_, err = s.svc.Upload(s.ctx, section.ID, UploadInput{
		FileName: "big.mp4", ContentType: "video/mp4", Size: 2048, Body: strings.NewReader("x"),
	}, false)
	s.ErrorIs(err, ErrFileTooLarge)
}

func (s *GalleryServiceSuite) TestUpload_StorageFailureRegistersNothing() {
	section := s.section("Boda", true, true)
	s.blobs.putErr = errors.New("timeout")

	_, err := s.svc.Upload(s.ctx, section.ID, UploadInput{
		FileName: "a.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x"),
	}, false)
	s.ErrorIs(err, ErrStorageUnavailable)

	var count int64
	s.Require().NoError(s.db.Model(&models.GalleryMedia{}).Count(&count).Error)
	s.Zero(count)
}

func (s *GalleryServiceSuite) TestUpload_RegistrationFailureRemovesBlob() {
	section := s.section("Boda", true, true)
	s.Require().NoError(s.db.Callback().Create().Before("gorm:create").Register("test:fail_media", func(tx *gorm.DB) {
		if tx.Statement.Table == "gallery_media" {
			_ = tx.AddError(errors.New("insert failed"))
		}
	}))

	_, err := s.svc.Upload(s.ctx, section.ID, UploadInput{
		FileName: "a.png", ContentType: "image/png", Size: 1, Body: strings.NewReader("x"),
	}, false)
	s.Require().Error(err)
	s.Empty(s.blobs.objects)
	s.Len(s.blobs.deleted, 1)
}

func (s *GalleryServiceSuite) TestDeleteMedia() {
	section := s.section("Boda", true, true)
	media := s.addMedia(section.ID, "1/a.jpg")
	s.blobs.deleteErr = errors.New("storage down")

	s.Require().NoError(s.svc.DeleteMedia(s.ctx, media.ID))
	s.Equal([]string{"1/a.jpg"}, s.blobs.deleted)
	s.Equal(int64(1), s.svc.BlobCleanupFailures())

	s.ErrorIs(s.svc.DeleteMedia(s.ctx, media.ID), ErrMediaNotFound)
}

func (s *GalleryServiceSuite) TestDeleteMedia_KeyFromURLWhenPathMissing() {
	section := s.section("Boda", true, true)
	media := s.addMedia(section.ID, "1/a.jpg")
	s.Require().NoError(s.db.Model(&models.GalleryMedia{}).Where("id = ?", media.ID).Update("file_path", "").Error)

	s.Require().NoError(s.svc.DeleteMedia(s.ctx, media.ID))
	s.Equal([]string{"1/a.jpg"}, s.blobs.deleted)
}

func (s *GalleryServiceSuite) TestSeedDefaultSection_Idempotent() {
	first, created, err := s.svc.SeedDefaultSection(s.ctx)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(constants.DefaultSectionName, first.Name)
	s.Require().NotNil(first.Description)
	s.Equal(constants.DefaultSectionDescription, *first.Description)

	second, created, err := s.svc.SeedDefaultSection(s.ctx)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.ID, second.ID)

	all, err := s.svc.ListAllSections(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func TestMediaTypeFor(t *testing.T) {
	mt, ok := mediaTypeFor("image/webp")
	require.True(t, ok)
	assert.Equal(t, models.MediaTypeImage, mt)

	mt, ok = mediaTypeFor("video/quicktime")
	require.True(t, ok)
	assert.Equal(t, models.MediaTypeVideo, mt)

	_, ok = mediaTypeFor("application/pdf")
	assert.False(t, ok)
}
