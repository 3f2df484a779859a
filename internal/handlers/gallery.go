package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bodavargasprado/wedding-api/internal/dto"
	apierrors "github.com/bodavargasprado/wedding-api/internal/errors"
	"github.com/bodavargasprado/wedding-api/internal/middleware"
	"github.com/bodavargasprado/wedding-api/internal/models"
	"github.com/bodavargasprado/wedding-api/internal/services"
	"github.com/gin-gonic/gin"
)

// multipart framing on top of the file itself
const multipartOverhead = 1 << 20

// GalleryHandler serves gallery sections and media.
type GalleryHandler struct {
	galleryService *services.GalleryService
}

// NewGalleryHandler creates a new GalleryHandler.
func NewGalleryHandler(galleryService *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
	}
}

func parseID(c *gin.Context, param, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

// ListSections returns active sections with their media.
func (h *GalleryHandler) ListSections(c *gin.Context) {
	sections, err := h.galleryService.ListPublicSections(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGallerySectionWithMediaDTOs(sections))
}

// ListAllSections returns every section, active or not.
func (h *GalleryHandler) ListAllSections(c *gin.Context) {
	sections, err := h.galleryService.ListAllSections(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGallerySectionWithMediaDTOs(sections))
}

func (h *GalleryHandler) CreateSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	section, err := h.galleryService.CreateSection(c.Request.Context(), services.CreateSectionInput{
		Name:        req.Name,
		Description: req.Description,
		AllowUpload: req.AllowUpload,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToGallerySectionDTO(*section))
}

func (h *GalleryHandler) UpdateSection(c *gin.Context) {
	id, ok := parseID(c, "id", "section")
	if !ok {
		return
	}

	var req dto.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateSectionInput{
		Name:        req.Name,
		Order:       req.Order,
		AllowUpload: req.AllowUpload,
		IsActive:    req.IsActive,
	}
	if req.Description.Set {
		input.Description = req.Description.Value
		input.ClearDescription = req.Description.Value == nil
	}

	section, err := h.galleryService.UpdateSection(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGallerySectionDTO(*section))
}

func (h *GalleryHandler) DeleteSection(c *gin.Context) {
	id, ok := parseID(c, "id", "section")
	if !ok {
		return
	}

	if err := h.galleryService.DeleteSection(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListMedia lists a section's media. Inactive sections are only visible to admins.
func (h *GalleryHandler) ListMedia(c *gin.Context) {
	sectionID, ok := parseID(c, "sectionId", "section")
	if !ok {
		return
	}

	media, err := h.galleryService.ListMediaBySection(c.Request.Context(), sectionID, middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToGalleryMediaDTOs(media))
}

// AddMedia registers a blob the client already uploaded to the object store.
func (h *GalleryHandler) AddMedia(c *gin.Context) {
	sectionID, ok := parseID(c, "sectionId", "section")
	if !ok {
		return
	}

	var req dto.AddMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	media, err := h.galleryService.AddMedia(c.Request.Context(), sectionID, services.AddMediaInput{
		FilePath:  req.FilePath,
		PublicURL: req.PublicURL,
		Type:      models.MediaType(req.Type),
		Name:      req.Name,
		Size:      int64(req.Size.Int(0)),
	}, middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToGalleryMediaDTO(*media))
}

// UploadMedia receives a multipart "file", stores it and registers it.
func (h *GalleryHandler) UploadMedia(c *gin.Context) {
	sectionID, ok := parseID(c, "sectionId", "section")
	if !ok {
		return
	}

	limit := h.galleryService.MaxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondServiceError(c, services.ErrFileTooLarge)
			return
		}
		apierrors.BadRequest(c, "file is required")
		return
	}

	file, err := header.Open()
	if err != nil {
		apierrors.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	media, err := h.galleryService.Upload(c.Request.Context(), sectionID, services.UploadInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, middleware.IsAdmin(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToGalleryMediaDTO(*media))
}

func (h *GalleryHandler) DeleteMedia(c *gin.Context) {
	id, ok := parseID(c, "mediaId", "media")
	if !ok {
		return
	}

	if err := h.galleryService.DeleteMedia(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SeedSections creates the default section when it is missing.
func (h *GalleryHandler) SeedSections(c *gin.Context) {
	section, created, err := h.galleryService.SeedDefaultSection(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "La sección ya existe"
	if created {
		message = "Sección de prueba creada exitosamente"
	}
	c.JSON(http.StatusOK, dto.SeedResponse{
		Message: message,
		Section: dto.ToGallerySectionDTO(*section),
	})
}
