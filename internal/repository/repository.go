package repository

import (
	"context"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/models"
)

// InvitationRepository defines the interface for invitation and guest data access
type InvitationRepository interface {
	// Create inserts a new invitation
	Create(ctx context.Context, invitation *models.Invitation) error

	// ExistsByCode reports whether an invitation with code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// FindByCode finds an invitation by code with its guests
	FindByCode(ctx context.Context, code string) (*models.Invitation, error)

	// FindByID finds an invitation by ID with its guests
	FindByID(ctx context.Context, id string) (*models.Invitation, error)

	// List retrieves all invitations with guests, newest first
	List(ctx context.Context) ([]models.Invitation, error)

	// Update persists the scalar fields of an invitation. A non-nil primaryGuestRow
	// is renamed in the same transaction.
	Update(ctx context.Context, invitation *models.Invitation, primaryGuestRow *models.Guest) error

	// Delete deletes an invitation and its guests
	Delete(ctx context.Context, id string) error

	// ConfirmWithGuests marks the invitation confirmed and replaces its guest list atomically
	ConfirmWithGuests(ctx context.Context, invitationID string, guests []models.Guest, confirmedAt time.Time) error

	// FindGuestByID finds a single guest
	FindGuestByID(ctx context.Context, id string) (*models.Guest, error)

	// DeleteGuest removes a guest, optionally giving back one seat of capacity
	DeleteGuest(ctx context.Context, guest *models.Guest, decrementCapacity bool) error

	// Totals aggregates counters over every invitation
	Totals(ctx context.Context) (*InvitationTotals, error)
}

// InvitationTotals holds raw counters used by the statistics endpoint
type InvitationTotals struct {
	TotalInvitations     int64
	ConfirmedInvitations int64
	TotalCapacity        int64
	ConfirmedGuests      int64
}

// GalleryRepository defines the interface for gallery section and media data access
type GalleryRepository interface {
	// ListSections lists sections by display order with their media, newest media first
	ListSections(ctx context.Context, activeOnly bool) ([]models.GallerySection, error)

	// FindSectionByID finds a section without media
	FindSectionByID(ctx context.Context, id uint64) (*models.GallerySection, error)

	// FindSectionByName finds the first section with exactly name
	FindSectionByName(ctx context.Context, name string) (*models.GallerySection, error)

	// CreateSection inserts a section at the end of the display order
	CreateSection(ctx context.Context, section *models.GallerySection) error

	// UpdateSection persists the scalar fields of a section
	UpdateSection(ctx context.Context, section *models.GallerySection) error

	// DeleteSection deletes a section and its media rows, returning the removed media
	DeleteSection(ctx context.Context, id uint64) ([]models.GalleryMedia, error)

	// CreateMedia inserts a media row
	CreateMedia(ctx context.Context, media *models.GalleryMedia) error

	// FindMediaByID finds a media row
	FindMediaByID(ctx context.Context, id uint64) (*models.GalleryMedia, error)

	// ListMedia lists the media of a section, newest first
	ListMedia(ctx context.Context, sectionID uint64) ([]models.GalleryMedia, error)

	// DeleteMedia deletes a media row
	DeleteMedia(ctx context.Context, id uint64) error
}
