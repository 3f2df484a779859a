package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrConfirmConflict is returned when the invitation was already confirmed when the transaction ran.
	ErrConfirmConflict = errors.New("invitation repository: invitation already confirmed")
	// ErrMarkConfirmed is returned when flagging the invitation as confirmed fails.
	ErrMarkConfirmed = errors.New("invitation repository: mark confirmed failed")
	// ErrReplaceGuests is returned when clearing the previous guest list fails.
	ErrReplaceGuests = errors.New("invitation repository: clear guests failed")
	// ErrInsertGuests is returned when inserting the confirmed guest list fails.
	ErrInsertGuests = errors.New("invitation repository: insert guests failed")
)

// GormInvitationRepository is a GORM implementation of InvitationRepository
type GormInvitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository creates a new InvitationRepository
func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &GormInvitationRepository{db: db}
}

func preloadGuests(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

func (r *GormInvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(invitation).Error
}

func (r *GormInvitationRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Invitation{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormInvitationRepository) FindByCode(ctx context.Context, code string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.WithContext(ctx).Preload("Guests", preloadGuests).
		Where("code = ?", code).
		Take(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *GormInvitationRepository) FindByID(ctx context.Context, id string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := r.db.WithContext(ctx).Preload("Guests", preloadGuests).
		Where("id = ?", id).
		Take(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *GormInvitationRepository) List(ctx context.Context) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := r.db.WithContext(ctx).Preload("Guests", preloadGuests).
		Order("created_at DESC").
		Order("id DESC").
		Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *GormInvitationRepository) Update(ctx context.Context, invitation *models.Invitation, primaryGuestRow *models.Guest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(invitation).
			Select("primary_guest", "max_guests").
			Updates(invitation)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// mysql reports changed rows only, so an unchanged row also lands here
			var count int64
			if err := tx.Model(&models.Invitation{}).Where("id = ?", invitation.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		if primaryGuestRow == nil {
			return nil
		}
		return tx.Model(&models.Guest{}).
			Where("id = ? AND invitation_id = ?", primaryGuestRow.ID, invitation.ID).
			Update("full_name", primaryGuestRow.FullName).Error
	})
}

// Delete deletes an invitation and its guests in a transaction
func (r *GormInvitationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invitation_id = ?", id).Delete(&models.Guest{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Invitation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ConfirmWithGuests flips confirmed with a conditional update so only one concurrent caller wins,
// then replaces the guest list inside the same transaction.
func (r *GormInvitationRepository) ConfirmWithGuests(ctx context.Context, invitationID string, guests []models.Guest, confirmedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Invitation{}).
			Where("id = ? AND confirmed = ?", invitationID, false).
			Updates(map[string]interface{}{
				"confirmed":    true,
				"confirmed_at": confirmedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("%w: %v", ErrMarkConfirmed, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrConfirmConflict
		}

		if err := tx.Where("invitation_id = ?", invitationID).Delete(&models.Guest{}).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrReplaceGuests, err)
		}

		if len(guests) == 0 {
			return nil
		}
		// spaced timestamps keep the submitted order when guests are listed by created_at
		for i := range guests {
			guests[i].InvitationID = invitationID
			guests[i].CreatedAt = confirmedAt.Add(time.Duration(i) * time.Millisecond)
		}
		if err := tx.Create(&guests).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrInsertGuests, err)
		}

		return nil
	})
}

func (r *GormInvitationRepository) FindGuestByID(ctx context.Context, id string) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&guest).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *GormInvitationRepository) DeleteGuest(ctx context.Context, guest *models.Guest, decrementCapacity bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", guest.ID).Delete(&models.Guest{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if !decrementCapacity {
			return nil
		}
		return tx.Model(&models.Invitation{}).
			Where("id = ? AND max_guests > ?", guest.InvitationID, 1).
			UpdateColumn("max_guests", gorm.Expr("max_guests - ?", 1)).Error
	})
}

func (r *GormInvitationRepository) Totals(ctx context.Context) (*InvitationTotals, error) {
	db := r.db.WithContext(ctx)
	var totals InvitationTotals

	if err := db.Model(&models.Invitation{}).Count(&totals.TotalInvitations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Invitation{}).Where("confirmed = ?", true).Count(&totals.ConfirmedInvitations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Invitation{}).
		Select("COALESCE(SUM(max_guests), 0)").
		Row().
		Scan(&totals.TotalCapacity); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Guest{}).Count(&totals.ConfirmedGuests).Error; err != nil {
		return nil, err
	}

	return &totals, nil
}
