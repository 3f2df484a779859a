package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bodavargasprado/wedding-api/internal/constants"
	"github.com/bodavargasprado/wedding-api/internal/models"
	"github.com/bodavargasprado/wedding-api/internal/repository"
	"github.com/bodavargasprado/wedding-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvitationNotFound       = errors.New("invitation not found")
	ErrPrimaryGuestRequired     = errors.New("primary guest is required")
	ErrInvalidMaxGuests         = errors.New("maxGuests must be at least 1")
	ErrMaxGuestsBelowConfirmed  = errors.New("maxGuests cannot be lower than the number of confirmed guests")
	ErrDuplicateCode            = errors.New("could not generate a unique invitation code")
	ErrGuestNotFound            = errors.New("guest not found")
	ErrCannotRemovePrimaryGuest = errors.New("cannot remove primary guest")
)

// CodeGenerator derives an invitation code from the primary guest's name.
type CodeGenerator func(primaryGuest string) (string, error)

// InvitationOptions carries the configurable invitation policies.
type InvitationOptions struct {
	CodeAttempts  int
	RemovalPolicy string
	GuestCapacity int
}

// InvitationService handles invitation, confirmation and statistics business logic.
type InvitationService struct {
	repo    repository.InvitationRepository
	log     *zap.Logger
	opts    InvitationOptions
	codeGen CodeGenerator
	now     func() time.Time
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(repo repository.InvitationRepository, opts InvitationOptions, log *zap.Logger) *InvitationService {
	if opts.CodeAttempts < 1 {
		opts.CodeAttempts = constants.DefaultCodeGenerationAttempts
	}
	if opts.RemovalPolicy == "" {
		opts.RemovalPolicy = constants.GuestRemovalKeep
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &InvitationService{
		repo:    repo,
		log:     log,
		opts:    opts,
		codeGen: utils.GenerateInviteCode,
		now:     time.Now,
	}
}

// CreateInvitationInput represents parameters to create an invitation.
// MaxGuests below 1 falls back to a single seat.
type CreateInvitationInput struct {
	PrimaryGuest string
	MaxGuests    int
}

// UpdateInvitationInput only changes the fields that are set.
type UpdateInvitationInput struct {
	PrimaryGuest *string
	MaxGuests    *int
}

// InvitationStats is the dashboard summary.
type InvitationStats struct {
	TotalInvitations     int64
	ConfirmedInvitations int64
	TotalGuests          int64
	ConfirmedGuests      int64
	ConfirmedPercentage  int
	GuestCapacity        int
}

// Create stores a new unconfirmed invitation, retrying the code on collisions.
func (s *InvitationService) Create(ctx context.Context, input CreateInvitationInput) (*models.Invitation, error) {
	primaryGuest := strings.TrimSpace(input.PrimaryGuest)
	if primaryGuest == "" {
		return nil, ErrPrimaryGuestRequired
	}

	maxGuests := input.MaxGuests
	if maxGuests < 1 {
		maxGuests = constants.DefaultMaxGuests
	}

	for attempt := 1; attempt <= s.opts.CodeAttempts; attempt++ {
		code, err := s.codeGen(primaryGuest)
		if err != nil {
			return nil, fmt.Errorf("failed to generate invitation code: %w", err)
		}

		exists, err := s.repo.ExistsByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to check invitation code: %w", err)
		}
		if exists {
			s.log.Debug("invitation code collision", zap.String("code", code), zap.Int("attempt", attempt))
			continue
		}

		invitation := &models.Invitation{
			Code:         code,
			PrimaryGuest: primaryGuest,
			MaxGuests:    maxGuests,
		}
		if err := s.repo.Create(ctx, invitation); err != nil {
			// lost a race against a concurrent insert of the same code
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return nil, fmt.Errorf("failed to create invitation: %w", err)
		}

		invitation.Guests = []models.Guest{}
		return invitation, nil
	}

	s.log.Warn("invitation code generation exhausted",
		zap.String("primary_guest", primaryGuest),
		zap.Int("attempts", s.opts.CodeAttempts),
	)
	return nil, ErrDuplicateCode
}

// GetByCode returns the invitation with its guests.
func (s *InvitationService) GetByCode(ctx context.Context, code string) (*models.Invitation, error) {
	invitation, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return invitation, nil
}

// ValidateCode only reports whether code exists.
func (s *InvitationService) ValidateCode(ctx context.Context, code string) (bool, error) {
	if strings.TrimSpace(code) == "" {
		return false, nil
	}
	exists, err := s.repo.ExistsByCode(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to validate invitation code: %w", err)
	}
	return exists, nil
}

// List returns every invitation, newest first.
func (s *InvitationService) List(ctx context.Context) ([]models.Invitation, error) {
	invitations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}

// Update applies a partial update. The code never changes.
func (s *InvitationService) Update(ctx context.Context, id string, input UpdateInvitationInput) (*models.Invitation, error) {
	invitation, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// the stored guest row of the primary guest follows a rename
	var primaryGuestRow *models.Guest
	if input.PrimaryGuest != nil {
		primaryGuest := strings.TrimSpace(*input.PrimaryGuest)
		if primaryGuest == "" {
			return nil, ErrPrimaryGuestRequired
		}
		if primaryGuest != invitation.PrimaryGuest {
			for i := range invitation.Guests {
				if sameName(invitation.Guests[i].FullName, invitation.PrimaryGuest) {
					invitation.Guests[i].FullName = primaryGuest
					primaryGuestRow = &invitation.Guests[i]
					break
				}
			}
		}
		invitation.PrimaryGuest = primaryGuest
	}
	if input.MaxGuests != nil {
		if *input.MaxGuests < 1 {
			return nil, ErrInvalidMaxGuests
		}
		if *input.MaxGuests < len(invitation.Guests) {
			return nil, ErrMaxGuestsBelowConfirmed
		}
		invitation.MaxGuests = *input.MaxGuests
	}

	if err := s.repo.Update(ctx, invitation, primaryGuestRow); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}
	return invitation, nil
}

// Delete removes an invitation together with its guests.
func (s *InvitationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvitationNotFound
		}
		return fmt.Errorf("failed to delete invitation: %w", err)
	}
	return nil
}

// DeleteGuest removes a single confirmed guest. The primary guest cannot be removed.
// With the decrement policy the invitation gives back one seat, never going below 1.
func (s *InvitationService) DeleteGuest(ctx context.Context, guestID string) error {
	guest, err := s.repo.FindGuestByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGuestNotFound
		}
		return fmt.Errorf("failed to find guest: %w", err)
	}

	invitation, err := s.findByID(ctx, guest.InvitationID)
	if err != nil {
		return err
	}
	if sameName(guest.FullName, invitation.PrimaryGuest) {
		return ErrCannotRemovePrimaryGuest
	}

	decrement := s.opts.RemovalPolicy == constants.GuestRemovalDecrement
	if err := s.repo.DeleteGuest(ctx, guest, decrement); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGuestNotFound
		}
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	return nil
}

// Stats is recomputed from the store on every call.
func (s *InvitationService) Stats(ctx context.Context) (*InvitationStats, error) {
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	percentage := 0
	if totals.TotalCapacity > 0 {
		percentage = int(math.Round(float64(totals.ConfirmedGuests) / float64(totals.TotalCapacity) * 100))
	}

	return &InvitationStats{
		TotalInvitations:     totals.TotalInvitations,
		ConfirmedInvitations: totals.ConfirmedInvitations,
		TotalGuests:          totals.TotalCapacity,
		ConfirmedGuests:      totals.ConfirmedGuests,
		ConfirmedPercentage:  percentage,
		GuestCapacity:        s.opts.GuestCapacity,
	}, nil
}

func (s *InvitationService) findByID(ctx context.Context, id string) (*models.Invitation, error) {
	invitation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}
	return invitation, nil
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
