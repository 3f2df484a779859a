package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bodavargasprado/wedding-api/internal/models"
	"github.com/bodavargasprado/wedding-api/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrAlreadyConfirmed = errors.New("invitation is already confirmed")
	ErrNoGuests         = errors.New("at least one guest is required")
	ErrTooManyGuests    = errors.New("guest list exceeds the invitation capacity")
)

// GuestInput is one submitted attendee.
type GuestInput struct {
	FullName string
}

// Confirm runs the RSVP transition UNCONFIRMED -> CONFIRMED.
// Blank names are dropped and the primary guest is prepended when missing.
// The guest list replacement and the confirmed flag are written in one transaction.
func (s *InvitationService) Confirm(ctx context.Context, code string, guests []GuestInput) (*models.Invitation, error) {
	invitation, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if invitation.Confirmed {
		return nil, ErrAlreadyConfirmed
	}

	rows := buildGuestRows(invitation.PrimaryGuest, guests)
	if len(rows) == 0 {
		return nil, ErrNoGuests
	}
	if len(rows) > invitation.MaxGuests {
		return nil, fmt.Errorf("%w: %d guests for %d seats", ErrTooManyGuests, len(rows), invitation.MaxGuests)
	}

	if err := s.repo.ConfirmWithGuests(ctx, invitation.ID, rows, s.now()); err != nil {
		if errors.Is(err, repository.ErrConfirmConflict) {
			return nil, ErrAlreadyConfirmed
		}
		return nil, fmt.Errorf("failed to confirm invitation: %w", err)
	}

	s.log.Info("invitation confirmed",
		zap.String("invitation_id", invitation.ID),
		zap.String("code", invitation.Code),
		zap.Int("guests", len(rows)),
	)

	return s.findByID(ctx, invitation.ID)
}

func buildGuestRows(primaryGuest string, guests []GuestInput) []models.Guest {
	rows := make([]models.Guest, 0, len(guests)+1)
	hasPrimary := false
	for _, g := range guests {
		name := strings.TrimSpace(g.FullName)
		if name == "" {
			continue
		}
		if sameName(name, primaryGuest) {
			hasPrimary = true
		}
		rows = append(rows, models.Guest{FullName: name})
	}

	if !hasPrimary && strings.TrimSpace(primaryGuest) != "" {
		rows = append([]models.Guest{{FullName: strings.TrimSpace(primaryGuest)}}, rows...)
	}
	return rows
}
