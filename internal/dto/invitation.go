package dto

import (
	"time"

	"github.com/bodavargasprado/wedding-api/internal/models"
	"github.com/bodavargasprado/wedding-api/internal/services"
)

// GuestDTO represents a confirmed attendee
type GuestDTO struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	InvitationID string    `json:"invitationId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// InvitationDTO represents an invitation with its guests
type InvitationDTO struct {
	ID           string     `json:"id"`
	Code         string     `json:"code"`
	PrimaryGuest string     `json:"primaryGuest"`
	MaxGuests    int        `json:"maxGuests"`
	Confirmed    bool       `json:"confirmed"`
	ConfirmedAt  *time.Time `json:"confirmedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	Guests       []GuestDTO `json:"guests"`
}

// ConfirmationResponse wraps a freshly confirmed invitation
type ConfirmationResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    InvitationDTO `json:"data"`
}

// StatsDTO is the dashboard summary
type StatsDTO struct {
	TotalInvitations     int64 `json:"totalInvitations"`
	ConfirmedInvitations int64 `json:"confirmedInvitations"`
	TotalGuests          int64 `json:"totalGuests"`
	ConfirmedGuests      int64 `json:"confirmedGuests"`
	ConfirmedPercentage  int   `json:"confirmedPercentage"`
	GuestCapacity        int   `json:"guestCapacity"`
}

// Conversion functions

func ToGuestDTO(guest models.Guest) GuestDTO {
	return GuestDTO{
		ID:           guest.ID,
		FullName:     guest.FullName,
		InvitationID: guest.InvitationID,
		CreatedAt:    guest.CreatedAt,
	}
}

func ToInvitationDTO(invitation models.Invitation) InvitationDTO {
	guests := make([]GuestDTO, len(invitation.Guests))
	for i, guest := range invitation.Guests {
		guests[i] = ToGuestDTO(guest)
	}

	return InvitationDTO{
		ID:           invitation.ID,
		Code:         invitation.Code,
		PrimaryGuest: invitation.PrimaryGuest,
		MaxGuests:    invitation.MaxGuests,
		Confirmed:    invitation.Confirmed,
		ConfirmedAt:  invitation.ConfirmedAt,
		CreatedAt:    invitation.CreatedAt,
		Guests:       guests,
	}
}

func ToInvitationDTOs(invitations []models.Invitation) []InvitationDTO {
	result := make([]InvitationDTO, len(invitations))
	for i, invitation := range invitations {
		result[i] = ToInvitationDTO(invitation)
	}
	return result
}

func ToStatsDTO(stats services.InvitationStats) StatsDTO {
	return StatsDTO{
		TotalInvitations:     stats.TotalInvitations,
		ConfirmedInvitations: stats.ConfirmedInvitations,
		TotalGuests:          stats.TotalGuests,
		ConfirmedGuests:      stats.ConfirmedGuests,
		ConfirmedPercentage:  stats.ConfirmedPercentage,
		GuestCapacity:        stats.GuestCapacity,
	}
}
