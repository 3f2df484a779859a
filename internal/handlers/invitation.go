package handlers

import (
	"net/http"

	"github.com/bodavargasprado/wedding-api/internal/dto"
	apierrors "github.com/bodavargasprado/wedding-api/internal/errors"
	"github.com/bodavargasprado/wedding-api/internal/services"
	"github.com/gin-gonic/gin"
)

// InvitationHandler serves invitations, confirmations, guests and stats.
type InvitationHandler struct {
	invitationService *services.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
	}
}

// GetStats returns dashboard totals.
func (h *InvitationHandler) GetStats(c *gin.Context) {
	stats, err := h.invitationService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStatsDTO(*stats))
}

// ValidateCode reports whether a code exists and nothing else.
func (h *InvitationHandler) ValidateCode(c *gin.Context) {
	valid, err := h.invitationService.ValidateCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// GetInvitation returns an invitation and its guests by code.
func (h *InvitationHandler) GetInvitation(c *gin.Context) {
	invitation, err := h.invitationService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvitationDTO(*invitation))
}

// ConfirmInvitation runs the RSVP confirmation.
func (h *InvitationHandler) ConfirmInvitation(c *gin.Context) {
	var req dto.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	guests := make([]services.GuestInput, 0, len(req.Guests))
	for _, g := range req.Guests {
		guests = append(guests, services.GuestInput{FullName: g.ResolvedName()})
	}

	invitation, err := h.invitationService.Confirm(c.Request.Context(), c.Param("code"), guests)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConfirmationResponse{
		Success: true,
		Message: "Asistencia confirmada exitosamente",
		Data:    dto.ToInvitationDTO(*invitation),
	})
}

// ListInvitations returns every invitation, newest first.
func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	invitations, err := h.invitationService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvitationDTOs(invitations))
}

// CreateInvitation creates an invitation with a generated code.
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invitation, err := h.invitationService.Create(c.Request.Context(), services.CreateInvitationInput{
		PrimaryGuest: req.PrimaryGuest,
		MaxGuests:    req.MaxGuests.Int(0),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvitationDTO(*invitation))
}

// UpdateInvitation changes the primary guest and/or capacity.
func (h *InvitationHandler) UpdateInvitation(c *gin.Context) {
	var req dto.UpdateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateInvitationInput{PrimaryGuest: req.PrimaryGuest}
	if req.MaxGuests != nil {
		if !req.MaxGuests.Valid {
			apierrors.BadRequest(c, "maxGuests must be a number")
			return
		}
		maxGuests := int(req.MaxGuests.Value)
		input.MaxGuests = &maxGuests
	}

	invitation, err := h.invitationService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvitationDTO(*invitation))
}

// DeleteInvitation deletes an invitation and its guests.
func (h *InvitationHandler) DeleteInvitation(c *gin.Context) {
	if err := h.invitationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteGuest removes one confirmed guest.
func (h *InvitationHandler) DeleteGuest(c *gin.Context) {
	if err := h.invitationService.DeleteGuest(c.Request.Context(), c.Param("guestId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
