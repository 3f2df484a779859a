package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexibleInt accepts a JSON number or a numeric string, the way HTML forms send them.
// Anything else leaves Valid false instead of failing the whole body.
type FlexibleInt struct {
	Value int64
	Valid bool
}

func (f *FlexibleInt) UnmarshalJSON(data []byte) error {
	*f = FlexibleInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		f.Value, f.Valid = int64(v), true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			f.Value, f.Valid = n, true
		}
	}
	return nil
}

// Int returns the value or fallback when it was missing or not numeric.
func (f FlexibleInt) Int(fallback int) int {
	if !f.Valid {
		return fallback
	}
	return int(f.Value)
}

// OptionalString tells an absent field apart from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// CreateInvitationRequest is the body of POST /api/invitations
type CreateInvitationRequest struct {
	PrimaryGuest string      `json:"primaryGuest" binding:"required"`
	MaxGuests    FlexibleInt `json:"maxGuests"`
}

// UpdateInvitationRequest is the body of PUT /api/invitations/:id
type UpdateInvitationRequest struct {
	PrimaryGuest *string      `json:"primaryGuest"`
	MaxGuests    *FlexibleInt `json:"maxGuests"`
}

// GuestRequest accepts fullName or the legacy name + lastName pair
type GuestRequest struct {
	FullName string `json:"fullName"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

// ResolvedName returns fullName, falling back to "name lastName".
func (g GuestRequest) ResolvedName() string {
	if name := strings.TrimSpace(g.FullName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(g.Name) + " " + strings.TrimSpace(g.LastName))
}

// ConfirmRequest is the body of POST /api/invitations/:code/confirm
type ConfirmRequest struct {
	Guests []GuestRequest `json:"guests"`
}

// CreateSectionRequest is the body of POST /api/gallery/sections
type CreateSectionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	AllowUpload *bool   `json:"allow_upload"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateSectionRequest is the body of PUT /api/gallery/sections/:id
type UpdateSectionRequest struct {
	Name        *string        `json:"name"`
	Description OptionalString `json:"description"`
	Order       *int           `json:"order"`
	AllowUpload *bool          `json:"allow_upload"`
	IsActive    *bool          `json:"is_active"`
}

// AddMediaRequest is the body of POST /api/gallery/sections/:sectionId/media
type AddMediaRequest struct {
	FilePath  string      `json:"file_path"`
	PublicURL string      `json:"public_url"`
	Type      string      `json:"type"`
	Name      string      `json:"name"`
	Size      FlexibleInt `json:"size"`
}

// AdminLoginRequest is the body of POST /api/admin/login
type AdminLoginRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// AdminSessionResponse describes an admin token
type AdminSessionResponse struct {
	Token     string `json:"token,omitempty"`
	ExpiresAt string `json:"expiresAt"`
}
