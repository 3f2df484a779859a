package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invitation struct {
	ID           string     `gorm:"type:varchar(36);primarykey" json:"id"`
	Code         string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	PrimaryGuest string     `gorm:"type:varchar(255);not null" json:"primaryGuest"`
	MaxGuests    int        `gorm:"not null" json:"maxGuests"`
	Confirmed    bool       `gorm:"not null" json:"confirmed"`
	ConfirmedAt  *time.Time `json:"confirmedAt"`
	CreatedAt    time.Time  `json:"createdAt"`

	// Relations
	Guests []Guest `gorm:"foreignKey:InvitationID;constraint:OnDelete:CASCADE" json:"guests"`
}

// BeforeCreate assigns an opaque identifier when none was set.
func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
