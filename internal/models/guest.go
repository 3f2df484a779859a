package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Guest struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"fullName"`
	InvitationID string    `gorm:"type:varchar(36);not null;index" json:"invitationId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
