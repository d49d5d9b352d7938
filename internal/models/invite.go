package models

import "gorm.io/gorm"

const (
	InviteStatusPending  = "PENDING"
	InviteStatusAccepted = "ACCEPTED"
	InviteStatusDeclined = "DECLINED"
)

// Invite is a pending offer of membership. Status moves from PENDING to
// ACCEPTED or DECLINED exactly once and never changes again. At most one
// PENDING invite may exist per (user, project) pair; the workflow enforces
// this, not the schema.
type Invite struct {
	gorm.Model

	ProjectID uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Status    string `gorm:"not null;default:PENDING"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
