package models

import "gorm.io/gorm"

// Member is a non-owner collaborator on a project. The owner is never
// recorded here; ownership and membership are disjoint roles.
type Member struct {
	gorm.Model

	UserID    uint `gorm:"not null;uniqueIndex:idx_member_user_project"`
	ProjectID uint `gorm:"not null;uniqueIndex:idx_member_user_project"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
