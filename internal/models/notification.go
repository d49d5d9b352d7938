package models

import "gorm.io/gorm"

// NotificationType is the closed set of events the app notifies about.
type NotificationType string

const (
	NotifyInvitePending   NotificationType = "INVITE_PENDING"
	NotifyMemberJoined    NotificationType = "MEMBER_JOINED"
	NotifyInviteDeclined  NotificationType = "INVITE_DECLINED"
	NotifyKicked          NotificationType = "KICKED"
	NotifyMemberKicked    NotificationType = "MEMBER_KICKED"
	NotifyMemberLeft      NotificationType = "MEMBER_LEFT"
	NotifyNewOwner        NotificationType = "NEW_OWNER"
	NotifyProjectDeleted  NotificationType = "PROJECT_DELETED"
	NotifyDeadlineSoon    NotificationType = "DEADLINE_SOON"
	NotifyDeadlineOverdue NotificationType = "DEADLINE_OVERDUE"
)

type Notification struct {
	gorm.Model

	UserID      uint             `gorm:"not null;index"`
	Type        NotificationType `gorm:"not null;index"`
	Message     string           `gorm:"not null"`
	Link        string
	ReferenceID *uint `gorm:"index"` // project or invite ID, depending on Type
	Read        bool  `gorm:"not null;default:false"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
