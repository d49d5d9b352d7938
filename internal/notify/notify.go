// Package notify writes notification rows for recipients to pull later.
// There is no push delivery; recipients poll /api/notifications.
package notify

import (
	"github.com/crewly-dev/crewly/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Message is one notification to be recorded for a recipient.
type Message struct {
	UserID      uint
	Type        models.NotificationType
	Message     string
	Link        string
	ReferenceID *uint
}

// Notify inserts a single notification row.
func (s *Service) Notify(m Message) error {
	row := toRow(m)
	return s.db.Create(&row).Error
}

// NotifyMany inserts all messages in one batch.
func (s *Service) NotifyMany(ms []Message) error {
	if len(ms) == 0 {
		return nil
	}

	rows := make([]models.Notification, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, toRow(m))
	}

	return s.db.Create(&rows).Error
}

// Dispatch is the best-effort variant of Notify: a store failure is logged
// and swallowed. The contract is that notification delivery never fails or
// rolls back the mutation that triggered it.
func (s *Service) Dispatch(m Message) {
	if err := s.Notify(m); err != nil {
		zap.L().Error("notification dispatch failed",
			zap.String("type", string(m.Type)),
			zap.Uint("user_id", m.UserID),
			zap.Error(err))
	}
}

// DispatchMany is the best-effort variant of NotifyMany.
func (s *Service) DispatchMany(ms []Message) {
	if err := s.NotifyMany(ms); err != nil {
		zap.L().Error("notification dispatch failed",
			zap.Int("count", len(ms)),
			zap.Error(err))
	}
}

func toRow(m Message) models.Notification {
	return models.Notification{
		UserID:      m.UserID,
		Type:        m.Type,
		Message:     m.Message,
		Link:        m.Link,
		ReferenceID: m.ReferenceID,
	}
}
