package workflow

import (
	"errors"

	"github.com/crewly-dev/crewly/internal/models"
	"gorm.io/gorm"
)

// Recent notifications shown per user.
const notificationPageSize = 30

// NotificationService is the recipient-side read surface: the write side
// lives in the notify package.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) List(actorID uint) ([]models.Notification, error) {
	var notifications []models.Notification

	err := s.db.Where("user_id = ?", actorID).
		Order("created_at DESC").
		Limit(notificationPageSize).
		Find(&notifications).Error

	return notifications, err
}

func (s *NotificationService) MarkRead(actorID, notificationID uint) error {
	var notification models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, actorID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}

	return s.db.Model(&notification).Update("read", true).Error
}

func (s *NotificationService) MarkAllRead(actorID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", actorID, false).
		Update("read", true).Error
}

func (s *NotificationService) DeleteAll(actorID uint) error {
	return s.db.Where("user_id = ?", actorID).Delete(&models.Notification{}).Error
}
