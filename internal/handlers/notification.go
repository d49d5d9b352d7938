package handlers

import (
	"net/http"
	"time"

	"github.com/crewly-dev/crewly/internal/utils"
	"github.com/crewly-dev/crewly/internal/workflow"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications *workflow.NotificationService
}

func NewNotificationHandler(notifications *workflow.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type NotificationResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	Link        string    `json:"link,omitempty"`
	ReferenceID *uint     `json:"reference_id,omitempty"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *NotificationHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notifications, err := h.notifications.List(userID)

	if err != nil {
		respondError(ctx, err, "Failed to retrieve notifications")
		return
	}

	response := make([]NotificationResponse, 0, len(notifications))

	for _, n := range notifications {
		response = append(response, NotificationResponse{
			ID:          n.ID,
			Type:        string(n.Type),
			Message:     n.Message,
			Link:        n.Link,
			ReferenceID: n.ReferenceID,
			Read:        n.Read,
			CreatedAt:   n.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) MarkRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notificationID, err := utils.GetParamID(ctx, "notification_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.notifications.MarkRead(userID, notificationID); err != nil {
		respondError(ctx, err, "Failed to mark notification as read")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.notifications.MarkAllRead(userID); err != nil {
		respondError(ctx, err, "Failed to mark notifications as read")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) DeleteAll(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.notifications.DeleteAll(userID); err != nil {
		respondError(ctx, err, "Failed to delete notifications")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "All notifications deleted"})
}
