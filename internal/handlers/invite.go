package handlers

import (
	"net/http"
	"time"

	"github.com/crewly-dev/crewly/internal/utils"
	"github.com/crewly-dev/crewly/internal/workflow"
	"github.com/gin-gonic/gin"
)

type InviteHandler struct {
	invites *workflow.InviteService
}

func NewInviteHandler(invites *workflow.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

type CreateInviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RespondInviteRequest struct {
	Action string `json:"action" binding:"required"` // "accept" or "decline"
}

type InviteResponse struct {
	ID          uint      `json:"id"`
	ProjectID   uint      `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *InviteHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req CreateInviteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	invite, err := h.invites.Create(userID, projectID, req.Email)

	if err != nil {
		respondError(ctx, err, "Failed to create invite")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":   "Invite sent",
		"invite_id": invite.ID,
	})
}

func (h *InviteHandler) ListMine(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invites, err := h.invites.ListPending(userID)

	if err != nil {
		respondError(ctx, err, "Failed to retrieve invites")
		return
	}

	response := make([]InviteResponse, 0, len(invites))

	for _, invite := range invites {
		response = append(response, InviteResponse{
			ID:          invite.ID,
			ProjectID:   invite.ProjectID,
			ProjectName: invite.Project.Name,
			Status:      invite.Status,
			CreatedAt:   invite.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *InviteHandler) Respond(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	inviteID, err := utils.GetParamID(ctx, "invite_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req RespondInviteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := h.invites.Respond(userID, inviteID, req.Action); err != nil {
		respondError(ctx, err, "Failed to respond to invite")
		return
	}

	if req.Action == workflow.InviteActionAccept {
		ctx.JSON(http.StatusOK, gin.H{"message": "Invite accepted"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invite declined"})
}
