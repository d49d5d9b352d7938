package handlers

import (
	"net/http"

	"github.com/crewly-dev/crewly/internal/utils"
	"github.com/crewly-dev/crewly/internal/workflow"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	members *workflow.MemberService
}

func NewMemberHandler(members *workflow.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type MemberResponse struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Owner  bool   `json:"owner"`
}

func (h *MemberHandler) List(ctx *gin.Context) {
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

	members, err := h.members.List(userID, projectID)

	if err != nil {
		respondError(ctx, err, "Failed to retrieve members")
		return
	}

	response := make([]MemberResponse, 0, len(members))

	for _, m := range members {
		response = append(response, MemberResponse{
			UserID: m.UserID,
			Name:   m.Name,
			Email:  m.Email,
			Owner:  m.Owner,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Add(ctx *gin.Context) {
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

	var req AddMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.members.Add(userID, projectID, req.Email)

	if err != nil {
		respondError(ctx, err, "Failed to add member")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Member added successfully",
		"user":    UserSummary{ID: user.ID, Name: user.Name},
	})
}

func (h *MemberHandler) Remove(ctx *gin.Context) {
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

	targetID, err := utils.GetParamID(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.members.Remove(userID, projectID, targetID); err != nil {
		respondError(ctx, err, "Failed to remove member")
		return
	}

	ctx.Status(http.StatusNoContent)
}
