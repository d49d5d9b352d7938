package handlers

import (
	"net/http"
	"time"

	"github.com/crewly-dev/crewly/internal/models"
	"github.com/crewly-dev/crewly/internal/utils"
	"github.com/crewly-dev/crewly/internal/workflow"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projects *workflow.ProjectService
}

func NewProjectHandler(projects *workflow.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	NewOwnerID  *uint      `json:"new_owner_id"`
}

type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ProjectResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	Owner       UserSummary    `json:"owner"`
	Members     []UserSummary  `json:"members"`
	Tasks       []TaskResponse `json:"tasks,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toProjectResponse(project models.Project) ProjectResponse {
	members := make([]UserSummary, 0, len(project.Members))
	for _, m := range project.Members {
		members = append(members, UserSummary{ID: m.User.ID, Name: m.User.Name})
	}

	tasks := make([]TaskResponse, 0, len(project.Tasks))
	for _, t := range project.Tasks {
		tasks = append(tasks, toTaskResponse(t))
	}

	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Deadline:    project.Deadline,
		Owner:       UserSummary{ID: project.Owner.ID, Name: project.Owner.Name},
		Members:     members,
		Tasks:       tasks,
		CreatedAt:   project.CreatedAt,
	}
}

func (h *ProjectHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projects.Create(userID, workflow.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
	})

	if err != nil {
		respondError(ctx, err, "Failed to create project")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":          project.ID,
		"name":        project.Name,
		"description": project.Description,
		"deadline":    project.Deadline,
		"owner_id":    project.OwnerID,
	})
}

func (h *ProjectHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projects, err := h.projects.List(userID)

	if err != nil {
		respondError(ctx, err, "Failed to retrieve projects")
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, toProjectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) Get(ctx *gin.Context) {
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

	project, err := h.projects.Get(userID, projectID)

	if err != nil {
		respondError(ctx, err, "Failed to retrieve project")
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(project))
}

func (h *ProjectHandler) Update(ctx *gin.Context) {
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

	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projects.Update(userID, projectID, workflow.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Deadline:    req.Deadline,
		NewOwnerID:  req.NewOwnerID,
	})

	if err != nil {
		respondError(ctx, err, "Failed to update project")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":          project.ID,
		"name":        project.Name,
		"description": project.Description,
		"deadline":    project.Deadline,
		"owner_id":    project.OwnerID,
	})
}

func (h *ProjectHandler) Delete(ctx *gin.Context) {
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

	if err := h.projects.Delete(userID, projectID); err != nil {
		respondError(ctx, err, "Failed to delete project")
		return
	}

	ctx.Status(http.StatusNoContent)
}
