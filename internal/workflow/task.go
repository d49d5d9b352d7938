package workflow

import (
	"errors"
	"strings"
	"time"

	"github.com/crewly-dev/crewly/internal/models"
	"gorm.io/gorm"
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Notes       string
	Deadline    *time.Time
	AssigneeID  *uint
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	Notes       *string
	Deadline    *time.Time
	AssigneeID  *uint
	Status      *string
}

func (s *TaskService) Create(actorID, projectID uint, in CreateTaskInput) (models.Task, error) {
	project, isOwner, isMember, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return models.Task{}, err
	}
	if !isOwner && !isMember {
		return models.Task{}, ErrNotProjectMember
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, ErrEmptyTaskTitle
	}

	if in.AssigneeID != nil {
		if err := s.checkAssignee(project, *in.AssigneeID); err != nil {
			return models.Task{}, err
		}
	}

	task := models.Task{
		ProjectID:   project.ID,
		Title:       title,
		Description: in.Description,
		Notes:       in.Notes,
		Deadline:    in.Deadline,
		AssigneeID:  in.AssigneeID,
		Status:      models.TaskStatusTodo,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) List(actorID, projectID uint) ([]models.Task, error) {
	_, isOwner, isMember, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !isOwner && !isMember {
		return nil, ErrNotProjectMember
	}

	var tasks []models.Task
	err = s.db.Preload("Assignee").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error

	return tasks, err
}

func (s *TaskService) Update(actorID, projectID, taskID uint, in UpdateTaskInput) (models.Task, error) {
	project, isOwner, isMember, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return models.Task{}, err
	}
	if !isOwner && !isMember {
		return models.Task{}, ErrNotProjectMember
	}

	var task models.Task
	if err := s.db.Where("id = ? AND project_id = ?", taskID, projectID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return models.Task{}, ErrEmptyTaskTitle
		}
		task.Title = title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Notes != nil {
		task.Notes = *in.Notes
	}
	if in.Deadline != nil {
		task.Deadline = in.Deadline
	}
	if in.AssigneeID != nil {
		if err := s.checkAssignee(project, *in.AssigneeID); err != nil {
			return models.Task{}, err
		}
		task.AssigneeID = in.AssigneeID
	}
	if in.Status != nil {
		if !models.ValidTaskStatus(*in.Status) {
			return models.Task{}, ErrBadTaskStatus
		}
		task.Status = *in.Status
	}

	if err := s.db.Save(&task).Error; err != nil {
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) Delete(actorID, projectID, taskID uint) error {
	_, isOwner, isMember, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return err
	}
	if !isOwner && !isMember {
		return ErrNotProjectMember
	}

	result := s.db.Where("id = ? AND project_id = ?", taskID, projectID).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (s *TaskService) checkAssignee(project models.Project, assigneeID uint) error {
	if assigneeID == project.OwnerID {
		return nil
	}
	listed, err := isProjectMember(s.db, project.ID, assigneeID)
	if err != nil {
		return err
	}
	if !listed {
		return ErrBadAssignee
	}
	return nil
}
