package workflow

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crewly-dev/crewly/internal/models"
	"github.com/crewly-dev/crewly/internal/notify"
	"gorm.io/gorm"
)

// ProjectService owns project CRUD, ownership transfer and deletion.
// Every operation takes the acting user explicitly.
type ProjectService struct {
	db       *gorm.DB
	notifier *notify.Service
}

func NewProjectService(db *gorm.DB, notifier *notify.Service) *ProjectService {
	return &ProjectService{db: db, notifier: notifier}
}

type CreateProjectInput struct {
	Name        string
	Description string
	Deadline    *time.Time
}

type UpdateProjectInput struct {
	Name        *string
	Description *string
	Deadline    *time.Time
	NewOwnerID  *uint
}

// Create makes the actor the owner of a new project. The owner does not
// get a Member row; ownership and membership are disjoint.
func (s *ProjectService) Create(actorID uint, in CreateProjectInput) (models.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Project{}, ErrEmptyProjectName
	}

	project := models.Project{
		Name:        name,
		Description: in.Description,
		Deadline:    in.Deadline,
		OwnerID:     actorID,
	}

	if err := s.db.Create(&project).Error; err != nil {
		return models.Project{}, err
	}

	return project, nil
}

// List returns the projects the actor owns or collaborates on, newest first.
func (s *ProjectService) List(actorID uint) ([]models.Project, error) {
	var projects []models.Project

	err := s.db.
		Joins("LEFT JOIN members ON members.project_id = projects.id AND members.deleted_at IS NULL").
		Where("projects.owner_id = ? OR members.user_id = ?", actorID, actorID).
		Group("projects.id").
		Order("projects.created_at DESC").
		Preload("Owner").
		Preload("Members.User").
		Preload("Tasks").
		Find(&projects).Error

	return projects, err
}

// Get returns one project with owner, members and tasks. Only the owner and
// members may see it.
func (s *ProjectService) Get(actorID, projectID uint) (models.Project, error) {
	project, isOwner, isMember, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return models.Project{}, err
	}
	if !isOwner && !isMember {
		return models.Project{}, ErrNotProjectMember
	}

	err = s.db.
		Preload("Owner").
		Preload("Members.User").
		Preload("Tasks").
		First(&project, projectID).Error

	return project, err
}

// Update changes name/description/deadline and optionally transfers
// ownership. The transfer applies three structural writes in one
// transaction so a partial failure can never leave the owner listed as a
// member or a stale member row for the incoming owner.
func (s *ProjectService) Update(actorID, projectID uint, in UpdateProjectInput) (models.Project, error) {
	project, isOwner, _, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return models.Project{}, err
	}
	if !isOwner {
		return models.Project{}, ErrOwnerOnly
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return models.Project{}, ErrEmptyProjectName
		}
		project.Name = name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Deadline != nil {
		project.Deadline = in.Deadline
	}

	var newOwner *models.User
	if in.NewOwnerID != nil && *in.NewOwnerID != project.OwnerID {
		var user models.User
		if err := s.db.First(&user, *in.NewOwnerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Project{}, ErrUserNotFound
			}
			return models.Project{}, err
		}
		newOwner = &user
	}

	oldOwnerID := project.OwnerID

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if newOwner != nil {
			listed, err := isProjectMember(tx, project.ID, oldOwnerID)
			if err != nil {
				return err
			}
			if !listed {
				if err := tx.Create(&models.Member{UserID: oldOwnerID, ProjectID: project.ID}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("user_id = ? AND project_id = ?", newOwner.ID, project.ID).
				Delete(&models.Member{}).Error; err != nil {
				return err
			}

			project.OwnerID = newOwner.ID
		}

		return tx.Save(&project).Error
	})
	if err != nil {
		return models.Project{}, err
	}

	if newOwner != nil {
		ref := project.ID
		s.notifier.Dispatch(notify.Message{
			UserID:      newOwner.ID,
			Type:        models.NotifyNewOwner,
			Message:     fmt.Sprintf("You are now the owner of project %q", project.Name),
			Link:        projectLink(project.ID),
			ReferenceID: &ref,
		})
	}

	return project, nil
}

// Delete removes a project with its tasks, members and invites. Former
// members are told after the transaction commits; a dispatch failure does
// not undo the deletion.
func (s *ProjectService) Delete(actorID, projectID uint) error {
	project, isOwner, _, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return err
	}
	if !isOwner {
		return ErrOwnerOnly
	}

	memberIDs, err := memberUserIDs(s.db, project.ID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Member{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.ID).Delete(&models.Invite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
	if err != nil {
		return err
	}

	if len(memberIDs) > 0 {
		ref := project.ID
		messages := make([]notify.Message, 0, len(memberIDs))
		for _, userID := range memberIDs {
			messages = append(messages, notify.Message{
				UserID:      userID,
				Type:        models.NotifyProjectDeleted,
				Message:     fmt.Sprintf("Project %q was deleted by its owner", project.Name),
				ReferenceID: &ref,
			})
		}
		s.notifier.DispatchMany(messages)
	}

	return nil
}
