package workflow

import (
	"errors"
	"fmt"

	"github.com/crewly-dev/crewly/internal/models"
	"gorm.io/gorm"
)

// loadProject fetches a project and the caller's relationship to it.
func loadProject(db *gorm.DB, projectID, userID uint) (project models.Project, isOwner, isMember bool, err error) {
	if err = db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrProjectNotFound
		}
		return
	}

	isOwner = project.OwnerID == userID

	if !isOwner {
		var count int64
		if err = db.Model(&models.Member{}).
			Where("user_id = ? AND project_id = ?", userID, projectID).
			Count(&count).Error; err != nil {
			return
		}
		isMember = count > 0
	}

	return
}

func isProjectMember(db *gorm.DB, projectID, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Member{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}

func memberUserIDs(db *gorm.DB, projectID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.Member{}).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func projectLink(projectID uint) string {
	return fmt.Sprintf("/projects/%d", projectID)
}
