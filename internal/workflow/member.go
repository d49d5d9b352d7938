package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crewly-dev/crewly/internal/models"
	"github.com/crewly-dev/crewly/internal/notify"
	"gorm.io/gorm"
)

type MemberService struct {
	db       *gorm.DB
	notifier *notify.Service
}

func NewMemberService(db *gorm.DB, notifier *notify.Service) *MemberService {
	return &MemberService{db: db, notifier: notifier}
}

type MemberInfo struct {
	UserID uint
	Name   string
	Email  string
	Owner  bool
}

// List returns the owner followed by the members, oldest membership first.
func (s *MemberService) List(actorID, projectID uint) ([]MemberInfo, error) {
	project, isOwner, isMember, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return nil, err
	}
	if !isOwner && !isMember {
		return nil, ErrNotProjectMember
	}

	var owner models.User
	if err := s.db.First(&owner, project.OwnerID).Error; err != nil {
		return nil, err
	}

	var members []models.Member
	if err := s.db.Preload("User").
		Where("project_id = ?", project.ID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	infos := make([]MemberInfo, 0, len(members)+1)
	infos = append(infos, MemberInfo{UserID: owner.ID, Name: owner.Name, Email: owner.Email, Owner: true})
	for _, m := range members {
		infos = append(infos, MemberInfo{UserID: m.User.ID, Name: m.User.Name, Email: m.User.Email})
	}

	return infos, nil
}

// Add directly adds a user by email. Any owner or member may add; this is
// the trusted path and emits no notification. Inviting with explicit
// acceptance is a separate operation (InviteService.Create) and the two are
// mutually exclusive.
func (s *MemberService) Add(actorID, projectID uint, email string) (models.User, error) {
	project, isOwner, isMember, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return models.User{}, err
	}
	if !isOwner && !isMember {
		return models.User{}, ErrNotProjectMember
	}

	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if user.ID == project.OwnerID {
		return models.User{}, ErrAlreadyMember
	}
	listed, err := isProjectMember(s.db, project.ID, user.ID)
	if err != nil {
		return models.User{}, err
	}
	if listed {
		return models.User{}, ErrAlreadyMember
	}

	if err := s.db.Create(&models.Member{UserID: user.ID, ProjectID: project.ID}).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Remove deletes a membership. The owner may remove anyone (a kick); a
// member may remove only themself (a leave). The owner has no Member row,
// so an owner "leaving" fails with ErrMemberNotFound until ownership is
// transferred.
func (s *MemberService) Remove(actorID, projectID, targetID uint) error {
	project, isOwner, _, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return err
	}
	if !isOwner && actorID != targetID {
		return ErrRemoveForbidden
	}

	var member models.Member
	if err := s.db.Where("project_id = ? AND user_id = ?", project.ID, targetID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	if err := s.db.Delete(&member).Error; err != nil {
		return err
	}

	var target models.User
	if err := s.db.First(&target, targetID).Error; err != nil {
		return err
	}

	remaining, err := memberUserIDs(s.db, project.ID)
	if err != nil {
		return err
	}

	ref := project.ID
	link := projectLink(project.ID)

	if isOwner && targetID != actorID {
		s.notifier.Dispatch(notify.Message{
			UserID:      targetID,
			Type:        models.NotifyKicked,
			Message:     fmt.Sprintf("You were removed from project %q", project.Name),
			ReferenceID: &ref,
		})

		messages := make([]notify.Message, 0, len(remaining))
		for _, userID := range remaining {
			messages = append(messages, notify.Message{
				UserID:      userID,
				Type:        models.NotifyMemberKicked,
				Message:     fmt.Sprintf("%s was removed from project %q", target.Name, project.Name),
				Link:        link,
				ReferenceID: &ref,
			})
		}
		s.notifier.DispatchMany(messages)
		return nil
	}

	messages := make([]notify.Message, 0, len(remaining))
	for _, userID := range remaining {
		messages = append(messages, notify.Message{
			UserID:      userID,
			Type:        models.NotifyMemberLeft,
			Message:     fmt.Sprintf("%s left project %q", target.Name, project.Name),
			Link:        link,
			ReferenceID: &ref,
		})
	}
	s.notifier.DispatchMany(messages)

	return nil
}
