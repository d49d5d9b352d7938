package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crewly-dev/crewly/internal/models"
	"github.com/crewly-dev/crewly/internal/notify"
	"gorm.io/gorm"
)

// Invite actions accepted by Respond.
const (
	InviteActionAccept  = "accept"
	InviteActionDecline = "decline"
)

type InviteService struct {
	db       *gorm.DB
	notifier *notify.Service
}

func NewInviteService(db *gorm.DB, notifier *notify.Service) *InviteService {
	return &InviteService{db: db, notifier: notifier}
}

// Create issues a PENDING invite to the user behind email. The target must
// not already be the owner, a member, or the holder of another pending
// invite for the same project.
func (s *InviteService) Create(actorID, projectID uint, email string) (models.Invite, error) {
	project, isOwner, isMember, err := loadProject(s.db, projectID, actorID)
	if err != nil {
		return models.Invite{}, err
	}
	if !isOwner && !isMember {
		return models.Invite{}, ErrNotProjectMember
	}

	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Invite{}, ErrUserNotFound
		}
		return models.Invite{}, err
	}

	if user.ID == project.OwnerID {
		return models.Invite{}, ErrAlreadyMember
	}
	listed, err := isProjectMember(s.db, project.ID, user.ID)
	if err != nil {
		return models.Invite{}, err
	}
	if listed {
		return models.Invite{}, ErrAlreadyMember
	}

	var pending int64
	if err := s.db.Model(&models.Invite{}).
		Where("project_id = ? AND user_id = ? AND status = ?", project.ID, user.ID, models.InviteStatusPending).
		Count(&pending).Error; err != nil {
		return models.Invite{}, err
	}
	if pending > 0 {
		return models.Invite{}, ErrDuplicateInvite
	}

	invite := models.Invite{
		ProjectID: project.ID,
		UserID:    user.ID,
		Status:    models.InviteStatusPending,
	}
	if err := s.db.Create(&invite).Error; err != nil {
		return models.Invite{}, err
	}

	ref := invite.ID
	s.notifier.Dispatch(notify.Message{
		UserID:      user.ID,
		Type:        models.NotifyInvitePending,
		Message:     fmt.Sprintf("You have been invited to join project %q", project.Name),
		Link:        "/invites",
		ReferenceID: &ref,
	})

	return invite, nil
}

// ListPending returns the actor's open invites, newest first, with the
// project preloaded for display.
func (s *InviteService) ListPending(actorID uint) ([]models.Invite, error) {
	var invites []models.Invite

	err := s.db.Preload("Project").
		Where("user_id = ? AND status = ?", actorID, models.InviteStatusPending).
		Order("created_at DESC").
		Find(&invites).Error

	return invites, err
}

// Respond accepts or declines a pending invite. Only the invited user may
// respond, and only once: any status other than PENDING is final.
func (s *InviteService) Respond(actorID, inviteID uint, action string) error {
	var invite models.Invite
	if err := s.db.Preload("Project").First(&invite, inviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInviteNotFound
		}
		return err
	}

	if invite.UserID != actorID {
		return ErrNotInviteTarget
	}
	if invite.Status != models.InviteStatusPending {
		return ErrInviteProcessed
	}

	switch action {
	case InviteActionAccept:
		return s.accept(invite, actorID)
	case InviteActionDecline:
		return s.decline(invite, actorID)
	default:
		return ErrBadInviteAction
	}
}

func (s *InviteService) accept(invite models.Invite, actorID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Member{UserID: actorID, ProjectID: invite.ProjectID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Invite{}).
			Where("id = ?", invite.ID).
			Update("status", models.InviteStatusAccepted).Error
	})
	if err != nil {
		return err
	}

	var actor models.User
	if err := s.db.First(&actor, actorID).Error; err != nil {
		return err
	}

	ref := invite.ProjectID
	link := projectLink(invite.ProjectID)

	s.notifier.Dispatch(notify.Message{
		UserID:      invite.Project.OwnerID,
		Type:        models.NotifyMemberJoined,
		Message:     fmt.Sprintf("%s accepted the invitation and joined project %q", actor.Name, invite.Project.Name),
		Link:        link,
		ReferenceID: &ref,
	})

	memberIDs, err := memberUserIDs(s.db, invite.ProjectID)
	if err != nil {
		return err
	}

	messages := make([]notify.Message, 0, len(memberIDs))
	for _, userID := range memberIDs {
		if userID == actorID || userID == invite.Project.OwnerID {
			continue
		}
		messages = append(messages, notify.Message{
			UserID:      userID,
			Type:        models.NotifyMemberJoined,
			Message:     fmt.Sprintf("%s joined project %q", actor.Name, invite.Project.Name),
			Link:        link,
			ReferenceID: &ref,
		})
	}
	s.notifier.DispatchMany(messages)

	return nil
}

func (s *InviteService) decline(invite models.Invite, actorID uint) error {
	if err := s.db.Model(&models.Invite{}).
		Where("id = ?", invite.ID).
		Update("status", models.InviteStatusDeclined).Error; err != nil {
		return err
	}

	var actor models.User
	if err := s.db.First(&actor, actorID).Error; err != nil {
		return err
	}

	ref := invite.ProjectID
	s.notifier.Dispatch(notify.Message{
		UserID:      invite.Project.OwnerID,
		Type:        models.NotifyInviteDeclined,
		Message:     fmt.Sprintf("%s declined the invitation to project %q", actor.Name, invite.Project.Name),
		ReferenceID: &ref,
	})

	return nil
}
