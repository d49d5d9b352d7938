package workflow

import (
	"testing"

	"github.com/crewly-dev/crewly/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCreateInvite(t *testing.T) {
	db := newTestDB(t)
	notifier := newNotifier(db)
	projects := NewProjectService(db, notifier)
	svc := NewInviteService(db, notifier)

	alice := createUser(t, db, "Alice")
	bob := createUser(t, db, "Bob")

	project, err := projects.Create(alice.ID, CreateProjectInput{Name: "Team"})
	require.NoError(t, err)

	invite, err := svc.Create(alice.ID, project.ID, "Bob@example.com")
	require.NoError(t, err)
	require.Equal(t, models.InviteStatusPending, invite.Status)
	require.Equal(t, bob.ID, invite.UserID)

	require.EqualValues(t, 1, notificationCount(t, db, bob.ID, models.NotifyInvitePending))

	var notification models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", bob.ID, models.NotifyInvitePending).
		First(&notification).Error)
	require.NotNil(t, notification.ReferenceID)
	require.Equal(t, invite.ID, *notification.ReferenceID)
}

func TestCreateInvite_Duplicate(t *testing.T) {
	db := newTestDB(t)
	notifier := newNotifier(db)
	projects := NewProjectService(db, notifier)
	svc := NewInviteService(db, notifier)

	alice := createUser(t, db, "Alice")
	bob := createUser(t, db, "Bob")

	project, err := projects.Create(alice.ID, CreateProjectInput{Name: "Team"})
	require.NoError(t, err)

	_, err = svc.Create(alice.ID, project.ID, bob.Email)
	require.NoError(t, err)

	_, err = svc.Create(alice.ID, project.ID, bob.Email)
	require.ErrorIs(t, err, ErrDuplicateInvite)
}

func TestCreateInvite_UnknownEmail(t *testing.T) {
	db := newTestDB(t)
	notifier := newNotifier(db)
	projects := NewProjectService(db, notifier)
	svc := NewInviteService(db, notifier)

	alice := createUser(t, db, "Alice")
	project, err := projects.Create(alice.ID, CreateProjectInput{Name: "Team"})
	require.NoError(t, err)

	_, err = svc.Create(alice.ID, project.ID, "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)

	var invites int64
	require.NoError(t, db.Model(&models.Invite{}).Count(&invites).Error)
	require.Zero(t, invites)
}

func TestCreateInvite_TargetAlreadyBelongs(t *testing.T) {
	db := newTestDB(t)
	notifier := newNotifier(db)
	projects := NewProjectService(db, notifier)
	svc := NewInviteService(db, notifier)

	alice := createUser(t, db, "Alice")
	bob := createUser(t, db, "Bob")

	project, err := projects.Create(alice.ID, CreateProjectInput{Name: "Team"})
	require.NoError(t, err)
	addMember(t, db, bob.ID, project.ID)

	_, err = svc.Create(alice.ID, project.ID, bob.Email)
	require.ErrorIs(t, err, ErrAlreadyMember)

	_, err = svc.Create(alice.ID, project.ID, alice.Email)
	require.ErrorIs(t, err, ErrAlreadyMember)
}

func TestRespondInvite_Accept(t *testing.T) {
	db := newTestDB(t)
	notifier := newNotifier(db)
	projects := NewProjectService(db, notifier)
	svc := NewInviteService(db, notifier)

	alice := createUser(t, db, "Alice")
	bob := createUser(t, db, "Bob")
	carol := createUser(t, db, "Carol")

	project, err := projects.Create(alice.ID, CreateProjectInput{Name: "Team"})
	require.NoError(t, err)
	addMember(t, db, carol.ID, project.ID)

	invite, err := svc.Create(alice.ID, project.ID, bob.Email)
	require.NoError(t, err)

	require.NoError(t, svc.Respond(bob.ID, invite.ID, InviteActionAccept))

	var updated models.Invite
	require.NoError(t, db.First(&updated, invite.ID).Error)
	require.Equal(t, models.InviteStatusAccepted, updated.Status)
	require.True(t, memberExists(t, db, bob.ID, project.ID))
	requireDisjointRoles(t, db, project.ID)

	// Owner and existing member are told, the acceptor is not.
	require.EqualValues(t, 1, notificationCount(t, db, alice.ID, models.NotifyMemberJoined))
	require.EqualValues(t, 1, notificationCount(t, db, carol.ID, models.NotifyMemberJoined))
	require.EqualValues(t, 0, notificationCount(t, db, bob.ID, models.NotifyMemberJoined))
}

func TestRespondInvite_Decline(t *testing.T) {
	db := newTestDB(t)
	notifier := newNotifier(db)
	projects := NewProjectService(db, notifier)
	svc := NewInviteService(db, notifier)

	alice := createUser(t, db, "Alice")
	bob := createUser(t, db, "Bob")

	project, err := projects.Create(alice.ID, CreateProjectInput{Name: "Team"})
	require.NoError(t, err)

	invite, err := svc.Create(alice.ID, project.ID, bob.Email)
	require.NoError(t, err)

	require.NoError(t, svc.Respond(bob.ID, invite.ID, InviteActionDecline))

	var updated models.Invite
	require.NoError(t, db.First(&updated, invite.ID).Error)
	require.Equal(t, models.InviteStatusDeclined, updated.Status)
	require.False(t, memberExists(t, db, bob.ID, project.ID))

	require.EqualValues(t, 1, notificationCount(t, db, alice.ID, models.NotifyInviteDeclined))
}

func TestRespondInvite_OnlyOnce(t *testing.T) {
	db := newTestDB(t)
	notifier := newNotifier(db)
	projects := NewProjectService(db, notifier)
	svc := NewInviteService(db, notifier)

	alice := createUser(t, db, "Alice")
	bob := createUser(t, db, "Bob")

	project, err := projects.Create(alice.ID, CreateProjectInput{Name: "Team"})
	require.NoError(t, err)

	invite, err := svc.Create(alice.ID, project.ID, bob.Email)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(bob.ID, invite.ID, InviteActionAccept))

	// The second response, either way, changes nothing.
	require.ErrorIs(t, svc.Respond(bob.ID, invite.ID, InviteActionAccept), ErrInviteProcessed)
	require.ErrorIs(t, svc.Respond(bob.ID, invite.ID, InviteActionDecline), ErrInviteProcessed)

	var updated models.Invite
	require.NoError(t, db.First(&updated, invite.ID).Error)
	require.Equal(t, models.InviteStatusAccepted, updated.Status)

	var memberships int64
	require.NoError(t, db.Model(&models.Member{}).
		Where("project_id = ? AND user_id = ?", project.ID, bob.ID).
		Count(&memberships).Error)
	require.EqualValues(t, 1, memberships)
}

func TestRespondInvite_WrongUser(t *testing.T) {
	db := newTestDB(t)
	notifier := newNotifier(db)
	projects := NewProjectService(db, notifier)
	svc := NewInviteService(db, notifier)

	alice := createUser(t, db, "Alice")
	bob := createUser(t, db, "Bob")
	mallory := createUser(t, db, "Mallory")

	project, err := projects.Create(alice.ID, CreateProjectInput{Name: "Team"})
	require.NoError(t, err)

	invite, err := svc.Create(alice.ID, project.ID, bob.Email)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Respond(mallory.ID, invite.ID, InviteActionAccept), ErrNotInviteTarget)
	require.False(t, memberExists(t, db, mallory.ID, project.ID))
}

func TestRespondInvite_BadAction(t *testing.T) {
	db := newTestDB(t)
	notifier := newNotifier(db)
	projects := NewProjectService(db, notifier)
	svc := NewInviteService(db, notifier)

	alice := createUser(t, db, "Alice")
	bob := createUser(t, db, "Bob")

	project, err := projects.Create(alice.ID, CreateProjectInput{Name: "Team"})
	require.NoError(t, err)

	invite, err := svc.Create(alice.ID, project.ID, bob.Email)
	require.NoError(t, err)

	require.ErrorIs(t, svc.Respond(bob.ID, invite.ID, "maybe"), ErrBadInviteAction)

	var updated models.Invite
	require.NoError(t, db.First(&updated, invite.ID).Error)
	require.Equal(t, models.InviteStatusPending, updated.Status)
}

func TestListPendingInvites(t *testing.T) {
	db := newTestDB(t)
	notifier := newNotifier(db)
	projects := NewProjectService(db, notifier)
	svc := NewInviteService(db, notifier)

	alice := createUser(t, db, "Alice")
	bob := createUser(t, db, "Bob")

	first, err := projects.Create(alice.ID, CreateProjectInput{Name: "First"})
	require.NoError(t, err)
	second, err := projects.Create(alice.ID, CreateProjectInput{Name: "Second"})
	require.NoError(t, err)

	pending, err := svc.Create(alice.ID, first.ID, bob.Email)
	require.NoError(t, err)

	declined, err := svc.Create(alice.ID, second.ID, bob.Email)
	require.NoError(t, err)
	require.NoError(t, svc.Respond(bob.ID, declined.ID, InviteActionDecline))

	invites, err := svc.ListPending(bob.ID)
	require.NoError(t, err)
	require.Len(t, invites, 1)
	require.Equal(t, pending.ID, invites[0].ID)
	require.Equal(t, "First", invites[0].Project.Name)
}
