package workflow

import "errors"

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrInviteNotFound       = errors.New("invite not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrMemberNotFound       = errors.New("user is not a member of this project")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrNotProjectMember = errors.New("you are not a member of this project")
	ErrOwnerOnly        = errors.New("only the project owner can do this")
	ErrNotInviteTarget  = errors.New("this invite is not addressed to you")
	ErrRemoveForbidden  = errors.New("only the owner can remove other members")

	ErrAlreadyMember   = errors.New("user is already part of this project")
	ErrInviteProcessed = errors.New("invite has already been processed")
	ErrDuplicateInvite = errors.New("an invite for this user is already pending")

	ErrEmptyProjectName = errors.New("project name is required")
	ErrEmptyTaskTitle   = errors.New("task title is required")
	ErrBadTaskStatus    = errors.New("invalid task status")
	ErrBadAssignee      = errors.New("assignee must be the owner or a member of the project")
	ErrBadInviteAction  = errors.New("invalid invite action")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrProjectNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrInviteNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrNotProjectMember) ||
		errors.Is(err, ErrOwnerOnly) ||
		errors.Is(err, ErrNotInviteTarget) ||
		errors.Is(err, ErrRemoveForbidden)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyMember) ||
		errors.Is(err, ErrInviteProcessed) ||
		errors.Is(err, ErrDuplicateInvite)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyProjectName) ||
		errors.Is(err, ErrEmptyTaskTitle) ||
		errors.Is(err, ErrBadTaskStatus) ||
		errors.Is(err, ErrBadAssignee) ||
		errors.Is(err, ErrBadInviteAction)
}
