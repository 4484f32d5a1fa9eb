package studygroup

import "github.com/lmsforge/lms-backend/internal/apperr"

var (
	// ErrStudyGroupNotFound is returned when the study group does not exist.
	ErrStudyGroupNotFound = apperr.NotFound("Study group not found")
	// ErrGroupNameRequired is returned when creating or renaming without a name.
	ErrGroupNameRequired = apperr.Validation("groupName is required")
	// ErrInvalidRole is returned for a member role other than ADMIN or MEMBER.
	ErrInvalidRole = apperr.Validation("Invalid role")
	// ErrUserNotFound is returned when the user to add does not exist.
	ErrUserNotFound = apperr.NotFound("User not found")
	// ErrAlreadyMember is returned when the user is already in the study group.
	ErrAlreadyMember = apperr.Conflict("User is already a member of this study group")
	// ErrMemberNotFound is returned when the user is not in the study group.
	ErrMemberNotFound = apperr.NotFound("User is not a member of this study group")
	// ErrNotMember is returned when the caller is not in the study group.
	ErrNotMember = apperr.Forbidden("You are not a member of this study group")
	// ErrNotOwnerOrAdmin is returned when the caller is neither OWNER nor ADMIN.
	ErrNotOwnerOrAdmin = apperr.Forbidden("Only the owner or an admin can perform this action")
	// ErrCannotRemoveOwner is returned when someone other than the owner removes the owner.
	ErrCannotRemoveOwner = apperr.Forbidden("The owner cannot be removed by another member")
	// ErrNotOwner is returned when someone other than the owner deletes the group.
	ErrNotOwner = apperr.Forbidden("Only the owner can delete this study group")
	// ErrContentExists is returned when the course is already shared with the group.
	ErrContentExists = apperr.Conflict("Course is already part of this study group")
	// ErrContentNotFound is returned when the course is not shared with the group.
	ErrContentNotFound = apperr.NotFound("Course is not part of this study group")
	// ErrCannotRemoveContent is returned when a plain member removes content added by someone else.
	ErrCannotRemoveContent = apperr.Forbidden("Only the owner, an admin or the member who added it can remove this content")
)
