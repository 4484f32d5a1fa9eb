package orggroup

import "github.com/lmsforge/lms-backend/internal/apperr"

var (
	// ErrGroupNotFound is returned when the group does not exist.
	ErrGroupNotFound = apperr.NotFound("Group not found")
	// ErrGroupNameTaken is returned when the organization has a group with the exact name.
	ErrGroupNameTaken = apperr.Conflict("Group with this name already exists")
	// ErrNotOrganizationMember is returned when a user to add is not an active organization member.
	ErrNotOrganizationMember = apperr.Validation("All users must be active members of the group's organization")
	// ErrNoUsers is returned for an empty batch.
	ErrNoUsers = apperr.Validation("At least one user is required")
	// ErrInvalidRole is returned for an unknown group role.
	ErrInvalidRole = apperr.Validation("Invalid role")
	// ErrInvalidStatus is returned for an unknown group status.
	ErrInvalidStatus = apperr.Validation("Invalid status")
	// ErrNotGroupMember is returned when removing a user that is not in the group.
	ErrNotGroupMember = apperr.NotFound("User is not a member of this group")
	// ErrCannotManageGroup is returned when the caller may not change the group.
	ErrCannotManageGroup = apperr.Forbidden("You do not have permission to manage this group")
)
