package organization

import "github.com/lmsforge/lms-backend/internal/apperr"

var (
	// ErrOrganizationNotFound is returned when the organization does not exist.
	ErrOrganizationNotFound = apperr.NotFound("Organization not found")
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = apperr.NotFound("User not found")
	// ErrOrganizationNameTaken is returned when another organization has the name.
	ErrOrganizationNameTaken = apperr.Conflict("Organization with this name already exists")
	// ErrAlreadyMember is returned when the (organization, user) pair exists.
	ErrAlreadyMember = apperr.Conflict("User is already part of this organization")
	// ErrMembershipNotFound is returned when the user is not part of the organization.
	ErrMembershipNotFound = apperr.NotFound("User is not part of this organization")
	// ErrNoPendingInvite is returned when accepting or rejecting without a pending membership.
	ErrNoPendingInvite = apperr.NotFound("No pending invitation for this organization")
	// ErrNotMember is returned when the caller is not an active member.
	ErrNotMember = apperr.Forbidden("You are not a member of this organization")
	// ErrInsufficientRole is returned when the caller's role does not allow the action.
	ErrInsufficientRole = apperr.Forbidden("You do not have permission to perform this action")
	// ErrInvalidRole is returned for an unknown organization role.
	ErrInvalidRole = apperr.Validation("Invalid role")
	// ErrInvalidStatus is returned for an unknown organization or membership status.
	ErrInvalidStatus = apperr.Validation("Invalid status")
	// ErrLastAdmin protects the last active admin from removal and demotion.
	ErrLastAdmin = apperr.Conflict("The last active admin of an organization cannot be removed or demoted")

	// ErrInviteNotFound is returned for an unknown invitation id or token.
	ErrInviteNotFound = apperr.NotFound("Invitation not found")
	// ErrInviteExists is returned when a pending invitation for the email exists.
	ErrInviteExists = apperr.Conflict("A pending invitation for this email already exists")
	// ErrInviteNotPending is returned when the invitation was already answered.
	ErrInviteNotPending = apperr.Conflict("Invitation is no longer pending")
	// ErrInviteExpired is returned when the invitation passed its expiry.
	ErrInviteExpired = apperr.Validation("Invitation has expired")
	// ErrInviteEmailMismatch is returned when the invitation belongs to another email.
	ErrInviteEmailMismatch = apperr.Forbidden("Invitation was sent to a different email address")
)
