package models

import "time"

// OrgRole is the role of a user inside an organization.
type OrgRole string

// MembershipStatus is the state of an organization membership.
type MembershipStatus string

const (
	// OrgRoleAdmin may manage everything in the organization.
	OrgRoleAdmin OrgRole = "ADMIN"
	// OrgRoleManager may manage members, groups and invitations.
	OrgRoleManager OrgRole = "MANAGER"
	// OrgRoleInstructor teaches inside the organization.
	OrgRoleInstructor OrgRole = "INSTRUCTOR"
	// OrgRoleMember is a plain member.
	OrgRoleMember OrgRole = "MEMBER"

	// MembershipPending is an invitation not answered yet.
	MembershipPending MembershipStatus = "PENDING"
	// MembershipActive is an accepted membership.
	MembershipActive MembershipStatus = "ACTIVE"
	// MembershipInactive is a membership switched off by an administrator.
	MembershipInactive MembershipStatus = "INACTIVE"
	// MembershipSuspended is a membership blocked by an administrator.
	MembershipSuspended MembershipStatus = "SUSPENDED"
)

// OrganizationUser links a user to an organization. Unique on (organization, user).
type OrganizationUser struct {
	ID             uint64           `gorm:"primaryKey" json:"id"`
	OrganizationID uint64           `gorm:"not null;uniqueIndex:idx_org_user" json:"organizationId"`
	UserID         uint64           `gorm:"not null;uniqueIndex:idx_org_user;index" json:"userId"`
	Role           OrgRole          `gorm:"type:varchar(20);not null" json:"role"`
	Status         MembershipStatus `gorm:"type:varchar(20);not null" json:"status"`
	InvitedBy      *uint64          `json:"invitedBy,omitempty"`
	JoinedAt       *time.Time       `json:"joinedAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`

	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

// TableName specifies the database table name for the OrganizationUser model.
func (OrganizationUser) TableName() string {
	return "organization_users"
}

// IsOrgRole reports whether r names a known organization role.
func IsOrgRole(r OrgRole) bool {
	switch r {
	case OrgRoleAdmin, OrgRoleManager, OrgRoleInstructor, OrgRoleMember:
		return true
	default:
		return false
	}
}
