package models

import "time"

// GroupStatus is the lifecycle state of an organization group.
type GroupStatus string

// GroupRole is the role of a user inside an organization group.
type GroupRole string

const (
	// GroupStatusActive is a usable group.
	GroupStatusActive GroupStatus = "ACTIVE"
	// GroupStatusArchived is a group kept for history.
	GroupStatusArchived GroupStatus = "ARCHIVED"

	// GroupRoleMember is a plain group member.
	GroupRoleMember GroupRole = "MEMBER"
	// GroupRoleAdmin may change the group's composition.
	GroupRoleAdmin GroupRole = "ADMIN"
)

// OrganizationGroup is a named subdivision of an organization's users.
// Names are unique per organization with an exact, case-sensitive comparison done by
// the service, so no unique index is declared (mysql collations compare case-insensitively).
type OrganizationGroup struct {
	ID             uint64      `gorm:"primaryKey" json:"id"`
	OrganizationID uint64      `gorm:"not null;index" json:"organizationId"`
	Name           string      `gorm:"size:150;not null" json:"name"`
	Description    string      `gorm:"size:500" json:"description"`
	Status         GroupStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedBy      uint64      `json:"createdBy"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// TableName specifies the database table name for the OrganizationGroup model.
func (OrganizationGroup) TableName() string {
	return "organization_groups"
}

// OrganizationUserGroup is the group membership join row, unique on (group, user).
type OrganizationUserGroup struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	GroupID        uint64    `gorm:"not null;uniqueIndex:idx_group_user" json:"groupId"`
	UserID         uint64    `gorm:"not null;uniqueIndex:idx_group_user;index" json:"userId"`
	OrganizationID uint64    `gorm:"not null;index" json:"organizationId"`
	Role           GroupRole `gorm:"type:varchar(20);not null" json:"role"`
	AddedBy        uint64    `json:"addedBy"`
	CreatedAt      time.Time `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the database table name for the OrganizationUserGroup model.
func (OrganizationUserGroup) TableName() string {
	return "organization_user_groups"
}
