package models

import "time"

// InviteStatus is the state of an emailed organization invitation.
type InviteStatus string

const (
	// InvitePending waits for the invitee.
	InvitePending InviteStatus = "PENDING"
	// InviteAccepted was accepted and turned into a membership.
	InviteAccepted InviteStatus = "ACCEPTED"
	// InviteDeclined was declined by the invitee.
	InviteDeclined InviteStatus = "DECLINED"
	// InviteExpired passed its expiry before an answer.
	InviteExpired InviteStatus = "EXPIRED"
	// InviteCancelled was withdrawn by an organization manager.
	InviteCancelled InviteStatus = "CANCELLED"
)

// PendingInviteIndexSQL creates the partial unique index allowing one pending invite per
// (organization, email). Dialects without partial indexes rely on the service check.
const PendingInviteIndexSQL = "CREATE UNIQUE INDEX IF NOT EXISTS idx_invite_pending_org_email " +
	"ON organization_user_invites (organization_id, email) WHERE status = 'PENDING'"

// OrganizationUserInvite is a membership offer sent to an email address that has no
// account yet. The token is only ever delivered by mail.
type OrganizationUserInvite struct {
	ID             uint64       `gorm:"primaryKey" json:"id"`
	OrganizationID uint64       `gorm:"not null;index" json:"organizationId"`
	Email          string       `gorm:"size:255;not null;index" json:"email"`
	Token          string       `gorm:"size:64;not null;uniqueIndex" json:"-"`
	Role           OrgRole      `gorm:"type:varchar(20);not null" json:"role"`
	Status         InviteStatus `gorm:"type:varchar(20);not null" json:"status"`
	InvitedBy      uint64       `gorm:"not null" json:"invitedBy"`
	ExpiresAt      time.Time    `gorm:"not null" json:"expiresAt"`
	RespondedAt    *time.Time   `json:"respondedAt,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// TableName specifies the database table name for the OrganizationUserInvite model.
func (OrganizationUserInvite) TableName() string {
	return "organization_user_invites"
}
