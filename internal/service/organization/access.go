package organization

import (
	"errors"
	"slices"

	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/db/models"
)

// ManagerRoles may manage members, groups and invitations.
var ManagerRoles = []models.OrgRole{models.OrgRoleAdmin, models.OrgRoleManager}

// ActiveRole returns the role of userID in orgID when the membership is ACTIVE.
func ActiveRole(tx *gorm.DB, orgID, userID uint64) (models.OrgRole, error) {
	var m models.OrganizationUser

	err := tx.Where("organization_id = ? AND user_id = ? AND status = ?", orgID, userID, models.MembershipActive).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotMember
	}

	if err != nil {
		return "", err
	}

	return m.Role, nil
}

// RequireRole checks that userID is an ACTIVE member of orgID holding one of roles.
// An empty roles list only requires active membership.
func RequireRole(tx *gorm.DB, orgID, userID uint64, roles ...models.OrgRole) (models.OrgRole, error) {
	role, err := ActiveRole(tx, orgID, userID)
	if err != nil {
		return "", err
	}

	if len(roles) > 0 && !slices.Contains(roles, role) {
		return "", ErrInsufficientRole
	}

	return role, nil
}

// Exists returns ErrOrganizationNotFound when orgID does not exist.
func Exists(tx *gorm.DB, orgID uint64) error {
	var n int64
	if err := tx.Model(&models.Organization{}).Where("id = ?", orgID).Count(&n).Error; err != nil {
		return err
	}

	if n == 0 {
		return ErrOrganizationNotFound
	}

	return nil
}

func countActiveAdmins(tx *gorm.DB, orgID uint64) (int64, error) {
	var n int64
	err := tx.Model(&models.OrganizationUser{}).
		Where("organization_id = ? AND role = ? AND status = ?", orgID, models.OrgRoleAdmin, models.MembershipActive).
		Count(&n).Error

	return n, err
}
