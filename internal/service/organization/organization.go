// Package organization maintains organizations, their memberships and invitations.
package organization

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/mailer"
)

// Options configures the invitation flow.
type Options struct {
	Mailer       mailer.Mailer
	InviteExpiry time.Duration
	AcceptURL    string
	AppName      string
}

// Service implements the organization operations.
type Service struct {
	db   *gorm.DB
	opts Options
	now  func() time.Time
}

// New creates an organization Service.
func New(db *gorm.DB, opts Options) *Service {
	if opts.Mailer == nil {
		opts.Mailer = mailer.Log{}
	}

	if opts.InviteExpiry <= 0 {
		opts.InviteExpiry = 7 * 24 * time.Hour
	}

	return &Service{db: db, opts: opts, now: time.Now}
}

// CreateInput holds the fields of a new organization.
type CreateInput struct {
	Name   string
	Email  string
	Domain string
}

// UpdateInput holds the changed fields of an organization, nil fields are kept.
type UpdateInput struct {
	OrganizationID uint64
	Name           *string
	Email          *string
	Domain         *string
	Status         *models.OrganizationStatus
}

// MemberFilter narrows GetOrganizationUsers, empty fields match everything.
type MemberFilter struct {
	Role   models.OrgRole
	Status models.MembershipStatus
}

// Create inserts an organization and makes creatorID its active ADMIN.
func (s *Service) Create(ctx context.Context, creatorID uint64, in CreateInput) (*models.Organization, error) {
	org := &models.Organization{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Domain:    strings.TrimSpace(in.Domain),
		Status:    models.OrganizationStatusActive,
		CreatedBy: creatorID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNameFree(tx, org.Name, 0); err != nil {
			return err
		}

		if err := tx.Create(org).Error; err != nil {
			return err
		}

		now := s.now()

		return tx.Create(&models.OrganizationUser{
			OrganizationID: org.ID,
			UserID:         creatorID,
			Role:           models.OrgRoleAdmin,
			Status:         models.MembershipActive,
			JoinedAt:       &now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint64("organization_id", org.ID).Uint64("user_id", creatorID).Msg("organization created")

	return org, nil
}

func ensureNameFree(tx *gorm.DB, name string, exceptID uint64) error {
	var n int64
	if err := tx.Model(&models.Organization{}).Where("name = ? AND id <> ?", name, exceptID).Count(&n).Error; err != nil {
		return err
	}

	if n > 0 {
		return ErrOrganizationNameTaken
	}

	return nil
}

// ListForUser returns the organizations userID is an active member of.
func (s *Service) ListForUser(ctx context.Context, userID uint64) ([]models.Organization, error) {
	orgs := make([]models.Organization, 0)

	err := s.db.WithContext(ctx).
		Joins("JOIN organization_users ou ON ou.organization_id = organizations.id").
		Where("ou.user_id = ? AND ou.status = ?", userID, models.MembershipActive).
		Order("organizations.name").
		Find(&orgs).Error

	return orgs, err
}

// Get returns an organization visible to callerID.
func (s *Service) Get(ctx context.Context, callerID, orgID uint64) (*models.Organization, error) {
	db := s.db.WithContext(ctx)

	org, err := find(db, orgID)
	if err != nil {
		return nil, err
	}

	if _, err = RequireRole(db, orgID, callerID); err != nil {
		return nil, err
	}

	return org, nil
}

func find(tx *gorm.DB, orgID uint64) (*models.Organization, error) {
	var org models.Organization

	err := tx.First(&org, orgID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}

	if err != nil {
		return nil, err
	}

	return &org, nil
}

// Update changes an organization, callerID must be ADMIN or MANAGER.
func (s *Service) Update(ctx context.Context, callerID uint64, in UpdateInput) (*models.Organization, error) {
	var org *models.Organization

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if org, err = find(tx, in.OrganizationID); err != nil {
			return err
		}

		if _, err = RequireRole(tx, org.ID, callerID, ManagerRoles...); err != nil {
			return err
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if err = ensureNameFree(tx, name, org.ID); err != nil {
				return err
			}

			org.Name = name
		}

		if in.Email != nil {
			org.Email = strings.ToLower(strings.TrimSpace(*in.Email))
		}

		if in.Domain != nil {
			org.Domain = strings.TrimSpace(*in.Domain)
		}

		if in.Status != nil {
			if *in.Status != models.OrganizationStatusActive && *in.Status != models.OrganizationStatusInactive {
				return ErrInvalidStatus
			}

			org.Status = *in.Status
		}

		return tx.Save(org).Error
	})
	if err != nil {
		return nil, err
	}

	return org, nil
}

// Delete removes an organization with its groups, group memberships, invitations and
// memberships. Study groups tagged with it are kept and untagged. callerID must be ADMIN.
func (s *Service) Delete(ctx context.Context, callerID, orgID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := find(tx, orgID); err != nil {
			return err
		}

		if _, err := RequireRole(tx, orgID, callerID, models.OrgRoleAdmin); err != nil {
			return err
		}

		steps := []any{
			&models.OrganizationUserGroup{},
			&models.OrganizationGroup{},
			&models.OrganizationUserInvite{},
			&models.OrganizationUser{},
		}
		for _, m := range steps {
			if err := tx.Where("organization_id = ?", orgID).Delete(m).Error; err != nil {
				return err
			}
		}

		// study groups outlive the organization, only the tag is dropped
		err := tx.Model(&models.CourseStudyGroup{}).
			Where("organization_id = ?", orgID).
			Update("organization_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&models.Organization{}, orgID).Error
	})
}

// AddUserToOrganization inserts a membership row. It fails when the organization or the
// user does not exist, or when the pair is already present.
func (s *Service) AddUserToOrganization(
	ctx context.Context,
	orgID, userID uint64,
	role models.OrgRole,
	invitedBy *uint64,
	status models.MembershipStatus,
) (*models.OrganizationUser, error) {
	var m *models.OrganizationUser

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		m, err = s.addUser(tx, orgID, userID, role, invitedBy, status)

		return err
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) addUser(
	tx *gorm.DB,
	orgID, userID uint64,
	role models.OrgRole,
	invitedBy *uint64,
	status models.MembershipStatus,
) (*models.OrganizationUser, error) {
	if !models.IsOrgRole(role) {
		return nil, ErrInvalidRole
	}

	if status != models.MembershipPending && status != models.MembershipActive {
		return nil, ErrInvalidStatus
	}

	if err := Exists(tx, orgID); err != nil {
		return nil, err
	}

	var n int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, ErrUserNotFound
	}

	if err := tx.Model(&models.OrganizationUser{}).
		Where("organization_id = ? AND user_id = ?", orgID, userID).
		Count(&n).Error; err != nil {
		return nil, err
	}

	if n > 0 {
		return nil, ErrAlreadyMember
	}

	m := &models.OrganizationUser{
		OrganizationID: orgID,
		UserID:         userID,
		Role:           role,
		Status:         status,
		InvitedBy:      invitedBy,
	}

	if status == models.MembershipActive {
		now := s.now()
		m.JoinedAt = &now
	}

	if err := tx.Create(m).Error; err != nil {
		return nil, err
	}

	return m, nil
}

// AddUser adds userID directly as an ACTIVE member. callerID must be ADMIN or MANAGER.
func (s *Service) AddUser(
	ctx context.Context,
	callerID, orgID, userID uint64,
	role models.OrgRole,
) (*models.OrganizationUser, error) {
	var m *models.OrganizationUser

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Exists(tx, orgID); err != nil {
			return err
		}

		if _, err := RequireRole(tx, orgID, callerID, ManagerRoles...); err != nil {
			return err
		}

		var err error
		m, err = s.addUser(tx, orgID, userID, role, &callerID, models.MembershipActive)

		return err
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// GetOrganizationUsers lists the memberships of orgID with their users.
func (s *Service) GetOrganizationUsers(
	ctx context.Context,
	orgID uint64,
	filter MemberFilter,
) ([]models.OrganizationUser, error) {
	db := s.db.WithContext(ctx)

	if err := Exists(db, orgID); err != nil {
		return nil, err
	}

	q := db.Preload("User").Where("organization_id = ?", orgID)

	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	members := make([]models.OrganizationUser, 0)
	if err := q.Order("id").Find(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}

// ListMembers is GetOrganizationUsers for an active member callerID.
func (s *Service) ListMembers(
	ctx context.Context,
	callerID, orgID uint64,
	filter MemberFilter,
) ([]models.OrganizationUser, error) {
	db := s.db.WithContext(ctx)

	if err := Exists(db, orgID); err != nil {
		return nil, err
	}

	if _, err := RequireRole(db, orgID, callerID); err != nil {
		return nil, err
	}

	return s.GetOrganizationUsers(ctx, orgID, filter)
}

func findMembership(tx *gorm.DB, orgID, userID uint64) (*models.OrganizationUser, error) {
	var m models.OrganizationUser

	err := tx.Where("organization_id = ? AND user_id = ?", orgID, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMembershipNotFound
	}

	if err != nil {
		return nil, err
	}

	return &m, nil
}

// protectLastAdmin fails when m is the only active admin of its organization.
func protectLastAdmin(tx *gorm.DB, m *models.OrganizationUser) error {
	if m.Role != models.OrgRoleAdmin || m.Status != models.MembershipActive {
		return nil
	}

	n, err := countActiveAdmins(tx, m.OrganizationID)
	if err != nil {
		return err
	}

	if n <= 1 {
		return ErrLastAdmin
	}

	return nil
}

// UpdateUserRole changes the role of userID. callerID must be ADMIN.
func (s *Service) UpdateUserRole(
	ctx context.Context,
	callerID, orgID, userID uint64,
	role models.OrgRole,
) (*models.OrganizationUser, error) {
	if !models.IsOrgRole(role) {
		return nil, ErrInvalidRole
	}

	var m *models.OrganizationUser

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Exists(tx, orgID); err != nil {
			return err
		}

		if _, err := RequireRole(tx, orgID, callerID, models.OrgRoleAdmin); err != nil {
			return err
		}

		var err error
		if m, err = findMembership(tx, orgID, userID); err != nil {
			return err
		}

		if role != models.OrgRoleAdmin {
			if err = protectLastAdmin(tx, m); err != nil {
				return err
			}
		}

		m.Role = role

		return tx.Save(m).Error
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RemoveUser deletes the membership of userID together with their group memberships in
// the organization. Members may remove themselves, ADMIN and MANAGER may remove others,
// only an ADMIN may remove an ADMIN.
func (s *Service) RemoveUser(ctx context.Context, callerID, orgID, userID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := Exists(tx, orgID); err != nil {
			return err
		}

		m, err := findMembership(tx, orgID, userID)
		if err != nil {
			return err
		}

		if callerID != userID {
			callerRole, err := RequireRole(tx, orgID, callerID, ManagerRoles...)
			if err != nil {
				return err
			}

			if m.Role == models.OrgRoleAdmin && callerRole != models.OrgRoleAdmin {
				return ErrInsufficientRole
			}
		}

		if err = protectLastAdmin(tx, m); err != nil {
			return err
		}

		if err = tx.Where("organization_id = ? AND user_id = ?", orgID, userID).
			Delete(&models.OrganizationUserGroup{}).Error; err != nil {
			return err
		}

		return tx.Delete(m).Error
	})
}
