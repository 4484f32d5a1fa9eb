// Package orggroup manages named groups of users inside an organization.
package orggroup

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/service/organization"
)

// Service implements the organization group operations.
type Service struct {
	db *gorm.DB
}

// New creates a group Service.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// UpdateInput holds the changed fields of a group, nil fields are kept.
type UpdateInput struct {
	GroupID     uint64
	Name        *string
	Description *string
	Status      *models.GroupStatus
}

// GroupSummary is a group with its member count.
type GroupSummary struct {
	models.OrganizationGroup
	MemberCount int64 `json:"memberCount"`
}

// GroupDetail is a group with its members.
type GroupDetail struct {
	models.OrganizationGroup
	Members []models.OrganizationUserGroup `json:"members"`
}

// AddResult reports the outcome of AddUsersToGroup.
type AddResult struct {
	Added   []uint64 `json:"added"`
	Skipped []uint64 `json:"skipped"`
}

func find(tx *gorm.DB, groupID uint64) (*models.OrganizationGroup, error) {
	var g models.OrganizationGroup

	err := tx.First(&g, groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}

	if err != nil {
		return nil, err
	}

	return &g, nil
}

// ensureNameFree compares names exactly, "Math" and "math" are different groups.
func ensureNameFree(tx *gorm.DB, orgID uint64, name string, exceptID uint64) error {
	var names []string
	if err := tx.Model(&models.OrganizationGroup{}).
		Where("organization_id = ? AND id <> ?", orgID, exceptID).
		Pluck("name", &names).Error; err != nil {
		return err
	}

	if slices.Contains(names, name) {
		return ErrGroupNameTaken
	}

	return nil
}

// CreateGroup inserts a group into orgID. It fails when a group with the same name exists
// in the organization.
func (s *Service) CreateGroup(ctx context.Context, orgID uint64, name, description string, createdBy uint64) (*models.OrganizationGroup, error) {
	g := &models.OrganizationGroup{
		OrganizationID: orgID,
		Name:           strings.TrimSpace(name),
		Description:    strings.TrimSpace(description),
		Status:         models.GroupStatusActive,
		CreatedBy:      createdBy,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := organization.Exists(tx, orgID); err != nil {
			return err
		}

		if err := ensureNameFree(tx, orgID, g.Name, 0); err != nil {
			return err
		}

		return tx.Create(g).Error
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

// Create is CreateGroup for a caller that must be organization ADMIN or MANAGER.
func (s *Service) Create(ctx context.Context, callerID, orgID uint64, name, description string) (*models.OrganizationGroup, error) {
	db := s.db.WithContext(ctx)

	if err := organization.Exists(db, orgID); err != nil {
		return nil, err
	}

	if _, err := organization.RequireRole(db, orgID, callerID, organization.ManagerRoles...); err != nil {
		return nil, err
	}

	return s.CreateGroup(ctx, orgID, name, description, callerID)
}

// Update changes a group. callerID must be organization ADMIN or MANAGER.
func (s *Service) Update(ctx context.Context, callerID uint64, in UpdateInput) (*models.OrganizationGroup, error) {
	var g *models.OrganizationGroup

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if g, err = find(tx, in.GroupID); err != nil {
			return err
		}

		if _, err = organization.RequireRole(tx, g.OrganizationID, callerID, organization.ManagerRoles...); err != nil {
			return err
		}

		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if err = ensureNameFree(tx, g.OrganizationID, name, g.ID); err != nil {
				return err
			}

			g.Name = name
		}

		if in.Description != nil {
			g.Description = strings.TrimSpace(*in.Description)
		}

		if in.Status != nil {
			if *in.Status != models.GroupStatusActive && *in.Status != models.GroupStatusArchived {
				return ErrInvalidStatus
			}

			g.Status = *in.Status
		}

		return tx.Save(g).Error
	})
	if err != nil {
		return nil, err
	}

	return g, nil
}

// List returns the groups of orgID with member counts. callerID must be an active member.
func (s *Service) List(ctx context.Context, callerID, orgID uint64) ([]GroupSummary, error) {
	db := s.db.WithContext(ctx)

	if err := organization.Exists(db, orgID); err != nil {
		return nil, err
	}

	if _, err := organization.RequireRole(db, orgID, callerID); err != nil {
		return nil, err
	}

	var groups []models.OrganizationGroup
	if err := db.Where("organization_id = ?", orgID).Order("name").Find(&groups).Error; err != nil {
		return nil, err
	}

	type count struct {
		GroupID uint64
		N       int64
	}

	var counts []count
	if err := db.Model(&models.OrganizationUserGroup{}).
		Select("group_id, COUNT(*) AS n").
		Where("organization_id = ?", orgID).
		Group("group_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byGroup := make(map[uint64]int64, len(counts))
	for _, c := range counts {
		byGroup[c.GroupID] = c.N
	}

	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupSummary{OrganizationGroup: g, MemberCount: byGroup[g.ID]})
	}

	return out, nil
}

// Members returns the memberships of groupID with their users.
func (s *Service) Members(ctx context.Context, callerID, groupID uint64) ([]models.OrganizationUserGroup, error) {
	db := s.db.WithContext(ctx)

	g, err := find(db, groupID)
	if err != nil {
		return nil, err
	}

	if _, err = organization.RequireRole(db, g.OrganizationID, callerID); err != nil {
		return nil, err
	}

	return members(db, groupID)
}

func members(tx *gorm.DB, groupID uint64) ([]models.OrganizationUserGroup, error) {
	out := make([]models.OrganizationUserGroup, 0)
	err := tx.Preload("User").Where("group_id = ?", groupID).Order("id").Find(&out).Error

	return out, err
}

// Detail returns a group with its members. callerID must be an active organization member.
func (s *Service) Detail(ctx context.Context, callerID, groupID uint64) (*GroupDetail, error) {
	db := s.db.WithContext(ctx)

	g, err := find(db, groupID)
	if err != nil {
		return nil, err
	}

	if _, err = organization.RequireRole(db, g.OrganizationID, callerID); err != nil {
		return nil, err
	}

	m, err := members(db, groupID)
	if err != nil {
		return nil, err
	}

	return &GroupDetail{OrganizationGroup: *g, Members: m}, nil
}

// DeleteGroup removes the memberships of groupID and then the group.
func (s *Service) DeleteGroup(ctx context.Context, groupID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := find(tx, groupID); err != nil {
			return err
		}

		return deleteGroup(tx, groupID)
	})
}

func deleteGroup(tx *gorm.DB, groupID uint64) error {
	if err := tx.Where("group_id = ?", groupID).Delete(&models.OrganizationUserGroup{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.OrganizationGroup{}, groupID).Error
}

// Delete is DeleteGroup for a caller that must be organization ADMIN or MANAGER.
func (s *Service) Delete(ctx context.Context, callerID, groupID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := find(tx, groupID)
		if err != nil {
			return err
		}

		if _, err = organization.RequireRole(tx, g.OrganizationID, callerID, organization.ManagerRoles...); err != nil {
			return err
		}

		if err = deleteGroup(tx, groupID); err != nil {
			return err
		}

		log.Info().Uint64("group_id", groupID).Uint64("user_id", callerID).Msg("organization group deleted")

		return nil
	})
}

// AddUsersToGroup adds userIDs to groupID with role. Every user must be an ACTIVE member of
// the group's organization, otherwise nothing is inserted. Users already in the group are
// left unchanged and reported as skipped.
func (s *Service) AddUsersToGroup(
	ctx context.Context,
	groupID uint64,
	userIDs []uint64,
	role models.GroupRole,
	addedBy uint64,
) (*AddResult, error) {
	var res *AddResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := find(tx, groupID)
		if err != nil {
			return err
		}

		res, err = addUsers(tx, g, userIDs, role, addedBy)

		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func addUsers(
	tx *gorm.DB,
	g *models.OrganizationGroup,
	userIDs []uint64,
	role models.GroupRole,
	addedBy uint64,
) (*AddResult, error) {
	if role == "" {
		role = models.GroupRoleMember
	}

	if role != models.GroupRoleMember && role != models.GroupRoleAdmin {
		return nil, ErrInvalidRole
	}

	ids := slices.Clone(userIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	if len(ids) == 0 {
		return nil, ErrNoUsers
	}

	var active int64
	if err := tx.Model(&models.OrganizationUser{}).
		Where("organization_id = ? AND status = ? AND user_id IN ?", g.OrganizationID, models.MembershipActive, ids).
		Count(&active).Error; err != nil {
		return nil, err
	}

	if active != int64(len(ids)) {
		return nil, ErrNotOrganizationMember
	}

	var existing []uint64
	if err := tx.Model(&models.OrganizationUserGroup{}).
		Where("group_id = ? AND user_id IN ?", g.ID, ids).
		Pluck("user_id", &existing).Error; err != nil {
		return nil, err
	}

	res := &AddResult{Added: make([]uint64, 0, len(ids)), Skipped: make([]uint64, 0)}

	rows := make([]models.OrganizationUserGroup, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(existing, id) {
			res.Skipped = append(res.Skipped, id)
			continue
		}

		rows = append(rows, models.OrganizationUserGroup{
			GroupID:        g.ID,
			UserID:         id,
			OrganizationID: g.OrganizationID,
			Role:           role,
			AddedBy:        addedBy,
		})
		res.Added = append(res.Added, id)
	}

	if len(rows) > 0 {
		if err := tx.Create(&rows).Error; err != nil {
			return nil, err
		}
	}

	return res, nil
}

// canManage reports whether callerID may change the composition of g: organization ADMIN or
// MANAGER, or group ADMIN.
func canManage(tx *gorm.DB, g *models.OrganizationGroup, callerID uint64) error {
	role, err := organization.ActiveRole(tx, g.OrganizationID, callerID)
	if err != nil {
		return err
	}

	if slices.Contains(organization.ManagerRoles, role) {
		return nil
	}

	var n int64
	if err = tx.Model(&models.OrganizationUserGroup{}).
		Where("group_id = ? AND user_id = ? AND role = ?", g.ID, callerID, models.GroupRoleAdmin).
		Count(&n).Error; err != nil {
		return err
	}

	if n == 0 {
		return ErrCannotManageGroup
	}

	return nil
}

// AddUsers is AddUsersToGroup for a caller that must be organization ADMIN or MANAGER, or
// group ADMIN.
func (s *Service) AddUsers(
	ctx context.Context,
	callerID, groupID uint64,
	userIDs []uint64,
	role models.GroupRole,
) (*AddResult, error) {
	var res *AddResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := find(tx, groupID)
		if err != nil {
			return err
		}

		if err = canManage(tx, g, callerID); err != nil {
			return err
		}

		res, err = addUsers(tx, g, userIDs, role, callerID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// RemoveUser removes userID from groupID. Users may leave on their own, otherwise the caller
// must be organization ADMIN or MANAGER, or group ADMIN.
func (s *Service) RemoveUser(ctx context.Context, callerID, groupID, userID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := find(tx, groupID)
		if err != nil {
			return err
		}

		if callerID != userID {
			if err = canManage(tx, g, callerID); err != nil {
				return err
			}
		}

		res := tx.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.OrganizationUserGroup{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrNotGroupMember
		}

		return nil
	})
}
