// Package studygroup implements course study groups: ad-hoc groups sharing course content,
// independent of organization membership.
package studygroup

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/db/paginate"
	"github.com/lmsforge/lms-backend/internal/service/course"
	"github.com/lmsforge/lms-backend/internal/service/organization"
)

// Service implements the study group operations.
type Service struct {
	db *gorm.DB
}

// New creates a study group Service.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// SaveInput creates a group when ID is nil and updates it otherwise.
// A nil Description or OrganizationID keeps the stored value on update.
type SaveInput struct {
	ID             *uint64
	Name           string
	Description    *string
	OrganizationID *uint64
}

// checkOrganization requires orgID to exist and callerID to be one of its ACTIVE members.
func checkOrganization(tx *gorm.DB, orgID, callerID uint64) error {
	if err := organization.Exists(tx, orgID); err != nil {
		return err
	}

	_, err := organization.RequireRole(tx, orgID, callerID)

	return err
}

func find(tx *gorm.DB, id uint64) (*models.CourseStudyGroup, error) {
	var g models.CourseStudyGroup

	err := tx.First(&g, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStudyGroupNotFound
	}

	if err != nil {
		return nil, err
	}

	return &g, nil
}

func findMember(tx *gorm.DB, groupID, userID uint64) (*models.CourseStudyGroupUser, error) {
	var m models.CourseStudyGroupUser

	err := tx.Where("study_group_id = ? AND user_id = ?", groupID, userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	}

	if err != nil {
		return nil, err
	}

	return &m, nil
}

// callerRole returns the role of callerID in groupID, ErrNotMember when there is none.
func callerRole(tx *gorm.DB, groupID, callerID uint64) (models.StudyGroupRole, error) {
	m, err := findMember(tx, groupID, callerID)
	if errors.Is(err, ErrMemberNotFound) {
		return "", ErrNotMember
	}

	if err != nil {
		return "", err
	}

	return m.Role, nil
}

func isOwnerOrAdmin(r models.StudyGroupRole) bool {
	return r == models.StudyGroupOwner || r == models.StudyGroupAdmin
}

// Save creates a study group owned by callerID, or updates an existing one when in.ID is set.
// The bool result is true when a group was created.
func (s *Service) Save(ctx context.Context, callerID uint64, in SaveInput) (*models.CourseStudyGroup, bool, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, false, ErrGroupNameRequired
	}

	var (
		g       *models.CourseStudyGroup
		created = in.ID == nil
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if created {
			if in.OrganizationID != nil {
				if err := checkOrganization(tx, *in.OrganizationID, callerID); err != nil {
					return err
				}
			}

			g = &models.CourseStudyGroup{
				OwnerID:        callerID,
				OrganizationID: in.OrganizationID,
				Name:           name,
			}
			if in.Description != nil {
				g.Description = *in.Description
			}

			if err := tx.Create(g).Error; err != nil {
				return err
			}

			return tx.Create(&models.CourseStudyGroupUser{
				StudyGroupID: g.ID,
				UserID:       callerID,
				Role:         models.StudyGroupOwner,
			}).Error
		}

		var err error
		if g, err = find(tx, *in.ID); err != nil {
			return err
		}

		role, err := callerRole(tx, g.ID, callerID)
		if err != nil {
			return err
		}

		if !isOwnerOrAdmin(role) {
			return ErrNotOwnerOrAdmin
		}

		g.Name = name
		if in.Description != nil {
			g.Description = *in.Description
		}

		if in.OrganizationID != nil {
			if err := checkOrganization(tx, *in.OrganizationID, callerID); err != nil {
				return err
			}

			g.OrganizationID = in.OrganizationID
		}

		return tx.Save(g).Error
	})
	if err != nil {
		return nil, false, err
	}

	return g, created, nil
}

// AddMember adds userID with role ADMIN or MEMBER, MEMBER when role is empty.
// callerID must be OWNER or ADMIN.
func (s *Service) AddMember(
	ctx context.Context,
	callerID, groupID, userID uint64,
	role models.StudyGroupRole,
) (*models.CourseStudyGroupUser, error) {
	if role == "" {
		role = models.StudyGroupMember
	}

	if role != models.StudyGroupAdmin && role != models.StudyGroupMember {
		return nil, ErrInvalidRole
	}

	var m *models.CourseStudyGroupUser

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := find(tx, groupID); err != nil {
			return err
		}

		r, err := callerRole(tx, groupID, callerID)
		if err != nil {
			return err
		}

		if !isOwnerOrAdmin(r) {
			return ErrNotOwnerOrAdmin
		}

		var n int64
		if err = tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
			return err
		}

		if n == 0 {
			return ErrUserNotFound
		}

		_, err = findMember(tx, groupID, userID)
		switch {
		case err == nil:
			return ErrAlreadyMember
		case !errors.Is(err, ErrMemberNotFound):
			return err
		}

		m = &models.CourseStudyGroupUser{StudyGroupID: groupID, UserID: userID, Role: role}

		return tx.Create(m).Error
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RemoveMember removes userID. Members may remove themselves, including the owner; OWNER
// and ADMIN may remove others, but only the owner may remove the owner.
func (s *Service) RemoveMember(ctx context.Context, callerID, groupID, userID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := find(tx, groupID); err != nil {
			return err
		}

		target, err := findMember(tx, groupID, userID)
		if err != nil {
			return err
		}

		if callerID != userID {
			r, err := callerRole(tx, groupID, callerID)
			if err != nil {
				return err
			}

			if !isOwnerOrAdmin(r) {
				return ErrNotOwnerOrAdmin
			}

			if target.Role == models.StudyGroupOwner {
				return ErrCannotRemoveOwner
			}
		}

		return tx.Delete(target).Error
	})
}

// AddContent shares courseID with the group. callerID must be a member.
func (s *Service) AddContent(ctx context.Context, callerID, groupID, courseID uint64) (*models.CourseStudyGroupContent, error) {
	var c *models.CourseStudyGroupContent

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := find(tx, groupID); err != nil {
			return err
		}

		if _, err := callerRole(tx, groupID, callerID); err != nil {
			return err
		}

		if _, err := course.Find(tx, courseID); err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&models.CourseStudyGroupContent{}).
			Where("study_group_id = ? AND course_id = ?", groupID, courseID).
			Count(&n).Error; err != nil {
			return err
		}

		if n > 0 {
			return ErrContentExists
		}

		c = &models.CourseStudyGroupContent{StudyGroupID: groupID, CourseID: courseID, AddedBy: callerID}

		return tx.Create(c).Error
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// RemoveContent unshares courseID. OWNER, ADMIN and the member who added it may remove it.
func (s *Service) RemoveContent(ctx context.Context, callerID, groupID, courseID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := find(tx, groupID); err != nil {
			return err
		}

		r, err := callerRole(tx, groupID, callerID)
		if err != nil {
			return err
		}

		var c models.CourseStudyGroupContent

		err = tx.Where("study_group_id = ? AND course_id = ?", groupID, courseID).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}

		if err != nil {
			return err
		}

		if !isOwnerOrAdmin(r) && c.AddedBy != callerID {
			return ErrCannotRemoveContent
		}

		return tx.Delete(&c).Error
	})
}

// Delete removes the group with its memberships and content. Only the owner may delete it.
func (s *Service) Delete(ctx context.Context, callerID, groupID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := find(tx, groupID)
		if err != nil {
			return err
		}

		if g.OwnerID != callerID {
			return ErrNotOwner
		}

		if err = tx.Where("study_group_id = ?", groupID).Delete(&models.CourseStudyGroupUser{}).Error; err != nil {
			return err
		}

		if err = tx.Where("study_group_id = ?", groupID).Delete(&models.CourseStudyGroupContent{}).Error; err != nil {
			return err
		}

		if err = tx.Delete(g).Error; err != nil {
			return err
		}

		log.Info().Uint64("study_group_id", groupID).Uint64("user_id", callerID).Msg("study group deleted")

		return nil
	})
}

// List returns the groups callerID belongs to.
func (s *Service) List(ctx context.Context, callerID uint64, p paginate.Params) (paginate.Result[models.CourseStudyGroup], error) {
	q := s.db.WithContext(ctx).
		Where("id IN (?)", s.db.WithContext(ctx).Model(&models.CourseStudyGroupUser{}).Select("study_group_id").Where("user_id = ?", callerID)).
		Order("id DESC")

	return paginate.Find[models.CourseStudyGroup](q, p)
}

// Detail returns a group with its members and shared courses. callerID must be a member.
func (s *Service) Detail(ctx context.Context, callerID, groupID uint64) (*models.CourseStudyGroup, error) {
	db := s.db.WithContext(ctx)

	if _, err := find(db, groupID); err != nil {
		return nil, err
	}

	if _, err := callerRole(db, groupID, callerID); err != nil {
		return nil, err
	}

	var g models.CourseStudyGroup

	err := db.
		Preload("Members", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Preload("Members.User").
		Preload("Contents", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Preload("Contents.Course").
		First(&g, groupID).Error
	if err != nil {
		return nil, err
	}

	return &g, nil
}
