package organization

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/mailer"
	"github.com/lmsforge/lms-backend/internal/uniuri"
)

// InviteResult is the outcome of InviteUser. Membership is set when the email belongs to an
// existing user, Invite when a token invitation was mailed.
type InviteResult struct {
	Membership *models.OrganizationUser       `json:"membership,omitempty"`
	Invite     *models.OrganizationUserInvite `json:"invite,omitempty"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func findUserByEmail(tx *gorm.DB, email string) (*models.User, error) {
	var u models.User

	err := tx.Where("LOWER(email) = ?", normalizeEmail(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

// InviteUserToOrganization creates a PENDING membership for the existing user with email.
func (s *Service) InviteUserToOrganization(
	ctx context.Context,
	orgID uint64,
	email string,
	role models.OrgRole,
	invitedBy uint64,
) (*models.OrganizationUser, error) {
	var m *models.OrganizationUser

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUserByEmail(tx, email)
		if err != nil {
			return err
		}

		m, err = s.addUser(tx, orgID, u.ID, role, &invitedBy, models.MembershipPending)

		return err
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// InviteUser invites email into orgID. callerID must be ADMIN or MANAGER. A known email gets
// a PENDING membership, an unknown one a mailed token invitation.
func (s *Service) InviteUser(
	ctx context.Context,
	callerID, orgID uint64,
	email string,
	role models.OrgRole,
) (*InviteResult, error) {
	if !models.IsOrgRole(role) {
		return nil, ErrInvalidRole
	}

	email = normalizeEmail(email)

	var (
		res = &InviteResult{}
		org *models.Organization
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if org, err = find(tx, orgID); err != nil {
			return err
		}

		if _, err = RequireRole(tx, orgID, callerID, ManagerRoles...); err != nil {
			return err
		}

		u, err := findUserByEmail(tx, email)
		switch {
		case err == nil:
			res.Membership, err = s.addUser(tx, orgID, u.ID, role, &callerID, models.MembershipPending)
			return err
		case !errors.Is(err, ErrUserNotFound):
			return err
		}

		res.Invite, err = s.createInvite(tx, orgID, email, role, callerID)

		return err
	})
	if err != nil {
		return nil, err
	}

	if res.Invite != nil {
		s.sendInvite(ctx, org, res.Invite)
	}

	return res, nil
}

func (s *Service) createInvite(
	tx *gorm.DB,
	orgID uint64,
	email string,
	role models.OrgRole,
	invitedBy uint64,
) (*models.OrganizationUserInvite, error) {
	var pending models.OrganizationUserInvite

	err := tx.Where("organization_id = ? AND email = ? AND status = ?", orgID, email, models.InvitePending).
		First(&pending).Error

	switch {
	case err == nil:
		if pending.ExpiresAt.After(s.now()) {
			return nil, ErrInviteExists
		}

		if err = tx.Model(&pending).Update("status", models.InviteExpired).Error; err != nil {
			return nil, err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	token, err := uniuri.InviteToken()
	if err != nil {
		return nil, err
	}

	inv := &models.OrganizationUserInvite{
		OrganizationID: orgID,
		Email:          email,
		Token:          token,
		Role:           role,
		Status:         models.InvitePending,
		InvitedBy:      invitedBy,
		ExpiresAt:      s.now().Add(s.opts.InviteExpiry),
	}

	if err = tx.Create(inv).Error; err != nil {
		return nil, err
	}

	return inv, nil
}

// sendInvite mails the token link. The invitation stays valid when delivery fails so a
// manager can cancel and re-invite.
func (s *Service) sendInvite(ctx context.Context, org *models.Organization, inv *models.OrganizationUserInvite) {
	link := inv.Token
	if s.opts.AcceptURL != "" {
		link = s.opts.AcceptURL + "?token=" + url.QueryEscape(inv.Token)
	}

	msg := mailer.Message{
		ToEmail: inv.Email,
		Subject: fmt.Sprintf("You are invited to join %s", org.Name),
		PlainText: fmt.Sprintf(
			"You have been invited to join %s as %s.\n\nCreate an account with this email address and open:\n%s\n\nThe invitation expires on %s.",
			org.Name, inv.Role, link, inv.ExpiresAt.UTC().Format("2006-01-02 15:04 MST"),
		),
	}

	if err := s.opts.Mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).Uint64("invite_id", inv.ID).Str("email", inv.Email).Msg("failed to send invitation")
	}
}

// MyInvites returns the PENDING memberships of userID with their organizations.
func (s *Service) MyInvites(ctx context.Context, userID uint64) ([]models.OrganizationUser, error) {
	invites := make([]models.OrganizationUser, 0)

	err := s.db.WithContext(ctx).
		Preload("Organization").
		Where("user_id = ? AND status = ?", userID, models.MembershipPending).
		Order("id").
		Find(&invites).Error

	return invites, err
}

func findPending(tx *gorm.DB, orgID, userID uint64) (*models.OrganizationUser, error) {
	var m models.OrganizationUser

	err := tx.Where("organization_id = ? AND user_id = ? AND status = ?", orgID, userID, models.MembershipPending).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoPendingInvite
	}

	if err != nil {
		return nil, err
	}

	return &m, nil
}

// AcceptOrganizationInvite activates the pending membership of userID and stamps joinedAt.
func (s *Service) AcceptOrganizationInvite(ctx context.Context, orgID, userID uint64) (*models.OrganizationUser, error) {
	var m *models.OrganizationUser

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if m, err = findPending(tx, orgID, userID); err != nil {
			return err
		}

		now := s.now()
		m.Status = models.MembershipActive
		m.JoinedAt = &now

		return tx.Save(m).Error
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RejectOrganizationInvite deletes the pending membership of userID.
func (s *Service) RejectOrganizationInvite(ctx context.Context, orgID, userID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := findPending(tx, orgID, userID)
		if err != nil {
			return err
		}

		return tx.Delete(m).Error
	})
}

func findInviteByToken(tx *gorm.DB, token string) (*models.OrganizationUserInvite, error) {
	var inv models.OrganizationUserInvite

	err := tx.Where("token = ?", token).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInviteNotFound
	}

	if err != nil {
		return nil, err
	}

	return &inv, nil
}

// checkTokenInvite loads the invitation for token and verifies that it is pending, that it
// is addressed to userID and that it has not expired. Expired invitations are marked
// EXPIRED before ErrInviteExpired is returned.
func (s *Service) checkTokenInvite(
	ctx context.Context,
	userID uint64,
	token string,
) (*models.OrganizationUserInvite, error) {
	db := s.db.WithContext(ctx)

	inv, err := findInviteByToken(db, token)
	if err != nil {
		return nil, err
	}

	var u models.User
	if err = db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	if normalizeEmail(u.Email) != inv.Email {
		return nil, ErrInviteEmailMismatch
	}

	if inv.Status != models.InvitePending {
		return nil, ErrInviteNotPending
	}

	if !inv.ExpiresAt.After(s.now()) {
		err = db.Model(&models.OrganizationUserInvite{}).
			Where("id = ? AND status = ?", inv.ID, models.InvitePending).
			Update("status", models.InviteExpired).Error
		if err != nil {
			return nil, err
		}

		return nil, ErrInviteExpired
	}

	return inv, nil
}

// respond moves a pending invitation to status. It fails when another request answered first.
func (s *Service) respond(tx *gorm.DB, inv *models.OrganizationUserInvite, status models.InviteStatus) error {
	now := s.now()

	res := tx.Model(&models.OrganizationUserInvite{}).
		Where("id = ? AND status = ?", inv.ID, models.InvitePending).
		Updates(map[string]any{"status": status, "responded_at": now})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrInviteNotPending
	}

	inv.Status = status
	inv.RespondedAt = &now

	return nil
}

// AcceptInviteToken accepts a mailed invitation for userID and creates, or activates, the
// membership with the invited role.
func (s *Service) AcceptInviteToken(ctx context.Context, userID uint64, token string) (*models.OrganizationUser, error) {
	inv, err := s.checkTokenInvite(ctx, userID, token)
	if err != nil {
		return nil, err
	}

	var m *models.OrganizationUser

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.respond(tx, inv, models.InviteAccepted); err != nil {
			return err
		}

		existing, err := findMembership(tx, inv.OrganizationID, userID)
		switch {
		case errors.Is(err, ErrMembershipNotFound):
			m, err = s.addUser(tx, inv.OrganizationID, userID, inv.Role, &inv.InvitedBy, models.MembershipActive)
			return err
		case err != nil:
			return err
		case existing.Status != models.MembershipPending:
			return ErrAlreadyMember
		}

		now := s.now()
		existing.Status = models.MembershipActive
		existing.JoinedAt = &now
		m = existing

		return tx.Save(m).Error
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// DeclineInviteToken declines a mailed invitation addressed to userID.
func (s *Service) DeclineInviteToken(ctx context.Context, userID uint64, token string) (*models.OrganizationUserInvite, error) {
	inv, err := s.checkTokenInvite(ctx, userID, token)
	if err != nil {
		return nil, err
	}

	if err = s.respond(s.db.WithContext(ctx), inv, models.InviteDeclined); err != nil {
		return nil, err
	}

	return inv, nil
}

// CancelInvite withdraws a pending invitation. callerID must be ADMIN or MANAGER.
func (s *Service) CancelInvite(ctx context.Context, callerID, inviteID uint64) (*models.OrganizationUserInvite, error) {
	var inv models.OrganizationUserInvite

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inv, inviteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInviteNotFound
			}

			return err
		}

		if _, err := RequireRole(tx, inv.OrganizationID, callerID, ManagerRoles...); err != nil {
			return err
		}

		if inv.Status != models.InvitePending {
			return ErrInviteNotPending
		}

		return s.respond(tx, &inv, models.InviteCancelled)
	})
	if err != nil {
		return nil, err
	}

	return &inv, nil
}

// ListInvites returns the token invitations of orgID. callerID must be ADMIN or MANAGER.
func (s *Service) ListInvites(ctx context.Context, callerID, orgID uint64) ([]models.OrganizationUserInvite, error) {
	db := s.db.WithContext(ctx)

	if err := Exists(db, orgID); err != nil {
		return nil, err
	}

	if _, err := RequireRole(db, orgID, callerID, ManagerRoles...); err != nil {
		return nil, err
	}

	invites := make([]models.OrganizationUserInvite, 0)
	err := db.Where("organization_id = ?", orgID).Order("id DESC").Find(&invites).Error

	return invites, err
}
