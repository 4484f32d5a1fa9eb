// Package organization provides the organization, membership and invitation endpoints.
package organization

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/lmsforge/lms-backend/internal/db/models"
	orgservice "github.com/lmsforge/lms-backend/internal/service/organization"
	"github.com/lmsforge/lms-backend/internal/web/handler"
)

const (
	// Path is the base path of the organization endpoints.
	Path = handler.RootPath + "organization"

	// Routes.
	RouteCreate         = Path + "/create"
	RouteMine           = Path + "/getMyOrganizations"
	RouteGet            = Path + "/getOrganizationById/:id"
	RouteUpdate         = Path + "/update"
	RouteDelete         = Path + "/delete"
	RouteAddUser        = Path + "/addUser"
	RouteUsers          = Path + "/getOrganizationUsers/:id"
	RouteUpdateUserRole = Path + "/updateUserRole"
	RouteRemoveUser     = Path + "/removeUser"
	RouteInviteUser     = Path + "/inviteUser"
	RouteMyInvites      = Path + "/getMyInvites"
	RouteAcceptInvite   = Path + "/acceptInvite"
	RouteRejectInvite   = Path + "/rejectInvite"
	RouteAcceptToken    = Path + "/acceptInviteToken"
	RouteDeclineToken   = Path + "/declineInviteToken"
	RouteCancelInvite   = Path + "/cancelInvite"
	RouteInvites        = Path + "/getInvites/:id"
)

// Service is the organization handler service.
type Service struct {
	orgs *orgservice.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) {
	if app == nil || env == nil {
		log.Fatal().Msg(handler.ErrNilEnvFatalLogMsg)
		return
	}

	s.orgs = orgservice.New(env.DB, orgservice.Options{
		Mailer:       env.Mailer,
		InviteExpiry: env.Config.Invite.Expiry,
		AcceptURL:    env.Config.Invite.AcceptURL,
		AppName:      env.Config.Title,
	})

	// every organization route needs a caller
	app.Post(RouteCreate, env.RequireAuth, s.Create)
	app.Get(RouteMine, env.RequireAuth, s.Mine)
	app.Get(RouteGet, env.RequireAuth, s.Get)
	app.Post(RouteUpdate, env.RequireAuth, s.Update)
	app.Post(RouteDelete, env.RequireAuth, s.Delete)
	app.Post(RouteAddUser, env.RequireAuth, s.AddUser)
	app.Get(RouteUsers, env.RequireAuth, s.Users)
	app.Post(RouteUpdateUserRole, env.RequireAuth, s.UpdateUserRole)
	app.Post(RouteRemoveUser, env.RequireAuth, s.RemoveUser)
	app.Post(RouteInviteUser, env.RequireAuth, s.InviteUser)
	app.Get(RouteMyInvites, env.RequireAuth, s.MyInvites)
	app.Post(RouteAcceptInvite, env.RequireAuth, s.AcceptInvite)
	app.Post(RouteRejectInvite, env.RequireAuth, s.RejectInvite)
	app.Post(RouteAcceptToken, env.RequireAuth, s.AcceptInviteToken)
	app.Post(RouteDeclineToken, env.RequireAuth, s.DeclineInviteToken)
	app.Post(RouteCancelInvite, env.RequireAuth, s.CancelInvite)
	app.Get(RouteInvites, env.RequireAuth, s.Invites)
}

// Create handles POST /organization/create.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	org, err := s.orgs.Create(c.UserContext(), handler.UserID(c), orgservice.CreateInput{
		Name:   in.Name,
		Email:  in.Email,
		Domain: in.Domain,
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Organization created successfully", org)
}

// Mine handles GET /organization/getMyOrganizations.
func (s *Service) Mine(c *fiber.Ctx) error {
	orgs, err := s.orgs.ListForUser(c.UserContext(), handler.UserID(c))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Organizations retrieved", orgs)
}

// Get handles GET /organization/getOrganizationById/:id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.SendError(c, err)
	}

	org, err := s.orgs.Get(c.UserContext(), handler.UserID(c), id)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Organization retrieved", org)
}

// Update handles POST /organization/update.
func (s *Service) Update(c *fiber.Ctx) error {
	var in updateInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	upd := orgservice.UpdateInput{
		OrganizationID: in.OrganizationID,
		Name:           in.Name,
		Email:          in.Email,
		Domain:         in.Domain,
	}

	if in.Status != nil {
		st := models.OrganizationStatus(*in.Status)
		upd.Status = &st
	}

	org, err := s.orgs.Update(c.UserContext(), handler.UserID(c), upd)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Organization updated successfully", org)
}

// Delete handles POST /organization/delete.
func (s *Service) Delete(c *fiber.Ctx) error {
	var in organizationRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.orgs.Delete(c.UserContext(), handler.UserID(c), in.OrganizationID); err != nil {
		return handler.SendError(c, err)
	}

	log.Info().Uint64("organization_id", in.OrganizationID).Uint64("user_id", handler.UserID(c)).
		Msg("organization deleted")

	return handler.OK(c, "Organization deleted successfully", nil)
}

// AddUser handles POST /organization/addUser.
func (s *Service) AddUser(c *fiber.Ctx) error {
	var in memberInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	m, err := s.orgs.AddUser(c.UserContext(), handler.UserID(c), in.OrganizationID, in.UserID, models.OrgRole(in.Role))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "User added to organization", m)
}

// Users handles GET /organization/getOrganizationUsers/:id.
func (s *Service) Users(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.SendError(c, err)
	}

	members, err := s.orgs.ListMembers(c.UserContext(), handler.UserID(c), id, orgservice.MemberFilter{
		Role:   models.OrgRole(c.Query("role")),
		Status: models.MembershipStatus(c.Query("status")),
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Organization users retrieved", members)
}

// UpdateUserRole handles POST /organization/updateUserRole.
func (s *Service) UpdateUserRole(c *fiber.Ctx) error {
	var in memberInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	m, err := s.orgs.UpdateUserRole(c.UserContext(), handler.UserID(c), in.OrganizationID, in.UserID, models.OrgRole(in.Role))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "User role updated", m)
}

// RemoveUser handles POST /organization/removeUser.
func (s *Service) RemoveUser(c *fiber.Ctx) error {
	var in removeUserInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.orgs.RemoveUser(c.UserContext(), handler.UserID(c), in.OrganizationID, in.UserID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "User removed from organization", nil)
}

// InviteUser handles POST /organization/inviteUser.
func (s *Service) InviteUser(c *fiber.Ctx) error {
	var in inviteInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	res, err := s.orgs.InviteUser(c.UserContext(), handler.UserID(c), in.OrganizationID, in.Email, models.OrgRole(in.Role))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Invitation sent", res)
}

// MyInvites handles GET /organization/getMyInvites.
func (s *Service) MyInvites(c *fiber.Ctx) error {
	invites, err := s.orgs.MyInvites(c.UserContext(), handler.UserID(c))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Invites retrieved", invites)
}

// AcceptInvite handles POST /organization/acceptInvite.
func (s *Service) AcceptInvite(c *fiber.Ctx) error {
	var in organizationRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	m, err := s.orgs.AcceptOrganizationInvite(c.UserContext(), in.OrganizationID, handler.UserID(c))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Invite accepted", m)
}

// RejectInvite handles POST /organization/rejectInvite.
func (s *Service) RejectInvite(c *fiber.Ctx) error {
	var in organizationRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.orgs.RejectOrganizationInvite(c.UserContext(), in.OrganizationID, handler.UserID(c)); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Invite rejected", nil)
}

// AcceptInviteToken handles POST /organization/acceptInviteToken.
func (s *Service) AcceptInviteToken(c *fiber.Ctx) error {
	var in tokenInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	m, err := s.orgs.AcceptInviteToken(c.UserContext(), handler.UserID(c), in.Token)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Invite accepted", m)
}

// DeclineInviteToken handles POST /organization/declineInviteToken.
func (s *Service) DeclineInviteToken(c *fiber.Ctx) error {
	var in tokenInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	inv, err := s.orgs.DeclineInviteToken(c.UserContext(), handler.UserID(c), in.Token)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Invite declined", inv)
}

// CancelInvite handles POST /organization/cancelInvite.
func (s *Service) CancelInvite(c *fiber.Ctx) error {
	var in cancelInviteInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	inv, err := s.orgs.CancelInvite(c.UserContext(), handler.UserID(c), in.InviteID)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Invite cancelled", inv)
}

// Invites handles GET /organization/getInvites/:id.
func (s *Service) Invites(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.SendError(c, err)
	}

	invites, err := s.orgs.ListInvites(c.UserContext(), handler.UserID(c), id)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Invites retrieved", invites)
}
