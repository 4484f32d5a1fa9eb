// Package orggroup provides the organization group endpoints.
package orggroup

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/lmsforge/lms-backend/internal/db/models"
	groupservice "github.com/lmsforge/lms-backend/internal/service/orggroup"
	"github.com/lmsforge/lms-backend/internal/web/handler"
)

const (
	// Path is the base path of the group endpoints.
	Path = handler.RootPath + "orgGroup"

	// Routes.
	RouteCreate     = Path + "/create"
	RouteUpdate     = Path + "/update"
	RouteList       = Path + "/getGroups/:organizationId"
	RouteDetail     = Path + "/getGroupDetail/:id"
	RouteDelete     = Path + "/delete"
	RouteAddUsers   = Path + "/addUsers"
	RouteRemoveUser = Path + "/removeUser"
	RouteMembers    = Path + "/getGroupMembers/:id"
)

// Service is the group handler service.
type Service struct {
	groups *groupservice.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) {
	if app == nil || env == nil {
		log.Fatal().Msg(handler.ErrNilEnvFatalLogMsg)
		return
	}

	s.groups = groupservice.New(env.DB)

	app.Post(RouteCreate, env.RequireAuth, s.Create)
	app.Post(RouteUpdate, env.RequireAuth, s.Update)
	app.Get(RouteList, env.RequireAuth, s.List)
	app.Get(RouteDetail, env.RequireAuth, s.Detail)
	app.Post(RouteDelete, env.RequireAuth, s.Delete)
	app.Post(RouteAddUsers, env.RequireAuth, s.AddUsers)
	app.Post(RouteRemoveUser, env.RequireAuth, s.RemoveUser)
	app.Get(RouteMembers, env.RequireAuth, s.Members)
}

// Create handles POST /orgGroup/create.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	g, err := s.groups.Create(c.UserContext(), handler.UserID(c), in.OrganizationID, in.Name, in.Description)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Group created successfully", g)
}

// Update handles POST /orgGroup/update.
func (s *Service) Update(c *fiber.Ctx) error {
	var in updateInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	upd := groupservice.UpdateInput{GroupID: in.GroupID, Name: in.Name, Description: in.Description}
	if in.Status != nil {
		st := models.GroupStatus(*in.Status)
		upd.Status = &st
	}

	g, err := s.groups.Update(c.UserContext(), handler.UserID(c), upd)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Group updated successfully", g)
}

// List handles GET /orgGroup/getGroups/:organizationId.
func (s *Service) List(c *fiber.Ctx) error {
	orgID, err := handler.ParamID(c, "organizationId")
	if err != nil {
		return handler.SendError(c, err)
	}

	groups, err := s.groups.List(c.UserContext(), handler.UserID(c), orgID)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Groups retrieved", groups)
}

// Detail handles GET /orgGroup/getGroupDetail/:id.
func (s *Service) Detail(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.SendError(c, err)
	}

	detail, err := s.groups.Detail(c.UserContext(), handler.UserID(c), id)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Group retrieved", detail)
}

// Delete handles POST /orgGroup/delete.
func (s *Service) Delete(c *fiber.Ctx) error {
	var in groupRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.groups.Delete(c.UserContext(), handler.UserID(c), in.GroupID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Group deleted successfully", nil)
}

// AddUsers handles POST /orgGroup/addUsers.
func (s *Service) AddUsers(c *fiber.Ctx) error {
	var in addUsersInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	res, err := s.groups.AddUsers(c.UserContext(), handler.UserID(c), in.GroupID, in.UserIDs, models.GroupRole(in.Role))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Users added to group", res)
}

// RemoveUser handles POST /orgGroup/removeUser.
func (s *Service) RemoveUser(c *fiber.Ctx) error {
	var in removeUserInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.groups.RemoveUser(c.UserContext(), handler.UserID(c), in.GroupID, in.UserID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "User removed from group", nil)
}

// Members handles GET /orgGroup/getGroupMembers/:id.
func (s *Service) Members(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.SendError(c, err)
	}

	members, err := s.groups.Members(c.UserContext(), handler.UserID(c), id)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Group members retrieved", members)
}
