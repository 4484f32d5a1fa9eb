// Package studygroup provides the course study group endpoints.
package studygroup

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/lmsforge/lms-backend/internal/db/models"
	groupservice "github.com/lmsforge/lms-backend/internal/service/studygroup"
	"github.com/lmsforge/lms-backend/internal/web/handler"
)

const (
	// Path is the base path of the study group endpoints.
	Path = handler.RootPath + "courseStudyGroup"

	// Routes.
	RouteSave          = Path + "/createOrUpdate"
	RouteAddMember     = Path + "/addMember"
	RouteRemoveMember  = Path + "/removeMember"
	RouteList          = Path + "/getAllCourseStudyGroup"
	RouteDetail        = Path + "/getCourseStudyGroupDetailById/:id"
	RouteDelete        = Path + "/deleteStudyGroup"
	RouteAddContent    = Path + "/addContent"
	RouteRemoveContent = Path + "/removeContent"
)

// Service is the study group handler service.
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

	app.Post(RouteSave, env.RequireAuth, s.Save)
	app.Post(RouteAddMember, env.RequireAuth, s.AddMember)
	app.Post(RouteRemoveMember, env.RequireAuth, s.RemoveMember)
	app.Get(RouteList, env.RequireAuth, s.List)
	app.Get(RouteDetail, env.RequireAuth, s.Detail)
	app.Post(RouteDelete, env.RequireAuth, s.Delete)
	app.Post(RouteAddContent, env.RequireAuth, s.AddContent)
	app.Post(RouteRemoveContent, env.RequireAuth, s.RemoveContent)
}

// Save handles POST /courseStudyGroup/createOrUpdate.
func (s *Service) Save(c *fiber.Ctx) error {
	var in saveInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	group, created, err := s.groups.Save(c.UserContext(), handler.UserID(c), groupservice.SaveInput{
		ID:             in.CourseStudyGroupID,
		Name:           in.GroupName,
		Description:    in.Description,
		OrganizationID: in.OrganizationID,
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	if created {
		return handler.Created(c, "Study group created successfully", group)
	}

	return handler.OK(c, "Study group updated successfully", group)
}

// AddMember handles POST /courseStudyGroup/addMember.
func (s *Service) AddMember(c *fiber.Ctx) error {
	var in memberInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	member, err := s.groups.AddMember(c.UserContext(), handler.UserID(c),
		in.CourseStudyGroupID, in.UserID, models.StudyGroupRole(in.Role))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Member added successfully", member)
}

// RemoveMember handles POST /courseStudyGroup/removeMember.
func (s *Service) RemoveMember(c *fiber.Ctx) error {
	var in memberRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.groups.RemoveMember(c.UserContext(), handler.UserID(c), in.CourseStudyGroupID, in.UserID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Member removed successfully", nil)
}

// List handles GET /courseStudyGroup/getAllCourseStudyGroup.
func (s *Service) List(c *fiber.Ctx) error {
	res, err := s.groups.List(c.UserContext(), handler.UserID(c), handler.PageParams(c))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Study groups retrieved", res)
}

// Detail handles GET /courseStudyGroup/getCourseStudyGroupDetailById/:id.
func (s *Service) Detail(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.SendError(c, err)
	}

	group, err := s.groups.Detail(c.UserContext(), handler.UserID(c), id)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Study group retrieved", group)
}

// Delete handles POST /courseStudyGroup/deleteStudyGroup.
func (s *Service) Delete(c *fiber.Ctx) error {
	var in groupRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.groups.Delete(c.UserContext(), handler.UserID(c), in.CourseStudyGroupID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Study group deleted successfully", nil)
}

// AddContent handles POST /courseStudyGroup/addContent.
func (s *Service) AddContent(c *fiber.Ctx) error {
	var in contentInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	content, err := s.groups.AddContent(c.UserContext(), handler.UserID(c), in.CourseStudyGroupID, in.CourseID)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Content shared successfully", content)
}

// RemoveContent handles POST /courseStudyGroup/removeContent.
func (s *Service) RemoveContent(c *fiber.Ctx) error {
	var in contentInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.groups.RemoveContent(c.UserContext(), handler.UserID(c), in.CourseStudyGroupID, in.CourseID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Content removed successfully", nil)
}
