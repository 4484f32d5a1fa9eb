// Package course provides the course catalogue, curriculum and enrollment endpoints.
package course

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/lmsforge/lms-backend/internal/db/models"
	courseservice "github.com/lmsforge/lms-backend/internal/service/course"
	"github.com/lmsforge/lms-backend/internal/web/handler"
)

const (
	// Path is the base path of the course endpoints.
	Path = handler.RootPath + "course"

	// Routes.
	RouteCreate        = Path + "/create"
	RouteUpdate        = Path + "/update"
	RouteList          = Path + "/getAll"
	RouteGet           = Path + "/getById/:id"
	RouteDelete        = Path + "/delete"
	RouteTopicCreate   = Path + "/topic/create"
	RouteTopicDelete   = Path + "/topic/delete"
	RouteContentCreate = Path + "/content/create"
	RouteContentDelete = Path + "/content/delete"
	RouteEnroll        = Path + "/enroll"
	RouteUnenroll      = Path + "/unenroll"
	RouteEnrollments   = Path + "/getMyEnrollments"

	// QuerySearch is the query parameter name for the search term.
	QuerySearch = "search"
)

// Service is the course handler service.
type Service struct {
	courses *courseservice.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) {
	if app == nil || env == nil {
		log.Fatal().Msg(handler.ErrNilEnvFatalLogMsg)
		return
	}

	s.courses = courseservice.New(env.DB)

	app.Post(RouteCreate, env.RequireAuth, s.Create)
	app.Post(RouteUpdate, env.RequireAuth, s.Update)
	app.Get(RouteList, env.RequireAuth, s.List)
	app.Get(RouteGet, env.RequireAuth, s.Get)
	app.Post(RouteDelete, env.RequireAuth, s.Delete)
	app.Post(RouteTopicCreate, env.RequireAuth, s.CreateTopic)
	app.Post(RouteTopicDelete, env.RequireAuth, s.DeleteTopic)
	app.Post(RouteContentCreate, env.RequireAuth, s.CreateContent)
	app.Post(RouteContentDelete, env.RequireAuth, s.DeleteContent)
	app.Post(RouteEnroll, env.RequireAuth, s.Enroll)
	app.Post(RouteUnenroll, env.RequireAuth, s.Unenroll)
	app.Get(RouteEnrollments, env.RequireAuth, s.Enrollments)
}

// Create handles POST /course/create.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	course, err := s.courses.Create(c.UserContext(), handler.UserID(c), courseservice.CreateInput{
		Title:       in.Title,
		Description: in.Description,
		Level:       in.Level,
		Status:      models.CourseStatus(in.Status),
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Course created successfully", course)
}

// Update handles POST /course/update.
func (s *Service) Update(c *fiber.Ctx) error {
	var in updateInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	upd := courseservice.UpdateInput{
		CourseID:    in.CourseID,
		Title:       in.Title,
		Description: in.Description,
		Level:       in.Level,
	}

	if in.Status != nil {
		st := models.CourseStatus(*in.Status)
		upd.Status = &st
	}

	course, err := s.courses.Update(c.UserContext(), handler.UserID(c), upd)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Course updated successfully", course)
}

// List handles GET /course/getAll.
func (s *Service) List(c *fiber.Ctx) error {
	res, err := s.courses.List(c.UserContext(), handler.UserID(c), courseservice.ListInput{
		Search: c.Query(QuerySearch),
		Page:   handler.PageParams(c),
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Courses retrieved", res)
}

// Get handles GET /course/getById/:id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.SendError(c, err)
	}

	course, err := s.courses.Get(c.UserContext(), handler.UserID(c), id)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Course retrieved", course)
}

// Delete handles POST /course/delete.
func (s *Service) Delete(c *fiber.Ctx) error {
	var in courseRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.courses.Delete(c.UserContext(), handler.UserID(c), in.CourseID); err != nil {
		return handler.SendError(c, err)
	}

	log.Info().Uint64("course_id", in.CourseID).Uint64("user_id", handler.UserID(c)).Msg("course deleted")

	return handler.OK(c, "Course deleted successfully", nil)
}

// CreateTopic handles POST /course/topic/create.
func (s *Service) CreateTopic(c *fiber.Ctx) error {
	var in topicInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	topic, err := s.courses.CreateTopic(c.UserContext(), handler.UserID(c), in.CourseID, in.Title, in.Position)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Topic created successfully", topic)
}

// DeleteTopic handles POST /course/topic/delete.
func (s *Service) DeleteTopic(c *fiber.Ctx) error {
	var in topicRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.courses.DeleteTopic(c.UserContext(), handler.UserID(c), in.TopicID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Topic deleted successfully", nil)
}

// CreateContent handles POST /course/content/create.
func (s *Service) CreateContent(c *fiber.Ctx) error {
	var in contentInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	content, err := s.courses.CreateContent(c.UserContext(), handler.UserID(c), courseservice.ContentInput{
		TopicID:  in.TopicID,
		Type:     models.ContentType(in.Type),
		Title:    in.Title,
		Body:     in.Body,
		VideoURL: in.VideoURL,
		Position: in.Position,
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Content created successfully", content)
}

// DeleteContent handles POST /course/content/delete.
func (s *Service) DeleteContent(c *fiber.Ctx) error {
	var in contentRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.courses.DeleteContent(c.UserContext(), handler.UserID(c), in.ContentID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Content deleted successfully", nil)
}

// Enroll handles POST /course/enroll.
func (s *Service) Enroll(c *fiber.Ctx) error {
	var in courseRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	e, err := s.courses.Enroll(c.UserContext(), handler.UserID(c), in.CourseID)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Enrolled successfully", e)
}

// Unenroll handles POST /course/unenroll.
func (s *Service) Unenroll(c *fiber.Ctx) error {
	var in courseRef
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	if err := s.courses.Unenroll(c.UserContext(), handler.UserID(c), in.CourseID); err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Unenrolled successfully", nil)
}

// Enrollments handles GET /course/getMyEnrollments.
func (s *Service) Enrollments(c *fiber.Ctx) error {
	list, err := s.courses.MyEnrollments(c.UserContext(), handler.UserID(c))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Enrollments retrieved", list)
}
