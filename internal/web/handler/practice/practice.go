// Package practice provides the listening, writing and reading practice endpoints.
package practice

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/lmsforge/lms-backend/internal/db/models"
	practiceservice "github.com/lmsforge/lms-backend/internal/service/practice"
	"github.com/lmsforge/lms-backend/internal/web/handler"
)

const (
	// Path is the base path of the practice endpoints.
	Path = handler.RootPath + "practice"

	// Routes.
	RouteCreate      = Path + "/create"
	RouteList        = Path + "/getAll"
	RouteGet         = Path + "/getById/:id"
	RouteSubmit      = Path + "/submit"
	RouteReview      = Path + "/review"
	RouteSubmissions = Path + "/getMySubmissions"

	// QueryKind filters lists by practice kind.
	QueryKind = "kind"
)

// Service is the practice handler service.
type Service struct {
	practices *practiceservice.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) {
	if app == nil || env == nil {
		log.Fatal().Msg(handler.ErrNilEnvFatalLogMsg)
		return
	}

	s.practices = practiceservice.New(env.DB)

	app.Post(RouteCreate, env.RequireAuth, s.Create)
	app.Get(RouteList, env.RequireAuth, s.List)
	app.Get(RouteGet, env.RequireAuth, s.Get)
	app.Post(RouteSubmit, env.RequireAuth, s.Submit)
	app.Post(RouteReview, env.RequireAuth, s.Review)
	app.Get(RouteSubmissions, env.RequireAuth, s.Submissions)
}

// Create handles POST /practice/create.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	p, err := s.practices.Create(c.UserContext(), handler.UserID(c), practiceservice.CreateInput{
		Kind:      models.PracticeKind(in.Kind),
		CourseID:  in.CourseID,
		Title:     in.Title,
		Prompt:    in.Prompt,
		MediaURL:  in.MediaURL,
		Passage:   in.Passage,
		AnswerKey: in.AnswerKey,
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Practice created successfully", p)
}

// List handles GET /practice/getAll.
func (s *Service) List(c *fiber.Ctx) error {
	res, err := s.practices.List(c.UserContext(), handler.UserID(c),
		models.PracticeKind(c.Query(QueryKind)), handler.PageParams(c))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Practices retrieved", res)
}

// Get handles GET /practice/getById/:id.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c, "id")
	if err != nil {
		return handler.SendError(c, err)
	}

	p, err := s.practices.Get(c.UserContext(), handler.UserID(c), id)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Practice retrieved", p)
}

// Submit handles POST /practice/submit.
func (s *Service) Submit(c *fiber.Ctx) error {
	var in submitInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	sub, err := s.practices.Submit(c.UserContext(), handler.UserID(c), practiceservice.SubmitInput{
		PracticeID: in.PracticeID,
		Answers:    in.Answers,
		Text:       in.Text,
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Submission received", sub)
}

// Review handles POST /practice/review.
func (s *Service) Review(c *fiber.Ctx) error {
	var in reviewInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	sub, err := s.practices.Review(c.UserContext(), handler.UserID(c), practiceservice.ReviewInput{
		SubmissionID: in.SubmissionID,
		Score:        *in.Score,
		Feedback:     in.Feedback,
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Submission reviewed", sub)
}

// Submissions handles GET /practice/getMySubmissions.
func (s *Service) Submissions(c *fiber.Ctx) error {
	subs, err := s.practices.MySubmissions(c.UserContext(), handler.UserID(c), models.PracticeKind(c.Query(QueryKind)))
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Submissions retrieved", subs)
}
