// Package quiz provides the quiz authoring and attempt endpoints.
package quiz

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	quizservice "github.com/lmsforge/lms-backend/internal/service/quiz"
	"github.com/lmsforge/lms-backend/internal/web/handler"
)

const (
	// Path is the base path of the quiz endpoints.
	Path = handler.RootPath + "quiz"

	// Routes.
	RouteCreate    = Path + "/create"
	RouteByContent = Path + "/getByContent/:contentId"
	RouteSubmit    = Path + "/submit"
	RouteAttempts  = Path + "/getMyAttempts/:quizId"
)

// Service is the quiz handler service.
type Service struct {
	quizzes *quizservice.Service
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, env *handler.Env) {
	if app == nil || env == nil {
		log.Fatal().Msg(handler.ErrNilEnvFatalLogMsg)
		return
	}

	s.quizzes = quizservice.New(env.DB)

	app.Post(RouteCreate, env.RequireAuth, s.Create)
	app.Get(RouteByContent, env.RequireAuth, s.ByContent)
	app.Post(RouteSubmit, env.RequireAuth, s.Submit)
	app.Get(RouteAttempts, env.RequireAuth, s.Attempts)
}

// Create handles POST /quiz/create.
func (s *Service) Create(c *fiber.Ctx) error {
	var in createInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	questions := make([]quizservice.QuestionInput, 0, len(in.Questions))
	for _, q := range in.Questions {
		questions = append(questions, quizservice.QuestionInput{
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectOption: *q.CorrectOption,
		})
	}

	quiz, err := s.quizzes.Create(c.UserContext(), handler.UserID(c), quizservice.CreateInput{
		ContentID:    in.ContentID,
		Title:        in.Title,
		PassingScore: in.PassingScore,
		Questions:    questions,
	})
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Quiz created successfully", quiz)
}

// ByContent handles GET /quiz/getByContent/:contentId.
func (s *Service) ByContent(c *fiber.Ctx) error {
	contentID, err := handler.ParamID(c, "contentId")
	if err != nil {
		return handler.SendError(c, err)
	}

	quiz, err := s.quizzes.GetByContent(c.UserContext(), handler.UserID(c), contentID)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Quiz retrieved", quiz)
}

// Submit handles POST /quiz/submit.
func (s *Service) Submit(c *fiber.Ctx) error {
	var in submitInput
	if err := handler.ParseBody(c, &in); err != nil {
		return handler.SendError(c, err)
	}

	answers := make([]quizservice.Answer, 0, len(in.Answers))
	for _, a := range in.Answers {
		answers = append(answers, quizservice.Answer{QuestionID: a.QuestionID, SelectedOption: *a.SelectedOption})
	}

	attempt, err := s.quizzes.Submit(c.UserContext(), handler.UserID(c), in.QuizID, answers)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.Created(c, "Quiz submitted", attempt)
}

// Attempts handles GET /quiz/getMyAttempts/:quizId.
func (s *Service) Attempts(c *fiber.Ctx) error {
	quizID, err := handler.ParamID(c, "quizId")
	if err != nil {
		return handler.SendError(c, err)
	}

	attempts, err := s.quizzes.MyAttempts(c.UserContext(), handler.UserID(c), quizID)
	if err != nil {
		return handler.SendError(c, err)
	}

	return handler.OK(c, "Attempts retrieved", attempts)
}
