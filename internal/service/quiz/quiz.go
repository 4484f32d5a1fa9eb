// Package quiz authors and grades quizzes attached to quiz content.
package quiz

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/apperr"
	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/service/course"
)

var (
	// ErrQuizNotFound is returned when the quiz does not exist.
	ErrQuizNotFound = apperr.NotFound("Quiz not found")
	// ErrNotQuizContent is returned when attaching a quiz to non quiz content.
	ErrNotQuizContent = apperr.Validation("Content is not of type quiz")
	// ErrQuizExists is returned when the content already hosts a quiz.
	ErrQuizExists = apperr.Conflict("Content already has a quiz")
	// ErrNoQuestions is returned for a quiz without questions.
	ErrNoQuestions = apperr.Validation("A quiz needs at least one question")
	// ErrInvalidQuestion is returned for a question without prompt or with a bad correct option.
	ErrInvalidQuestion = apperr.Validation("Every question needs a prompt, two options and a valid correctOption")
	// ErrInvalidPassingScore is returned for a passing score outside 0..100.
	ErrInvalidPassingScore = apperr.Validation("passingScore must be between 0 and 100")
	// ErrNotEnrolled is returned when submitting without being enrolled.
	ErrNotEnrolled = apperr.Forbidden("You must be enrolled in the course to take this quiz")
	// ErrUnknownQuestion is returned for an answer to a question of another quiz.
	ErrUnknownQuestion = apperr.Validation("Answer references a question that is not part of this quiz")
)

// Service implements the quiz operations.
type Service struct {
	db *gorm.DB
}

// New creates a quiz Service.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// QuestionInput is a question of a new quiz.
type QuestionInput struct {
	Prompt        string
	Options       []string
	CorrectOption int
}

// CreateInput holds the fields of a new quiz.
type CreateInput struct {
	ContentID    uint64
	Title        string
	PassingScore int
	Questions    []QuestionInput
}

// Answer is the option selected for a question.
type Answer struct {
	QuestionID     uint64
	SelectedOption int
}

func validate(in CreateInput) error {
	if in.PassingScore < 0 || in.PassingScore > 100 {
		return ErrInvalidPassingScore
	}

	if len(in.Questions) == 0 {
		return ErrNoQuestions
	}

	for _, q := range in.Questions {
		if strings.TrimSpace(q.Prompt) == "" || len(q.Options) < 2 ||
			q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return ErrInvalidQuestion
		}
	}

	return nil
}

// Create attaches a quiz to a quiz content row of a course owned by callerID.
func (s *Service) Create(ctx context.Context, callerID uint64, in CreateInput) (*models.Quiz, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	var q *models.Quiz

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		content, err := course.FindContent(tx, in.ContentID)
		if err != nil {
			return err
		}

		if content.Type != models.ContentQuiz {
			return ErrNotQuizContent
		}

		if _, err = course.FindOwned(tx, content.CourseID, callerID); err != nil {
			return err
		}

		var n int64
		if err = tx.Model(&models.Quiz{}).Where("content_id = ?", content.ID).Count(&n).Error; err != nil {
			return err
		}

		if n > 0 {
			return ErrQuizExists
		}

		q = &models.Quiz{
			ContentID:    content.ID,
			CourseID:     content.CourseID,
			Title:        strings.TrimSpace(in.Title),
			PassingScore: in.PassingScore,
			CreatedBy:    callerID,
		}

		for i, qi := range in.Questions {
			q.Questions = append(q.Questions, models.QuizQuestion{
				Prompt:        strings.TrimSpace(qi.Prompt),
				Options:       qi.Options,
				CorrectOption: qi.CorrectOption,
				Position:      i,
			})
		}

		return tx.Create(q).Error
	})
	if err != nil {
		return nil, err
	}

	return q, nil
}

func find(tx *gorm.DB, query string, arg uint64) (*models.Quiz, error) {
	var q models.Quiz

	err := tx.Preload("Questions", func(tx *gorm.DB) *gorm.DB { return tx.Order("position, id") }).
		Where(query, arg).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuizNotFound
	}

	if err != nil {
		return nil, err
	}

	return &q, nil
}

// canTake reports whether userID owns or is enrolled in the course of q.
func canTake(tx *gorm.DB, q *models.Quiz, userID uint64) error {
	c, err := course.Find(tx, q.CourseID)
	if err != nil {
		return err
	}

	if c.OwnerID == userID {
		return nil
	}

	enrolled, err := course.IsEnrolled(tx, c.ID, userID)
	if err != nil {
		return err
	}

	if !enrolled {
		return ErrNotEnrolled
	}

	return nil
}

// GetByContent returns the quiz of a content row. Correct options are never serialised.
func (s *Service) GetByContent(ctx context.Context, callerID, contentID uint64) (*models.Quiz, error) {
	db := s.db.WithContext(ctx)

	q, err := find(db, "content_id = ?", contentID)
	if err != nil {
		return nil, err
	}

	if err = canTake(db, q, callerID); err != nil {
		return nil, err
	}

	return q, nil
}

// Grade scores answers against questions. Unanswered questions count as wrong.
// The score is the integer percentage of correct answers.
func Grade(questions []models.QuizQuestion, answers []Answer) ([]models.QuizAnswer, int, int, error) {
	byID := make(map[uint64]models.QuizQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	graded := make([]models.QuizAnswer, 0, len(answers))
	seen := make(map[uint64]bool, len(answers))
	correct := 0

	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return nil, 0, 0, ErrUnknownQuestion
		}

		if seen[a.QuestionID] {
			continue
		}

		seen[a.QuestionID] = true

		ok = a.SelectedOption == q.CorrectOption
		if ok {
			correct++
		}

		graded = append(graded, models.QuizAnswer{QuestionID: q.ID, SelectedOption: a.SelectedOption, Correct: ok})
	}

	score := 0
	if len(questions) > 0 {
		score = correct * 100 / len(questions)
	}

	return graded, correct, score, nil
}

// Submit grades and stores an attempt of userID.
func (s *Service) Submit(ctx context.Context, userID, quizID uint64, answers []Answer) (*models.QuizAttempt, error) {
	var attempt *models.QuizAttempt

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := find(tx, "id = ?", quizID)
		if err != nil {
			return err
		}

		if err = canTake(tx, q, userID); err != nil {
			return err
		}

		graded, correct, score, err := Grade(q.Questions, answers)
		if err != nil {
			return err
		}

		attempt = &models.QuizAttempt{
			QuizID:         q.ID,
			UserID:         userID,
			Answers:        graded,
			CorrectCount:   correct,
			TotalQuestions: len(q.Questions),
			Score:          score,
			Passed:         score >= q.PassingScore,
		}

		return tx.Create(attempt).Error
	})
	if err != nil {
		return nil, err
	}

	return attempt, nil
}

// MyAttempts returns the attempts of userID for quizID, newest first.
func (s *Service) MyAttempts(ctx context.Context, userID, quizID uint64) ([]models.QuizAttempt, error) {
	db := s.db.WithContext(ctx)

	var n int64
	if err := db.Model(&models.Quiz{}).Where("id = ?", quizID).Count(&n).Error; err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, ErrQuizNotFound
	}

	out := make([]models.QuizAttempt, 0)
	err := db.Where("quiz_id = ? AND user_id = ?", quizID, userID).Order("id DESC").Find(&out).Error

	return out, err
}
