// Package practice runs listening, writing and reading exercises.
package practice

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/apperr"
	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/db/paginate"
	"github.com/lmsforge/lms-backend/internal/service/course"
)

var (
	// ErrPracticeNotFound is returned when the practice does not exist.
	ErrPracticeNotFound = apperr.NotFound("Practice not found")
	// ErrSubmissionNotFound is returned when the submission does not exist.
	ErrSubmissionNotFound = apperr.NotFound("Submission not found")
	// ErrInvalidKind is returned for an unknown practice kind.
	ErrInvalidKind = apperr.Validation("Invalid practice kind")
	// ErrMediaRequired is returned for a listening practice without media.
	ErrMediaRequired = apperr.Validation("mediaUrl is required for listening practice")
	// ErrPassageRequired is returned for a reading practice without a passage.
	ErrPassageRequired = apperr.Validation("passage is required for reading practice")
	// ErrAnswerKeyRequired is returned for a listening or reading practice without answers.
	ErrAnswerKeyRequired = apperr.Validation("answerKey is required for listening and reading practice")
	// ErrTextRequired is returned for an empty writing submission.
	ErrTextRequired = apperr.Validation("text is required for writing practice")
	// ErrAnswersRequired is returned for a listening or reading submission without answers.
	ErrAnswersRequired = apperr.Validation("answers are required for this practice")
	// ErrNotCreator is returned when reviewing a practice the caller did not create.
	ErrNotCreator = apperr.Forbidden("Only the practice creator can review submissions")
	// ErrNotReviewable is returned when reviewing an automatically graded submission.
	ErrNotReviewable = apperr.Validation("Only writing submissions can be reviewed")
	// ErrInvalidScore is returned for a review score outside 0..100.
	ErrInvalidScore = apperr.Validation("score must be between 0 and 100")
)

// Service implements the practice operations.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// New creates a practice Service.
func New(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// CreateInput holds the fields of a new practice.
type CreateInput struct {
	Kind      models.PracticeKind
	CourseID  *uint64
	Title     string
	Prompt    string
	MediaURL  string
	Passage   string
	AnswerKey []string
}

// SubmitInput is a learner's answer. Answers is used by listening and reading, Text by writing.
type SubmitInput struct {
	PracticeID uint64
	Answers    []string
	Text       string
}

// ReviewInput scores a writing submission.
type ReviewInput struct {
	SubmissionID uint64
	Score        int
	Feedback     string
}

func validate(in *CreateInput) error {
	if !models.IsPracticeKind(in.Kind) {
		return ErrInvalidKind
	}

	in.MediaURL = strings.TrimSpace(in.MediaURL)

	switch in.Kind {
	case models.PracticeListening:
		if in.MediaURL == "" {
			return ErrMediaRequired
		}
	case models.PracticeReading:
		if strings.TrimSpace(in.Passage) == "" {
			return ErrPassageRequired
		}
	case models.PracticeWriting:
		in.AnswerKey = nil
		return nil
	}

	if len(in.AnswerKey) == 0 {
		return ErrAnswerKeyRequired
	}

	return nil
}

// Create inserts a practice authored by callerID.
func (s *Service) Create(ctx context.Context, callerID uint64, in CreateInput) (*models.Practice, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	if in.CourseID != nil {
		if _, err := course.Find(db, *in.CourseID); err != nil {
			return nil, err
		}
	}

	p := &models.Practice{
		Kind:      in.Kind,
		CourseID:  in.CourseID,
		CreatedBy: callerID,
		Title:     strings.TrimSpace(in.Title),
		Prompt:    in.Prompt,
		MediaURL:  in.MediaURL,
		Passage:   in.Passage,
		AnswerKey: in.AnswerKey,
	}

	if err := db.Create(p).Error; err != nil {
		return nil, err
	}

	return p, nil
}

func find(tx *gorm.DB, id uint64) (*models.Practice, error) {
	var p models.Practice

	err := tx.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPracticeNotFound
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}

// hideKey drops the answer key unless callerID created the practice.
func hideKey(p *models.Practice, callerID uint64) {
	if p.CreatedBy != callerID {
		p.AnswerKey = nil
	}
}

// Get returns a practice, the answer key only for its creator.
func (s *Service) Get(ctx context.Context, callerID, id uint64) (*models.Practice, error) {
	p, err := find(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	hideKey(p, callerID)

	return p, nil
}

// List returns a page of practices, optionally of one kind.
func (s *Service) List(
	ctx context.Context,
	callerID uint64,
	kind models.PracticeKind,
	p paginate.Params,
) (paginate.Result[models.Practice], error) {
	q := s.db.WithContext(ctx).Order("id DESC")

	if kind != "" {
		if !models.IsPracticeKind(kind) {
			return paginate.Result[models.Practice]{}, ErrInvalidKind
		}

		q = q.Where("kind = ?", kind)
	}

	res, err := paginate.Find[models.Practice](q, p)
	if err != nil {
		return res, err
	}

	for i := range res.Items {
		hideKey(&res.Items[i], callerID)
	}

	return res, nil
}

// GradeAnswers compares answers with key position by position, ignoring case and
// surrounding whitespace. Missing answers count as wrong. The score is an integer percentage.
func GradeAnswers(key, answers []string) int {
	if len(key) == 0 {
		return 0
	}

	correct := 0

	for i, want := range key {
		if i >= len(answers) {
			break
		}

		if strings.EqualFold(strings.TrimSpace(answers[i]), strings.TrimSpace(want)) {
			correct++
		}
	}

	return correct * 100 / len(key)
}

// Submit stores a submission of userID. Listening and reading are graded immediately,
// writing waits for the creator's review.
func (s *Service) Submit(ctx context.Context, userID uint64, in SubmitInput) (*models.PracticeSubmission, error) {
	db := s.db.WithContext(ctx)

	p, err := find(db, in.PracticeID)
	if err != nil {
		return nil, err
	}

	sub := &models.PracticeSubmission{PracticeID: p.ID, UserID: userID, Kind: p.Kind}

	switch p.Kind {
	case models.PracticeWriting:
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return nil, ErrTextRequired
		}

		sub.Text = text
		sub.WordCount = len(strings.Fields(text))
		sub.Status = models.SubmissionPendingReview
	default:
		if len(in.Answers) == 0 {
			return nil, ErrAnswersRequired
		}

		score := GradeAnswers(p.AnswerKey, in.Answers)
		sub.Answers = in.Answers
		sub.Score = &score
		sub.Status = models.SubmissionGraded
	}

	if err = db.Create(sub).Error; err != nil {
		return nil, err
	}

	return sub, nil
}

// Review scores a writing submission. callerID must have created the practice.
func (s *Service) Review(ctx context.Context, callerID uint64, in ReviewInput) (*models.PracticeSubmission, error) {
	if in.Score < 0 || in.Score > 100 {
		return nil, ErrInvalidScore
	}

	var sub models.PracticeSubmission

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, in.SubmissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubmissionNotFound
			}

			return err
		}

		p, err := find(tx, sub.PracticeID)
		if err != nil {
			return err
		}

		if p.CreatedBy != callerID {
			return ErrNotCreator
		}

		if sub.Kind != models.PracticeWriting {
			return ErrNotReviewable
		}

		now := s.now()
		score := in.Score
		sub.Score = &score
		sub.Feedback = in.Feedback
		sub.Status = models.SubmissionReviewed
		sub.ReviewedBy = &callerID
		sub.ReviewedAt = &now

		return tx.Save(&sub).Error
	})
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

// MySubmissions returns the submissions of userID, optionally of one kind, newest first.
func (s *Service) MySubmissions(ctx context.Context, userID uint64, kind models.PracticeKind) ([]models.PracticeSubmission, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if kind != "" {
		if !models.IsPracticeKind(kind) {
			return nil, ErrInvalidKind
		}

		q = q.Where("kind = ?", kind)
	}

	out := make([]models.PracticeSubmission, 0)
	err := q.Order("id DESC").Find(&out).Error

	return out, err
}
