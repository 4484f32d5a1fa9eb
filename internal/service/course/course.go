// Package course maintains the course content tree and enrollments.
package course

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/db/paginate"
)

// Service implements the course operations.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// New creates a course Service.
func New(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// CreateInput holds the fields of a new course.
type CreateInput struct {
	Title       string
	Description string
	Level       string
	Status      models.CourseStatus
}

// UpdateInput holds the changed fields of a course, nil fields are kept.
type UpdateInput struct {
	CourseID    uint64
	Title       *string
	Description *string
	Level       *string
	Status      *models.CourseStatus
}

// ListInput filters the course listing.
type ListInput struct {
	Search string
	Page   paginate.Params
}

// Find returns the course with id.
func Find(tx *gorm.DB, id uint64) (*models.Course, error) {
	var c models.Course

	err := tx.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}

	if err != nil {
		return nil, err
	}

	return &c, nil
}

// FindOwned returns the course with id when ownerID owns it.
func FindOwned(tx *gorm.DB, id, ownerID uint64) (*models.Course, error) {
	c, err := Find(tx, id)
	if err != nil {
		return nil, err
	}

	if c.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	return c, nil
}

// FindContent returns the content with id.
func FindContent(tx *gorm.DB, id uint64) (*models.CourseTopicContent, error) {
	var c models.CourseTopicContent

	err := tx.First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContentNotFound
	}

	if err != nil {
		return nil, err
	}

	return &c, nil
}

// IsEnrolled reports whether userID takes courseID.
func IsEnrolled(tx *gorm.DB, courseID, userID uint64) (bool, error) {
	var n int64
	err := tx.Model(&models.CourseEnrollment{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&n).Error

	return n > 0, err
}

// Create inserts a course owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID uint64, in CreateInput) (*models.Course, error) {
	if in.Status == "" {
		in.Status = models.CourseStatusDraft
	}

	if !models.IsCourseStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	c := &models.Course{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Level:       strings.TrimSpace(in.Level),
		Status:      in.Status,
	}

	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}

	return c, nil
}

// Update changes a course owned by callerID.
func (s *Service) Update(ctx context.Context, callerID uint64, in UpdateInput) (*models.Course, error) {
	var c *models.Course

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if c, err = FindOwned(tx, in.CourseID, callerID); err != nil {
			return err
		}

		if in.Title != nil {
			c.Title = strings.TrimSpace(*in.Title)
		}

		if in.Description != nil {
			c.Description = *in.Description
		}

		if in.Level != nil {
			c.Level = strings.TrimSpace(*in.Level)
		}

		if in.Status != nil {
			if !models.IsCourseStatus(*in.Status) {
				return ErrInvalidStatus
			}

			c.Status = *in.Status
		}

		return tx.Save(c).Error
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// List returns published courses and the courses callerID owns.
func (s *Service) List(ctx context.Context, callerID uint64, in ListInput) (paginate.Result[models.Course], error) {
	q := s.db.WithContext(ctx).
		Where("status = ? OR owner_id = ?", models.CourseStatusPublished, callerID)

	if search := strings.TrimSpace(in.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	return paginate.Find[models.Course](q.Order("id DESC"), in.Page)
}

// Get returns a course with its ordered topics and contents. Draft and archived courses
// are visible to their owner and to enrolled users only.
func (s *Service) Get(ctx context.Context, callerID, courseID uint64) (*models.Course, error) {
	db := s.db.WithContext(ctx)

	var c models.Course

	err := db.
		Preload("Topics", func(tx *gorm.DB) *gorm.DB { return tx.Order("position, id") }).
		Preload("Topics.Contents", func(tx *gorm.DB) *gorm.DB { return tx.Order("position, id") }).
		First(&c, courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}

	if err != nil {
		return nil, err
	}

	if c.Status != models.CourseStatusPublished && c.OwnerID != callerID {
		enrolled, err := IsEnrolled(db, c.ID, callerID)
		if err != nil {
			return nil, err
		}

		if !enrolled {
			return nil, ErrCourseNotFound
		}
	}

	return &c, nil
}

// Delete removes a course owned by callerID with everything hanging off it.
func (s *Service) Delete(ctx context.Context, callerID, courseID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := FindOwned(tx, courseID, callerID); err != nil {
			return err
		}

		contentIDs := tx.Model(&models.CourseTopicContent{}).Select("id").Where("course_id = ?", courseID)
		if err := deleteContentDependents(tx, contentIDs); err != nil {
			return err
		}

		steps := []struct {
			model any
			where string
		}{
			{&models.CourseTopicContent{}, "course_id = ?"},
			{&models.CourseTopic{}, "course_id = ?"},
			{&models.CourseEnrollment{}, "course_id = ?"},
			{&models.CourseStudyGroupContent{}, "course_id = ?"},
		}
		for _, st := range steps {
			if err := tx.Where(st.where, courseID).Delete(st.model).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.Course{}, courseID).Error; err != nil {
			return err
		}

		log.Info().Uint64("course_id", courseID).Uint64("user_id", callerID).Msg("course deleted")

		return nil
	})
}

// deleteContentDependents removes quizzes, their questions and attempts, and notes with their
// file rows for the contents selected by contentIDs. Stored note objects are left to the
// object store lifecycle.
func deleteContentDependents(tx *gorm.DB, contentIDs *gorm.DB) error {
	quizIDs := tx.Model(&models.Quiz{}).Select("id").Where("content_id IN (?)", contentIDs)
	noteIDs := tx.Model(&models.Note{}).Select("id").Where("content_id IN (?)", contentIDs)

	steps := []struct {
		model any
		where string
		sub   *gorm.DB
	}{
		{&models.QuizAttempt{}, "quiz_id IN (?)", quizIDs},
		{&models.QuizQuestion{}, "quiz_id IN (?)", quizIDs},
		{&models.Quiz{}, "content_id IN (?)", contentIDs},
		{&models.NoteFile{}, "note_id IN (?)", noteIDs},
		{&models.Note{}, "content_id IN (?)", contentIDs},
	}
	for _, st := range steps {
		if err := tx.Where(st.where, st.sub).Delete(st.model).Error; err != nil {
			return err
		}
	}

	return nil
}

// CreateTopic adds a topic to a course owned by callerID. A nil position appends.
func (s *Service) CreateTopic(ctx context.Context, callerID, courseID uint64, title string, position *int) (*models.CourseTopic, error) {
	t := &models.CourseTopic{CourseID: courseID, Title: strings.TrimSpace(title)}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := FindOwned(tx, courseID, callerID); err != nil {
			return err
		}

		if position != nil {
			t.Position = *position
		} else {
			var n int64
			if err := tx.Model(&models.CourseTopic{}).Where("course_id = ?", courseID).Count(&n).Error; err != nil {
				return err
			}

			t.Position = int(n)
		}

		return tx.Create(t).Error
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func findTopic(tx *gorm.DB, id uint64) (*models.CourseTopic, error) {
	var t models.CourseTopic

	err := tx.First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTopicNotFound
	}

	if err != nil {
		return nil, err
	}

	return &t, nil
}

// DeleteTopic removes a topic and its contents.
func (s *Service) DeleteTopic(ctx context.Context, callerID, topicID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := findTopic(tx, topicID)
		if err != nil {
			return err
		}

		if _, err = FindOwned(tx, t.CourseID, callerID); err != nil {
			return err
		}

		contentIDs := tx.Model(&models.CourseTopicContent{}).Select("id").Where("topic_id = ?", topicID)
		if err = deleteContentDependents(tx, contentIDs); err != nil {
			return err
		}

		if err = tx.Where("topic_id = ?", topicID).Delete(&models.CourseTopicContent{}).Error; err != nil {
			return err
		}

		return tx.Delete(t).Error
	})
}

// ContentInput holds the fields of a new content row.
type ContentInput struct {
	TopicID  uint64
	Type     models.ContentType
	Title    string
	Body     string
	VideoURL string
	Position *int
}

// CreateContent adds a content row to a topic of a course owned by callerID.
func (s *Service) CreateContent(ctx context.Context, callerID uint64, in ContentInput) (*models.CourseTopicContent, error) {
	if !models.IsContentType(in.Type) {
		return nil, ErrInvalidContentType
	}

	in.VideoURL = strings.TrimSpace(in.VideoURL)
	if in.Type == models.ContentVideo && in.VideoURL == "" {
		return nil, ErrVideoURLRequired
	}

	var c *models.CourseTopicContent

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := findTopic(tx, in.TopicID)
		if err != nil {
			return err
		}

		if _, err = FindOwned(tx, t.CourseID, callerID); err != nil {
			return err
		}

		c = &models.CourseTopicContent{
			TopicID:  t.ID,
			CourseID: t.CourseID,
			Type:     in.Type,
			Title:    strings.TrimSpace(in.Title),
			Body:     in.Body,
			VideoURL: in.VideoURL,
		}

		if in.Position != nil {
			c.Position = *in.Position
		} else {
			var n int64
			if err = tx.Model(&models.CourseTopicContent{}).Where("topic_id = ?", t.ID).Count(&n).Error; err != nil {
				return err
			}

			c.Position = int(n)
		}

		return tx.Create(c).Error
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// DeleteContent removes a content row with its quiz and notes.
func (s *Service) DeleteContent(ctx context.Context, callerID, contentID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := FindContent(tx, contentID)
		if err != nil {
			return err
		}

		if _, err = FindOwned(tx, c.CourseID, callerID); err != nil {
			return err
		}

		ids := tx.Model(&models.CourseTopicContent{}).Select("id").Where("id = ?", contentID)
		if err = deleteContentDependents(tx, ids); err != nil {
			return err
		}

		return tx.Delete(c).Error
	})
}

// Enroll makes userID take a published course.
func (s *Service) Enroll(ctx context.Context, userID, courseID uint64) (*models.CourseEnrollment, error) {
	var e *models.CourseEnrollment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := Find(tx, courseID)
		if err != nil {
			return err
		}

		if c.Status != models.CourseStatusPublished && c.OwnerID != userID {
			return ErrCourseNotPublished
		}

		enrolled, err := IsEnrolled(tx, courseID, userID)
		if err != nil {
			return err
		}

		if enrolled {
			return ErrAlreadyEnrolled
		}

		e = &models.CourseEnrollment{CourseID: courseID, UserID: userID, EnrolledAt: s.now()}

		return tx.Create(e).Error
	})
	if err != nil {
		return nil, err
	}

	return e, nil
}

// Unenroll removes the enrollment of userID.
func (s *Service) Unenroll(ctx context.Context, userID, courseID uint64) error {
	res := s.db.WithContext(ctx).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Delete(&models.CourseEnrollment{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNotEnrolled
	}

	return nil
}

// MyEnrollments returns the enrollments of userID with their courses.
func (s *Service) MyEnrollments(ctx context.Context, userID uint64) ([]models.CourseEnrollment, error) {
	out := make([]models.CourseEnrollment, 0)

	err := s.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&out).Error

	return out, err
}
