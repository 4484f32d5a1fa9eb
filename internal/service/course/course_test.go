package course

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/db/dbtest"
	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/db/paginate"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := dbtest.Open(t)

	return New(db), db
}

func intPtr(i int) *int { return &i }

func TestCreateAndUpdate(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := dbtest.CreateUser(t, db, "owner")
	other := dbtest.CreateUser(t, db, "other")

	c, err := svc.Create(ctx, owner.ID, CreateInput{Title: " Go 101 ", Level: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, "Go 101", c.Title)
	assert.Equal(t, models.CourseStatusDraft, c.Status)

	_, err = svc.Create(ctx, owner.ID, CreateInput{Title: "x", Status: "LIVE"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	published := models.CourseStatusPublished
	_, err = svc.Update(ctx, other.ID, UpdateInput{CourseID: c.ID, Status: &published})
	require.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.Update(ctx, owner.ID, UpdateInput{CourseID: c.ID, Status: &published})
	require.NoError(t, err)
	assert.Equal(t, published, updated.Status)

	_, err = svc.Update(ctx, owner.ID, UpdateInput{CourseID: 999})
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestListVisibilityAndSearch(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := dbtest.CreateUser(t, db, "owner")
	other := dbtest.CreateUser(t, db, "other")

	_, err := svc.Create(ctx, owner.ID, CreateInput{Title: "Go Basics", Status: models.CourseStatusPublished})
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner.ID, CreateInput{Title: "Go Draft"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner.ID, CreateInput{Title: "Rust", Status: models.CourseStatusPublished})
	require.NoError(t, err)

	res, err := svc.List(ctx, other.ID, ListInput{Page: paginate.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalItems)

	res, err = svc.List(ctx, owner.ID, ListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TotalItems)

	res, err = svc.List(ctx, other.ID, ListInput{Search: "go"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Go Basics", res.Items[0].Title)
}

func TestTreeAndContentRules(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := dbtest.CreateUser(t, db, "owner")
	other := dbtest.CreateUser(t, db, "other")

	c, err := svc.Create(ctx, owner.ID, CreateInput{Title: "Go", Status: models.CourseStatusPublished})
	require.NoError(t, err)

	_, err = svc.CreateTopic(ctx, other.ID, c.ID, "Intro", nil)
	require.ErrorIs(t, err, ErrNotOwner)

	second, err := svc.CreateTopic(ctx, owner.ID, c.ID, "Second", intPtr(5))
	require.NoError(t, err)
	first, err := svc.CreateTopic(ctx, owner.ID, c.ID, "First", intPtr(1))
	require.NoError(t, err)

	testCases := []struct {
		name    string
		in      ContentInput
		wantErr error
	}{
		{name: "unknown type", in: ContentInput{TopicID: first.ID, Type: "podcast", Title: "x"}, wantErr: ErrInvalidContentType},
		{name: "video without url", in: ContentInput{TopicID: first.ID, Type: models.ContentVideo, Title: "x"}, wantErr: ErrVideoURLRequired},
		{name: "missing topic", in: ContentInput{TopicID: 999, Type: models.ContentWritten, Title: "x"}, wantErr: ErrTopicNotFound},
		{name: "video", in: ContentInput{TopicID: first.ID, Type: models.ContentVideo, Title: "Watch", VideoURL: "https://v.test/1"}},
		{name: "written", in: ContentInput{TopicID: first.ID, Type: models.ContentWritten, Title: "Read", Body: "text"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateContent(ctx, owner.ID, tc.in)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}

	got, err := svc.Get(ctx, other.ID, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Topics, 2)
	assert.Equal(t, first.ID, got.Topics[0].ID)
	assert.Equal(t, second.ID, got.Topics[1].ID)
	require.Len(t, got.Topics[0].Contents, 2)
	assert.Equal(t, "Watch", got.Topics[0].Contents[0].Title)
	assert.Equal(t, 1, got.Topics[0].Contents[1].Position)
}

func TestGetDraftVisibility(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := dbtest.CreateUser(t, db, "owner")
	other := dbtest.CreateUser(t, db, "other")

	c, err := svc.Create(ctx, owner.ID, CreateInput{Title: "Draft"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, other.ID, c.ID)
	require.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.Get(ctx, owner.ID, c.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, other.ID, c.ID)
	require.ErrorIs(t, err, ErrCourseNotPublished)
}

func TestEnrollment(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := dbtest.CreateUser(t, db, "owner")
	learner := dbtest.CreateUser(t, db, "learner")

	c, err := svc.Create(ctx, owner.ID, CreateInput{Title: "Go", Status: models.CourseStatusPublished})
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, learner.ID, c.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, learner.ID, c.ID)
	require.ErrorIs(t, err, ErrAlreadyEnrolled)

	list, err := svc.MyEnrollments(ctx, learner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Course)
	assert.Equal(t, "Go", list[0].Course.Title)

	require.NoError(t, svc.Unenroll(ctx, learner.ID, c.ID))
	require.ErrorIs(t, svc.Unenroll(ctx, learner.ID, c.ID), ErrNotEnrolled)

	_, err = svc.Enroll(ctx, learner.ID, 999)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestDeleteCascades(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := dbtest.CreateUser(t, db, "owner")
	learner := dbtest.CreateUser(t, db, "learner")

	c, err := svc.Create(ctx, owner.ID, CreateInput{Title: "Go", Status: models.CourseStatusPublished})
	require.NoError(t, err)
	topic, err := svc.CreateTopic(ctx, owner.ID, c.ID, "Intro", nil)
	require.NoError(t, err)
	content, err := svc.CreateContent(ctx, owner.ID, ContentInput{TopicID: topic.ID, Type: models.ContentQuiz, Title: "Check"})
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, learner.ID, c.ID)
	require.NoError(t, err)

	quiz := &models.Quiz{ContentID: content.ID, CourseID: c.ID, Title: "Q", PassingScore: 50, CreatedBy: owner.ID}
	require.NoError(t, db.Create(quiz).Error)
	require.NoError(t, db.Create(&models.QuizQuestion{QuizID: quiz.ID, Prompt: "?", Options: []string{"a", "b"}}).Error)
	require.NoError(t, db.Create(&models.QuizAttempt{QuizID: quiz.ID, UserID: learner.ID}).Error)
	note := &models.Note{UserID: learner.ID, ContentID: content.ID, Text: "n"}
	require.NoError(t, db.Create(note).Error)
	require.NoError(t, db.Create(&models.NoteFile{NoteID: note.ID, UserID: learner.ID, FileName: "a.txt", ObjectKey: "k"}).Error)
	require.NoError(t, db.Create(&models.CourseStudyGroupContent{StudyGroupID: 1, CourseID: c.ID, AddedBy: owner.ID}).Error)

	require.ErrorIs(t, svc.Delete(ctx, learner.ID, c.ID), ErrNotOwner)
	require.NoError(t, svc.Delete(ctx, owner.ID, c.ID))

	for _, m := range []any{
		&models.Course{}, &models.CourseTopic{}, &models.CourseTopicContent{}, &models.CourseEnrollment{},
		&models.Quiz{}, &models.QuizQuestion{}, &models.QuizAttempt{}, &models.Note{}, &models.NoteFile{},
		&models.CourseStudyGroupContent{},
	} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T rows left", m)
	}
}

func TestDeleteTopicAndContent(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	owner := dbtest.CreateUser(t, db, "owner")

	c, err := svc.Create(ctx, owner.ID, CreateInput{Title: "Go"})
	require.NoError(t, err)
	keep, err := svc.CreateTopic(ctx, owner.ID, c.ID, "Keep", nil)
	require.NoError(t, err)
	drop, err := svc.CreateTopic(ctx, owner.ID, c.ID, "Drop", nil)
	require.NoError(t, err)

	kept, err := svc.CreateContent(ctx, owner.ID, ContentInput{TopicID: keep.ID, Type: models.ContentWritten, Title: "a"})
	require.NoError(t, err)
	extra, err := svc.CreateContent(ctx, owner.ID, ContentInput{TopicID: keep.ID, Type: models.ContentInterview, Title: "b"})
	require.NoError(t, err)
	_, err = svc.CreateContent(ctx, owner.ID, ContentInput{TopicID: drop.ID, Type: models.ContentWritten, Title: "c"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTopic(ctx, owner.ID, drop.ID))
	require.NoError(t, svc.DeleteContent(ctx, owner.ID, extra.ID))
	require.ErrorIs(t, svc.DeleteContent(ctx, owner.ID, extra.ID), ErrContentNotFound)
	require.ErrorIs(t, svc.DeleteTopic(ctx, owner.ID, drop.ID), ErrTopicNotFound)

	var ids []uint64
	require.NoError(t, db.Model(&models.CourseTopicContent{}).Pluck("id", &ids).Error)
	assert.Equal(t, []uint64{kept.ID}, ids)
}
