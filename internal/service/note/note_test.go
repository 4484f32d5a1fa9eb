package note

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lmsforge/lms-backend/internal/db/dbtest"
	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/db/paginate"
	"github.com/lmsforge/lms-backend/internal/filestore"
	"github.com/lmsforge/lms-backend/internal/service/course"
)

type fixture struct {
	svc     *Service
	db      *gorm.DB
	store   *filestore.Memory
	author  *models.User
	other   *models.User
	content *models.CourseTopicContent
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	ctx := context.Background()
	store := filestore.NewMemory()

	f := &fixture{
		svc:    New(db, Options{Store: store, BasePath: "test", MaxUploadSize: 16}),
		db:     db,
		store:  store,
		author: dbtest.CreateUser(t, db, "author"),
		other:  dbtest.CreateUser(t, db, "other"),
	}

	courses := course.New(db)
	c, err := courses.Create(ctx, f.author.ID, course.CreateInput{Title: "Go"})
	require.NoError(t, err)
	topic, err := courses.CreateTopic(ctx, f.author.ID, c.ID, "Intro", nil)
	require.NoError(t, err)
	f.content, err = courses.CreateContent(ctx, f.author.ID, course.ContentInput{TopicID: topic.ID, Type: models.ContentWritten, Title: "Read"})
	require.NoError(t, err)

	return f
}

func upload(body string) Upload {
	return Upload{FileName: "notes.txt", ContentType: "text/plain", Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestCreateUpdateAndAuthorship(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.author.ID, 999, "x")
	require.ErrorIs(t, err, course.ErrContentNotFound)

	n, err := f.svc.Create(ctx, f.author.ID, f.content.ID, "first")
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.other.ID, n.ID, "hijack")
	require.ErrorIs(t, err, ErrNotAuthor)

	updated, err := f.svc.Update(ctx, f.author.ID, n.ID, "second")
	require.NoError(t, err)
	assert.Equal(t, "second", updated.Text)

	_, err = f.svc.Update(ctx, f.author.ID, 999, "x")
	require.ErrorIs(t, err, ErrNoteNotFound)

	notes, err := f.svc.ByContent(ctx, f.author.ID, f.content.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	notes, err = f.svc.ByContent(ctx, f.other.ID, f.content.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	page, err := f.svc.List(ctx, f.author.ID, paginate.Params{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalItems)
}

func TestAttachments(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	n, err := f.svc.Create(ctx, f.author.ID, f.content.ID, "with file")
	require.NoError(t, err)

	_, err = f.svc.AttachFile(ctx, f.author.ID, n.ID, upload(strings.Repeat("x", 17)))
	require.ErrorIs(t, err, ErrFileTooLarge)

	_, err = f.svc.AttachFile(ctx, f.author.ID, n.ID, upload(""))
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = f.svc.AttachFile(ctx, f.other.ID, n.ID, upload("hello"))
	require.ErrorIs(t, err, ErrNotAuthor)

	file, err := f.svc.AttachFile(ctx, f.author.ID, n.ID, upload("hello"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(file.ObjectKey, "test/notes/"))

	data, ok := f.store.Get(file.ObjectKey)
	require.True(t, ok)
	assert.Equal(t, "hello", string(data))

	u, err := f.svc.FileURL(ctx, f.author.ID, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "memory://"+file.ObjectKey, u)

	_, err = f.svc.FileURL(ctx, f.other.ID, file.ID)
	require.ErrorIs(t, err, ErrNotAuthor)

	require.ErrorIs(t, f.svc.DeleteFile(ctx, f.other.ID, file.ID), ErrNotAuthor)
	require.NoError(t, f.svc.DeleteFile(ctx, f.author.ID, file.ID))

	_, ok = f.store.Get(file.ObjectKey)
	assert.False(t, ok)

	require.ErrorIs(t, f.svc.DeleteFile(ctx, f.author.ID, file.ID), ErrFileNotFound)
}

func TestDeleteRemovesFilesAndObjects(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	n, err := f.svc.Create(ctx, f.author.ID, f.content.ID, "with files")
	require.NoError(t, err)

	a, err := f.svc.AttachFile(ctx, f.author.ID, n.ID, upload("one"))
	require.NoError(t, err)
	b, err := f.svc.AttachFile(ctx, f.author.ID, n.ID, upload("two"))
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.Delete(ctx, f.other.ID, n.ID), ErrNotAuthor)
	require.NoError(t, f.svc.Delete(ctx, f.author.ID, n.ID))

	var count int64
	require.NoError(t, f.db.Model(&models.NoteFile{}).Count(&count).Error)
	assert.Zero(t, count)

	for _, key := range []string{a.ObjectKey, b.ObjectKey} {
		_, ok := f.store.Get(key)
		assert.False(t, ok, key)
	}

	require.ErrorIs(t, f.svc.Delete(ctx, f.author.ID, n.ID), ErrNoteNotFound)
}
