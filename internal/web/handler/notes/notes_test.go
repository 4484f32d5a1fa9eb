package notes

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmsforge/lms-backend/internal/db/dbtest"
	"github.com/lmsforge/lms-backend/internal/db/models"
	"github.com/lmsforge/lms-backend/internal/db/paginate"
	courseservice "github.com/lmsforge/lms-backend/internal/service/course"
	"github.com/lmsforge/lms-backend/internal/web/handler/handlertest"
)

func withParam(route, name string, id uint64) string {
	return strings.Replace(route, ":"+name, strconv.FormatUint(id, 10), 1)
}

func multipartBody(t *testing.T, noteID, fileName string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if noteID != "" {
		require.NoError(t, w.WriteField(FormNoteID, noteID))
	}

	if fileName != "" {
		part, err := w.CreateFormFile(FormFile, fileName)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestNoteEndpoints(t *testing.T) {
	h := handlertest.New(t)
	s := &Service{}
	s.Init(h.App, h.Env)

	ctx := context.Background()
	author := dbtest.CreateUser(t, h.DB, "author")
	other := dbtest.CreateUser(t, h.DB, "other")

	courses := courseservice.New(h.DB)
	course, err := courses.Create(ctx, author.ID, courseservice.CreateInput{Title: "Go", Status: models.CourseStatusPublished})
	require.NoError(t, err)
	topic, err := courses.CreateTopic(ctx, author.ID, course.ID, "Basics", nil)
	require.NoError(t, err)
	content, err := courses.CreateContent(ctx, author.ID, courseservice.ContentInput{
		TopicID: topic.ID, Type: models.ContentWritten, Title: "Intro",
	})
	require.NoError(t, err)

	status, _ := h.Do(t, fiber.MethodPost, RouteCreate, map[string]any{"contentId": 9999, "text": "lost"}, author.ID)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env := h.Do(t, fiber.MethodPost, RouteCreate, map[string]any{"contentId": content.ID, "text": "goroutines are cheap"}, author.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	note := handlertest.Decode[models.Note](t, env)

	status, _ = h.Do(t, fiber.MethodPost, RouteUpdate, map[string]any{"noteId": note.ID, "text": "hijack"}, other.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = h.Do(t, fiber.MethodPost, RouteUpdate, map[string]any{"noteId": note.ID, "text": "channels too"}, author.ID)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "channels too", handlertest.Decode[models.Note](t, env).Text)

	status, env = h.Do(t, fiber.MethodGet, withParam(RouteByContent, "contentId", content.ID), nil, other.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, handlertest.Decode[[]models.Note](t, env))

	status, env = h.Do(t, fiber.MethodGet, RouteList, nil, author.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, handlertest.Decode[paginate.Result[models.Note]](t, env).TotalItems)

	noteID := strconv.FormatUint(note.ID, 10)

	testCases := []struct {
		name     string
		noteID   string
		fileName string
		data     []byte
		caller   uint64
		want     int
	}{
		{"missing note id", "", "a.txt", []byte("hi"), author.ID, fiber.StatusBadRequest},
		{"missing file", noteID, "", nil, author.ID, fiber.StatusBadRequest},
		{"too large", noteID, "big.bin", bytes.Repeat([]byte("x"), 2048), author.ID, fiber.StatusBadRequest},
		{"not the author", noteID, "a.txt", []byte("hi"), other.ID, fiber.StatusBadRequest},
		{"unknown note", "9999", "a.txt", []byte("hi"), author.ID, fiber.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tc.noteID, tc.fileName, tc.data)
			req := httptest.NewRequest(fiber.MethodPost, RouteUploadFile, body)
			req.Header.Set(fiber.HeaderContentType, contentType)

			status, env := h.Send(t, req, tc.caller)
			assert.Equal(t, tc.want, status, env.Message)
		})
	}

	body, contentType := multipartBody(t, noteID, "summary.txt", []byte("select picks a ready case"))
	req := httptest.NewRequest(fiber.MethodPost, RouteUploadFile, body)
	req.Header.Set(fiber.HeaderContentType, contentType)

	status, env = h.Send(t, req, author.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	file := handlertest.Decode[models.NoteFile](t, env)
	assert.Equal(t, "summary.txt", file.FileName)
	assert.EqualValues(t, len("select picks a ready case"), file.Size)

	status, _ = h.Do(t, fiber.MethodGet, withParam(RouteFileURL, "fileId", file.ID), nil, other.ID)
	assert.NotEqual(t, fiber.StatusOK, status)

	status, env = h.Do(t, fiber.MethodGet, withParam(RouteFileURL, "fileId", file.ID), nil, author.ID)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	url := handlertest.Decode[fileURL](t, env)
	assert.True(t, strings.HasPrefix(url.URL, "memory://test/"), url.URL)

	status, _ = h.Do(t, fiber.MethodPost, RouteDeleteFile, map[string]any{"fileId": file.ID}, author.ID)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = h.Do(t, fiber.MethodGet, withParam(RouteFileURL, "fileId", file.ID), nil, author.ID)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = h.Do(t, fiber.MethodPost, RouteDelete, map[string]any{"noteId": note.ID}, author.ID)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = h.Do(t, fiber.MethodPost, RouteUpdate, map[string]any{"noteId": note.ID, "text": "gone"}, author.ID)
	assert.Equal(t, fiber.StatusNotFound, status)
}
