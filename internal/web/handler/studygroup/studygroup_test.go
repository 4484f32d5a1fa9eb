package studygroup

import (
	"context"
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
	orgservice "github.com/lmsforge/lms-backend/internal/service/organization"
	"github.com/lmsforge/lms-backend/internal/web/handler/handlertest"
)

func withParam(route, name string, id uint64) string {
	return strings.Replace(route, ":"+name, strconv.FormatUint(id, 10), 1)
}

func TestStudyGroupEndpoints(t *testing.T) {
	h := handlertest.New(t)
	s := &Service{}
	s.Init(h.App, h.Env)

	owner := dbtest.CreateUser(t, h.DB, "owner")
	peer := dbtest.CreateUser(t, h.DB, "peer")
	outsider := dbtest.CreateUser(t, h.DB, "outsider")

	status, env := h.Do(t, fiber.MethodPost, RouteSave, map[string]any{"description": "no name"}, owner.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, env.Errors)

	status, env = h.Do(t, fiber.MethodPost, RouteSave, map[string]any{"groupName": "Night owls", "description": "weekly"}, owner.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	group := handlertest.Decode[models.CourseStudyGroup](t, env)
	assert.Equal(t, "Night owls", group.Name)

	status, env = h.Do(t, fiber.MethodPost, RouteSave, map[string]any{
		"courseStudyGroupId": group.ID, "groupName": "Early birds",
	}, owner.ID)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	renamed := handlertest.Decode[models.CourseStudyGroup](t, env)
	assert.Equal(t, "Early birds", renamed.Name)
	assert.Equal(t, "weekly", renamed.Description, "rename keeps the description")

	testCases := []struct {
		name   string
		body   map[string]any
		caller uint64
		want   int
	}{
		{"invalid role", map[string]any{"courseStudyGroupId": group.ID, "userId": peer.ID, "role": "OWNER"}, owner.ID, fiber.StatusBadRequest},
		{"missing user", map[string]any{"courseStudyGroupId": group.ID}, owner.ID, fiber.StatusBadRequest},
		{"non member caller", map[string]any{"courseStudyGroupId": group.ID, "userId": peer.ID}, outsider.ID, fiber.StatusBadRequest},
		{"unknown group", map[string]any{"courseStudyGroupId": 9999, "userId": peer.ID}, owner.ID, fiber.StatusNotFound},
		{"added", map[string]any{"courseStudyGroupId": group.ID, "userId": peer.ID}, owner.ID, fiber.StatusCreated},
		{"duplicate", map[string]any{"courseStudyGroupId": group.ID, "userId": peer.ID}, owner.ID, fiber.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := h.Do(t, fiber.MethodPost, RouteAddMember, tc.body, tc.caller)
			assert.Equal(t, tc.want, status, env.Message)
		})
	}

	_, env = h.Do(t, fiber.MethodPost, RouteAddMember, map[string]any{
		"courseStudyGroupId": group.ID, "userId": outsider.ID, "role": "SUPERUSER",
	}, owner.ID)
	assert.Equal(t, "Invalid role", env.Message)

	course, err := courseservice.New(h.DB).Create(context.Background(), owner.ID, courseservice.CreateInput{
		Title: "Go", Status: models.CourseStatusPublished,
	})
	require.NoError(t, err)

	status, env = h.Do(t, fiber.MethodPost, RouteAddContent, map[string]any{"courseStudyGroupId": group.ID, "courseId": course.ID}, peer.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	status, env = h.Do(t, fiber.MethodGet, RouteList, nil, peer.ID)
	require.Equal(t, fiber.StatusOK, status)
	page := handlertest.Decode[paginate.Result[models.CourseStudyGroup]](t, env)
	assert.EqualValues(t, 1, page.TotalItems)

	status, _ = h.Do(t, fiber.MethodGet, withParam(RouteDetail, "id", group.ID), nil, outsider.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = h.Do(t, fiber.MethodGet, withParam(RouteDetail, "id", group.ID), nil, peer.ID)
	require.Equal(t, fiber.StatusOK, status)
	detail := handlertest.Decode[models.CourseStudyGroup](t, env)
	assert.Len(t, detail.Members, 2)
	assert.Len(t, detail.Contents, 1)

	status, _ = h.Do(t, fiber.MethodPost, RouteRemoveContent, map[string]any{"courseStudyGroupId": group.ID, "courseId": course.ID}, peer.ID)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = h.Do(t, fiber.MethodPost, RouteDelete, map[string]any{"courseStudyGroupId": group.ID}, peer.ID)
	assert.Equal(t, fiber.StatusBadRequest, status, "only the owner deletes")

	status, _ = h.Do(t, fiber.MethodPost, RouteRemoveMember, map[string]any{"courseStudyGroupId": group.ID, "userId": peer.ID}, peer.ID)
	assert.Equal(t, fiber.StatusOK, status, "members may leave")

	status, _ = h.Do(t, fiber.MethodPost, RouteDelete, map[string]any{"courseStudyGroupId": group.ID}, owner.ID)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = h.Do(t, fiber.MethodGet, withParam(RouteDetail, "id", group.ID), nil, owner.ID)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSaveOrganizationTag(t *testing.T) {
	h := handlertest.New(t)
	s := &Service{}
	s.Init(h.App, h.Env)

	admin := dbtest.CreateUser(t, h.DB, "admin")
	stranger := dbtest.CreateUser(t, h.DB, "stranger")

	org, err := orgservice.New(h.DB, orgservice.Options{}).
		Create(context.Background(), admin.ID, orgservice.CreateInput{Name: "Acme", Email: "ops@acme.test"})
	require.NoError(t, err)

	testCases := []struct {
		name   string
		body   map[string]any
		caller uint64
		want   int
	}{
		{"unknown organization", map[string]any{"groupName": "Ghost", "organizationId": 9999}, admin.ID, fiber.StatusNotFound},
		{"not a member", map[string]any{"groupName": "Outsiders", "organizationId": org.ID}, stranger.ID, fiber.StatusBadRequest},
		{"member", map[string]any{"groupName": "Insiders", "organizationId": org.ID}, admin.ID, fiber.StatusCreated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := h.Do(t, fiber.MethodPost, RouteSave, tc.body, tc.caller)
			assert.Equal(t, tc.want, status, env.Message)
		})
	}

	var groups []models.CourseStudyGroup
	require.NoError(t, h.DB.Find(&groups).Error)
	require.Len(t, groups, 1)
	require.NotNil(t, groups[0].OrganizationID)
	assert.Equal(t, org.ID, *groups[0].OrganizationID)
}
