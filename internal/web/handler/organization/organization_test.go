package organization

import (
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmsforge/lms-backend/internal/db/dbtest"
	"github.com/lmsforge/lms-backend/internal/db/models"
	orgservice "github.com/lmsforge/lms-backend/internal/service/organization"
	"github.com/lmsforge/lms-backend/internal/web/handler/handlertest"
)

func withID(route string, id uint64) string {
	return strings.Replace(route, ":id", strconv.FormatUint(id, 10), 1)
}

func setup(t *testing.T) *handlertest.Harness {
	t.Helper()

	h := handlertest.New(t)
	s := &Service{}
	s.Init(h.App, h.Env)

	return h
}

func TestOrganizationLifecycle(t *testing.T) {
	h := setup(t)
	alice := dbtest.CreateUser(t, h.DB, "alice")
	bob := dbtest.CreateUser(t, h.DB, "bob")
	mallory := dbtest.CreateUser(t, h.DB, "mallory")

	status, env := h.Do(t, fiber.MethodPost, RouteCreate, map[string]any{"name": "Acme", "email": "ops@acme.test"}, alice.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	org := handlertest.Decode[models.Organization](t, env)

	status, _ = h.Do(t, fiber.MethodPost, RouteCreate, map[string]any{"name": "Acme", "email": "ops@acme.test"}, bob.ID)
	assert.Equal(t, fiber.StatusConflict, status)

	status, env = h.Do(t, fiber.MethodPost, RouteAddUser, map[string]any{
		"organizationId": org.ID, "userId": bob.ID, "role": "MEMBER",
	}, alice.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	status, env = h.Do(t, fiber.MethodPost, RouteAddUser, map[string]any{
		"organizationId": org.ID, "userId": bob.ID, "role": "MEMBER",
	}, alice.ID)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "User is already part of this organization", env.Message)

	status, env = h.Do(t, fiber.MethodPost, RouteAddUser, map[string]any{
		"organizationId": org.ID, "userId": bob.ID, "role": "OWNER",
	}, alice.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, env.Errors)

	status, env = h.Do(t, fiber.MethodGet, withID(RouteUsers, org.ID), nil, bob.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, handlertest.Decode[[]models.OrganizationUser](t, env), 2)

	status, env = h.Do(t, fiber.MethodGet, withID(RouteUsers, org.ID)+"?role=ADMIN", nil, bob.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, handlertest.Decode[[]models.OrganizationUser](t, env), 1)

	status, _ = h.Do(t, fiber.MethodGet, withID(RouteGet, org.ID), nil, mallory.ID)
	assert.Equal(t, fiber.StatusBadRequest, status, "non members are refused")

	status, _ = h.Do(t, fiber.MethodGet, withID(RouteGet, 9999), nil, alice.ID)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = h.Do(t, fiber.MethodPost, RouteUpdate, map[string]any{"organizationId": org.ID, "name": "Hijacked"}, bob.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = h.Do(t, fiber.MethodPost, RouteUpdate, map[string]any{"organizationId": org.ID, "domain": "acme.test"}, alice.ID)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "acme.test", handlertest.Decode[models.Organization](t, env).Domain)

	status, env = h.Do(t, fiber.MethodPost, RouteUpdateUserRole, map[string]any{
		"organizationId": org.ID, "userId": alice.ID, "role": "MEMBER",
	}, alice.ID)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, orgservice.ErrLastAdmin.Error(), env.Message)

	status, _ = h.Do(t, fiber.MethodPost, RouteRemoveUser, map[string]any{"organizationId": org.ID, "userId": bob.ID}, bob.ID)
	assert.Equal(t, fiber.StatusOK, status, "members may leave")

	status, env = h.Do(t, fiber.MethodGet, RouteMine, nil, alice.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, handlertest.Decode[[]models.Organization](t, env), 1)

	status, _ = h.Do(t, fiber.MethodPost, RouteDelete, map[string]any{"organizationId": org.ID}, alice.ID)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = h.Do(t, fiber.MethodGet, withID(RouteGet, org.ID), nil, alice.ID)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestInvitations(t *testing.T) {
	h := setup(t)
	alice := dbtest.CreateUser(t, h.DB, "alice")
	carol := dbtest.CreateUser(t, h.DB, "carol")

	status, env := h.Do(t, fiber.MethodPost, RouteCreate, map[string]any{"name": "Globex", "email": "hq@globex.test"}, alice.ID)
	require.Equal(t, fiber.StatusCreated, status)
	org := handlertest.Decode[models.Organization](t, env)

	status, env = h.Do(t, fiber.MethodPost, RouteInviteUser, map[string]any{
		"organizationId": org.ID, "email": carol.Email, "role": "INSTRUCTOR",
	}, alice.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	res := handlertest.Decode[orgservice.InviteResult](t, env)
	require.NotNil(t, res.Membership)
	assert.Equal(t, models.MembershipPending, res.Membership.Status)

	status, env = h.Do(t, fiber.MethodGet, RouteMyInvites, nil, carol.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, handlertest.Decode[[]models.OrganizationUser](t, env), 1)

	status, env = h.Do(t, fiber.MethodPost, RouteAcceptInvite, map[string]any{"organizationId": org.ID}, carol.ID)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	accepted := handlertest.Decode[models.OrganizationUser](t, env)
	assert.Equal(t, models.MembershipActive, accepted.Status)
	assert.NotNil(t, accepted.JoinedAt)

	status, _ = h.Do(t, fiber.MethodPost, RouteRejectInvite, map[string]any{"organizationId": org.ID}, carol.ID)
	assert.Equal(t, fiber.StatusNotFound, status, "nothing pending any more")

	status, env = h.Do(t, fiber.MethodPost, RouteInviteUser, map[string]any{
		"organizationId": org.ID, "email": "newcomer@example.com", "role": "MEMBER",
	}, alice.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	res = handlertest.Decode[orgservice.InviteResult](t, env)
	require.NotNil(t, res.Invite)
	assert.Len(t, h.Mailer.Sent(), 1)

	status, _ = h.Do(t, fiber.MethodPost, RouteInviteUser, map[string]any{
		"organizationId": org.ID, "email": "newcomer@example.com", "role": "MEMBER",
	}, alice.ID)
	assert.Equal(t, fiber.StatusConflict, status)

	status, env = h.Do(t, fiber.MethodGet, withID(RouteInvites, org.ID), nil, alice.ID)
	require.Equal(t, fiber.StatusOK, status)
	invites := handlertest.Decode[[]models.OrganizationUserInvite](t, env)
	require.Len(t, invites, 1)

	status, _ = h.Do(t, fiber.MethodGet, withID(RouteInvites, org.ID), nil, carol.ID)
	assert.Equal(t, fiber.StatusBadRequest, status, "instructors cannot list invites")

	status, env = h.Do(t, fiber.MethodPost, RouteCancelInvite, map[string]any{"inviteId": invites[0].ID}, alice.ID)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, models.InviteCancelled, handlertest.Decode[models.OrganizationUserInvite](t, env).Status)

	status, _ = h.Do(t, fiber.MethodPost, RouteAcceptToken, map[string]any{}, carol.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestRoutesRequireAuth(t *testing.T) {
	h := setup(t)

	for _, route := range []string{RouteMine, RouteMyInvites} {
		status, _ := h.Do(t, fiber.MethodGet, route, nil, 0)
		assert.Equal(t, fiber.StatusUnauthorized, status, route)
	}
}

func TestNameLengthMatchesColumn(t *testing.T) {
	h := setup(t)
	alice := dbtest.CreateUser(t, h.DB, "alice")

	status, env := h.Do(t, fiber.MethodPost, RouteCreate, map[string]any{"name": "Acme", "email": "ops@acme.test"}, alice.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	org := handlertest.Decode[models.Organization](t, env)

	testCases := []struct {
		name   string
		route  string
		body   map[string]any
		status int
	}{
		{
			name:   "create at limit",
			route:  RouteCreate,
			body:   map[string]any{"name": strings.Repeat("a", 150), "email": "ops@a.test"},
			status: fiber.StatusCreated,
		},
		{
			name:   "create over limit",
			route:  RouteCreate,
			body:   map[string]any{"name": strings.Repeat("b", 151), "email": "ops@b.test"},
			status: fiber.StatusBadRequest,
		},
		{
			name:   "update over limit",
			route:  RouteUpdate,
			body:   map[string]any{"organizationId": org.ID, "name": strings.Repeat("c", 151)},
			status: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := h.Do(t, fiber.MethodPost, tc.route, tc.body, alice.ID)
			require.Equal(t, tc.status, status, env.Message)

			if tc.status == fiber.StatusBadRequest {
				assert.NotEmpty(t, env.Errors)
			}
		})
	}

	var stored models.Organization
	require.NoError(t, h.DB.First(&stored, org.ID).Error)
	assert.Equal(t, "Acme", stored.Name)
}
