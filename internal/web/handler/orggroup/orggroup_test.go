package orggroup

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
	orgservice "github.com/lmsforge/lms-backend/internal/service/organization"
	groupservice "github.com/lmsforge/lms-backend/internal/service/orggroup"
	"github.com/lmsforge/lms-backend/internal/web/handler/handlertest"
)

func withParam(route, name string, id uint64) string {
	return strings.Replace(route, ":"+name, strconv.FormatUint(id, 10), 1)
}

func TestGroupEndpoints(t *testing.T) {
	h := handlertest.New(t)
	s := &Service{}
	s.Init(h.App, h.Env)

	ctx := context.Background()
	alice := dbtest.CreateUser(t, h.DB, "alice")
	bob := dbtest.CreateUser(t, h.DB, "bob")
	carol := dbtest.CreateUser(t, h.DB, "carol")

	orgs := orgservice.New(h.DB, orgservice.Options{})
	org, err := orgs.Create(ctx, alice.ID, orgservice.CreateInput{Name: "Acme", Email: "ops@acme.test"})
	require.NoError(t, err)
	_, err = orgs.AddUserToOrganization(ctx, org.ID, bob.ID, models.OrgRoleMember, &alice.ID, models.MembershipActive)
	require.NoError(t, err)

	status, env := h.Do(t, fiber.MethodPost, RouteCreate, map[string]any{"organizationId": org.ID, "name": "Cohort A"}, alice.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	group := handlertest.Decode[models.OrganizationGroup](t, env)

	status, env = h.Do(t, fiber.MethodPost, RouteCreate, map[string]any{"organizationId": org.ID, "name": "Cohort A"}, alice.ID)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "Group with this name already exists", env.Message)

	status, _ = h.Do(t, fiber.MethodPost, RouteCreate, map[string]any{"organizationId": org.ID, "name": "Cohort B"}, bob.ID)
	assert.Equal(t, fiber.StatusBadRequest, status, "plain members cannot create groups")

	status, env = h.Do(t, fiber.MethodPost, RouteAddUsers, map[string]any{"groupId": group.ID, "userIds": []uint64{bob.ID, carol.ID}}, alice.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, groupservice.ErrNotOrganizationMember.Error(), env.Message)

	status, env = h.Do(t, fiber.MethodGet, withParam(RouteMembers, "id", group.ID), nil, alice.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, handlertest.Decode[[]models.OrganizationUserGroup](t, env), "failed batch inserts nothing")

	status, env = h.Do(t, fiber.MethodPost, RouteAddUsers, map[string]any{"groupId": group.ID, "userIds": []uint64{bob.ID}}, alice.ID)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, []uint64{bob.ID}, handlertest.Decode[groupservice.AddResult](t, env).Added)

	status, env = h.Do(t, fiber.MethodPost, RouteAddUsers, map[string]any{"groupId": group.ID, "userIds": []uint64{bob.ID}}, alice.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []uint64{bob.ID}, handlertest.Decode[groupservice.AddResult](t, env).Skipped)

	status, env = h.Do(t, fiber.MethodPost, RouteAddUsers, map[string]any{"groupId": group.ID, "userIds": []uint64{}}, alice.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.NotEmpty(t, env.Errors)

	status, env = h.Do(t, fiber.MethodGet, withParam(RouteList, "organizationId", org.ID), nil, bob.ID)
	require.Equal(t, fiber.StatusOK, status)
	summaries := handlertest.Decode[[]groupservice.GroupSummary](t, env)
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(1), summaries[0].MemberCount)

	status, _ = h.Do(t, fiber.MethodGet, withParam(RouteList, "organizationId", org.ID), nil, carol.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = h.Do(t, fiber.MethodPost, RouteUpdate, map[string]any{"groupId": group.ID, "status": "ARCHIVED"}, alice.ID)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, models.GroupStatusArchived, handlertest.Decode[models.OrganizationGroup](t, env).Status)

	status, env = h.Do(t, fiber.MethodGet, withParam(RouteDetail, "id", group.ID), nil, alice.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, handlertest.Decode[groupservice.GroupDetail](t, env).Members, 1)

	status, _ = h.Do(t, fiber.MethodPost, RouteRemoveUser, map[string]any{"groupId": group.ID, "userId": bob.ID}, bob.ID)
	assert.Equal(t, fiber.StatusOK, status, "members may leave a group")

	status, _ = h.Do(t, fiber.MethodPost, RouteDelete, map[string]any{"groupId": group.ID}, alice.ID)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = h.Do(t, fiber.MethodGet, withParam(RouteDetail, "id", group.ID), nil, alice.ID)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestInputLengthMatchesColumns(t *testing.T) {
	h := handlertest.New(t)
	s := &Service{}
	s.Init(h.App, h.Env)

	alice := dbtest.CreateUser(t, h.DB, "alice")
	org, err := orgservice.New(h.DB, orgservice.Options{}).
		Create(context.Background(), alice.ID, orgservice.CreateInput{Name: "Acme", Email: "ops@acme.test"})
	require.NoError(t, err)

	status, env := h.Do(t, fiber.MethodPost, RouteCreate, map[string]any{"organizationId": org.ID, "name": strings.Repeat("a", 150)}, alice.ID)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	group := handlertest.Decode[models.OrganizationGroup](t, env)

	testCases := []struct {
		name  string
		route string
		body  map[string]any
	}{
		{
			name:  "create name",
			route: RouteCreate,
			body:  map[string]any{"organizationId": org.ID, "name": strings.Repeat("b", 151)},
		},
		{
			name:  "create description",
			route: RouteCreate,
			body:  map[string]any{"organizationId": org.ID, "name": "Cohort", "description": strings.Repeat("d", 501)},
		},
		{
			name:  "update name",
			route: RouteUpdate,
			body:  map[string]any{"groupId": group.ID, "name": strings.Repeat("c", 151)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := h.Do(t, fiber.MethodPost, tc.route, tc.body, alice.ID)
			assert.Equal(t, fiber.StatusBadRequest, status, env.Message)
			assert.NotEmpty(t, env.Errors)
		})
	}

	var n int64
	require.NoError(t, h.DB.Model(&models.OrganizationGroup{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}
