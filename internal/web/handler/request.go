package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lmsforge/lms-backend/internal/db/paginate"
)

const (
	// QueryPage is the query parameter name for the current page index.
	QueryPage = "page"
	// QueryLimit is the query parameter name for the page size.
	QueryLimit = "limit"
)

// ErrInvalidID is returned for a path id that is not a positive integer.
var ErrInvalidID = fiber.NewError(fiber.StatusBadRequest, "Invalid id")

// UserID returns the authenticated caller id stored by the auth middleware.
func UserID(c *fiber.Ctx) uint64 {
	id, _ := c.Locals(LocalsUserID).(uint64)
	return id
}

// ParamID parses the positive integer path parameter name.
func ParamID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// PageParams reads page and limit query parameters.
func PageParams(c *fiber.Ctx) paginate.Params {
	return paginate.Params{
		Page:  c.QueryInt(QueryPage, 1),
		Limit: c.QueryInt(QueryLimit, paginate.DefaultPageSize),
	}.Normalize()
}
