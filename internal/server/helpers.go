package server

import (
	"strconv"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePagination extracts limit/offset query parameters with sane bounds.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseID parses a numeric path parameter. On failure it writes the error
// response and reports written=true.
func parseID(c *fiber.Ctx, param, message string) (id uint, written bool, err error) {
	raw := c.Params(param)
	val, perr := strconv.ParseUint(raw, 10, 32)
	if perr != nil {
		return 0, true, models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(message))
	}
	return uint(val), false, nil
}

// currentUserID returns the authenticated user's ID from locals. Handlers
// behind AuthRequired can rely on it being present.
func currentUserID(c *fiber.Ctx) uint {
	uid, _ := c.Locals("userID").(uint)
	return uid
}
