package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	// DefaultLimit is the default number of items returned by history
	// listings
	DefaultLimit = 20

	// MaxLimit caps the number of items per request
	MaxLimit = 100
)

// Limit extracts and clamps the "limit" query parameter
func Limit(c *fiber.Ctx) int {
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))
	if limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
