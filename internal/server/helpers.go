package server

import (
	"strconv"

	"juicebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID reads a positive integer route parameter. On failure it writes a
// validation error response and returns a non-nil error; callers should
// return nil in that case since the response is already written.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		respErr := models.NewValidationError("Invalid " + param + " parameter")
		_ = models.RespondWithError(c, respErr)
		return 0, respErr
	}
	return uint(id), nil
}
