package server

import (
	"net/url"

	"juicebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.tagRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"tags": tags,
	})
}

// GetPostsByTag handles GET /api/tags/:tagName/posts. Tag names may contain
// characters like "#" that arrive percent-encoded in the path.
func (s *Server) GetPostsByTag(c *fiber.Ctx) error {
	tagName, err := url.PathUnescape(c.Params("tagName"))
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid tag name"))
	}

	viewerID := s.optionalIdentity(c)

	posts, err := s.postService.ListPostsByTag(c.Context(), tagName, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
	})
}
