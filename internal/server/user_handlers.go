package server

import (
	"juicebox/internal/models"
	"juicebox/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetUser handles GET /api/users/:id, returning the user augmented with the
// posts visible to the requesting viewer.
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID := s.optionalIdentity(c)

	user, err := s.userService.GetUserWithPosts(c.Context(), id, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(user)
}

// GetUserPosts handles GET /api/users/:id/posts. An unknown author yields an
// empty list, not an error.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	viewerID := s.optionalIdentity(c)

	posts, err := s.postService.ListPostsByAuthor(c.Context(), id, viewerID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
	})
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name     string `json:"name"`
		Location string `json:"location"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   userID,
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(user)
}
