package server

import (
	"github.com/momtheprogram/api-final-writers-blog/internal/models"
	"github.com/momtheprogram/api-final-writers-blog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetFollows handles GET /api/v1/follow/. The list is always scoped to
// the authenticated user's own subscriptions; the optional search
// parameter filters by the usernames of either participant.
func (s *Server) GetFollows(c *fiber.Ctx) error {
	follows, err := s.followService.ListFollows(c.Context(), currentUserID(c), c.Query("search"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.NewFollowResponses(follows))
}

// CreateFollow handles POST /api/v1/follow/
func (s *Server) CreateFollow(c *fiber.Ctx) error {
	var req struct {
		Following string `json:"following"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	follow, err := s.followService.CreateFollow(c.Context(), service.CreateFollowInput{
		UserID:            currentUserID(c),
		FollowingUsername: req.Following,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewFollowResponse(follow))
}
