package server

import (
	"github.com/momtheprogram/api-final-writers-blog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGroups handles GET /api/v1/groups/
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.ListGroups(c.Context())
	if err != nil {
		return fail(c, err)
	}
	if groups == nil {
		groups = []*models.Group{}
	}
	return c.JSON(groups)
}

// GetGroup handles GET /api/v1/groups/:id
func (s *Server) GetGroup(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	group, err := s.groupService.GetGroup(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(group)
}

// GroupMethodNotAllowed answers every write verb on the group routes.
// The collection is read-only over the API, for authenticated and
// anonymous callers alike.
func (s *Server) GroupMethodNotAllowed(c *fiber.Ctx) error {
	return fail(c, models.NewMethodNotAllowedError(c.Method()))
}
