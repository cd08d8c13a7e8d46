package server

import (
	"github.com/momtheprogram/api-final-writers-blog/internal/models"
	"github.com/momtheprogram/api-final-writers-blog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/v1/posts/. Without a limit parameter the
// full collection comes back as a plain array; with one, as the
// count/next/previous envelope.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	window, err := parsePagination(c)
	if err != nil {
		return fail(c, err)
	}

	if !window.Enveloped {
		posts, err := s.postService.ListPosts(c.Context(), 0, 0)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(models.NewPostResponses(posts))
	}

	count, err := s.postService.CountPosts(c.Context())
	if err != nil {
		return fail(c, err)
	}

	var posts []*models.Post
	if window.Limit > 0 {
		posts, err = s.postService.ListPosts(c.Context(), window.Limit, window.Offset)
		if err != nil {
			return fail(c, err)
		}
	}

	return c.JSON(envelope(c, window, count, models.NewPostResponses(posts)))
}

// GetPost handles GET /api/v1/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.NewPostResponse(post))
}

// CreatePost handles POST /api/v1/posts/
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text  string `json:"text"`
		Group *uint  `json:"group"`
		Image string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: currentUserID(c),
		Text:     req.Text,
		GroupID:  req.Group,
		Image:    req.Image,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewPostResponse(post))
}

// UpdatePost handles PUT and PATCH on /api/v1/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Text  *string `json:"text"`
		Group *uint   `json:"group"`
		Image *string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PrincipalID: currentUserID(c),
		Method:      c.Method(),
		PostID:      id,
		Text:        req.Text,
		GroupID:     req.Group,
		Image:       req.Image,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.NewPostResponse(post))
}

// DeletePost handles DELETE /api/v1/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		PrincipalID: currentUserID(c),
		PostID:      id,
	}); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
