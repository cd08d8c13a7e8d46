package server

import (
	"github.com/momtheprogram/api-final-writers-blog/internal/models"
	"github.com/momtheprogram/api-final-writers-blog/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/v1/posts/:post_id/comments/
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return fail(c, err)
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.NewCommentResponses(comments))
}

// GetComment handles GET /api/v1/posts/:post_id/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return fail(c, err)
	}
	commentID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	comment, err := s.commentService.GetComment(c.Context(), postID, commentID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.NewCommentResponse(comment))
}

// CreateComment handles POST /api/v1/posts/:post_id/comments/
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		AuthorID: currentUserID(c),
		PostID:   postID,
		Text:     req.Text,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewCommentResponse(comment))
}

// UpdateComment handles PUT and PATCH on /api/v1/posts/:post_id/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return fail(c, err)
	}
	commentID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Text *string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), service.UpdateCommentInput{
		PrincipalID: currentUserID(c),
		Method:      c.Method(),
		PostID:      postID,
		CommentID:   commentID,
		Text:        req.Text,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(models.NewCommentResponse(comment))
}

// DeleteComment handles DELETE /api/v1/posts/:post_id/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "post_id")
	if err != nil {
		return fail(c, err)
	}
	commentID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := s.commentService.DeleteComment(c.Context(), service.DeleteCommentInput{
		PrincipalID: currentUserID(c),
		PostID:      postID,
		CommentID:   commentID,
	}); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
