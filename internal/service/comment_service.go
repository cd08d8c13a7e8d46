package service

import (
	"context"
	"errors"
	"strings"

	"github.com/momtheprogram/api-final-writers-blog/internal/models"
	"github.com/momtheprogram/api-final-writers-blog/internal/policy"
	"github.com/momtheprogram/api-final-writers-blog/internal/repository"

	"gorm.io/gorm"
)

// CommentService carries comment rules. Every operation resolves the
// parent post first; a missing parent is NOT_FOUND before any comment
// logic runs.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput is the create payload. PostID is the resolved URL
// parent and AuthorID the principal; neither is client-supplied.
type CreateCommentInput struct {
	AuthorID uint
	PostID   uint
	Text     string
}

// UpdateCommentInput is the update payload.
type UpdateCommentInput struct {
	PrincipalID uint
	Method      string
	PostID      uint
	CommentID   uint
	Text        *string
}

// DeleteCommentInput identifies the comment to delete.
type DeleteCommentInput struct {
	PrincipalID uint
	PostID      uint
	CommentID   uint
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) resolvePost(ctx context.Context, postID uint) error {
	_, err := s.postRepo.GetByID(ctx, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Post", postID)
	}
	return err
}

func (s *CommentService) getComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, postID, commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the comments of exactly one parent post.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if err := s.resolvePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// GetComment fetches one comment scoped to its parent post.
func (s *CommentService) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	if err := s.resolvePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.getComment(ctx, postID, commentID)
}

// CreateComment validates and stores a comment under its parent post.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if d := policy.AuthorizeCreate(in.AuthorID); d != policy.Allow {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := s.resolvePost(ctx, in.PostID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewFieldValidationError("text", "This field is required")
	}

	comment := &models.Comment{
		Text:     in.Text,
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.getComment(ctx, in.PostID, comment.ID)
}

// UpdateComment applies a full or partial update after the ownership gate.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if err := s.resolvePost(ctx, in.PostID); err != nil {
		return nil, err
	}
	comment, err := s.getComment(ctx, in.PostID, in.CommentID)
	if err != nil {
		return nil, err
	}

	if err := authorizeWrite(in.PrincipalID, in.Method, comment.AuthorID, "comments"); err != nil {
		return nil, err
	}

	if in.Text != nil {
		if strings.TrimSpace(*in.Text) == "" {
			return nil, models.NewFieldValidationError("text", "This field may not be blank")
		}
		comment.Text = *in.Text
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.getComment(ctx, in.PostID, in.CommentID)
}

// DeleteComment removes a comment after the ownership gate.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	if err := s.resolvePost(ctx, in.PostID); err != nil {
		return err
	}
	comment, err := s.getComment(ctx, in.PostID, in.CommentID)
	if err != nil {
		return err
	}

	if err := authorizeWrite(in.PrincipalID, "DELETE", comment.AuthorID, "comments"); err != nil {
		return err
	}

	return s.commentRepo.Delete(ctx, comment.ID)
}
