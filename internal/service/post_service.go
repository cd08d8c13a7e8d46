// Package service implements the business rules on top of the
// repositories: validation, parent resolution and ownership gating.
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

// PostService carries the post CRUD rules.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

// CreatePostInput is the create payload. AuthorID always comes from the
// authenticated principal; any author supplied by the client has been
// discarded before this point.
type CreatePostInput struct {
	AuthorID uint
	Text     string
	GroupID  *uint
	Image    string
}

// UpdatePostInput is the update payload. Nil fields are left unchanged;
// PUT and PATCH deliberately share these partial semantics.
type UpdatePostInput struct {
	PrincipalID uint
	Method      string
	PostID      uint
	Text        *string
	GroupID     *uint
	Image       *string
}

// DeletePostInput identifies the post to delete and the principal
// requesting it.
type DeletePostInput struct {
	PrincipalID uint
	PostID      uint
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
	}
}

// ListPosts returns posts in a stable order. A non-positive limit
// returns the full collection.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// CountPosts returns the total number of posts, used for the
// pagination envelope.
func (s *PostService) CountPosts(ctx context.Context) (int64, error) {
	return s.postRepo.Count(ctx)
}

// GetPost fetches one post or a NOT_FOUND error.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", id)
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost validates and stores a new post, stamping the author.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if d := policy.AuthorizeCreate(in.AuthorID); d != policy.Allow {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewFieldValidationError("text", "This field is required")
	}
	if err := s.checkGroup(ctx, in.GroupID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: in.AuthorID,
		GroupID:  in.GroupID,
		Image:    in.Image,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload for the Author/Group associations in the response.
	return s.GetPost(ctx, post.ID)
}

// UpdatePost applies a full or partial update after the ownership gate.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if err := authorizeWrite(in.PrincipalID, in.Method, post.AuthorID, "posts"); err != nil {
		return nil, err
	}

	if in.Text != nil {
		if strings.TrimSpace(*in.Text) == "" {
			return nil, models.NewFieldValidationError("text", "This field may not be blank")
		}
		post.Text = *in.Text
	}
	if in.GroupID != nil {
		if err := s.checkGroup(ctx, in.GroupID); err != nil {
			return nil, err
		}
		post.GroupID = in.GroupID
	}
	if in.Image != nil {
		post.Image = *in.Image
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, in.PostID)
}

// DeletePost removes a post (and, through the store, its comments)
// after the ownership gate.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return err
	}

	if err := authorizeWrite(in.PrincipalID, "DELETE", post.AuthorID, "posts"); err != nil {
		return err
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

func (s *PostService) checkGroup(ctx context.Context, groupID *uint) error {
	if groupID == nil {
		return nil
	}
	ok, err := s.groupRepo.Exists(ctx, *groupID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewFieldValidationError("group", "Referenced group does not exist")
	}
	return nil
}

// authorizeWrite maps an ownership decision to the error taxonomy,
// preserving the unauthenticated/not-owner distinction.
func authorizeWrite(principalID uint, method string, ownerID uint, resource string) error {
	switch policy.Authorize(principalID, method, ownerID) {
	case policy.Allow:
		return nil
	case policy.DenyUnauthenticated:
		return models.NewUnauthorizedError("Authentication required")
	default:
		return models.NewForbiddenError("You can only modify your own " + resource)
	}
}
