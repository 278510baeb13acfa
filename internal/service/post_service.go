// Package service contains the business rules sitting between handlers and
// repositories: ownership checks and the post visibility policy.
package service

import (
	"context"

	"juicebox/internal/models"
	"juicebox/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
	Tags     []string
}

type UpdatePostInput struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// Visible reports whether the viewer may see the post: active posts are
// public, inactive posts are visible only to their author. Viewer 0 means
// anonymous.
func Visible(post *models.Post, viewerID uint) bool {
	if post.Active {
		return true
	}
	return viewerID != 0 && post.AuthorID == viewerID
}

// FilterVisible narrows posts to those visible to the viewer, preserving
// input order. Pure; no side effects.
func FilterVisible(posts []*models.Post, viewerID uint) []*models.Post {
	visible := make([]*models.Post, 0, len(posts))
	for _, post := range posts {
		if Visible(post, viewerID) {
			visible = append(visible, post)
		}
	}
	return visible
}

// assertOwner is the single ownership check shared by every mutation path,
// delete included.
func assertOwner(actorID uint, post *models.Post) error {
	if post.AuthorID != actorID {
		return models.NewUnauthorizedError("You can only modify your own posts")
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		Active:   true,
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post, in.Tags); err != nil {
		return nil, err
	}

	// Re-fetch for the assembled shape (author summary + tag rows).
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterVisible(posts, viewerID), nil
}

func (s *PostService) ListPostsByAuthor(ctx context.Context, authorID, viewerID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.GetByAuthorID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return FilterVisible(posts, viewerID), nil
}

func (s *PostService) ListPostsByTag(ctx context.Context, name string, viewerID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.GetByTagName(ctx, name)
	if err != nil {
		return nil, err
	}
	return FilterVisible(posts, viewerID), nil
}

func (s *PostService) UpdatePost(ctx context.Context, actorID, postID uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := assertOwner(actorID, post); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		post.Content = *in.Content
	}

	if err := s.postRepo.Update(ctx, post, in.Tags); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := assertOwner(actorID, post); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}
