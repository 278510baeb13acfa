package repository

import (
	"context"
	"errors"

	"juicebox/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. Multi-step
// mutations (create with tags, tag resync, delete with association cleanup)
// each run inside a single transaction.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tagNames []string) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID uint) ([]*models.Post, error)
	GetByTagName(ctx context.Context, name string) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post, tagNames *[]string) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Author").Create(post).Error; err != nil {
			return err
		}

		tags, err := ensureTags(tx, tagNames)
		if err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return tx.Model(post).Association("Tags").Replace(&tags)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByTagName(ctx context.Context, name string) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Joins("JOIN tags ON tags.id = post_tags.tag_id").
		Where("tags.name = ?", name).
		Order("posts.created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Update saves the post's scalar fields; when tagNames is non-nil the post's
// tag set becomes exactly the supplied set. Both happen in one transaction.
func (r *postRepository) Update(ctx context.Context, post *models.Post, tagNames *[]string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Author").Save(post).Error; err != nil {
			return err
		}

		if tagNames == nil {
			return nil
		}

		tags, err := ensureTags(tx, *tagNames)
		if err != nil {
			return err
		}
		return tx.Model(post).Association("Tags").Replace(&tags)
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the post's tag associations before the post row so no
// dangling post_tags rows survive. A missing id is reported, not swallowed.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}

		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Delete(&post).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}
