package service

import (
	"context"

	"juicebox/internal/models"
	"juicebox/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileInput struct {
	UserID   uint
	Name     string
	Location string
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// GetUserWithPosts returns the user augmented with the posts the viewer may
// see.
func (s *UserService) GetUserWithPosts(ctx context.Context, id, viewerID uint) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithPosts(ctx, id)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Post, 0, len(user.Posts))
	for i := range user.Posts {
		if Visible(&user.Posts[i], viewerID) {
			visible = append(visible, user.Posts[i])
		}
	}
	user.Posts = visible

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxFieldLen = 255

	if in.Name != "" {
		if len(in.Name) > maxFieldLen {
			return nil, models.NewValidationError("Name too long (max 255 characters)")
		}
		user.Name = in.Name
	}
	if in.Location != "" {
		if len(in.Location) > maxFieldLen {
			return nil, models.NewValidationError("Location too long (max 255 characters)")
		}
		user.Location = in.Location
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
