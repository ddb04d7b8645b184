package services

import (
	"context"

	"github.com/communitree/backend/internal/app/models"
	"github.com/communitree/backend/internal/app/models/dto"
	"github.com/communitree/backend/internal/pkg/apperrors"
)

// UserStore persists user nodes keyed by email
type UserStore interface {
	MergeOnKey(ctx context.Context, email, username string) (*models.User, error)
}

// UserService exposes the caller's profile. The merge-on-key read doubles as
// the lazy user creation path on first contact.
type UserService interface {
	Details(ctx context.Context, email, username string) (*dto.UserDetailsResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	users UserStore
}

// NewUserService creates a new UserService
func NewUserService(users UserStore) UserService {
	return &userServiceImpl{users: users}
}

// Details merges-or-reads the caller's user node and returns its profile
// fields
func (s *userServiceImpl) Details(ctx context.Context, email, username string) (*dto.UserDetailsResponse, error) {
	user, err := s.users.MergeOnKey(ctx, email, username)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	return &dto.UserDetailsResponse{
		Name:        user.Name,
		PublicEmail: user.PublicEmail,
		Dob:         user.Dob,
		Age:         user.Age,
		Phone:       user.Phone,
		Gender:      user.Gender,
		Location:    user.Location,
		Bio:         user.Bio,
		Linkedin:    user.Linkedin,
		Github:      user.Github,
		Twitter:     user.Twitter,
		Website:     user.Website,
	}, nil
}
