package services

import (
	"context"
	"errors"
	"strings"

	"blog-service/models"
	"blog-service/store"
)

const userSearchLimit = 50

// UserService reads public profile data. Accounts are created and
// authenticated upstream; this service never sees credentials.
type UserService struct {
	users store.UserStore
}

func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// Profile returns the public view of a user, looked up by username.
func (s *UserService) Profile(ctx context.Context, username string) (*models.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.PersonalInfo.Email = "" // not part of the public profile
	return user, nil
}

// Search matches usernames case-insensitively.
func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	users, err := s.users.Search(ctx, query, userSearchLimit)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PersonalInfo.Email = ""
	}
	return users, nil
}
