package services

import (
	"fmt"
	"strings"

	"gavelhouse/internal/auctionerrors"
	"gavelhouse/internal/domain"
	"gavelhouse/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users *repos.UserRepo
}

// Register creates an account and signs the new user in on the same session.
func (s *AuthService) Register(sid, username, email, password, confirmation string) (*domain.User, error) {
	if password != confirmation {
		return nil, fmt.Errorf("%w: passwords must match", auctionerrors.ErrValidation)
	}
	if existing, _ := s.Users.ByUsername(username); existing != nil {
		return nil, auctionerrors.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	if err := s.Users.Create(id, username, email, string(hash)); err != nil {
		// unique index races still surface as a taken username
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, auctionerrors.ErrUsernameTaken
		}
		return nil, err
	}

	u, err := s.Users.ByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(sid, username, password string) (*domain.User, error) {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		return nil, auctionerrors.ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, auctionerrors.ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
