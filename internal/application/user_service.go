package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/QuentinDoniczka/SeriousGameBack/internal/domain/entity"
	repo "github.com/QuentinDoniczka/SeriousGameBack/internal/domain/repository"
	"github.com/QuentinDoniczka/SeriousGameBack/pkg/helpers"
	"github.com/QuentinDoniczka/SeriousGameBack/pkg/validation"
)

// ErrInvalidCredentials covers both unknown email and wrong password.
// Callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid credentials")

const errEmailExists = "Email already exists"

// Service orchestrates login, registration, and the profile operations.
// The credential store and token issuer are injected; the service holds
// no state of its own beyond them.
type Service struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *Service {
	return &Service{Repo: repo, JWT: jwt, Logger: logger}
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
}

// RegisterResult reports registration outcome; Errors holds one message
// per violated rule when Success is false.
type RegisterResult struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
}

// UserProfile is the public projection of a user record.
type UserProfile struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Description string `json:"description"`
}

// Login verifies the credentials and issues a bearer token embedding the
// user's id, email, username, and roles. Unknown email and wrong password
// produce the identical ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateToken(u.ID, u.Email, u.Username, u.Roles)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}

	return &LoginResult{
		Token:      token,
		Expiration: exp,
		Email:      u.Email,
		Username:   u.Username,
	}, nil
}

// Register validates the input, pre-checks email uniqueness for a friendly
// message, and creates the record. The store's unique constraint remains
// the source of truth: a create racing past the pre-check still fails and
// is reported with the same error. No token is issued on registration.
func (s *Service) Register(ctx context.Context, username, email, password string) (*RegisterResult, error) {
	if errs := validation.ValidateRegistration(username, email, password); len(errs) > 0 {
		return &RegisterResult{Success: false, Errors: errs}, nil
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return &RegisterResult{Success: false, Errors: []string{errEmailExists}}, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	u := &entity.User{Username: username, Email: email}
	if err := s.Repo.Create(ctx, u, password); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return &RegisterResult{Success: false, Errors: []string{errEmailExists}}, nil
		}
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	}
	return &RegisterResult{Success: true}, nil
}

// GetAllUsers returns every user's public profile in store order. Any
// authenticated caller sees the full listing; there is no ownership
// scoping here.
func (s *Service) GetAllUsers(ctx context.Context) ([]UserProfile, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, UserProfile{
			Email:       u.Email,
			Username:    u.Username,
			Description: u.Description,
		})
	}
	return profiles, nil
}

// UpdateDescription sets the caller's description. callerEmail comes from
// verified token claims, never from the request body. Returns false when
// the caller identity no longer exists in the store.
func (s *Service) UpdateDescription(ctx context.Context, callerEmail, description string) (bool, error) {
	if err := s.Repo.UpdateDescription(ctx, callerEmail, description); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
