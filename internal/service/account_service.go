package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hoanglm/quizforge/internal/model"
	"github.com/hoanglm/quizforge/internal/repository"
)

var (
	// ErrUsernameTaken is returned when registering an already-used username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials covers both unknown user and wrong password, so
	// the response does not leak which one it was.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AccountService is the account store: registration, lookup and password
// verification. Hashing is bcrypt; plaintext passwords never leave this
// package.
type AccountService interface {
	Register(username, email, password string) (*model.User, error)
	Authenticate(username, password string) (*model.User, error)
}

type accountService struct {
	users repository.UserRepository
}

func NewAccountService(users repository.UserRepository) AccountService {
	return &accountService{users: users}
}

func (s *accountService) Register(username, email, password string) (*model.User, error) {
	if _, err := s.users.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str("username", username).Msg("Failed to check username availability")
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to create user")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	log.Info().Uint("userID", user.ID).Str("username", username).Msg("User registered")
	return user, nil
}

func (s *accountService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to look up user")
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
