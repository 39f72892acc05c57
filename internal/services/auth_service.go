package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/crypto/bcrypt"

	"madamchoice/internal/models"
	"madamchoice/internal/repositories"
)

// AuthService is the user directory: signup and credential checks.
// It issues no sessions or tokens.
type AuthService struct {
	userRepo repositories.UserRepository
	cost     int
	now      func() time.Time
}

// NewAuthService creates a new AuthService hashing with bcrypt.DefaultCost.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return NewAuthServiceWithCost(userRepo, bcrypt.DefaultCost)
}

// NewAuthServiceWithCost creates an AuthService with a custom bcrypt cost.
func NewAuthServiceWithCost(userRepo repositories.UserRepository, cost int) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cost:     cost,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser registers a user with a bcrypt hash of the password. It fails
// with ErrConflict when the email is already registered.
func (s *AuthService) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, validationError("password must be at most 72 bytes")
		}
		return nil, errors.Wrap(err, "hash password")
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    s.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, errors.Wrapf(ErrConflict, "email %s already registered", email)
		}
		return nil, errors.Wrap(err, "create user")
	}
	return withoutHash(user), nil
}

// Authenticate returns the user when the password matches the stored hash.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return withoutHash(user), nil
}

func withoutHash(user *models.User) *models.User {
	out := *user
	out.PasswordHash = ""
	return &out
}
