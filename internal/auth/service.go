package auth

import (
	"context"
	"errors"

	"github.com/homestylefoods/storefront-backend/pkg/config"
	apperrors "github.com/homestylefoods/storefront-backend/pkg/errors"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
	"github.com/homestylefoods/storefront-backend/pkg/security"
)

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// Service authenticates and registers storefront accounts.
type Service interface {
	Login(ctx context.Context, email, password string) (User, error)
	Register(ctx context.Context, input RegisterInput) error
	IsAdmin(email string) bool
	SeedAdmin(ctx context.Context) error
}

type service struct {
	users     *Store
	passwords config.PasswordConfig
	admin     config.AdminConfig
	logg      *logger.Logger
}

// NewService validates dependencies and returns the auth service.
func NewService(users *Store, passwords config.PasswordConfig, admin config.AdminConfig, logg *logger.Logger) (Service, error) {
	if users == nil {
		return nil, errors.New("user store is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{
		users:     users,
		passwords: passwords,
		admin:     admin,
		logg:      logg,
	}, nil
}

// Login verifies credentials. Unknown emails and wrong passwords return the
// same error so the response does not reveal which one failed.
func (s *service) Login(ctx context.Context, email, password string) (User, error) {
	user, ok := s.users.FindByEmail(email)
	if !ok {
		return User{}, apperrors.New(apperrors.CodeInvalidCredentials, "unknown email")
	}

	match, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return User{}, apperrors.Wrap(apperrors.CodeInternal, err, "verifying password")
	}
	if !match {
		return User{}, apperrors.New(apperrors.CodeInvalidCredentials, "password mismatch")
	}

	s.logg.Info(s.logg.WithUserEmail(ctx, user.Email), "user logged in")
	return user, nil
}

// Register creates the account after checking the password confirmation.
func (s *service) Register(ctx context.Context, input RegisterInput) error {
	if input.Password != input.ConfirmPassword {
		return apperrors.New(apperrors.CodeValidation, "Passwords do not match")
	}

	hash, err := security.HashPassword(input.Password, s.passwords)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "hashing password")
	}

	if err := s.users.Create(User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}); err != nil {
		return err
	}

	s.logg.Info(s.logg.WithUserEmail(ctx, input.Email), "user registered")
	return nil
}

// IsAdmin reports whether the email matches the configured admin account.
func (s *service) IsAdmin(email string) bool {
	return email != "" && normalizeEmail(email) == normalizeEmail(s.admin.Email)
}

// SeedAdmin creates the bootstrap admin account at startup.
func (s *service) SeedAdmin(ctx context.Context) error {
	hash, err := security.HashPassword(s.admin.Password, s.passwords)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "hashing admin password")
	}

	err = s.users.Create(User{
		Name:         s.admin.Name,
		Email:        s.admin.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeAlreadyExists {
			return nil
		}
		return err
	}

	s.logg.Info(s.logg.WithUserEmail(ctx, s.admin.Email), "admin account seeded")
	return nil
}
