package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/foodhub/app/models"
	"github.com/shashiranjanraj/foodhub/app/repositories"
	"github.com/shashiranjanraj/foodhub/pkg/auth"
	"github.com/shashiranjanraj/foodhub/pkg/logger"
	"github.com/shashiranjanraj/foodhub/pkg/validate"
)

// UserStore reads and creates accounts. FindByUsername returns (nil, nil)
// for an unknown name; Create returns repositories.ErrDuplicate for a taken
// one.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Username  string `form:"username"         json:"username"         validate:"required,max=100"`
	Email     string `form:"email"            json:"email"            validate:"required,email,max=255"`
	Password  string `form:"password"         json:"password"         validate:"required,min=4,max=72"`
	Confirm   string `form:"confirm_password" json:"confirm_password" validate:"required,eqfield=Password"`
	LoginType string `form:"login_type"       json:"login_type"       validate:"omitempty,oneof=user admin"`
}

// LoginResult is a verified account plus an API token for it.
type LoginResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register validates in and creates the account with a bcrypt password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.LoginType == "" {
		in.LoginType = models.LoginUser
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, &ValidationError{Fields: errs}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	u := &models.User{
		Username:  in.Username,
		Password:  hash,
		Email:     in.Email,
		LoginType: in.LoginType,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		logger.WithCtx(ctx).Error("user insert failed", "error", err)
		return nil, fmt.Errorf("auth: register: %w: %w", ErrPersistence, err)
	}

	logger.WithCtx(ctx).Info("user registered", "username", u.Username, "login_type", u.LoginType)
	return u, nil
}

// Login checks the password and issues a token. adminOnly rejects
// non-admin accounts as if the credentials were wrong.
func (s *AuthService) Login(ctx context.Context, username, password string, adminOnly bool) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("auth: find user: %w", err)
	}
	if u == nil || !auth.CheckPassword(u.Password, password) || (adminOnly && !u.IsAdmin()) {
		logger.WithCtx(ctx).Warn("login failed", "username", username, "admin", adminOnly)
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(u.Username, u.LoginType)
	if err != nil {
		return nil, fmt.Errorf("auth: token: %w", err)
	}
	return &LoginResult{User: u, Token: token}, nil
}
