package usecases

import (
	"context"
	"errors"
	"strings"

	"habit-tracker/auth"
	"habit-tracker/entities"
	"habit-tracker/repositories"

	"github.com/rs/zerolog/log"
)

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type AuthResult struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type AuthUseCase struct {
	users    repositories.UserRepository
	settings repositories.SettingsRepository
	tokens   *auth.TokenService
}

func NewAuthUseCase(users repositories.UserRepository, settings repositories.SettingsRepository, tokens *auth.TokenService) *AuthUseCase {
	return &AuthUseCase{users: users, settings: settings, tokens: tokens}
}

// Register creates the account and its default settings and returns a session token.
func (uc *AuthUseCase) Register(ctx context.Context, in Credentials) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if len(in.Password) > auth.MaxPasswordBytes {
		return nil, validationError("password must be at most %d bytes", auth.MaxPasswordBytes)
	}

	if _, err := uc.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, validationError("Email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{Email: in.Email, PasswordHash: hash}
	if err := uc.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration for the same email
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, validationError("Email already registered")
		}
		return nil, err
	}

	if _, err := uc.settings.GetOrCreate(ctx, user.ID); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID).Msg("user registered")
	return uc.issue(user)
}

// Login checks credentials. Unknown email and wrong password fail identically.
func (uc *AuthUseCase) Login(ctx context.Context, in Credentials) (*AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, unauthorized("Invalid credentials")
		}
		return nil, err
	}
	if !auth.VerifyPassword(in.Password, user.PasswordHash) {
		return nil, unauthorized("Invalid credentials")
	}
	return uc.issue(user)
}

// Authenticate resolves a bearer token to the user id it was issued for.
func (uc *AuthUseCase) Authenticate(token string) (string, error) {
	userID, err := uc.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return "", unauthorized("Token expired")
		}
		return "", unauthorized("Invalid token")
	}
	return userID, nil
}

func (uc *AuthUseCase) issue(user *entities.User) (*AuthResult, error) {
	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, UserID: user.ID, Email: user.Email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
