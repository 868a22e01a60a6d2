package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasktrack/tasktrack-api/internal/constants"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
	"github.com/tasktrack/tasktrack-api/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("a user with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrRoleMismatch         = errors.New("user does not have the requested role")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrMissingCredentials   = errors.New("email, password and name are required")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, login and token issuing.
type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// AuthResult is a signed-in user and their access token.
type AuthResult struct {
	User  *models.User
	Token string
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates a user with the regular role and signs them in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || name == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrMissingCredentials
	}

	user, err := createUser(ctx, s.users, s.log, email, name, input.Password, models.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// LoginInput holds the credentials for authentication. A non-empty Role must
// match the user's role, ignoring case.
type LoginInput struct {
	Email    string
	Password string
	Role     string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, storageError(ctx, s.log, "find user", err)
	}
	if user == nil || user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if role := strings.TrimSpace(input.Role); role != "" && !strings.EqualFold(user.Role, role) {
		return nil, fmt.Errorf("%w: %s", ErrRoleMismatch, role)
	}

	return s.issue(user)
}

// AdminExists reports whether any admin account exists and how many users there are.
func (s *AuthService) AdminExists(ctx context.Context) (bool, int64, error) {
	total, err := s.users.Count(ctx, nil)
	if err != nil {
		return false, 0, storageError(ctx, s.log, "count users", err)
	}

	admins, err := s.users.Count(ctx, query.BuildFilter(UserEntity, query.UserCriteria{Role: models.RoleAdmin}))
	if err != nil {
		return false, 0, storageError(ctx, s.log, "count admins", err)
	}
	return admins > 0, total, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	if len(password) < constants.MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrFailedToHashPassword
	}
	return string(hashed), nil
}

// createUser stores a new user after the email uniqueness check. The unique
// index catches a concurrent registration that passes the check.
func createUser(ctx context.Context, users repository.UserRepository, log *zap.Logger, email, name, password, role string) (*models.User, error) {
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return nil, storageError(ctx, log, "check email", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	user := &models.User{
		Email:     email,
		Password:  hashed,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
		Projects:  []string{},
		Tasks:     []string{},
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, storageError(ctx, log, "create user", err)
	}
	return user, nil
}
