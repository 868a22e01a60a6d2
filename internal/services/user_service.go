package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasktrack/tasktrack-api/internal/constants"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
	"github.com/tasktrack/tasktrack-api/internal/repository"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidRole   = errors.New("role must be admin or user")
	ErrEmailRequired = errors.New("email is required")
)

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return strings.EqualFold(a.Role, models.RoleAdmin)
}

// UserService handles user management.
type UserService struct {
	users    repository.UserRepository
	log      *zap.Logger
	observer QueryObserver
}

func NewUserService(users repository.UserRepository, log *zap.Logger, observer QueryObserver) *UserService {
	return &UserService{users: users, log: log, observer: observerOrNop(observer)}
}

// List returns one page of users matching criteria.
func (s *UserService) List(ctx context.Context, criteria query.UserCriteria) (*query.Page[models.User], error) {
	return runQuery(ctx, s.log, s.observer, s.users, UserEntity, criteria)
}

// ListRegular is List restricted to non-admin users.
func (s *UserService) ListRegular(ctx context.Context, criteria query.UserCriteria) (*query.Page[models.User], error) {
	criteria.Role = models.RoleUser
	return s.List(ctx, criteria)
}

// All returns every user, newest first.
func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	users, err := findAll(ctx, s.users, UserEntity, nil)
	if err != nil {
		return nil, storageError(ctx, s.log, "list users", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, storageError(ctx, s.log, "find user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CreateUserInput represents an admin-created account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = models.RoleUser
	}
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}
	return createUser(ctx, s.users, s.log, email, strings.TrimSpace(input.Name), input.Password, role)
}

// UpdateUserInput holds a partial update. Empty fields keep their stored value.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Update applies input to the user. Non-admins may only edit themselves and
// may not change roles. An admin editing someone else stamps LastEditedByAdmin
// when at least one field changed.
func (s *UserService) Update(ctx context.Context, actor Actor, id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if !actor.IsAdmin() {
		if actor.ID != user.ID.Hex() {
			return nil, ErrForbidden
		}
		if role != "" && role != user.Role {
			return nil, ErrForbidden
		}
	}
	if role != "" && !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	changed := false
	if name := strings.TrimSpace(input.Name); name != "" && name != user.Name {
		user.Name = name
		changed = true
	}
	if email := normalizeEmail(input.Email); email != "" && email != user.Email {
		existing, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, storageError(ctx, s.log, "check email", err)
		}
		if existing != nil && existing.ID != user.ID {
			return nil, ErrEmailTaken
		}
		user.Email = email
		changed = true
	}
	if role != "" && role != user.Role {
		user.Role = role
		changed = true
	}
	if input.Password != "" && bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		hashed, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
		changed = true
	}

	if !changed {
		return user, nil
	}

	now := nowUTC()
	user.UpdatedAt = now
	if actor.IsAdmin() && actor.ID != user.ID.Hex() {
		user.LastEditedByAdmin = &now
	}

	found, err := s.users.Update(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, storageError(ctx, s.log, "update user", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	found, err := s.users.Delete(ctx, oid)
	if err != nil {
		return storageError(ctx, s.log, "delete user", err)
	}
	if !found {
		return ErrUserNotFound
	}
	return nil
}

// UserStats summarises the user base.
type UserStats struct {
	TotalUsers   int64     `json:"totalUsers"`
	AdminUsers   int64     `json:"adminUsers"`
	RegularUsers int64     `json:"regularUsers"`
	RecentUsers  int64     `json:"recentUsers"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

// Stats counts all users, each role, and users created in the last 30 days.
func (s *UserService) Stats(ctx context.Context) (*UserStats, error) {
	now := nowUTC()
	since := now.Add(-constants.RecentUsersWindow)

	filters := []query.UserCriteria{
		{},
		{Role: models.RoleAdmin},
		{Role: models.RoleUser},
		{CreatedAfter: &since},
	}
	var counts [4]int64
	for i, criteria := range filters {
		n, err := s.users.Count(ctx, query.BuildFilter(UserEntity, criteria))
		if err != nil {
			return nil, storageError(ctx, s.log, "count users", err)
		}
		counts[i] = n
	}

	return &UserStats{
		TotalUsers:   counts[0],
		AdminUsers:   counts[1],
		RegularUsers: counts[2],
		RecentUsers:  counts[3],
		CalculatedAt: now,
	}, nil
}
