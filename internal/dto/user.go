package dto

import (
	"time"

	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name"`
	Role              string     `json:"role"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	LastEditedByAdmin *time.Time `json:"lastEditedByAdmin"`
	Projects          []string   `json:"projects"`
	Tasks             []string   `json:"tasks"`
}

// RegisterRequest is the body of a self-service sign up. Username is the
// older spelling of Name.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// LoginRequest carries credentials. Role, when given, must match the account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// CreateUserRequest is an admin-created account.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// UpdateUserRequest is a partial update; omitted fields are left alone.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserSearchResponse is a user page with the filters that produced it.
type UserSearchResponse struct {
	query.Page[UserDTO]
	Filters UserFilters `json:"filters"`
}

// UserFilters echoes the criteria of a user search.
type UserFilters struct {
	SearchTerm    string     `json:"searchTerm"`
	Role          string     `json:"role"`
	CreatedAfter  *time.Time `json:"createdAfter"`
	CreatedBefore *time.Time `json:"createdBefore"`
	SortBy        string     `json:"sortBy"`
	SortOrder     string     `json:"sortOrder"`
}

func (r RegisterRequest) Input() services.RegisterInput {
	name := r.Name
	if name == "" {
		name = r.Username
	}
	return services.RegisterInput{Email: r.Email, Password: r.Password, Name: name}
}

func (r LoginRequest) Input() services.LoginInput {
	return services.LoginInput{Email: r.Email, Password: r.Password, Role: r.Role}
}

func (r CreateUserRequest) Input() services.CreateUserInput {
	return services.CreateUserInput{Name: r.Name, Email: r.Email, Password: r.Password, Role: r.Role}
}

func (r UpdateUserRequest) Input() services.UpdateUserInput {
	return services.UpdateUserInput{Name: r.Name, Email: r.Email, Password: r.Password, Role: r.Role}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                user.ID.Hex(),
		Email:             user.Email,
		Name:              user.Name,
		Role:              user.Role,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
		LastEditedByAdmin: user.LastEditedByAdmin,
		Projects:          orEmpty(user.Projects),
		Tasks:             orEmpty(user.Tasks),
	}
}

// ToUserDTOs converts a slice of users.
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, user := range users {
		out[i] = ToUserDTO(user)
	}
	return out
}

// ToUserPage converts a page of users, keeping its metadata.
func ToUserPage(page *query.Page[models.User]) query.Page[UserDTO] {
	return query.Page[UserDTO]{Items: ToUserDTOs(page.Items), PageMeta: page.PageMeta}
}

// ToUserSearchResponse wraps a page together with the criteria used.
func ToUserSearchResponse(page *query.Page[models.User], criteria query.UserCriteria) UserSearchResponse {
	paging := criteria.Paging().WithDefaults()
	return UserSearchResponse{
		Page: ToUserPage(page),
		Filters: UserFilters{
			SearchTerm:    paging.Search,
			Role:          criteria.Role,
			CreatedAfter:  criteria.CreatedAfter,
			CreatedBefore: criteria.CreatedBefore,
			SortBy:        paging.SortBy,
			SortOrder:     paging.SortOrder,
		},
	}
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
