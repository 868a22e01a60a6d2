package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Stored field names of a User document.
const (
	UserFieldName      = "Name"
	UserFieldEmail     = "Email"
	UserFieldRole      = "Role"
	UserFieldCreatedAt = "CreatedAt"
	UserFieldUpdatedAt = "UpdatedAt"
)

type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email             string             `bson:"Email" json:"email"`
	Password          string             `bson:"Password" json:"-"`
	Name              string             `bson:"Name" json:"name"`
	Role              string             `bson:"Role" json:"role"`
	CreatedAt         time.Time          `bson:"CreatedAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"UpdatedAt" json:"updatedAt"`
	LastEditedByAdmin *time.Time         `bson:"LastEditedByAdmin" json:"lastEditedByAdmin"`
	Projects          []string           `bson:"Projects" json:"projects"`
	Tasks             []string           `bson:"Tasks" json:"tasks"`
}

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
