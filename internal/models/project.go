package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses offered by the client.
const (
	ProjectStatusNotStarted = "Not Started"
	ProjectStatusInProgress = "In Progress"
	ProjectStatusCompleted  = "Completed"
)

// Stored field names of a Project document.
const (
	ProjectFieldTitle         = "title"
	ProjectFieldDescription   = "description"
	ProjectFieldAssignedUsers = "assignedUsers"
	ProjectFieldStatus        = "status"
	ProjectFieldCreatedAt     = "createdAt"
	ProjectFieldDeadline      = "deadline"
	ProjectFieldUpdatedAt     = "updatedAt"
)

type Project struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	AssignedUsers []string           `bson:"assignedUsers" json:"assignedUsers"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	Deadline      *time.Time         `bson:"deadline" json:"deadline"`
	Status        string             `bson:"status" json:"status"`
	// UpdatedAt stays nil until the first edit.
	UpdatedAt *time.Time `bson:"updatedAt" json:"updatedAt"`
}
