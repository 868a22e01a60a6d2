package models

import (
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses offered by the client.
const (
	TaskStatusPending    = "Pending"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
)

// Stored field names of a Task document.
const (
	TaskFieldName          = "Name"
	TaskFieldDescription   = "Description"
	TaskFieldStatus        = "Status"
	TaskFieldProjectID     = "ProjectId"
	TaskFieldAssignedUsers = "AssignedUsers"
	TaskFieldAssignedTo    = "AssignedTo"
	TaskFieldStartDate     = "StartDate"
	TaskFieldEndDate       = "EndDate"
	TaskFieldCreatedAt     = "createdAt"
	TaskFieldUpdatedAt     = "updatedAt"
)

// Task is a unit of work inside a project. Title, AssignedTo, AssignedUser,
// AssignedUserID and DueDate are legacy aliases kept in sync by ReconcileTask.
type Task struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"Name" json:"name"`
	Description   string             `bson:"Description" json:"description"`
	Status        string             `bson:"Status" json:"status"`
	ProjectID     string             `bson:"ProjectId" json:"projectId"`
	AssignedUsers []string           `bson:"AssignedUsers" json:"assignedUsers"`
	StartDate     *time.Time         `bson:"StartDate" json:"startDate"`
	EndDate       *time.Time         `bson:"EndDate" json:"endDate"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`

	Title             string     `bson:"Title,omitempty" json:"title,omitempty"`
	AssignedTo        string     `bson:"AssignedTo,omitempty" json:"assignedTo,omitempty"`
	AssignedUser      string     `bson:"AssignedUser,omitempty" json:"assignedUser,omitempty"`
	AssignedUserID    string     `bson:"AssignedUserId,omitempty" json:"assignedUserId,omitempty"`
	AssignedUserNames []string   `bson:"AssignedUserNames,omitempty" json:"assignedUserNames,omitempty"`
	DueDate           *time.Time `bson:"DueDate,omitempty" json:"dueDate,omitempty"`
}

// ReconcileTask returns t with canonical and legacy fields agreeing. The
// canonical field wins when both are set. Applying it twice is the same as
// applying it once.
func ReconcileTask(t Task) Task {
	if t.Name == "" {
		t.Name = t.Title
	}
	t.Title = t.Name

	if t.EndDate == nil && t.DueDate != nil {
		due := *t.DueDate
		t.EndDate = &due
	}
	if t.EndDate != nil {
		end := *t.EndDate
		t.DueDate = &end
	} else {
		t.DueDate = nil
	}

	users := make([]string, 0, len(t.AssignedUsers)+1)
	users = append(users, t.AssignedUsers...)
	for _, legacy := range []string{t.AssignedTo, t.AssignedUser, t.AssignedUserID} {
		if legacy != "" && !slices.Contains(users, legacy) {
			users = append(users, legacy)
		}
	}
	t.AssignedUsers = users

	if len(t.AssignedUsers) > 0 && t.AssignedTo == "" {
		t.AssignedTo = t.AssignedUsers[0]
	}

	return t
}
