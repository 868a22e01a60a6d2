package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasktrack/tasktrack-api/internal/models"
)

// Row types of the SQL stores. Ids keep the 24-character hex form used by
// the document store; array fields live in join tables.

type userRow struct {
	ID                string     `gorm:"primaryKey;size:24"`
	Email             string     `gorm:"size:255;uniqueIndex;not null"`
	Password          string     `gorm:"not null"`
	Name              string     `gorm:"size:255"`
	Role              string     `gorm:"size:32;not null"`
	CreatedAt         time.Time  `gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime:false"`
	LastEditedByAdmin *time.Time
	Projects          []string `gorm:"serializer:json"`
	Tasks             []string `gorm:"serializer:json"`
}

func (userRow) TableName() string { return "users" }

type projectRow struct {
	ID          string `gorm:"primaryKey;size:24"`
	Title       string `gorm:"size:255"`
	Description string
	Status      string    `gorm:"size:64"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	Deadline    *time.Time
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"`
}

func (projectRow) TableName() string { return "projects" }

type projectAssigneeRow struct {
	ProjectID string `gorm:"primaryKey;size:24"`
	UserID    string `gorm:"primaryKey;size:64"`
	Position  int
}

func (projectAssigneeRow) TableName() string { return "project_assignees" }

type taskRow struct {
	ID                string `gorm:"primaryKey;size:24"`
	Name              string `gorm:"size:255"`
	Description       string
	Status            string `gorm:"size:64"`
	ProjectID         string `gorm:"size:64"`
	StartDate         *time.Time
	EndDate           *time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
	Title             string    `gorm:"size:255"`
	AssignedTo        string    `gorm:"size:64"`
	AssignedUser      string    `gorm:"size:64"`
	AssignedUserID    string    `gorm:"size:64"`
	AssignedUserNames []string  `gorm:"serializer:json"`
	DueDate           *time.Time
}

func (taskRow) TableName() string { return "tasks" }

type taskAssigneeRow struct {
	TaskID   string `gorm:"primaryKey;size:24"`
	UserID   string `gorm:"primaryKey;size:64"`
	Position int
}

func (taskAssigneeRow) TableName() string { return "task_assignees" }

// Tables lists the row types to migrate.
func Tables() []any {
	return []any{&userRow{}, &projectRow{}, &projectAssigneeRow{}, &taskRow{}, &taskAssigneeRow{}}
}

var (
	userSchema = gormSchema{
		table: "users",
		columns: map[string]string{
			models.UserFieldName:      "name",
			models.UserFieldEmail:     "email",
			models.UserFieldRole:      "role",
			models.UserFieldCreatedAt: "created_at",
			models.UserFieldUpdatedAt: "updated_at",
		},
	}

	projectSchema = gormSchema{
		table: "projects",
		columns: map[string]string{
			models.ProjectFieldTitle:       "title",
			models.ProjectFieldDescription: "description",
			models.ProjectFieldStatus:      "status",
			models.ProjectFieldCreatedAt:   "created_at",
			models.ProjectFieldDeadline:    "deadline",
			models.ProjectFieldUpdatedAt:   "updated_at",
		},
		arrays: map[string]joinTable{
			models.ProjectFieldAssignedUsers: {table: "project_assignees", ownerKey: "project_id", valueKey: "user_id"},
		},
	}

	taskSchema = gormSchema{
		table: "tasks",
		columns: map[string]string{
			models.TaskFieldName:        "name",
			models.TaskFieldDescription: "description",
			models.TaskFieldStatus:      "status",
			models.TaskFieldProjectID:   "project_id",
			models.TaskFieldAssignedTo:  "assigned_to",
			models.TaskFieldStartDate:   "start_date",
			models.TaskFieldEndDate:     "end_date",
			models.TaskFieldCreatedAt:   "created_at",
			models.TaskFieldUpdatedAt:   "updated_at",
		},
		arrays: map[string]joinTable{
			models.TaskFieldAssignedUsers: {table: "task_assignees", ownerKey: "task_id", valueKey: "user_id"},
		},
	}
)

func hexID(hex string) primitive.ObjectID {
	id, _ := primitive.ObjectIDFromHex(hex)
	return id
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}

func newUserRow(u *models.User) userRow {
	return userRow{
		ID:                u.ID.Hex(),
		Email:             u.Email,
		Password:          u.Password,
		Name:              u.Name,
		Role:              u.Role,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
		LastEditedByAdmin: u.LastEditedByAdmin,
		Projects:          u.Projects,
		Tasks:             u.Tasks,
	}
}

func (r userRow) model() models.User {
	return models.User{
		ID:                hexID(r.ID),
		Email:             r.Email,
		Password:          r.Password,
		Name:              r.Name,
		Role:              r.Role,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		LastEditedByAdmin: r.LastEditedByAdmin,
		Projects:          r.Projects,
		Tasks:             r.Tasks,
	}
}

func newProjectRow(p *models.Project) projectRow {
	return projectRow{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		Deadline:    p.Deadline,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r projectRow) model(assignees []string) models.Project {
	return models.Project{
		ID:            hexID(r.ID),
		Title:         r.Title,
		Description:   r.Description,
		AssignedUsers: assignees,
		CreatedAt:     r.CreatedAt,
		Deadline:      r.Deadline,
		Status:        r.Status,
		UpdatedAt:     r.UpdatedAt,
	}
}

func newTaskRow(t *models.Task) taskRow {
	return taskRow{
		ID:                t.ID.Hex(),
		Name:              t.Name,
		Description:       t.Description,
		Status:            t.Status,
		ProjectID:         t.ProjectID,
		StartDate:         t.StartDate,
		EndDate:           t.EndDate,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		Title:             t.Title,
		AssignedTo:        t.AssignedTo,
		AssignedUser:      t.AssignedUser,
		AssignedUserID:    t.AssignedUserID,
		AssignedUserNames: t.AssignedUserNames,
		DueDate:           t.DueDate,
	}
}

func (r taskRow) model(assignees []string) models.Task {
	return models.Task{
		ID:                hexID(r.ID),
		Name:              r.Name,
		Description:       r.Description,
		Status:            r.Status,
		ProjectID:         r.ProjectID,
		AssignedUsers:     assignees,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		Title:             r.Title,
		AssignedTo:        r.AssignedTo,
		AssignedUser:      r.AssignedUser,
		AssignedUserID:    r.AssignedUserID,
		AssignedUserNames: r.AssignedUserNames,
		DueDate:           r.DueDate,
	}
}
