package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
)

var (
	// ErrDuplicateKey is returned when a write violates a unique index.
	ErrDuplicateKey = errors.New("repository: duplicate key")
	// ErrUnknownField is returned when a filter or sort names a field the store does not map.
	ErrUnknownField = errors.New("repository: unknown field")
	// ErrUnsupportedOperator is returned for a filter operator the store cannot compile.
	ErrUnsupportedOperator = errors.New("repository: unsupported operator")
)

// Lookups by id return (nil, nil) when the record does not exist. Update and
// Delete report whether a record matched.

// UserRepository defines the interface for user data access
type UserRepository interface {
	query.Store[models.User]

	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	query.Store[models.Project]

	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// TaskRepository defines the interface for task data access. Every task it
// returns has been reconciled, and every task it writes is reconciled first.
type TaskRepository interface {
	query.Store[models.Task]

	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	// DeleteByProjectID removes every task of a project and returns how many were removed.
	DeleteByProjectID(ctx context.Context, projectID string) (int64, error)
}

// Repositories groups one implementation of each repository.
type Repositories struct {
	Users    UserRepository
	Projects ProjectRepository
	Tasks    TaskRepository
}

func reconcileAll(tasks []models.Task) []models.Task {
	for i := range tasks {
		tasks[i] = models.ReconcileTask(tasks[i])
	}
	return tasks
}
