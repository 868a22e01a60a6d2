package services

import (
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
)

// Listing parameters of each collection. Sort keys are lowercase; anything
// else falls back to newest first.
var (
	UserEntity = query.Entity[models.User]{
		Name:         "users",
		SearchFields: []string{models.UserFieldName, models.UserFieldEmail},
		SortFields: map[string]string{
			"name":      models.UserFieldName,
			"email":     models.UserFieldEmail,
			"role":      models.UserFieldRole,
			"createdat": models.UserFieldCreatedAt,
			"updatedat": models.UserFieldUpdatedAt,
		},
		DefaultSort: query.Sort{Field: models.UserFieldCreatedAt, Descending: true},
	}

	ProjectEntity = query.Entity[models.Project]{
		Name:         "projects",
		SearchFields: []string{models.ProjectFieldTitle, models.ProjectFieldDescription},
		SortFields: map[string]string{
			"title":     models.ProjectFieldTitle,
			"status":    models.ProjectFieldStatus,
			"deadline":  models.ProjectFieldDeadline,
			"updatedat": models.ProjectFieldUpdatedAt,
			"createdat": models.ProjectFieldCreatedAt,
		},
		DefaultSort: query.Sort{Field: models.ProjectFieldCreatedAt, Descending: true},
	}

	TaskEntity = query.Entity[models.Task]{
		Name:         "tasks",
		SearchFields: []string{models.TaskFieldName, models.TaskFieldDescription},
		SortFields: map[string]string{
			"name":      models.TaskFieldName,
			"status":    models.TaskFieldStatus,
			"startdate": models.TaskFieldStartDate,
			"enddate":   models.TaskFieldEndDate,
			"updatedat": models.TaskFieldUpdatedAt,
			"createdat": models.TaskFieldCreatedAt,
		},
		DefaultSort: query.Sort{Field: models.TaskFieldCreatedAt, Descending: true},
		Reconcile:   models.ReconcileTask,
	}
)
