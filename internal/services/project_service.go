package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
	"github.com/tasktrack/tasktrack-api/internal/repository"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTitleRequired   = errors.New("title is required")
)

// ProjectService handles project business logic
type ProjectService struct {
	projects repository.ProjectRepository
	log      *zap.Logger
	observer QueryObserver
}

func NewProjectService(projects repository.ProjectRepository, log *zap.Logger, observer QueryObserver) *ProjectService {
	return &ProjectService{projects: projects, log: log, observer: observerOrNop(observer)}
}

// List returns one page of projects matching criteria.
func (s *ProjectService) List(ctx context.Context, criteria query.ProjectCriteria) (*query.Page[models.Project], error) {
	return runQuery(ctx, s.log, s.observer, s.projects, ProjectEntity, criteria)
}

func (s *ProjectService) All(ctx context.Context) ([]models.Project, error) {
	projects, err := findAll(ctx, s.projects, ProjectEntity, nil)
	if err != nil {
		return nil, storageError(ctx, s.log, "list projects", err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, oid)
	if err != nil {
		return nil, storageError(ctx, s.log, "find project", err)
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// ProjectInput carries create and update fields. On update, empty strings and
// nil values keep the stored value.
type ProjectInput struct {
	Title         string
	Description   string
	Status        string
	AssignedUsers []string
	Deadline      *time.Time
}

func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = models.ProjectStatusNotStarted
	}

	project := &models.Project{
		Title:         title,
		Description:   input.Description,
		Status:        status,
		AssignedUsers: nonNil(input.AssignedUsers),
		Deadline:      input.Deadline,
		CreatedAt:     nowUTC(),
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, storageError(ctx, s.log, "create project", err)
	}

	s.log.Info("project created", zap.String("id", project.ID.Hex()))
	return project, nil
}

// Update applies a partial update and stamps UpdatedAt.
func (s *ProjectService) Update(ctx context.Context, id string, input ProjectInput) (*models.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		project.Title = title
	}
	if input.Description != "" {
		project.Description = input.Description
	}
	if status := strings.TrimSpace(input.Status); status != "" {
		project.Status = status
	}
	if input.AssignedUsers != nil {
		project.AssignedUsers = input.AssignedUsers
	}
	if input.Deadline != nil {
		project.Deadline = input.Deadline
	}
	now := nowUTC()
	project.UpdatedAt = &now

	found, err := s.projects.Update(ctx, project)
	if err != nil {
		return nil, storageError(ctx, s.log, "update project", err)
	}
	if !found {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// Delete removes the project record only; its tasks are purged separately.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	found, err := s.projects.Delete(ctx, oid)
	if err != nil {
		return storageError(ctx, s.log, "delete project", err)
	}
	if !found {
		return ErrProjectNotFound
	}
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
