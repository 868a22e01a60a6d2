package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tasktrack/tasktrack-api/internal/logger"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
	"github.com/tasktrack/tasktrack-api/internal/repository"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrNameRequired = errors.New("name is required")
)

// TaskDetails is a task with the display names of its project and assignees.
type TaskDetails struct {
	models.Task
	ProjectName       string   `json:"projectName"`
	AssignedUserNames []string `json:"assignedUserNames"`
}

// TaskService handles task business logic
type TaskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
	log      *zap.Logger
	observer QueryObserver
}

func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository, users repository.UserRepository, log *zap.Logger, observer QueryObserver) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		users:    users,
		log:      log,
		observer: observerOrNop(observer),
	}
}

// List returns one page of reconciled tasks matching criteria.
func (s *TaskService) List(ctx context.Context, criteria query.TaskCriteria) (*query.Page[models.Task], error) {
	return runQuery(ctx, s.log, s.observer, s.tasks, TaskEntity, criteria)
}

// ListDetailed is List followed by Enrich on the page items.
func (s *TaskService) ListDetailed(ctx context.Context, criteria query.TaskCriteria) (*query.Page[TaskDetails], error) {
	page, err := s.List(ctx, criteria)
	if err != nil {
		return nil, err
	}
	items, err := s.Enrich(ctx, page.Items)
	if err != nil {
		return nil, err
	}
	return &query.Page[TaskDetails]{Items: items, PageMeta: page.PageMeta}, nil
}

// Enrich resolves project titles and assignee names with one batched lookup
// per collection. Unknown ids resolve to empty names.
func (s *TaskService) Enrich(ctx context.Context, tasks []models.Task) ([]TaskDetails, error) {
	projectIDs := make([]string, 0, len(tasks))
	userIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		projectIDs = append(projectIDs, t.ProjectID)
		userIDs = append(userIDs, t.AssignedUsers...)
	}

	projects, err := s.projects.FindByIDs(ctx, parseIDs(projectIDs))
	if err != nil {
		return nil, storageError(ctx, s.log, "resolve project names", err)
	}
	users, err := s.users.FindByIDs(ctx, parseIDs(userIDs))
	if err != nil {
		return nil, storageError(ctx, s.log, "resolve user names", err)
	}

	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID.Hex()] = p.Title
	}
	userNames := make(map[string]string, len(users))
	for _, u := range users {
		userNames[u.ID.Hex()] = u.Name
	}

	out := make([]TaskDetails, len(tasks))
	for i, t := range tasks {
		out[i] = detailsOf(t, projectNames, userNames)
	}
	return out, nil
}

func detailsOf(t models.Task, projectNames, userNames map[string]string) TaskDetails {
	names := make([]string, 0, len(t.AssignedUsers))
	for _, id := range t.AssignedUsers {
		if name, ok := userNames[id]; ok {
			names = append(names, name)
		}
	}
	return TaskDetails{Task: t, ProjectName: projectNames[t.ProjectID], AssignedUserNames: names}
}

// Get returns one task. Names are resolved on a best-effort basis: a failed
// lookup is logged and leaves them empty.
func (s *TaskService) Get(ctx context.Context, id string) (*TaskDetails, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	details, err := s.Enrich(ctx, []models.Task{*task})
	if err != nil {
		logger.WithRequestID(ctx, s.log).Warn("task enrichment skipped", zap.String("id", id), zap.Error(err))
		return &TaskDetails{Task: *task, AssignedUserNames: []string{}}, nil
	}
	return &details[0], nil
}

// All returns every task, newest first.
func (s *TaskService) All(ctx context.Context) ([]TaskDetails, error) {
	return s.where(ctx, "list tasks", nil)
}

func (s *TaskService) ByProject(ctx context.Context, projectID string) ([]TaskDetails, error) {
	filter := query.NewFilterBuilder().Equal(models.TaskFieldProjectID, projectID).Build()
	return s.where(ctx, "list project tasks", filter)
}

// ByUser returns tasks listing userID as an assignee, including legacy single-assignee tasks.
func (s *TaskService) ByUser(ctx context.Context, userID string) ([]TaskDetails, error) {
	filter := query.NewFilterBuilder().AssignedTo(userID).Build()
	return s.where(ctx, "list user tasks", filter)
}

func (s *TaskService) ByStatus(ctx context.Context, status string) ([]TaskDetails, error) {
	filter := query.NewFilterBuilder().Equal(models.TaskFieldStatus, status).Build()
	return s.where(ctx, "list tasks by status", filter)
}

func (s *TaskService) where(ctx context.Context, action string, filter query.Filter) ([]TaskDetails, error) {
	tasks, err := findAll(ctx, s.tasks, TaskEntity, filter)
	if err != nil {
		return nil, storageError(ctx, s.log, action, err)
	}
	return s.Enrich(ctx, tasks)
}

// TaskInput carries create and update fields. Legacy aliases (Title,
// AssignedTo, DueDate) are folded into the canonical fields. On update, empty
// values keep the stored value.
type TaskInput struct {
	Name          string
	Title         string
	Description   string
	Status        string
	ProjectID     string
	AssignedUsers []string
	AssignedTo    string
	StartDate     *time.Time
	EndDate       *time.Time
	DueDate       *time.Time
}

func (in TaskInput) task() models.Task {
	return models.ReconcileTask(models.Task{
		Name:          strings.TrimSpace(in.Name),
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Status:        strings.TrimSpace(in.Status),
		ProjectID:     strings.TrimSpace(in.ProjectID),
		AssignedUsers: in.AssignedUsers,
		AssignedTo:    strings.TrimSpace(in.AssignedTo),
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		DueDate:       in.DueDate,
	})
}

// Create stores a new task. Status defaults to Pending and StartDate to now.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*models.Task, error) {
	task := input.task()
	if task.Name == "" {
		return nil, ErrNameRequired
	}

	now := nowUTC()
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if task.StartDate == nil {
		task.StartDate = &now
	}
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, storageError(ctx, s.log, "create task", err)
	}

	logger.WithRequestID(ctx, s.log).Info("task created",
		zap.String("id", task.ID.Hex()),
		zap.String("project_id", task.ProjectID),
		zap.Strings("assigned_users", task.AssignedUsers))
	return &task, nil
}

// Update merges input over the stored task.
func (s *TaskService) Update(ctx context.Context, id string, input TaskInput) (*models.Task, error) {
	stored, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	task := input.task()
	task.ID = stored.ID
	task.CreatedAt = stored.CreatedAt
	if task.Name == "" {
		task.Name = stored.Name
	}
	if task.Description == "" {
		task.Description = stored.Description
	}
	if task.Status == "" {
		task.Status = stored.Status
	}
	if task.ProjectID == "" {
		task.ProjectID = stored.ProjectID
	}
	if len(task.AssignedUsers) == 0 {
		task.AssignedUsers = stored.AssignedUsers
		task.AssignedTo = ""
	}
	if task.StartDate == nil {
		task.StartDate = stored.StartDate
	}
	if task.EndDate == nil {
		task.EndDate = stored.EndDate
		task.DueDate = nil
	}
	task.UpdatedAt = nowUTC()
	task = models.ReconcileTask(task)

	found, err := s.tasks.Update(ctx, &task)
	if err != nil {
		return nil, storageError(ctx, s.log, "update task", err)
	}
	if !found {
		return nil, ErrTaskNotFound
	}
	return &task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	found, err := s.tasks.Delete(ctx, oid)
	if err != nil {
		return storageError(ctx, s.log, "delete task", err)
	}
	if !found {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteByProject purges the tasks of a deleted project.
func (s *TaskService) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	removed, err := s.tasks.DeleteByProjectID(ctx, projectID)
	if err != nil {
		return 0, storageError(ctx, s.log, "delete project tasks", err)
	}
	return removed, nil
}

func (s *TaskService) find(ctx context.Context, id string) (*models.Task, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.FindByID(ctx, oid)
	if err != nil {
		return nil, storageError(ctx, s.log, "find task", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}
