package query

import (
	"time"

	"github.com/tasktrack/tasktrack-api/internal/models"
)

// UserCriteria filters the user listing.
type UserCriteria struct {
	Criteria
	Role          string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (c UserCriteria) Paging() Criteria { return c.Criteria }

// Apply matches role case-insensitively against the whole stored value.
func (c UserCriteria) Apply(b *FilterBuilder) {
	b.EqualFold(models.UserFieldRole, c.Role).
		Range(models.UserFieldCreatedAt, c.CreatedAfter, c.CreatedBefore)
}

func (c UserCriteria) ValidateRanges() error {
	return CheckRange(c.CreatedAfter, c.CreatedBefore)
}

// ProjectCriteria filters the project listing.
type ProjectCriteria struct {
	Criteria
	Status        string
	AssignedUser  string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	DeadlineFrom  *time.Time
	DeadlineTo    *time.Time
}

func (c ProjectCriteria) Paging() Criteria { return c.Criteria }

func (c ProjectCriteria) Apply(b *FilterBuilder) {
	b.Equal(models.ProjectFieldStatus, c.Status).
		Has(models.ProjectFieldAssignedUsers, c.AssignedUser).
		Range(models.ProjectFieldCreatedAt, c.CreatedAfter, c.CreatedBefore).
		Range(models.ProjectFieldDeadline, c.DeadlineFrom, c.DeadlineTo)
}

func (c ProjectCriteria) ValidateRanges() error {
	if err := CheckRange(c.CreatedAfter, c.CreatedBefore); err != nil {
		return err
	}
	return CheckRange(c.DeadlineFrom, c.DeadlineTo)
}

// TaskCriteria filters the task listing.
type TaskCriteria struct {
	Criteria
	Status        string
	ProjectID     string
	AssignedUser  string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
}

func (c TaskCriteria) Paging() Criteria { return c.Criteria }

// Apply matches an assigned user against both the assignee list and the
// legacy single-assignee field.
func (c TaskCriteria) Apply(b *FilterBuilder) {
	b.Equal(models.TaskFieldStatus, c.Status).
		Equal(models.TaskFieldProjectID, c.ProjectID).
		AssignedTo(c.AssignedUser).
		Range(models.TaskFieldCreatedAt, c.CreatedAfter, c.CreatedBefore).
		Range(models.TaskFieldUpdatedAt, c.UpdatedAfter, c.UpdatedBefore)
}

func (c TaskCriteria) ValidateRanges() error {
	if err := CheckRange(c.CreatedAfter, c.CreatedBefore); err != nil {
		return err
	}
	return CheckRange(c.UpdatedAfter, c.UpdatedBefore)
}

// AssignedTo matches tasks whose assignee list contains userID or whose
// legacy AssignedTo field equals it.
func (b *FilterBuilder) AssignedTo(userID string) *FilterBuilder {
	return b.anyOfValue(userID,
		Condition{Field: models.TaskFieldAssignedUsers, Op: OpHas},
		Condition{Field: models.TaskFieldAssignedTo, Op: OpEq},
	)
}
