package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack-api/internal/models"
)

func TestUserCriteria_RoleIsAnchoredFold(t *testing.T) {
	b := NewFilterBuilder()
	UserCriteria{Role: " user "}.Apply(b)

	assert.Equal(t, Filter{{{Field: models.UserFieldRole, Op: OpEqFold, Value: "user"}}}, b.Build())
}

func TestUserCriteria_CreatedAfter(t *testing.T) {
	after := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	b := NewFilterBuilder()
	UserCriteria{CreatedAfter: &after}.Apply(b)

	assert.Equal(t, Filter{{{Field: models.UserFieldCreatedAt, Op: OpGte, Value: after}}}, b.Build())
}

func TestProjectCriteria_StatusIsExactAndAssigneeIsMembership(t *testing.T) {
	b := NewFilterBuilder()
	ProjectCriteria{Status: "In Progress", AssignedUser: "u1"}.Apply(b)

	assert.Equal(t, Filter{
		{{Field: models.ProjectFieldStatus, Op: OpEq, Value: "In Progress"}},
		{{Field: models.ProjectFieldAssignedUsers, Op: OpHas, Value: "u1"}},
	}, b.Build())
}

func TestTaskCriteria_AssignedUserMatchesEitherField(t *testing.T) {
	b := NewFilterBuilder()
	TaskCriteria{ProjectID: "p1", AssignedUser: "u1"}.Apply(b)

	assert.Equal(t, Filter{
		{{Field: models.TaskFieldProjectID, Op: OpEq, Value: "p1"}},
		{
			{Field: models.TaskFieldAssignedUsers, Op: OpHas, Value: "u1"},
			{Field: models.TaskFieldAssignedTo, Op: OpEq, Value: "u1"},
		},
	}, b.Build())
}

func TestTaskCriteria_EmptyIsMatchAll(t *testing.T) {
	b := NewFilterBuilder()
	TaskCriteria{AssignedUser: "  "}.Apply(b)

	assert.True(t, b.Build().MatchAll())
}

func TestCriteria_ValidateRanges(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.AddDate(0, 1, 0)

	assert.NoError(t, UserCriteria{CreatedAfter: &early, CreatedBefore: &late}.ValidateRanges())
	assert.ErrorIs(t, UserCriteria{CreatedAfter: &late, CreatedBefore: &early}.ValidateRanges(), ErrInvalidRange)
	assert.ErrorIs(t, ProjectCriteria{DeadlineFrom: &late, DeadlineTo: &early}.ValidateRanges(), ErrInvalidRange)
	assert.ErrorIs(t, TaskCriteria{UpdatedAfter: &late, UpdatedBefore: &early}.ValidateRanges(), ErrInvalidRange)
	assert.NoError(t, TaskCriteria{}.ValidateRanges())
}

func TestRun_RejectsInvertedRange(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.AddDate(0, 0, 1)
	store := &fakeStore{}

	_, err := Run(context.Background(), store, testEntity, UserCriteria{CreatedAfter: &late, CreatedBefore: &early})
	require.ErrorIs(t, err, ErrInvalidRange)
	assert.Nil(t, store.gotFilter)
	assert.Zero(t, store.findCalls)
}
