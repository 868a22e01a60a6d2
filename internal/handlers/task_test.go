package handlers

import (
	"fmt"
	"net/http"

	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

func (suite *HandlerSuite) TestTasks_CreateWithLegacyFields() {
	project := suite.createProject("Website", "")

	w := suite.do(http.MethodPost, "/api/tasks", suite.userToken, map[string]any{
		"title":      "Fix bug",
		"projectId":  project.ID.Hex(),
		"assignedTo": suite.regular.ID.Hex(),
		"dueDate":    "2024-03-01T00:00:00Z",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	task := decode[models.Task](suite.T(), w)
	suite.Equal("Fix bug", task.Name)
	suite.Equal("Fix bug", task.Title)
	suite.Equal(models.TaskStatusPending, task.Status)
	suite.Equal([]string{suite.regular.ID.Hex()}, task.AssignedUsers)
	suite.Require().NotNil(task.EndDate)
	suite.Equal(2024, task.EndDate.Year())
	suite.NotNil(task.StartDate)

	w = suite.do(http.MethodGet, "/api/tasks/"+task.ID.Hex(), suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	details := decode[services.TaskDetails](suite.T(), w)
	suite.Equal("Website", details.ProjectName)
	suite.Equal([]string{"Ann"}, details.AssignedUserNames)
}

func (suite *HandlerSuite) TestTasks_CreateRequiresName() {
	w := suite.do(http.MethodPost, "/api/tasks", suite.userToken, map[string]string{"description": "nameless"})
	suite.requireErrorCode(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

func (suite *HandlerSuite) TestTasks_Paged() {
	for i := 0; i < 25; i++ {
		_, err := suite.tasks.Create(suite.ctx, services.TaskInput{Name: fmt.Sprintf("task %02d", i)})
		suite.Require().NoError(err)
	}

	w := suite.do(http.MethodGet, "/api/tasks/paged?page=1&pageSize=10", suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	first := decode[query.Page[services.TaskDetails]](suite.T(), w)
	suite.Len(first.Items, 10)
	suite.Equal(3, first.TotalPages)
	suite.True(first.HasNextPage)
	suite.False(first.HasPreviousPage)

	w = suite.do(http.MethodGet, "/api/tasks/paged?page=3&pageSize=10&sortBy=name&sortOrder=asc", suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	last := decode[query.Page[services.TaskDetails]](suite.T(), w)
	suite.Require().Len(last.Items, 5)
	suite.Equal("task 20", last.Items[0].Name)
	suite.False(last.HasNextPage)
	suite.True(last.HasPreviousPage)

	w = suite.do(http.MethodGet, "/api/tasks/paged?pageSize=500", suite.userToken, nil)
	suite.requireErrorCode(w, http.StatusBadRequest, apierrors.ErrCodeInvalidQuery)
}

func (suite *HandlerSuite) TestTasks_Lookups() {
	project := suite.createProject("Ops", "")
	legacy, err := suite.tasks.Create(suite.ctx, services.TaskInput{
		Name: "legacy", AssignedTo: suite.regular.ID.Hex(), Status: models.TaskStatusCompleted,
	})
	suite.Require().NoError(err)
	_, err = suite.tasks.Create(suite.ctx, services.TaskInput{Name: "in project", ProjectID: project.ID.Hex()})
	suite.Require().NoError(err)

	w := suite.do(http.MethodGet, "/api/tasks", suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(decode[[]services.TaskDetails](suite.T(), w), 2)

	w = suite.do(http.MethodGet, "/api/tasks/user/"+suite.regular.ID.Hex(), suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	byUser := decode[[]services.TaskDetails](suite.T(), w)
	suite.Require().Len(byUser, 1)
	suite.Equal(legacy.ID, byUser[0].ID)

	w = suite.do(http.MethodGet, "/api/tasks/project/"+project.ID.Hex(), suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	byProject := decode[[]services.TaskDetails](suite.T(), w)
	suite.Require().Len(byProject, 1)
	suite.Equal("Ops", byProject[0].ProjectName)

	w = suite.do(http.MethodGet, "/api/tasks/status/Completed", suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(decode[[]services.TaskDetails](suite.T(), w), 1)

	w = suite.do(http.MethodGet, "/api/tasks/status/Nope", suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *HandlerSuite) TestTasks_UpdateAndDelete() {
	task, err := suite.tasks.Create(suite.ctx, services.TaskInput{Name: "draft", Description: "keep me"})
	suite.Require().NoError(err)
	path := "/api/tasks/" + task.ID.Hex()

	w := suite.do(http.MethodPut, path, suite.userToken, map[string]string{"status": "In Progress"})
	suite.Require().Equal(http.StatusOK, w.Code)
	updated := decode[models.Task](suite.T(), w)
	suite.Equal("draft", updated.Name)
	suite.Equal("keep me", updated.Description)
	suite.Equal("In Progress", updated.Status)

	w = suite.do(http.MethodDelete, path, suite.userToken, nil)
	suite.requireErrorCode(w, http.StatusForbidden, apierrors.ErrCodeForbidden)

	w = suite.do(http.MethodDelete, path, suite.adminToken, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodPut, path, suite.userToken, map[string]string{"status": "Completed"})
	suite.requireErrorCode(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func (suite *HandlerSuite) TestTasks_InvalidID() {
	w := suite.do(http.MethodGet, "/api/tasks/not-hex", suite.userToken, nil)
	suite.requireErrorCode(w, http.StatusBadRequest, apierrors.ErrCodeInvalidID)
}
