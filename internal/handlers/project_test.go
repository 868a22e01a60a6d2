package handlers

import (
	"net/http"

	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

func (suite *HandlerSuite) createProject(title, description string) models.Project {
	w := suite.do(http.MethodPost, "/api/projects", suite.adminToken, map[string]any{
		"title":         title,
		"description":   description,
		"assignedUsers": []string{suite.regular.ID.Hex()},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Project](suite.T(), w)
}

func (suite *HandlerSuite) TestProjects_CreateRequiresAdmin() {
	w := suite.do(http.MethodPost, "/api/projects", suite.userToken, map[string]string{"title": "Nope"})
	suite.requireErrorCode(w, http.StatusForbidden, apierrors.ErrCodeForbidden)

	w = suite.do(http.MethodPost, "/api/projects", suite.adminToken, map[string]string{"description": "no title"})
	suite.requireErrorCode(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

func (suite *HandlerSuite) TestProjects_Search() {
	suite.createProject("Launch Website", "redo landing page")
	suite.createProject("Quarterly report", "numbers")

	w := suite.do(http.MethodGet, "/api/projects?search=LANDING", suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page := decode[query.Page[models.Project]](suite.T(), w)
	suite.Require().Len(page.Items, 1)
	suite.Equal("Launch Website", page.Items[0].Title)
	suite.Equal(models.ProjectStatusNotStarted, page.Items[0].Status)

	w = suite.do(http.MethodGet, "/api/projects?search=Q3", suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page = decode[query.Page[models.Project]](suite.T(), w)
	suite.Empty(page.Items)
	suite.Equal(0, page.TotalPages)
}

func (suite *HandlerSuite) TestProjects_FilterByAssignee() {
	suite.createProject("Mine", "")
	w := suite.do(http.MethodPost, "/api/projects", suite.adminToken, map[string]string{"title": "Unassigned"})
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodGet, "/api/projects?assignedUser="+suite.regular.ID.Hex(), suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page := decode[query.Page[models.Project]](suite.T(), w)
	suite.Require().Len(page.Items, 1)
	suite.Equal("Mine", page.Items[0].Title)

	w = suite.do(http.MethodGet, "/api/projects?deadlineFrom=soon", suite.userToken, nil)
	suite.requireErrorCode(w, http.StatusBadRequest, apierrors.ErrCodeInvalidQuery)
}

func (suite *HandlerSuite) TestProjects_UpdateKeepsAssignees() {
	project := suite.createProject("Alpha", "first")

	w := suite.do(http.MethodPut, "/api/projects/"+project.ID.Hex(), suite.adminToken, map[string]string{"status": "In Progress"})
	suite.Require().Equal(http.StatusOK, w.Code)
	updated := decode[models.Project](suite.T(), w)
	suite.Equal("In Progress", updated.Status)
	suite.Equal("Alpha", updated.Title)
	suite.Equal([]string{suite.regular.ID.Hex()}, updated.AssignedUsers)
	suite.NotNil(updated.UpdatedAt)

	w = suite.do(http.MethodPut, "/api/projects/"+project.ID.Hex(), suite.adminToken, map[string]any{"assignedUsers": []string{}})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Empty(decode[models.Project](suite.T(), w).AssignedUsers)
}

func (suite *HandlerSuite) TestProjects_DeleteRemovesTasks() {
	project := suite.createProject("Doomed", "")
	task, err := suite.tasks.Create(suite.ctx, services.TaskInput{Name: "orphan", ProjectID: project.ID.Hex()})
	suite.Require().NoError(err)

	w := suite.do(http.MethodGet, "/api/projects/"+project.ID.Hex()+"/tasks", suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(decode[[]services.TaskDetails](suite.T(), w), 1)

	w = suite.do(http.MethodDelete, "/api/projects/"+project.ID.Hex(), suite.adminToken, nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, "/api/projects/"+project.ID.Hex(), suite.userToken, nil)
	suite.requireErrorCode(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
	w = suite.do(http.MethodGet, "/api/tasks/"+task.ID.Hex(), suite.userToken, nil)
	suite.requireErrorCode(w, http.StatusNotFound, apierrors.ErrCodeNotFound)

	w = suite.do(http.MethodDelete, "/api/projects/"+project.ID.Hex(), suite.adminToken, nil)
	suite.requireErrorCode(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}
