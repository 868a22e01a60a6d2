package handlers

import (
	"fmt"
	"net/http"

	"github.com/tasktrack/tasktrack-api/internal/dto"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/models"
	"github.com/tasktrack/tasktrack-api/internal/query"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

func (suite *HandlerSuite) seedUsers(n int) {
	for i := 0; i < n; i++ {
		_, err := suite.auth.Register(suite.ctx, services.RegisterInput{
			Email:    fmt.Sprintf("member%02d@example.com", i),
			Password: "secret1",
			Name:     fmt.Sprintf("Member %02d", i),
		})
		suite.Require().NoError(err)
	}
}

func (suite *HandlerSuite) TestUsers_RequireAdmin() {
	w := suite.do(http.MethodGet, "/api/users/paged", suite.userToken, nil)
	suite.requireErrorCode(w, http.StatusForbidden, apierrors.ErrCodeForbidden)

	w = suite.do(http.MethodGet, "/api/users", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(decode[[]dto.UserDTO](suite.T(), w), 2)
}

func (suite *HandlerSuite) TestUsers_AdminRoleReadFromStore() {
	second, err := suite.users.Create(suite.ctx, services.CreateUserInput{
		Name: "Bea", Email: "bea@example.com", Password: "secret1", Role: models.RoleAdmin,
	})
	suite.Require().NoError(err)
	secondToken := suite.token(second)
	suite.Require().Equal(http.StatusOK, suite.do(http.MethodGet, "/api/users/stats", secondToken, nil).Code)

	w := suite.do(http.MethodPut, "/api/users/"+second.ID.Hex(), suite.adminToken, map[string]string{"role": models.RoleUser})
	suite.Require().Equal(http.StatusOK, w.Code)
	w = suite.do(http.MethodGet, "/api/users/stats", secondToken, nil)
	suite.requireErrorCode(w, http.StatusForbidden, apierrors.ErrCodeForbidden)

	w = suite.do(http.MethodPut, "/api/users/"+suite.regular.ID.Hex(), suite.adminToken, map[string]string{"role": models.RoleAdmin})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(http.StatusOK, suite.do(http.MethodGet, "/api/users/stats", suite.userToken, nil).Code)

	suite.Require().NoError(suite.users.Delete(suite.ctx, second.ID.Hex()))
	w = suite.do(http.MethodGet, "/api/users/stats", secondToken, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerSuite) TestUsers_Paged() {
	suite.seedUsers(23)

	w := suite.do(http.MethodGet, "/api/users/paged?page=3&pageSize=10", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	page := decode[query.Page[dto.UserDTO]](suite.T(), w)
	suite.Len(page.Items, 5)
	suite.Equal(int64(25), page.TotalCount)
	suite.Equal(3, page.TotalPages)
	suite.False(page.HasNextPage)
	suite.True(page.HasPreviousPage)
}

func (suite *HandlerSuite) TestUsers_PagedValidation() {
	for _, path := range []string{
		"/api/users/paged?page=0",
		"/api/users/paged?pageSize=0",
		"/api/users/paged?pageSize=101",
		"/api/users/paged?page=abc",
		"/api/users/paged?createdAfter=yesterday",
		"/api/users/paged?createdAfter=2024-02-01&createdBefore=2024-01-01",
	} {
		w := suite.do(http.MethodGet, path, suite.adminToken, nil)
		suite.requireErrorCode(w, http.StatusBadRequest, apierrors.ErrCodeInvalidQuery)
	}
}

func (suite *HandlerSuite) TestUsers_NonAdminAndSearch() {
	w := suite.do(http.MethodGet, "/api/users/non-admin?role=admin", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	page := decode[query.Page[dto.UserDTO]](suite.T(), w)
	suite.Require().Len(page.Items, 1)
	suite.Equal("ann@example.com", page.Items[0].Email)

	w = suite.do(http.MethodGet, "/api/users/search?searchTerm=ROOT&role=Admin&sortBy=email&sortOrder=asc", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	res := decode[dto.UserSearchResponse](suite.T(), w)
	suite.Require().Len(res.Items, 1)
	suite.Equal("root@example.com", res.Items[0].Email)
	suite.Equal("ROOT", res.Filters.SearchTerm)
	suite.Equal("Admin", res.Filters.Role)
	suite.Equal("email", res.Filters.SortBy)
	suite.Equal("asc", res.Filters.SortOrder)
}

func (suite *HandlerSuite) TestUsers_Stats() {
	w := suite.do(http.MethodGet, "/api/users/stats", suite.adminToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	stats := decode[services.UserStats](suite.T(), w)
	suite.Equal(int64(2), stats.TotalUsers)
	suite.Equal(int64(1), stats.AdminUsers)
	suite.Equal(int64(1), stats.RegularUsers)
	suite.Equal(int64(2), stats.RecentUsers)
}

func (suite *HandlerSuite) TestUsers_CRUD() {
	w := suite.do(http.MethodPost, "/api/users", suite.adminToken, map[string]string{
		"name": "Bob", "email": "bob@example.com", "password": "secret1", "role": "user",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	bob := decode[dto.UserDTO](suite.T(), w)

	w = suite.do(http.MethodGet, "/api/users/"+bob.ID, suite.userToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("Bob", decode[dto.UserDTO](suite.T(), w).Name)

	w = suite.do(http.MethodPut, "/api/users/"+bob.ID, suite.adminToken, map[string]string{"name": "Robert"})
	suite.Require().Equal(http.StatusOK, w.Code)
	updated := decode[dto.UserDTO](suite.T(), w)
	suite.Equal("Robert", updated.Name)
	suite.NotNil(updated.LastEditedByAdmin)

	w = suite.do(http.MethodDelete, "/api/users/"+bob.ID, suite.adminToken, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, "/api/users/"+bob.ID, suite.adminToken, nil)
	suite.requireErrorCode(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func (suite *HandlerSuite) TestUsers_UpdateRules() {
	w := suite.do(http.MethodPut, "/api/users/"+suite.regular.ID.Hex(), suite.userToken, map[string]string{"name": "Annie"})
	suite.Require().Equal(http.StatusOK, w.Code)
	self := decode[dto.UserDTO](suite.T(), w)
	suite.Equal("Annie", self.Name)
	suite.Nil(self.LastEditedByAdmin)

	w = suite.do(http.MethodPut, "/api/users/"+suite.regular.ID.Hex(), suite.userToken, map[string]string{"role": "admin"})
	suite.requireErrorCode(w, http.StatusForbidden, apierrors.ErrCodeForbidden)

	w = suite.do(http.MethodPut, "/api/users/"+suite.regular.ID.Hex(), suite.adminToken, map[string]string{"email": "root@example.com"})
	suite.requireErrorCode(w, http.StatusConflict, apierrors.ErrCodeEmailTaken)

	w = suite.do(http.MethodPut, "/api/users/not-an-id", suite.adminToken, map[string]string{"name": "x"})
	suite.requireErrorCode(w, http.StatusBadRequest, apierrors.ErrCodeInvalidID)
}
