package handlers

import (
	"net/http"

	"github.com/tasktrack/tasktrack-api/internal/dto"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
)

func (suite *HandlerSuite) TestRegister() {
	w := suite.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "  New@Example.com ",
		"password": "supersecret",
		"username": "Newbie",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	res := decode[dto.AuthResponse](suite.T(), w)
	suite.NotEmpty(res.Token)
	suite.Equal("new@example.com", res.User.Email)
	suite.Equal("Newbie", res.User.Name)
	suite.Equal("user", res.User.Role)
}

func (suite *HandlerSuite) TestRegister_Failures() {
	w := suite.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "ann@example.com", "password": "supersecret", "name": "Again",
	})
	suite.requireErrorCode(w, http.StatusConflict, apierrors.ErrCodeEmailTaken)

	w = suite.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "short@example.com", "password": "abc", "name": "Short",
	})
	suite.requireErrorCode(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)

	w = suite.do(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@example.com"})
	suite.requireErrorCode(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

func (suite *HandlerSuite) TestLogin() {
	w := suite.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ANN@example.com", "password": "secret1",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	res := decode[dto.AuthResponse](suite.T(), w)
	suite.NotEmpty(res.Token)
	suite.Equal(suite.regular.ID.Hex(), res.User.ID)
	suite.NotEmpty(w.Result().Cookies(), "expected session cookie to be set")
}

func (suite *HandlerSuite) TestLogin_Rejected() {
	w := suite.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ann@example.com", "password": "wrong-password",
	})
	suite.requireErrorCode(w, http.StatusUnauthorized, apierrors.ErrCodeInvalidCredentials)

	w = suite.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ann@example.com", "password": "secret1", "role": "admin",
	})
	suite.requireErrorCode(w, http.StatusUnauthorized, apierrors.ErrCodeInvalidCredentials)

	w = suite.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "root@example.com", "password": "secret1", "role": "ADMIN",
	})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerSuite) TestSessionLoginAndLogout() {
	w := suite.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ann@example.com", "password": "secret1",
	})
	suite.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	req := newRequest(http.MethodGet, "/api/users/verify-token")
	req.AddCookie(cookies[0])
	w = serve(suite.router, req)
	suite.Require().Equal(http.StatusOK, w.Code)
	body := decode[struct {
		User map[string]any `json:"user"`
	}](suite.T(), w)
	suite.Equal(suite.regular.ID.Hex(), body.User["id"])
	suite.Equal("ann@example.com", body.User["email"])

	req = newRequest(http.MethodPost, "/api/auth/logout")
	req.AddCookie(cookies[0])
	w = serve(suite.router, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerSuite) TestCheckAdminExists() {
	w := suite.do(http.MethodGet, "/api/auth/check-admin-exists", "", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	body := decode[map[string]any](suite.T(), w)
	suite.Equal(true, body["adminExists"])
	suite.Equal(float64(2), body["totalUsers"])
}

func (suite *HandlerSuite) TestUnauthenticated() {
	w := suite.do(http.MethodGet, "/api/tasks", "", nil)
	suite.requireErrorCode(w, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized)

	w = suite.do(http.MethodGet, "/api/tasks", "not-a-token", nil)
	suite.requireErrorCode(w, http.StatusUnauthorized, apierrors.ErrCodeInvalidToken)
}
