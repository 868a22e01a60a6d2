package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasktrack/tasktrack-api/internal/constants"
	"github.com/tasktrack/tasktrack-api/internal/dto"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/middleware"
	"github.com/tasktrack/tasktrack-api/internal/query"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

// UserHandler serves the user administration endpoints.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// VerifyToken echoes the identity the request was authenticated with.
func (h *UserHandler) VerifyToken(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token is valid",
		"user": gin.H{
			"id":    userID,
			"email": c.GetString(constants.ContextKeyUserEmail),
			"role":  c.GetString(constants.ContextKeyUserRole),
		},
	})
}

func (h *UserHandler) ListAll(c *gin.Context) {
	users, err := h.userService.All(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// ListPaged returns one page of users.
func (h *UserHandler) ListPaged(c *gin.Context) {
	criteria, ok := bindUserCriteria(c)
	if !ok {
		return
	}

	page, err := h.userService.List(c.Request.Context(), criteria)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserPage(page))
}

// ListNonAdmin is ListPaged restricted to the regular role.
func (h *UserHandler) ListNonAdmin(c *gin.Context) {
	criteria, ok := bindUserCriteria(c)
	if !ok {
		return
	}

	page, err := h.userService.ListRegular(c.Request.Context(), criteria)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserPage(page))
}

// Search returns a page of users together with the filters applied.
func (h *UserHandler) Search(c *gin.Context) {
	criteria, ok := bindUserCriteria(c)
	if !ok {
		return
	}

	page, err := h.userService.List(c.Request.Context(), criteria)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserSearchResponse(page, criteria))
}

func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.userService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Update applies a partial update on behalf of the authenticated caller.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), middleware.GetActor(c), c.Param("id"), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindUserCriteria(c *gin.Context) (criteria query.UserCriteria, ok bool) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.InvalidQuery(c, "")
		return criteria, false
	}
	criteria, err := q.UserCriteria()
	if err != nil {
		apierrors.InvalidQuery(c, err.Error())
		return criteria, false
	}
	return criteria, true
}
