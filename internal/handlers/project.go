package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tasktrack/tasktrack-api/internal/dto"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/logger"
	"github.com/tasktrack/tasktrack-api/internal/query"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	taskService    *services.TaskService
	log            *zap.Logger
}

func NewProjectHandler(projectService *services.ProjectService, taskService *services.TaskService, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, taskService: taskService, log: log}
}

// List returns one page of projects.
func (h *ProjectHandler) List(c *gin.Context) {
	criteria, ok := bindProjectCriteria(c)
	if !ok {
		return
	}

	page, err := h.projectService.List(c.Request.Context(), criteria)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), c.Param("id"), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete removes the project and then its tasks.
func (h *ProjectHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if err := h.projectService.Delete(ctx, id); err != nil {
		respondServiceError(c, err)
		return
	}

	removed, err := h.taskService.DeleteByProject(ctx, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	logger.WithRequestID(ctx, h.log).Info("project deleted", zap.String("id", id), zap.Int64("tasks_removed", removed))
	c.Status(http.StatusNoContent)
}

// Tasks returns the tasks of one project.
func (h *ProjectHandler) Tasks(c *gin.Context) {
	tasks, err := h.taskService.ByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func bindProjectCriteria(c *gin.Context) (criteria query.ProjectCriteria, ok bool) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.InvalidQuery(c, "")
		return criteria, false
	}
	criteria, err := q.ProjectCriteria()
	if err != nil {
		apierrors.InvalidQuery(c, err.Error())
		return criteria, false
	}
	return criteria, true
}
