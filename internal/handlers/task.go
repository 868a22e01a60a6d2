package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasktrack/tasktrack-api/internal/dto"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns every task with project and assignee names resolved.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.All(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// ListPaged returns one enriched page of tasks.
func (h *TaskHandler) ListPaged(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.InvalidQuery(c, "")
		return
	}
	criteria, err := q.TaskCriteria()
	if err != nil {
		apierrors.InvalidQuery(c, err.Error())
		return
	}

	page, err := h.taskService.ListDetailed(c.Request.Context(), criteria)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), c.Param("id"), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) ByProject(c *gin.Context) {
	h.respondList(c, h.taskService.ByProject, c.Param("projectId"))
}

func (h *TaskHandler) ByUser(c *gin.Context) {
	h.respondList(c, h.taskService.ByUser, c.Param("userId"))
}

func (h *TaskHandler) ByStatus(c *gin.Context) {
	h.respondList(c, h.taskService.ByStatus, c.Param("status"))
}

func (h *TaskHandler) respondList(c *gin.Context, list func(context.Context, string) ([]services.TaskDetails, error), arg string) {
	tasks, err := list(c.Request.Context(), arg)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}
