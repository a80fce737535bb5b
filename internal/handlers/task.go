package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sakumura/taskboard-api/internal/dto"
	apierrors "github.com/sakumura/taskboard-api/internal/errors"
	"github.com/sakumura/taskboard-api/internal/middleware"
	"github.com/sakumura/taskboard-api/internal/services"
	"github.com/sakumura/taskboard-api/internal/validation"
	"go.uber.org/zap"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	logger      *zap.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// ListTasks returns tasks across the caller's projects with pagination
// metadata.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	query, errs := validation.ValidateTaskQuery(c.Request.URL.Query())
	if errs != nil {
		apierrors.ValidationFailed(c, errs)
		return
	}

	tasks, total, err := h.taskService.List(userID, query)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKPaginated(
		dto.ToTaskDTOs(tasks),
		dto.NewPagination(query.Page, query.Limit, total),
	))
}

// CreateTask creates a task; the target project comes from the body.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	h.createTask(c, 0)
}

// CreateTaskInProject creates a task under the project in the URL. A
// projectId in the body is overridden.
func (h *TaskHandler) CreateTaskInProject(c *gin.Context) {
	projectID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	h.createTask(c, projectID)
}

func (h *TaskHandler) createTask(c *gin.Context, projectID uint64) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if raw == nil {
		// A body of JSON null binds without error but leaves the map nil.
		raw = map[string]interface{}{}
	}

	if projectID != 0 {
		raw["projectId"] = strconv.FormatUint(projectID, 10)
	}

	input, errs := validation.ValidateCreateTask(raw)
	if errs != nil {
		apierrors.ValidationFailed(c, errs)
		return
	}

	task, err := h.taskService.Create(userID, input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.ToTaskDTO(*task)))
}

// GetTask returns a single task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	task, err := h.taskService.Get(userID, taskID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToTaskDTO(*task)))
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, errs := validation.ValidateUpdateTask(raw)
	if errs != nil {
		apierrors.ValidationFailed(c, errs)
		return
	}

	task, err := h.taskService.Update(userID, taskID, input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToTaskDTO(*task)))
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	if err := h.taskService.Delete(userID, taskID); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{"message": "Task deleted"}))
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTargetProjectNotFound):
		apierrors.NotFound(c, "Target project not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	default:
		h.logger.Error("task request failed", zap.Error(err))
		apierrors.InternalError(c)
	}
}
