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

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects returns the caller's projects with pagination metadata.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	query, errs := validation.ValidateProjectQuery(c.Request.URL.Query())
	if errs != nil {
		apierrors.ValidationFailed(c, errs)
		return
	}

	projects, total, err := h.projectService.List(userID, query)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OKPaginated(
		dto.ToProjectDTOs(projects),
		dto.NewPagination(query.Page, query.Limit, total),
	))
}

// CreateProject creates a new project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
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

	input, errs := validation.ValidateCreateProject(raw)
	if errs != nil {
		apierrors.ValidationFailed(c, errs)
		return
	}

	project, err := h.projectService.Create(userID, input)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.ToProjectDTO(*project)))
}

// GetProject returns a single project with its tasks.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	project, err := h.projectService.Get(userID, projectID)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToProjectDTO(*project)))
}

// UpdateProject applies a partial update to a project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, errs := validation.ValidateUpdateProject(raw)
	if errs != nil {
		apierrors.ValidationFailed(c, errs)
		return
	}

	project, err := h.projectService.Update(userID, projectID, input)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToProjectDTO(*project)))
}

// DeleteProject deletes a project and all of its tasks.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseID(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	if err := h.projectService.Delete(userID, projectID); err != nil {
		h.respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{"message": "Project deleted"}))
}

func (h *ProjectHandler) respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	default:
		h.logger.Error("project request failed", zap.Error(err))
		apierrors.InternalError(c)
	}
}

// parseID reads the :id route parameter. Malformed identifiers are treated
// the same as missing entities; the caller decides the message.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
