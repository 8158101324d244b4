package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/dto"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

// listProjects handles GET /projects
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} domain.Project
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects [get]
func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.deps.Projects.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// getProject handles GET /projects/:id
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.Project
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects/{id} [get]
func (h *Handler) getProject(c *gin.Context) {
	project, err := h.deps.Projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "not_found",
				Message: "project not found",
			})
			return
		}
		h.log.Error("Failed to get project",
			zap.Error(err),
			zap.String("project_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, project)
}

// createProject handles POST /projects
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project data"
// @Success 201 {object} domain.Project
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects [post]
func (h *Handler) createProject(c *gin.Context) {
	var req dto.CreateProjectRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid project request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	created, err := h.deps.Projects.Create(c.Request.Context(), &domain.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Source:      req.Source,
		SourceID:    req.SourceID,
		Status:      req.Status,
		TeamMembers: req.TeamMembers,
		Metadata:    req.Metadata,
	})
	if err != nil {
		h.log.Error("Failed to create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// deriveInitials builds initials from the first rune of each name part.
func deriveInitials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteRune(unicode.ToUpper([]rune(part)[0]))
	}
	return b.String()
}

// updateProject handles PUT /projects/:id
// @Summary Update a project
// @Description Partially update a project; absent fields are left untouched
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} domain.Project
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects/{id} [put]
func (h *Handler) updateProject(c *gin.Context) {
	var req dto.UpdateProjectRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid project update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	project, err := h.deps.Projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "not_found",
				Message: "project not found",
			})
			return
		}
		h.log.Error("Failed to get project",
			zap.Error(err),
			zap.String("project_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if req.TeamMembers != nil {
		project.TeamMembers = req.TeamMembers
	}
	if req.Metadata != nil {
		project.Metadata = req.Metadata
	}

	updated, err := h.deps.Projects.Update(c.Request.Context(), project)
	if err != nil {
		h.log.Error("Failed to update project",
			zap.Error(err),
			zap.String("project_id", project.ID))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// deleteProject handles DELETE /projects/:id
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /projects/{id} [delete]
func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.deps.Projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "not_found",
				Message: "project not found",
			})
			return
		}
		h.log.Error("Failed to delete project",
			zap.Error(err),
			zap.String("project_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// listIntegrations handles GET /integrations
// @Summary List integrations
// @Tags integrations
// @Produce json
// @Success 200 {array} domain.Integration
// @Failure 500 {object} dto.ErrorResponse
// @Router /integrations [get]
func (h *Handler) listIntegrations(c *gin.Context) {
	integrations, err := h.deps.Integrations.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list integrations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, integrations)
}

// createIntegration handles POST /integrations
// @Summary Create an integration
// @Tags integrations
// @Accept json
// @Produce json
// @Param integration body dto.CreateIntegrationRequest true "Integration data"
// @Success 201 {object} domain.Integration
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /integrations [post]
func (h *Handler) createIntegration(c *gin.Context) {
	var req dto.CreateIntegrationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid integration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	created, err := h.deps.Integrations.Create(c.Request.Context(), &domain.Integration{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Type:   req.Type,
		Status: "active",
		APIKey: req.APIKey,
		Config: req.Config,
	})
	if err != nil {
		h.log.Error("Failed to create integration", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	h.track(c, "add_integration", map[string]interface{}{
		"type": created.Type,
	})

	c.JSON(http.StatusCreated, created)
}

// updateIntegration handles PUT /integrations/:id
// @Summary Update an integration
// @Description Partially update an integration; absent fields are left untouched
// @Tags integrations
// @Accept json
// @Produce json
// @Param id path string true "Integration ID"
// @Param integration body dto.UpdateIntegrationRequest true "Fields to update"
// @Success 200 {object} domain.Integration
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /integrations/{id} [put]
func (h *Handler) updateIntegration(c *gin.Context) {
	var req dto.UpdateIntegrationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid integration update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	integrations, err := h.deps.Integrations.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list integrations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	var integration *domain.Integration
	for _, i := range integrations {
		if i.ID == c.Param("id") {
			integration = i
			break
		}
	}
	if integration == nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: "integration not found",
		})
		return
	}

	if req.Name != nil {
		integration.Name = *req.Name
	}
	if req.Status != nil {
		integration.Status = *req.Status
	}
	if req.APIKey != nil {
		integration.APIKey = *req.APIKey
	}
	if req.Config != nil {
		integration.Config = req.Config
	}

	updated, err := h.deps.Integrations.Update(c.Request.Context(), integration)
	if err != nil {
		h.log.Error("Failed to update integration",
			zap.Error(err),
			zap.String("integration_id", integration.ID))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// listTeamMembers handles GET /team-members
// @Summary List team members
// @Tags team-members
// @Produce json
// @Success 200 {array} domain.TeamMember
// @Failure 500 {object} dto.ErrorResponse
// @Router /team-members [get]
func (h *Handler) listTeamMembers(c *gin.Context) {
	members, err := h.deps.TeamMembers.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list team members", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, members)
}

// createTeamMember handles POST /team-members
// @Summary Create a team member
// @Tags team-members
// @Accept json
// @Produce json
// @Param member body dto.CreateTeamMemberRequest true "Team member data"
// @Success 201 {object} domain.TeamMember
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /team-members [post]
func (h *Handler) createTeamMember(c *gin.Context) {
	var req dto.CreateTeamMemberRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid team member request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	initials := req.Initials
	if initials == "" {
		initials = deriveInitials(req.Name)
	}

	created, err := h.deps.TeamMembers.Create(c.Request.Context(), &domain.TeamMember{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Initials:   initials,
		Role:       req.Role,
		ProjectIDs: req.ProjectIDs,
	})
	if err != nil {
		h.log.Error("Failed to create team member", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}
