package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/issamHaimour5/ReportPilot-1/docs"
	"github.com/issamHaimour5/ReportPilot-1/internal/dto"
	"github.com/issamHaimour5/ReportPilot-1/internal/engine"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
	"github.com/issamHaimour5/ReportPilot-1/internal/service"
)

// Deps bundles everything the HTTP layer depends on.
type Deps struct {
	Tracker      service.BehaviorTracker
	Reports      service.ReportServicer
	Metrics      service.MetricsProvider
	Behaviors    repository.BehaviorRepository
	Rules        repository.RuleRepository
	ReportStore  repository.ReportRepository
	Projects     repository.ProjectRepository
	Integrations repository.IntegrationRepository
	TeamMembers  repository.TeamMemberRepository
}

type Handler struct {
	deps   Deps
	router *gin.Engine
	log    *zap.Logger
}

func NewHandler(deps Deps, log *zap.Logger) *Handler {
	h := &Handler{
		deps:   deps,
		router: gin.Default(),
		log:    log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)

	h.router.POST("/track", h.trackEvent)
	h.router.POST("/analyze", h.analyze)
	h.router.GET("/events", h.listEvents)

	h.router.GET("/automation-rules", h.listRules)
	h.router.POST("/automation-rules", h.createRule)
	h.router.GET("/automation-rules/:id", h.getRule)
	h.router.PUT("/automation-rules/:id", h.updateRule)

	h.router.GET("/reports", h.listReports)
	h.router.POST("/reports", h.createReport)
	h.router.POST("/reports/generate", h.generateReport)
	h.router.GET("/reports/:id/download", h.downloadReport)

	h.router.GET("/projects", h.listProjects)
	h.router.POST("/projects", h.createProject)
	h.router.GET("/projects/:id", h.getProject)
	h.router.PUT("/projects/:id", h.updateProject)
	h.router.DELETE("/projects/:id", h.deleteProject)

	h.router.GET("/integrations", h.listIntegrations)
	h.router.POST("/integrations", h.createIntegration)
	h.router.PUT("/integrations/:id", h.updateIntegration)

	h.router.GET("/team-members", h.listTeamMembers)
	h.router.POST("/team-members", h.createTeamMember)

	h.router.GET("/metrics", h.getMetrics)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// userID resolves the acting user for behavior tracking.
func userID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "default"
}

// track records a behavior event for a side effect of another endpoint.
// Tracking failures never fail the request that triggered them.
func (h *Handler) track(c *gin.Context, action string, eventContext map[string]interface{}) {
	if err := h.deps.Tracker.Track(c.Request.Context(), userID(c), action, eventContext); err != nil {
		h.log.Warn("Failed to track behavior",
			zap.String("action", action),
			zap.Error(err))
	}
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// trackEvent handles POST /track
// @Summary Track a behavior event
// @Description Record a user action for behavior learning
// @Tags behavior
// @Accept json
// @Produce json
// @Param event body dto.TrackEventRequest true "Behavior event"
// @Success 202 {object} dto.TrackEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /track [post]
func (h *Handler) trackEvent(c *gin.Context) {
	var req dto.TrackEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid track request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.deps.Tracker.Track(c.Request.Context(), req.UserID, req.Action, req.Context); err != nil {
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "validation_error",
				Message: verr.Error(),
			})
			return
		}
		h.log.Error("Failed to track behavior",
			zap.Error(err),
			zap.String("user_id", req.UserID),
			zap.String("action", req.Action))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, dto.TrackEventResponse{
		Status: "accepted",
	})
}

// analyze handles POST /analyze
// @Summary Force an analysis pass
// @Description Run a full behavior analysis pass outside the regular cadence
// @Tags behavior
// @Produce json
// @Success 200 {object} dto.AnalyzeResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analyze [post]
func (h *Handler) analyze(c *gin.Context) {
	if err := h.deps.Tracker.RunAnalysisPass(c.Request.Context()); err != nil {
		h.log.Error("Forced analysis pass failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.AnalyzeResponse{
		Status: "completed",
	})
}

// listEvents handles GET /events
// @Summary List behavior events
// @Description Retrieve all recorded behavior events in insertion order
// @Tags behavior
// @Produce json
// @Success 200 {array} domain.BehaviorEvent
// @Failure 500 {object} dto.ErrorResponse
// @Router /events [get]
func (h *Handler) listEvents(c *gin.Context) {
	events, err := h.deps.Behaviors.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list behavior events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, events)
}

// getMetrics handles GET /metrics
// @Summary Get dashboard metrics
// @Description Retrieve dashboard aggregates computed from reports and projects
// @Tags metrics
// @Produce json
// @Success 200 {object} service.DashboardMetrics
// @Failure 500 {object} dto.ErrorResponse
// @Router /metrics [get]
func (h *Handler) getMetrics(c *gin.Context) {
	metrics, err := h.deps.Metrics.DashboardMetrics(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to compute dashboard metrics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, metrics)
}
