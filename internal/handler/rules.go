package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/dto"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

// listRules handles GET /automation-rules
// @Summary List automation rules
// @Description Retrieve all automation rules, learned and hand-made
// @Tags rules
// @Produce json
// @Success 200 {array} domain.AutomationRule
// @Failure 500 {object} dto.ErrorResponse
// @Router /automation-rules [get]
func (h *Handler) listRules(c *gin.Context) {
	rules, err := h.deps.Rules.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list automation rules", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, rules)
}

// getRule handles GET /automation-rules/:id
// @Summary Get an automation rule
// @Tags rules
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} domain.AutomationRule
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /automation-rules/{id} [get]
func (h *Handler) getRule(c *gin.Context) {
	rule, err := h.deps.Rules.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "not_found",
				Message: "automation rule not found",
			})
			return
		}
		h.log.Error("Failed to get automation rule",
			zap.Error(err),
			zap.String("rule_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, rule)
}

// createRule handles POST /automation-rules
// @Summary Create an automation rule
// @Description Create a rule by hand, outside the learning engine
// @Tags rules
// @Accept json
// @Produce json
// @Param rule body dto.CreateRuleRequest true "Rule data"
// @Success 201 {object} domain.AutomationRule
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /automation-rules [post]
func (h *Handler) createRule(c *gin.Context) {
	var req dto.CreateRuleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid rule request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	rule := &domain.AutomationRule{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Type:        domain.RuleType(req.Type),
		Condition:   mustMarshalMap(req.Condition),
		Action:      mustMarshalMap(req.Action),
		Confidence:  domain.ClampConfidence(req.Confidence),
		IsActive:    active,
	}

	created, err := h.deps.Rules.Create(c.Request.Context(), rule)
	if err != nil {
		h.log.Error("Failed to create automation rule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// updateRule handles PUT /automation-rules/:id
// @Summary Update an automation rule
// @Description Partially update a rule; absent fields are left untouched
// @Tags rules
// @Accept json
// @Produce json
// @Param id path string true "Rule ID"
// @Param rule body dto.UpdateRuleRequest true "Fields to update"
// @Success 200 {object} domain.AutomationRule
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /automation-rules/{id} [put]
func (h *Handler) updateRule(c *gin.Context) {
	var req dto.UpdateRuleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid rule update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	update := repository.RuleUpdate{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.Condition != nil {
		update.Condition = mustMarshalMap(req.Condition)
	}
	if req.Action != nil {
		update.Action = mustMarshalMap(req.Action)
	}
	if req.Confidence != nil {
		clamped := domain.ClampConfidence(*req.Confidence)
		update.Confidence = &clamped
	}

	rule, err := h.deps.Rules.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "not_found",
				Message: "automation rule not found",
			})
			return
		}
		h.log.Error("Failed to update automation rule",
			zap.Error(err),
			zap.String("rule_id", c.Param("id")))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, rule)
}

// mustMarshalMap serializes a request map into a stored JSON document.
// Maps decoded from JSON cannot fail to re-marshal.
func mustMarshalMap(m map[string]interface{}) json.RawMessage {
	if m == nil {
		m = map[string]interface{}{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return b
}
