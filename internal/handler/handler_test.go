package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/dto"
	"github.com/issamHaimour5/ReportPilot-1/internal/engine"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository/memory"
	"github.com/issamHaimour5/ReportPilot-1/internal/service"
)

// MockBehaviorTracker is a mock implementation of service.BehaviorTracker
type MockBehaviorTracker struct {
	mock.Mock
}

func (m *MockBehaviorTracker) Track(ctx context.Context, userID, action string, eventContext map[string]interface{}) error {
	args := m.Called(ctx, userID, action, eventContext)
	return args.Error(0)
}

func (m *MockBehaviorTracker) RunAnalysisPass(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockReportService is a mock implementation of service.ReportServicer
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) GenerateWeekly(ctx context.Context, trigger string) (*domain.Report, error) {
	args := m.Called(ctx, trigger)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportService) ProcessJob(ctx context.Context, reportID string) error {
	args := m.Called(ctx, reportID)
	return args.Error(0)
}

type testFixture struct {
	handler   *Handler
	tracker   *MockBehaviorTracker
	reports   *MockReportService
	behaviors *memory.BehaviorLog
	rules     *memory.RuleStore
	reportDB  *memory.ReportStore
	projects  *memory.ProjectStore
}

func newTestHandler(t *testing.T) *testFixture {
	t.Helper()

	tracker := new(MockBehaviorTracker)
	reports := new(MockReportService)
	behaviors := memory.NewBehaviorLog()
	rules := memory.NewRuleStore()
	reportDB := memory.NewReportStore()
	projects := memory.NewProjectStore()

	h := NewHandler(Deps{
		Tracker:      tracker,
		Reports:      reports,
		Metrics:      service.NewMetricsService(reportDB, projects),
		Behaviors:    behaviors,
		Rules:        rules,
		ReportStore:  reportDB,
		Projects:     projects,
		Integrations: memory.NewIntegrationStore(),
		TeamMembers:  memory.NewTeamMemberStore(),
	}, zap.NewNop())

	return &testFixture{
		handler:   h,
		tracker:   tracker,
		reports:   reports,
		behaviors: behaviors,
		rules:     rules,
		reportDB:  reportDB,
		projects:  projects,
	}
}

func doJSON(t *testing.T, h *Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandler_HealthCheck(t *testing.T) {
	f := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

func TestHandler_TrackEvent_Success(t *testing.T) {
	f := newTestHandler(t)

	f.tracker.On("Track", mock.Anything, "user_123", "generate_report",
		map[string]interface{}{"format": "pdf"}).Return(nil)

	w := doJSON(t, f.handler, http.MethodPost, "/track", dto.TrackEventRequest{
		UserID:  "user_123",
		Action:  "generate_report",
		Context: map[string]interface{}{"format": "pdf"},
	})

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response dto.TrackEventResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "accepted", response.Status)
	f.tracker.AssertExpectations(t)
}

func TestHandler_TrackEvent_MissingFields(t *testing.T) {
	f := newTestHandler(t)

	w := doJSON(t, f.handler, http.MethodPost, "/track", dto.TrackEventRequest{
		UserID: "user_123",
		// Missing required field: Action
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	f.tracker.AssertNotCalled(t, "Track")
}

func TestHandler_TrackEvent_EngineValidationError(t *testing.T) {
	f := newTestHandler(t)

	f.tracker.On("Track", mock.Anything, "  ", "view", mock.Anything).
		Return(&engine.ValidationError{Field: "user_id"})

	w := doJSON(t, f.handler, http.MethodPost, "/track", dto.TrackEventRequest{
		UserID: "  ",
		Action: "view",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
}

func TestHandler_TrackEvent_EngineError(t *testing.T) {
	f := newTestHandler(t)

	f.tracker.On("Track", mock.Anything, "user_123", "view", mock.Anything).
		Return(errors.New("store unavailable"))

	w := doJSON(t, f.handler, http.MethodPost, "/track", dto.TrackEventRequest{
		UserID: "user_123",
		Action: "view",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "internal_error", response.Error)
}

func TestHandler_Analyze(t *testing.T) {
	f := newTestHandler(t)

	f.tracker.On("RunAnalysisPass", mock.Anything).Return(nil)

	w := doJSON(t, f.handler, http.MethodPost, "/analyze", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.AnalyzeResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "completed", response.Status)
	f.tracker.AssertExpectations(t)
}

func TestHandler_CreateRule_And_Get(t *testing.T) {
	f := newTestHandler(t)

	w := doJSON(t, f.handler, http.MethodPost, "/automation-rules", dto.CreateRuleRequest{
		Title:      "Optimal Report Timing",
		Type:       "timing",
		Condition:  map[string]interface{}{"day": 1, "hour": 9},
		Action:     map[string]interface{}{"schedule": "weekly", "notify": true},
		Confidence: 75,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var created domain.AutomationRule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, 75, created.Confidence)

	w = doJSON(t, f.handler, http.MethodGet, "/automation-rules/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_CreateRule_InvalidType(t *testing.T) {
	f := newTestHandler(t)

	w := doJSON(t, f.handler, http.MethodPost, "/automation-rules", dto.CreateRuleRequest{
		Title: "Bad",
		Type:  "sorcery",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetRule_NotFound(t *testing.T) {
	f := newTestHandler(t)

	w := doJSON(t, f.handler, http.MethodGet, "/automation-rules/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "not_found", response.Error)
}

func TestHandler_UpdateRule_FlipActive(t *testing.T) {
	f := newTestHandler(t)

	created, err := f.rules.Create(context.Background(), &domain.AutomationRule{
		ID:         "rule-1",
		Title:      "Preferred Report Format",
		Type:       domain.RuleTypeFormat,
		Condition:  domain.MustJSON(domain.FormatCondition{ReportType: "all"}),
		Action:     domain.MustJSON(domain.FormatAction{DefaultFormat: "pdf"}),
		Confidence: 60,
		IsActive:   true,
	})
	require.NoError(t, err)

	inactive := false
	w := doJSON(t, f.handler, http.MethodPut, "/automation-rules/"+created.ID, dto.UpdateRuleRequest{
		IsActive: &inactive,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var updated domain.AutomationRule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Preferred Report Format", updated.Title)
	assert.Equal(t, 60, updated.Confidence)
}

func TestHandler_CreateReport_TracksBehavior(t *testing.T) {
	f := newTestHandler(t)

	f.reports.On("Create", mock.Anything, mock.AnythingOfType("*domain.Report")).
		Return(&domain.Report{ID: "rpt-1", Title: "Weekly", Type: "weekly", Status: domain.ReportStatusPending, Format: "pdf"}, nil)
	f.tracker.On("Track", mock.Anything, "default", "create_report",
		map[string]interface{}{"type": "weekly", "format": "pdf"}).Return(nil)

	w := doJSON(t, f.handler, http.MethodPost, "/reports", dto.CreateReportRequest{
		Title: "Weekly",
		Type:  "weekly",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	f.reports.AssertExpectations(t)
	f.tracker.AssertExpectations(t)
}

func TestHandler_GenerateReport(t *testing.T) {
	f := newTestHandler(t)

	f.reports.On("GenerateWeekly", mock.Anything, "manual").
		Return(&domain.Report{ID: "rpt-2", Type: "weekly", Status: domain.ReportStatusPending, Format: "pdf"}, nil)
	f.tracker.On("Track", mock.Anything, "default", "generate_report",
		map[string]interface{}{"type": "weekly", "trigger": "manual"}).Return(nil)

	w := doJSON(t, f.handler, http.MethodPost, "/reports/generate", nil)

	assert.Equal(t, http.StatusAccepted, w.Code)
	f.reports.AssertExpectations(t)
	f.tracker.AssertExpectations(t)
}

func TestHandler_CreateIntegration_TracksBehavior(t *testing.T) {
	f := newTestHandler(t)

	f.tracker.On("Track", mock.Anything, "default", "add_integration",
		map[string]interface{}{"type": "trello"}).Return(nil)

	w := doJSON(t, f.handler, http.MethodPost, "/integrations", dto.CreateIntegrationRequest{
		Name: "Team Trello",
		Type: "trello",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var created domain.Integration
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "trello", created.Type)
	assert.Equal(t, "active", created.Status)
	f.tracker.AssertExpectations(t)
}

func TestHandler_DownloadReport_NotFound(t *testing.T) {
	f := newTestHandler(t)

	w := doJSON(t, f.handler, http.MethodGet, "/reports/missing/download", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_DownloadReport_NotReady(t *testing.T) {
	f := newTestHandler(t)

	_, err := f.reportDB.Create(context.Background(), &domain.Report{
		ID: "rpt-3", Title: "Weekly", Type: "weekly",
		Status: domain.ReportStatusGenerating, Format: "pdf",
	})
	require.NoError(t, err)

	w := doJSON(t, f.handler, http.MethodGet, "/reports/rpt-3/download", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	f.tracker.AssertNotCalled(t, "Track")
}

func TestHandler_DownloadReport_Completed(t *testing.T) {
	f := newTestHandler(t)

	_, err := f.reportDB.Create(context.Background(), &domain.Report{
		ID: "rpt-4", Title: "Weekly", Type: "weekly",
		Status: domain.ReportStatusCompleted, Format: "pdf",
		FilePath: "/reports/rpt-4.pdf",
	})
	require.NoError(t, err)

	f.tracker.On("Track", mock.Anything, "default", "download_report",
		map[string]interface{}{"format": "pdf"}).Return(nil)

	w := doJSON(t, f.handler, http.MethodGet, "/reports/rpt-4/download", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.DownloadReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "rpt-4", response.ReportID)
	assert.Equal(t, "/reports/rpt-4.pdf", response.DownloadURL)
	f.tracker.AssertExpectations(t)
}

func TestHandler_ProjectLifecycle(t *testing.T) {
	f := newTestHandler(t)

	w := doJSON(t, f.handler, http.MethodPost, "/projects", dto.CreateProjectRequest{
		Name:   "Website Redesign",
		Source: "trello",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	status := "completed"
	w = doJSON(t, f.handler, http.MethodPut, "/projects/"+created.ID, dto.UpdateProjectRequest{
		Status: &status,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated domain.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, "Website Redesign", updated.Name)

	w = doJSON(t, f.handler, http.MethodDelete, "/projects/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, f.handler, http.MethodGet, "/projects/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_CreateTeamMember_DerivesInitials(t *testing.T) {
	f := newTestHandler(t)

	w := doJSON(t, f.handler, http.MethodPost, "/team-members", dto.CreateTeamMemberRequest{
		Name:  "Sam Rivera",
		Email: "sam@example.com",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var created domain.TeamMember
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "SR", created.Initials)
}

func TestHandler_DashboardMetrics(t *testing.T) {
	f := newTestHandler(t)

	_, err := f.projects.Create(context.Background(), &domain.Project{
		ID: "p1", Name: "Alpha", Source: "github", Status: domain.ProjectStatusActive,
	})
	require.NoError(t, err)
	_, err = f.reportDB.Create(context.Background(), &domain.Report{
		ID: "r1", Title: "Weekly", Type: "weekly",
		Status: domain.ReportStatusCompleted, Format: "pdf",
	})
	require.NoError(t, err)

	w := doJSON(t, f.handler, http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var response service.DashboardMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.ReportsGenerated)
	assert.Equal(t, 1, response.ActiveProjects)
	assert.Equal(t, 5, response.TimeSaved)
}
