package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/queue"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository/memory"
)

// MockJobPublisher is a mock implementation of queue.JobPublisher.
type MockJobPublisher struct {
	mock.Mock
}

func (m *MockJobPublisher) PublishReportJob(ctx context.Context, job *queue.ReportJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func seedProjects(t *testing.T, projects *memory.ProjectStore) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []*domain.Project{
		{ID: uuid.NewString(), Name: "Alpha", Source: "trello", SourceID: "a", Status: domain.ProjectStatusActive, TeamMembers: []string{"m1", "m2"}},
		{ID: uuid.NewString(), Name: "Beta", Source: "github", SourceID: "b", Status: domain.ProjectStatusCompleted, TeamMembers: []string{"m3"}},
	} {
		_, err := projects.Create(ctx, p)
		require.NoError(t, err)
	}
}

func TestReportService_CreateFillsDefaults(t *testing.T) {
	svc := NewReportService(memory.NewReportStore(), memory.NewProjectStore(), nil, zap.NewNop())

	created, err := svc.Create(context.Background(), &domain.Report{
		Title: "Monthly Report",
		Type:  "monthly",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.ReportStatusPending, created.Status)
	assert.Equal(t, domain.ReportFormatPDF, created.Format)
}

func TestReportService_GenerateWeeklyPublishesJob(t *testing.T) {
	publisher := new(MockJobPublisher)
	svc := NewReportService(memory.NewReportStore(), memory.NewProjectStore(), publisher, zap.NewNop())

	publisher.On("PublishReportJob", mock.Anything, mock.MatchedBy(func(job *queue.ReportJob) bool {
		return job.ReportID != "" && job.Trigger == "manual"
	})).Return(nil)

	report, err := svc.GenerateWeekly(context.Background(), "manual")

	require.NoError(t, err)
	assert.Equal(t, "weekly", report.Type)
	assert.Equal(t, domain.ReportStatusPending, report.Status)
	publisher.AssertExpectations(t)
}

func TestReportService_GenerateWeeklyPublishError(t *testing.T) {
	publisher := new(MockJobPublisher)
	svc := NewReportService(memory.NewReportStore(), memory.NewProjectStore(), publisher, zap.NewNop())

	publisher.On("PublishReportJob", mock.Anything, mock.Anything).Return(errors.New("queue down"))

	_, err := svc.GenerateWeekly(context.Background(), "manual")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to queue report generation")
}

func TestReportService_ProcessJobCompletesReport(t *testing.T) {
	reports := memory.NewReportStore()
	projects := memory.NewProjectStore()
	seedProjects(t, projects)
	svc := NewReportService(reports, projects, nil, zap.NewNop())
	ctx := context.Background()

	report, err := svc.Create(ctx, &domain.Report{Title: "Weekly", Type: "weekly"})
	require.NoError(t, err)

	require.NoError(t, svc.ProcessJob(ctx, report.ID))

	processed, err := reports.Get(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusCompleted, processed.Status)
	assert.Equal(t, "/reports/"+report.ID+".pdf", processed.FilePath)
	assert.NotNil(t, processed.GeneratedAt)
	assert.EqualValues(t, 2, processed.Metrics["totalProjects"])
	assert.EqualValues(t, 1, processed.Metrics["completedProjects"])
	assert.EqualValues(t, 1, processed.Metrics["activeProjects"])
	assert.EqualValues(t, 50.0, processed.Metrics["completionRate"])
	assert.EqualValues(t, 3, processed.Metrics["teamMembers"])
}

func TestReportService_ProcessJobUnknownReport(t *testing.T) {
	svc := NewReportService(memory.NewReportStore(), memory.NewProjectStore(), nil, zap.NewNop())

	err := svc.ProcessJob(context.Background(), "nope")

	assert.Error(t, err)
}

func TestMetricsService_Dashboard(t *testing.T) {
	reports := memory.NewReportStore()
	projects := memory.NewProjectStore()
	seedProjects(t, projects)
	ctx := context.Background()

	for _, status := range []string{domain.ReportStatusCompleted, domain.ReportStatusCompleted, domain.ReportStatusPending} {
		_, err := reports.Create(ctx, &domain.Report{ID: uuid.NewString(), Title: "r", Type: "weekly", Status: status, Format: "pdf"})
		require.NoError(t, err)
	}

	m, err := NewMetricsService(reports, projects).DashboardMetrics(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, m.ReportsGenerated)
	assert.Equal(t, 1, m.ActiveProjects)
	assert.Equal(t, 50, m.CompletionRate)
	assert.Equal(t, 10, m.TimeSaved)
}
