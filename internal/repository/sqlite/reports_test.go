package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

func TestReportStore_Lifecycle(t *testing.T) {
	store := NewReportStore(newTestDB(t))
	ctx := context.Background()

	created, err := store.Create(ctx, &domain.Report{
		ID:     uuid.NewString(),
		Title:  "Weekly Sprint Report",
		Type:   "weekly",
		Status: domain.ReportStatusPending,
		Format: domain.ReportFormatPDF,
	})
	require.NoError(t, err)
	assert.Nil(t, created.GeneratedAt)

	generating := domain.ReportStatusGenerating
	_, err = store.Update(ctx, created.ID, repository.ReportUpdate{Status: &generating})
	require.NoError(t, err)

	completed := domain.ReportStatusCompleted
	filePath := "/reports/" + created.ID + ".pdf"
	stamp := true
	updated, err := store.Update(ctx, created.ID, repository.ReportUpdate{
		Status:   &completed,
		FilePath: &filePath,
		Metrics: map[string]interface{}{
			"totalProjects": 3,
		},
		GeneratedAt: &stamp,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusCompleted, updated.Status)
	assert.Equal(t, filePath, updated.FilePath)
	assert.NotNil(t, updated.GeneratedAt)
	assert.EqualValues(t, 3, updated.Metrics["totalProjects"])
}

func TestReportStore_UpdateMissing(t *testing.T) {
	store := NewReportStore(newTestDB(t))

	status := domain.ReportStatusFailed
	_, err := store.Update(context.Background(), "nope", repository.ReportUpdate{Status: &status})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectStore_CRUD(t *testing.T) {
	store := NewProjectStore(newTestDB(t))
	ctx := context.Background()

	created, err := store.Create(ctx, &domain.Project{
		ID:       uuid.NewString(),
		Name:     "Data Platform",
		Source:   "github",
		SourceID: "org/data-platform",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusActive, created.Status, "status defaults to active")

	created.Status = domain.ProjectStatusCompleted
	updated, err := store.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectStatusCompleted, updated.Status)

	require.NoError(t, store.Delete(ctx, created.ID))
	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, created.ID), repository.ErrNotFound)
}

func TestTeamMemberStore_UniqueEmail(t *testing.T) {
	store := NewTeamMemberStore(newTestDB(t))
	ctx := context.Background()

	_, err := store.Create(ctx, &domain.TeamMember{
		ID:       uuid.NewString(),
		Name:     "Sarah Mitchell",
		Email:    "sarah@example.com",
		Initials: "SM",
		Role:     "Data Team Lead",
	})
	require.NoError(t, err)

	_, err = store.Create(ctx, &domain.TeamMember{
		ID:       uuid.NewString(),
		Name:     "Sarah M.",
		Email:    "sarah@example.com",
		Initials: "SM",
		Role:     "Engineer",
	})
	assert.Error(t, err)
}
