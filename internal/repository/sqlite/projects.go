package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

// ProjectStore implements repository.ProjectRepository on SQLite.
type ProjectStore struct {
	db *DB
}

// NewProjectStore creates a project store over an open database.
func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = "id, name, description, source, source_id, status, team_members, metadata"

func scanProject(row interface{ Scan(...interface{}) error }) (*domain.Project, error) {
	var (
		project     domain.Project
		teamMembers string
		metadata    string
	)
	err := row.Scan(&project.ID, &project.Name, &project.Description,
		&project.Source, &project.SourceID, &project.Status, &teamMembers, &metadata)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(teamMembers), &project.TeamMembers); err != nil {
		return nil, fmt.Errorf("unmarshal team_members: %w", err)
	}
	if err := json.Unmarshal([]byte(metadata), &project.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	return &project, nil
}

// List returns all projects.
func (s *ProjectStore) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// Get returns one project by id.
func (s *ProjectStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE id = ?", id)
	project, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return project, nil
}

// Create stores a new project.
func (s *ProjectStore) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	stored := *project
	if stored.TeamMembers == nil {
		stored.TeamMembers = []string{}
	}
	if stored.Metadata == nil {
		stored.Metadata = map[string]interface{}{}
	}
	if stored.Status == "" {
		stored.Status = domain.ProjectStatusActive
	}

	teamMembers, err := json.Marshal(stored.TeamMembers)
	if err != nil {
		return nil, fmt.Errorf("marshal team_members: %w", err)
	}
	metadata, err := json.Marshal(stored.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, source, source_id, status, team_members, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.Name, stored.Description, stored.Source,
		stored.SourceID, stored.Status, string(teamMembers), string(metadata))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &stored, nil
}

// Update replaces a stored project.
func (s *ProjectStore) Update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	teamMembers, err := json.Marshal(project.TeamMembers)
	if err != nil {
		return nil, fmt.Errorf("marshal team_members: %w", err)
	}
	metadata, err := json.Marshal(project.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE projects SET name = ?, description = ?, source = ?, source_id = ?, status = ?, team_members = ?, metadata = ?
		WHERE id = ?`,
		project.Name, project.Description, project.Source, project.SourceID,
		project.Status, string(teamMembers), string(metadata), project.ID)
	if err != nil {
		return nil, fmt.Errorf("update project %s: %w", project.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update project %s: %w", project.ID, err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	return s.Get(ctx, project.ID)
}

// Delete removes a project.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
