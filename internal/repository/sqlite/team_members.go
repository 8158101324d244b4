package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
)

// TeamMemberStore implements repository.TeamMemberRepository on SQLite.
type TeamMemberStore struct {
	db *DB
}

// NewTeamMemberStore creates a team member store over an open database.
func NewTeamMemberStore(db *DB) *TeamMemberStore {
	return &TeamMemberStore{db: db}
}

// List returns all team members.
func (s *TeamMemberStore) List(ctx context.Context) ([]*domain.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, initials, role, project_ids FROM team_members ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	var members []*domain.TeamMember
	for rows.Next() {
		var (
			member     domain.TeamMember
			projectIDs string
		)
		if err := rows.Scan(&member.ID, &member.Name, &member.Email,
			&member.Initials, &member.Role, &projectIDs); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		if err := json.Unmarshal([]byte(projectIDs), &member.ProjectIDs); err != nil {
			return nil, fmt.Errorf("unmarshal project_ids: %w", err)
		}
		members = append(members, &member)
	}
	return members, rows.Err()
}

// Create stores a new team member.
func (s *TeamMemberStore) Create(ctx context.Context, member *domain.TeamMember) (*domain.TeamMember, error) {
	stored := *member
	if stored.ProjectIDs == nil {
		stored.ProjectIDs = []string{}
	}

	projectIDs, err := json.Marshal(stored.ProjectIDs)
	if err != nil {
		return nil, fmt.Errorf("marshal project_ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO team_members (id, name, email, initials, role, project_ids)
		VALUES (?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.Name, stored.Email, stored.Initials, stored.Role,
		string(projectIDs))
	if err != nil {
		return nil, fmt.Errorf("create team member: %w", err)
	}
	return &stored, nil
}
