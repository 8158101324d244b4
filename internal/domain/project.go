package domain

import "time"

// Project statuses.
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusPaused    = "paused"
)

// Project is a tracked project synced from an external source.
type Project struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Source      string                 `json:"source"` // trello, github, asana
	SourceID    string                 `json:"source_id"`
	Status      string                 `json:"status"`
	TeamMembers []string               `json:"team_members"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// Integration is a configured third-party connection.
type Integration struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Type     string                 `json:"type"`   // trello, github, asana
	Status   string                 `json:"status"` // active, syncing, error
	APIKey   string                 `json:"-"`
	Config   map[string]interface{} `json:"config"`
	LastSync *time.Time             `json:"last_sync,omitempty"`
}

// TeamMember is a person reports are generated for.
type TeamMember struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Initials   string   `json:"initials"`
	Role       string   `json:"role"`
	ProjectIDs []string `json:"project_ids"`
}
