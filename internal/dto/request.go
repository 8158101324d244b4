package dto

// TrackEventRequest represents a behavior tracking request
type TrackEventRequest struct {
	UserID  string                 `json:"user_id" binding:"required" example:"user_123"`
	Action  string                 `json:"action" binding:"required" example:"generate_report"`
	Context map[string]interface{} `json:"context" swaggertype:"object,string" example:"format:pdf,reportType:weekly"`
}

// CreateRuleRequest represents a manual automation rule creation request
type CreateRuleRequest struct {
	Title       string                 `json:"title" binding:"required" example:"Optimal Report Timing"`
	Description string                 `json:"description" example:"User prefers reports on Monday at 9:00"`
	Type        string                 `json:"type" binding:"required,oneof=timing format priority metrics" example:"timing"`
	Condition   map[string]interface{} `json:"condition" swaggertype:"object" example:"day:1,hour:9"`
	Action      map[string]interface{} `json:"action" swaggertype:"object" example:"schedule:weekly,notify:true"`
	Confidence  int                    `json:"confidence" binding:"min=0,max=100" example:"75"`
	IsActive    *bool                  `json:"is_active" example:"true"`
}

// UpdateRuleRequest represents a partial automation rule update
type UpdateRuleRequest struct {
	Title       *string                `json:"title" example:"Optimal Report Timing"`
	Description *string                `json:"description" example:"User prefers reports on Monday at 9:00"`
	Condition   map[string]interface{} `json:"condition" swaggertype:"object"`
	Action      map[string]interface{} `json:"action" swaggertype:"object"`
	Confidence  *int                   `json:"confidence" example:"80"`
	IsActive    *bool                  `json:"is_active" example:"false"`
}

// CreateReportRequest represents a report creation request
type CreateReportRequest struct {
	Title      string   `json:"title" binding:"required" example:"Weekly Sprint Report"`
	Type       string   `json:"type" binding:"required" example:"weekly"`
	Format     string   `json:"format" binding:"omitempty,oneof=pdf html email" example:"pdf"`
	ProjectIDs []string `json:"project_ids" example:"proj_1,proj_2"`
}

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	Name        string                 `json:"name" binding:"required" example:"Website Redesign"`
	Description string                 `json:"description" example:"Q3 marketing site refresh"`
	Source      string                 `json:"source" binding:"required,oneof=trello github asana" example:"trello"`
	SourceID    string                 `json:"source_id" example:"board_456"`
	Status      string                 `json:"status" binding:"omitempty,oneof=active completed paused" example:"active"`
	TeamMembers []string               `json:"team_members" example:"member_1,member_2"`
	Metadata    map[string]interface{} `json:"metadata" swaggertype:"object"`
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	Name        *string                `json:"name" example:"Website Redesign"`
	Description *string                `json:"description"`
	Status      *string                `json:"status" binding:"omitempty,oneof=active completed paused" example:"completed"`
	TeamMembers []string               `json:"team_members"`
	Metadata    map[string]interface{} `json:"metadata" swaggertype:"object"`
}

// CreateIntegrationRequest represents an integration creation request
type CreateIntegrationRequest struct {
	Name   string                 `json:"name" binding:"required" example:"Team Trello"`
	Type   string                 `json:"type" binding:"required,oneof=trello github asana" example:"trello"`
	APIKey string                 `json:"api_key" example:"key_abc123"`
	Config map[string]interface{} `json:"config" swaggertype:"object"`
}

// UpdateIntegrationRequest represents a partial integration update
type UpdateIntegrationRequest struct {
	Name   *string                `json:"name"`
	Status *string                `json:"status" binding:"omitempty,oneof=active syncing error" example:"active"`
	APIKey *string                `json:"api_key"`
	Config map[string]interface{} `json:"config" swaggertype:"object"`
}

// CreateTeamMemberRequest represents a team member creation request
type CreateTeamMemberRequest struct {
	Name       string   `json:"name" binding:"required" example:"Sam Rivera"`
	Email      string   `json:"email" binding:"required,email" example:"sam@example.com"`
	Initials   string   `json:"initials" example:"SR"`
	Role       string   `json:"role" example:"engineer"`
	ProjectIDs []string `json:"project_ids" example:"proj_1"`
}
