package domain

import "time"

// Report statuses.
const (
	ReportStatusPending    = "pending"
	ReportStatusGenerating = "generating"
	ReportStatusCompleted  = "completed"
	ReportStatusFailed     = "failed"
)

// Report formats.
const (
	ReportFormatPDF   = "pdf"
	ReportFormatHTML  = "html"
	ReportFormatEmail = "email"
)

// Report is a generated (or about to be generated) project report.
type Report struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Type        string                 `json:"type"` // weekly, sprint, monthly
	Status      string                 `json:"status"`
	Format      string                 `json:"format"`
	ProjectIDs  []string               `json:"project_ids"`
	Metrics     map[string]interface{} `json:"metrics"`
	GeneratedAt *time.Time             `json:"generated_at,omitempty"`
	FilePath    string                 `json:"file_path,omitempty"`
}

// ReportMetrics are the aggregates computed for a report over its projects.
type ReportMetrics struct {
	TotalProjects     int     `json:"totalProjects"`
	CompletedProjects int     `json:"completedProjects"`
	ActiveProjects    int     `json:"activeProjects"`
	CompletionRate    float64 `json:"completionRate"`
	TeamMembers       int     `json:"teamMembers"`
}

// Map flattens the metrics into the free-form shape stored on Report.Metrics.
func (m ReportMetrics) Map() map[string]interface{} {
	return map[string]interface{}{
		"totalProjects":     m.TotalProjects,
		"completedProjects": m.CompletedProjects,
		"activeProjects":    m.ActiveProjects,
		"completionRate":    m.CompletionRate,
		"teamMembers":       m.TeamMembers,
	}
}
