package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"user_id is required"`
}

// TrackEventResponse represents a successful behavior tracking response
type TrackEventResponse struct {
	Status string `json:"status" example:"accepted"`
}

// AnalyzeResponse represents a completed forced analysis pass
type AnalyzeResponse struct {
	Status string `json:"status" example:"completed"`
}

// DownloadReportResponse represents a report download response
type DownloadReportResponse struct {
	ReportID    string `json:"report_id" example:"rpt_1a2b3c"`
	DownloadURL string `json:"download_url" example:"/reports/rpt_1a2b3c.pdf"`
	Format      string `json:"format" example:"pdf"`
}
