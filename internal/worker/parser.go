package worker

import (
	"encoding/json"
	"fmt"

	"github.com/issamHaimour5/ReportPilot-1/internal/queue"
)

// JSONJobParser implements MessageParser for JSON-formatted report job messages
type JSONJobParser struct{}

// NewJSONJobParser creates a new JSON job parser
func NewJSONJobParser() *JSONJobParser {
	return &JSONJobParser{}
}

// Parse parses a JSON message body into a ReportJob
func (p *JSONJobParser) Parse(body []byte) (*queue.ReportJob, error) {
	var job queue.ReportJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	if job.ReportID == "" {
		return nil, fmt.Errorf("message is missing report_id")
	}

	return &job, nil
}
