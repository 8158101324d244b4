// Package memory provides in-memory repository implementations.
// They back the zero-config "memory" storage driver and the engine tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

// BehaviorLog is an in-memory append-only behavior event log.
type BehaviorLog struct {
	mu     sync.RWMutex
	events []*domain.BehaviorEvent
}

// NewBehaviorLog creates an empty in-memory event log.
func NewBehaviorLog() *BehaviorLog {
	return &BehaviorLog{}
}

// Append adds an event to the log.
func (l *BehaviorLog) Append(_ context.Context, event *domain.BehaviorEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := *event
	l.events = append(l.events, &e)
	return nil
}

// ListAll returns all events in insertion order.
func (l *BehaviorLog) ListAll(_ context.Context) ([]*domain.BehaviorEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*domain.BehaviorEvent, len(l.events))
	for i, e := range l.events {
		c := *e
		out[i] = &c
	}
	return out, nil
}

// Count returns the total number of events in the log.
func (l *BehaviorLog) Count(_ context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events), nil
}

// InitSchema is a no-op for the in-memory log.
func (l *BehaviorLog) InitSchema(_ context.Context) error { return nil }

// Ping is a no-op for the in-memory log.
func (l *BehaviorLog) Ping(_ context.Context) error { return nil }

// Close is a no-op for the in-memory log.
func (l *BehaviorLog) Close() error { return nil }

// RuleStore is an in-memory automation rule store.
type RuleStore struct {
	mu    sync.RWMutex
	rules map[string]*domain.AutomationRule
	order []string
}

// NewRuleStore creates an empty in-memory rule store.
func NewRuleStore() *RuleStore {
	return &RuleStore{rules: make(map[string]*domain.AutomationRule)}
}

// List returns all rules in creation order.
func (s *RuleStore) List(_ context.Context) ([]*domain.AutomationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.AutomationRule, 0, len(s.order))
	for _, id := range s.order {
		c := *s.rules[id]
		out = append(out, &c)
	}
	return out, nil
}

// Get returns one rule by id.
func (s *RuleStore) Get(_ context.Context, id string) (*domain.AutomationRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rules[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *r
	return &c, nil
}

// Create stores a new rule.
func (s *RuleStore) Create(_ context.Context, rule *domain.AutomationRule) (*domain.AutomationRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *rule
	c.Confidence = domain.ClampConfidence(c.Confidence)
	s.rules[c.ID] = &c
	s.order = append(s.order, c.ID)
	out := c
	return &out, nil
}

// Update applies a partial update to a rule.
func (s *RuleStore) Update(_ context.Context, id string, update repository.RuleUpdate) (*domain.AutomationRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rules[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Title != nil {
		r.Title = *update.Title
	}
	if update.Description != nil {
		r.Description = *update.Description
	}
	if update.Condition != nil {
		r.Condition = update.Condition
	}
	if update.Action != nil {
		r.Action = update.Action
	}
	if update.Confidence != nil {
		r.Confidence = domain.ClampConfidence(*update.Confidence)
	}
	if update.IsActive != nil {
		r.IsActive = *update.IsActive
	}
	c := *r
	return &c, nil
}

// ReportStore is an in-memory report store.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]*domain.Report
	order   []string
}

// NewReportStore creates an empty in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[string]*domain.Report)}
}

// List returns all reports in creation order.
func (s *ReportStore) List(_ context.Context) ([]*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Report, 0, len(s.order))
	for _, id := range s.order {
		c := *s.reports[id]
		out = append(out, &c)
	}
	return out, nil
}

// Get returns one report by id.
func (s *ReportStore) Get(_ context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *r
	return &c, nil
}

// Create stores a new report.
func (s *ReportStore) Create(_ context.Context, report *domain.Report) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *report
	s.reports[c.ID] = &c
	s.order = append(s.order, c.ID)
	out := c
	return &out, nil
}

// Update applies a partial update to a report.
func (s *ReportStore) Update(_ context.Context, id string, update repository.ReportUpdate) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if update.Status != nil {
		r.Status = *update.Status
	}
	if update.FilePath != nil {
		r.FilePath = *update.FilePath
	}
	if update.Metrics != nil {
		r.Metrics = update.Metrics
	}
	if update.GeneratedAt != nil && *update.GeneratedAt {
		now := time.Now()
		r.GeneratedAt = &now
	}
	c := *r
	return &c, nil
}

// ProjectStore is an in-memory project store.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project
	order    []string
}

// NewProjectStore creates an empty in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: make(map[string]*domain.Project)}
}

// List returns all projects in creation order.
func (s *ProjectStore) List(_ context.Context) ([]*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Project, 0, len(s.order))
	for _, id := range s.order {
		c := *s.projects[id]
		out = append(out, &c)
	}
	return out, nil
}

// Get returns one project by id.
func (s *ProjectStore) Get(_ context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *p
	return &c, nil
}

// Create stores a new project.
func (s *ProjectStore) Create(_ context.Context, project *domain.Project) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *project
	s.projects[c.ID] = &c
	s.order = append(s.order, c.ID)
	out := c
	return &out, nil
}

// Update replaces a stored project.
func (s *ProjectStore) Update(_ context.Context, project *domain.Project) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	c := *project
	s.projects[c.ID] = &c
	out := c
	return &out, nil
}

// Delete removes a project.
func (s *ProjectStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.projects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// IntegrationStore is an in-memory integration store.
type IntegrationStore struct {
	mu           sync.RWMutex
	integrations map[string]*domain.Integration
	order        []string
}

// NewIntegrationStore creates an empty in-memory integration store.
func NewIntegrationStore() *IntegrationStore {
	return &IntegrationStore{integrations: make(map[string]*domain.Integration)}
}

// List returns all integrations in creation order.
func (s *IntegrationStore) List(_ context.Context) ([]*domain.Integration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Integration, 0, len(s.order))
	for _, id := range s.order {
		c := *s.integrations[id]
		out = append(out, &c)
	}
	return out, nil
}

// Create stores a new integration.
func (s *IntegrationStore) Create(_ context.Context, integration *domain.Integration) (*domain.Integration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *integration
	s.integrations[c.ID] = &c
	s.order = append(s.order, c.ID)
	out := c
	return &out, nil
}

// Update replaces a stored integration.
func (s *IntegrationStore) Update(_ context.Context, integration *domain.Integration) (*domain.Integration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.integrations[integration.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	c := *integration
	s.integrations[c.ID] = &c
	out := c
	return &out, nil
}

// TeamMemberStore is an in-memory team member store.
type TeamMemberStore struct {
	mu      sync.RWMutex
	members map[string]*domain.TeamMember
	order   []string
}

// NewTeamMemberStore creates an empty in-memory team member store.
func NewTeamMemberStore() *TeamMemberStore {
	return &TeamMemberStore{members: make(map[string]*domain.TeamMember)}
}

// List returns all team members in creation order.
func (s *TeamMemberStore) List(_ context.Context) ([]*domain.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.TeamMember, 0, len(s.order))
	for _, id := range s.order {
		c := *s.members[id]
		out = append(out, &c)
	}
	return out, nil
}

// Create stores a new team member.
func (s *TeamMemberStore) Create(_ context.Context, member *domain.TeamMember) (*domain.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *member
	s.members[c.ID] = &c
	s.order = append(s.order, c.ID)
	out := c
	return &out, nil
}
