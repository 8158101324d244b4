package repository

import (
	"context"
	"errors"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
)

// ErrNotFound is returned by Get/Update operations when no record matches.
var ErrNotFound = errors.New("record not found")

// BehaviorRepository is the append-only behavior event log.
// Events are never updated or deleted; ListAll returns them in insertion
// order.
type BehaviorRepository interface {
	Append(ctx context.Context, event *domain.BehaviorEvent) error
	ListAll(ctx context.Context) ([]*domain.BehaviorEvent, error)
	Count(ctx context.Context) (int, error)

	InitSchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}

// RuleUpdate is a partial update of an automation rule. Nil fields are left
// untouched. Applications is deliberately absent: that counter is owned by
// the rule-application caller and is incremented through its own path.
type RuleUpdate struct {
	Title       *string
	Description *string
	Condition   []byte
	Action      []byte
	Confidence  *int
	IsActive    *bool
}

// RuleRepository is the keyed automation rule store. The learning engine is
// not its sole writer: the rule-management API mutates IsActive and other
// fields concurrently, so callers must read current state before computing
// deltas.
type RuleRepository interface {
	List(ctx context.Context) ([]*domain.AutomationRule, error)
	Get(ctx context.Context, id string) (*domain.AutomationRule, error)
	Create(ctx context.Context, rule *domain.AutomationRule) (*domain.AutomationRule, error)
	Update(ctx context.Context, id string, update RuleUpdate) (*domain.AutomationRule, error)
}

// ReportUpdate is a partial update of a report record.
type ReportUpdate struct {
	Status      *string
	FilePath    *string
	Metrics     map[string]interface{}
	GeneratedAt *bool // when true, stamp GeneratedAt with the current time
}

// ReportRepository stores generated and pending reports.
type ReportRepository interface {
	List(ctx context.Context) ([]*domain.Report, error)
	Get(ctx context.Context, id string) (*domain.Report, error)
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	Update(ctx context.Context, id string, update ReportUpdate) (*domain.Report, error)
}

// ProjectRepository stores synced projects.
type ProjectRepository interface {
	List(ctx context.Context) ([]*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// IntegrationRepository stores third-party integration configs.
type IntegrationRepository interface {
	List(ctx context.Context) ([]*domain.Integration, error)
	Create(ctx context.Context, integration *domain.Integration) (*domain.Integration, error)
	Update(ctx context.Context, integration *domain.Integration) (*domain.Integration, error)
}

// TeamMemberRepository stores team members.
type TeamMemberRepository interface {
	List(ctx context.Context) ([]*domain.TeamMember, error)
	Create(ctx context.Context, member *domain.TeamMember) (*domain.TeamMember, error)
}
