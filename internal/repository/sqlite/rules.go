package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

// RuleStore implements repository.RuleRepository on SQLite.
type RuleStore struct {
	db *DB
}

// NewRuleStore creates a rule store over an open database.
func NewRuleStore(db *DB) *RuleStore {
	return &RuleStore{db: db}
}

const ruleColumns = "id, title, description, type, condition, action, confidence, applications, is_active"

func scanRule(row interface{ Scan(...interface{}) error }) (*domain.AutomationRule, error) {
	var (
		rule      domain.AutomationRule
		ruleType  string
		condition string
		action    string
		isActive  int
	)
	err := row.Scan(&rule.ID, &rule.Title, &rule.Description, &ruleType,
		&condition, &action, &rule.Confidence, &rule.Applications, &isActive)
	if err != nil {
		return nil, err
	}
	rule.Type = domain.RuleType(ruleType)
	rule.Condition = json.RawMessage(condition)
	rule.Action = json.RawMessage(action)
	rule.IsActive = isActive != 0
	return &rule, nil
}

// List returns all rules in creation order.
func (s *RuleStore) List(ctx context.Context) ([]*domain.AutomationRule, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+ruleColumns+" FROM automation_rules ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	var rules []*domain.AutomationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Get returns one rule by id.
func (s *RuleStore) Get(ctx context.Context, id string) (*domain.AutomationRule, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+ruleColumns+" FROM automation_rules WHERE id = ?", id)
	rule, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get rule %s: %w", id, err)
	}
	return rule, nil
}

// Create stores a new rule. Confidence is clamped on the way in; the table
// CHECK constraint backs this up.
func (s *RuleStore) Create(ctx context.Context, rule *domain.AutomationRule) (*domain.AutomationRule, error) {
	stored := *rule
	stored.Confidence = domain.ClampConfidence(stored.Confidence)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO automation_rules (id, title, description, type, condition, action, confidence, applications, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.Title, stored.Description, string(stored.Type),
		string(stored.Condition), string(stored.Action),
		stored.Confidence, stored.Applications, boolToInt(stored.IsActive),
		time.Now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("create rule: %w", err)
	}
	return &stored, nil
}

// Update applies a partial update and returns the updated rule.
func (s *RuleStore) Update(ctx context.Context, id string, update repository.RuleUpdate) (*domain.AutomationRule, error) {
	var (
		sets []string
		args []interface{}
	)
	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.Condition != nil {
		sets = append(sets, "condition = ?")
		args = append(args, string(update.Condition))
	}
	if update.Action != nil {
		sets = append(sets, "action = ?")
		args = append(args, string(update.Action))
	}
	if update.Confidence != nil {
		sets = append(sets, "confidence = ?")
		args = append(args, domain.ClampConfidence(*update.Confidence))
	}
	if update.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, boolToInt(*update.IsActive))
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx,
			"UPDATE automation_rules SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, fmt.Errorf("update rule %s: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("update rule %s: %w", id, err)
		}
		if affected == 0 {
			return nil, repository.ErrNotFound
		}
	}

	return s.Get(ctx, id)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
