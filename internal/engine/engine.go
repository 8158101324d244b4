// Package engine derives automation rules from the behavior event stream.
// It is the behavior-tracking entry point: every tracked action is appended
// to the event log, and once the log crosses each watermark a full analysis
// pass (pattern detection, confidence reconciliation, rule synthesis) runs
// over the entire log.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

// Options configures an Engine.
type Options struct {
	// AnalyzeEvery is the watermark interval. Defaults to 10.
	AnalyzeEvery int
	// DedupeRules makes synthesis update an existing rule of the same type
	// instead of creating another one. Off by default: the stock behavior is
	// create-only, so repeated strong patterns accumulate duplicate rules.
	DedupeRules bool
	// Trigger overrides the watermark policy entirely. When set,
	// AnalyzeEvery is ignored.
	Trigger TriggerPolicy
}

// Engine owns the track → append → watermark → analysis flow.
//
// A single mutex serializes appends, the watermark check, and analysis
// passes: the count-modulo computation and the full-log scan are not safe
// under interleaved appends. Store calls are short, so blocking is fine.
type Engine struct {
	behaviors repository.BehaviorRepository
	rules     repository.RuleRepository
	detectors []Detector
	trigger   TriggerPolicy
	dedupe    bool
	log       *zap.Logger

	mu sync.Mutex
}

// New creates an Engine over the given event log and rule store.
func New(behaviors repository.BehaviorRepository, rules repository.RuleRepository, opts Options, log *zap.Logger) *Engine {
	trigger := opts.Trigger
	if trigger == nil {
		trigger = EveryN(opts.AnalyzeEvery)
	}
	return &Engine{
		behaviors: behaviors,
		rules:     rules,
		detectors: DefaultDetectors(),
		trigger:   trigger,
		dedupe:    opts.DedupeRules,
		log:       log,
	}
}

// Track records one user action. The event is timestamped here, not by the
// caller, and appended to the log. If the append crosses the watermark, a
// full analysis pass runs synchronously before Track returns.
//
// A failed analysis pass never fails Track: the append has already
// succeeded and is not rolled back. The failure is logged and the rules
// simply stay stale until the next watermark or a forced pass.
func (e *Engine) Track(ctx context.Context, userID, action string, eventContext map[string]interface{}) error {
	if userID == "" {
		return &ValidationError{Field: "user_id"}
	}
	if action == "" {
		return &ValidationError{Field: "action"}
	}
	if eventContext == nil {
		eventContext = map[string]interface{}{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	event := &domain.BehaviorEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Context:   eventContext,
		Timestamp: time.Now(),
	}

	if err := e.behaviors.Append(ctx, event); err != nil {
		return fmt.Errorf("failed to append behavior event: %w", err)
	}

	// The watermark derives from the stored total every time, so it is
	// restart-safe without persisting any counter of its own.
	count, err := e.behaviors.Count(ctx)
	if err != nil {
		e.log.Warn("Failed to read event count, skipping watermark check",
			zap.Error(err))
		return nil
	}

	if e.trigger.ShouldAnalyze(count) {
		e.log.Info("Watermark crossed, running analysis pass",
			zap.Int("event_count", count))
		if err := e.analyze(ctx); err != nil {
			e.log.Error("Analysis pass failed, rules stay stale until the next watermark",
				zap.Error(err))
		}
	}

	return nil
}

// RunAnalysisPass forces an off-cycle analysis pass. External schedulers may
// call this directly; it takes the same lock as Track.
func (e *Engine) RunAnalysisPass(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.analyze(ctx)
}

// analyze is one full cycle: detect patterns over the whole log, reconcile
// existing rule confidence, then synthesize new rules. Caller holds e.mu.
func (e *Engine) analyze(ctx context.Context) error {
	events, err := e.behaviors.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list behavior events: %w", err)
	}

	patterns := DetectPatterns(e.detectors, events)
	if len(patterns) == 0 {
		e.log.Debug("No patterns detected", zap.Int("event_count", len(events)))
		return nil
	}

	// Read the rule store fresh: the rule-management API mutates rules
	// concurrently and reconciliation must start from current state.
	rules, err := e.rules.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list automation rules: %w", err)
	}

	for _, upd := range reconcile(rules, patterns) {
		confidence := upd.Confidence
		if _, err := e.rules.Update(ctx, upd.RuleID, repository.RuleUpdate{Confidence: &confidence}); err != nil {
			return fmt.Errorf("failed to update rule %s confidence: %w", upd.RuleID, err)
		}
		e.log.Info("Rule confidence reconciled",
			zap.String("rule_id", upd.RuleID),
			zap.Int("confidence", confidence))
	}

	for _, draft := range synthesize(patterns) {
		if err := e.persistDraft(ctx, draft, rules); err != nil {
			return err
		}
	}

	return nil
}

// persistDraft stores a synthesized rule. In dedupe mode an existing rule of
// the same type is rewritten in place instead of creating a duplicate.
func (e *Engine) persistDraft(ctx context.Context, draft *domain.AutomationRule, existing []*domain.AutomationRule) error {
	if e.dedupe {
		for _, rule := range existing {
			if rule.Type != draft.Type {
				continue
			}
			confidence := draft.Confidence
			_, err := e.rules.Update(ctx, rule.ID, repository.RuleUpdate{
				Title:       &draft.Title,
				Description: &draft.Description,
				Condition:   draft.Condition,
				Action:      draft.Action,
				Confidence:  &confidence,
			})
			if err != nil {
				return fmt.Errorf("failed to update rule %s from pattern: %w", rule.ID, err)
			}
			e.log.Info("Rule refreshed from pattern",
				zap.String("rule_id", rule.ID),
				zap.String("type", string(draft.Type)))
			return nil
		}
	}

	created, err := e.rules.Create(ctx, draft)
	if err != nil {
		return fmt.Errorf("failed to create %s rule: %w", draft.Type, err)
	}
	e.log.Info("New automation rule synthesized",
		zap.String("rule_id", created.ID),
		zap.String("type", string(created.Type)),
		zap.Int("confidence", created.Confidence))
	return nil
}
