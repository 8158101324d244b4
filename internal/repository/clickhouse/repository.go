package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
)

// Repository implements repository.BehaviorRepository on ClickHouse.
// The table is append-only; nothing in this codebase updates or deletes
// behavior events.
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a ClickHouse behavior event log.
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{client: client, log: log}
}

// InitSchema creates the behavior_events table if it does not exist.
// ingested_at preserves insertion order for ListAll.
func (r *Repository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS behavior_events (
		event_id String,
		user_id String,
		action LowCardinality(String),
		context String,
		timestamp DateTime64(3),
		ingested_at DateTime64(9) DEFAULT now64(9)
	) ENGINE = MergeTree
	ORDER BY (ingested_at)
	PARTITION BY toYYYYMM(timestamp)
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create behavior_events table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized")
	return nil
}

// Append inserts one behavior event.
func (r *Repository) Append(ctx context.Context, event *domain.BehaviorEvent) error {
	contextJSON := "{}"
	if len(event.Context) > 0 {
		b, err := json.Marshal(event.Context)
		if err != nil {
			return fmt.Errorf("failed to marshal event context: %w", err)
		}
		contextJSON = string(b)
	}

	query := `
	INSERT INTO behavior_events (event_id, user_id, action, context, timestamp, ingested_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	err := r.client.Conn().Exec(ctx, query,
		event.ID,
		event.UserID,
		event.Action,
		contextJSON,
		event.Timestamp,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert behavior event: %w", err)
	}

	return nil
}

// ListAll returns every behavior event in insertion order.
func (r *Repository) ListAll(ctx context.Context) ([]*domain.BehaviorEvent, error) {
	query := `
	SELECT event_id, user_id, action, context, timestamp
	FROM behavior_events
	ORDER BY ingested_at ASC
	`

	rows, err := r.client.Conn().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query behavior events: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.log.Error("Failed to close behavior event rows", zap.Error(err))
		}
	}()

	var events []*domain.BehaviorEvent
	for rows.Next() {
		var (
			event       domain.BehaviorEvent
			contextJSON string
		)
		if err := rows.Scan(&event.ID, &event.UserID, &event.Action, &contextJSON, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan behavior event row: %w", err)
		}
		if err := json.Unmarshal([]byte(contextJSON), &event.Context); err != nil {
			return nil, fmt.Errorf("failed to unmarshal context for event %s: %w", event.ID, err)
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating behavior event rows: %w", err)
	}

	return events, nil
}

// Count returns the total number of behavior events.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count uint64
	row := r.client.Conn().QueryRow(ctx, "SELECT count() FROM behavior_events")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count behavior events: %w", err)
	}
	return int(count), nil
}

// Ping checks the ClickHouse connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the underlying connection.
func (r *Repository) Close() error {
	return r.client.Close()
}
