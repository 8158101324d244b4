package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/issamHaimour5/ReportPilot-1/internal/domain"
	"github.com/issamHaimour5/ReportPilot-1/internal/repository"
)

// IntegrationStore implements repository.IntegrationRepository on SQLite.
type IntegrationStore struct {
	db *DB
}

// NewIntegrationStore creates an integration store over an open database.
func NewIntegrationStore(db *DB) *IntegrationStore {
	return &IntegrationStore{db: db}
}

// List returns all integrations.
func (s *IntegrationStore) List(ctx context.Context) ([]*domain.Integration, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, type, status, api_key, config, last_sync FROM integrations ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	defer rows.Close()

	var integrations []*domain.Integration
	for rows.Next() {
		var (
			integration domain.Integration
			configJSON  string
			lastSync    sql.NullInt64
		)
		if err := rows.Scan(&integration.ID, &integration.Name, &integration.Type,
			&integration.Status, &integration.APIKey, &configJSON, &lastSync); err != nil {
			return nil, fmt.Errorf("scan integration: %w", err)
		}
		if err := json.Unmarshal([]byte(configJSON), &integration.Config); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
		if lastSync.Valid {
			t := time.UnixMilli(lastSync.Int64)
			integration.LastSync = &t
		}
		integrations = append(integrations, &integration)
	}
	return integrations, rows.Err()
}

// Create stores a new integration.
func (s *IntegrationStore) Create(ctx context.Context, integration *domain.Integration) (*domain.Integration, error) {
	stored := *integration
	if stored.Config == nil {
		stored.Config = map[string]interface{}{}
	}
	if stored.Status == "" {
		stored.Status = "active"
	}

	configJSON, err := json.Marshal(stored.Config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	var lastSync interface{}
	if stored.LastSync != nil {
		lastSync = stored.LastSync.UnixMilli()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO integrations (id, name, type, status, api_key, config, last_sync)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.Name, stored.Type, stored.Status, stored.APIKey,
		string(configJSON), lastSync)
	if err != nil {
		return nil, fmt.Errorf("create integration: %w", err)
	}
	return &stored, nil
}

// Update replaces a stored integration.
func (s *IntegrationStore) Update(ctx context.Context, integration *domain.Integration) (*domain.Integration, error) {
	configJSON, err := json.Marshal(integration.Config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	var lastSync interface{}
	if integration.LastSync != nil {
		lastSync = integration.LastSync.UnixMilli()
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE integrations SET name = ?, type = ?, status = ?, api_key = ?, config = ?, last_sync = ?
		WHERE id = ?`,
		integration.Name, integration.Type, integration.Status,
		integration.APIKey, string(configJSON), lastSync, integration.ID)
	if err != nil {
		return nil, fmt.Errorf("update integration %s: %w", integration.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update integration %s: %w", integration.ID, err)
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}

	stored := *integration
	return &stored, nil
}
