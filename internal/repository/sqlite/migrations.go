package sqlite

import "fmt"

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "automation_rules: learned preference rules",
		SQL: `
CREATE TABLE automation_rules (
    id           TEXT PRIMARY KEY,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL,
    type         TEXT NOT NULL CHECK (type IN ('timing', 'format', 'priority', 'metrics')),
    condition    TEXT NOT NULL,
    action       TEXT NOT NULL,
    confidence   INTEGER NOT NULL DEFAULT 0 CHECK (confidence BETWEEN 0 AND 100),
    applications INTEGER NOT NULL DEFAULT 0 CHECK (applications >= 0),
    is_active    INTEGER NOT NULL DEFAULT 1,
    created_at   INTEGER NOT NULL
);

CREATE INDEX idx_rules_type ON automation_rules(type);
`,
	},
	{
		Version:     2,
		Description: "reports: generated project reports",
		SQL: `
CREATE TABLE reports (
    id           TEXT PRIMARY KEY,
    title        TEXT NOT NULL,
    type         TEXT NOT NULL,
    status       TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'generating', 'completed', 'failed')),
    format       TEXT NOT NULL DEFAULT 'pdf',
    project_ids  TEXT NOT NULL DEFAULT '[]',
    metrics      TEXT NOT NULL DEFAULT '{}',
    generated_at INTEGER,
    file_path    TEXT NOT NULL DEFAULT '',
    created_at   INTEGER NOT NULL
);

CREATE INDEX idx_reports_status ON reports(status);
`,
	},
	{
		Version:     3,
		Description: "projects, integrations, team_members: synced entities",
		SQL: `
CREATE TABLE projects (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    source       TEXT NOT NULL,
    source_id    TEXT NOT NULL,
    status       TEXT NOT NULL DEFAULT 'active',
    team_members TEXT NOT NULL DEFAULT '[]',
    metadata     TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE integrations (
    id        TEXT PRIMARY KEY,
    name      TEXT NOT NULL,
    type      TEXT NOT NULL,
    status    TEXT NOT NULL DEFAULT 'active',
    api_key   TEXT NOT NULL DEFAULT '',
    config    TEXT NOT NULL DEFAULT '{}',
    last_sync INTEGER
);

CREATE TABLE team_members (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    email       TEXT NOT NULL UNIQUE,
    initials    TEXT NOT NULL,
    role        TEXT NOT NULL,
    project_ids TEXT NOT NULL DEFAULT '[]'
);
`,
	},
}

func (db *DB) migrate() error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version     INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at  INTEGER NOT NULL DEFAULT (unixepoch())
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Description, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
			m.Version, m.Description); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}
