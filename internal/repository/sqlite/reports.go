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

// ReportStore implements repository.ReportRepository on SQLite.
type ReportStore struct {
	db *DB
}

// NewReportStore creates a report store over an open database.
func NewReportStore(db *DB) *ReportStore {
	return &ReportStore{db: db}
}

const reportColumns = "id, title, type, status, format, project_ids, metrics, generated_at, file_path"

func scanReport(row interface{ Scan(...interface{}) error }) (*domain.Report, error) {
	var (
		report      domain.Report
		projectIDs  string
		metrics     string
		generatedAt sql.NullInt64
	)
	err := row.Scan(&report.ID, &report.Title, &report.Type, &report.Status,
		&report.Format, &projectIDs, &metrics, &generatedAt, &report.FilePath)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(projectIDs), &report.ProjectIDs); err != nil {
		return nil, fmt.Errorf("unmarshal project_ids: %w", err)
	}
	if err := json.Unmarshal([]byte(metrics), &report.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	if generatedAt.Valid {
		t := time.UnixMilli(generatedAt.Int64)
		report.GeneratedAt = &t
	}
	return &report, nil
}

// List returns all reports in creation order.
func (s *ReportStore) List(ctx context.Context) ([]*domain.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+reportColumns+" FROM reports ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// Get returns one report by id.
func (s *ReportStore) Get(ctx context.Context, id string) (*domain.Report, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM reports WHERE id = ?", id)
	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}
	return report, nil
}

// Create stores a new report.
func (s *ReportStore) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	stored := *report
	if stored.ProjectIDs == nil {
		stored.ProjectIDs = []string{}
	}
	if stored.Metrics == nil {
		stored.Metrics = map[string]interface{}{}
	}

	projectIDs, err := json.Marshal(stored.ProjectIDs)
	if err != nil {
		return nil, fmt.Errorf("marshal project_ids: %w", err)
	}
	metrics, err := json.Marshal(stored.Metrics)
	if err != nil {
		return nil, fmt.Errorf("marshal metrics: %w", err)
	}

	var generatedAt interface{}
	if stored.GeneratedAt != nil {
		generatedAt = stored.GeneratedAt.UnixMilli()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, title, type, status, format, project_ids, metrics, generated_at, file_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.ID, stored.Title, stored.Type, stored.Status, stored.Format,
		string(projectIDs), string(metrics), generatedAt, stored.FilePath,
		time.Now().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return &stored, nil
}

// Update applies a partial update and returns the updated report.
func (s *ReportStore) Update(ctx context.Context, id string, update repository.ReportUpdate) (*domain.Report, error) {
	var (
		sets []string
		args []interface{}
	)
	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *update.Status)
	}
	if update.FilePath != nil {
		sets = append(sets, "file_path = ?")
		args = append(args, *update.FilePath)
	}
	if update.Metrics != nil {
		metrics, err := json.Marshal(update.Metrics)
		if err != nil {
			return nil, fmt.Errorf("marshal metrics: %w", err)
		}
		sets = append(sets, "metrics = ?")
		args = append(args, string(metrics))
	}
	if update.GeneratedAt != nil && *update.GeneratedAt {
		sets = append(sets, "generated_at = ?")
		args = append(args, time.Now().UnixMilli())
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := s.db.ExecContext(ctx,
			"UPDATE reports SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, fmt.Errorf("update report %s: %w", id, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("update report %s: %w", id, err)
		}
		if affected == 0 {
			return nil, repository.ErrNotFound
		}
	}

	return s.Get(ctx, id)
}
