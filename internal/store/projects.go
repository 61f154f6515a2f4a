package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"trak/internal/models"
)

// StoreInfo summarizes the database for the info endpoint.
type StoreInfo struct {
	SchemaVersion int            `json:"schema_version"`
	TotalProjects int            `json:"total_projects"`
	StatusCounts  map[string]int `json:"status_counts"`
}

// ListProjects returns all projects, most recently updated first.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, start_date, end_date, status, items, created_at, updated_at
		FROM projects ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

// GetProject returns a project by id, or nil if absent.
func (s *Store) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, start_date, end_date, status, items, created_at, updated_at
		FROM projects WHERE id = ?
	`, id)
	project, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

// CreateProject inserts a project. A zero id lets SQLite assign one; a
// client-supplied id is kept, and a collision surfaces as a unique
// constraint error for the service layer to turn into a 409.
func (s *Store) CreateProject(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("project is required")
	}

	itemsJSON, err := encodeItems(project.Items)
	if err != nil {
		return err
	}

	if project.ID != 0 {
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO projects (id, name, description, start_date, end_date, status, items, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			project.ID, project.Name, nullIfEmpty(project.Description),
			nullIfEmpty(project.StartDate), nullIfEmpty(project.EndDate),
			project.Status, itemsJSON,
			formatTime(project.CreatedAt), formatTime(project.UpdatedAt),
		)
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (name, description, start_date, end_date, status, items, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		project.Name, nullIfEmpty(project.Description),
		nullIfEmpty(project.StartDate), nullIfEmpty(project.EndDate),
		project.Status, itemsJSON,
		formatTime(project.CreatedAt), formatTime(project.UpdatedAt),
	)
	if err != nil {
		return err
	}
	project.ID, err = result.LastInsertId()
	return err
}

// PutProject replaces the stored project, creating it when absent. The
// update path of the original silently no-ops on a missing id because
// UPDATE affects zero rows; upsert is the intended semantics.
func (s *Store) PutProject(ctx context.Context, project *models.Project) error {
	if project == nil {
		return fmt.Errorf("project is required")
	}
	if project.ID == 0 {
		return fmt.Errorf("project id is required")
	}

	itemsJSON, err := encodeItems(project.Items)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, start_date, end_date, status, items, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			status = excluded.status,
			items = excluded.items,
			updated_at = excluded.updated_at
	`,
		project.ID, project.Name, nullIfEmpty(project.Description),
		nullIfEmpty(project.StartDate), nullIfEmpty(project.EndDate),
		project.Status, itemsJSON,
		formatTime(project.CreatedAt), formatTime(project.UpdatedAt),
	)
	return err
}

// DeleteProject removes a project. Idempotent on a missing id.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	return err
}

// ReplaceAll swaps the whole project list in one transaction. Used by
// share-link apply and bulk import.
func (s *Store) ReplaceAll(ctx context.Context, projects []models.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM projects"); err != nil {
		return err
	}
	for i := range projects {
		project := &projects[i]
		var itemsJSON string
		itemsJSON, err = encodeItems(project.Items)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO projects (id, name, description, start_date, end_date, status, items, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			project.ID, project.Name, nullIfEmpty(project.Description),
			nullIfEmpty(project.StartDate), nullIfEmpty(project.EndDate),
			project.Status, itemsJSON,
			formatTime(project.CreatedAt), formatTime(project.UpdatedAt),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Info returns summary counts for the info endpoint.
func (s *Store) Info(ctx context.Context) (*StoreInfo, error) {
	info := &StoreInfo{StatusCounts: map[string]int{}}

	version, err := currentVersion(s.db)
	if err != nil {
		return nil, err
	}
	info.SchemaVersion = version

	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM projects GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		info.StatusCounts[status] = count
		info.TotalProjects += count
	}
	return info, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var project models.Project
	var description, startDate, endDate, itemsJSON sql.NullString
	var createdAt, updatedAt string

	err := row.Scan(
		&project.ID, &project.Name, &description, &startDate, &endDate,
		&project.Status, &itemsJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.Description = description.String
	project.StartDate = startDate.String
	project.EndDate = endDate.String
	project.CreatedAt = parseTime(createdAt)
	project.UpdatedAt = parseTime(updatedAt)

	project.Items, err = decodeItems(itemsJSON.String)
	if err != nil {
		return nil, fmt.Errorf("project %d: decode items: %w", project.ID, err)
	}

	return &project, nil
}

func encodeItems(items []models.WorkItem) (string, error) {
	if items == nil {
		items = []models.WorkItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// decodeItems parses the items column. Historical writers sometimes
// JSON-encoded the column twice, leaving a quoted string containing the
// real array; unwrap that layer before giving up.
func decodeItems(raw string) ([]models.WorkItem, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []models.WorkItem{}, nil
	}

	var items []models.WorkItem
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items, nil
	}

	var doubleEncoded string
	if err := json.Unmarshal([]byte(raw), &doubleEncoded); err == nil {
		if err := json.Unmarshal([]byte(doubleEncoded), &items); err == nil {
			return items, nil
		}
	}

	return nil, fmt.Errorf("malformed items column")
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
