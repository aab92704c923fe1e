package topics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/orator-app/orator-cli/internal/client/models"
	"github.com/orator-app/orator-cli/internal/common"
	"github.com/orator-app/orator-cli/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Upsert inserts a topic by id or replaces all mutable columns on conflict.
func (r *SQLiteRepository) Upsert(ctx context.Context, t *models.Topic) error {
	query := `INSERT INTO topics (id, title, owner_id, is_team_topic, team_id, presentation_count, created_at, is_local)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET title = excluded.title,
				owner_id = excluded.owner_id,
				is_team_topic = excluded.is_team_topic,
				team_id = excluded.team_id,
				presentation_count = excluded.presentation_count,
				is_local = excluded.is_local
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Title, t.OwnerID, t.IsTeamTopic, t.TeamID,
		t.PresentationCount, t.CreatedAt.UTC().Format(time.RFC3339Nano), t.IsLocal)
	if err != nil {
		return fmt.Errorf("failed to upsert topic: %w", err)
	}
	return nil
}

const topicColumns = `id, title, owner_id, is_team_topic, team_id, presentation_count, created_at, is_local`

func scanTopic(row interface{ Scan(...any) error }) (*models.Topic, error) {
	var t models.Topic
	var createdAt string
	if err := row.Scan(&t.ID, &t.Title, &t.OwnerID, &t.IsTeamTopic, &t.TeamID,
		&t.PresentationCount, &createdAt, &t.IsLocal); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse topic created_at: %w", err)
	}
	t.CreatedAt = ts
	return &t, nil
}

// GetByID returns the topic or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Topic, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+topicColumns+` FROM topics WHERE id = ?`, id)
	t, err := scanTopic(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select topic: %w", err)
	}
	return t, nil
}

// ListByOwner lists topics for an owner, newest first. An empty ownerID
// returns every mirrored topic.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Topic, error) {
	query := `SELECT ` + topicColumns + ` FROM topics`
	args := []any{}
	if ownerID != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select topics: %w", err)
	}
	defer rows.Close()

	var result []models.Topic
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByID removes a topic row. Deleting an absent id is not an error;
// cascade handling for dependent presentations is the service's concern.
func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	return nil
}

// AdjustPresentationCount shifts the derived presentation count, never below zero.
func (r *SQLiteRepository) AdjustPresentationCount(ctx context.Context, id string, delta int) error {
	query := `UPDATE topics SET presentation_count = MAX(presentation_count + ?, 0) WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, delta, id); err != nil {
		return fmt.Errorf("failed to adjust presentation count: %w", err)
	}
	return nil
}
