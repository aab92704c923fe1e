package presentations

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

func (r *SQLiteRepository) Upsert(ctx context.Context, p *models.Presentation) error {
	query := `INSERT INTO presentations (id, topic_id, title, script, goal_time, video_url, duration, created_at, is_local)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET topic_id = excluded.topic_id,
				title = excluded.title,
				script = excluded.script,
				goal_time = excluded.goal_time,
				video_url = excluded.video_url,
				duration = excluded.duration,
				is_local = excluded.is_local
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.TopicID, p.Title, p.Script, p.GoalTime, p.VideoURL,
		p.Duration, p.CreatedAt.UTC().Format(time.RFC3339Nano), p.IsLocal)
	if err != nil {
		return fmt.Errorf("failed to upsert presentation: %w", err)
	}
	return nil
}

const presentationColumns = `id, topic_id, title, script, goal_time, video_url, duration, created_at, is_local`

func scanPresentation(row interface{ Scan(...any) error }) (*models.Presentation, error) {
	var p models.Presentation
	var createdAt string
	if err := row.Scan(&p.ID, &p.TopicID, &p.Title, &p.Script, &p.GoalTime,
		&p.VideoURL, &p.Duration, &createdAt, &p.IsLocal); err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse presentation created_at: %w", err)
	}
	p.CreatedAt = ts
	return &p, nil
}

// GetByID returns the presentation or common.ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Presentation, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+presentationColumns+` FROM presentations WHERE id = ?`, id)
	p, err := scanPresentation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select presentation: %w", err)
	}
	return p, nil
}

// ListByTopic lists the topic's presentations, newest first.
func (r *SQLiteRepository) ListByTopic(ctx context.Context, topicID string) ([]models.Presentation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+presentationColumns+` FROM presentations WHERE topic_id = ? ORDER BY created_at DESC`, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to select presentations: %w", err)
	}
	defer rows.Close()

	var result []models.Presentation
	for rows.Next() {
		p, err := scanPresentation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM presentations WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete presentation: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByTopic(ctx context.Context, topicID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM presentations WHERE topic_id = ?`, topicID); err != nil {
		return fmt.Errorf("failed to delete presentations for topic: %w", err)
	}
	return nil
}
