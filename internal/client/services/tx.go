package services

import (
	"context"
	"database/sql"

	"github.com/orator-app/orator-cli/internal/client/repositories/presentations"
	"github.com/orator-app/orator-cli/internal/client/repositories/topics"
	"github.com/orator-app/orator-cli/internal/dbx"
)

// dbxWithTx runs fn with both mirror repositories bound to one transaction.
func dbxWithTx(ctx context.Context, db *sql.DB,
	fn func(ctx context.Context, presRepo presentations.Repository, topicRepo topics.Repository) error) error {
	return dbx.WithTx(ctx, db, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, presentations.NewSQLiteRepository(tx), topics.NewSQLiteRepository(tx))
	})
}
