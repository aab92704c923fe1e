// Package topics provides the mirror repository for Topic records. The
// mirror is a best-effort fallback copy, never the source of truth.
package topics

import (
	"context"

	"github.com/orator-app/orator-cli/internal/client/models"
)

type Repository interface {
	// Upsert inserts or fully replaces a topic by id.
	Upsert(ctx context.Context, t *models.Topic) error
	GetByID(ctx context.Context, id string) (*models.Topic, error)
	// ListByOwner filters by owner; an empty ownerID lists everything.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Topic, error)
	DeleteByID(ctx context.Context, id string) error
	// AdjustPresentationCount shifts the derived count by delta, clamped at zero.
	AdjustPresentationCount(ctx context.Context, id string, delta int) error
}
