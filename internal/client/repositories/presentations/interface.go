// Package presentations provides the mirror repository for Presentation
// records.
package presentations

import (
	"context"

	"github.com/orator-app/orator-cli/internal/client/models"
)

type Repository interface {
	// Upsert inserts or fully replaces a presentation by id.
	Upsert(ctx context.Context, p *models.Presentation) error
	GetByID(ctx context.Context, id string) (*models.Presentation, error)
	ListByTopic(ctx context.Context, topicID string) ([]models.Presentation, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteByTopic removes every presentation under a topic; used by the
	// offline cascade when a topic is deleted.
	DeleteByTopic(ctx context.Context, topicID string) error
}
