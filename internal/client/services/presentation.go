package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/orator-app/orator-cli/internal/client/api"
	"github.com/orator-app/orator-cli/internal/client/models"
	"github.com/orator-app/orator-cli/internal/client/repositories/presentations"
	"github.com/orator-app/orator-cli/internal/client/repositories/topics"
	"github.com/orator-app/orator-cli/internal/common"
	"github.com/orator-app/orator-cli/internal/logging"
)

// PresentationService is the local-first CRUD surface for presentations.
// Mirror writes keep the parent topic's derived presentation count in step.
type PresentationService interface {
	List(ctx context.Context, topicID string) ([]models.Presentation, bool, error)
	Create(ctx context.Context, topicID, title, script string, goalTime int) (*models.Presentation, bool, error)
	Update(ctx context.Context, id string, patch models.PresentationPatch) (*models.Presentation, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	// AttachVideo uploads a practice recording. There is no offline path for
	// binary uploads: connectivity failures surface to the caller.
	AttachVideo(ctx context.Context, id, filename string, video io.Reader) (*models.Presentation, error)
}

type presentationService struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger
	now    func() time.Time
}

func NewPresentationService(client api.Client, db *sql.DB, log logging.Logger) PresentationService {
	return &presentationService{client: client, db: db, log: log, now: time.Now}
}

func (s *presentationService) presRepo() presentations.Repository {
	return presentations.NewSQLiteRepository(s.db)
}

func (s *presentationService) List(ctx context.Context, topicID string) ([]models.Presentation, bool, error) {
	items, err := s.client.ListPresentations(ctx, topicID)
	if err == nil {
		s.mirrorPresentations(ctx, items)
		return items, false, nil
	}

	fallbackOK, cerr := classify(err)
	if !fallbackOK {
		return nil, false, fmt.Errorf("listing presentations: %w", cerr)
	}

	local, lerr := s.presRepo().ListByTopic(ctx, topicID)
	if lerr != nil {
		return nil, false, fmt.Errorf("reading presentation mirror: %w", lerr)
	}
	return local, true, nil
}

func (s *presentationService) mirrorPresentations(ctx context.Context, items []models.Presentation) {
	repo := s.presRepo()
	for i := range items {
		if err := repo.Upsert(ctx, &items[i]); err != nil {
			s.log.Warn(ctx, "presentation mirror write failed", "id", items[i].ID, "error", err)
			return
		}
	}
}

func (s *presentationService) Create(ctx context.Context, topicID, title, script string, goalTime int) (*models.Presentation, bool, error) {
	draft := &models.Presentation{TopicID: topicID, Title: title, Script: script, GoalTime: goalTime}

	created, err := s.client.CreatePresentation(ctx, draft)
	if err == nil {
		s.mirrorCreate(ctx, created)
		return created, false, nil
	}

	fallbackOK, cerr := classify(err)
	if !fallbackOK {
		return nil, false, fmt.Errorf("creating presentation: %w", cerr)
	}

	p := &models.Presentation{
		ID:        newLocalID(),
		TopicID:   topicID,
		Title:     title,
		Script:    script,
		GoalTime:  goalTime,
		CreatedAt: s.now().UTC(),
		IsLocal:   true,
	}
	if err := s.mirrorCreateTx(ctx, p); err != nil {
		return nil, false, fmt.Errorf("saving presentation offline: %w", err)
	}
	s.log.Info(ctx, "presentation saved offline", "id", p.ID)
	return p, true, nil
}

// mirrorCreate is the best-effort write-through for a server-created record.
func (s *presentationService) mirrorCreate(ctx context.Context, p *models.Presentation) {
	if err := s.mirrorCreateTx(ctx, p); err != nil {
		s.log.Warn(ctx, "presentation mirror write failed", "id", p.ID, "error", err)
	}
}

// mirrorCreateTx inserts the presentation and bumps the parent topic's
// derived count in one transaction.
func (s *presentationService) mirrorCreateTx(ctx context.Context, p *models.Presentation) error {
	return dbxWithTx(ctx, s.db, func(ctx context.Context, presRepo presentations.Repository, topicRepo topics.Repository) error {
		if err := presRepo.Upsert(ctx, p); err != nil {
			return err
		}
		return topicRepo.AdjustPresentationCount(ctx, p.TopicID, 1)
	})
}

func (s *presentationService) Update(ctx context.Context, id string, patch models.PresentationPatch) (*models.Presentation, bool, error) {
	updated, err := s.client.UpdatePresentation(ctx, id, patch)
	if err == nil {
		if merr := s.presRepo().Upsert(ctx, updated); merr != nil {
			s.log.Warn(ctx, "presentation mirror write failed", "id", id, "error", merr)
		}
		return updated, false, nil
	}

	fallbackOK, cerr := classify(err)
	if !fallbackOK {
		return nil, false, fmt.Errorf("updating presentation: %w", cerr)
	}

	repo := s.presRepo()
	existing, gerr := repo.GetByID(ctx, id)
	if gerr != nil {
		// unknown id: report not-found, never fabricate a record
		return nil, false, gerr
	}
	applyPresentationPatch(existing, patch)
	existing.IsLocal = true
	if err := repo.Upsert(ctx, existing); err != nil {
		return nil, false, fmt.Errorf("saving presentation offline: %w", err)
	}
	return existing, true, nil
}

func applyPresentationPatch(p *models.Presentation, patch models.PresentationPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Script != nil {
		p.Script = *patch.Script
	}
	if patch.GoalTime != nil {
		p.GoalTime = *patch.GoalTime
	}
	if patch.VideoURL != nil {
		p.VideoURL = *patch.VideoURL
	}
	if patch.Duration != nil {
		p.Duration = *patch.Duration
	}
}

func (s *presentationService) Delete(ctx context.Context, id string) (bool, error) {
	err := s.client.DeletePresentation(ctx, id)
	if err == nil {
		if merr := s.mirrorDelete(ctx, id); merr != nil && !errors.Is(merr, common.ErrNotFound) {
			s.log.Warn(ctx, "presentation mirror delete failed", "id", id, "error", merr)
		}
		return false, nil
	}

	fallbackOK, cerr := classify(err)
	if !fallbackOK {
		return false, fmt.Errorf("deleting presentation: %w", cerr)
	}

	if err := s.mirrorDelete(ctx, id); err != nil {
		return false, fmt.Errorf("deleting presentation offline: %w", err)
	}
	return true, nil
}

// mirrorDelete removes the row and decrements the parent's derived count.
// Looks the row up first to learn the parent topic.
func (s *presentationService) mirrorDelete(ctx context.Context, id string) error {
	existing, err := s.presRepo().GetByID(ctx, id)
	if err != nil {
		return err
	}
	return dbxWithTx(ctx, s.db, func(ctx context.Context, presRepo presentations.Repository, topicRepo topics.Repository) error {
		if err := presRepo.DeleteByID(ctx, id); err != nil {
			return err
		}
		return topicRepo.AdjustPresentationCount(ctx, existing.TopicID, -1)
	})
}

func (s *presentationService) AttachVideo(ctx context.Context, id, filename string, video io.Reader) (*models.Presentation, error) {
	updated, err := s.client.UploadVideo(ctx, id, filename, video)
	if err != nil {
		if api.IsAuth(err) {
			return nil, common.ErrNeedLogin
		}
		return nil, fmt.Errorf("uploading video: %w", err)
	}
	if merr := s.presRepo().Upsert(ctx, updated); merr != nil {
		s.log.Warn(ctx, "presentation mirror write failed", "id", id, "error", merr)
	}
	return updated, nil
}
