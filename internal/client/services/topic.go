// Package services contains the application services of the Orator client:
// topic and presentation sync caches and the video-analysis watcher.
//
// The sync caches are remote-first. The local mirror is consulted only when
// the remote call fails with a connectivity-class error; auth failures are
// surfaced as common.ErrNeedLogin and never masked by the offline path.
// There is no reconciliation of offline writes back to the server — rows
// created or changed offline stay flagged is_local until the server copy
// overwrites them on a later successful fetch.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/orator-app/orator-cli/internal/client/api"
	"github.com/orator-app/orator-cli/internal/client/models"
	"github.com/orator-app/orator-cli/internal/client/repositories/presentations"
	"github.com/orator-app/orator-cli/internal/client/repositories/topics"
	"github.com/orator-app/orator-cli/internal/common"
	"github.com/orator-app/orator-cli/internal/dbx"
	"github.com/orator-app/orator-cli/internal/logging"
)

// Identity supplies the signed-in user's identifier for owner-scoped mirror
// queries. The auth manager satisfies it.
type Identity interface {
	UserEmail(ctx context.Context) (string, error)
}

// TopicService is the local-first CRUD surface for topics. The second return
// value of each operation reports whether the result came from (or was
// written to) the local mirror instead of the server.
type TopicService interface {
	List(ctx context.Context) ([]models.Topic, bool, error)
	Create(ctx context.Context, title string, isTeamTopic bool, teamID string) (*models.Topic, bool, error)
	Rename(ctx context.Context, id, title string) (*models.Topic, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type topicService struct {
	client   api.Client
	db       *sql.DB
	identity Identity
	log      logging.Logger
	now      func() time.Time
}

func NewTopicService(client api.Client, db *sql.DB, identity Identity, log logging.Logger) TopicService {
	return &topicService{client: client, db: db, identity: identity, log: log, now: time.Now}
}

func (s *topicService) topicRepo() topics.Repository {
	return topics.NewSQLiteRepository(s.db)
}

// classify turns a remote failure into the caller's view: ErrNeedLogin for
// auth problems, fallbackOK=true for connectivity problems, or the error
// itself for everything else.
func classify(err error) (fallbackOK bool, out error) {
	switch {
	case api.IsAuth(err):
		return false, common.ErrNeedLogin
	case api.IsConnectivity(err):
		return true, nil
	default:
		return false, err
	}
}

// List fetches topics from the server, falling back to the mirror when the
// server is unreachable.
func (s *topicService) List(ctx context.Context) ([]models.Topic, bool, error) {
	items, err := s.client.ListTopics(ctx)
	if err == nil {
		s.mirrorTopics(ctx, items)
		return items, false, nil
	}

	fallbackOK, cerr := classify(err)
	if !fallbackOK {
		return nil, false, fmt.Errorf("listing topics: %w", cerr)
	}

	owner, ierr := s.identity.UserEmail(ctx)
	if ierr != nil {
		s.log.Warn(ctx, "cannot resolve owner for mirror query", "error", ierr)
	}
	local, lerr := s.topicRepo().ListByOwner(ctx, owner)
	if lerr != nil {
		return nil, false, fmt.Errorf("reading topic mirror: %w", lerr)
	}
	return local, true, nil
}

// mirrorTopics is the best-effort write-through on the success path. Mirror
// write errors are logged, never surfaced: the server response is already
// the answer.
func (s *topicService) mirrorTopics(ctx context.Context, items []models.Topic) {
	repo := s.topicRepo()
	for i := range items {
		if err := repo.Upsert(ctx, &items[i]); err != nil {
			s.log.Warn(ctx, "topic mirror write failed", "id", items[i].ID, "error", err)
			return
		}
	}
}

func (s *topicService) Create(ctx context.Context, title string, isTeamTopic bool, teamID string) (*models.Topic, bool, error) {
	created, err := s.client.CreateTopic(ctx, title, isTeamTopic, teamID)
	if err == nil {
		if merr := s.topicRepo().Upsert(ctx, created); merr != nil {
			s.log.Warn(ctx, "topic mirror write failed", "id", created.ID, "error", merr)
		}
		return created, false, nil
	}

	fallbackOK, cerr := classify(err)
	if !fallbackOK {
		return nil, false, fmt.Errorf("creating topic: %w", cerr)
	}

	owner, _ := s.identity.UserEmail(ctx)
	topic := &models.Topic{
		ID:          newLocalID(),
		Title:       title,
		OwnerID:     owner,
		IsTeamTopic: isTeamTopic,
		TeamID:      teamID,
		CreatedAt:   s.now().UTC(),
		IsLocal:     true,
	}
	if err := s.topicRepo().Upsert(ctx, topic); err != nil {
		return nil, false, fmt.Errorf("saving topic offline: %w", err)
	}
	s.log.Info(ctx, "topic saved offline", "id", topic.ID)
	return topic, true, nil
}

func (s *topicService) Rename(ctx context.Context, id, title string) (*models.Topic, bool, error) {
	patch := models.TopicPatch{Title: &title}

	updated, err := s.client.UpdateTopic(ctx, id, patch)
	if err == nil {
		if merr := s.topicRepo().Upsert(ctx, updated); merr != nil {
			s.log.Warn(ctx, "topic mirror write failed", "id", id, "error", merr)
		}
		return updated, false, nil
	}

	fallbackOK, cerr := classify(err)
	if !fallbackOK {
		return nil, false, fmt.Errorf("renaming topic: %w", cerr)
	}

	repo := s.topicRepo()
	existing, gerr := repo.GetByID(ctx, id)
	if gerr != nil {
		// never fabricate a record for an unknown id
		return nil, false, gerr
	}
	existing.Title = title
	existing.IsLocal = true
	if err := repo.Upsert(ctx, existing); err != nil {
		return nil, false, fmt.Errorf("saving topic offline: %w", err)
	}
	return existing, true, nil
}

// Delete removes a topic. The offline path cascades to the topic's
// presentations held in the mirror, in one transaction.
func (s *topicService) Delete(ctx context.Context, id string) (bool, error) {
	err := s.client.DeleteTopic(ctx, id)
	if err == nil {
		if merr := s.deleteMirrored(ctx, id); merr != nil {
			s.log.Warn(ctx, "topic mirror delete failed", "id", id, "error", merr)
		}
		return false, nil
	}

	fallbackOK, cerr := classify(err)
	if !fallbackOK {
		return false, fmt.Errorf("deleting topic: %w", cerr)
	}

	if err := s.deleteMirrored(ctx, id); err != nil {
		return false, fmt.Errorf("deleting topic offline: %w", err)
	}
	return true, nil
}

func (s *topicService) deleteMirrored(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := presentations.NewSQLiteRepository(tx).DeleteByTopic(ctx, id); err != nil {
			return err
		}
		return topics.NewSQLiteRepository(tx).DeleteByID(ctx, id)
	})
}
