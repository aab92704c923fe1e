package services

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orator-app/orator-cli/internal/client/models"
	"github.com/orator-app/orator-cli/internal/client/repositories/presentations"
	"github.com/orator-app/orator-cli/internal/client/repositories/topics"
	"github.com/orator-app/orator-cli/internal/common"
)

func newPresentationService(t *testing.T, client *fakeClient) (PresentationService, *sql.DB) {
	t.Helper()
	db := setupDB(t)
	return NewPresentationService(client, db, testLogger()), db
}

func seedTopic(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	topic := serverTopic(id)
	require.NoError(t, topics.NewSQLiteRepository(db).Upsert(context.Background(), &topic))
}

func TestPresentationCreate_RemoteSuccessBumpsMirrorCount(t *testing.T) {
	ctx := context.Background()
	created := &models.Presentation{ID: "p1", TopicID: "t1", Title: "Dry run", CreatedAt: time.Now().UTC()}
	client := &fakeClient{createPresRet: created}
	svc, db := newPresentationService(t, client)
	seedTopic(t, db, "t1")

	p, isLocal, err := svc.Create(ctx, "t1", "Dry run", "", 300)
	require.NoError(t, err)
	require.False(t, isLocal)
	require.Equal(t, "p1", p.ID)

	topic, err := topics.NewSQLiteRepository(db).GetByID(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, 1, topic.PresentationCount)
}

func TestPresentationCreate_Offline(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{createPresErr: connectivityErr(), listPresErr: connectivityErr()}
	svc, db := newPresentationService(t, client)
	seedTopic(t, db, "t1")

	p, isLocal, err := svc.Create(ctx, "t1", "Offline take", "script", 120)
	require.NoError(t, err)
	require.True(t, isLocal)
	require.True(t, p.IsLocal)
	require.True(t, strings.HasPrefix(p.ID, common.LocalIDPrefix))

	// visible in a subsequent offline list
	items, isLocal, err := svc.List(ctx, "t1")
	require.NoError(t, err)
	require.True(t, isLocal)
	require.Len(t, items, 1)
	require.Equal(t, p.ID, items[0].ID)

	topic, err := topics.NewSQLiteRepository(db).GetByID(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, 1, topic.PresentationCount)
}

func TestPresentationUpdate_OfflineUnknownIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{updatePresErr: connectivityErr()}
	svc, _ := newPresentationService(t, client)

	title := "retitled"
	_, _, err := svc.Update(ctx, "ghost", models.PresentationPatch{Title: &title})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestPresentationUpdate_OfflineMergesPatch(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{updatePresErr: connectivityErr()}
	svc, db := newPresentationService(t, client)

	seed := models.Presentation{ID: "p1", TopicID: "t1", Title: "Take 1", Script: "hello", GoalTime: 300, CreatedAt: time.Now().UTC()}
	require.NoError(t, presentations.NewSQLiteRepository(db).Upsert(ctx, &seed))

	goal := 180
	p, isLocal, err := svc.Update(ctx, "p1", models.PresentationPatch{GoalTime: &goal})
	require.NoError(t, err)
	require.True(t, isLocal)
	require.Equal(t, 180, p.GoalTime)
	// untouched fields survive the merge
	require.Equal(t, "Take 1", p.Title)
	require.Equal(t, "hello", p.Script)
	require.True(t, p.IsLocal)
}

func TestPresentationDelete_OfflineDecrementsCount(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{deletePresErr: connectivityErr()}
	svc, db := newPresentationService(t, client)
	seedTopic(t, db, "t1")

	topicRepo := topics.NewSQLiteRepository(db)
	require.NoError(t, topicRepo.AdjustPresentationCount(ctx, "t1", 2))

	seed := models.Presentation{ID: "p1", TopicID: "t1", Title: "Take 1", CreatedAt: time.Now().UTC()}
	require.NoError(t, presentations.NewSQLiteRepository(db).Upsert(ctx, &seed))

	isLocal, err := svc.Delete(ctx, "p1")
	require.NoError(t, err)
	require.True(t, isLocal)

	_, err = presentations.NewSQLiteRepository(db).GetByID(ctx, "p1")
	require.ErrorIs(t, err, common.ErrNotFound)

	topic, err := topicRepo.GetByID(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, 1, topic.PresentationCount)
}

func TestPresentationList_AuthFailureIsNeverMasked(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{listPresErr: authErr()}
	svc, _ := newPresentationService(t, client)

	_, _, err := svc.List(ctx, "t1")
	require.ErrorIs(t, err, common.ErrNeedLogin)
}

func TestAttachVideo_NoOfflinePath(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{uploadErr: connectivityErr()}
	svc, _ := newPresentationService(t, client)

	_, err := svc.AttachVideo(ctx, "p1", "take.mp4", strings.NewReader("bytes"))
	require.Error(t, err)
}

func TestAttachVideo_SuccessRefreshesMirror(t *testing.T) {
	ctx := context.Background()
	updated := &models.Presentation{
		ID: "p1", TopicID: "t1", Title: "Take 1",
		VideoURL: "https://cdn.example.com/p1.mp4", Duration: 92,
		CreatedAt: time.Now().UTC(),
	}
	client := &fakeClient{uploadRet: updated}
	svc, db := newPresentationService(t, client)

	p, err := svc.AttachVideo(ctx, "p1", "take.mp4", strings.NewReader("bytes"))
	require.NoError(t, err)
	require.Equal(t, 92, p.Duration)

	mirrored, err := presentations.NewSQLiteRepository(db).GetByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/p1.mp4", mirrored.VideoURL)
}
