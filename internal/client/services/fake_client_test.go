package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orator-app/orator-cli/internal/client/api"
	"github.com/orator-app/orator-cli/internal/client/models"
	"github.com/orator-app/orator-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- test fixtures ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
CREATE TABLE IF NOT EXISTS topics (
  id                 TEXT PRIMARY KEY,
  title              TEXT NOT NULL,
  owner_id           TEXT NOT NULL DEFAULT '',
  is_team_topic      INTEGER NOT NULL DEFAULT 0,
  team_id            TEXT NOT NULL DEFAULT '',
  presentation_count INTEGER NOT NULL DEFAULT 0,
  created_at         TEXT NOT NULL,
  is_local           INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS presentations (
  id         TEXT PRIMARY KEY,
  topic_id   TEXT NOT NULL,
  title      TEXT NOT NULL,
  script     TEXT NOT NULL DEFAULT '',
  goal_time  INTEGER NOT NULL DEFAULT 0,
  video_url  TEXT NOT NULL DEFAULT '',
  duration   INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  is_local   INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)
	return db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fixedIdentity satisfies Identity with a constant email.
type fixedIdentity struct{ email string }

func (f fixedIdentity) UserEmail(ctx context.Context) (string, error) { return f.email, nil }

func connectivityErr() error {
	return &api.Error{Kind: api.KindNetworkUnavailable}
}

func authErr() error {
	return &api.Error{Kind: api.KindHTTPStatus, Status: 401}
}

// ---- fake api.Client ----

// fakeClient implements api.Client for service tests. Unset fields mean
// "succeed with the zero value".
type fakeClient struct {
	listTopicsRet []models.Topic
	listTopicsErr error

	createTopicRet *models.Topic
	createTopicErr error

	updateTopicRet *models.Topic
	updateTopicErr error

	deleteTopicErr error

	listPresRet []models.Presentation
	listPresErr error

	createPresRet *models.Presentation
	createPresErr error

	updatePresRet *models.Presentation
	updatePresErr error

	deletePresErr error

	uploadRet *models.Presentation
	uploadErr error

	startRet string
	startErr error

	// statusFn decides each poll's answer; call numbers start at 1.
	statusFn    func(call int) (*models.AnalysisStatus, error)
	statusCalls atomic.Int32

	resultsRet *models.AnalysisResult
	resultsErr error

	// recorded arguments
	lastUpdateTopicID string
	lastDeleteTopicID string
	lastUpdatePresID  string
	lastDeletePresID  string
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	return "", nil
}

func (f *fakeClient) Signup(ctx context.Context, email, name string, password []byte) (string, error) {
	return "", nil
}

func (f *fakeClient) SendCode(ctx context.Context, email string) error          { return nil }
func (f *fakeClient) VerifyEmail(ctx context.Context, email, code string) error { return nil }
func (f *fakeClient) RequestPasswordReset(ctx context.Context, email string) error {
	return nil
}

func (f *fakeClient) VerifyPasswordReset(ctx context.Context, email, code string) (string, error) {
	return "", nil
}

func (f *fakeClient) ConfirmPasswordReset(ctx context.Context, resetToken string, newPassword []byte) error {
	return nil
}

func (f *fakeClient) Refresh(ctx context.Context, email string) (string, error) { return "", nil }
func (f *fakeClient) Logout(ctx context.Context) error                          { return nil }
func (f *fakeClient) Ping(ctx context.Context) error                            { return nil }

func (f *fakeClient) ListTopics(ctx context.Context) ([]models.Topic, error) {
	return f.listTopicsRet, f.listTopicsErr
}

func (f *fakeClient) CreateTopic(ctx context.Context, title string, isTeamTopic bool, teamID string) (*models.Topic, error) {
	return f.createTopicRet, f.createTopicErr
}

func (f *fakeClient) UpdateTopic(ctx context.Context, id string, patch models.TopicPatch) (*models.Topic, error) {
	f.lastUpdateTopicID = id
	return f.updateTopicRet, f.updateTopicErr
}

func (f *fakeClient) DeleteTopic(ctx context.Context, id string) error {
	f.lastDeleteTopicID = id
	return f.deleteTopicErr
}

func (f *fakeClient) ListPresentations(ctx context.Context, topicID string) ([]models.Presentation, error) {
	return f.listPresRet, f.listPresErr
}

func (f *fakeClient) CreatePresentation(ctx context.Context, p *models.Presentation) (*models.Presentation, error) {
	return f.createPresRet, f.createPresErr
}

func (f *fakeClient) UpdatePresentation(ctx context.Context, id string, patch models.PresentationPatch) (*models.Presentation, error) {
	f.lastUpdatePresID = id
	return f.updatePresRet, f.updatePresErr
}

func (f *fakeClient) DeletePresentation(ctx context.Context, id string) error {
	f.lastDeletePresID = id
	return f.deletePresErr
}

func (f *fakeClient) UploadVideo(ctx context.Context, presentationID, filename string, video io.Reader) (*models.Presentation, error) {
	return f.uploadRet, f.uploadErr
}

func (f *fakeClient) StartAnalysis(ctx context.Context, presentationID string) (string, error) {
	return f.startRet, f.startErr
}

func (f *fakeClient) AnalysisStatus(ctx context.Context, jobID string) (*models.AnalysisStatus, error) {
	call := int(f.statusCalls.Add(1))
	if f.statusFn != nil {
		return f.statusFn(call)
	}
	return &models.AnalysisStatus{JobID: jobID, State: models.AnalysisStatePending}, nil
}

func (f *fakeClient) AnalysisProgress(ctx context.Context, jobID string) (int, error) {
	return 0, nil
}

func (f *fakeClient) AnalysisResults(ctx context.Context, jobID string) (*models.AnalysisResult, error) {
	return f.resultsRet, f.resultsErr
}

func (f *fakeClient) HasAnalysisResults(ctx context.Context, jobID string) (bool, error) {
	return f.resultsRet != nil, nil
}

func (f *fakeClient) STTResult(ctx context.Context, jobID string) (*models.STTResult, error) {
	return &models.STTResult{JobID: jobID}, nil
}

func (f *fakeClient) VoiceAnalysis(ctx context.Context, jobID string) (*models.VoiceAnalysis, error) {
	return &models.VoiceAnalysis{JobID: jobID}, nil
}

func (f *fakeClient) Feedback(ctx context.Context, jobID string) ([]string, error) {
	return nil, nil
}

func (f *fakeClient) Close() error { return nil }
