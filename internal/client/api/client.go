// Package api is the REST client for the Orator backend. It owns the HTTP
// transport, the bearer-token middleware, and the normalization of every
// transport failure into the closed Error type.
package api

import (
	"context"
	"io"

	"github.com/orator-app/orator-cli/internal/client/models"
)

// Client is the remote API surface the services depend on. Methods return
// errors already normalized to *api.Error (match with the Is* predicates).
type Client interface {
	// Credential and registration flows.
	Login(ctx context.Context, email string, password []byte) (string, error)
	Signup(ctx context.Context, email, name string, password []byte) (string, error)
	SendCode(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, code string) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyPasswordReset(ctx context.Context, email, code string) (string, error)
	ConfirmPasswordReset(ctx context.Context, resetToken string, newPassword []byte) error

	// Session lifecycle. Refresh is keyed by the account email, not by
	// presenting the expiring token.
	Refresh(ctx context.Context, email string) (string, error)
	Logout(ctx context.Context) error

	// Liveness probe for the online-status watcher.
	Ping(ctx context.Context) error

	// Topic CRUD.
	ListTopics(ctx context.Context) ([]models.Topic, error)
	CreateTopic(ctx context.Context, title string, isTeamTopic bool, teamID string) (*models.Topic, error)
	UpdateTopic(ctx context.Context, id string, patch models.TopicPatch) (*models.Topic, error)
	DeleteTopic(ctx context.Context, id string) error

	// Presentation CRUD and video attachment.
	ListPresentations(ctx context.Context, topicID string) ([]models.Presentation, error)
	CreatePresentation(ctx context.Context, p *models.Presentation) (*models.Presentation, error)
	UpdatePresentation(ctx context.Context, id string, patch models.PresentationPatch) (*models.Presentation, error)
	DeletePresentation(ctx context.Context, id string) error
	UploadVideo(ctx context.Context, presentationID, filename string, video io.Reader) (*models.Presentation, error)

	// Video-analysis job control and result retrieval.
	StartAnalysis(ctx context.Context, presentationID string) (string, error)
	AnalysisStatus(ctx context.Context, jobID string) (*models.AnalysisStatus, error)
	AnalysisProgress(ctx context.Context, jobID string) (int, error)
	AnalysisResults(ctx context.Context, jobID string) (*models.AnalysisResult, error)
	HasAnalysisResults(ctx context.Context, jobID string) (bool, error)
	STTResult(ctx context.Context, jobID string) (*models.STTResult, error)
	VoiceAnalysis(ctx context.Context, jobID string) (*models.VoiceAnalysis, error)
	Feedback(ctx context.Context, jobID string) ([]string, error)

	Close() error
}
