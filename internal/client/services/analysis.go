package services

import (
	"context"
	"fmt"
	"time"

	"github.com/orator-app/orator-cli/internal/client/api"
	"github.com/orator-app/orator-cli/internal/client/models"
	"github.com/orator-app/orator-cli/internal/common"
	"github.com/orator-app/orator-cli/internal/logging"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultMaxAttempts  = 240 // ~20 minutes at the default interval
)

// PollOptions tune the job watcher. Zero values take the defaults above.
type PollOptions struct {
	Interval    time.Duration
	MaxAttempts int
	// OnProgress fires on every successful poll, terminal ones included.
	OnProgress func(models.AnalysisStatus)
}

// AnalysisService starts video-analysis jobs and watches them to completion.
type AnalysisService interface {
	Start(ctx context.Context, presentationID string) (string, error)
	// Await polls the job until a terminal state, the attempt bound, or ctx
	// cancellation. Cancelling ctx stops the loop before the next poll; no
	// further network calls are made.
	Await(ctx context.Context, jobID string, opts PollOptions) (*models.AnalysisResult, error)

	Results(ctx context.Context, jobID string) (*models.AnalysisResult, error)
	HasResults(ctx context.Context, jobID string) (bool, error)
	STTResult(ctx context.Context, jobID string) (*models.STTResult, error)
	VoiceAnalysis(ctx context.Context, jobID string) (*models.VoiceAnalysis, error)
	Feedback(ctx context.Context, jobID string) ([]string, error)
}

type analysisService struct {
	client api.Client
	log    logging.Logger
}

func NewAnalysisService(client api.Client, log logging.Logger) AnalysisService {
	return &analysisService{client: client, log: log}
}

func (s *analysisService) Start(ctx context.Context, presentationID string) (string, error) {
	jobID, err := s.client.StartAnalysis(ctx, presentationID)
	if err != nil {
		if api.IsAuth(err) {
			return "", common.ErrNeedLogin
		}
		return "", fmt.Errorf("starting analysis: %w", err)
	}
	return jobID, nil
}

func (s *analysisService) Await(ctx context.Context, jobID string, opts PollOptions) (*models.AnalysisResult, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		status, err := s.client.AnalysisStatus(ctx, jobID)
		switch {
		case err == nil:
			if opts.OnProgress != nil {
				opts.OnProgress(*status)
			}
			switch status.State {
			case models.AnalysisStateCompleted:
				return s.Results(ctx, jobID)
			case models.AnalysisStateFailed, models.AnalysisStateError:
				if status.Message != "" {
					return nil, fmt.Errorf("%w: %s", common.ErrAnalysisFailed, status.Message)
				}
				return nil, common.ErrAnalysisFailed
			}
		case api.IsConnectivity(err) || api.IsTimeout(err):
			// transient; a 20-minute watch survives a dropped poll
			s.log.Warn(ctx, "analysis poll failed", "job", jobID, "attempt", attempt, "error", err)
		default:
			return nil, fmt.Errorf("polling analysis: %w", err)
		}

		if attempt >= maxAttempts {
			return nil, common.ErrAnalysisTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *analysisService) Results(ctx context.Context, jobID string) (*models.AnalysisResult, error) {
	res, err := s.client.AnalysisResults(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("fetching analysis results: %w", err)
	}
	return res, nil
}

func (s *analysisService) HasResults(ctx context.Context, jobID string) (bool, error) {
	return s.client.HasAnalysisResults(ctx, jobID)
}

func (s *analysisService) STTResult(ctx context.Context, jobID string) (*models.STTResult, error) {
	return s.client.STTResult(ctx, jobID)
}

func (s *analysisService) VoiceAnalysis(ctx context.Context, jobID string) (*models.VoiceAnalysis, error) {
	return s.client.VoiceAnalysis(ctx, jobID)
}

func (s *analysisService) Feedback(ctx context.Context, jobID string) ([]string, error) {
	return s.client.Feedback(ctx, jobID)
}
