package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orator-app/orator-cli/internal/client/models"
	"github.com/orator-app/orator-cli/internal/common"
)

func pollFast(maxAttempts int, onProgress func(models.AnalysisStatus)) PollOptions {
	return PollOptions{Interval: time.Millisecond, MaxAttempts: maxAttempts, OnProgress: onProgress}
}

func TestAwait_ResolvesOnCompleted(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		statusFn: func(call int) (*models.AnalysisStatus, error) {
			st := &models.AnalysisStatus{JobID: "j1", State: models.AnalysisStatePending, Progress: call * 30}
			if call == 3 {
				st.State = models.AnalysisStateCompleted
				st.Progress = 100
			}
			return st, nil
		},
		resultsRet: &models.AnalysisResult{JobID: "j1", Summary: "good pacing"},
	}
	svc := NewAnalysisService(client, testLogger())

	var progress []int
	res, err := svc.Await(ctx, "j1", pollFast(10, func(st models.AnalysisStatus) {
		progress = append(progress, st.Progress)
	}))
	require.NoError(t, err)
	require.Equal(t, "good pacing", res.Summary)
	// the callback fires on every poll, the terminal one included
	require.Equal(t, []int{30, 60, 100}, progress)
	require.Equal(t, int32(3), client.statusCalls.Load())
}

func TestAwait_TimesOutAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{} // default statusFn answers pending forever
	svc := NewAnalysisService(client, testLogger())

	_, err := svc.Await(ctx, "j1", pollFast(5, nil))
	require.ErrorIs(t, err, common.ErrAnalysisTimeout)
	// the attempt bound is exact: no poll past the last permitted one
	require.Equal(t, int32(5), client.statusCalls.Load())
}

func TestAwait_FailedStateSurfacesJobError(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		statusFn: func(call int) (*models.AnalysisStatus, error) {
			return &models.AnalysisStatus{JobID: "j1", State: models.AnalysisStateFailed, Message: "no audio track"}, nil
		},
	}
	svc := NewAnalysisService(client, testLogger())

	_, err := svc.Await(ctx, "j1", pollFast(10, nil))
	require.ErrorIs(t, err, common.ErrAnalysisFailed)
	require.Contains(t, err.Error(), "no audio track")
	require.Equal(t, int32(1), client.statusCalls.Load())
}

func TestAwait_TransientPollErrorsKeepPolling(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		statusFn: func(call int) (*models.AnalysisStatus, error) {
			if call < 3 {
				return nil, connectivityErr()
			}
			return &models.AnalysisStatus{JobID: "j1", State: models.AnalysisStateCompleted}, nil
		},
		resultsRet: &models.AnalysisResult{JobID: "j1"},
	}
	svc := NewAnalysisService(client, testLogger())

	res, err := svc.Await(ctx, "j1", pollFast(10, nil))
	require.NoError(t, err)
	require.Equal(t, "j1", res.JobID)
	require.Equal(t, int32(3), client.statusCalls.Load())
}

func TestAwait_AuthErrorAborts(t *testing.T) {
	ctx := context.Background()
	client := &fakeClient{
		statusFn: func(call int) (*models.AnalysisStatus, error) {
			return nil, authErr()
		},
	}
	svc := NewAnalysisService(client, testLogger())

	_, err := svc.Await(ctx, "j1", pollFast(10, nil))
	require.Error(t, err)
	require.Equal(t, int32(1), client.statusCalls.Load())
}

func TestAwait_CancelStopsBetweenPolls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{
		statusFn: func(call int) (*models.AnalysisStatus, error) {
			cancel()
			return &models.AnalysisStatus{JobID: "j1", State: models.AnalysisStatePending}, nil
		},
	}
	svc := NewAnalysisService(client, testLogger())

	_, err := svc.Await(ctx, "j1", PollOptions{Interval: time.Hour, MaxAttempts: 10})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int32(1), client.statusCalls.Load())
}

func TestStart_AuthFailureNeedsLogin(t *testing.T) {
	client := &fakeClient{startErr: authErr()}
	svc := NewAnalysisService(client, testLogger())

	_, err := svc.Start(context.Background(), "p1")
	require.ErrorIs(t, err, common.ErrNeedLogin)
}
