package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/orator-app/orator-cli/internal/client/models"
)

// Timeouts are the per-call budgets, grouped by operation class. Long-running
// operations (video upload, analysis kickoff) get a far larger budget than
// ordinary CRUD.
type Timeouts struct {
	Default time.Duration
	Auth    time.Duration
	Upload  time.Duration
}

// DefaultTimeouts mirrors the budgets the product has always shipped with.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Default: 5 * time.Second,
		Auth:    15 * time.Second,
		Upload:  120 * time.Second,
	}
}

// HTTPClient implements Client over net/http. The bearer middleware is wired
// into the transport at construction; nothing mutates the client afterwards.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	timeouts Timeouts
}

// NewHTTPClient builds the REST client. tokens may be nil for unauthenticated
// use (tests, the signup flow before a first login).
func NewHTTPClient(baseURL string, tokens TokenSource, timeouts Timeouts) *HTTPClient {
	if timeouts.Default <= 0 {
		timeouts = DefaultTimeouts()
	}
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Transport: newAuthTransport(nil, tokens)},
		timeouts: timeouts,
	}
}

// do performs one JSON round trip and normalizes every failure mode.
// A nil out discards the response body; a nil body sends no payload.
func (c *HTTPClient) do(ctx context.Context, timeout time.Duration, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var rd io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		rd = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.roundTrip(req, out)
}

// roundTrip executes the request and applies the one normalization boundary.
func (c *HTTPClient) roundTrip(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return normalizeTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return normalizeTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Kind: KindMalformed, Message: err.Error()}
		}
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// ---- credential and registration flows ----

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (string, error) {
	body := map[string]string{"email": email, "password": string(password)}
	var resp tokenResponse
	if err := c.do(ctx, c.timeouts.Auth, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Signup(ctx context.Context, email, name string, password []byte) (string, error) {
	body := map[string]string{"email": email, "name": name, "password": string(password)}
	var resp tokenResponse
	if err := c.do(ctx, c.timeouts.Auth, http.MethodPost, "/auth/signup", body, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// SendCode asks the backend to mail a verification code. A 5xx here is
// reported as success; the backend queues the mail before responding.
func (c *HTTPClient) SendCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	err := c.do(ctx, c.timeouts.Auth, http.MethodPost, "/auth/send-code", body, nil)
	if IsServerError(err) {
		return nil
	}
	return err
}

func (c *HTTPClient) VerifyEmail(ctx context.Context, email, code string) error {
	body := map[string]string{"email": email, "code": code}
	return c.do(ctx, c.timeouts.Auth, http.MethodPost, "/auth/verify-email", body, nil)
}

// RequestPasswordReset applies the same soft-success rule as SendCode.
func (c *HTTPClient) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	err := c.do(ctx, c.timeouts.Auth, http.MethodPost, "/auth/reset-password/request", body, nil)
	if IsServerError(err) {
		return nil
	}
	return err
}

func (c *HTTPClient) VerifyPasswordReset(ctx context.Context, email, code string) (string, error) {
	body := map[string]string{"email": email, "code": code}
	var resp struct {
		ResetToken string `json:"resetToken"`
	}
	if err := c.do(ctx, c.timeouts.Auth, http.MethodPost, "/auth/reset-password/verify", body, &resp); err != nil {
		return "", err
	}
	return resp.ResetToken, nil
}

func (c *HTTPClient) ConfirmPasswordReset(ctx context.Context, resetToken string, newPassword []byte) error {
	body := map[string]string{"resetToken": resetToken, "password": string(newPassword)}
	return c.do(ctx, c.timeouts.Auth, http.MethodPost, "/auth/reset-password/confirm", body, nil)
}

// ---- session lifecycle ----

func (c *HTTPClient) Refresh(ctx context.Context, email string) (string, error) {
	var resp tokenResponse
	path := "/api/oauth2/refresh?email=" + url.QueryEscape(email)
	if err := c.do(ctx, c.timeouts.Auth, http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, c.timeouts.Auth, http.MethodPost, "/api/oauth2/logout", nil, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, c.timeouts.Default, http.MethodGet, "/health", nil, nil)
}

// ---- topics ----

func (c *HTTPClient) ListTopics(ctx context.Context) ([]models.Topic, error) {
	var out []models.Topic
	if err := c.do(ctx, c.timeouts.Default, http.MethodGet, "/api/topics", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateTopic(ctx context.Context, title string, isTeamTopic bool, teamID string) (*models.Topic, error) {
	body := map[string]any{"title": title, "isTeamTopic": isTeamTopic}
	if teamID != "" {
		body["teamId"] = teamID
	}
	var out models.Topic
	if err := c.do(ctx, c.timeouts.Default, http.MethodPost, "/api/topics", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateTopic(ctx context.Context, id string, patch models.TopicPatch) (*models.Topic, error) {
	var out models.Topic
	if err := c.do(ctx, c.timeouts.Default, http.MethodPut, "/api/topics/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteTopic(ctx context.Context, id string) error {
	return c.do(ctx, c.timeouts.Default, http.MethodDelete, "/api/topics/"+url.PathEscape(id), nil, nil)
}

// ---- presentations ----

func (c *HTTPClient) ListPresentations(ctx context.Context, topicID string) ([]models.Presentation, error) {
	var out []models.Presentation
	path := "/api/presentations?topicId=" + url.QueryEscape(topicID)
	if err := c.do(ctx, c.timeouts.Default, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreatePresentation(ctx context.Context, p *models.Presentation) (*models.Presentation, error) {
	body := map[string]any{
		"topicId":  p.TopicID,
		"title":    p.Title,
		"script":   p.Script,
		"goalTime": p.GoalTime,
	}
	var out models.Presentation
	if err := c.do(ctx, c.timeouts.Default, http.MethodPost, "/api/presentations", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePresentation(ctx context.Context, id string, patch models.PresentationPatch) (*models.Presentation, error) {
	var out models.Presentation
	if err := c.do(ctx, c.timeouts.Default, http.MethodPut, "/api/presentations/"+url.PathEscape(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePresentation(ctx context.Context, id string) error {
	return c.do(ctx, c.timeouts.Default, http.MethodDelete, "/api/presentations/"+url.PathEscape(id), nil, nil)
}

// UploadVideo attaches a practice recording via multipart POST. The body is
// buffered so the auth middleware can replay it after a token refresh.
func (c *HTTPClient) UploadVideo(ctx context.Context, presentationID, filename string, video io.Reader) (*models.Presentation, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("video", filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, video); err != nil {
		return nil, fmt.Errorf("reading video: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing multipart body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Upload)
	defer cancel()

	path := c.baseURL + "/api/presentations/" + url.PathEscape(presentationID) + "/video"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out models.Presentation
	if err := c.roundTrip(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---- video analysis ----

func (c *HTTPClient) StartAnalysis(ctx context.Context, presentationID string) (string, error) {
	var resp struct {
		JobID string `json:"jobId"`
	}
	path := "/api/video-analysis/" + url.PathEscape(presentationID)
	if err := c.do(ctx, c.timeouts.Upload, http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.JobID, nil
}

func (c *HTTPClient) AnalysisStatus(ctx context.Context, jobID string) (*models.AnalysisStatus, error) {
	var out models.AnalysisStatus
	if err := c.do(ctx, c.timeouts.Default, http.MethodGet, c.analysisPath(jobID, "status"), nil, &out); err != nil {
		return nil, err
	}
	if out.JobID == "" {
		out.JobID = jobID
	}
	return &out, nil
}

func (c *HTTPClient) AnalysisProgress(ctx context.Context, jobID string) (int, error) {
	var resp struct {
		Progress int `json:"progress"`
	}
	if err := c.do(ctx, c.timeouts.Default, http.MethodGet, c.analysisPath(jobID, "progress"), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Progress, nil
}

func (c *HTTPClient) AnalysisResults(ctx context.Context, jobID string) (*models.AnalysisResult, error) {
	var out models.AnalysisResult
	if err := c.do(ctx, c.timeouts.Default, http.MethodGet, c.analysisPath(jobID, "results"), nil, &out); err != nil {
		return nil, err
	}
	if out.JobID == "" {
		out.JobID = jobID
	}
	return &out, nil
}

func (c *HTTPClient) HasAnalysisResults(ctx context.Context, jobID string) (bool, error) {
	var resp struct {
		HasResults bool `json:"hasResults"`
	}
	if err := c.do(ctx, c.timeouts.Default, http.MethodGet, c.analysisPath(jobID, "has-results"), nil, &resp); err != nil {
		return false, err
	}
	return resp.HasResults, nil
}

func (c *HTTPClient) STTResult(ctx context.Context, jobID string) (*models.STTResult, error) {
	var out models.STTResult
	if err := c.do(ctx, c.timeouts.Default, http.MethodGet, c.analysisPath(jobID, "stt-result"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VoiceAnalysis(ctx context.Context, jobID string) (*models.VoiceAnalysis, error) {
	var out models.VoiceAnalysis
	if err := c.do(ctx, c.timeouts.Default, http.MethodGet, c.analysisPath(jobID, "voice-analysis"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Feedback(ctx context.Context, jobID string) ([]string, error) {
	var resp struct {
		Feedback []string `json:"feedback"`
	}
	if err := c.do(ctx, c.timeouts.Default, http.MethodGet, c.analysisPath(jobID, "feedback"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Feedback, nil
}

func (c *HTTPClient) analysisPath(jobID, leaf string) string {
	return "/api/video-analysis/" + url.PathEscape(jobID) + "/" + leaf
}
