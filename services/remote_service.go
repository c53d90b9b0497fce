package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mitra-support-backend/models"
)

var ErrRemoteDisabled = errors.New("remote service not configured")

// RemoteReply is the subset of the external chat service response we use.
type RemoteReply struct {
	SessionID string   `json:"session_id"`
	Response  string   `json:"response"`
	Type      string   `json:"type"`
	FollowUps []string `json:"follow_up_questions"`
}

// RemoteService talks to the optional external chat service. It is never
// required: every caller has a local answer ready.
type RemoteService struct {
	baseURL    string
	httpClient *http.Client
}

func NewRemoteService(baseURL string, timeout time.Duration) *RemoteService {
	return &RemoteService{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Enabled reports whether a remote URL is configured.
func (s *RemoteService) Enabled() bool {
	return s != nil && s.baseURL != ""
}

// SendChat forwards a message to {baseURL}/chat/send.
func (s *RemoteService) SendChat(ctx context.Context, req models.ChatRequest) (*RemoteReply, error) {
	if !s.Enabled() {
		return nil, ErrRemoteDisabled
	}

	payload := map[string]interface{}{
		"message":    req.Message,
		"session_id": req.SessionID,
		"user_id":    req.UserID,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote chat error: status %d", resp.StatusCode)
	}

	var reply RemoteReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if strings.TrimSpace(reply.Response) == "" {
		return nil, fmt.Errorf("remote chat returned an empty response")
	}

	return &reply, nil
}

// remoteSeverity maps the external service's reply types onto ours.
func remoteSeverity(kind string) models.Severity {
	switch strings.ToLower(kind) {
	case "crisis", "urgent":
		return models.SeverityUrgent
	case "support", "resource":
		return models.SeverityResource
	default:
		return models.SeverityNormal
	}
}
