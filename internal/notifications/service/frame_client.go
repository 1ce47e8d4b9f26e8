package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vibe-directory/vibe-backend/internal/notifications/domain"
)

const frameTimeout = 10 * time.Second

// FrameClient delivers one notification to the URL a host client registered
// for a user.
type FrameClient struct {
	httpClient *http.Client
	targetURL  string
}

// NewFrameClient creates a client whose notifications open targetURL.
func NewFrameClient(targetURL string) *FrameClient {
	return &FrameClient{
		httpClient: &http.Client{Timeout: frameTimeout},
		targetURL:  targetURL,
	}
}

type frameRequest struct {
	NotificationID string   `json:"notificationId"`
	Title          string   `json:"title"`
	Body           string   `json:"body"`
	TargetURL      string   `json:"targetUrl"`
	Tokens         []string `json:"tokens"`
}

type frameResponse struct {
	Result struct {
		SuccessfulTokens  []string `json:"successfulTokens"`
		InvalidTokens     []string `json:"invalidTokens"`
		RateLimitedTokens []string `json:"rateLimitedTokens"`
	} `json:"result"`
}

// Send posts the notification. Transport failures and unexpected responses
// come back as ResultError with a non-nil error.
func (c *FrameClient) Send(ctx context.Context, details domain.Details, title, body string) (domain.Result, error) {
	payload, err := json.Marshal(frameRequest{
		NotificationID: uuid.NewString(),
		Title:          title,
		Body:           body,
		TargetURL:      c.targetURL,
		Tokens:         []string{details.Token},
	})
	if err != nil {
		return domain.ResultError, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, details.URL, bytes.NewReader(payload))
	if err != nil {
		return domain.ResultError, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ResultError, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode != http.StatusOK {
		return domain.ResultError, fmt.Errorf("frame notification error: status %d, body: %s", resp.StatusCode, string(raw))
	}

	var out frameResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.ResultError, fmt.Errorf("failed to decode response: %w", err)
	}

	switch {
	case len(out.Result.InvalidTokens) > 0:
		return domain.ResultInvalidToken, nil
	case len(out.Result.RateLimitedTokens) > 0:
		return domain.ResultRateLimit, nil
	default:
		return domain.ResultSuccess, nil
	}
}
