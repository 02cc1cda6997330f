// Package tts implements the HTTP client for the external text-to-speech
// provider. The provider is an opaque collaborator: one POST per note in,
// binary audio out. Failures are row-level; callers log and continue.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	pathSpeech = "/v1/text-to-speech"
	pathHealth = "/health"
)

// HealthCheckTimeout bounds the pre-run provider health probe.
const HealthCheckTimeout = 10 * time.Second

// Request is the JSON payload for one speech generation call.
type Request struct {
	// Text is the note body to render. Must be non-empty.
	Text string `json:"text"`
	// ModelID selects the provider voice model.
	ModelID string `json:"model_id"`
	// VoiceID selects the speaker voice.
	VoiceID string `json:"voice_id"`
}

// errorResponse is the provider's structured error payload.
type errorResponse struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// Client talks to the TTS provider.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient configures a provider client. baseURL includes protocol and
// port; timeout applies to each speech request.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GenerateSpeech renders one note and returns the raw audio bytes (WAV).
// Non-2xx responses and transport failures return errors; callers treat
// them as row-level failures.
func (c *Client) GenerateSpeech(ctx context.Context, req Request) ([]byte, error) {
	if req.Text == "" {
		return nil, errors.New("text cannot be empty")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+pathSpeech,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/wav")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request to TTS provider at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.parseErrorResponse(resp)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio response: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("provider returned empty audio")
	}
	return audio, nil
}

// HealthCheck verifies the provider is reachable before a large run.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+pathHealth, http.NoBody)
	if err != nil {
		return fmt.Errorf("create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed for provider at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status %s", resp.Status)
	}
	return nil
}

// parseErrorResponse decodes the provider's structured error when it sends
// one, falling back to the raw body so diagnostics survive.
func (c *Client) parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		if payload.Code != "" {
			return fmt.Errorf("provider error (%s): %s (code %s)", resp.Status, payload.Detail, payload.Code)
		}
		return fmt.Errorf("provider error (%s): %s", resp.Status, payload.Detail)
	}
	return fmt.Errorf("provider returned %s: %s", resp.Status, bytes.TrimSpace(body))
}
