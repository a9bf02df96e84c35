// Package apiclient is the HTTP implementation of the session engine's
// Submitter: it speaks the backend's JSON envelope and surfaces structured
// errors for failed submissions.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rohitmodi970/casual-quizing/internal/model"
	"github.com/rohitmodi970/casual-quizing/internal/trivia"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Client talks to the casual-quizing backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a backend client. httpClient may be nil.
func New(baseURL string, httpClient *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// envelope mirrors the backend response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details []string        `json:"details"`
}

// SubmitQuiz posts one completed attempt and returns the server receipt.
func (c *Client) SubmitQuiz(ctx context.Context, req *model.SubmitQuizRequest) (*model.SubmitQuizResponse, error) {
	var receipt model.SubmitQuizResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/quiz", req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// FetchQuestions retrieves a question batch through the backend's cached
// proxy endpoint, so terminal clients share one upstream quota.
func (c *Client) FetchQuestions(ctx context.Context) ([]trivia.Question, error) {
	var payload struct {
		Questions []trivia.Question `json:"questions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/questions", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Questions, nil
}

// Fetch makes *Client satisfy the session engine's QuestionSource.
func (c *Client) Fetch(ctx context.Context) ([]trivia.Question, error) {
	return c.FetchQuestions(ctx)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Error,
			Details:    env.Details,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}
