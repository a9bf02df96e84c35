package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Open Trivia DB response codes consumed by this adapter.
// https://opentdb.com responds 200 even for logical failures; the code field
// carries the real outcome.
const (
	codeSuccess        = 0
	codeNoResults      = 1
	codeRateLimited    = 5
	defaultHTTPTimeout = 10 * time.Second
)

// Sentinel fetch errors. All of them are fatal to the session: the engine
// must not populate a partial question set.
var (
	ErrEmptyPool   = errors.New("trivia: question pool has too few questions")
	ErrRateLimited = errors.New("trivia: rate limited by provider")
	ErrUnavailable = errors.New("trivia: provider unavailable")
)

// Client fetches fixed-size question batches from the Open Trivia DB API.
type Client struct {
	baseURL    string
	amount     int
	httpClient *http.Client
}

// NewClient creates a trivia client. httpClient may be nil, in which case a
// default client with a request timeout is used.
func NewClient(baseURL string, amount int, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		amount:     amount,
		httpClient: httpClient,
	}
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []rawQuestion `json:"results"`
}

// Fetch retrieves and normalizes one batch of questions. On any non-success
// condition it returns an error and no questions.
func (c *Client) Fetch(ctx context.Context) ([]Question, error) {
	reqURL := c.baseURL + "?amount=" + strconv.Itoa(c.amount)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	switch payload.ResponseCode {
	case codeSuccess:
		// fall through
	case codeNoResults:
		return nil, ErrEmptyPool
	case codeRateLimited:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("%w: response_code=%d", ErrUnavailable, payload.ResponseCode)
	}

	if len(payload.Results) < c.amount {
		return nil, ErrEmptyPool
	}

	questions := make([]Question, 0, len(payload.Results))
	for i, raw := range payload.Results {
		questions = append(questions, buildQuestion(raw, i))
	}
	return questions, nil
}
