package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// MaxBatchSize is the largest amount the provider serves in one call.
const MaxBatchSize = 50

const defaultTimeout = 10 * time.Second

// OpenTDB response codes.
const (
	codeSuccess          = 0
	codeNoResults        = 1
	codeInvalidParameter = 2
	codeRateLimit        = 5
)

var (
	// ErrNoResults means the category/count combination yields nothing;
	// the caller can correct parameters and retry.
	ErrNoResults = errors.New("trivia: provider returned no results")
	// ErrInvalidParameter means the provider rejected the request parameters.
	ErrInvalidParameter = errors.New("trivia: invalid request parameter")
	// ErrUnavailable covers network failures, timeouts and provider-side
	// errors. Retryable later, not a client mistake.
	ErrUnavailable = errors.New("trivia: provider unavailable")
)

// RawQuestion mirrors the provider's question payload. Prompt and answers may
// contain HTML entities; decoding happens when the question is built.
type RawQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type apiResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []RawQuestion `json:"results"`
}

// Client fetches multiple-choice question batches from an OpenTDB-compatible
// API. It never retries on its own; retry/backfill policy belongs to the
// selection engine.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch requests up to amount multiple-choice questions. category is the
// provider's opaque category ID; empty or "any" means no category filter.
func (c *Client) Fetch(ctx context.Context, amount int, category string) ([]RawQuestion, error) {
	if amount < 1 {
		amount = 1
	}
	if amount > MaxBatchSize {
		amount = MaxBatchSize
	}

	params := url.Values{}
	params.Set("amount", strconv.Itoa(amount))
	params.Set("type", "multiple")
	if category != "" && category != "any" {
		params.Set("category", category)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Int("amount", amount).Str("category", category).Msg("Trivia provider request failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	switch payload.ResponseCode {
	case codeSuccess:
		return payload.Results, nil
	case codeNoResults:
		return nil, ErrNoResults
	case codeInvalidParameter:
		return nil, ErrInvalidParameter
	case codeRateLimit:
		return nil, fmt.Errorf("%w: rate limited", ErrUnavailable)
	default:
		return nil, fmt.Errorf("%w: response_code=%d", ErrUnavailable, payload.ResponseCode)
	}
}
