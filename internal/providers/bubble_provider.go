package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"seda-ops/ledgersync/internal/constants"
)

// RecordSource is the contract the sync services depend on. BubbleProvider
// is the production implementation; tests swap in func-field mocks.
type RecordSource interface {
	FetchRecord(ctx context.Context, objectType, id string) (map[string]interface{}, error)
	FetchRecords(ctx context.Context, objectType string, cursor int, limit int) (*RecordPage, error)
}

// RecordPage is one page of a Bubble Data API list response
type RecordPage struct {
	Results   []map[string]interface{}
	Remaining int
	Cursor    int
	HasMore   bool
}

// BubbleProvider talks to the Bubble Data API. All requests share one
// client-side rate limiter so batch jobs cannot exhaust the workspace's
// API quota.
type BubbleProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	limiter *rate.Limiter
}

var _ RecordSource = (*BubbleProvider)(nil)

// NewBubbleProvider reads BUBBLE_API_URL and BUBBLE_API_KEY from the
// environment
func NewBubbleProvider() *BubbleProvider {
	return &BubbleProvider{
		BaseURL: os.Getenv("BUBBLE_API_URL"),
		APIKey:  os.Getenv("BUBBLE_API_KEY"),
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

// bubbleObjectResponse wraps a single-record GET: { "response": {...} }
type bubbleObjectResponse struct {
	Response map[string]interface{} `json:"response"`
}

// bubbleListResponse wraps a list GET:
// { "response": { "results": [...], "remaining": N, "cursor": C } }
type bubbleListResponse struct {
	Response struct {
		Results   []map[string]interface{} `json:"results"`
		Remaining int                      `json:"remaining"`
		Cursor    int                      `json:"cursor"`
	} `json:"response"`
}

// FetchRecord fetches a single object by Bubble id
func (p *BubbleProvider) FetchRecord(ctx context.Context, objectType, id string) (map[string]interface{}, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/%s/%s", p.BaseURL, objectType, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &SourceError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if err := p.handleHTTPError(resp); err != nil {
		return nil, err
	}

	var objResp bubbleObjectResponse
	if err := json.NewDecoder(resp.Body).Decode(&objResp); err != nil {
		return nil, &SourceError{
			Code:    constants.ErrCodeBadPayload,
			Message: constants.GetErrorMessage(constants.ErrCodeBadPayload),
			Err:     err,
		}
	}

	return objResp.Response, nil
}

// FetchRecords fetches one page of a collection. Cursor is Bubble's numeric
// offset; pass the cursor from the previous page to continue.
func (p *BubbleProvider) FetchRecords(ctx context.Context, objectType string, cursor int, limit int) (*RecordPage, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if cursor > 0 {
		q.Set("cursor", strconv.Itoa(cursor))
	}

	reqURL := fmt.Sprintf("%s/%s?%s", p.BaseURL, objectType, q.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &SourceError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if err := p.handleHTTPError(resp); err != nil {
		return nil, err
	}

	var listResp bubbleListResponse
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, &SourceError{
			Code:    constants.ErrCodeBadPayload,
			Message: constants.GetErrorMessage(constants.ErrCodeBadPayload),
			Err:     err,
		}
	}

	page := &RecordPage{
		Results:   listResp.Response.Results,
		Remaining: listResp.Response.Remaining,
		Cursor:    listResp.Response.Cursor + len(listResp.Response.Results),
		HasMore:   listResp.Response.Remaining > 0,
	}

	return page, nil
}

// handleHTTPError converts non-2xx responses to SourceError
func (p *BubbleProvider) handleHTTPError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &SourceError{
			Code:    constants.ErrCodeInvalidAPIKey,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidAPIKey),
			Details: string(body),
		}
	case http.StatusNotFound:
		return &SourceError{
			Code:    constants.ErrCodeNotFound,
			Message: constants.GetErrorMessage(constants.ErrCodeNotFound),
			Details: string(body),
		}
	case http.StatusTooManyRequests:
		return &SourceError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: string(body),
		}
	default:
		return &SourceError{
			Code:    constants.ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
			Details: string(body),
		}
	}
}

// SourceError represents a record-source specific failure
type SourceError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
