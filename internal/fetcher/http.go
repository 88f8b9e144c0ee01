package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"AIOverview_Analysis/internal/metrics"
	"AIOverview_Analysis/internal/models"
)

// providerOK is the DataForSEO success code used at envelope and task level
const providerOK = 20000

const maxResponseBytes = 32 << 20

// serpTask is one entry of the live/advanced request body
type serpTask struct {
	Keyword             string      `json:"keyword"`
	LocationCode        interface{} `json:"location_code"`
	LanguageCode        string      `json:"language_code"`
	Depth               int         `json:"depth"`
	GroupOrganicResults bool        `json:"group_organic_results"`
	LoadAsyncAIOverview bool        `json:"load_async_ai_overview"`
}

// serpEnvelope is the subset of the provider response this client reads
type serpEnvelope struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Tasks         []struct {
		StatusCode    int             `json:"status_code"`
		StatusMessage string          `json:"status_message"`
		Result        json.RawMessage `json:"result"`
	} `json:"tasks"`
}

// HTTPFetcher implements Service against the DataForSEO SERP API
type HTTPFetcher struct {
	client   *http.Client
	endpoint string
	apiKey   string
	depth    int
	timeout  time.Duration
}

// NewHTTPFetcher creates a SERP client. apiKey is sent verbatim as the Authorization header.
func NewHTTPFetcher(endpoint, apiKey string, depth int, timeout time.Duration) Service {
	return newHTTPFetcher(endpoint, apiKey, depth, timeout)
}

func newHTTPFetcher(endpoint, apiKey string, depth int, timeout time.Duration) *HTTPFetcher {
	if depth <= 0 {
		depth = 10
	}
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		apiKey:   apiKey,
		depth:    depth,
		timeout:  timeout,
	}
}

// Fetch retrieves the live advanced SERP for keyword and returns tasks[0].result as the payload
func (f *HTTPFetcher) Fetch(ctx context.Context, keyword, locationCode, languageCode string) (models.RawResultRecord, error) {
	record := models.RawResultRecord{Keyword: keyword}

	if f.apiKey == "" {
		return record, models.ErrMissingAPIKey
	}
	if strings.TrimSpace(keyword) == "" {
		return record, models.NewKeywordError(keyword, "empty keyword", models.ErrNoKeywords)
	}

	body, err := json.Marshal([]serpTask{{
		Keyword:             keyword,
		LocationCode:        locationValue(locationCode),
		LanguageCode:        languageCode,
		Depth:               f.depth,
		GroupOrganicResults: true,
		LoadAsyncAIOverview: true,
	}})
	if err != nil {
		return record, fmt.Errorf("failed to encode request: %w", err)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return record, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	metrics.SerpFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if isTimeout(ctx, err) {
			metrics.SerpFetchFailures.WithLabelValues(metrics.ReasonTimeout).Inc()
			return record, models.NewKeywordError(keyword, "provider call timed out", models.ErrFetchTimeout)
		}
		metrics.SerpFetchFailures.WithLabelValues(metrics.ReasonTransport).Inc()
		return record, models.NewKeywordError(keyword, err.Error(), models.ErrFetchFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.SerpFetchFailures.WithLabelValues(metrics.ReasonStatus).Inc()
		return record, models.NewKeywordError(keyword, fmt.Sprintf("HTTP %d", resp.StatusCode), models.ErrProviderStatus)
	}

	data, err := f.readBodyWithLimit(resp.Body, maxResponseBytes)
	if err != nil {
		metrics.SerpFetchFailures.WithLabelValues(metrics.ReasonTransport).Inc()
		return record, models.NewKeywordError(keyword, err.Error(), models.ErrFetchFailed)
	}

	var envelope serpEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		metrics.SerpFetchFailures.WithLabelValues(metrics.ReasonDecode).Inc()
		return record, models.NewKeywordError(keyword, "undecodable provider response", models.ErrFetchFailed)
	}

	if envelope.StatusCode != providerOK {
		metrics.SerpFetchFailures.WithLabelValues(metrics.ReasonStatus).Inc()
		return record, models.NewKeywordError(keyword,
			fmt.Sprintf("status %d: %s", envelope.StatusCode, envelope.StatusMessage), models.ErrProviderStatus)
	}
	if len(envelope.Tasks) == 0 {
		metrics.SerpFetchFailures.WithLabelValues(metrics.ReasonStatus).Inc()
		return record, models.NewKeywordError(keyword, "response carried no task", models.ErrProviderStatus)
	}

	task := envelope.Tasks[0]
	if task.StatusCode != providerOK {
		metrics.SerpFetchFailures.WithLabelValues(metrics.ReasonStatus).Inc()
		return record, models.NewKeywordError(keyword,
			fmt.Sprintf("task status %d: %s", task.StatusCode, task.StatusMessage), models.ErrProviderStatus)
	}

	record.Payload = task.Result
	return record, nil
}

// locationValue sends numeric location codes as JSON numbers
func locationValue(code string) interface{} {
	code = strings.TrimSpace(code)
	if n, err := strconv.Atoi(code); err == nil {
		return n
	}
	return code
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// readBodyWithLimit reads the response body with a size limit
func (f *HTTPFetcher) readBodyWithLimit(body io.Reader, maxSize int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxSize))
	if err != nil {
		return nil, err
	}

	if int64(len(data)) >= maxSize {
		return nil, fmt.Errorf("provider response too large (exceeds %d bytes)", maxSize)
	}

	return data, nil
}
